package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliofleet/lending-go/catalogstore/memoryengine"
	"github.com/bibliofleet/lending-go/features/command/borrowbook"
	"github.com/bibliofleet/lending-go/features/command/registerbook"
	"github.com/bibliofleet/lending-go/features/command/removebook"
	"github.com/bibliofleet/lending-go/features/command/returnbook"
	"github.com/bibliofleet/lending-go/features/command/updatebook"
	"github.com/bibliofleet/lending-go/features/query/getactiveloan"
	"github.com/bibliofleet/lending-go/features/query/getbook"
	"github.com/bibliofleet/lending-go/features/query/listbooks"
	"github.com/bibliofleet/lending-go/httpserver"
	"github.com/bibliofleet/lending-go/users"
)

type testEnv struct {
	mux      *http.ServeMux
	verifier *httpserver.JWTVerifier
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	engine := memoryengine.NewEngine()
	directory := users.NewMemoryDirectory()
	verifier := httpserver.NewJWTVerifier([]byte("test-secret"))

	handlers := httpserver.Handlers{
		RegisterBook:  registerbook.NewCommandHandler(engine),
		UpdateBook:    updatebook.NewCommandHandler(engine),
		RemoveBook:    removebook.NewCommandHandler(engine),
		BorrowBook:    borrowbook.NewCommandHandler(engine),
		ReturnBook:    returnbook.NewCommandHandler(engine),
		GetBook:       getbook.NewQueryHandler(engine, directory),
		ListBooks:     listbooks.NewQueryHandler(engine, directory),
		GetActiveLoan: getactiveloan.NewQueryHandler(engine),
	}

	server := httpserver.NewServer(handlers, verifier, directory)

	return &testEnv{
		mux:      server.Routes(),
		verifier: verifier,
	}
}

func (env *testEnv) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := env.verifier.Issue(userID, time.Hour)
	require.NoError(t, err)

	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.mux.ServeHTTP(recorder, request)

	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	return payload
}

func (env *testEnv) createBook(t *testing.T, token string, title string) string {
	t.Helper()

	recorder := env.do(t, http.MethodPost, "/books", token, map[string]any{
		"title":   title,
		"authors": []string{"Some Author"},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	return decodeBody(t, recorder)["id"].(string)
}

func Test_Routes_RequireAuthentication(t *testing.T) {
	env := setupServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/books"},
		{http.MethodGet, "/books"},
		{http.MethodGet, "/books/" + uuid.NewString()},
		{http.MethodPatch, "/books/" + uuid.NewString()},
		{http.MethodDelete, "/books/" + uuid.NewString()},
		{http.MethodPost, "/books/" + uuid.NewString() + "/borrow"},
		{http.MethodPost, "/books/" + uuid.NewString() + "/return"},
	} {
		recorder := env.do(t, route.method, route.path, "", nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", route.method, route.path)

		body := decodeBody(t, recorder)
		assert.Equal(t, "unauthorized", body["code"])
		assert.Equal(t, "authentication required", body["message"])
	}
}

func Test_Routes_RejectInvalidToken(t *testing.T) {
	env := setupServer(t)

	recorder := env.do(t, http.MethodGet, "/books", "not-a-jwt", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func Test_CreateUser_IssuesUsableToken(t *testing.T) {
	env := setupServer(t)

	// registration itself needs no token
	recorder := env.do(t, http.MethodPost, "/users", "", map[string]any{"name": "Jane Reader"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Jane Reader", body["name"])
	assert.NotEmpty(t, body["id"])

	token := body["token"].(string)
	require.NotEmpty(t, token)

	// the fresh token authenticates follow-up requests
	recorder = env.do(t, http.MethodGet, "/books", token, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func Test_CreateUser_GeneratesNameWhenAbsent(t *testing.T) {
	env := setupServer(t)

	recorder := env.do(t, http.MethodPost, "/users", "", nil)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotEmpty(t, decodeBody(t, recorder)["name"])
}

func Test_CreateUser_RejectsOverlongName(t *testing.T) {
	env := setupServer(t)

	recorder := env.do(t, http.MethodPost, "/users", "", map[string]any{"name": strings.Repeat("x", 51)})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "invalid_request", body["code"])
	assert.Equal(t, users.ErrInvalidUserName.Error(), body["message"])
}

func Test_CreateBook_Success(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	recorder := env.do(t, http.MethodPost, "/books", token, map[string]any{
		"title":   "Learning Domain-Driven Design",
		"authors": []string{"Vlad Khononov"},
		"code":    "978-1-098-10013-1",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Learning Domain-Driven Design", body["title"])
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, "978-1-098-10013-1", body["code"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["createdAt"])
	assert.NotEmpty(t, body["updatedAt"])
	assert.NotContains(t, body, "borrower")
}

func Test_CreateBook_ValidationErrors(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	testCases := []struct {
		name            string
		payload         map[string]any
		expectedMessage string
	}{
		{
			name:            "missing title",
			payload:         map[string]any{"authors": []string{"Some Author"}},
			expectedMessage: "title must be 1-200 characters",
		},
		{
			name:            "empty authors",
			payload:         map[string]any{"title": "Some Book", "authors": []string{}},
			expectedMessage: "authors must have at least one author",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := env.do(t, http.MethodPost, "/books", token, tc.payload)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			body := decodeBody(t, recorder)
			assert.Equal(t, "invalid_request", body["code"])
			assert.Equal(t, tc.expectedMessage, body["message"])
		})
	}
}

func Test_GetBook_InvalidAndUnknownIDs(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	recorder := env.do(t, http.MethodGet, "/books/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "invalid_request", decodeBody(t, recorder)["code"])

	recorder = env.do(t, http.MethodGet, "/books/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "not_found", decodeBody(t, recorder)["code"])
}

func Test_BorrowBook_FullLifecycle(t *testing.T) {
	env := setupServer(t)
	borrowerID := uuid.New()
	token := env.tokenFor(t, borrowerID)

	bookID := env.createBook(t, token, "Some Book")

	// borrow with the default lending period
	recorder := env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	loan := decodeBody(t, recorder)
	assert.Equal(t, bookID, loan["bookId"])
	assert.Equal(t, borrowerID.String(), loan["borrowerId"])

	borrowedAt, err := time.Parse(time.RFC3339, loan["borrowedAt"].(string))
	require.NoError(t, err)
	firstDueDate, err := time.Parse(time.RFC3339, loan["dueDate"].(string))
	require.NoError(t, err)
	assert.Equal(t, borrowedAt.AddDate(0, 0, 7), firstDueDate)

	// the book shows as borrowed with the borrower attached
	recorder = env.do(t, http.MethodGet, "/books/"+bookID, token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	book := decodeBody(t, recorder)
	assert.Equal(t, "borrowed", book["status"])
	require.Contains(t, book, "borrower")

	// return it
	recorder = env.do(t, http.MethodPost, "/books/"+bookID+"/return", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	returned := decodeBody(t, recorder)
	assert.Equal(t, "available", returned["status"])
	assert.NotContains(t, returned, "borrower")
}

func Test_BorrowBook_ReborrowExtendsFromPreviousDueDate(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, token, "Some Book")

	recorder := env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", token, map[string]any{"dueDays": 7})
	require.Equal(t, http.StatusOK, recorder.Code)
	firstLoan := decodeBody(t, recorder)

	// act - borrowing again does not reset the clock, it extends the due date
	recorder = env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", token, map[string]any{"dueDays": 7})
	require.Equal(t, http.StatusOK, recorder.Code)
	secondLoan := decodeBody(t, recorder)

	assert.Equal(t, firstLoan["id"], secondLoan["id"], "extension keeps the loan record")

	firstDueDate, err := time.Parse(time.RFC3339, firstLoan["dueDate"].(string))
	require.NoError(t, err)
	secondDueDate, err := time.Parse(time.RFC3339, secondLoan["dueDate"].(string))
	require.NoError(t, err)
	assert.Equal(t, firstDueDate.AddDate(0, 0, 7), secondDueDate)
	assert.Equal(t, firstLoan["borrowedAt"], secondLoan["borrowedAt"])
}

func Test_BorrowBook_ConflictAndValidation(t *testing.T) {
	env := setupServer(t)
	firstToken := env.tokenFor(t, uuid.New())
	secondToken := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, firstToken, "Some Book")

	recorder := env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", firstToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// another user cannot take the borrowed book
	recorder = env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", secondToken, nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "book_already_borrowed", decodeBody(t, recorder)["code"])

	// unknown book
	recorder = env.do(t, http.MethodPost, "/books/"+uuid.NewString()+"/borrow", firstToken, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "book_not_found", decodeBody(t, recorder)["code"])

	// invalid lending period
	recorder = env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", firstToken, map[string]any{"dueDays": 0})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "invalid_request", decodeBody(t, recorder)["code"])
}

func Test_ReturnBook_OnlyBorrowerMayReturn(t *testing.T) {
	env := setupServer(t)
	borrowerToken := env.tokenFor(t, uuid.New())
	strangerToken := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, borrowerToken, "Some Book")

	recorder := env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", borrowerToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// a stranger's return is forbidden
	recorder = env.do(t, http.MethodPost, "/books/"+bookID+"/return", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "forbidden", body["code"])
	assert.Equal(t, "only the borrower can return this book", body["message"])
}

func Test_ReturnBook_NotBorrowed(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, token, "Some Book")

	recorder := env.do(t, http.MethodPost, "/books/"+bookID+"/return", token, nil)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "not_borrowed", decodeBody(t, recorder)["code"])
}

func Test_DeleteBook_GuardedByActiveLoan(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, token, "Some Book")

	recorder := env.do(t, http.MethodPost, "/books/"+bookID+"/borrow", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// removal is blocked while the book is out
	recorder = env.do(t, http.MethodDelete, "/books/"+bookID, token, map[string]any{"reason": "disposal"})
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "conflict", decodeBody(t, recorder)["code"])

	recorder = env.do(t, http.MethodPost, "/books/"+bookID+"/return", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// after the return the removal goes through
	recorder = env.do(t, http.MethodDelete, "/books/"+bookID, token, map[string]any{"reason": "disposal", "memo": "water damage"})
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = env.do(t, http.MethodGet, "/books/"+bookID, token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func Test_DeleteBook_RequiresValidReason(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, token, "Some Book")

	recorder := env.do(t, http.MethodDelete, "/books/"+bookID, token, map[string]any{"reason": "stolen"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "invalid_request", decodeBody(t, recorder)["code"])

	recorder = env.do(t, http.MethodDelete, "/books/"+bookID, token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func Test_UpdateBook_PatchAndNoop(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	bookID := env.createBook(t, token, "Original Title")

	// patch the title only
	recorder := env.do(t, http.MethodPatch, "/books/"+bookID, token, map[string]any{"title": "Patched Title"})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Patched Title", body["title"])

	// the response reports when the book last changed
	updatedAt, ok := body["updatedAt"].(string)
	require.True(t, ok, "updatedAt must be present")
	_, err := time.Parse(time.RFC3339, updatedAt)
	assert.NoError(t, err)

	// an empty patch changes nothing and still succeeds
	recorder = env.do(t, http.MethodPatch, "/books/"+bookID, token, map[string]any{})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Patched Title", decodeBody(t, recorder)["title"])
}

func Test_ListBooks_PaginationAndSearch(t *testing.T) {
	env := setupServer(t)
	token := env.tokenFor(t, uuid.New())

	for i := 0; i < 5; i++ {
		env.createBook(t, token, fmt.Sprintf("Catalog Book %d", i))
	}

	recorder := env.do(t, http.MethodGet, "/books?limit=2&offset=0", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(5), body["total"], "total ignores the page window")
	assert.Len(t, body["items"], 2)

	recorder = env.do(t, http.MethodGet, "/books?q=catalog", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(5), decodeBody(t, recorder)["total"])

	recorder = env.do(t, http.MethodGet, "/books?limit=nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
