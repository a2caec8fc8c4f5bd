package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/users"
)

// tokenValidity is how long self-service registration tokens stay valid.
const tokenValidity = 24 * time.Hour

// TokenIssuer signs a bearer token for a freshly registered user.
// JWTVerifier implements this.
type TokenIssuer interface {
	Issue(userID uuid.UUID, validFor time.Duration) (string, error)
}

type createUserRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=50"`
}

type createUserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	CreatedAt string `json:"createdAt"`
}

// handleCreateUser registers a user in the directory and hands out a token.
// The route is deliberately unauthenticated, it is how callers obtain their
// first token. An absent name gets a generated one.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	issuer, ok := s.verifier.(TokenIssuer)
	if !ok || s.directory == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "user registration is not enabled")

		return
	}

	var request createUserRequest
	if r.ContentLength != 0 {
		if err := jsonAPI.NewDecoder(r.Body).Decode(&request); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")

			return
		}

		if err := validate.Struct(request); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, validationMessage(err))

			return
		}
	}

	userID := uuid.New()

	name := "user-" + userID.String()[:4]
	if request.Name != nil && *request.Name != "" {
		parsed, err := users.ParseUserName(*request.Name)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

			return
		}

		name = parsed
	}

	if err := s.directory.Upsert(r.Context(), userID, name); err != nil {
		s.internalError(w, "registering user failed", err)

		return
	}

	token, err := issuer.Issue(userID, tokenValidity)
	if err != nil {
		s.internalError(w, "issuing token failed", err)

		return
	}

	respondJSON(w, http.StatusCreated, createUserResponse{
		ID:        userID.String(),
		Name:      name,
		Token:     token,
		CreatedAt: s.clock().UTC().Format(time.RFC3339),
	})
}
