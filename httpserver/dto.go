package httpserver

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/query/bookview"
	"github.com/bibliofleet/lending-go/features/query/getactiveloan"
	"github.com/bibliofleet/lending-go/features/query/listbooks"
	"github.com/bibliofleet/lending-go/users"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type createBookRequest struct {
	Title         string   `json:"title"         validate:"required,min=1,max=200"`
	Authors       []string `json:"authors"       validate:"required,min=1"`
	Code          *string  `json:"code"`
	Publisher     *string  `json:"publisher"`
	PublishedDate *string  `json:"publishedDate"`
	ThumbnailURL  *string  `json:"thumbnailUrl"`
}

type updateBookRequest struct {
	Title         *string   `json:"title"         validate:"omitempty,min=1,max=200"`
	Authors       *[]string `json:"authors"       validate:"omitempty,min=1"`
	Code          *string   `json:"code"`
	Publisher     *string   `json:"publisher"`
	PublishedDate *string   `json:"publishedDate"`
	ThumbnailURL  *string   `json:"thumbnailUrl"`
}

type borrowBookRequest struct {
	DueDays *int `json:"dueDays" validate:"omitempty,min=1"`
}

type deleteBookRequest struct {
	Reason string  `json:"reason" validate:"required"`
	Memo   *string `json:"memo"`
}

// validationMessage maps the first structural validation failure to the same
// message the domain parsers would produce for that field.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		switch validationErrors[0].Field() {
		case "Title":
			return core.ErrInvalidTitle.Error()
		case "Authors":
			return core.ErrInvalidAuthors.Error()
		case "DueDays":
			return core.ErrInvalidDueDays.Error()
		case "Reason":
			return core.ErrInvalidRemovalReason.Error()
		case "Name":
			return users.ErrInvalidUserName.Error()
		}
	}

	return "invalid request body"
}

type borrowerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BorrowedAt string `json:"borrowedAt"`
}

type bookResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Authors       []string          `json:"authors"`
	Code          *string           `json:"code,omitempty"`
	Publisher     *string           `json:"publisher,omitempty"`
	PublishedDate *string           `json:"publishedDate,omitempty"`
	ThumbnailURL  *string           `json:"thumbnailUrl,omitempty"`
	Status        string            `json:"status"`
	Borrower      *borrowerResponse `json:"borrower,omitempty"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

type loanResponse struct {
	ID         string `json:"id"`
	BookID     string `json:"bookId"`
	BorrowerID string `json:"borrowerId"`
	BorrowedAt string `json:"borrowedAt"`
	DueDate    string `json:"dueDate"`
}

type listBooksResponse struct {
	Items []bookResponse `json:"items"`
	Total int64          `json:"total"`
}

func bookResponseFrom(book bookview.Book) bookResponse {
	response := bookResponse{
		ID:            book.ID.String(),
		Title:         book.Title,
		Authors:       book.Authors,
		Code:          book.Code,
		Publisher:     book.Publisher,
		PublishedDate: book.PublishedDate,
		ThumbnailURL:  book.ThumbnailURL,
		Status:        book.Status,
		CreatedAt:     book.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     book.UpdatedAt.Format(time.RFC3339),
	}

	if book.Borrower != nil {
		response.Borrower = &borrowerResponse{
			ID:         book.Borrower.ID.String(),
			Name:       book.Borrower.Name,
			BorrowedAt: book.Borrower.BorrowedAt.Format(time.RFC3339),
		}
	}

	return response
}

func loanResponseFrom(loan getactiveloan.Loan) loanResponse {
	return loanResponse{
		ID:         loan.ID.String(),
		BookID:     loan.BookID.String(),
		BorrowerID: loan.BorrowerID.String(),
		BorrowedAt: loan.BorrowedAt.Format(time.RFC3339),
		DueDate:    loan.DueAt.Format(time.RFC3339),
	}
}

func listBooksResponseFrom(result listbooks.Result) listBooksResponse {
	items := make([]bookResponse, 0, len(result.Items))
	for _, book := range result.Items {
		items = append(items, bookResponseFrom(book))
	}

	return listBooksResponse{Items: items, Total: result.Total}
}
