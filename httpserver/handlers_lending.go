package httpserver

import (
	"errors"
	"net/http"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/command/borrowbook"
	"github.com/bibliofleet/lending-go/features/command/returnbook"
	"github.com/bibliofleet/lending-go/features/query/getactiveloan"
	"github.com/bibliofleet/lending-go/features/query/getbook"
)

func (s *Server) handleBorrowBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	borrowerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")

		return
	}

	// The request body is optional, an absent body means the default
	// lending period.
	var request borrowBookRequest
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

	dueDays, err := core.ParseDueDays(request.DueDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

		return
	}

	command := borrowbook.BuildCommand(bookID, borrowerID, dueDays, s.clock())

	_, err = s.handlers.BorrowBook.Handle(r.Context(), command)

	switch {
	case errors.Is(err, core.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeBookNotFound, "book not found")

		return

	case errors.Is(err, core.ErrBookAlreadyBorrowed):
		writeError(w, http.StatusConflict, codeBookAlreadyBorrowed, core.ErrBookAlreadyBorrowed.Error())

		return

	case errors.Is(err, catalogstore.ErrConcurrencyConflict):
		writeError(w, http.StatusConflict, codeConflict, "concurrent modification, please retry")

		return

	case err != nil:
		s.internalError(w, "borrowing book failed", err)

		return
	}

	loan, err := s.handlers.GetActiveLoan.Handle(r.Context(), getactiveloan.BuildQuery(bookID))
	if err != nil {
		s.internalError(w, "reading back loan failed", err)

		return
	}

	respondJSON(w, http.StatusOK, loanResponseFrom(loan))
}

func (s *Server) handleReturnBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	borrowerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")

		return
	}

	command := returnbook.BuildCommand(bookID, borrowerID, s.clock())

	_, err := s.handlers.ReturnBook.Handle(r.Context(), command)

	switch {
	case errors.Is(err, core.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeBookNotFound, "book not found")

		return

	case errors.Is(err, core.ErrBookNotBorrowed):
		writeError(w, http.StatusConflict, codeNotBorrowed, "this book is not currently borrowed")

		return

	case errors.Is(err, core.ErrNotBorrower):
		writeError(w, http.StatusForbidden, codeForbidden, core.ErrNotBorrower.Error())

		return

	case errors.Is(err, catalogstore.ErrConcurrencyConflict):
		writeError(w, http.StatusConflict, codeConflict, "concurrent modification, please retry")

		return

	case err != nil:
		s.internalError(w, "returning book failed", err)

		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		s.internalError(w, "reading back returned book failed", err)

		return
	}

	respondJSON(w, http.StatusOK, bookResponseFrom(book))
}
