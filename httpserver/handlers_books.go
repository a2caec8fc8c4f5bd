package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/core"
	"github.com/bibliofleet/lending-go/features/command/registerbook"
	"github.com/bibliofleet/lending-go/features/command/removebook"
	"github.com/bibliofleet/lending-go/features/command/updatebook"
	"github.com/bibliofleet/lending-go/features/query/getbook"
	"github.com/bibliofleet/lending-go/features/query/listbooks"
)

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var request createBookRequest
	if err := jsonAPI.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")

		return
	}

	if err := validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, validationMessage(err))

		return
	}

	title, err := core.ParseTitle(request.Title)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

		return
	}

	authors, err := core.ParseAuthors(request.Authors)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

		return
	}

	command := registerbook.BuildCommand(
		title,
		authors,
		registerbook.Metadata{
			Code:          request.Code,
			Publisher:     request.Publisher,
			PublishedDate: request.PublishedDate,
			ThumbnailURL:  request.ThumbnailURL,
		},
		s.clock(),
	)

	if _, err = s.handlers.RegisterBook.Handle(r.Context(), command); err != nil {
		s.internalError(w, "registering book failed", err)

		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(command.BookID))
	if err != nil {
		s.internalError(w, "reading back registered book failed", err)

		return
	}

	respondJSON(w, http.StatusCreated, bookResponseFrom(book))
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))

	switch {
	case errors.Is(err, core.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "book not found")

	case err != nil:
		s.internalError(w, "reading book failed", err)

	default:
		respondJSON(w, http.StatusOK, bookResponseFrom(book))
	}
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	var keyword *string
	if q := r.URL.Query().Get("q"); q != "" {
		keyword = &q
	}

	limit, ok := intQueryParam(w, r, "limit")
	if !ok {
		return
	}

	offset, ok := intQueryParam(w, r, "offset")
	if !ok {
		return
	}

	result, err := s.handlers.ListBooks.Handle(r.Context(), listbooks.BuildQuery(keyword, limit, offset))
	if err != nil {
		s.internalError(w, "listing books failed", err)

		return
	}

	respondJSON(w, http.StatusOK, listBooksResponseFrom(result))
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	var request updateBookRequest
	if err := jsonAPI.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")

		return
	}

	if err := validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, validationMessage(err))

		return
	}

	patch := updatebook.Patch{
		Code:          request.Code,
		Publisher:     request.Publisher,
		PublishedDate: request.PublishedDate,
		ThumbnailURL:  request.ThumbnailURL,
	}

	if request.Title != nil {
		title, err := core.ParseTitle(*request.Title)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

			return
		}

		patch.Title = &title
	}

	if request.Authors != nil {
		authors, err := core.ParseAuthors(*request.Authors)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

			return
		}

		patch.Authors = authors
	}

	command := updatebook.BuildCommand(bookID, patch, s.clock())

	_, err := s.handlers.UpdateBook.Handle(r.Context(), command)

	switch {
	case errors.Is(err, core.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "book not found")

		return

	case errors.Is(err, catalogstore.ErrConcurrencyConflict):
		writeError(w, http.StatusConflict, codeConflict, "concurrent modification, please retry")

		return

	case err != nil:
		s.internalError(w, "updating book failed", err)

		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		s.internalError(w, "reading back updated book failed", err)

		return
	}

	respondJSON(w, http.StatusOK, bookResponseFrom(book))
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	var request deleteBookRequest
	if err := jsonAPI.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")

		return
	}

	if err := validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, validationMessage(err))

		return
	}

	reason, err := core.ParseRemovalReason(request.Reason)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())

		return
	}

	var memo string
	if request.Memo != nil {
		memo = *request.Memo
	}

	command := removebook.BuildCommand(bookID, reason, memo, s.clock())

	_, err = s.handlers.RemoveBook.Handle(r.Context(), command)

	switch {
	case errors.Is(err, core.ErrBookNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "book not found")

	case errors.Is(err, core.ErrBookBorrowed):
		writeError(w, http.StatusConflict, codeConflict, core.ErrBookBorrowed.Error())

	case errors.Is(err, catalogstore.ErrConcurrencyConflict):
		writeError(w, http.StatusConflict, codeConflict, "concurrent modification, please retry")

	case err != nil:
		s.internalError(w, "removing book failed", err)

	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// intQueryParam parses an optional non-negative integer query parameter,
// writing the 400 response itself when the value does not parse.
func intQueryParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid "+name)

		return 0, false
	}

	return value, true
}
