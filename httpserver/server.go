package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/features/command/borrowbook"
	"github.com/bibliofleet/lending-go/features/command/registerbook"
	"github.com/bibliofleet/lending-go/features/command/removebook"
	"github.com/bibliofleet/lending-go/features/command/returnbook"
	"github.com/bibliofleet/lending-go/features/command/updatebook"
	"github.com/bibliofleet/lending-go/features/query/bookview"
	"github.com/bibliofleet/lending-go/features/query/getactiveloan"
	"github.com/bibliofleet/lending-go/features/query/getbook"
	"github.com/bibliofleet/lending-go/features/query/listbooks"
	"github.com/bibliofleet/lending-go/shell"
	"github.com/bibliofleet/lending-go/shell/config"
	"github.com/bibliofleet/lending-go/users"
)

// Handlers bundles the feature slice handlers the server dispatches to.
// Wrap the handlers with shell/observable decorators before wiring them
// here to get metrics, tracing and logging on every request.
type Handlers struct {
	RegisterBook  shell.CoreCommandHandler[registerbook.Command]
	UpdateBook    shell.CoreCommandHandler[updatebook.Command]
	RemoveBook    shell.CoreCommandHandler[removebook.Command]
	BorrowBook    shell.CoreCommandHandler[borrowbook.Command]
	ReturnBook    shell.CoreCommandHandler[returnbook.Command]
	GetBook       shell.CoreQueryHandler[getbook.Query, bookview.Book]
	ListBooks     shell.CoreQueryHandler[listbooks.Query, listbooks.Result]
	GetActiveLoan shell.CoreQueryHandler[getactiveloan.Query, getactiveloan.Loan]
}

// Server routes HTTP requests to the feature slices.
type Server struct {
	handlers  Handlers
	verifier  TokenVerifier
	directory users.Directory
	clock     func() time.Time
	logger    catalogstore.Logger
}

// Option configures optional server behavior.
type Option func(*Server)

// WithClock overrides the time source used to stamp commands.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithLogger wires a logger for request failures that map to 500 responses.
func WithLogger(logger catalogstore.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server dispatching to the given handlers, with
// authentication provided by the given verifier. The directory backs the
// self-service user registration route.
func NewServer(handlers Handlers, verifier TokenVerifier, directory users.Directory, options ...Option) *Server {
	server := &Server{
		handlers:  handlers,
		verifier:  verifier,
		directory: directory,
		clock:     time.Now,
	}

	for _, option := range options {
		option(server)
	}

	return server
}

// Routes builds the request multiplexer with all API routes registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("POST /books", s.requireAuth(s.handleCreateBook))
	mux.HandleFunc("GET /books", s.requireAuth(s.handleListBooks))
	mux.HandleFunc("GET /books/{bookId}", s.requireAuth(s.handleGetBook))
	mux.HandleFunc("PATCH /books/{bookId}", s.requireAuth(s.handleUpdateBook))
	mux.HandleFunc("DELETE /books/{bookId}", s.requireAuth(s.handleDeleteBook))
	mux.HandleFunc("POST /books/{bookId}/borrow", s.requireAuth(s.handleBorrowBook))
	mux.HandleFunc("POST /books/{bookId}/return", s.requireAuth(s.handleReturnBook))

	return mux
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.HTTPServer) error {
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)

	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	}
}

// logError logs failures that surface as internal_error responses.
func (s *Server) logError(message string, err error) {
	if s.logger != nil {
		s.logger.Error(message, "error", err)
	}
}

// internalError writes the generic 500 response and logs the cause.
func (s *Server) internalError(w http.ResponseWriter, message string, err error) {
	s.logError(message, err)
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal server error")
}

// bookIDFromPath parses the bookId path segment, writing the 400 response itself
// when the segment is not a valid UUID.
func bookIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	bookID, err := uuid.Parse(r.PathValue("bookId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid book ID")

		return uuid.Nil, false
	}

	return bookID, true
}
