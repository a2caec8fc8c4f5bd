package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/catalogstore/memoryengine"
	"github.com/bibliofleet/lending-go/catalogstore/postgresengine"
	"github.com/bibliofleet/lending-go/features/command/borrowbook"
	"github.com/bibliofleet/lending-go/features/command/registerbook"
	"github.com/bibliofleet/lending-go/features/command/removebook"
	"github.com/bibliofleet/lending-go/features/command/returnbook"
	"github.com/bibliofleet/lending-go/features/command/updatebook"
	"github.com/bibliofleet/lending-go/features/query/bookview"
	"github.com/bibliofleet/lending-go/features/query/getactiveloan"
	"github.com/bibliofleet/lending-go/features/query/getbook"
	"github.com/bibliofleet/lending-go/features/query/listbooks"
	"github.com/bibliofleet/lending-go/httpserver"
	"github.com/bibliofleet/lending-go/oteladapters"
	"github.com/bibliofleet/lending-go/shell"
	"github.com/bibliofleet/lending-go/shell/config"
	"github.com/bibliofleet/lending-go/shell/observable"
	"github.com/bibliofleet/lending-go/users"
)

const (
	storageMemory   = "memory"
	storagePostgres = "postgres"

	envDev = "dev"
)

// observability bundles the collectors every layer shares.
type observability struct {
	logger           catalogstore.Logger
	contextualLogger catalogstore.ContextualLogger
	metrics          catalogstore.MetricsCollector
	tracing          catalogstore.TracingCollector
}

func main() {
	cfg := config.MustLoad()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.TokenSecret == "" {
		log.Fatal("token secret must be configured")
	}

	obs := newObservability(cfg.Env)

	store, directory, closeStorage := buildStorage(ctx, cfg, obs)
	defer closeStorage()

	handlers, err := buildHandlers(store, directory, obs)
	if err != nil {
		log.Fatalf("failed to build handlers: %v", err)
	}

	server := httpserver.NewServer(
		handlers,
		httpserver.NewJWTVerifier([]byte(cfg.TokenSecret)),
		directory,
		httpserver.WithLogger(obs.logger),
	)

	log.Printf("lending service listening on %s (storage=%s, env=%s)", cfg.HTTPServer.Addr, cfg.Storage, cfg.Env)

	if err := server.Run(ctx, cfg.HTTPServer); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}

	log.Printf("lending service stopped")
}

// newObservability wires slog plus the OTel global providers. In dev, logs go
// to stderr at debug level; the OTel providers are no-ops unless the process
// is started with an SDK configured.
func newObservability(env string) observability {
	level := slog.LevelInfo
	if env == envDev {
		level = slog.LevelDebug
	}

	slogLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return observability{
		logger:           oteladapters.NewSlogLogger(slogLogger),
		contextualLogger: oteladapters.NewSlogBridgeLogger("lending"),
		metrics:          oteladapters.NewMetricsCollector(otel.Meter("lending")),
		tracing:          oteladapters.NewTracingCollector(otel.Tracer("lending")),
	}
}

// buildStorage creates the catalog store and user directory for the
// configured storage engine. The returned close function releases the
// database connections.
func buildStorage(ctx context.Context, cfg *config.ServerConfig, obs observability) (catalogstore.Store, users.Directory, func()) {
	if cfg.Storage == storageMemory {
		return memoryengine.NewEngine(), users.NewMemoryDirectory(), func() {}
	}

	if cfg.Storage != storagePostgres {
		log.Fatalf("unknown storage engine: %s", cfg.Storage)
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("postgres DSN must be configured for postgres storage")
	}

	pgxPool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig(cfg.PostgresDSN))
	if err != nil {
		log.Fatalf("failed to create pgx pool: %v", err)
	}

	if err := pgxPool.Ping(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := postgresengine.NewEngineFromPGXPool(
		pgxPool,
		postgresengine.WithLogger(obs.logger),
		postgresengine.WithContextualLogger(obs.contextualLogger),
		postgresengine.WithMetrics(obs.metrics),
		postgresengine.WithTracing(obs.tracing),
	)
	if err != nil {
		log.Fatalf("failed to create catalog store: %v", err)
	}

	sqlxDB := config.PostgresSQLXConfig(cfg.PostgresDSN)

	directory, err := users.NewPostgresDirectory(sqlxDB)
	if err != nil {
		log.Fatalf("failed to create user directory: %v", err)
	}

	closeStorage := func() {
		pgxPool.Close()

		if closeErr := sqlxDB.Close(); closeErr != nil {
			log.Printf("failed to close sqlx connection: %v", closeErr)
		}
	}

	return store, directory, closeStorage
}

// buildHandlers creates one handler per feature slice and decorates each with
// the observable wrappers.
func buildHandlers(store catalogstore.Store, directory users.Directory, obs observability) (httpserver.Handlers, error) {
	registerHandler, err := wrapCommand(registerbook.NewCommandHandler(store), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	updateHandler, err := wrapCommand(updatebook.NewCommandHandler(store), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	removeHandler, err := wrapCommand(removebook.NewCommandHandler(store), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	borrowHandler, err := wrapCommand(borrowbook.NewCommandHandler(store), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	returnHandler, err := wrapCommand(returnbook.NewCommandHandler(store), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	getBookHandler, err := wrapQuery[getbook.Query, bookview.Book](getbook.NewQueryHandler(store, directory), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	listBooksHandler, err := wrapQuery[listbooks.Query, listbooks.Result](listbooks.NewQueryHandler(store, directory), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	activeLoanHandler, err := wrapQuery[getactiveloan.Query, getactiveloan.Loan](getactiveloan.NewQueryHandler(store), obs)
	if err != nil {
		return httpserver.Handlers{}, err
	}

	return httpserver.Handlers{
		RegisterBook:  registerHandler,
		UpdateBook:    updateHandler,
		RemoveBook:    removeHandler,
		BorrowBook:    borrowHandler,
		ReturnBook:    returnHandler,
		GetBook:       getBookHandler,
		ListBooks:     listBooksHandler,
		GetActiveLoan: activeLoanHandler,
	}, nil
}

func wrapCommand[C shell.Command](handler shell.CoreCommandHandler[C], obs observability) (shell.CoreCommandHandler[C], error) {
	return observable.NewCommandWrapper(
		handler,
		observable.WithCommandMetrics[C](obs.metrics),
		observable.WithCommandTracing[C](obs.tracing),
		observable.WithCommandContextualLogging[C](obs.contextualLogger),
	)
}

func wrapQuery[Q shell.Query, R any](handler shell.CoreQueryHandler[Q, R], obs observability) (shell.CoreQueryHandler[Q, R], error) {
	return observable.NewQueryWrapper(
		handler,
		observable.WithQueryMetrics[Q, R](obs.metrics),
		observable.WithQueryTracing[Q, R](obs.tracing),
		observable.WithQueryContextualLogging[Q, R](obs.contextualLogger),
	)
}
