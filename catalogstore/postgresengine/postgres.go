package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/bibliofleet/lending-go/catalogstore"
	"github.com/bibliofleet/lending-go/catalogstore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName    = "books"
	defaultBorrowsTableName  = "borrow_records"
	defaultRemovalsTableName = "book_removals"

	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "catalogstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrBookID             = "book_id"
	logAttrRowCount           = "row_count"
	logAttrRowsAffected       = "rows_affected"
	logAttrDurationMS         = "duration_ms"

	colBookID        = "book_id"
	colTitle         = "title"
	colAuthors       = "authors"
	colCode          = "code"
	colPublisher     = "publisher"
	colPublishedDate = "published_date"
	colThumbnailURL  = "thumbnail_url"
	colCreatedAt     = "created_at"
	colUpdatedAt     = "updated_at"
	colVersion       = "version"

	colRecordID   = "record_id"
	colBorrowerID = "borrower_id"
	colBorrowedAt = "borrowed_at"
	colDueAt      = "due_at"
	colReturnedAt = "returned_at"

	colReason    = "reason"
	colMemo      = "memo"
	colRemovedAt = "removed_at"

	dialectPostgres = "postgres"
	castText        = "?::text"
	castUUID        = "?::uuid"
	castJsonb       = "?::jsonb"
	castTimestamp   = "?::timestamp with time zone"
)

type (
	sqlStatementString = string
	rowsAffectedInt64  = int64
)

// ErrBuildingQueryFailed is returned when a SQL statement could not be built.
var ErrBuildingQueryFailed = errors.New("building sql statement failed")

// Engine implements catalogstore.Store on PostgreSQL.
// It leverages a database adapter and supports customizable logging and table configuration.
type Engine struct {
	db               adapters.DBAdapter
	booksTable       string
	borrowsTable     string
	removalsTable    string
	logger           catalogstore.Logger
	contextualLogger catalogstore.ContextualLogger
	metricsCollector catalogstore.MetricsCollector
	tracingCollector catalogstore.TracingCollector
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalogstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (*Engine, error) {
	engine := &Engine{
		db:            db,
		booksTable:    defaultBooksTableName,
		borrowsTable:  defaultBorrowsTableName,
		removalsTable: defaultRemovalsTableName,
	}

	for _, option := range options {
		if err := option(engine); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

/* ----- book store ----- */

// InsertBook stores a new book row. The insert is conditional on the ID not
// existing yet, so a collision surfaces as catalogstore.ErrDuplicateBook
// instead of a driver-specific unique violation.
func (e *Engine) InsertBook(ctx context.Context, row catalogstore.BookRow) error {
	authorsJSON, marshalErr := jsoniter.Marshal(row.Authors)
	if marshalErr != nil {
		return marshalErr
	}

	builder := goqu.Dialect(dialectPostgres)

	existsStmt := builder.
		From(e.booksTable).
		Select(goqu.L("1")).
		Where(goqu.Ex{colBookID: row.ID.String()})

	selectStmt := builder.
		Select(
			goqu.L(castUUID, row.ID.String()),
			goqu.L(castText, row.Title),
			goqu.L(castJsonb, string(authorsJSON)),
			nullableText(row.Code),
			nullableText(row.Publisher),
			nullableText(row.PublishedDate),
			nullableText(row.ThumbnailURL),
			goqu.L(castTimestamp, row.CreatedAt),
			goqu.L(castTimestamp, row.UpdatedAt),
			goqu.V(int64(row.Version)),
		).
		Where(goqu.L("NOT EXISTS ?", existsStmt))

	insertStmt := builder.
		Insert(e.booksTable).
		Cols(
			colBookID, colTitle, colAuthors, colCode, colPublisher,
			colPublishedDate, colThumbnailURL, colCreatedAt, colUpdatedAt, colVersion,
		).
		FromQuery(selectStmt)

	sqlStatement, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return e.buildQueryError(toSQLErr)
	}

	rowsAffected, execErr := e.executeStatement(ctx, sqlStatement, "insert book")
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return catalogstore.ErrDuplicateBook
	}

	return nil
}

// GetBook returns the book row or catalogstore.ErrBookNotFound.
func (e *Engine) GetBook(ctx context.Context, bookID uuid.UUID) (catalogstore.BookRow, error) {
	var empty catalogstore.BookRow

	selectStmt := goqu.Dialect(dialectPostgres).
		From(e.booksTable).
		Select(e.bookColumns()...).
		Where(goqu.Ex{colBookID: bookID.String()})

	sqlStatement, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, e.buildQueryError(toSQLErr)
	}

	rows, queryErr := e.executeQuery(ctx, sqlStatement, "get book")
	if queryErr != nil {
		return empty, queryErr
	}
	defer e.closeRows(rows)

	if !rows.Next() {
		return empty, catalogstore.ErrBookNotFound
	}

	return e.scanBookRow(rows)
}

// ListBooks returns one stable-ordered page plus the window-independent total.
func (e *Engine) ListBooks(ctx context.Context, selection catalogstore.Selection) ([]catalogstore.BookRow, int64, error) {
	builder := goqu.Dialect(dialectPostgres)

	countStmt := builder.
		From(e.booksTable).
		Select(goqu.COUNT(goqu.Star()))

	pageStmt := builder.
		From(e.booksTable).
		Select(e.bookColumns()...).
		Order(goqu.I(colCreatedAt).Asc(), goqu.I(colBookID).Asc())

	if selection.Keyword != nil {
		keywordExpr := goqu.I(colTitle).ILike("%" + *selection.Keyword + "%")
		countStmt = countStmt.Where(keywordExpr)
		pageStmt = pageStmt.Where(keywordExpr)
	}

	if selection.Limit > 0 {
		pageStmt = pageStmt.Limit(uint(selection.Limit))
	}
	if selection.Offset > 0 {
		pageStmt = pageStmt.Offset(uint(selection.Offset))
	}

	total, countErr := e.queryCount(ctx, countStmt)
	if countErr != nil {
		return nil, 0, countErr
	}

	sqlStatement, _, toSQLErr := pageStmt.ToSQL()
	if toSQLErr != nil {
		return nil, 0, e.buildQueryError(toSQLErr)
	}

	rows, queryErr := e.executeQuery(ctx, sqlStatement, "list books")
	if queryErr != nil {
		return nil, 0, queryErr
	}
	defer e.closeRows(rows)

	bookRows := make([]catalogstore.BookRow, 0)

	for rows.Next() {
		bookRow, scanErr := e.scanBookRow(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}

		bookRows = append(bookRows, bookRow)
	}

	e.logOperation(ctx, "list books", logAttrRowCount, len(bookRows))

	return bookRows, total, nil
}

// UpdateBook replaces the row's mutable fields with a compare-and-set on the version column.
func (e *Engine) UpdateBook(ctx context.Context, row catalogstore.BookRow, expectedVersion uint64) error {
	authorsJSON, marshalErr := jsoniter.Marshal(row.Authors)
	if marshalErr != nil {
		return marshalErr
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(e.booksTable).
		Set(goqu.Record{
			colTitle:         row.Title,
			colAuthors:       goqu.L(castJsonb, string(authorsJSON)),
			colCode:          nullableValue(row.Code),
			colPublisher:     nullableValue(row.Publisher),
			colPublishedDate: nullableValue(row.PublishedDate),
			colThumbnailURL:  nullableValue(row.ThumbnailURL),
			colUpdatedAt:     goqu.L(castTimestamp, row.UpdatedAt),
			colVersion:       int64(expectedVersion + 1),
		}).
		Where(goqu.Ex{
			colBookID:  row.ID.String(),
			colVersion: int64(expectedVersion),
		})

	return e.executeConditionalWrite(ctx, updateStmt, "update book", row.ID)
}

// RemoveBook deletes the book row and writes the removal audit record in one
// statement, guarded by "no active borrow exists". Borrow records are
// untouched, history is retained for audit.
func (e *Engine) RemoveBook(ctx context.Context, removal catalogstore.RemovalRow) error {
	builder := goqu.Dialect(dialectPostgres)

	deleteStmt := builder.
		Delete(e.booksTable).
		Where(
			goqu.Ex{colBookID: removal.BookID.String()},
			goqu.L("NOT EXISTS ?", e.activeBorrowStmt(removal.BookID)),
		).
		Returning(goqu.C(colBookID))

	// The audit insert selects from the delete's CTE, so it only writes when
	// the guarded delete actually removed the row; zero rows affected still
	// signals the lost guard.
	auditStmt := builder.
		Insert(e.removalsTable).
		Cols(colBookID, colReason, colMemo, colRemovedAt).
		FromQuery(builder.
			From("removed").
			Select(
				goqu.I(colBookID),
				goqu.L(castText, removal.Reason),
				nullableText(removal.Memo),
				goqu.L(castTimestamp, removal.RemovedAt),
			)).
		With("removed", deleteStmt)

	return e.executeConditionalWrite(ctx, auditStmt, "remove book", removal.BookID)
}

/* ----- borrow ledger ----- */

// ActiveBorrow returns the book's active borrow record or catalogstore.ErrNoActiveBorrow.
func (e *Engine) ActiveBorrow(ctx context.Context, bookID uuid.UUID) (catalogstore.BorrowRow, error) {
	var empty catalogstore.BorrowRow

	selectStmt := goqu.Dialect(dialectPostgres).
		From(e.borrowsTable).
		Select(e.borrowColumns()...).
		Where(
			goqu.Ex{colBookID: bookID.String()},
			goqu.I(colReturnedAt).IsNull(),
		)

	sqlStatement, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, e.buildQueryError(toSQLErr)
	}

	rows, queryErr := e.executeQuery(ctx, sqlStatement, "active borrow")
	if queryErr != nil {
		return empty, queryErr
	}
	defer e.closeRows(rows)

	if !rows.Next() {
		return empty, catalogstore.ErrNoActiveBorrow
	}

	return e.scanBorrowRow(rows)
}

// ActiveBorrows returns the active borrow records for the given books.
func (e *Engine) ActiveBorrows(ctx context.Context, bookIDs []uuid.UUID) ([]catalogstore.BorrowRow, error) {
	if len(bookIDs) == 0 {
		return []catalogstore.BorrowRow{}, nil
	}

	ids := make([]string, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		ids = append(ids, bookID.String())
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(e.borrowsTable).
		Select(e.borrowColumns()...).
		Where(
			goqu.I(colBookID).In(ids),
			goqu.I(colReturnedAt).IsNull(),
		)

	sqlStatement, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, e.buildQueryError(toSQLErr)
	}

	rows, queryErr := e.executeQuery(ctx, sqlStatement, "active borrows")
	if queryErr != nil {
		return nil, queryErr
	}
	defer e.closeRows(rows)

	borrowRows := make([]catalogstore.BorrowRow, 0, len(bookIDs))

	for rows.Next() {
		borrowRow, scanErr := e.scanBorrowRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		borrowRows = append(borrowRows, borrowRow)
	}

	return borrowRows, nil
}

// OpenBorrow appends a fresh active record, guarded by
// "the book exists and has no active borrow".
func (e *Engine) OpenBorrow(ctx context.Context, row catalogstore.BorrowRow) error {
	builder := goqu.Dialect(dialectPostgres)

	bookExistsStmt := builder.
		From(e.booksTable).
		Select(goqu.L("1")).
		Where(goqu.Ex{colBookID: row.BookID.String()})

	selectStmt := builder.
		Select(
			goqu.L(castUUID, row.ID.String()),
			goqu.L(castUUID, row.BookID.String()),
			goqu.L(castUUID, row.BorrowerID.String()),
			goqu.L(castTimestamp, row.BorrowedAt),
			goqu.L(castTimestamp, row.DueAt),
		).
		Where(goqu.And(
			goqu.L("EXISTS ?", bookExistsStmt),
			goqu.L("NOT EXISTS ?", e.activeBorrowStmt(row.BookID)),
		))

	insertStmt := builder.
		Insert(e.borrowsTable).
		Cols(colRecordID, colBookID, colBorrowerID, colBorrowedAt, colDueAt).
		FromQuery(selectStmt)

	return e.executeConditionalWrite(ctx, insertStmt, "open borrow", row.BookID)
}

// ExtendBorrow moves the record's due date, guarded by "the record is still active".
func (e *Engine) ExtendBorrow(ctx context.Context, recordID uuid.UUID, dueAt time.Time) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(e.borrowsTable).
		Set(goqu.Record{
			colDueAt: goqu.L(castTimestamp, dueAt),
		}).
		Where(
			goqu.Ex{colRecordID: recordID.String()},
			goqu.I(colReturnedAt).IsNull(),
		)

	return e.executeConditionalWrite(ctx, updateStmt, "extend borrow", recordID)
}

// CloseBorrow sets the record's returned-at, guarded by "the record is still active".
func (e *Engine) CloseBorrow(ctx context.Context, recordID uuid.UUID, returnedAt time.Time) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(e.borrowsTable).
		Set(goqu.Record{
			colReturnedAt: goqu.L(castTimestamp, returnedAt),
		}).
		Where(
			goqu.Ex{colRecordID: recordID.String()},
			goqu.I(colReturnedAt).IsNull(),
		)

	return e.executeConditionalWrite(ctx, updateStmt, "close borrow", recordID)
}

/* ----- execution helpers ----- */

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

// executeConditionalWrite executes a guarded statement and maps "zero rows
// affected" to catalogstore.ErrConcurrencyConflict.
func (e *Engine) executeConditionalWrite(ctx context.Context, stmt sqlBuilder, action string, id uuid.UUID) error {
	sqlStatement, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return e.buildQueryError(toSQLErr)
	}

	rowsAffected, execErr := e.executeStatement(ctx, sqlStatement, action)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		e.logOperation(ctx, logMsgConcurrencyConflict, logAttrBookID, id.String(), logAttrRowsAffected, rowsAffected)
		e.recordConcurrencyConflictMetrics(ctx, action)

		return catalogstore.ErrConcurrencyConflict
	}

	e.logOperation(ctx, action, logAttrRowsAffected, rowsAffected)

	return nil
}

func (e *Engine) executeStatement(ctx context.Context, sqlStatement string, action string) (rowsAffectedInt64, error) {
	spanCtx, span := e.startSpan(ctx, spanNameWrite, action)

	start := time.Now()
	result, execErr := e.db.Exec(spanCtx, sqlStatement)
	duration := time.Since(start)
	e.logStatementWithDuration(spanCtx, sqlStatement, action, duration)

	if execErr != nil {
		e.logError(spanCtx, logMsgDBExecFailed, execErr, logAttrQuery, sqlStatement)
		e.recordErrorMetrics(spanCtx, action)
		e.finishSpanError(span, errorTypeDatabase)

		return 0, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		e.logError(spanCtx, logMsgRowsAffectedFailed, rowsAffectedErr)
		e.recordErrorMetrics(spanCtx, action)
		e.finishSpanError(span, errorTypeDatabase)

		return 0, rowsAffectedErr
	}

	e.recordDurationMetrics(spanCtx, metricWriteDuration, duration, action, statusSuccess)
	e.finishSpanSuccess(span, duration, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
	})

	return rowsAffected, nil
}

func (e *Engine) executeQuery(ctx context.Context, sqlStatement string, action string) (adapters.DBRows, error) {
	spanCtx, span := e.startSpan(ctx, spanNameQuery, action)

	start := time.Now()
	rows, queryErr := e.db.Query(spanCtx, sqlStatement)
	duration := time.Since(start)
	e.logStatementWithDuration(spanCtx, sqlStatement, action, duration)

	if queryErr != nil {
		e.logError(spanCtx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlStatement)
		e.recordErrorMetrics(spanCtx, action)
		e.finishSpanError(span, errorTypeDatabase)

		return nil, queryErr
	}

	e.recordDurationMetrics(spanCtx, metricQueryDuration, duration, action, statusSuccess)
	e.finishSpanSuccess(span, duration, nil)

	return rows, nil
}

func (e *Engine) queryCount(ctx context.Context, stmt *goqu.SelectDataset) (int64, error) {
	sqlStatement, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return 0, e.buildQueryError(toSQLErr)
	}

	rows, queryErr := e.executeQuery(ctx, sqlStatement, "count books")
	if queryErr != nil {
		return 0, queryErr
	}
	defer e.closeRows(rows)

	var count int64
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			if e.logger != nil {
				e.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
			}

			return 0, scanErr
		}
	}

	return count, nil
}

func (e *Engine) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if e.logger != nil {
			e.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

/* ----- row mapping ----- */

// bookColumns lists the book select columns; uuid is cast to text so scanning
// behaves identically across the pgx and database/sql drivers.
func (e *Engine) bookColumns() []any {
	return []any{
		goqu.L(colBookID + "::text"),
		goqu.C(colTitle),
		goqu.L(colAuthors + "::text"),
		goqu.C(colCode),
		goqu.C(colPublisher),
		goqu.C(colPublishedDate),
		goqu.C(colThumbnailURL),
		goqu.C(colCreatedAt),
		goqu.C(colUpdatedAt),
		goqu.C(colVersion),
	}
}

func (e *Engine) borrowColumns() []any {
	return []any{
		goqu.L(colRecordID + "::text"),
		goqu.L(colBookID + "::text"),
		goqu.L(colBorrowerID + "::text"),
		goqu.C(colBorrowedAt),
		goqu.C(colDueAt),
		goqu.C(colReturnedAt),
	}
}

func (e *Engine) scanBookRow(rows adapters.DBRows) (catalogstore.BookRow, error) {
	var empty catalogstore.BookRow

	var (
		bookID      string
		title       string
		authorsJSON string
		code        sql.NullString
		publisher   sql.NullString
		published   sql.NullString
		thumbnail   sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		version     int64
	)

	scanErr := rows.Scan(
		&bookID, &title, &authorsJSON, &code, &publisher,
		&published, &thumbnail, &createdAt, &updatedAt, &version,
	)
	if scanErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
		}

		return empty, scanErr
	}

	parsedID, parseErr := uuid.Parse(bookID)
	if parseErr != nil {
		return empty, parseErr
	}

	var authors []string
	if unmarshalErr := jsoniter.UnmarshalFromString(authorsJSON, &authors); unmarshalErr != nil {
		return empty, unmarshalErr
	}

	return catalogstore.BookRow{
		ID:            parsedID,
		Title:         title,
		Authors:       authors,
		Code:          nullStringToPtr(code),
		Publisher:     nullStringToPtr(publisher),
		PublishedDate: nullStringToPtr(published),
		ThumbnailURL:  nullStringToPtr(thumbnail),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		Version:       uint64(version),
	}, nil
}

func (e *Engine) scanBorrowRow(rows adapters.DBRows) (catalogstore.BorrowRow, error) {
	var empty catalogstore.BorrowRow

	var (
		recordID   string
		bookID     string
		borrowerID string
		borrowedAt time.Time
		dueAt      time.Time
		returnedAt sql.NullTime
	)

	scanErr := rows.Scan(&recordID, &bookID, &borrowerID, &borrowedAt, &dueAt, &returnedAt)
	if scanErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
		}

		return empty, scanErr
	}

	parsedRecordID, parseErr := uuid.Parse(recordID)
	if parseErr != nil {
		return empty, parseErr
	}

	parsedBookID, parseErr := uuid.Parse(bookID)
	if parseErr != nil {
		return empty, parseErr
	}

	parsedBorrowerID, parseErr := uuid.Parse(borrowerID)
	if parseErr != nil {
		return empty, parseErr
	}

	row := catalogstore.BorrowRow{
		ID:         parsedRecordID,
		BookID:     parsedBookID,
		BorrowerID: parsedBorrowerID,
		BorrowedAt: borrowedAt,
		DueAt:      dueAt,
	}

	if returnedAt.Valid {
		returned := returnedAt.Time
		row.ReturnedAt = &returned
	}

	return row, nil
}

// nullableText renders an optional string as a typed SQL literal, NULL when absent.
func nullableText(value *string) exp.LiteralExpression {
	if value == nil {
		return goqu.L("NULL::text")
	}

	return goqu.L(castText, *value)
}

// nullableValue renders an optional string as a goqu.Record value, NULL when absent.
func nullableValue(value *string) any {
	if value == nil {
		return nil
	}

	return *value
}

func nullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}

	return &ns.String
}

/* ----- logging helpers ----- */

func (e *Engine) buildQueryError(toSQLErr error) error {
	if e.logger != nil {
		e.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
	}

	return errors.Join(ErrBuildingQueryFailed, toSQLErr)
}

func (e *Engine) activeBorrowStmt(bookID uuid.UUID) *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(e.borrowsTable).
		Select(goqu.L("1")).
		Where(
			goqu.Ex{colBookID: bookID.String()},
			goqu.I(colReturnedAt).IsNull(),
		)
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

var _ catalogstore.Store = (*Engine)(nil)
