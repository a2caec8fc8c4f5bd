// Package postgresengine implements the catalogstore contracts on PostgreSQL.
//
// SQL is built with goqu and executed through a small database adapter, so the
// engine works with a pgx pool, a database/sql DB (lib/pq), or a sqlx DB.
//
// Expected schema:
//
//	CREATE TABLE books (
//	    book_id        uuid PRIMARY KEY,
//	    title          text NOT NULL,
//	    authors        jsonb NOT NULL,
//	    code           text,
//	    publisher      text,
//	    published_date text,
//	    thumbnail_url  text,
//	    created_at     timestamptz NOT NULL,
//	    updated_at     timestamptz NOT NULL,
//	    version        bigint NOT NULL
//	);
//
//	CREATE TABLE borrow_records (
//	    record_id   uuid PRIMARY KEY,
//	    book_id     uuid NOT NULL,
//	    borrower_id uuid NOT NULL,
//	    borrowed_at timestamptz NOT NULL,
//	    due_at      timestamptz NOT NULL,
//	    returned_at timestamptz
//	);
//
//	CREATE UNIQUE INDEX borrow_records_active_uniq
//	    ON borrow_records (book_id) WHERE returned_at IS NULL;
//
//	CREATE TABLE book_removals (
//	    book_id    uuid PRIMARY KEY,
//	    reason     text NOT NULL,
//	    memo       text,
//	    removed_at timestamptz NOT NULL
//	);
//
// Borrow records reference books loosely on purpose: history must survive the
// deletion of a book row. The partial unique index backs the "at most one
// active record per book" invariant; the engine's conditional writes make the
// same guarantee visible as catalogstore.ErrConcurrencyConflict.
package postgresengine
