package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories run queries against: a *sql.DB, a *sql.Tx, or
// either of them wrapped by Bind for a non-SQLite dialect. Queries are
// written with ? placeholders.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = (*boundDBTX)(nil)
)
