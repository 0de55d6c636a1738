package postgres

import (
	"context"
	"database/sql"
)

// Queryer is the single-statement surface the document store needs.
// Both *Connection and *sql.Tx satisfy it.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
