// Package persist is the edit persistence bridge: it turns a cell
// coordinate plus new value into an UPDATE against the database.
package persist

import (
	"context"
	"fmt"

	"github.com/duckview/duckview/gologger"
	"github.com/duckview/duckview/utils"
)

var (
	logger = gologger.NewLogger()

	ErrNoRowMatched = utils.PermError("update matched no row")
)

// Execer is satisfied by duck.Conn.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

type Bridge struct {
	conn Execer
}

func New(conn Execer) *Bridge {
	return &Bridge{conn: conn}
}

// Update writes one cell, identified by the table's key column value.
// Matching zero rows means the row identity went stale (e.g. the key was
// edited concurrently) and is reported as a conflict.
func (b *Bridge) Update(ctx context.Context, table, keyColumn string, key any, column string, value any) error {
	q := BuildUpdate(table, keyColumn, column)
	n, err := b.conn.Exec(ctx, q, value, key)
	if err != nil {
		return fmt.Errorf("error in Exec: %w", err)
	}
	if n == 0 {
		return ErrNoRowMatched
	}
	logger.Debug().Str("table", table).Str("column", column).Int64("rows", n).Msg("committed cell edit")
	return nil
}

// BuildUpdate renders the statement with placeholders for the new value
// and the key.
func BuildUpdate(table, keyColumn, column string) string {
	return fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?",
		utils.QuoteIdent(table), utils.QuoteIdent(column), utils.QuoteIdent(keyColumn))
}
