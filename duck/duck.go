package duck

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/UltimateTournament/backoff/v4"
	"github.com/duckview/duckview/gologger"
	"github.com/duckview/duckview/result"
	_ "github.com/marcboeker/go-duckdb"
)

var logger = gologger.NewLogger()

// Conn is the single serialized handle to the DuckDB file. DuckDB holds an
// exclusive lock on the database file, so every statement goes through one
// connection guarded by a mutex: one outstanding statement at a time.
type Conn struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open opens (or creates) the database file. Another process may hold the
// file lock briefly, so the initial ping retries with exponential backoff
// before giving up.
func Open(path string) (*Conn, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("error in sql.Open: %w", err)
	}

	// A single connection: DuckDB is embedded, and the view serializes all
	// statements anyway.
	db.SetMaxOpenConns(1)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Millisecond * 100
	bo.MaxElapsedTime = time.Second * 10
	err = backoff.Retry(func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second*2)
		defer cancel()
		return db.PingContext(pingCtx)
	}, bo)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error pinging %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Msg("opened duckdb database")
	return &Conn{db: db, path: path}, nil
}

func (c *Conn) Path() string {
	return c.path
}

// Query runs a statement that returns rows and snapshots the full output
// into an immutable result.Set.
func (c *Conn) Query(ctx context.Context, q string, args ...any) (*result.Set, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error in QueryContext: %w", err)
	}
	defer rows.Close()

	return scanSet(rows)
}

// Exec runs a statement that returns no rows and reports rows affected.
func (c *Conn) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("error in ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error in RowsAffected: %w", err)
	}
	return n, nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

func scanSet(rows *sql.Rows) (*result.Set, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("error in ColumnTypes: %w", err)
	}

	set := &result.Set{
		Columns: make([]result.Column, len(colTypes)),
	}
	for i, ct := range colTypes {
		set.Columns[i] = result.Column{
			Name: ct.Name(),
			Type: ct.DatabaseTypeName(),
		}
	}

	for rows.Next() {
		vals := make([]any, len(colTypes))
		ptrs := make([]any, len(colTypes))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("error in rows.Scan: %w", err)
		}
		set.Rows = append(set.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return set, nil
}
