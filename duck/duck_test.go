package duck

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
)

var errNoAffectedCount = errors.New("rows affected unsupported")

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return stubConn{}, nil
}

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare unused")
}

func (stubConn) Close() error {
	return nil
}

func (stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin unused")
}

func (stubConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	if strings.Contains(query, "broken") {
		return noCountResult{}, nil
	}
	return countedResult{}, nil
}

type countedResult struct{}

func (countedResult) LastInsertId() (int64, error) { return 0, nil }
func (countedResult) RowsAffected() (int64, error) { return 1, nil }

type noCountResult struct{}

func (noCountResult) LastInsertId() (int64, error) { return 0, nil }
func (noCountResult) RowsAffected() (int64, error) { return 0, errNoAffectedCount }

func init() {
	sql.Register("duckstub", stubDriver{})
}

func newStubConn(t *testing.T) *Conn {
	db, err := sql.Open("duckstub", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return &Conn{db: db}
}

func TestExecReportsRowsAffected(t *testing.T) {
	c := newStubConn(t)
	n, err := c.Exec(context.Background(), "UPDATE t SET x = 1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}
}

// A RowsAffected failure must surface as an error, never as zero rows:
// callers treat zero as "no row matched" and would revert a write that
// actually succeeded.
func TestExecRowsAffectedErrorPropagates(t *testing.T) {
	c := newStubConn(t)
	_, err := c.Exec(context.Background(), "UPDATE broken SET x = 1")
	if !errors.Is(err, errNoAffectedCount) {
		t.Fatalf("expected the RowsAffected error, got %v", err)
	}
}
