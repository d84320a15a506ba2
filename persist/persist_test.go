package persist

import (
	"context"
	"errors"
	"testing"
)

type fakeExecer struct {
	sql  string
	args []any
	n    int64
	err  error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	f.sql = sql
	f.args = args
	return f.n, f.err
}

func TestBuildUpdate(t *testing.T) {
	got := BuildUpdate("people", "id", "name")
	want := `UPDATE "people" SET "name" = ? WHERE "id" = ?`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = BuildUpdate(`we"ird`, "id", "name")
	want = `UPDATE "we""ird" SET "name" = ? WHERE "id" = ?`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUpdate(t *testing.T) {
	ex := &fakeExecer{n: 1}
	b := New(ex)

	err := b.Update(context.Background(), "people", "id", int64(2), "name", "Janice")
	if err != nil {
		t.Fatal(err)
	}
	if ex.sql != `UPDATE "people" SET "name" = ? WHERE "id" = ?` {
		t.Fatalf("unexpected sql: %q", ex.sql)
	}
	if len(ex.args) != 2 || ex.args[0] != "Janice" || ex.args[1] != int64(2) {
		t.Fatalf("unexpected args: %v", ex.args)
	}
}

func TestUpdateNoRowMatched(t *testing.T) {
	b := New(&fakeExecer{n: 0})
	err := b.Update(context.Background(), "people", "id", int64(99), "name", "x")
	if !errors.Is(err, ErrNoRowMatched) {
		t.Fatalf("expected ErrNoRowMatched, got %v", err)
	}
}

func TestUpdateExecError(t *testing.T) {
	boom := errors.New("db locked")
	b := New(&fakeExecer{err: boom})
	err := b.Update(context.Background(), "people", "id", int64(1), "name", "x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
}
