package result

import (
	"reflect"
	"testing"
	"time"
)

func sample() *Set {
	return &Set{
		Columns: []Column{{Name: "id", Type: "BIGINT"}, {Name: "name", Type: "VARCHAR"}},
		Rows:    [][]any{{int64(1), "John"}, {int64(2), nil}},
	}
}

func TestColumnIndex(t *testing.T) {
	s := sample()
	if got := s.ColumnIndex("name"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := s.ColumnIndex("missing"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := sample()
	c := s.Clone()
	c.Rows[0][1] = "changed"
	if s.Rows[0][1] != "John" {
		t.Fatal("clone mutation leaked into the original")
	}
}

func TestPatchLeavesReceiverUntouched(t *testing.T) {
	s := sample()
	p, err := s.Patch(0, 1, "Johnny")
	if err != nil {
		t.Fatal(err)
	}
	if p.Rows[0][1] != "Johnny" {
		t.Fatalf("expected patched value, got %v", p.Rows[0][1])
	}
	if s.Rows[0][1] != "John" {
		t.Fatal("patch mutated the receiver")
	}

	if _, err := s.Patch(5, 0, "x"); err == nil {
		t.Fatal("expected row range error")
	}
	if _, err := s.Patch(0, 5, "x"); err == nil {
		t.Fatal("expected column range error")
	}
}

func TestStringRow(t *testing.T) {
	s := sample()
	if got := s.StringRow(1); !reflect.DeepEqual(got, []string{"2", "NULL"}) {
		t.Fatalf("unexpected row: %v", got)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"x", "x"},
		{[]byte("bytes"), "bytes"},
		{int64(42), "42"},
		{3.5, "3.5"},
		{float32(2), "2"},
		{true, "true"},
		{false, "false"},
		{ts, "2024-05-01T12:00:00Z"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Fatalf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
