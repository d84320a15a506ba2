package tableview

import (
	"reflect"
	"testing"
)

func TestFilterStateOrdering(t *testing.T) {
	f := newFilterState()
	f.Set("b", "1")
	f.Set("a", "2")
	f.Set("b", "3") // replace keeps position

	if got := f.Columns(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if got := f.Fragment("b"); got != "3" {
		t.Fatalf("expected replaced fragment, got %q", got)
	}

	f.Set("b", "")
	if got := f.Columns(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("empty fragment should remove the entry: %v", got)
	}

	f.Clear()
	if !f.Empty() {
		t.Fatal("expected empty after clear")
	}
	if got := f.WhereClause(); got != "" {
		t.Fatalf("expected empty where clause, got %q", got)
	}
}

func TestFragmentSQL(t *testing.T) {
	tests := []struct {
		column   string
		fragment string
		want     string
	}{
		{"name", "jo", `CAST("name" AS VARCHAR) ILIKE '%jo%'`},
		{"name", "O'Brien", `CAST("name" AS VARCHAR) ILIKE '%O''Brien%'`},
		{"id", "> 10", `"id" > 10`},
		{"id", "= 3", `"id" = 3`},
		{"id", "!= 3", `"id" != 3`},
		{"name", "LIKE 'a%'", `"name" LIKE 'a%'`},
		{"name", "ilike '%a%'", `"name" ilike '%a%'`},
		{"name", "IS NOT NULL", `"name" IS NOT NULL`},
		{"id", "IN (1, 2)", `"id" IN (1, 2)`},
		{"id", "BETWEEN 1 AND 5", `"id" BETWEEN 1 AND 5`},
		{"id", "  > 10  ", `"id" > 10`},
	}
	for _, tt := range tests {
		if got := fragmentSQL(tt.column, tt.fragment); got != tt.want {
			t.Fatalf("fragmentSQL(%q, %q) = %q, want %q", tt.column, tt.fragment, got, tt.want)
		}
	}
}

func TestWhereClauseJoinsWithAND(t *testing.T) {
	f := newFilterState()
	f.Set("name", "a")
	f.Set("id", "> 1")

	want := `CAST("name" AS VARCHAR) ILIKE '%a%' AND "id" > 1`
	if got := f.WhereClause(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
