package schema

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/duckview/duckview/result"
)

// fakeQuerier routes catalog queries to canned result sets.
type fakeQuerier struct{}

func (fakeQuerier) Query(_ context.Context, sql string, args ...any) (*result.Set, error) {
	switch {
	case strings.Contains(sql, "information_schema.tables"):
		if len(args) == 1 && args[0] == "VIEW" {
			return &result.Set{
				Columns: []result.Column{{Name: "table_name", Type: "VARCHAR"}},
				Rows:    [][]any{{"active_people"}},
			}, nil
		}
		return &result.Set{
			Columns: []result.Column{{Name: "table_name", Type: "VARCHAR"}},
			Rows:    [][]any{{"people"}},
		}, nil

	case strings.HasPrefix(sql, "DESCRIBE"):
		return &result.Set{
			Columns: []result.Column{
				{Name: "column_name", Type: "VARCHAR"},
				{Name: "column_type", Type: "VARCHAR"},
				{Name: "null", Type: "VARCHAR"},
				{Name: "key", Type: "VARCHAR"},
				{Name: "default", Type: "VARCHAR"},
				{Name: "extra", Type: "VARCHAR"},
			},
			Rows: [][]any{
				{"id", "BIGINT", "NO", "PRI", nil, nil},
				{"name", "VARCHAR", "YES", nil, "'unnamed'", nil},
			},
		}, nil

	case strings.Contains(sql, "duckdb_constraints"):
		return &result.Set{
			Columns: []result.Column{{Name: "unnest", Type: "VARCHAR"}},
			Rows:    [][]any{{"id"}},
		}, nil
	}
	return &result.Set{}, nil
}

func TestListTablesAndViews(t *testing.T) {
	tables, err := ListTables(context.Background(), fakeQuerier{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tables, []string{"people"}) {
		t.Fatalf("unexpected tables: %v", tables)
	}

	views, err := ListViews(context.Background(), fakeQuerier{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(views, []string{"active_people"}) {
		t.Fatalf("unexpected views: %v", views)
	}
}

func TestDescribe(t *testing.T) {
	cols, err := Describe(context.Background(), fakeQuerier{}, "people")
	if err != nil {
		t.Fatal(err)
	}
	want := []ColumnInfo{
		{Name: "id", Type: "BIGINT", Nullable: false},
		{Name: "name", Type: "VARCHAR", Nullable: true, Default: "'unnamed'"},
	}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("got %+v, want %+v", cols, want)
	}
}

func TestKeyColumn(t *testing.T) {
	cols := []ColumnInfo{{Name: "first"}, {Name: "second"}}

	key, err := KeyColumn(context.Background(), fakeQuerier{}, "people", cols)
	if err != nil {
		t.Fatal(err)
	}
	if key != "id" {
		t.Fatalf("expected primary key column, got %q", key)
	}

	// without constraints the first column is the row identity
	noPK := noConstraintQuerier{}
	key, err = KeyColumn(context.Background(), noPK, "people", cols)
	if err != nil {
		t.Fatal(err)
	}
	if key != "first" {
		t.Fatalf("expected first column fallback, got %q", key)
	}

	if _, err := KeyColumn(context.Background(), noPK, "people", nil); err == nil {
		t.Fatal("expected error for zero columns")
	}
}

type noConstraintQuerier struct{}

func (noConstraintQuerier) Query(_ context.Context, sql string, args ...any) (*result.Set, error) {
	return &result.Set{}, nil
}

func TestFormatText(t *testing.T) {
	tables := []TableSchema{
		{
			Name: "people",
			Columns: []ColumnInfo{
				{Name: "id", Type: "BIGINT", Nullable: false},
				{Name: "name", Type: "VARCHAR", Nullable: true, Default: "'unnamed'"},
			},
			PrimaryKeys: []string{"id"},
			ForeignKeys: []ForeignKey{{Column: "team_id", RefTable: "teams", RefColumn: "id"}},
		},
	}
	got := FormatText(tables)
	want := "people\n" +
		"  id BIGINT NOT NULL\n" +
		"  name VARCHAR NULL DEFAULT 'unnamed'\n" +
		"  PRIMARY KEY (id)\n" +
		"  FOREIGN KEY team_id REFERENCES teams(id)\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSnapshot(t *testing.T) {
	tables, err := Snapshot(context.Background(), fakeQuerier{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 || tables[0].Name != "people" {
		t.Fatalf("unexpected snapshot: %+v", tables)
	}
	if !reflect.DeepEqual(tables[0].PrimaryKeys, []string{"id"}) {
		t.Fatalf("unexpected primary keys: %v", tables[0].PrimaryKeys)
	}
}
