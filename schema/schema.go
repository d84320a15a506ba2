// Package schema introspects the database catalog: table and view
// listings, column descriptors, and key relationships, plus the text
// rendering used for copying a schema to the clipboard.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/duckview/duckview/result"
	"github.com/duckview/duckview/utils"
)

// Querier is satisfied by duck.Conn.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (*result.Set, error)
}

type (
	ColumnInfo struct {
		Name     string
		Type     string
		Nullable bool
		Default  string
	}

	ForeignKey struct {
		Column    string
		RefTable  string
		RefColumn string
	}

	TableSchema struct {
		Name        string
		Columns     []ColumnInfo
		PrimaryKeys []string
		ForeignKeys []ForeignKey
	}
)

func ListTables(ctx context.Context, q Querier) ([]string, error) {
	return listRelations(ctx, q, "BASE TABLE")
}

func ListViews(ctx context.Context, q Querier) ([]string, error) {
	return listRelations(ctx, q, "VIEW")
}

func listRelations(ctx context.Context, q Querier, tableType string) ([]string, error) {
	set, err := q.Query(ctx, "SELECT table_name FROM information_schema.tables WHERE table_type = ? ORDER BY table_name", tableType)
	if err != nil {
		return nil, fmt.Errorf("error listing relations: %w", err)
	}
	names := make([]string, 0, set.NumRows())
	for _, row := range set.Rows {
		names = append(names, result.FormatValue(row[0]))
	}
	return names, nil
}

// Describe fetches column descriptors for one table via DESCRIBE, which
// reports column_name, column_type, null, key, default, extra.
func Describe(ctx context.Context, q Querier, table string) ([]ColumnInfo, error) {
	set, err := q.Query(ctx, "DESCRIBE "+utils.QuoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("error describing %s: %w", table, err)
	}
	cols := make([]ColumnInfo, 0, set.NumRows())
	for _, row := range set.Rows {
		ci := ColumnInfo{
			Name:     result.FormatValue(row[0]),
			Type:     result.FormatValue(row[1]),
			Nullable: result.FormatValue(row[2]) != "NO",
		}
		if len(row) > 4 && row[4] != nil {
			ci.Default = result.FormatValue(row[4])
		}
		cols = append(cols, ci)
	}
	return cols, nil
}

// PrimaryKeys reads the primary key column names from duckdb_constraints.
func PrimaryKeys(ctx context.Context, q Querier, table string) ([]string, error) {
	set, err := q.Query(ctx,
		"SELECT unnest(constraint_column_names) FROM duckdb_constraints() WHERE table_name = ? AND constraint_type = 'PRIMARY KEY'",
		table)
	if err != nil {
		return nil, fmt.Errorf("error reading constraints for %s: %w", table, err)
	}
	keys := make([]string, 0, set.NumRows())
	for _, row := range set.Rows {
		keys = append(keys, result.FormatValue(row[0]))
	}
	return keys, nil
}

// KeyColumn picks the column used as row identity for edits: the first
// primary key column when one exists, otherwise the table's first column.
func KeyColumn(ctx context.Context, q Querier, table string, cols []ColumnInfo) (string, error) {
	pks, err := PrimaryKeys(ctx, q, table)
	if err == nil && len(pks) > 0 {
		return pks[0], nil
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("table %s has no columns", table)
	}
	return cols[0].Name, nil
}

// Snapshot collects the schema of every table for clipboard export.
func Snapshot(ctx context.Context, q Querier) ([]TableSchema, error) {
	tables, err := ListTables(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]TableSchema, 0, len(tables))
	for _, t := range tables {
		cols, err := Describe(ctx, q, t)
		if err != nil {
			return nil, err
		}
		pks, err := PrimaryKeys(ctx, q, t)
		if err != nil {
			return nil, err
		}
		out = append(out, TableSchema{Name: t, Columns: cols, PrimaryKeys: pks})
	}
	return out, nil
}

// FormatText renders table schemas as the plain text placed on the
// clipboard: one block per table, a line per column with type and
// nullability, then key information.
func FormatText(tables []TableSchema) string {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Name)
		b.WriteString("\n")
		for _, c := range t.Columns {
			null := "NULL"
			if !c.Nullable {
				null = "NOT NULL"
			}
			b.WriteString(fmt.Sprintf("  %s %s %s", c.Name, c.Type, null))
			if c.Default != "" {
				b.WriteString(" DEFAULT " + c.Default)
			}
			b.WriteString("\n")
		}
		if len(t.PrimaryKeys) > 0 {
			b.WriteString("  PRIMARY KEY (" + strings.Join(t.PrimaryKeys, ", ") + ")\n")
		}
		for _, fk := range t.ForeignKeys {
			b.WriteString(fmt.Sprintf("  FOREIGN KEY %s REFERENCES %s(%s)\n", fk.Column, fk.RefTable, fk.RefColumn))
		}
	}
	return b.String()
}
