package result

import (
	"fmt"
	"strconv"
	"time"
)

type (
	// Column describes one column of a result: its name and the declared
	// DuckDB type (e.g. BIGINT, VARCHAR).
	Column struct {
		Name string
		Type string
	}

	// Set is an immutable snapshot of one query's output. It is replaced
	// wholesale on every filter/sort/query change; callers must not mutate
	// it in place (see Patch).
	Set struct {
		Columns []Column
		Rows    [][]any
	}
)

func (s *Set) NumRows() int {
	return len(s.Rows)
}

func (s *Set) NumColumns() int {
	return len(s.Columns)
}

func (s *Set) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the index of the named column, or -1.
func (s *Set) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Clone deep-copies the row structure. Cell values are shared; they are
// never mutated, only replaced.
func (s *Set) Clone() *Set {
	out := &Set{
		Columns: make([]Column, len(s.Columns)),
		Rows:    make([][]any, len(s.Rows)),
	}
	copy(out.Columns, s.Columns)
	for i, row := range s.Rows {
		r := make([]any, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// Patch returns a copy of the set with a single cell replaced. The
// receiver is untouched, preserving snapshot semantics for edits.
func (s *Set) Patch(row, col int, value any) (*Set, error) {
	if row < 0 || row >= len(s.Rows) {
		return nil, fmt.Errorf("row %d out of range (%d rows)", row, len(s.Rows))
	}
	if col < 0 || col >= len(s.Columns) {
		return nil, fmt.Errorf("column %d out of range (%d columns)", col, len(s.Columns))
	}
	out := s.Clone()
	out.Rows[row][col] = value
	return out, nil
}

// StringRow renders one row for display or CSV export.
func (s *Set) StringRow(i int) []string {
	row := s.Rows[i]
	out := make([]string, len(row))
	for j, v := range row {
		out[j] = FormatValue(v)
	}
	return out
}

// FormatValue renders a single cell value the way the grid displays it.
// NULL renders as the literal NULL so it is distinguishable from an empty
// string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
