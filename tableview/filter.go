package tableview

import (
	"strings"

	"github.com/duckview/duckview/utils"
)

// FilterState maps column names to predicate fragments. Fragments are
// AND-combined into a WHERE clause; clearing every fragment reproduces
// the unfiltered query. Insertion order is kept so the generated SQL is
// stable.
type FilterState struct {
	order []string
	frags map[string]string
}

func newFilterState() FilterState {
	return FilterState{frags: make(map[string]string)}
}

// Set installs or replaces the fragment for a column. An empty fragment
// removes it.
func (f *FilterState) Set(column, fragment string) {
	fragment = strings.TrimSpace(fragment)
	_, exists := f.frags[column]
	if fragment == "" {
		if exists {
			delete(f.frags, column)
			for i, c := range f.order {
				if c == column {
					f.order = append(f.order[:i], f.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if !exists {
		f.order = append(f.order, column)
	}
	f.frags[column] = fragment
}

func (f *FilterState) Fragment(column string) string {
	return f.frags[column]
}

func (f *FilterState) Empty() bool {
	return len(f.frags) == 0
}

func (f *FilterState) Clear() {
	f.order = nil
	f.frags = make(map[string]string)
}

// Columns returns the filtered column names in insertion order.
func (f *FilterState) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// WhereClause renders the AND-combined predicate, or "" when no filters
// are set.
func (f *FilterState) WhereClause() string {
	if len(f.order) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.order))
	for _, col := range f.order {
		parts = append(parts, fragmentSQL(col, f.frags[col]))
	}
	return strings.Join(parts, " AND ")
}

// sqlPrefixes marks a fragment as a raw SQL condition rather than a
// substring search, e.g. "> 100" or "LIKE 'a%'".
var sqlPrefixes = []string{"=", "<", ">", "!", "LIKE ", "ILIKE ", "IN ", "NOT ", "IS ", "BETWEEN "}

// fragmentSQL turns one column's fragment into a SQL condition. A bare
// fragment means case-insensitive substring match, matching the original
// filter row behavior; anything starting with an operator passes through
// with the column prepended.
func fragmentSQL(column, fragment string) string {
	upper := strings.ToUpper(strings.TrimSpace(fragment))
	for _, p := range sqlPrefixes {
		if strings.HasPrefix(upper, p) {
			return utils.QuoteIdent(column) + " " + strings.TrimSpace(fragment)
		}
	}
	return "CAST(" + utils.QuoteIdent(column) + " AS VARCHAR) ILIKE " + utils.SQLString("%"+strings.TrimSpace(fragment)+"%")
}
