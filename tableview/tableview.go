// Package tableview owns the interactive grid state: per-column widths,
// sort order, filter predicates, scroll position, and pending edits. It
// reconciles that state against each freshly fetched result set so that a
// filter or sort change never loses the user's horizontal scroll or
// column widths.
//
// The view does no I/O itself. It hands out Refresh requests carrying a
// monotonically increasing sequence number; the caller runs the query and
// reports back through CompleteRefresh, which silently discards results
// that were superseded by a newer request.
package tableview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/duckview/duckview/result"
	"github.com/duckview/duckview/utils"
	"github.com/mattn/go-runewidth"
)

var (
	ErrStaleResult    = errors.New("stale query result")
	ErrNoResultSet    = errors.New("no result set loaded")
	ErrColumnUnknown  = errors.New("unknown column")
	ErrRowOutOfRange  = errors.New("row out of range")
	ErrEditInProgress = errors.New("an edit is already in progress")
	ErrNotEditing     = errors.New("no edit in progress")
)

type (
	// Bridge persists a single cell edit against the database.
	Bridge interface {
		Update(ctx context.Context, table, keyColumn string, key any, column string, value any) error
	}

	// Clipboard is the system clipboard sink.
	Clipboard interface {
		WriteText(string) error
	}

	// Refresh is an outstanding data request. The result must be handed
	// back to CompleteRefresh with the same sequence number.
	Refresh struct {
		Seq uint64
		SQL string
	}

	SortDirection int
)

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// View is the table view state machine. All methods must be called from
// the single UI event loop; none are safe for concurrent use.
type View struct {
	bridge Bridge
	clip   Clipboard

	table     string
	keyColumn string

	rs       *result.Set
	layout   ColumnLayout
	viewport Viewport
	filters  FilterState

	sortColumn string
	sortDir    SortDirection

	// seq numbers refresh requests; completions with an older seq are
	// discarded as superseded.
	seq uint64

	editState EditState
	edit      pendingEdit

	measure func(string) int
}

func New(bridge Bridge, clip Clipboard) *View {
	return &View{
		bridge:  bridge,
		clip:    clip,
		layout:  newColumnLayout(),
		filters: newFilterState(),
		measure: runewidth.StringWidth,
	}
}

// SetTable switches the view to a new table. Switching tables changes
// column identity, so layout, viewport, filters, and sort all reset, and
// every column gets an auto-fit width.
func (v *View) SetTable(name, keyColumn string, rs *result.Set) {
	v.table = name
	v.keyColumn = keyColumn
	v.filters.Clear()
	v.sortColumn = ""
	v.sortDir = SortNone
	v.layout.reset()
	v.viewport.reset()
	v.editState = EditClean
	v.edit = pendingEdit{}
	v.SetResultSet(rs)
}

// SetResultSet replaces the displayed data. Columns that still exist by
// name keep their widths exactly; new columns default to an auto-fit
// width. The viewport is fractional, so the stored scroll position maps
// onto the new content extent (clamped) the next time it is read —
// replacing the data never resets horizontal scroll on its own.
//
// A pending edit is cancelled: its row and column indices refer to the
// rows being replaced, so committing it against the new set could write
// through the wrong row identity.
func (v *View) SetResultSet(rs *result.Set) {
	if v.editState != EditClean {
		v.CancelEdit()
	}
	v.layout.reconcile(rs.Columns)
	for i, c := range rs.Columns {
		if _, ok := v.layout.Width(c.Name); !ok {
			v.layout.setWidth(c.Name, v.autoFitWidth(rs, i), false)
		}
	}
	v.rs = rs
}

func (v *View) Table() string          { return v.table }
func (v *View) KeyColumn() string      { return v.keyColumn }
func (v *View) ResultSet() *result.Set { return v.rs }
func (v *View) Viewport() *Viewport    { return &v.viewport }
func (v *View) Filters() *FilterState  { return &v.filters }
func (v *View) Layout() *ColumnLayout  { return &v.layout }
func (v *View) SortColumn() string     { return v.sortColumn }
func (v *View) SortDir() SortDirection { return v.sortDir }

// BuildQuery renders the SELECT for the current table, filters, and sort.
func (v *View) BuildQuery() string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(utils.QuoteIdent(v.table))
	if where := v.filters.WhereClause(); where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if v.sortDir != SortNone && v.sortColumn != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(utils.QuoteIdent(v.sortColumn))
		if v.sortDir == SortDescending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	return b.String()
}

// BeginRefresh issues a new data request, superseding any outstanding one.
func (v *View) BeginRefresh() Refresh {
	v.seq++
	return Refresh{Seq: v.seq, SQL: v.BuildQuery()}
}

// CompleteRefresh delivers the outcome of a refresh. Results from a
// superseded request return ErrStaleResult and change nothing. A query
// error also changes nothing: the previous result set, layout, and
// viewport all stay as they were.
func (v *View) CompleteRefresh(seq uint64, rs *result.Set, qerr error) error {
	if seq != v.seq {
		return ErrStaleResult
	}
	if qerr != nil {
		return qerr
	}
	v.SetResultSet(rs)
	return nil
}

// ApplyFilter updates one column's predicate fragment and issues a
// refresh with the combined predicate. The column layout is not touched.
func (v *View) ApplyFilter(column, fragment string) Refresh {
	v.filters.Set(column, fragment)
	return v.BeginRefresh()
}

// ClearFilters removes every fragment; the resulting refresh reproduces
// the unfiltered query.
func (v *View) ClearFilters() Refresh {
	v.filters.Clear()
	return v.BeginRefresh()
}

// CycleSort advances the sort on a column: ascending, then descending,
// then off. Sorting a different column starts at ascending.
func (v *View) CycleSort(column string) Refresh {
	if v.sortColumn != column {
		v.sortColumn = column
		v.sortDir = SortAscending
		return v.BeginRefresh()
	}
	switch v.sortDir {
	case SortAscending:
		v.sortDir = SortDescending
	case SortDescending:
		v.sortDir = SortNone
		v.sortColumn = ""
	default:
		v.sortDir = SortAscending
	}
	return v.BeginRefresh()
}

// ResizeColumn sets an explicit width from a drag, floored at
// MinColumnWidth, and marks the column user-resized.
func (v *View) ResizeColumn(index, width int) error {
	col, err := v.columnAt(index)
	if err != nil {
		return err
	}
	v.layout.setWidth(col.Name, width, true)
	return nil
}

// AutoFitColumn recomputes a column's width from its header and the
// sampled cell values, capped at MaxColumnWidth.
func (v *View) AutoFitColumn(index int) error {
	col, err := v.columnAt(index)
	if err != nil {
		return err
	}
	v.layout.setWidth(col.Name, v.autoFitWidth(v.rs, index), false)
	return nil
}

// AutoFitAll refits every column the user has not explicitly resized.
func (v *View) AutoFitAll() {
	if v.rs == nil {
		return
	}
	for i, c := range v.rs.Columns {
		if v.layout.UserResized(c.Name) {
			continue
		}
		v.layout.setWidth(c.Name, v.autoFitWidth(v.rs, i), false)
	}
}

// ColumnWidth returns the display width for a column index.
func (v *View) ColumnWidth(index int) int {
	col, err := v.columnAt(index)
	if err != nil {
		return MinColumnWidth
	}
	if w, ok := v.layout.Width(col.Name); ok {
		return w
	}
	return MinColumnWidth
}

// ContentWidth is the total rendered width of all columns plus one
// separator column between each.
func (v *View) ContentWidth() int {
	if v.rs == nil {
		return 0
	}
	total := 0
	for i := range v.rs.Columns {
		total += v.ColumnWidth(i) + 1
	}
	return total
}

// ExportSchemaToClipboard serializes the current column descriptors
// (name and declared type) and puts them on the system clipboard.
func (v *View) ExportSchemaToClipboard() error {
	if v.rs == nil {
		return ErrNoResultSet
	}
	var b strings.Builder
	if v.table != "" {
		b.WriteString(v.table)
		b.WriteString("\n")
	}
	for _, c := range v.rs.Columns {
		b.WriteString(fmt.Sprintf("  %s %s\n", c.Name, c.Type))
	}
	return v.clip.WriteText(b.String())
}

func (v *View) columnAt(index int) (result.Column, error) {
	if v.rs == nil {
		return result.Column{}, ErrNoResultSet
	}
	if index < 0 || index >= len(v.rs.Columns) {
		return result.Column{}, ErrColumnUnknown
	}
	return v.rs.Columns[index], nil
}

// autoFitWidth measures the header (name and type render on separate
// lines) and the first few rows, pads, and clamps. Sampling a handful of
// rows instead of the whole set matches the original view and keeps wide
// results cheap.
func (v *View) autoFitWidth(rs *result.Set, index int) int {
	col := rs.Columns[index]
	w := v.measure(col.Name)
	if tw := v.measure(col.Type) + 2; tw > w { // "(TYPE)" line
		w = tw
	}
	sample := len(rs.Rows)
	if sample > autoFitSampleRows {
		sample = autoFitSampleRows
	}
	for r := 0; r < sample; r++ {
		if cw := v.measure(result.FormatValue(rs.Rows[r][index])); cw > w {
			w = cw
		}
	}
	w += cellPadding
	if w > MaxColumnWidth {
		w = MaxColumnWidth
	}
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	return w
}
