package tableview

import (
	"math"

	"github.com/duckview/duckview/result"
)

const (
	// MinColumnWidth keeps a dragged column readable; resize never goes
	// below it.
	MinColumnWidth = 4
	// MaxColumnWidth caps auto-fit so one outlier value cannot push every
	// other column off screen.
	MaxColumnWidth = 300

	autoFitSampleRows = 10
	cellPadding       = 2
)

// ColumnLayout holds per-column display widths keyed by column NAME, not
// index, so widths survive result set replacement as long as the column
// still exists. The user-resized flag marks widths set by an explicit
// drag; AutoFitAll leaves those alone.
type ColumnLayout struct {
	widths      map[string]int
	userResized map[string]bool
}

func newColumnLayout() ColumnLayout {
	return ColumnLayout{
		widths:      make(map[string]int),
		userResized: make(map[string]bool),
	}
}

func (l *ColumnLayout) Width(name string) (int, bool) {
	w, ok := l.widths[name]
	return w, ok
}

func (l *ColumnLayout) UserResized(name string) bool {
	return l.userResized[name]
}

func (l *ColumnLayout) setWidth(name string, w int, user bool) {
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	l.widths[name] = w
	if user {
		l.userResized[name] = true
	}
}

// reconcile drops layout entries for columns that no longer exist.
// Surviving columns keep their widths exactly.
func (l *ColumnLayout) reconcile(cols []result.Column) {
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c.Name] = true
	}
	for name := range l.widths {
		if !present[name] {
			delete(l.widths, name)
			delete(l.userResized, name)
		}
	}
}

func (l *ColumnLayout) reset() {
	l.widths = make(map[string]int)
	l.userResized = make(map[string]bool)
}

// Viewport stores scroll position as a fraction of the scrollable extent
// rather than an absolute offset. A replacement result set with a
// different width/height keeps the apparent position, and clamping to the
// new extent happens on read. The offset only lands on zero if it was
// already zero.
type Viewport struct {
	xFrac float64
	yFrac float64
}

// SetHorizontal records the scroll position as offset within extent,
// where extent is the scrollable range (content size minus window size).
func (vp *Viewport) SetHorizontal(offset, extent int) {
	vp.xFrac = toFrac(offset, extent)
}

func (vp *Viewport) SetVertical(offset, extent int) {
	vp.yFrac = toFrac(offset, extent)
}

// Horizontal maps the stored fraction onto a (possibly different) extent,
// clamped to the valid range.
func (vp *Viewport) Horizontal(extent int) int {
	return fromFrac(vp.xFrac, extent)
}

func (vp *Viewport) Vertical(extent int) int {
	return fromFrac(vp.yFrac, extent)
}

func (vp *Viewport) reset() {
	vp.xFrac = 0
	vp.yFrac = 0
}

func toFrac(offset, extent int) float64 {
	if extent <= 0 || offset <= 0 {
		return 0
	}
	f := float64(offset) / float64(extent)
	if f > 1 {
		f = 1
	}
	return f
}

func fromFrac(frac float64, extent int) int {
	if extent <= 0 {
		return 0
	}
	off := int(math.Round(frac * float64(extent)))
	if off < 0 {
		off = 0
	}
	if off > extent {
		off = extent
	}
	return off
}
