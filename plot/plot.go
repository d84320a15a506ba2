// Package plot renders a numeric result column as a terminal line chart.
package plot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/duckview/duckview/result"
	"github.com/guptarohit/asciigraph"
)

var (
	ErrColumnUnknown = errors.New("unknown column")
	ErrNotNumeric    = errors.New("column is not numeric")
	ErrEmpty         = errors.New("no rows to plot")
)

// Series extracts a column as float64 values. NULL cells are skipped;
// any non-coercible cell fails the whole extraction so a half-plotted
// column is never shown.
func Series(set *result.Set, column string) ([]float64, error) {
	idx := set.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnUnknown, column)
	}
	series := make([]float64, 0, set.NumRows())
	for _, row := range set.Rows {
		v := row[idx]
		if v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, column)
		}
		series = append(series, f)
	}
	if len(series) == 0 {
		return nil, ErrEmpty
	}
	return series, nil
}

// Render draws the column as an asciigraph chart sized to the viewport.
func Render(set *result.Set, column string, width, height int) (string, error) {
	series, err := Series(set, column)
	if err != nil {
		return "", err
	}
	if height < 3 {
		height = 3
	}
	if width > 0 && len(series) > width {
		series = series[:width]
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption(column),
	), nil
}

func toFloat(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(val, 64)
	case []byte:
		return strconv.ParseFloat(string(val), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
