package plot

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/duckview/duckview/result"
)

func numbers() *result.Set {
	return &result.Set{
		Columns: []result.Column{{Name: "t", Type: "VARCHAR"}, {Name: "v", Type: "DOUBLE"}},
		Rows: [][]any{
			{"a", 1.5},
			{"b", nil},
			{"c", int64(3)},
			{"d", "4.5"},
		},
	}
}

func TestSeries(t *testing.T) {
	got, err := Series(numbers(), "v")
	if err != nil {
		t.Fatal(err)
	}
	// NULL rows are skipped, numeric strings coerce
	if want := []float64{1.5, 3, 4.5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSeriesErrors(t *testing.T) {
	if _, err := Series(numbers(), "missing"); !errors.Is(err, ErrColumnUnknown) {
		t.Fatalf("expected ErrColumnUnknown, got %v", err)
	}
	if _, err := Series(numbers(), "t"); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}

	empty := &result.Set{Columns: []result.Column{{Name: "v", Type: "DOUBLE"}}}
	if _, err := Series(empty, "v"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestRender(t *testing.T) {
	out, err := Render(numbers(), "v", 40, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "v") {
		t.Fatal("expected the column caption in the chart")
	}
}
