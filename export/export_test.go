package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/duckview/duckview/result"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func sample() *result.Set {
	return &result.Set{
		Columns: []result.Column{
			{Name: "id", Type: "BIGINT"},
			{Name: "name", Type: "VARCHAR"},
			{Name: "score", Type: "DOUBLE"},
		},
		Rows: [][]any{
			{int64(1), "John", 1.5},
			{int64(2), nil, 2.25},
		},
	}
}

func TestCSV(t *testing.T) {
	var b bytes.Buffer
	if err := CSV(&b, sample()); err != nil {
		t.Fatal(err)
	}
	want := "id,name,score\n1,John,1.5\n2,NULL,2.25\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestSchemaString(t *testing.T) {
	s, err := schemaString(sample().Columns)
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{
		"name=parquet_go_root, repetitiontype=REQUIRED",
		"name=id, type=INT64, repetitiontype=OPTIONAL",
		"name=name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL",
		"name=score, type=DOUBLE, repetitiontype=OPTIONAL",
	} {
		if !strings.Contains(s, frag) {
			t.Fatalf("schema %q missing %q", s, frag)
		}
	}
}

func TestParquetType(t *testing.T) {
	tests := []struct {
		duck string
		want string
	}{
		{"BIGINT", "type=INT64"},
		{"INTEGER", "type=INT64"},
		{"UTINYINT", "type=INT64"},
		{"DOUBLE", "type=DOUBLE"},
		{"DECIMAL(18,3)", "type=DOUBLE"},
		{"BOOLEAN", "type=BOOLEAN"},
		{"VARCHAR", "type=BYTE_ARRAY, convertedtype=UTF8"},
		{"TIMESTAMP", "type=BYTE_ARRAY, convertedtype=UTF8"},
	}
	for _, tt := range tests {
		if got := parquetType(tt.duck); got != tt.want {
			t.Fatalf("parquetType(%q) = %q, want %q", tt.duck, got, tt.want)
		}
	}
}

func TestParquetValue(t *testing.T) {
	if got := parquetValue("BIGINT", int64(3)); got != int64(3) {
		t.Fatalf("numeric should pass through, got %v", got)
	}
	if got := parquetValue("TIMESTAMP", []byte("2024")); got != "2024" {
		t.Fatalf("non-numeric should format to string, got %v", got)
	}
	if got := parquetValue("BIGINT", nil); got != nil {
		t.Fatalf("NULL should stay nil, got %v", got)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteParquetFile(dir, "people", sample())
	if err != nil {
		t.Fatal(err)
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		t.Fatal("can't open file", err)
	}
	defer fr.Close()

	schemaStr, err := schemaString(sample().Columns)
	if err != nil {
		t.Fatal(err)
	}
	pr, err := reader.NewParquetReader(fr, schemaStr, 4)
	if err != nil {
		t.Fatal("can't create parquet reader", err)
	}
	defer pr.ReadStop()

	if n := pr.GetNumRows(); n != 2 {
		t.Fatalf("got %d rows, want 2", n)
	}
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSVFile(dir, "people", sample())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".csv") {
		t.Fatalf("unexpected path %q", path)
	}
	if !strings.Contains(path, "people-") {
		t.Fatalf("file name should carry the table name: %q", path)
	}
}
