package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/duckview/duckview/result"
	"github.com/xitongsys/parquet-go/writer"
)

type jsonSchemaNode struct {
	Tag    string            `json:",omitempty"`
	Fields []*jsonSchemaNode `json:",omitempty"`
}

// Parquet writes the set through parquet-go's JSON writer, with the
// schema derived from the declared DuckDB column types.
func Parquet(w io.Writer, set *result.Set) error {
	schemaStr, err := schemaString(set.Columns)
	if err != nil {
		return err
	}

	pw, err := writer.NewJSONWriterFromWriter(schemaStr, w, 4)
	if err != nil {
		return fmt.Errorf("error in NewJSONWriterFromWriter: %w", err)
	}

	for i, row := range set.Rows {
		rec := make(map[string]any, len(set.Columns))
		for j, col := range set.Columns {
			rec[col.Name] = parquetValue(col.Type, row[j])
		}
		rowBytes, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("error in json.Marshal of row %d: %w", i, err)
		}
		if err := pw.Write(string(rowBytes)); err != nil {
			return fmt.Errorf("error in pw.Write for row %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("error in pw.WriteStop: %w", err)
	}
	return nil
}

func schemaString(cols []result.Column) (string, error) {
	root := &jsonSchemaNode{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, c := range cols {
		root.Fields = append(root.Fields, &jsonSchemaNode{
			Tag: fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", c.Name, parquetType(c.Type)),
		})
	}
	b, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("error marshaling parquet schema: %w", err)
	}
	return string(b), nil
}

// parquetType maps a declared DuckDB type to a parquet tag fragment.
// Anything unrecognized round-trips as a UTF8 string.
func parquetType(duckType string) string {
	t := strings.ToUpper(duckType)
	switch {
	case t == "BOOLEAN":
		return "type=BOOLEAN"
	case strings.Contains(t, "INT"):
		return "type=INT64"
	case t == "DOUBLE" || t == "FLOAT" || t == "REAL" || strings.HasPrefix(t, "DECIMAL"):
		return "type=DOUBLE"
	default:
		return "type=BYTE_ARRAY, convertedtype=UTF8"
	}
}

// parquetValue coerces a cell to a JSON value the writer accepts for the
// mapped parquet type. NULL stays nil (every field is OPTIONAL).
func parquetValue(duckType string, v any) any {
	if v == nil {
		return nil
	}
	t := strings.ToUpper(duckType)
	switch {
	case t == "BOOLEAN", strings.Contains(t, "INT"),
		t == "DOUBLE", t == "FLOAT", t == "REAL", strings.HasPrefix(t, "DECIMAL"):
		return v
	default:
		return result.FormatValue(v)
	}
}
