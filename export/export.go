// Package export writes a result snapshot out as CSV or Parquet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/duckview/duckview/result"
	"github.com/duckview/duckview/utils"
)

// CSV writes the column names as a header row, then every row formatted
// the way the grid displays it.
func CSV(w io.Writer, set *result.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(set.ColumnNames()); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for i := range set.Rows {
		if err := cw.Write(set.StringRow(i)); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the set to dir with a k-sorted file name so
// repeated exports of the same table sort by creation time.
func WriteCSVFile(dir, table string, set *result.Set) (string, error) {
	return writeFile(dir, table, ".csv", set, CSV)
}

// WriteParquetFile is the Parquet twin of WriteCSVFile.
func WriteParquetFile(dir, table string, set *result.Set) (string, error) {
	return writeFile(dir, table, ".parquet", set, Parquet)
}

func writeFile(dir, table, ext string, set *result.Set, write func(io.Writer, *result.Set) error) (string, error) {
	if table == "" {
		table = "query"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s%s", table, utils.GenKSortedID(""), ext))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f, set); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
