package utils

import "strings"

// QuoteIdent quotes a SQL identifier for DuckDB, doubling any embedded
// double quotes.
func QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// SQLString renders a single-quoted SQL string literal, doubling any
// embedded single quotes.
func SQLString(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}
