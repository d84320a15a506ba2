package utils

import "testing"

func TestQuoteIdent(t *testing.T) {
	if got := QuoteIdent("name"); got != `"name"` {
		t.Fatalf("got %q", got)
	}
	if got := QuoteIdent(`a"b`); got != `"a""b"` {
		t.Fatalf("got %q", got)
	}
}

func TestSQLString(t *testing.T) {
	if got := SQLString("x"); got != `'x'` {
		t.Fatalf("got %q", got)
	}
	if got := SQLString("O'Brien"); got != `'O''Brien'` {
		t.Fatalf("got %q", got)
	}
}
