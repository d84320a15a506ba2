package utils

import "testing"

func TestGetEnvOrDefault(t *testing.T) {
	if got := GetEnvOrDefault("DUCKVIEW_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("DUCKVIEW_TEST_SET", "value")
	if got := GetEnvOrDefault("DUCKVIEW_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("got %q", got)
	}
}

func TestGetEnvOrDefaultInt(t *testing.T) {
	if got := GetEnvOrDefaultInt("DUCKVIEW_TEST_UNSET_INT", 60); got != 60 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("DUCKVIEW_TEST_SET_INT", "90000")
	if got := GetEnvOrDefaultInt("DUCKVIEW_TEST_SET_INT", 60); got != 90000 {
		t.Fatalf("got %d", got)
	}
}
