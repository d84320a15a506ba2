package tui

import "github.com/duckview/duckview/result"

type (
	catalogLoadedMsg struct {
		Tables []string
		Views  []string
		Err    error
	}

	tableLoadedMsg struct {
		Name      string
		KeyColumn string
		Set       *result.Set
		Err       error
	}

	// refreshDoneMsg carries the sequence number of the request it
	// answers; the view discards it if a newer request superseded it.
	refreshDoneMsg struct {
		Seq    uint64
		ReqID  string
		ForCol string
		Set    *result.Set
		Err    error
	}

	queryDoneMsg struct {
		SQL string
		Set *result.Set
		Err error
	}

	exportDoneMsg struct {
		Path string
		Err  error
	}

	schemaCopiedMsg struct {
		All bool
		Err error
	}
)
