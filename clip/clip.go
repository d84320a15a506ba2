// Package clip wraps the system clipboard behind a small interface so
// the view core can be tested without a display server.
package clip

import "github.com/atotto/clipboard"

type Writer interface {
	WriteText(string) error
}

// System writes to the real OS clipboard.
type System struct{}

func (System) WriteText(s string) error {
	return clipboard.WriteAll(s)
}

// Memory captures writes for tests and for headless environments where
// no clipboard utility is installed.
type Memory struct {
	Last string
}

func (m *Memory) WriteText(s string) error {
	m.Last = s
	return nil
}
