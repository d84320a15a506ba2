package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/duckview/duckview/utils"
)

// KeyMap holds every binding. The schema-copy shortcut is rebindable
// through SCHEMA_COPY_KEY.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Back       key.Binding
	FocusNext  key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Refresh    key.Binding
	Filter     key.Binding
	ClearAll   key.Binding
	Sort       key.Binding
	Edit       key.Binding
	Query      key.Binding
	Plot       key.Binding
	ExportCSV  key.Binding
	ExportPQ   key.Binding
	CopySchema key.Binding
	CopyAll    key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	AutoFit    key.Binding
	AutoFitAll key.Binding
}

func DefaultKeyMap() KeyMap {
	schemaKey := utils.SCHEMA_COPY_KEY
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		FocusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter column")),
		ClearAll:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear filters")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit cell")),
		Query:      key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "sql query")),
		Plot:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "plot column")),
		ExportCSV:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		ExportPQ:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "export parquet")),
		CopySchema: key.NewBinding(key.WithKeys(schemaKey), key.WithHelp(schemaKey, "copy table schema")),
		CopyAll:    key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy full schema")),
		Grow:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen column")),
		Shrink:     key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow column")),
		AutoFit:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-fit column")),
		AutoFitAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "auto-fit all")),
	}
}
