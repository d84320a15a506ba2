// Package tui is the interactive terminal client. It is a thin event
// loop over the tableview state machine: every user action becomes a
// state transition, and every query runs in a command whose completion
// message carries the refresh sequence number back to the view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/duckview/duckview/clip"
	"github.com/duckview/duckview/duck"
	"github.com/duckview/duckview/export"
	"github.com/duckview/duckview/gologger"
	"github.com/duckview/duckview/persist"
	"github.com/duckview/duckview/plot"
	"github.com/duckview/duckview/result"
	"github.com/duckview/duckview/schema"
	"github.com/duckview/duckview/tableview"
	"github.com/duckview/duckview/utils"
)

var logger = gologger.NewLogger()

type Focus int

const (
	FocusSidebar Focus = iota
	FocusData
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeEdit
	modeQuery
	modePlot
	modeHelp
)

// App is the bubbletea model. All state lives here or in the view; both
// are only touched from Update, which bubbletea serializes.
type App struct {
	conn *duck.Conn
	view *tableview.View

	width, height int
	focus         Focus
	mode          mode
	keys          KeyMap

	tables       []string
	views        []string
	sidebarIdx   int
	initialTable string

	selRow, selCol int

	input     textinput.Model
	filterCol string

	filterErr string // inline, next to the filter input
	statusMsg string // transient
	connErr   string // persistent, non-fatal

	overlay string // plot or schema text
}

func New(conn *duck.Conn, initialTable string) *App {
	ti := textinput.New()
	ti.CharLimit = 512
	return &App{
		conn:         conn,
		view:         tableview.New(persist.New(conn), clip.System{}),
		keys:         DefaultKeyMap(),
		input:        ti,
		initialTable: initialTable,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(conn *duck.Conn, initialTable string) error {
	p := tea.NewProgram(New(conn, initialTable), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.loadCatalog
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case catalogLoadedMsg:
		if msg.Err != nil {
			a.connErr = msg.Err.Error()
			return a, nil
		}
		a.connErr = ""
		a.tables = msg.Tables
		a.views = msg.Views
		if name := a.pickInitialTable(); name != "" {
			return a, a.loadTable(name)
		}
		return a, nil

	case tableLoadedMsg:
		if msg.Err != nil {
			// previous table stays on screen
			a.connErr = msg.Err.Error()
			return a, nil
		}
		a.connErr = ""
		a.view.SetTable(msg.Name, msg.KeyColumn, msg.Set)
		a.selRow, a.selCol = 0, 0
		a.focus = FocusData
		return a, nil

	case refreshDoneMsg:
		err := a.view.CompleteRefresh(msg.Seq, msg.Set, msg.Err)
		switch {
		case errors.Is(err, tableview.ErrStaleResult):
			logger.Debug().Str("reqID", msg.ReqID).Uint64("seq", msg.Seq).Msg("discarding superseded refresh")
		case err != nil && msg.ForCol != "":
			// bad predicate fragment: data untouched, error shown inline
			a.filterErr = err.Error()
		case err != nil:
			a.connErr = err.Error()
		default:
			a.filterErr = ""
			a.clampCursor()
		}
		return a, nil

	case queryDoneMsg:
		if msg.Err != nil {
			a.statusMsg = msg.Err.Error()
			return a, nil
		}
		// ad-hoc results have no table identity: filtering, sorting, and
		// editing are disabled until a table is loaded again
		a.view.SetTable("", "", msg.Set)
		a.selRow, a.selCol = 0, 0
		a.statusMsg = fmt.Sprintf("%d rows", msg.Set.NumRows())
		a.focus = FocusData
		return a, nil

	case exportDoneMsg:
		if msg.Err != nil {
			a.statusMsg = "export failed: " + msg.Err.Error()
		} else {
			a.statusMsg = "exported " + msg.Path
		}
		return a, nil

	case schemaCopiedMsg:
		if msg.Err != nil {
			a.statusMsg = "copy failed: " + msg.Err.Error()
		} else if msg.All {
			a.statusMsg = "database schema copied to clipboard"
		} else {
			a.statusMsg = "table schema copied to clipboard"
		}
		return a, nil
	}

	return a, nil
}

func (a *App) pickInitialTable() string {
	if a.initialTable != "" {
		if utils.ContainsString(a.tables, a.initialTable) || utils.ContainsString(a.views, a.initialTable) {
			return a.initialTable
		}
		logger.Warn().Str("table", a.initialTable).Msg("initial table not found, loading first available")
	}
	if len(a.tables) > 0 {
		return a.tables[0]
	}
	if len(a.views) > 0 {
		return a.views[0]
	}
	return ""
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeFilter, modeEdit, modeQuery:
		return a.handleInputKey(msg)
	case modePlot, modeHelp:
		if key.Matches(msg, a.keys.Back) || key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) {
			a.mode = modeBrowse
			a.overlay = ""
		}
		return a, nil
	}
	return a.handleBrowseKey(msg)
}

func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rs := a.view.ResultSet()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
		return a, nil

	case key.Matches(msg, a.keys.Back):
		a.statusMsg = ""
		a.filterErr = ""
		return a, nil

	case key.Matches(msg, a.keys.FocusNext):
		if a.focus == FocusSidebar {
			a.focus = FocusData
		} else {
			a.focus = FocusSidebar
		}
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		if a.focus == FocusSidebar || a.view.Table() == "" {
			return a, a.loadCatalog
		}
		return a, a.runRefresh(a.view.BeginRefresh(), "")

	case key.Matches(msg, a.keys.Up):
		if a.focus == FocusSidebar {
			if a.sidebarIdx > 0 {
				a.sidebarIdx--
			}
		} else if a.selRow > 0 {
			a.selRow--
			a.syncViewport()
		}
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.focus == FocusSidebar {
			if a.sidebarIdx < len(a.tables)+len(a.views)-1 {
				a.sidebarIdx++
			}
		} else if rs != nil && a.selRow < rs.NumRows()-1 {
			a.selRow++
			a.syncViewport()
		}
		return a, nil

	case key.Matches(msg, a.keys.Left):
		if a.focus == FocusData && a.selCol > 0 {
			a.selCol--
			a.syncViewport()
		}
		return a, nil

	case key.Matches(msg, a.keys.Right):
		if a.focus == FocusData && rs != nil && a.selCol < rs.NumColumns()-1 {
			a.selCol++
			a.syncViewport()
		}
		return a, nil

	case key.Matches(msg, a.keys.Select):
		if a.focus == FocusSidebar {
			if name := a.sidebarItem(); name != "" {
				return a, a.loadTable(name)
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.Filter):
		if a.view.Table() == "" || rs == nil || rs.NumColumns() == 0 {
			return a, nil
		}
		col := rs.Columns[a.selCol].Name
		a.filterCol = col
		a.mode = modeFilter
		a.input.SetValue(a.view.Filters().Fragment(col))
		a.input.Placeholder = "Filter " + col
		a.input.Focus()
		return a, nil

	case key.Matches(msg, a.keys.ClearAll):
		if a.view.Table() == "" {
			return a, nil
		}
		a.filterErr = ""
		return a, a.runRefresh(a.view.ClearFilters(), "")

	case key.Matches(msg, a.keys.Sort):
		if a.view.Table() == "" || rs == nil || rs.NumColumns() == 0 {
			return a, nil
		}
		return a, a.runRefresh(a.view.CycleSort(rs.Columns[a.selCol].Name), "")

	case key.Matches(msg, a.keys.Edit):
		return a.startEdit()

	case key.Matches(msg, a.keys.Query):
		a.mode = modeQuery
		a.input.SetValue("")
		a.input.Placeholder = "SELECT ..."
		a.input.Focus()
		return a, nil

	case key.Matches(msg, a.keys.Plot):
		if rs == nil || rs.NumColumns() == 0 {
			return a, nil
		}
		rendered, err := plot.Render(rs, rs.Columns[a.selCol].Name, a.width-10, a.height/2)
		if err != nil {
			a.statusMsg = err.Error()
			return a, nil
		}
		a.overlay = rendered
		a.mode = modePlot
		return a, nil

	case key.Matches(msg, a.keys.ExportCSV):
		if rs == nil {
			return a, nil
		}
		return a, a.runExport(rs, false)

	case key.Matches(msg, a.keys.ExportPQ):
		if rs == nil {
			return a, nil
		}
		return a, a.runExport(rs, true)

	case key.Matches(msg, a.keys.CopySchema):
		if rs == nil {
			return a, nil
		}
		err := a.view.ExportSchemaToClipboard()
		return a, func() tea.Msg { return schemaCopiedMsg{Err: err} }

	case key.Matches(msg, a.keys.CopyAll):
		return a, a.copyFullSchema

	case key.Matches(msg, a.keys.Grow):
		if a.focus == FocusData && rs != nil {
			_ = a.view.ResizeColumn(a.selCol, a.view.ColumnWidth(a.selCol)+2)
		}
		return a, nil

	case key.Matches(msg, a.keys.Shrink):
		if a.focus == FocusData && rs != nil {
			_ = a.view.ResizeColumn(a.selCol, a.view.ColumnWidth(a.selCol)-2)
		}
		return a, nil

	case key.Matches(msg, a.keys.AutoFit):
		if a.focus == FocusData && rs != nil {
			_ = a.view.AutoFitColumn(a.selCol)
		}
		return a, nil

	case key.Matches(msg, a.keys.AutoFitAll):
		a.view.AutoFitAll()
		return a, nil
	}

	return a, nil
}

func (a *App) startEdit() (tea.Model, tea.Cmd) {
	rs := a.view.ResultSet()
	if a.view.Table() == "" || rs == nil || rs.NumRows() == 0 {
		a.statusMsg = "nothing to edit"
		return a, nil
	}
	col := rs.Columns[a.selCol].Name
	current := rs.Rows[a.selRow][a.selCol]
	if err := a.view.BeginEdit(a.selRow, col, current); err != nil {
		a.statusMsg = err.Error()
		return a, nil
	}
	a.mode = modeEdit
	a.input.SetValue(result.FormatValue(current))
	a.input.Placeholder = col
	a.input.Focus()
	return a, nil
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit

	case tea.KeyEsc:
		if a.mode == modeEdit {
			a.view.CancelEdit()
		}
		a.closeInput()
		return a, nil

	case tea.KeyEnter:
		return a.submitInput()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.mode == modeEdit {
		_ = a.view.SetEditValue(a.input.Value())
	}
	return a, cmd
}

func (a *App) submitInput() (tea.Model, tea.Cmd) {
	value := a.input.Value()
	switch a.mode {
	case modeFilter:
		col := a.filterCol
		a.closeInput()
		a.filterErr = ""
		return a, a.runRefresh(a.view.ApplyFilter(col, value), col)

	case modeQuery:
		a.closeInput()
		if value == "" {
			return a, nil
		}
		return a, a.runQuery(value)

	case modeEdit:
		_ = a.view.SetEditValue(value)
		a.closeInput()
		// the embedded engine commits locally; a synchronous call keeps
		// the edit machine on the UI thread
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := a.view.CommitEdit(ctx); err != nil {
			a.statusMsg = err.Error()
		} else {
			a.statusMsg = "saved"
		}
		return a, nil
	}
	a.closeInput()
	return a, nil
}

func (a *App) closeInput() {
	a.mode = modeBrowse
	a.input.Blur()
	a.input.SetValue("")
	a.filterCol = ""
}

func (a *App) sidebarItem() string {
	items := append(append([]string{}, a.tables...), a.views...)
	if a.sidebarIdx < 0 || a.sidebarIdx >= len(items) {
		return ""
	}
	return items[a.sidebarIdx]
}

func (a *App) clampCursor() {
	rs := a.view.ResultSet()
	if rs == nil {
		a.selRow, a.selCol = 0, 0
		return
	}
	if a.selRow >= rs.NumRows() {
		a.selRow = rs.NumRows() - 1
	}
	if a.selRow < 0 {
		a.selRow = 0
	}
	if a.selCol >= rs.NumColumns() {
		a.selCol = rs.NumColumns() - 1
	}
	if a.selCol < 0 {
		a.selCol = 0
	}
}

// syncViewport keeps the cursor inside the visible window, writing the
// resulting offsets back as fractions so they survive data replacement.
func (a *App) syncViewport() {
	rs := a.view.ResultSet()
	if rs == nil {
		return
	}
	vp := a.view.Viewport()

	visible := a.dataRowCount()
	vext := rs.NumRows() - visible
	voff := vp.Vertical(vext)
	if a.selRow < voff {
		voff = a.selRow
	}
	if visible > 0 && a.selRow >= voff+visible {
		voff = a.selRow - visible + 1
	}
	vp.SetVertical(voff, vext)

	paneW := a.dataPaneWidth()
	hext := a.view.ContentWidth() - paneW
	left := 0
	for i := 0; i < a.selCol; i++ {
		left += a.view.ColumnWidth(i) + 1
	}
	right := left + a.view.ColumnWidth(a.selCol) + 1
	hoff := vp.Horizontal(hext)
	if left < hoff {
		hoff = left
	}
	if paneW > 0 && right > hoff+paneW {
		hoff = right - paneW
	}
	vp.SetHorizontal(hoff, hext)
}

// Commands

func (a *App) loadCatalog() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	tables, err := schema.ListTables(ctx, a.conn)
	if err != nil {
		return catalogLoadedMsg{Err: err}
	}
	views, err := schema.ListViews(ctx, a.conn)
	if err != nil {
		return catalogLoadedMsg{Err: err}
	}
	return catalogLoadedMsg{Tables: tables, Views: views}
}

func (a *App) loadTable(name string) tea.Cmd {
	conn := a.conn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		cols, err := schema.Describe(ctx, conn, name)
		if err != nil {
			return tableLoadedMsg{Name: name, Err: err}
		}
		keyCol, err := schema.KeyColumn(ctx, conn, name, cols)
		if err != nil {
			return tableLoadedMsg{Name: name, Err: err}
		}
		set, err := conn.Query(ctx, "SELECT * FROM "+utils.QuoteIdent(name))
		return tableLoadedMsg{Name: name, KeyColumn: keyCol, Set: set, Err: err}
	}
}

func (a *App) runRefresh(r tableview.Refresh, forCol string) tea.Cmd {
	conn := a.conn
	reqID := utils.GenRandomShortID()
	logger.Debug().Str("reqID", reqID).Uint64("seq", r.Seq).Str("sql", r.SQL).Msg("issuing refresh")
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(utils.QUERY_TIMEOUT_SEC))
		defer cancel()
		set, err := conn.Query(ctx, r.SQL)
		return refreshDoneMsg{Seq: r.Seq, ReqID: reqID, ForCol: forCol, Set: set, Err: err}
	}
}

func (a *App) runQuery(sql string) tea.Cmd {
	conn := a.conn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(utils.QUERY_TIMEOUT_SEC))
		defer cancel()
		set, err := conn.Query(ctx, sql)
		return queryDoneMsg{SQL: sql, Set: set, Err: err}
	}
}

func (a *App) runExport(set *result.Set, parquet bool) tea.Cmd {
	table := a.view.Table()
	return func() tea.Msg {
		var path string
		var err error
		if parquet {
			path, err = export.WriteParquetFile(utils.EXPORT_DIR, table, set)
		} else {
			path, err = export.WriteCSVFile(utils.EXPORT_DIR, table, set)
		}
		return exportDoneMsg{Path: path, Err: err}
	}
}

func (a *App) copyFullSchema() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	tables, err := schema.Snapshot(ctx, a.conn)
	if err != nil {
		return schemaCopiedMsg{All: true, Err: err}
	}
	return schemaCopiedMsg{All: true, Err: clip.System{}.WriteText(schema.FormatText(tables))}
}
