package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/duckview/duckview/result"
	"github.com/duckview/duckview/tableview"
	"github.com/mattn/go-runewidth"
)

const sidebarWidth = 24

func (a *App) dataPaneWidth() int {
	w := a.width - sidebarWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (a *App) dataRowCount() int {
	// header, type, and filter rows inside the pane; title, input, and
	// status lines outside it
	h := a.height - 9
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	switch a.mode {
	case modeHelp:
		return a.renderHelp()
	case modePlot:
		body := a.overlay + "\n\n" + dimItemStyle.Render("Press esc to close")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
	}

	var b strings.Builder

	title := titleStyle.Render("duckview") + "  " + dimItemStyle.Render(a.conn.Path())
	b.WriteString(title)
	b.WriteString("\n")

	contentHeight := a.height - 4
	if contentHeight < 3 {
		contentHeight = 3
	}
	sidebar := a.renderSidebar(sidebarWidth, contentHeight)
	data := a.renderDataPane(a.dataPaneWidth(), contentHeight)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, data))
	b.WriteString("\n")

	b.WriteString(a.renderInputLine())
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())

	return b.String()
}

func (a *App) renderSidebar(width, height int) string {
	style := paneStyle
	if a.focus == FocusSidebar {
		style = focusedPaneStyle
	}

	var content strings.Builder
	idx := 0
	writeSection := func(header string, names []string) {
		content.WriteString(paneHeaderStyle.Render(header))
		content.WriteString("\n")
		for _, name := range names {
			line := "  " + name
			if idx == a.sidebarIdx {
				line = selectedItemStyle.Render("> " + name)
			} else if name == a.view.Table() {
				line = normalItemStyle.Render("* " + name)
			} else {
				line = normalItemStyle.Render(line)
			}
			content.WriteString(line)
			content.WriteString("\n")
			idx++
		}
	}
	writeSection("Tables", a.tables)
	content.WriteString("\n")
	writeSection("Views", a.views)

	if len(a.tables)+len(a.views) == 0 {
		content.WriteString(dimItemStyle.Render("  no tables"))
	}

	return style.Width(width).Height(height).Render(content.String())
}

func (a *App) renderDataPane(width, height int) string {
	style := paneStyle
	if a.focus == FocusData {
		style = focusedPaneStyle
	}

	rs := a.view.ResultSet()
	if rs == nil || rs.NumColumns() == 0 {
		return style.Width(width).Height(height).Render(dimItemStyle.Render("no data"))
	}

	innerW := width - 2
	startCol := a.firstVisibleColumn(innerW)

	var header, types, filters strings.Builder
	used := 0
	lastCol := startCol
	for i := startCol; i < rs.NumColumns(); i++ {
		w := a.view.ColumnWidth(i)
		if used+w > innerW && used > 0 {
			break
		}
		col := rs.Columns[i]
		headCell := pad(col.Name, w)
		if i == a.selCol && a.focus == FocusData {
			headCell = selectedItemStyle.Render(headCell)
		} else {
			headCell = tableHeaderStyle.Render(headCell)
		}
		header.WriteString(headCell)
		header.WriteString(" ")
		types.WriteString(dimItemStyle.Render(pad("("+col.Type+")", w)))
		types.WriteString(" ")
		filters.WriteString(filterRowStyle.Render(pad(a.filterCell(col.Name), w)))
		filters.WriteString(" ")
		used += w + 1
		lastCol = i
	}

	var rows strings.Builder
	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	vext := rs.NumRows() - visible
	voff := a.view.Viewport().Vertical(vext)
	for r := voff; r < rs.NumRows() && r < voff+visible; r++ {
		for i := startCol; i <= lastCol; i++ {
			w := a.view.ColumnWidth(i)
			cell := pad(result.FormatValue(rs.Rows[r][i]), w)
			switch {
			case a.focus == FocusData && r == a.selRow && i == a.selCol:
				cell = selectedCellStyle.Render(cell)
			case r == a.selRow:
				cell = selectedRowStyle.Render(cell)
			}
			rows.WriteString(cell)
			rows.WriteString(" ")
		}
		rows.WriteString("\n")
	}
	if rs.NumRows() == 0 {
		rows.WriteString(dimItemStyle.Render("0 rows"))
	}

	content := header.String() + "\n" + types.String() + "\n" + filters.String() + "\n" + rows.String()
	return style.Width(width).Height(height).Render(content)
}

// firstVisibleColumn maps the fractional horizontal scroll onto a column
// index: the first column whose right edge is past the pixel offset.
func (a *App) firstVisibleColumn(paneWidth int) int {
	rs := a.view.ResultSet()
	hext := a.view.ContentWidth() - paneWidth
	xoff := a.view.Viewport().Horizontal(hext)
	cum := 0
	for i := 0; i < rs.NumColumns(); i++ {
		w := a.view.ColumnWidth(i) + 1
		if cum+w > xoff {
			return i
		}
		cum += w
	}
	if rs.NumColumns() > 0 {
		return rs.NumColumns() - 1
	}
	return 0
}

func (a *App) filterCell(column string) string {
	frag := a.view.Filters().Fragment(column)
	if frag == "" {
		return ""
	}
	return "▼ " + frag
}

func (a *App) renderInputLine() string {
	switch a.mode {
	case modeFilter:
		line := promptStyle.Render("filter> ") + a.input.View()
		if a.filterErr != "" {
			line += "  " + errorStyle.Render(a.filterErr)
		}
		return line
	case modeEdit:
		return promptStyle.Render("edit> ") + a.input.View()
	case modeQuery:
		return promptStyle.Render("sql> ") + a.input.View()
	}
	if a.filterErr != "" {
		return errorStyle.Render("filter: " + a.filterErr)
	}
	return dimItemStyle.Render("/: filter  s: sort  e: edit  :: sql  ?: help")
}

func (a *App) renderStatusBar() string {
	var parts []string

	if t := a.view.Table(); t != "" {
		parts = append(parts, paneHeaderStyle.Render(t))
	} else if a.view.ResultSet() != nil {
		parts = append(parts, dimItemStyle.Render("(query result)"))
	}

	if rs := a.view.ResultSet(); rs != nil {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%d rows", rs.NumRows())))
		if !a.view.Filters().Empty() {
			parts = append(parts, filterRowStyle.Render(fmt.Sprintf("filtered (%d)", len(a.view.Filters().Columns()))))
		}
		if a.view.SortDir() != tableview.SortNone {
			dir := "▲"
			if a.view.SortDir() == tableview.SortDescending {
				dir = "▼"
			}
			parts = append(parts, statusStyle.Render(a.view.SortColumn()+" "+dir))
		}
	}

	if a.connErr != "" {
		parts = append(parts, errorStyle.Render(a.connErr))
	} else if a.statusMsg != "" {
		parts = append(parts, statusStyle.Render(a.statusMsg))
	}

	return strings.Join(parts, "  ")
}

func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("duckview"))
	b.WriteString("\n\n")

	bindings := []struct {
		key  string
		desc string
	}{
		{"↑/k ↓/j ←/h →/l", "move cursor"},
		{"tab", "switch pane"},
		{"enter", "open table"},
		{"/", "filter selected column"},
		{"F", "clear all filters"},
		{"s", "cycle sort on column"},
		{"e", "edit cell"},
		{":", "run sql"},
		{"p", "plot column"},
		{"x / X", "export csv / parquet"},
		{a.keys.CopySchema.Help().Key + " / Y", "copy table / database schema"},
		{"< / > / a / A", "resize / auto-fit columns"},
		{"r", "refresh"},
		{"q, ctrl+c", "quit"},
	}
	for _, bd := range bindings {
		b.WriteString(helpKeyStyle.Render(fmt.Sprintf("%-18s", bd.key)))
		b.WriteString(helpDescStyle.Render(bd.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimItemStyle.Render("Press esc to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, b.String())
}

func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
