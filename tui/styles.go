package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("170"))

	paneHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	normalItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimItemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tableHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	filterRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	selectedCellStyle = lipgloss.NewStyle().Reverse(true)
	selectedRowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)
