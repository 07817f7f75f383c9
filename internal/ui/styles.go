package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss Styles - shared across all views
var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("228")).Bold(true)
	redStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Bold(true)
	blackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	promptStyle   = lipgloss.NewStyle().MarginTop(1)
)

// seatColors 每个座位一个固定颜色
var seatColors = [4]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("76")),
}
