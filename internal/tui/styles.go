package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle Используем ANSI 6 (Cyan) для заголовков — он хорошо читается везде
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	// UsageStyle ANSI 2 (Green) для аргументов и использования
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) для описаний, чтобы они были менее яркими
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) для флагов
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	systemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)
