package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/whatif-sh/whatif/internal/scenario"
)

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Purple
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink

	// Title style
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	// Header style
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			PaddingBottom(1).
			MarginBottom(1)

	// Row item styles
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Foreground(accentColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor)

	// Spinner style
	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			PaddingTop(1)

	// Error banner style
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(errorColor).
				Bold(true).
				Padding(0, 1)

	// Prompt style for add/edit/confirm bars
	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Empty state style
	emptyStateStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(2).
			PaddingTop(1)

	// Muted helper text
	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// stateStyle returns the style for a row state indicator.
func stateStyle(s scenario.State) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Color()).Bold(true)
}
