package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#059669") // Green
	secondaryColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	errorColor     = lipgloss.Color("#EF4444") // Red
	warningColor   = lipgloss.Color("#F59E0B") // Amber

	// Header styles
	headerContainerStyle = lipgloss.NewStyle().
				Background(primaryColor)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(primaryColor).
				Padding(0, 1)

	headerStatsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E0E0E0")).
				Background(primaryColor).
				Padding(0, 1)

	headerBusyStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Background(primaryColor)

	// Status bar style
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	// Preset sidebar styles
	presetTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	presetSubtitleStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(0, 1)

	presetRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	presetRowSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#3B3B3B")).
				Padding(0, 1)

	presetIconStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	presetLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))

	presetDisabledStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	sidebarBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(mutedColor)

	sidebarFocusedBorderStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(primaryColor)

	// Chat view styles
	chatHeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2D2D2D")).
			Padding(0, 1)

	chatHeaderFocusedStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Padding(0, 1)

	chatEmptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 2)

	chatBotStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	chatUserStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	chatFallbackStyle = lipgloss.NewStyle().Foreground(errorColor)
	chatTypingStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	statPillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(secondaryColor).
			Padding(0, 1)

	chatViewBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(mutedColor)

	chatViewFocusedBorderStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(primaryColor)

	inputDividerStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Input line styles (inline, no border since it's inside the chat pane)
	inputLineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2D2D2D")).
			Padding(0, 1)

	inputLineFocusedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#3B3B3B")).
				Padding(0, 1)
)
