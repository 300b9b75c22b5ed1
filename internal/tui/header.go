package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const brandText = "🌿 Wellness Companion"

// Header displays the branding, the endpoint and a spinner while a request
// is in flight.
type Header struct {
	width    int
	endpoint string
	turns    int
	busy     bool
	spinner  string
}

// NewHeader creates a new header component.
func NewHeader(endpoint string) Header {
	return Header{endpoint: endpoint}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTurnCount updates the number of turns shown in the stats area.
func (h *Header) SetTurnCount(n int) {
	h.turns = n
}

// SetBusy updates the busy indicator. spinner is the current spinner frame.
func (h *Header) SetBusy(busy bool, spinner string) {
	h.busy = busy
	h.spinner = spinner
}

// View renders the header.
func (h Header) View() string {
	brand := headerBrandStyle.Render(brandText)

	var busy string
	if h.busy {
		busy = headerBusyStyle.Render(" " + h.spinner + " analyzing")
	}

	var statsParts []string
	if h.turns > 0 {
		statsParts = append(statsParts, fmt.Sprintf("%d messages", h.turns))
	}
	if h.endpoint != "" {
		statsParts = append(statsParts, h.endpoint)
	}
	var stats string
	if len(statsParts) > 0 {
		stats = headerStatsStyle.Render(join(statsParts, "  •  "))
	}

	spacerWidth := h.width - lipgloss.Width(brand) - lipgloss.Width(busy) - lipgloss.Width(stats)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	content := lipgloss.JoinHorizontal(lipgloss.Top, brand, busy, spacer, stats)
	return headerContainerStyle.Width(h.width).Render(content)
}

// join concatenates strings with a separator.
func join(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += sep + parts[i]
	}
	return result
}
