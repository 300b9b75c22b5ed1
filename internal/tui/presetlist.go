package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/wellness/internal/preset"
)

const (
	presetListTitle    = "Mood Presets"
	presetListSubtitle = "Quick start your session"
)

// PresetList is the sidebar of mood presets.
type PresetList struct {
	width    int
	height   int
	presets  []preset.Preset
	selected int
	focused  bool
	disabled bool
}

// NewPresetList creates a preset sidebar for the given catalog.
func NewPresetList(presets []preset.Preset) PresetList {
	return PresetList{presets: presets}
}

// SetSize updates the component dimensions.
func (l *PresetList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetFocused sets the focus state.
func (l *PresetList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns whether the list is focused.
func (l *PresetList) IsFocused() bool {
	return l.focused
}

// SetDisabled greys out the presets while a request is in flight.
func (l *PresetList) SetDisabled(disabled bool) {
	l.disabled = disabled
}

// Presets returns the presets shown in the list.
func (l *PresetList) Presets() []preset.Preset {
	return l.presets
}

// Selected returns the highlighted preset, or false if the list is empty.
func (l *PresetList) Selected() (preset.Preset, bool) {
	if len(l.presets) == 0 || l.selected < 0 || l.selected >= len(l.presets) {
		return preset.Preset{}, false
	}
	return l.presets[l.selected], true
}

// SelectedIndex returns the current selection index.
func (l *PresetList) SelectedIndex() int {
	return l.selected
}

// MoveUp moves selection up one item.
func (l *PresetList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down one item.
func (l *PresetList) MoveDown() {
	if l.selected < len(l.presets)-1 {
		l.selected++
	}
}

// MoveToTop moves selection to the first item.
func (l *PresetList) MoveToTop() {
	l.selected = 0
}

// MoveToBottom moves selection to the last item.
func (l *PresetList) MoveToBottom() {
	if len(l.presets) > 0 {
		l.selected = len(l.presets) - 1
	}
}

// View renders the preset sidebar.
func (l PresetList) View() string {
	innerWidth := l.width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	rows := []string{
		presetTitleStyle.Render(presetListTitle),
		presetSubtitleStyle.Render(presetListSubtitle),
		"",
	}
	for i, p := range l.presets {
		rows = append(rows, l.renderPreset(i, p, innerWidth))
	}
	content := strings.Join(rows, "\n")

	border := sidebarBorderStyle
	if l.focused {
		border = sidebarFocusedBorderStyle
	}
	height := l.height - 2
	if height < 1 {
		height = 1
	}
	return border.Width(innerWidth).Height(height).Render(content)
}

// renderPreset renders a single preset row.
func (l PresetList) renderPreset(index int, p preset.Preset, width int) string {
	icon := presetIconStyle.Render(p.Icon)
	label := presetLabelStyle.Render(p.Label)
	if l.disabled {
		icon = presetDisabledStyle.Render(p.Icon)
		label = presetDisabledStyle.Render(p.Label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, icon, " ", label)

	if index == l.selected && l.focused {
		return presetRowSelectedStyle.Width(width).Render(row)
	}
	return presetRowStyle.Width(width).Render(row)
}
