// Package tui provides the Bubbletea-based terminal user interface for the
// wellness companion.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/wellness/internal/conversation"
	"github.com/tessro/wellness/internal/preset"
)

// Model is the main Bubbletea model for the wellness TUI.
type Model struct {
	// Window dimensions
	width  int
	height int

	// UI state
	ready bool

	// Mode state (centralized focus management)
	modeState ModeState

	// Components
	header    Header
	presets   PresetList
	chatView  ChatView
	inputLine InputLine
	helpBar   HelpBar
	spinner   spinner.Model

	// Conversation state lives in the controller; the views mirror it.
	conv *conversation.Controller
	ctx  context.Context

	// Key bindings
	keys KeyBindings
}

// Options configures the TUI.
type Options struct {
	// Endpoint is shown in the header.
	Endpoint string
	// Presets fills the sidebar. Empty means the built-in catalog.
	Presets []preset.Preset
	// Context bounds outbound requests. Defaults to context.Background.
	Context context.Context
}

// New creates a TUI model driving conv.
func New(conv *conversation.Controller, opts Options) Model {
	presets := opts.Presets
	if len(presets) == 0 {
		presets = preset.Default().Presets
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(warningColor)

	m := Model{
		header:    NewHeader(opts.Endpoint),
		presets:   NewPresetList(presets),
		chatView:  NewChatView(),
		inputLine: NewInputLine(),
		helpBar:   NewHelpBar(),
		spinner:   sp,
		modeState: NewModeState(),
		keys:      DefaultKeyBindings(),
		conv:      conv,
		ctx:       ctx,
	}
	m.inputLine.SetValue(conv.Draft())
	m.syncFocusToComponents(m.modeState.Focus)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	slog.Debug("tui.Init: starting", "presets", len(m.presets.Presets()))
	return tea.Batch(
		m.inputLine.input.Cursor.BlinkCmd(),
		m.spinner.Tick,
	)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.header.View()
	status := m.helpBar.View()
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.presets.View(), m.chatView.View())

	return fmt.Sprintf("%s\n%s\n%s", header, content, status)
}

// Run starts the TUI and blocks until the user quits.
func Run(conv *conversation.Controller, opts Options) error {
	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	slog.Debug("tui.Run: starting", "endpoint", opts.Endpoint)
	p := tea.NewProgram(New(conv, opts), progOpts...)
	_, err := p.Run()
	slog.Debug("tui.Run: program exited", "error", err, "turns", conv.Len())
	return err
}
