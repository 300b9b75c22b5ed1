package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/conversation"
	"github.com/tessro/wellness/internal/preset"
)

type stubChatter struct {
	stats    *chatapi.Stats
	err      error
	messages []string
}

func (s *stubChatter) Chat(_ context.Context, message string) (*chatapi.Stats, error) {
	s.messages = append(s.messages, message)
	return s.stats, s.err
}

func newTestModel(t *testing.T, chatter *stubChatter) (Model, *conversation.Controller) {
	t.Helper()
	conv := conversation.New(chatter)
	m := New(conv, Options{Endpoint: "http://127.0.0.1:8000", Presets: preset.Default().Presets})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), conv
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModel_SubmitDraft(t *testing.T) {
	chatter := &stubChatter{stats: &chatapi.Stats{Mood: "Calm", EnergyScore: 6, Summary: "Steady and grounded."}}
	m, conv := newTestModel(t, chatter)

	m = typeText(t, m, "I feel calm")
	if got := conv.Draft(); got != "I feel calm" {
		t.Fatalf("Draft() = %q, want %q", got, "I feel calm")
	}

	m, cmd := press(t, m, enterKey)
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if !conv.Busy() {
		t.Error("controller should be busy after submit")
	}
	if m.inputLine.Value() != "" || conv.Draft() != "" {
		t.Errorf("input not cleared: input=%q draft=%q", m.inputLine.Value(), conv.Draft())
	}
	if !strings.Contains(m.View(), typingIndicator) {
		t.Error("typing indicator missing while busy")
	}

	result, ok := cmd().(chatResultMsg)
	if !ok {
		t.Fatal("command did not produce a chatResultMsg")
	}
	updated, _ := m.Update(result)
	m = updated.(Model)

	if conv.Busy() {
		t.Error("controller still busy after settle")
	}
	turns := conv.Transcript()
	if len(turns) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(turns))
	}
	if turns[1].Text != "Steady and grounded." {
		t.Errorf("bot text = %q", turns[1].Text)
	}
	if len(chatter.messages) != 1 || chatter.messages[0] != "I feel calm" {
		t.Errorf("chatter messages = %q", chatter.messages)
	}

	view := m.View()
	for _, want := range []string{"Steady and grounded.", "Mood: Calm", "Energy: 6/10"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_SubmitWhileBusyIsDropped(t *testing.T) {
	chatter := &stubChatter{stats: &chatapi.Stats{Summary: "ok"}}
	m, conv := newTestModel(t, chatter)

	m = typeText(t, m, "first")
	m, _ = press(t, m, enterKey)

	m = typeText(t, m, "second")
	m, cmd := press(t, m, enterKey)
	if cmd != nil {
		t.Error("submit while busy should not issue a request")
	}
	if conv.Len() != 1 {
		t.Errorf("transcript length = %d, want 1", conv.Len())
	}
	if m.inputLine.Value() != "second" {
		t.Errorf("dropped text should stay in the input, got %q", m.inputLine.Value())
	}
}

func TestModel_BlankSubmitIsDropped(t *testing.T) {
	m, conv := newTestModel(t, &stubChatter{})

	m = typeText(t, m, "   ")
	_, cmd := press(t, m, enterKey)
	if cmd != nil {
		t.Error("blank submit should not issue a request")
	}
	if conv.Len() != 0 || conv.Busy() {
		t.Errorf("blank submit changed state: len=%d busy=%v", conv.Len(), conv.Busy())
	}
}

func TestModel_SelectPreset(t *testing.T) {
	chatter := &stubChatter{stats: &chatapi.Stats{Mood: "Stressed", EnergyScore: 4, Summary: "Take a breath."}}
	m, conv := newTestModel(t, chatter)

	m = typeText(t, m, "half typed")
	m, _ = press(t, m, tabKey)
	if m.modeState.Focus != FocusPresets {
		t.Fatalf("focus = %v, want presets", m.modeState.Focus)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, cmd := press(t, m, enterKey)
	if cmd == nil {
		t.Fatal("preset selection returned no command")
	}

	stressed, _ := preset.Default().Find("Stressed")
	turns := conv.Transcript()
	if len(turns) != 1 || turns[0].Text != stressed.Prompt {
		t.Fatalf("transcript = %+v, want the Stressed prompt", turns)
	}
	if conv.Draft() != "" || m.inputLine.Value() != "" {
		t.Errorf("draft not cleared by preset: draft=%q input=%q", conv.Draft(), m.inputLine.Value())
	}

	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if conv.Len() != 2 || conv.Busy() {
		t.Errorf("after settle: len=%d busy=%v", conv.Len(), conv.Busy())
	}
}

func TestModel_DeliveryFailure(t *testing.T) {
	chatter := &stubChatter{err: &chatapi.DeliveryError{Op: "status", StatusCode: 502, Err: errors.New("unexpected status: bad gateway")}}
	m, conv := newTestModel(t, chatter)

	m = typeText(t, m, "hello")
	m, cmd := press(t, m, enterKey)
	updated, settleCmd := m.Update(cmd())
	m = updated.(Model)

	last, ok := conv.Last()
	if !ok || !last.IsFallback() {
		t.Fatalf("last turn = %+v, want fallback", last)
	}
	if conv.Busy() {
		t.Error("controller still busy after failure")
	}
	if settleCmd != nil {
		t.Error("failed settlement should not schedule follow-up commands")
	}

	view := m.View()
	if !strings.Contains(view, conversation.FallbackText) {
		t.Error("View() missing fallback text")
	}
	for _, detail := range []string{"502", "bad gateway", "Error:", "delivery failed"} {
		if strings.Contains(view, detail) {
			t.Errorf("View() exposes error detail %q", detail)
		}
	}
}

func TestModel_StaleResultIgnored(t *testing.T) {
	m, conv := newTestModel(t, &stubChatter{})

	updated, cmd := m.Update(chatResultMsg{Pending: conversation.Pending{ID: "nope", Message: "x"}})
	m = updated.(Model)
	if cmd != nil {
		t.Error("stale result should not produce a command")
	}
	if conv.Len() != 0 {
		t.Errorf("stale result appended a turn: len=%d", conv.Len())
	}
}

func TestModel_CancelClearsDraft(t *testing.T) {
	m, conv := newTestModel(t, &stubChatter{})

	m = typeText(t, m, "never mind")
	m, _ = press(t, m, escKey)
	if m.inputLine.Value() != "" || conv.Draft() != "" {
		t.Errorf("esc did not clear: input=%q draft=%q", m.inputLine.Value(), conv.Draft())
	}
}

func TestModel_RecallSentMoods(t *testing.T) {
	m, conv := newTestModel(t, &stubChatter{stats: &chatapi.Stats{Summary: "ok"}})

	m = typeText(t, m, "sent before")
	m, cmd := press(t, m, enterKey)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	m = typeText(t, m, "unsent")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.inputLine.Value() != "sent before" {
		t.Errorf("up = %q, want %q", m.inputLine.Value(), "sent before")
	}
	if conv.Draft() != "sent before" {
		t.Errorf("draft not synced from recall: %q", conv.Draft())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.inputLine.Value() != "unsent" || conv.Draft() != "unsent" {
		t.Errorf("down should restore the draft: input=%q draft=%q", m.inputLine.Value(), conv.Draft())
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, &stubChatter{})

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}

	// q types into the input instead of quitting while it is focused
	m = typeText(t, m, "q")
	if m.inputLine.Value() != "q" {
		t.Errorf("input = %q, want %q", m.inputLine.Value(), "q")
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(conversation.New(nil), Options{})
	if m.View() != "Loading..." {
		t.Errorf("View() before resize = %q", m.View())
	}
	if len(m.presets.Presets()) != preset.Default().Len() {
		t.Errorf("default presets not used: %d", len(m.presets.Presets()))
	}
}
