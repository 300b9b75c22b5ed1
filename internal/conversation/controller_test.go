package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/preset"
)

// fakeChatter records calls and returns a canned result.
type fakeChatter struct {
	mu       sync.Mutex
	messages []string
	stats    *chatapi.Stats
	err      error
	panicMsg string
}

func (f *fakeChatter) Chat(ctx context.Context, message string) (*chatapi.Stats, error) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.stats, f.err
}

func (f *fakeChatter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func energized() *chatapi.Stats {
	return &chatapi.Stats{Summary: "Great energy!", Mood: "Energized", EnergyScore: 9}
}

func TestSubmit_Success(t *testing.T) {
	fc := &fakeChatter{stats: energized()}
	c := New(fc)
	c.UpdateDraft("I'm feeling super energized and ready to take on the day!")

	turn, ok := c.SubmitDraft(context.Background())
	if !ok {
		t.Fatal("SubmitDraft() was dropped")
	}

	transcript := c.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(transcript))
	}
	if transcript[0].Sender != SenderUser || transcript[0].Text != "I'm feeling super energized and ready to take on the day!" {
		t.Errorf("user turn = %+v", transcript[0])
	}
	bot := transcript[1]
	if bot.Sender != SenderBot || bot.Text != "Great energy!" {
		t.Errorf("bot turn = %+v", bot)
	}
	if bot.Stats == nil || bot.Stats.Mood != "Energized" || bot.Stats.EnergyScore != 9 {
		t.Errorf("bot stats = %+v", bot.Stats)
	}
	if turn.ID != bot.ID {
		t.Errorf("returned turn ID = %q, want %q", turn.ID, bot.ID)
	}
	if c.Busy() {
		t.Error("Busy() = true after settlement")
	}
	if c.Draft() != "" {
		t.Errorf("Draft() = %q, want empty", c.Draft())
	}
	if fc.calls() != 1 {
		t.Errorf("chat calls = %d, want 1", fc.calls())
	}
}

func TestSubmit_Failure(t *testing.T) {
	fc := &fakeChatter{err: &chatapi.DeliveryError{Op: "request", Err: errors.New("refused")}}
	c := New(fc)

	turn, ok := c.Submit(context.Background(), "test")
	if !ok {
		t.Fatal("Submit() was dropped")
	}
	if turn.Text != FallbackText {
		t.Errorf("Text = %q, want %q", turn.Text, FallbackText)
	}
	if turn.Stats != nil {
		t.Errorf("Stats = %+v, want nil", turn.Stats)
	}
	if !turn.IsFallback() {
		t.Error("IsFallback() = false")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Busy() {
		t.Error("Busy() = true after failure")
	}
}

func TestSubmit_NilStatsIsFailure(t *testing.T) {
	c := New(&fakeChatter{})
	turn, _ := c.Submit(context.Background(), "hello")
	if turn.Text != FallbackText {
		t.Errorf("Text = %q, want fallback", turn.Text)
	}
}

func TestSubmit_PanicReopensGate(t *testing.T) {
	c := New(&fakeChatter{panicMsg: "boom"})
	turn, ok := c.Submit(context.Background(), "hello")
	if !ok || !turn.IsFallback() {
		t.Fatalf("Submit() = %+v, %v; want fallback turn", turn, ok)
	}
	if c.Busy() {
		t.Error("Busy() = true after panicking chatter")
	}
}

func TestSubmit_NoChatter(t *testing.T) {
	c := New(nil)
	turn, ok := c.Submit(context.Background(), "hello")
	if !ok || turn.Text != FallbackText {
		t.Errorf("Submit() = %+v, %v; want fallback turn", turn, ok)
	}
}

func TestSubmit_BlankDropped(t *testing.T) {
	tests := []string{"", "   ", "\t\n", " \r\n "}
	for _, text := range tests {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			fc := &fakeChatter{stats: energized()}
			c := New(fc)
			c.UpdateDraft(text)

			if _, ok := c.Submit(context.Background(), text); ok {
				t.Error("Submit() accepted blank text")
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d, want 0", c.Len())
			}
			if fc.calls() != 0 {
				t.Errorf("chat calls = %d, want 0", fc.calls())
			}
			if c.Draft() != text {
				t.Errorf("Draft() = %q, want unchanged %q", c.Draft(), text)
			}
		})
	}
}

func TestBegin_DroppedWhileBusy(t *testing.T) {
	c := New(nil)

	p, ok := c.Begin("first")
	if !ok {
		t.Fatal("Begin(first) dropped")
	}
	if !c.Busy() {
		t.Fatal("Busy() = false after Begin")
	}

	c.UpdateDraft("second")
	if _, ok := c.BeginDraft(); ok {
		t.Error("BeginDraft() accepted while busy")
	}
	if _, ok := c.Begin("third"); ok {
		t.Error("Begin() accepted while busy")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if c.Draft() != "second" {
		t.Errorf("Draft() = %q, dropped submission should not clear it", c.Draft())
	}

	if _, ok := c.Settle(p, energized(), nil); !ok {
		t.Fatal("Settle() rejected in-flight request")
	}
	if _, ok := c.BeginDraft(); !ok {
		t.Error("BeginDraft() dropped after settlement")
	}
}

func TestSettle_Stale(t *testing.T) {
	c := New(nil)

	if _, ok := c.Settle(Pending{ID: "nope"}, energized(), nil); ok {
		t.Error("Settle() accepted while idle")
	}

	p, _ := c.Begin("hello")
	if _, ok := c.Settle(Pending{ID: "other"}, energized(), nil); ok {
		t.Error("Settle() accepted a foreign pending")
	}
	if !c.Busy() {
		t.Error("foreign settlement reopened the gate")
	}

	if _, ok := c.Settle(p, energized(), nil); !ok {
		t.Fatal("Settle() rejected the in-flight request")
	}
	if _, ok := c.Settle(p, energized(), nil); ok {
		t.Error("Settle() accepted the same pending twice")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestBegin_ClearsDraft(t *testing.T) {
	c := New(nil)
	c.UpdateDraft("draft text")
	p, ok := c.BeginDraft()
	if !ok {
		t.Fatal("BeginDraft() dropped")
	}
	if p.Message != "draft text" {
		t.Errorf("Message = %q, want %q", p.Message, "draft text")
	}
	if c.Draft() != "" {
		t.Errorf("Draft() = %q, want cleared before response", c.Draft())
	}
}

func TestSubmit_PreservesText(t *testing.T) {
	fc := &fakeChatter{stats: energized()}
	c := New(fc)
	c.Submit(context.Background(), "  padded  ")

	if got := c.Transcript()[0].Text; got != "  padded  " {
		t.Errorf("user turn text = %q, want untrimmed", got)
	}
	if fc.messages[0] != "  padded  " {
		t.Errorf("sent message = %q, want untrimmed", fc.messages[0])
	}
}

func TestSelectPreset_EquivalentToSubmit(t *testing.T) {
	p := preset.Default().Presets[0]

	viaPreset := New(&fakeChatter{stats: energized()})
	viaPreset.SelectPreset(context.Background(), p)

	typed := New(&fakeChatter{stats: energized()})
	typed.UpdateDraft(p.Prompt)
	typed.SubmitDraft(context.Background())

	a, b := viaPreset.Transcript(), typed.Transcript()
	if len(a) != len(b) {
		t.Fatalf("transcript lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Sender != b[i].Sender || a[i].Text != b[i].Text {
			t.Errorf("turn %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if viaPreset.Draft() != typed.Draft() || viaPreset.Busy() != typed.Busy() {
		t.Error("draft or busy state differs")
	}
}

func TestTranscript_IsCopy(t *testing.T) {
	c := New(&fakeChatter{stats: energized()})
	c.Submit(context.Background(), "hi")

	tr := c.Transcript()
	tr[0].Text = "mutated"
	if c.Transcript()[0].Text != "hi" {
		t.Error("Transcript() exposed internal storage")
	}
}

func TestTranscript_Alternates(t *testing.T) {
	fc := &fakeChatter{stats: energized()}
	c := New(fc)
	for i := 0; i < 3; i++ {
		c.Submit(context.Background(), fmt.Sprintf("message %d", i))
	}
	fc.stats, fc.err = nil, errors.New("down")
	c.Submit(context.Background(), "last")

	tr := c.Transcript()
	if len(tr) != 8 {
		t.Fatalf("Len = %d, want 8", len(tr))
	}
	for i, turn := range tr {
		want := SenderUser
		if i%2 == 1 {
			want = SenderBot
		}
		if turn.Sender != want {
			t.Errorf("turn %d sender = %q, want %q", i, turn.Sender, want)
		}
	}
	last, ok := c.Last()
	if !ok || last.Text != FallbackText {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}

func TestEvents(t *testing.T) {
	c := New(&fakeChatter{stats: energized()})

	var events []Event
	c.OnEvent(func(ev Event) {
		events = append(events, ev)
	})

	c.Submit(context.Background(), "   ")
	if len(events) != 0 {
		t.Fatalf("dropped submission emitted %d events", len(events))
	}

	c.Submit(context.Background(), "hello")
	want := []struct {
		typ    EventType
		sender Sender
		busy   bool
	}{
		{EventTurnAppended, SenderUser, false},
		{EventBusyChanged, "", true},
		{EventTurnAppended, SenderBot, false},
		{EventBusyChanged, "", false},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		ev := events[i]
		if ev.Type != w.typ {
			t.Errorf("event %d type = %q, want %q", i, ev.Type, w.typ)
		}
		if w.typ == EventTurnAppended && ev.Turn.Sender != w.sender {
			t.Errorf("event %d sender = %q, want %q", i, ev.Turn.Sender, w.sender)
		}
		if w.typ == EventBusyChanged && ev.Busy != w.busy {
			t.Errorf("event %d busy = %v, want %v", i, ev.Busy, w.busy)
		}
	}
}

func TestSubmit_ConcurrentWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	var requests int
	var reqMu sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqMu.Lock()
		requests++
		reqMu.Unlock()
		once.Do(func() { close(started) })
		<-release
		io.WriteString(w, `{"data":{"summary":"Great energy!","mood":"Energized","energy_score":9}}`)
	}))
	defer srv.Close()

	c := New(chatapi.New(srv.URL))

	done := make(chan Turn)
	go func() {
		turn, _ := c.Submit(context.Background(), "I'm feeling super energized and ready to take on the day!")
		done <- turn
	}()

	<-started
	for i := 0; i < 5; i++ {
		if _, ok := c.Submit(context.Background(), "again"); ok {
			t.Error("Submit() accepted while a request was in flight")
		}
	}
	close(release)
	turn := <-done

	if turn.Text != "Great energy!" {
		t.Errorf("bot text = %q", turn.Text)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	reqMu.Lock()
	defer reqMu.Unlock()
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestSubmit_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(chatapi.New(srv.URL))
	turn, ok := c.Submit(context.Background(), "test")
	if !ok {
		t.Fatal("Submit() dropped")
	}
	if turn.Text != FallbackText || turn.Stats != nil {
		t.Errorf("turn = %+v, want fallback", turn)
	}
	if c.Busy() {
		t.Error("Busy() = true")
	}
}

func TestSubmit_EmptySummaryIsAReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"summary":"","mood":"Calm","energy_score":5}}`)
	}))
	defer srv.Close()

	c := New(chatapi.New(srv.URL))
	turn, ok := c.Submit(context.Background(), "quiet day")
	if !ok {
		t.Fatal("Submit() dropped")
	}
	if turn.IsFallback() || turn.Text != "" {
		t.Fatalf("turn = %+v, want empty reply with stats", turn)
	}
	if turn.Stats.Mood != "Calm" || turn.Stats.EnergyScore != 5 {
		t.Errorf("Stats = %+v, want Calm/5", turn.Stats)
	}
}

func TestDeliver_DoesNotMutate(t *testing.T) {
	fc := &fakeChatter{stats: energized()}
	c := New(fc)

	p, ok := c.Begin("hello")
	if !ok {
		t.Fatal("Begin() dropped")
	}
	stats, err := c.Deliver(context.Background(), p)
	if err != nil || stats.Summary != "Great energy!" {
		t.Fatalf("Deliver() = %+v, %v", stats, err)
	}
	if !c.Busy() || c.Len() != 1 {
		t.Errorf("Deliver() changed state: busy=%v len=%d", c.Busy(), c.Len())
	}
	turn, ok := c.Settle(p, stats, err)
	if !ok || turn.Text != "Great energy!" {
		t.Errorf("Settle() = %+v, %v", turn, ok)
	}
}
