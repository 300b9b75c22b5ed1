// Package devserver serves a canned /api/chat endpoint for working on the
// client without the real analysis service. Responses are a fixed lookup on
// the preset prompts; free text gets a neutral reply.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/preset"
)

// Reply is a canned analysis.
type Reply struct {
	Mood        string
	EnergyScore float64
	Summary     string
}

// cannedReplies is keyed by preset label.
var cannedReplies = map[string]Reply{
	"Energized":  {"Energized", 9, "Great energy! Channel it into the task that matters most today."},
	"Stressed":   {"Stressed", 4, "That sounds like a heavy day. A slow walk or a few deep breaths can help you unwind."},
	"Tired":      {"Tired", 2, "Your body is asking for rest. Hydrate and aim for an early night."},
	"Calm":       {"Calm", 6, "Lovely. Notice what helped you get here so you can come back to it."},
	"Productive": {"Productive", 8, "Well earned pride. Take a moment to celebrate the progress."},
	"Anxious":    {"Anxious", 5, "It's natural to feel uneasy before big events. Try writing down what's in your control."},
	"Happy":      {"Happy", 8, "Wonderful! Savor the good mood and share it with someone."},
	"Low":        {"Low", 3, "I'm sorry you're feeling down. Small steps count; be gentle with yourself."},
	"Focused":    {"Focused", 7, "Nice flow state. Protect it with short breaks every hour."},
	"Social":     {"Social", 7, "A great day to reach out to a friend you've been meaning to call."},
}

var neutralReply = Reply{
	Mood:        "Reflective",
	EnergyScore: 5,
	Summary:     "Thanks for sharing. How has your energy been over the last few hours?",
}

// Options configures the server.
type Options struct {
	// Presets maps prompts to canned replies. Defaults to preset.Default().
	Presets preset.Catalog
	// Delay is added before every chat response to exercise the busy state.
	Delay time.Duration
	// AllowedOrigins for CORS. Defaults to "*".
	AllowedOrigins []string
}

// Server is the development chat endpoint.
type Server struct {
	replies map[string]Reply
	delay   time.Duration
	router  chi.Router
}

// New creates a dev server.
func New(opts Options) *Server {
	catalog := opts.Presets
	if catalog.Len() == 0 {
		catalog = preset.Default()
	}

	replies := make(map[string]Reply, catalog.Len())
	for _, p := range catalog.Presets {
		reply, ok := cannedReplies[p.Label]
		if !ok {
			reply = Reply{Mood: p.Label, EnergyScore: neutralReply.EnergyScore, Summary: neutralReply.Summary}
		}
		replies[normalize(p.Prompt)] = reply
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		replies: replies,
		delay:   opts.Delay,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post(chatapi.ChatPath, s.handleChat)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Lookup returns the canned reply for message.
func (s *Server) Lookup(message string) Reply {
	if reply, ok := s.replies[normalize(message)]; ok {
		return reply
	}
	return neutralReply
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatapi.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	reply := s.Lookup(req.Message)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": chatapi.Stats{
			Mood:        reply.Mood,
			EnergyScore: reply.EnergyScore,
			Summary:     reply.Summary,
		},
	})
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("devserver: listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("devserver: write response", "error", err)
	}
}

// requestLogger logs each request through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("devserver: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
