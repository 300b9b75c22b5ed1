package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/config"
	"github.com/tessro/wellness/internal/conversation"
	"github.com/tessro/wellness/internal/logging"
)

// loadConfig loads configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		Path: configPath,
		Overrides: func(c *config.Config) {
			applyFlags(c, endpointFlag, logLevelFlag)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with non-empty flag values.
func applyFlags(cfg *config.Config, endpoint, level string) {
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if level != "" {
		cfg.LogLevel = level
	}
}

// setupLogging points slog at the configured log file, mirroring to extra
// when it is non-nil.
func setupLogging(cfg *config.Config, extra io.Writer) (func(), error) {
	cleanup, err := logging.SetupMulti(cfg.LogFile, extra, logging.ParseLevel(cfg.GetLogLevel()))
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return cleanup, nil
}

// newClient builds the chat client for cfg.
func newClient(cfg *config.Config) *chatapi.Client {
	var opts []chatapi.Option
	if cfg.RequestTimeout > 0 {
		opts = append(opts, chatapi.WithTimeout(cfg.RequestTimeout))
	}
	return chatapi.New(cfg.GetEndpoint(), opts...)
}

// newController wires a conversation controller to chatter and logs its events.
func newController(chatter conversation.Chatter) *conversation.Controller {
	conv := conversation.New(chatter)
	conv.OnEvent(logEvent)
	return conv
}

func logEvent(ev conversation.Event) {
	switch ev.Type {
	case conversation.EventTurnAppended:
		slog.Debug("conversation: turn appended",
			"turn_id", ev.Turn.ID,
			"sender", ev.Turn.Sender,
			"fallback", ev.Turn.IsFallback(),
		)
	case conversation.EventBusyChanged:
		slog.Debug("conversation: busy changed", "busy", ev.Busy)
	}
}
