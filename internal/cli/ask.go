package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/tessro/wellness/internal/chatapi"
	"github.com/tessro/wellness/internal/conversation"
	"github.com/tessro/wellness/internal/markdown"
	"github.com/tessro/wellness/internal/preset"
)

// askWrapWidth is the column width of plain-text replies.
const askWrapWidth = 80

var (
	askPreset  string
	askJSON    bool
	askVerbose bool
)

// errNoReply is returned when the exchange ended with the fallback turn.
var errNoReply = errors.New("no reply from the chat service")

var askCmd = &cobra.Command{
	Use:   "ask [TEXT...]",
	Short: "Send one message and print the reply",
	Long: `Send a single message (or a mood preset) to the chat service and print the
companion's reply. Without TEXT or --preset, the message is read from stdin.

Exits with status 1 when the service could not be reached.`,
	Example: `  wellness ask "Slept badly but feeling hopeful"
  wellness ask --preset Tired
  echo "big meeting tomorrow" | wellness ask --json`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var extra io.Writer
	if askVerbose {
		extra = cmd.ErrOrStderr()
	}
	cleanup, err := setupLogging(cfg, extra)
	if err != nil {
		return err
	}
	defer cleanup()

	catalog, err := cfg.LoadPresets()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	text := strings.Join(args, " ")
	if text == "" && askPreset == "" {
		text, err = readStdin(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	conv := newController(newClient(cfg))
	turn, err := ask(cmd.Context(), conv, catalog, askPreset, text)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		err = writeTranscriptJSON(out, conv.Transcript())
	} else {
		_, err = fmt.Fprintln(out, formatReply(turn, askWrapWidth))
	}
	if err != nil {
		return err
	}
	if turn.IsFallback() {
		return errNoReply
	}
	return nil
}

// ask runs one exchange for either a preset label or free text and returns
// the bot turn.
func ask(ctx context.Context, conv *conversation.Controller, catalog preset.Catalog, label, text string) (conversation.Turn, error) {
	var (
		turn conversation.Turn
		ok   bool
	)
	switch {
	case label != "" && strings.TrimSpace(text) != "":
		return conversation.Turn{}, errors.New("--preset cannot be combined with TEXT")
	case label != "":
		p, found := catalog.Find(label)
		if !found {
			return conversation.Turn{}, fmt.Errorf("unknown preset %q (available: %s)", label, strings.Join(catalog.Labels(), ", "))
		}
		turn, ok = conv.SelectPreset(ctx, p)
	default:
		turn, ok = conv.Submit(ctx, text)
	}
	if !ok {
		return conversation.Turn{}, errors.New("nothing to send")
	}
	return turn, nil
}

// readStdin reads the message from r unless it is an interactive terminal.
func readStdin(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", errors.New("no message given (pass TEXT, --preset, or pipe text on stdin)")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// formatReply renders a bot turn as plain text: the summary followed by the
// mood and energy line.
func formatReply(turn conversation.Turn, width int) string {
	if turn.Stats == nil {
		return turn.Text
	}
	var b strings.Builder
	b.WriteString(wordwrap.String(markdown.Flatten(turn.Text), width))
	b.WriteString("\n\n")

	var facts []string
	if turn.Stats.Mood != "" {
		facts = append(facts, "Mood: "+turn.Stats.Mood)
	}
	facts = append(facts, "Energy: "+chatapi.FormatEnergy(turn.Stats.EnergyScore))
	b.WriteString(indent.String(strings.Join(facts, "  ·  "), 2))
	return b.String()
}

// writeTranscriptJSON writes turns as an indented JSON array.
func writeTranscriptJSON(w io.Writer, turns []conversation.Turn) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(turns)
}

func init() {
	askCmd.Flags().StringVarP(&askPreset, "preset", "p", "", "send a mood preset by label (e.g. Tired)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the exchange as JSON")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "mirror logs to stderr")
	rootCmd.AddCommand(askCmd)
}
