package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tessro/wellness/internal/logging"
	"github.com/tessro/wellness/internal/paths"
)

// Global flag values.
var (
	configPath   string
	wellnessDir  string
	logLevelFlag string
	endpointFlag string
)

var rootCmd = &cobra.Command{
	Use:   "wellness",
	Short: "Terminal wellness companion",
	Long: `wellness is a chat companion for checking in on your mood and energy.

Pick a mood preset or describe how you feel; each message is sent to the
analysis service, which replies with a short summary, a mood label and an
energy score.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set WELLNESS_DIR so every path helper sees the override.
		if wellnessDir != "" {
			if err := os.Setenv(paths.EnvWellnessDir, wellnessDir); err != nil {
				return err
			}
		}
		if logLevelFlag != "" && !logging.ValidLevel(logLevelFlag) {
			return fmt.Errorf("invalid --log-level %q (want debug, info, warn or error)", logLevelFlag)
		}
		return nil
	},
	RunE: runDefault,
}

// runDefault opens the TUI when attached to a terminal.
func runDefault(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		fmt.Fprintln(cmd.ErrOrStderr(), "🌿 stdout is not a terminal; use `wellness ask TEXT` for a single check-in")
		return nil
	}
	return runTUI(cmd, args)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/wellness/config.toml)")
	flags.StringVar(&wellnessDir, "wellness-dir", "", "base directory for wellness data (overrides ~/.wellness)")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&endpointFlag, "endpoint", "", "chat service base URL (overrides config)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
