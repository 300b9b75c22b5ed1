package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/wellness/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal user interface",
	Long:  "Launch the interactive TUI with the mood preset sidebar and the chat transcript.",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cleanup, err := setupLogging(cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	catalog, err := cfg.LoadPresets()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	client := newClient(cfg)
	return tui.Run(newController(client), tui.Options{
		Endpoint: client.Endpoint(),
		Presets:  catalog.Presets,
		Context:  cmd.Context(),
	})
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
