package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wellness/internal/devserver"
)

var (
	devserverAddr    string
	devserverDelay   time.Duration
	devserverOrigins []string
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Serve a canned chat endpoint for local development",
	Long: `Serve POST /api/chat with canned replies for each mood preset and a neutral
reply for free text. It does no analysis; it exists so the TUI can be
exercised without the real service.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cleanup, err := setupLogging(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer cleanup()

		catalog, err := cfg.LoadPresets()
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}

		srv := devserver.New(devserver.Options{
			Presets:        catalog,
			Delay:          devserverDelay,
			AllowedOrigins: devserverOrigins,
		})
		fmt.Fprintf(cmd.OutOrStdout(), "🌿 devserver listening on %s\n", devserverAddr)
		return srv.ListenAndServe(cmd.Context(), devserverAddr)
	},
}

func init() {
	devserverCmd.Flags().StringVar(&devserverAddr, "addr", ":8000", "listen address")
	devserverCmd.Flags().DurationVar(&devserverDelay, "delay", 0, "artificial latency per reply (e.g. 2s)")
	devserverCmd.Flags().StringSliceVar(&devserverOrigins, "origin", nil, "allowed CORS origins (default *)")
	rootCmd.AddCommand(devserverCmd)
}
