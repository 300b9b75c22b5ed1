package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tessro/wellness/internal/preset"
)

var presetsYAML bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the mood presets",
	Long:  "List the mood presets shown in the sidebar, from presets_file or the built-in catalog.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := cfg.LoadPresets()
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		if presetsYAML {
			data, err := catalog.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return printPresets(cmd.OutOrStdout(), catalog)
	},
}

// printPresets writes the catalog as a table.
func printPresets(out io.Writer, catalog preset.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ICON\tLABEL\tPROMPT")
	for _, p := range catalog.Presets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Icon, p.Label, p.Prompt)
	}
	return w.Flush()
}

func init() {
	presetsCmd.Flags().BoolVar(&presetsYAML, "yaml", false, "print the catalog as YAML (usable as presets_file)")
	rootCmd.AddCommand(presetsCmd)
}
