package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"photocat/internal/adapters/report"
	"photocat/internal/adapters/tui/views"
	"photocat/internal/application/commands"
)

var (
	exportFormat string
	exportOutput string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := commands.NewStatsCommand(GetSession()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s", report.Stats(stats))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the catalog indices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewCheckCommand(GetSession()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if !res.OK {
			return errors.New(res.Message)
		}
		printf(cmd, "%s\n", res.Message)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as text, YAML or JSON",
	Long: `Write the whole catalog to stdout or a file.

Examples:
  photocat export
  photocat export --format yaml -o catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exp := commands.NewExportCommand(GetSession(), exportFormat)
		snap, err := exp.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if exportOutput == "" {
			return report.Export(cmd.OutOrStdout(), snap, exp.Format)
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		if err := report.Export(f, snap, exp.Format); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Describe photocat",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printf(cmd, "%s\n", views.About)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", commands.FormatText, "output format: text, yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(aboutCmd)
}
