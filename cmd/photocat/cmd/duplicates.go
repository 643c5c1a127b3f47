package cmd

import (
	"github.com/spf13/cobra"

	"photocat/internal/adapters/report"
	"photocat/internal/application/commands"
)

var duplicatesCmd = &cobra.Command{
	Use:     "duplicates [target]",
	Aliases: []string{"dup", "dd"},
	Short:   "Confirm potential duplicates by comparing content",
	Long: `Files with the same size and checksum are potential duplicates (DUP?).
This command compares them byte by byte and marks confirmed copies DUP.

Without a target every potential duplicate is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target string
		if len(args) == 1 {
			target = args[0]
		}
		res, err := commands.NewDuplicatesCommand(GetSession(), target).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s", report.Duplicates(res, GetSession().Catalog()))
		return save(cmd)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [target]",
	Short: "Compare the catalog with the disk",
	Long: `Rescan cataloged files: missing files are marked DELETED, modified files
are updated and marked CHANGED, and new images in cataloged directories
are added.

Without a target the whole catalog is scanned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target string
		if len(args) == 1 {
			target = args[0]
		}
		res, err := commands.NewScanCommand(GetSession(), target).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s", report.Scan(res))
		return save(cmd)
	},
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(scanCmd)
}
