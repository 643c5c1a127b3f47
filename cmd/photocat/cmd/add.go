package cmd

import (
	"github.com/spf13/cobra"

	"photocat/internal/adapters/report"
	"photocat/internal/application/commands"
)

var addRecursive bool

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add an image file or a directory of images",
	Long: `Add an image file to the catalog, or every image in a directory.
Files already in the catalog are probed again and updated.

Examples:
  photocat add ~/Pictures/beach.jpg
  photocat add ~/Pictures -r`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewAddCommand(GetSession(), args[0], addRecursive).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s", report.Add(res))
		return save(cmd)
	},
}

func init() {
	addCmd.Flags().BoolVarP(&addRecursive, "recursive", "r", false, "descend into subdirectories")
	rootCmd.AddCommand(addCmd)
}
