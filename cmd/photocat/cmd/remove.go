package cmd

import (
	"github.com/spf13/cobra"

	"photocat/internal/application/commands"
)

var removeCmd = &cobra.Command{
	Use:     "remove <target>",
	Aliases: []string{"rm"},
	Short:   "Remove a file or a directory's files from the catalog",
	Long: `Remove a file, or every cataloged file in a directory, from the catalog.
Files on disk are not touched.

A target is #<id>, a cataloged file path or a directory.

Examples:
  photocat remove '#12'
  photocat remove ~/Pictures/old`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewRemoveCommand(GetSession(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", res.Message)
		return save(cmd)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
