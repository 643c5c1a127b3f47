package cmd

import (
	"github.com/spf13/cobra"

	"photocat/internal/application/commands"
)

var keywordCmd = &cobra.Command{
	Use:     "keyword",
	Aliases: []string{"kw"},
	Short:   "Add or remove keywords",
	Long: `Tag files with keywords. Keywords are case-insensitive and stored in
upper case. DUP and DUP? are managed by duplicate detection; CHANGED and
DELETED are set by scans and can only be removed.

Examples:
  photocat keyword add holiday ~/Pictures/2024
  photocat keyword remove changed '#7'`,
}

var keywordAddCmd = &cobra.Command{
	Use:   "add <keyword> <target>",
	Short: "Add a keyword to a file or a directory's files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewAddKeywordCommand(GetSession(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", res.Message)
		return save(cmd)
	},
}

var keywordRemoveCmd = &cobra.Command{
	Use:     "remove <keyword> <target>",
	Aliases: []string{"rm"},
	Short:   "Remove a keyword from a file or a directory's files",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewRemoveKeywordCommand(GetSession(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", res.Message)
		return save(cmd)
	},
}

func init() {
	rootCmd.AddCommand(keywordCmd)
	keywordCmd.AddCommand(keywordAddCmd)
	keywordCmd.AddCommand(keywordRemoveCmd)
}
