package cmd

import (
	"github.com/spf13/cobra"

	"photocat/internal/adapters/report"
	"photocat/internal/application/commands"
)

var listBy string

var listCmd = &cobra.Command{
	Use:     "list [dirs|keywords|duplicates|potential|<target>]",
	Aliases: []string{"ls"},
	Short:   "List cataloged files, directories or keywords",
	Long: `List the whole catalog, its directories or keywords, confirmed or
potential duplicates, or the files of a target.

With --by, lists the files whose key in that index equals the argument.
Indices: path, dir, name, ext, date, size, checksum, keyword, tag.

Examples:
  photocat list
  photocat list dirs
  photocat list ~/Pictures/2024
  photocat list --by keyword holiday
  photocat list --by date "2024:07:14 10:31:05"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var subject string
		if len(args) == 1 {
			subject = args[0]
		}
		res, err := commands.NewListCommand(GetSession(), subject, listBy).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printf(cmd, "%s", report.List(res))
		return nil
	},
}

var detailsCmd = &cobra.Command{
	Use:     "details <target>",
	Aliases: []string{"show"},
	Short:   "Show every field of a file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := commands.NewDetailsCommand(GetSession(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range found {
			printf(cmd, "%s\n", report.Details(e))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listBy, "by", "", "index to look the argument up in")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailsCmd)
}
