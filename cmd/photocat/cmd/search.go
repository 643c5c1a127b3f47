package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"photocat/internal/adapters/report"
	"photocat/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long: `Search file names, paths and keywords.

Results are ranked by relevance using fuzzy matching.

Examples:
  photocat search beach
  photocat search img_20`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		results, err := commands.NewSearchCommand(GetSession(), query).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			printf(cmd, "No results found\n")
			return nil
		}
		printf(cmd, "%s", report.Search(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
