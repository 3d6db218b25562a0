package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search saved transcripts for a keyword",
	Example: `  # Case-insensitive substring search
  ytm search "machine learning"

  # Exact case with a wider context window
  ytm search GPU --case-sensitive --context 4

  # Search a different transcript directory
  ytm search attention --dir ~/Videos/Transcripts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := args[0]
		if strings.TrimSpace(keyword) == "" {
			return errors.New("search keyword cannot be empty")
		}

		app := internal.NewApp(config)
		defer app.Close()

		opts := internal.SearchOptions{
			ContextLines: config.SearchContext,
			MaxResults:   config.SearchMaxResults,
		}
		opts.CaseSensitive, _ = cmd.Flags().GetBool("case-sensitive")
		if cmd.Flags().Changed("context") {
			opts.ContextLines, _ = cmd.Flags().GetInt("context")
		}
		if cmd.Flags().Changed("max-results") {
			opts.MaxResults, _ = cmd.Flags().GetInt("max-results")
		}

		results := app.Search(internal.CorpusDirFromFlags(cmd, config), keyword, opts)
		fmt.Print(internal.FormatSearchResults(results, keyword, true))
		return nil
	},
}

func init() {
	internal.AddCorpusFlags(searchCmd)
	searchCmd.Flags().Bool("case-sensitive", false, "Match keyword case exactly")
	searchCmd.Flags().Int("context", 0, "Context lines shown around each match")
	searchCmd.Flags().Int("max-results", 0, "Maximum number of matches to collect")
	rootCmd.AddCommand(searchCmd)
}
