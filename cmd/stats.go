package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the transcript library",
	Example: `  # Statistics for the default library
  ytm stats

  # Statistics for another directory
  ytm stats --dir ~/Videos/Transcripts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)
		defer app.Close()

		stats, err := app.Stats(internal.CorpusDirFromFlags(cmd, config))
		if err != nil {
			return err
		}

		fmt.Print(internal.FormatStats(stats))
		return nil
	},
}

func init() {
	internal.AddCorpusFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}
