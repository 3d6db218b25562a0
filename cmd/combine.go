package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge all saved transcripts into one document",
	Example: `  # Combine the library into one Markdown file
  ytm combine

  # Combine as JSON under a custom name
  ytm combine --format json --output corpus.json

  # Combine a different directory
  ytm combine --dir ~/Videos/Transcripts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := internal.ParseCombineFormat(formatName)
		if err != nil {
			return err
		}

		app := internal.NewApp(config)
		defer app.Close()

		output, _ := cmd.Flags().GetString("output")
		path, count, err := app.Combine(internal.CorpusDirFromFlags(cmd, config), output, format)
		if err != nil {
			return err
		}

		fmt.Printf("Combined %d transcript(s) into: %s\n", count, path)
		return nil
	},
}

func init() {
	internal.AddCorpusFlags(combineCmd)
	combineCmd.Flags().StringP("output", "o", "", "Path of the combined file")
	combineCmd.Flags().StringP("format", "f", "md", "Combined format: md, json, or txt")
	rootCmd.AddCommand(combineCmd)
}
