package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view [title or path]",
	Short: "Render a saved transcript in the terminal",
	Example: `  # View by saved title
  ytm view "How Computers Work"

  # View a specific file
  ytm view "Transcripts/How Computers Work.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, content, err := readTranscript(args[0])
		if err != nil {
			return err
		}

		raw, err := cmd.Flags().GetBool("raw")
		if err != nil {
			return fmt.Errorf("failed to get raw flag: %w", err)
		}

		// Glamour rendering applies to Markdown; other formats print as-is.
		if raw || filepath.Ext(path) != ".md" {
			fmt.Print(content)
			return nil
		}

		rendered, err := internal.RenderMarkdown(content)
		if err != nil {
			// Fall back to plain text if rendering fails.
			fmt.Print(content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	viewCmd.Flags().Bool("raw", false, "Print the transcript without rendering")
	rootCmd.AddCommand(viewCmd)
}
