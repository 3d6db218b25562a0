package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// cpCmd copies a saved transcript to the system clipboard instead of printing it.
var cpCmd = &cobra.Command{
	Use:   "cp [title or path]",
	Short: "Copy a saved transcript to the clipboard",
	Example: `  # Copy by saved title
  ytm cp "How Computers Work"

  # Copy a specific file
  ytm cp "Transcripts/How Computers Work.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, content, err := readTranscript(args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
