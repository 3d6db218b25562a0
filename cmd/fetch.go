package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch (--channel ID | --video URL)",
	Short: "Fetch transcripts from a channel or a single video",
	Example: `  # Fetch every transcript of a channel
  ytm fetch --channel UC_x5XG1OV2P6uZZ5FSM9Ttw

  # Only the 10 most recent videos, saved as JSON
  ytm fetch --channel UC_x5XG1OV2P6uZZ5FSM9Ttw --limit 10 --format json

  # Fetch a single video
  ytm fetch --video "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Prefer German captions, fall back to English
  ytm fetch --video dQw4w9WgXcQ --language de --language en`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := internal.FetchOptionsFromFlags(cmd, config)
		if err != nil {
			return err
		}

		app := internal.NewApp(config)
		defer app.Close()

		if video, _ := cmd.Flags().GetString("video"); video != "" {
			path, err := app.FetchVideo(cmd.Context(), video, opts)
			if err != nil {
				return err
			}
			fmt.Printf("\nTranscript saved to: %s\n", path)
			return nil
		}

		channel, _ := cmd.Flags().GetString("channel")
		result, err := app.FetchChannel(cmd.Context(), channel, opts)
		if err != nil {
			return err
		}
		fmt.Printf("\nDone! %s\n", result)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringP("channel", "c", "", "Channel ID to fetch all transcripts from")
	fetchCmd.Flags().StringP("video", "V", "", "Video URL or ID to fetch a single transcript from")
	fetchCmd.MarkFlagsOneRequired("channel", "video")
	fetchCmd.MarkFlagsMutuallyExclusive("channel", "video")
	internal.AddFetchFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}
