package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddFetchFlags adds the flags shared by commands that fetch transcripts
func AddFetchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Directory to save transcripts to")
	cmd.Flags().StringP("format", "f", "", "Output format: md, json, txt, or srt")
	cmd.Flags().StringSliceP("language", "l", nil, "Preferred transcript languages, in order")
	cmd.Flags().String("api-key", "", "YouTube Data API key for exact video titles")
	cmd.Flags().Bool("no-skip", false, "Re-fetch transcripts that already exist")
	cmd.Flags().Int("limit", 0, "Maximum number of videos to fetch (0 = all)")
}

// AddCorpusFlags adds the flag selecting which transcript directory to read
func AddCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", "", "Directory containing transcript files")
}

// FetchOptionsFromFlags merges fetch flags over the config defaults
func FetchOptionsFromFlags(cmd *cobra.Command, config *Config) (FetchOptions, error) {
	opts := FetchOptions{
		OutputDir:    config.OutputDir,
		Languages:    config.Languages,
		APIKey:       config.APIKey,
		SkipExisting: config.SkipExisting,
		Limit:        config.Limit,
	}

	formatName := config.Format
	if s, _ := cmd.Flags().GetString("format"); s != "" {
		formatName = s
	}
	format, err := ParseFormat(formatName)
	if err != nil {
		return opts, err
	}
	opts.Format = format

	if s, _ := cmd.Flags().GetString("output"); s != "" {
		opts.OutputDir = s
	}
	if langs, _ := cmd.Flags().GetStringSlice("language"); len(langs) > 0 {
		opts.Languages = langs
	}
	if s, _ := cmd.Flags().GetString("api-key"); s != "" {
		opts.APIKey = s
	}
	if noSkip, _ := cmd.Flags().GetBool("no-skip"); noSkip {
		opts.SkipExisting = false
	}
	if cmd.Flags().Changed("limit") {
		opts.Limit, _ = cmd.Flags().GetInt("limit")
	}

	return opts, nil
}

// CorpusDirFromFlags returns the transcript directory a command should
// read, preferring the --dir flag over the configured output directory.
func CorpusDirFromFlags(cmd *cobra.Command, config *Config) string {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir
	}
	return config.OutputDir
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}

// HandleQuietFlag processes the --quiet flag to update config
func HandleQuietFlag(cmd *cobra.Command, config *Config) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	config.Quiet = quiet
	return nil
}
