package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run guided prompts for fetching and managing transcripts",
	Example: `  # Same as running ytm without arguments
  ytm interactive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// runInteractive drives the menu loop until the user exits. Running ytm
// without a subcommand lands here too.
func runInteractive(cmd *cobra.Command) error {
	app := internal.NewApp(config)
	defer app.Close()

	rule := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n", rule)
	fmt.Println("  YouTube Transcript Manager - Interactive Mode")
	fmt.Printf("%s\n\n", rule)

	for {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		fmt.Println("What would you like to do?")
		fmt.Println()
		fmt.Println("  1. Fetch transcripts for a YouTube channel")
		fmt.Println("  2. Fetch transcript for a single video")
		fmt.Println("  3. Search across saved transcripts")
		fmt.Println("  4. Combine transcripts into a single file")
		fmt.Println("  5. View transcript statistics")
		fmt.Println("  6. Exit")
		fmt.Println()

		switch internal.ReadLine("Enter your choice (1-6): ") {
		case "1":
			interactiveFetchChannel(cmd.Context(), app)
		case "2":
			interactiveFetchVideo(cmd.Context(), app)
		case "3":
			interactiveSearch(app)
		case "4":
			interactiveCombine(app)
		case "5":
			interactiveStats(app)
		case "6", "q", "quit", "exit":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Invalid choice. Please enter 1-6.")
			fmt.Println()
		}
	}
}

func interactiveFetchChannel(ctx context.Context, app *internal.App) {
	channelID := internal.ReadLine("Enter YouTube Channel ID: ")
	if channelID == "" {
		fmt.Println("Channel ID cannot be empty.")
		fmt.Println()
		return
	}

	opts, ok := promptFetchOptions()
	if !ok {
		return
	}

	result, err := app.FetchChannel(ctx, channelID, opts)
	if err != nil {
		fmt.Printf("\nFetch failed: %v\n\n", err)
		return
	}
	fmt.Printf("\nDone! %s\n\n", result)
}

func interactiveFetchVideo(ctx context.Context, app *internal.App) {
	video := internal.ReadLine("Enter YouTube video URL or ID: ")
	if video == "" {
		fmt.Println("Video URL cannot be empty.")
		fmt.Println()
		return
	}

	opts, ok := promptFetchOptions()
	if !ok {
		return
	}

	path, err := app.FetchVideo(ctx, video, opts)
	if err != nil {
		fmt.Printf("\nFailed to fetch transcript: %v\n\n", err)
		return
	}
	fmt.Printf("\nTranscript saved to: %s\n\n", path)
}

// promptFetchOptions collects the prompts shared by both fetch flows,
// starting from the configured defaults.
func promptFetchOptions() (internal.FetchOptions, bool) {
	opts := internal.FetchOptions{
		OutputDir:    config.OutputDir,
		Languages:    config.Languages,
		APIKey:       config.APIKey,
		SkipExisting: config.SkipExisting,
		Limit:        config.Limit,
	}

	if dir := internal.ReadLine(fmt.Sprintf("Output directory (default: %s): ", config.OutputDir)); dir != "" {
		opts.OutputDir = dir
	}
	if key := internal.ReadLine("YouTube API key (press Enter to skip): "); key != "" {
		opts.APIKey = key
	}

	formatName := internal.ReadLine(fmt.Sprintf("Format md/json/txt/srt (default: %s): ", config.Format))
	if formatName == "" {
		formatName = config.Format
	}
	format, err := internal.ParseFormat(formatName)
	if err != nil {
		fmt.Printf("%v\n\n", err)
		return opts, false
	}
	opts.Format = format

	defLangs := strings.Join(config.Languages, ",")
	if defLangs == "" {
		defLangs = "en"
	}
	if input := internal.ReadLine(fmt.Sprintf("Languages, comma separated (default: %s): ", defLangs)); input != "" {
		var langs []string
		for _, lang := range strings.Split(input, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				langs = append(langs, lang)
			}
		}
		if len(langs) > 0 {
			opts.Languages = langs
		}
	}

	return opts, true
}

func promptCorpusDir() string {
	if dir := internal.ReadLine(fmt.Sprintf("Transcript directory (default: %s): ", config.OutputDir)); dir != "" {
		return dir
	}
	return config.OutputDir
}

func interactiveSearch(app *internal.App) {
	keyword := internal.ReadLine("Enter search keyword: ")
	if keyword == "" {
		fmt.Println("Keyword cannot be empty.")
		fmt.Println()
		return
	}

	results := app.Search(promptCorpusDir(), keyword, internal.SearchOptions{
		ContextLines: config.SearchContext,
		MaxResults:   config.SearchMaxResults,
	})
	fmt.Print(internal.FormatSearchResults(results, keyword, true))
	fmt.Println()
}

func interactiveCombine(app *internal.App) {
	dir := promptCorpusDir()

	formatName := internal.ReadLine("Format md/json/txt (default: md): ")
	if formatName == "" {
		formatName = "md"
	}
	format, err := internal.ParseCombineFormat(formatName)
	if err != nil {
		fmt.Printf("%v\n\n", err)
		return
	}

	path, count, err := app.Combine(dir, "", format)
	if err != nil {
		fmt.Printf("\nFailed to combine transcripts: %v\n\n", err)
		return
	}
	fmt.Printf("\nCombined %d transcript(s) into: %s\n\n", count, path)
}

func interactiveStats(app *internal.App) {
	stats, err := app.Stats(promptCorpusDir())
	if err != nil {
		if errors.Is(err, internal.ErrEmptyCorpus) {
			fmt.Println("\nNo transcripts found.")
			fmt.Println()
			return
		}
		fmt.Printf("\nFailed to read statistics: %v\n\n", err)
		return
	}
	fmt.Print(internal.FormatStats(stats))
	fmt.Println()
}
