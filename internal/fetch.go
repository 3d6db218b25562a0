package internal

import (
	"context"
	"fmt"
	"log/slog"
)

// VideoLister enumerates a channel's uploads and resolves single-video
// titles without an API key.
type VideoLister interface {
	// ChannelVideos lists a channel's videos, newest first.
	// limit <= 0 means the full channel history.
	ChannelVideos(ctx context.Context, channelID string, limit int) ([]Video, error)
	// VideoTitle resolves one video's title, best effort.
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

// TitleSource resolves video titles, typically via the Data API.
type TitleSource interface {
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

// TitleSourceFactory builds a TitleSource from an API key. Construction
// failure puts the run in degraded mode (listing titles only).
type TitleSourceFactory func(ctx context.Context, apiKey string) (TitleSource, error)

// FetchOptions control a fetch run. Zero values fall back to the
// application config.
type FetchOptions struct {
	OutputDir    string
	Format       Format
	Languages    []string
	APIKey       string
	SkipExisting bool
	Limit        int
}

// FetchChannel downloads transcripts for a channel's videos into
// opts.OutputDir and reports the per-video tally. Listing failure is
// fatal; everything after that is per-video and only affects the tally.
func (app *App) FetchChannel(ctx context.Context, channelID string, opts FetchOptions) (FetchResult, error) {
	var result FetchResult
	opts = app.fillFetchOptions(opts)

	titles := app.buildTitleSource(ctx, opts.APIKey)

	if err := EnsureDirs(opts.OutputDir); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}

	videos, err := app.lister.ChannelVideos(ctx, channelID, opts.Limit)
	if err != nil {
		return result, err
	}
	if len(videos) == 0 {
		app.logger.Warn("no videos found", slog.String("channel", channelID))
		return result, nil
	}

	app.logger.Info("fetching transcripts",
		slog.String("channel", channelID),
		slog.Int("videos", len(videos)),
		slog.String("format", opts.Format.String()))

	bar := app.ui.NewProgressBar(len(videos), "Fetching transcripts")
	for i, video := range videos {
		bar.Set(i)
		if err := ctx.Err(); err != nil {
			bar.Finish()
			return result, err
		}
		app.fetchOne(ctx, video, titles, opts, &result)
	}
	bar.Finish()

	app.logger.Info("fetch run complete",
		slog.String("channel", channelID),
		slog.Int("success", result.Success),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// FetchVideo downloads the transcript for a single video given a URL or
// bare id and returns the saved path.
func (app *App) FetchVideo(ctx context.Context, urlOrID string, opts FetchOptions) (string, error) {
	opts = app.fillFetchOptions(opts)

	videoID, err := ExtractVideoID(urlOrID)
	if err != nil {
		return "", err
	}

	spinner := app.ui.NewSpinner("Resolving video title...")
	title := app.resolveVideoTitle(ctx, videoID, opts.APIKey)

	if err := EnsureDirs(opts.OutputDir); err != nil {
		spinner.Finish()
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	spinner.Describe("Fetching transcript...")
	spinner.Advance()

	entries, err := GetTranscript(ctx, app.transcripts, videoID, opts.Languages)
	if err != nil {
		spinner.Finish()
		return "", err
	}

	spinner.Describe("Saving transcript...")
	spinner.Advance()

	path, err := SaveTranscript(opts.OutputDir, title, videoID, WatchURL(videoID), entries, opts.Format)
	if err != nil {
		spinner.Finish()
		return "", fmt.Errorf("saving transcript: %w", err)
	}
	spinner.Finish()

	app.logger.Info("saved transcript", slog.String("video", videoID), slog.String("path", path))
	return path, nil
}

// fetchOne handles one video of a channel run: resolve the title, skip
// if already saved, fetch, save, and update the tally.
func (app *App) fetchOne(ctx context.Context, video Video, titles TitleSource, opts FetchOptions, result *FetchResult) {
	title := video.Title
	if title == "" {
		title = video.ID
	}

	// The API title wins over the listing title so that skip detection
	// sees the same filename a save would produce.
	if titles != nil {
		apiTitle, err := titles.VideoTitle(ctx, video.ID)
		if err != nil {
			app.logger.Info("API title lookup failed, using listing title",
				slog.String("video", video.ID), slog.Any("error", err))
		} else if apiTitle != "" {
			title = apiTitle
		}
	}

	if opts.SkipExisting && TranscriptExists(opts.OutputDir, title, opts.Format) {
		app.logger.Info("transcript already exists, skipping", slog.String("title", title))
		result.Skipped++
		return
	}

	entries, err := GetTranscript(ctx, app.transcripts, video.ID, opts.Languages)
	if err != nil {
		app.logger.Info("transcript unavailable",
			slog.String("video", video.ID),
			slog.String("title", title),
			slog.Any("error", err))
		result.Failed++
		return
	}

	path, err := SaveTranscript(opts.OutputDir, title, video.ID, video.URL(), entries, opts.Format)
	if err != nil {
		app.logger.Info("saving transcript failed",
			slog.String("video", video.ID), slog.Any("error", err))
		result.Failed++
		return
	}

	app.logger.Debug("saved transcript", slog.String("path", path))
	result.Success++
}

// resolveVideoTitle finds the best title for a single video: API lookup
// first when a key is given, then the listing source, then the bare id.
func (app *App) resolveVideoTitle(ctx context.Context, videoID, apiKey string) string {
	if titles := app.buildTitleSource(ctx, apiKey); titles != nil {
		title, err := titles.VideoTitle(ctx, videoID)
		if err == nil && title != "" {
			return title
		}
		if err != nil {
			app.logger.Info("API title lookup failed",
				slog.String("video", videoID), slog.Any("error", err))
		}
	}

	title, err := app.lister.VideoTitle(ctx, videoID)
	if err != nil {
		app.logger.Info("listing title lookup failed, using video id",
			slog.String("video", videoID), slog.Any("error", err))
		return videoID
	}
	if title == "" {
		return videoID
	}
	return title
}

// buildTitleSource constructs the API title source, degrading to nil
// (listing titles) when the key is empty or construction fails.
func (app *App) buildTitleSource(ctx context.Context, apiKey string) TitleSource {
	if apiKey == "" {
		return nil
	}
	titles, err := app.newTitles(ctx, apiKey)
	if err != nil {
		app.logger.Warn("YouTube API client unavailable, titles will come from the video listing",
			slog.Any("error", err))
		return nil
	}
	return titles
}

func (app *App) fillFetchOptions(opts FetchOptions) FetchOptions {
	if opts.OutputDir == "" {
		opts.OutputDir = app.config.OutputDir
	}
	if len(opts.Languages) == 0 {
		opts.Languages = app.config.Languages
	}
	if len(opts.Languages) == 0 {
		opts.Languages = DefaultLanguages
	}
	return opts
}
