package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister implements VideoLister over a fixed slice.
type fakeLister struct {
	videos   []Video
	listErr  error
	titles   map[string]string
	titleErr error
}

func (f *fakeLister) ChannelVideos(_ context.Context, _ string, limit int) ([]Video, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	videos := f.videos
	if limit > 0 && limit < len(videos) {
		videos = videos[:limit]
	}
	return videos, nil
}

func (f *fakeLister) VideoTitle(_ context.Context, videoID string) (string, error) {
	if f.titleErr != nil {
		return "", f.titleErr
	}
	return f.titles[videoID], nil
}

// fakeTitles implements TitleSource over a fixed map.
type fakeTitles struct {
	titles map[string]string
	err    error
}

func (f *fakeTitles) VideoTitle(_ context.Context, videoID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	title, ok := f.titles[videoID]
	if !ok {
		return "", ErrTitleNotFound
	}
	return title, nil
}

func channelVideos() []Video {
	return []Video{
		{ID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up"},
		{ID: "jNQXAC9IVRw", Title: "Me at the zoo"},
		{ID: "9bZkp7q19f0", Title: "Gangnam Style"},
	}
}

func englishSource() *fakeTranscriptSource {
	return &fakeTranscriptSource{tracks: []TranscriptTrack{manualTrack("en")}}
}

func TestFetchChannel(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{videos: channelVideos()}),
		WithTranscriptSource(englishSource()),
	)

	result, err := app.FetchChannel(context.Background(), "UCtest", FetchOptions{SkipExisting: true})
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Success: 3}, result)
	assert.Equal(t, 3, result.Total())

	for _, video := range channelVideos() {
		assert.FileExists(t, TranscriptPath(app.config.OutputDir, video.Title, FormatMarkdown))
	}
}

func TestFetchChannelSkipExisting(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{videos: channelVideos()}),
		WithTranscriptSource(englishSource()),
	)
	opts := FetchOptions{SkipExisting: true}

	result, err := app.FetchChannel(context.Background(), "UCtest", opts)
	require.NoError(t, err)
	require.Equal(t, FetchResult{Success: 3}, result)

	// Second run finds every file on disk.
	result, err = app.FetchChannel(context.Background(), "UCtest", opts)
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Skipped: 3}, result)

	// Disabling the skip re-fetches everything.
	result, err = app.FetchChannel(context.Background(), "UCtest", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Success: 3}, result)
}

func TestFetchChannelPartialFailure(t *testing.T) {
	source := englishSource()
	source.listErrFor = map[string]error{"jNQXAC9IVRw": ErrTranscriptsDisabled}

	app := newTestApp(t,
		WithLister(&fakeLister{videos: channelVideos()}),
		WithTranscriptSource(source),
	)

	// One bad video affects the tally, not the run.
	result, err := app.FetchChannel(context.Background(), "UCtest", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Success: 2, Failed: 1}, result)
}

func TestFetchChannelListError(t *testing.T) {
	listErr := &ListError{Source: "innertube", Channel: "UCtest", Err: errors.New("HTTP 503")}
	app := newTestApp(t,
		WithLister(&fakeLister{listErr: listErr}),
		WithTranscriptSource(englishSource()),
	)

	_, err := app.FetchChannel(context.Background(), "UCtest", FetchOptions{})
	require.Error(t, err)

	var le *ListError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "innertube", le.Source)
}

func TestFetchChannelEmpty(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{}),
		WithTranscriptSource(englishSource()),
	)

	result, err := app.FetchChannel(context.Background(), "UCtest", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, FetchResult{}, result)
}

func TestFetchChannelLimit(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{videos: channelVideos()}),
		WithTranscriptSource(englishSource()),
	)

	result, err := app.FetchChannel(context.Background(), "UCtest", FetchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Success: 1}, result)

	assert.FileExists(t, TranscriptPath(app.config.OutputDir, "Never Gonna Give You Up", FormatMarkdown))
	assert.NoFileExists(t, TranscriptPath(app.config.OutputDir, "Me at the zoo", FormatMarkdown))
}

func TestFetchChannelAPITitles(t *testing.T) {
	factory := func(_ context.Context, apiKey string) (TitleSource, error) {
		require.Equal(t, "test-key", apiKey)
		return &fakeTitles{titles: map[string]string{"dQw4w9WgXcQ": "Official Video"}}, nil
	}
	app := newTestApp(t,
		WithLister(&fakeLister{videos: []Video{{ID: "dQw4w9WgXcQ", Title: "Listing Title"}}}),
		WithTranscriptSource(englishSource()),
		WithTitleSourceFactory(factory),
	)
	opts := FetchOptions{APIKey: "test-key", SkipExisting: true}

	result, err := app.FetchChannel(context.Background(), "UCtest", opts)
	require.NoError(t, err)
	require.Equal(t, FetchResult{Success: 1}, result)

	// The API title names the file; the listing title never touches disk.
	assert.FileExists(t, TranscriptPath(app.config.OutputDir, "Official Video", FormatMarkdown))
	assert.NoFileExists(t, TranscriptPath(app.config.OutputDir, "Listing Title", FormatMarkdown))

	// Skip detection keys on the same resolved title.
	result, err = app.FetchChannel(context.Background(), "UCtest", opts)
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Skipped: 1}, result)
}

func TestFetchChannelDegradedTitles(t *testing.T) {
	factory := func(_ context.Context, _ string) (TitleSource, error) {
		return nil, errors.New("invalid API key")
	}
	app := newTestApp(t,
		WithLister(&fakeLister{videos: []Video{{ID: "dQw4w9WgXcQ", Title: "Listing Title"}}}),
		WithTranscriptSource(englishSource()),
		WithTitleSourceFactory(factory),
	)

	// A broken API client degrades to listing titles instead of failing.
	result, err := app.FetchChannel(context.Background(), "UCtest", FetchOptions{APIKey: "bad-key"})
	require.NoError(t, err)
	assert.Equal(t, FetchResult{Success: 1}, result)
	assert.FileExists(t, TranscriptPath(app.config.OutputDir, "Listing Title", FormatMarkdown))
}

func TestFetchVideo(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{titles: map[string]string{"dQw4w9WgXcQ": "Never Gonna Give You Up"}}),
		WithTranscriptSource(englishSource()),
	)

	path, err := app.FetchVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, TranscriptPath(app.config.OutputDir, "Never Gonna Give You Up", FormatMarkdown), path)
	assert.FileExists(t, path)
}

func TestFetchVideoBadInput(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{}),
		WithTranscriptSource(englishSource()),
	)

	_, err := app.FetchVideo(context.Background(), "not a video url", FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoVideoID)
}

func TestFetchVideoTranscriptError(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{}),
		WithTranscriptSource(&fakeTranscriptSource{listErr: ErrTranscriptsDisabled}),
	)

	_, err := app.FetchVideo(context.Background(), "dQw4w9WgXcQ", FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
}

func TestFetchVideoTitleFallback(t *testing.T) {
	app := newTestApp(t,
		WithLister(&fakeLister{titleErr: errors.New("not found")}),
		WithTranscriptSource(englishSource()),
	)

	// No resolvable title leaves the file named after the video id.
	path, err := app.FetchVideo(context.Background(), "dQw4w9WgXcQ", FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, TranscriptPath(app.config.OutputDir, "dQw4w9WgXcQ", FormatMarkdown), path)
}
