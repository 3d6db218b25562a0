package internal

import (
	"context"
	"fmt"
)

// TranscriptSource lists and fetches caption tracks for a video.
type TranscriptSource interface {
	// ListTracks returns the available tracks for a video. It fails with
	// ErrTranscriptsDisabled when captions are turned off entirely.
	ListTracks(ctx context.Context, videoID string) ([]TranscriptTrack, error)
	// FetchTrack downloads one track as timestamped entries.
	FetchTrack(ctx context.Context, track TranscriptTrack) ([]TranscriptEntry, error)
}

// DefaultLanguages is used when the caller supplies no language preference.
var DefaultLanguages = []string{"en"}

// GetTranscript fetches the best available transcript for a video.
// Manually authored tracks are preferred over auto-generated ones
// regardless of language order; within each kind the caller's language
// order decides.
func GetTranscript(ctx context.Context, source TranscriptSource, videoID string, languages []string) ([]TranscriptEntry, error) {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	tracks, err := source.ListTracks(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("listing transcript tracks for %s: %w", videoID, err)
	}

	if track, ok := findTrack(tracks, languages, false); ok {
		return fetchTrack(ctx, source, track)
	}
	if track, ok := findTrack(tracks, languages, true); ok {
		return fetchTrack(ctx, source, track)
	}
	return nil, fmt.Errorf("%w for video %s (languages: %v)", ErrNoTranscript, videoID, languages)
}

func findTrack(tracks []TranscriptTrack, languages []string, generated bool) (TranscriptTrack, bool) {
	for _, lang := range languages {
		for _, track := range tracks {
			if track.Generated == generated && track.LanguageCode == lang {
				return track, true
			}
		}
	}
	return TranscriptTrack{}, false
}

func fetchTrack(ctx context.Context, source TranscriptSource, track TranscriptTrack) ([]TranscriptEntry, error) {
	entries, err := source.FetchTrack(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("fetching %s transcript: %w", track.LanguageCode, err)
	}
	return entries, nil
}
