package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrTranscriptsDisabled reports that the video has captions turned off
	// entirely. No track exists in any language.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrNoTranscript reports that no track matched the requested languages.
	ErrNoTranscript = errors.New("no transcript found for requested languages")

	// ErrNoVideoID reports that no 11-character video ID could be extracted
	// from the input.
	ErrNoVideoID = errors.New("could not extract video ID")

	// ErrVideoUnavailable reports a video the player endpoint refuses to
	// serve (private, removed, region-locked).
	ErrVideoUnavailable = errors.New("video is unavailable")

	// ErrTitleNotFound reports that a title lookup returned no items.
	ErrTitleNotFound = errors.New("no title found for video")

	// ErrEmptyCorpus reports that a directory holds no transcript files to
	// combine or analyze.
	ErrEmptyCorpus = errors.New("no transcript files found")
)

// ListError wraps a whole-channel listing failure. Listing failures are
// fatal to a channel fetch, unlike per-video transcript failures.
type ListError struct {
	Source  string
	Channel string
	Err     error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("listing videos (source=%s, channel=%s): %v", e.Source, e.Channel, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}
