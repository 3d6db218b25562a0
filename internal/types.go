package internal

import (
	"fmt"
	"strings"
)

// Format identifies one of the transcript output formats.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSON
	FormatText
	FormatSRT
)

// String returns the format's file extension.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	case FormatText:
		return "txt"
	case FormatSRT:
		return "srt"
	default:
		return "unknown"
	}
}

// Ext returns the file extension used for this format.
func (f Format) Ext() string {
	return f.String()
}

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	case "srt":
		return FormatSRT, nil
	default:
		return FormatMarkdown, fmt.Errorf("unsupported format: %q (supported: md, json, txt, srt)", s)
	}
}

// ParseCombineFormat is ParseFormat restricted to the formats the combiner
// can produce. SRT has no combined representation.
func ParseCombineFormat(s string) (Format, error) {
	f, err := ParseFormat(s)
	if err != nil {
		return FormatMarkdown, fmt.Errorf("unsupported combine format: %q (supported: md, json, txt)", s)
	}
	if f == FormatSRT {
		return FormatMarkdown, fmt.Errorf("unsupported combine format: %q (supported: md, json, txt)", s)
	}
	return f, nil
}

// TranscriptEntry is one timestamped caption line as delivered by the
// transcript source. Entries arrive ordered by start time.
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TranscriptTrack describes one caption track available for a video.
// Generated marks auto-generated (ASR) tracks, which rank below manually
// authored ones during selection.
type TranscriptTrack struct {
	LanguageCode string
	Name         string
	Generated    bool
	BaseURL      string
}

// Video identifies one enumerated video. Title may be empty when the
// listing source had none; consumers fall back to the ID.
type Video struct {
	ID    string
	Title string
}

// URL returns the canonical watch URL for the video.
func (v Video) URL() string {
	return WatchURL(v.ID)
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// FetchResult tallies the outcome of one fetch run.
type FetchResult struct {
	Success int
	Failed  int
	Skipped int
}

// Total returns the number of videos the run processed.
func (r FetchResult) Total() int {
	return r.Success + r.Failed + r.Skipped
}

// String renders the tally the way fetch runs report it.
func (r FetchResult) String() string {
	return fmt.Sprintf("Saved: %d, Failed: %d, Skipped: %d", r.Success, r.Failed, r.Skipped)
}
