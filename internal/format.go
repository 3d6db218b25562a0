package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// TranscriptPath returns where a transcript for the given title and format
// would be saved. Skip-existing checks and SaveTranscript must agree on
// this path, so both go through here.
func TranscriptPath(dir, title string, format Format) string {
	return filepath.Join(dir, CleanFilename(title)+"."+format.Ext())
}

// TranscriptExists reports whether a transcript file for this title and
// format is already on disk. File existence is the sole resume marker;
// there is no separate index.
func TranscriptExists(dir, title string, format Format) bool {
	return FileExists(TranscriptPath(dir, title, format))
}

// SaveTranscript writes entries to {dir}/{sanitized title}.{ext} in the
// requested format and returns the written path. An empty title falls back
// to the video ID. Entries whose text is blank after trimming are omitted
// from every format.
func SaveTranscript(dir, title, videoID, videoURL string, entries []TranscriptEntry, format Format) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = videoID
	}

	if err := EnsureDirs(dir); err != nil {
		return "", fmt.Errorf("creating output directory %q: %w", dir, err)
	}

	path := TranscriptPath(dir, title, format)

	var data []byte
	var err error
	switch format {
	case FormatMarkdown:
		data = encodeMarkdown(title, videoURL, entries)
	case FormatJSON:
		data, err = encodeJSON(title, videoID, videoURL, entries)
	case FormatText:
		data = encodeText(title, videoURL, entries)
	case FormatSRT:
		data = encodeSRT(entries)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing transcript %q: %w", path, err)
	}
	return path, nil
}

// entryText flattens an entry's text onto one line.
func entryText(entry TranscriptEntry) string {
	return strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
}

func encodeMarkdown(title, videoURL string, entries []TranscriptEntry) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Video URL:** [%s](%s)\n\n", videoURL, videoURL)
	sb.WriteString("## Transcript\n\n")
	for _, entry := range entries {
		text := entryText(entry)
		if text == "" {
			continue
		}
		fmt.Fprintf(&sb, "`%s` — %s\n", FormatTimestamp(entry.Start), text)
	}
	return []byte(sb.String())
}

type transcriptDocument struct {
	Title      string          `json:"title"`
	VideoID    string          `json:"video_id"`
	VideoURL   string          `json:"video_url"`
	Transcript []documentEntry `json:"transcript"`
}

type documentEntry struct {
	Timestamp    string  `json:"timestamp"`
	StartSeconds float64 `json:"start_seconds"`
	Duration     float64 `json:"duration"`
	Text         string  `json:"text"`
}

func encodeJSON(title, videoID, videoURL string, entries []TranscriptEntry) ([]byte, error) {
	doc := transcriptDocument{
		Title:      title,
		VideoID:    videoID,
		VideoURL:   videoURL,
		Transcript: []documentEntry{},
	}
	for _, entry := range entries {
		text := entryText(entry)
		if text == "" {
			continue
		}
		doc.Transcript = append(doc.Transcript, documentEntry{
			Timestamp:    FormatTimestamp(entry.Start),
			StartSeconds: roundTo2(entry.Start),
			Duration:     roundTo2(entry.Duration),
			Text:         text,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding transcript JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeText(title, videoURL string, entries []TranscriptEntry) []byte {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	fmt.Fprintf(&sb, "URL: %s\n", videoURL)
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")
	for _, entry := range entries {
		text := entryText(entry)
		if text == "" {
			continue
		}
		sb.WriteString(text + " ")
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

// defaultCueDuration pads cues whose source entry carried no duration.
const defaultCueDuration = 2.0

func encodeSRT(entries []TranscriptEntry) []byte {
	var sb strings.Builder
	index := 1
	for _, entry := range entries {
		text := entryText(entry)
		if text == "" {
			continue
		}
		duration := entry.Duration
		if duration <= 0 {
			duration = defaultCueDuration
		}
		fmt.Fprintf(&sb, "%d\n", index)
		fmt.Fprintf(&sb, "%s --> %s\n", srtTime(entry.Start), srtTime(entry.Start+duration))
		fmt.Fprintf(&sb, "%s\n\n", text)
		index++
	}
	return []byte(sb.String())
}

// srtTime renders seconds as HH:MM:SS,mmm. SRT cue times always carry
// hours and millisecond precision, unlike the display timestamps from
// FormatTimestamp.
func srtTime(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
