package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Transcript-entry lines carry a backtick-quoted timestamp and an em-dash
// separator. Files saved by older releases used a plain hyphen; both forms
// parse.
const (
	entrySepEmDash = "` — "
	entrySepHyphen = "` - "
)

// ParsedEntry pairs a rendered timestamp with its text, as read back from
// a saved Markdown transcript.
type ParsedEntry struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// ParsedTranscript is one saved transcript file re-parsed into structure.
type ParsedTranscript struct {
	Title    string
	VideoURL string
	Entries  []ParsedEntry
}

// ListTranscriptFiles returns the Markdown transcript files in dir, sorted
// by filename. A missing or unreadable directory logs an error and yields
// an empty list, indistinguishable from a directory with no transcripts.
func (app *App) ListTranscriptFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		app.logger.Error("reading transcript directory", slog.String("dir", dir), slog.Any("error", err))
		return nil
	}

	// os.ReadDir already sorts by filename.
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files
}

// ParseTranscriptMarkdown reads serialized transcript content back into
// its title, video URL, and ordered entries. The title is the first "# "
// heading, or fallbackTitle when the file has none.
func ParseTranscriptMarkdown(content, fallbackTitle string) ParsedTranscript {
	parsed := ParsedTranscript{Title: fallbackTitle}
	titleSeen := false

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "# "):
			if !titleSeen {
				parsed.Title = strings.TrimSpace(line[2:])
				titleSeen = true
			}
		case strings.HasPrefix(line, "**Video URL:**"):
			if url := extractLineURL(line); url != "" {
				parsed.VideoURL = url
			}
		default:
			if timestamp, text, ok := SplitEntryLine(line); ok {
				parsed.Entries = append(parsed.Entries, ParsedEntry{Timestamp: timestamp, Text: text})
			}
		}
	}
	return parsed
}

// SplitEntryLine recognizes a transcript-entry line and splits it into its
// timestamp and text. Accepts both the em-dash and legacy hyphen separator.
func SplitEntryLine(line string) (timestamp, text string, ok bool) {
	if !strings.HasPrefix(line, "`") {
		return "", "", false
	}

	sep := entrySepEmDash
	if !strings.Contains(line, sep) {
		sep = entrySepHyphen
		if !strings.Contains(line, sep) {
			return "", "", false
		}
	}

	parts := strings.SplitN(line, sep, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.Trim(parts[0], "`"), strings.TrimSpace(parts[1]), true
}

// extractLineURL pulls the URL out of a "**Video URL:**" line, handling
// both the Markdown-link form "[url](url)" and a plain URL.
func extractLineURL(line string) string {
	start := strings.Index(line, "http")
	if start == -1 {
		return ""
	}
	rest := line[start:]
	if i := strings.Index(rest, "]("); i != -1 {
		return rest[:i]
	}
	if i := strings.Index(rest, ")"); i != -1 {
		return rest[:i]
	}
	return rest
}

var timestampPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// ParseTimestampSeconds converts a rendered timestamp (MM:SS or H:MM:SS)
// back into seconds.
func ParseTimestampSeconds(timestamp string) (int, bool) {
	m := timestampPattern.FindStringSubmatch(timestamp)
	if m == nil {
		return 0, false
	}

	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	if m[3] != "" {
		third, _ := strconv.Atoi(m[3])
		return first*3600 + second*60 + third, true
	}
	return first*60 + second, true
}

// fileTitleStem derives the fallback title for a transcript file from its
// name, matching how titles were sanitized at save time.
func fileTitleStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
