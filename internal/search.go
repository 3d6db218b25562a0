package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SearchOptions tune a corpus search.
type SearchOptions struct {
	CaseSensitive bool
	ContextLines  int
	MaxResults    int
}

// SearchResult is one keyword match within a transcript file.
type SearchResult struct {
	File       string
	Title      string
	LineNumber int
	Line       string
	Context    []string
	Timestamp  string
}

// Timestamp tokens as they appear inline, backticks included.
var timestampToken = regexp.MustCompile("`(\\d{1,2}:\\d{2}(?::\\d{2})?)`")

// Search scans the corpus for a literal keyword. Matching is substring,
// case-insensitive unless requested otherwise. Files are visited in sorted
// order and lines top to bottom; when MaxResults is positive, collection
// stops once that many matches have been gathered, even mid-file. An empty
// keyword yields no results.
func (app *App) Search(dir, keyword string, opts SearchOptions) []SearchResult {
	if strings.TrimSpace(keyword) == "" {
		app.logger.Error("search keyword cannot be empty")
		return nil
	}

	files := app.ListTranscriptFiles(dir)
	if len(files) == 0 {
		app.logger.Error("no transcript files found", slog.String("dir", dir))
		return nil
	}

	needle := keyword
	if !opts.CaseSensitive {
		needle = strings.ToLower(keyword)
	}

	app.logger.Info("searching transcripts",
		slog.String("keyword", keyword), slog.Int("files", len(files)))

	var results []SearchResult
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			app.logger.Error("reading transcript file", slog.String("file", path), slog.Any("error", err))
			continue
		}

		lines := strings.Split(string(content), "\n")
		title := fileTitleStem(path)
		titleSeen := false

		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if !titleSeen && strings.HasPrefix(trimmed, "# ") {
				title = strings.TrimSpace(trimmed[2:])
				titleSeen = true
			}

			haystack := line
			if !opts.CaseSensitive {
				haystack = strings.ToLower(line)
			}
			if !strings.Contains(haystack, needle) {
				continue
			}

			var timestamp string
			if m := timestampToken.FindStringSubmatch(line); m != nil {
				timestamp = m[1]
			}

			start := max(0, i-opts.ContextLines)
			end := min(len(lines), i+opts.ContextLines+1)
			context := make([]string, 0, end-start)
			for _, ctx := range lines[start:end] {
				context = append(context, strings.TrimRight(ctx, " \t\r"))
			}

			results = append(results, SearchResult{
				File:       filepath.Base(path),
				Title:      title,
				LineNumber: i + 1,
				Line:       strings.TrimRight(line, " \t\r"),
				Context:    context,
				Timestamp:  timestamp,
			})

			if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
				app.logger.Info("reached max results limit", slog.Int("max_results", opts.MaxResults))
				return results
			}
		}
	}

	app.logger.Info("search finished",
		slog.String("keyword", keyword), slog.Int("matches", len(results)))
	return results
}

// FormatSearchResults renders matches for the terminal, grouped by file
// with context windows and a marker on the keyword-bearing lines.
func FormatSearchResults(results []SearchResult, keyword string, showContext bool) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.\n", keyword)
	}

	rule := strings.Repeat("=", 60)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", rule)
	fmt.Fprintf(&sb, "  Search Results for: %q\n", keyword)
	fmt.Fprintf(&sb, "  Found %d match(es)\n", len(results))
	fmt.Fprintf(&sb, "%s\n", rule)

	lowered := strings.ToLower(keyword)
	currentFile := ""
	for i, result := range results {
		if result.File != currentFile {
			currentFile = result.File
			fmt.Fprintf(&sb, "\n--- %s ---\n", result.Title)
			fmt.Fprintf(&sb, "    File: %s\n", result.File)
		}

		timestamp := ""
		if result.Timestamp != "" {
			timestamp = fmt.Sprintf(" [%s]", result.Timestamp)
		}
		fmt.Fprintf(&sb, "\n  Match #%d (line %d)%s:\n", i+1, result.LineNumber, timestamp)

		if showContext && len(result.Context) > 0 {
			for _, line := range result.Context {
				marker := "   "
				if strings.Contains(strings.ToLower(line), lowered) {
					marker = ">>>"
				}
				fmt.Fprintf(&sb, "    %s %s\n", marker, line)
			}
		} else {
			fmt.Fprintf(&sb, "    >>> %s\n", result.Line)
		}
	}

	fmt.Fprintf(&sb, "\n%s\n", rule)
	return sb.String()
}
