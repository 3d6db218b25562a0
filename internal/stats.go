package internal

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FileStats summarizes one transcript file. DurationMinutes is estimated
// from the largest timestamp in the file.
type FileStats struct {
	File            string
	Title           string
	Words           int
	Entries         int
	DurationMinutes float64
}

// CorpusStats aggregates FileStats across a transcript directory.
// Longest and Shortest rank by word count; ties keep file order.
type CorpusStats struct {
	TotalFiles         int
	TotalWords         int
	TotalEntries       int
	AvgWordsPerVideo   int
	TotalDurationHours float64
	Longest            FileStats
	Shortest           FileStats
	PerFile            []FileStats
}

// Stats computes corpus statistics for every transcript file in dir.
// Unreadable files are logged and skipped; an empty corpus is an error.
func (app *App) Stats(dir string) (*CorpusStats, error) {
	files := app.ListTranscriptFiles(dir)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrEmptyCorpus, dir)
	}

	var perFile []FileStats
	totalWords := 0
	totalEntries := 0
	totalMinutes := 0.0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			app.logger.Error("reading transcript file", slog.String("file", path), slog.Any("error", err))
			continue
		}

		parsed := ParseTranscriptMarkdown(string(content), fileTitleStem(path))

		words := 0
		lastSeconds := 0
		for _, entry := range parsed.Entries {
			words += len(strings.Fields(entry.Text))
			if secs, ok := ParseTimestampSeconds(entry.Timestamp); ok && secs > lastSeconds {
				lastSeconds = secs
			}
		}

		stat := FileStats{
			File:            filepath.Base(path),
			Title:           parsed.Title,
			Words:           words,
			Entries:         len(parsed.Entries),
			DurationMinutes: roundTo1(float64(lastSeconds) / 60),
		}
		perFile = append(perFile, stat)
		totalWords += words
		totalEntries += stat.Entries
		totalMinutes += stat.DurationMinutes
	}

	if len(perFile) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrEmptyCorpus, dir)
	}

	ranked := slices.Clone(perFile)
	slices.SortStableFunc(ranked, func(a, b FileStats) int {
		return cmp.Compare(b.Words, a.Words)
	})

	return &CorpusStats{
		TotalFiles:         len(perFile),
		TotalWords:         totalWords,
		TotalEntries:       totalEntries,
		AvgWordsPerVideo:   int(math.Round(float64(totalWords) / float64(len(perFile)))),
		TotalDurationHours: roundTo1(totalMinutes / 60),
		Longest:            ranked[0],
		Shortest:           ranked[len(ranked)-1],
		PerFile:            perFile,
	}, nil
}

// FormatStats renders corpus statistics for the terminal.
func FormatStats(stats *CorpusStats) string {
	if stats == nil {
		return "No statistics available.\n"
	}

	p := message.NewPrinter(language.English)
	rule := strings.Repeat("=", 60)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", rule)
	sb.WriteString("  Transcript Statistics\n")
	fmt.Fprintf(&sb, "%s\n\n", rule)
	p.Fprintf(&sb, "  Total transcript files:     %d\n", stats.TotalFiles)
	p.Fprintf(&sb, "  Total words:                %d\n", stats.TotalWords)
	p.Fprintf(&sb, "  Total transcript entries:   %d\n", stats.TotalEntries)
	p.Fprintf(&sb, "  Average words per video:    %d\n", stats.AvgWordsPerVideo)
	fmt.Fprintf(&sb, "  Estimated total duration:   %.1f hours\n", stats.TotalDurationHours)

	fmt.Fprintf(&sb, "\n  Longest transcript:  %s\n", stats.Longest.Title)
	p.Fprintf(&sb, "                       (%d words)\n", stats.Longest.Words)
	fmt.Fprintf(&sb, "  Shortest transcript: %s\n", stats.Shortest.Title)
	p.Fprintf(&sb, "                       (%d words)\n", stats.Shortest.Words)

	fmt.Fprintf(&sb, "\n%s\n", rule)
	return sb.String()
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
