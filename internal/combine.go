package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CombinedFileName is the stem of the combine artifact written into the
// corpus directory when no explicit output path is given.
const CombinedFileName = "_combined_transcripts"

type combinedTranscript struct {
	Title    string        `json:"title"`
	VideoURL string        `json:"video_url"`
	Entries  []ParsedEntry `json:"entries"`
}

type combinedDocument struct {
	TotalVideos int                  `json:"total_videos"`
	Transcripts []combinedTranscript `json:"transcripts"`
}

// Combine merges every transcript file in dir into one artifact and
// returns its path along with the number of files found. An empty
// outputFile defaults to {dir}/_combined_transcripts.{ext}. A source file
// that cannot be read is logged and skipped; an empty corpus is an error.
func (app *App) Combine(dir, outputFile string, format Format) (string, int, error) {
	files := app.ListTranscriptFiles(dir)
	if len(files) == 0 {
		return "", 0, fmt.Errorf("%w in %q", ErrEmptyCorpus, dir)
	}

	// SRT has no combined representation; fall back to Markdown.
	if format == FormatSRT {
		format = FormatMarkdown
	}

	if outputFile == "" {
		outputFile = filepath.Join(dir, CombinedFileName+"."+format.Ext())
	}

	app.logger.Info("combining transcripts",
		slog.Int("files", len(files)), slog.String("output", outputFile))

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = app.combineJSON(files)
	case FormatText:
		data = app.combineText(files)
	default:
		data = app.combineMarkdown(files)
	}
	if err != nil {
		return "", 0, err
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", 0, fmt.Errorf("writing combined output %q: %w", outputFile, err)
	}

	app.logger.Info("combined transcripts saved", slog.String("output", outputFile))
	return outputFile, len(files), nil
}

func (app *App) combineMarkdown(files []string) []byte {
	var sb strings.Builder
	sb.WriteString("# Combined Transcripts\n\n")
	fmt.Fprintf(&sb, "**Total videos:** %d\n\n", len(files))
	sb.WriteString("---\n\n")

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			app.logger.Error("reading transcript file", slog.String("file", path), slog.Any("error", err))
			continue
		}
		sb.Write(content)
		sb.WriteString("\n\n---\n\n")
	}
	return []byte(sb.String())
}

func (app *App) combineJSON(files []string) ([]byte, error) {
	doc := combinedDocument{
		TotalVideos: len(files),
		Transcripts: []combinedTranscript{},
	}

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			app.logger.Error("reading transcript file", slog.String("file", path), slog.Any("error", err))
			continue
		}
		parsed := ParseTranscriptMarkdown(string(content), fileTitleStem(path))
		entries := parsed.Entries
		if entries == nil {
			entries = []ParsedEntry{}
		}
		doc.Transcripts = append(doc.Transcripts, combinedTranscript{
			Title:    parsed.Title,
			VideoURL: parsed.VideoURL,
			Entries:  entries,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding combined JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func (app *App) combineText(files []string) []byte {
	var sb strings.Builder
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			app.logger.Error("reading transcript file", slog.String("file", path), slog.Any("error", err))
			continue
		}
		parsed := ParseTranscriptMarkdown(string(content), fileTitleStem(path))

		fmt.Fprintf(&sb, "\n\n=== %s ===\n\n", parsed.Title)
		for _, entry := range parsed.Entries {
			sb.WriteString(entry.Text + " ")
		}
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}
