package cmd

import (
	"fmt"
	"os"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// saveFormats is the order in which a bare title is tried against the
// library when resolving which file the user meant.
var saveFormats = []internal.Format{
	internal.FormatMarkdown,
	internal.FormatJSON,
	internal.FormatText,
	internal.FormatSRT,
}

// resolveTranscriptPath turns a user-supplied argument into a transcript
// file path. A path to an existing file wins; otherwise the argument is
// treated as a video title saved in the transcript directory.
func resolveTranscriptPath(arg string) (string, error) {
	if internal.FileExists(arg) {
		return arg, nil
	}

	for _, format := range saveFormats {
		path := internal.TranscriptPath(config.OutputDir, arg, format)
		if internal.FileExists(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("no transcript found for %q in %s", arg, config.OutputDir)
}

// readTranscript resolves the argument and returns the file's content.
func readTranscript(arg string) (string, string, error) {
	path, err := resolveTranscriptPath(arg)
	if err != nil {
		return "", "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading transcript %q: %w", path, err)
	}

	return path, string(content), nil
}
