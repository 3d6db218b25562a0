package internal

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"
)

// MaxFilenameLength bounds sanitized title stems for filesystem compatibility.
const MaxFilenameLength = 150

var (
	forbiddenFilenameChars = strings.NewReplacer(
		`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
		`"`, "_", "<", "_", ">", "_", "|", "_",
	)
	underscoreOrSpaceRuns = regexp.MustCompile(`[_\s]+`)
)

// CleanFilename turns an arbitrary video title into a filesystem-safe,
// length-bounded filename stem. Blank input yields "untitled". The result
// is ASCII-only with none of the characters filesystems reserve, and it
// never starts or ends with a space, period, or underscore. Applying it
// twice changes nothing.
func CleanFilename(title string) string {
	if strings.TrimSpace(title) == "" {
		return "untitled"
	}

	text := forbiddenFilenameChars.Replace(title)

	// NFKD first so accented letters decompose into a base letter plus
	// combining marks; the marks fall into the non-ASCII replacement below.
	text = norm.NFKD.String(text)
	text = strings.ReplaceAll(text, " ", " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	text = underscoreOrSpaceRuns.ReplaceAllString(b.String(), " ")
	text = strings.Trim(text, " ._")

	if len(text) > MaxFilenameLength {
		text = text[:MaxFilenameLength]
		if i := strings.LastIndex(text, " "); i > 0 {
			text = text[:i]
		}
		text = strings.Trim(text, " ._")
	}

	if text == "" {
		return "untitled"
	}
	return text
}

// The four URL shapes a video reference can take, all tolerating an
// optional scheme and www prefix. An ID run longer than 11 characters is
// rejected rather than truncated.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID resolves a watch, youtu.be, shorts, or embed URL, or a
// bare 11-character ID, into the canonical video ID.
func ExtractVideoID(urlOrID string) (string, error) {
	trimmed := strings.TrimSpace(urlOrID)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrNoVideoID)
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return m[1], nil
		}
	}

	if bareVideoID.MatchString(trimmed) {
		return trimmed, nil
	}

	return "", fmt.Errorf("%w: %q", ErrNoVideoID, urlOrID)
}

// FormatTimestamp renders seconds as H:MM:SS when an hour or more, else
// MM:SS. Negative input clamps to zero. This is the human-facing rendering
// used in Markdown and JSON output; SRT cue times use srtTime instead.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// AskUser is a variable that holds the function for asking user confirmation
// This allows it to be replaced in tests
var AskUser = func(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return strings.HasPrefix(response, "y")
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
	return false
}

// ReadLine prompts for one line of input and returns it trimmed. Like
// AskUser it is a variable so interactive flows can be driven from tests.
var ReadLine = func(prompt string) string {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
	return ""
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dir ...string) error {
	for _, dir := range dir {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}
