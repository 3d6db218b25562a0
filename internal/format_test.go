package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleEntries() []TranscriptEntry {
	return []TranscriptEntry{
		{Text: "Hello world", Start: 0, Duration: 1.5},
		{Text: "Second line", Start: 45, Duration: 2.5},
		{Text: "   ", Start: 50, Duration: 1},
		{Text: "Third\nline", Start: 125},
	}
}

const (
	sampleID  = "dQw4w9WgXcQ"
	sampleURL = "https://www.youtube.com/watch?v=" + sampleID
)

func TestSaveTranscriptMarkdown(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveTranscript(dir, "Test Video", sampleID, sampleURL, sampleEntries(), FormatMarkdown)
	if err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}
	if want := filepath.Join(dir, "Test Video.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := "# Test Video\n\n" +
		"**Video URL:** [" + sampleURL + "](" + sampleURL + ")\n\n" +
		"## Transcript\n\n" +
		"`00:00` — Hello world\n" +
		"`00:45` — Second line\n" +
		"`02:05` — Third line\n"
	if string(data) != want {
		t.Errorf("markdown output:\n%q\nwant:\n%q", data, want)
	}
}

func TestSaveTranscriptMarkdownRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveTranscript(dir, "Round Trip", sampleID, sampleURL, sampleEntries(), FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	parsed := ParseTranscriptMarkdown(string(data), "fallback")
	if parsed.Title != "Round Trip" {
		t.Errorf("Title = %q", parsed.Title)
	}
	if parsed.VideoURL != sampleURL {
		t.Errorf("VideoURL = %q", parsed.VideoURL)
	}

	want := []ParsedEntry{
		{Timestamp: "00:00", Text: "Hello world"},
		{Timestamp: "00:45", Text: "Second line"},
		{Timestamp: "02:05", Text: "Third line"},
	}
	if len(parsed.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(parsed.Entries), len(want))
	}
	for i := range want {
		if parsed.Entries[i] != want[i] {
			t.Errorf("Entries[%d] = %+v, want %+v", i, parsed.Entries[i], want[i])
		}
	}
}

func TestSaveTranscriptJSON(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveTranscript(dir, "JSON Video", sampleID, sampleURL, sampleEntries(), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "JSON Video.json") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc transcriptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Title != "JSON Video" || doc.VideoID != sampleID || doc.VideoURL != sampleURL {
		t.Errorf("header = %+v", doc)
	}
	if len(doc.Transcript) != 3 {
		t.Fatalf("got %d transcript entries, want 3", len(doc.Transcript))
	}

	first := doc.Transcript[0]
	if first.Timestamp != "00:00" || first.StartSeconds != 0 || first.Duration != 1.5 || first.Text != "Hello world" {
		t.Errorf("Transcript[0] = %+v", first)
	}

	// The blank entry is dropped, the multiline one is flattened.
	last := doc.Transcript[2]
	if last.Text != "Third line" || last.Timestamp != "02:05" {
		t.Errorf("Transcript[2] = %+v", last)
	}
}

func TestSaveTranscriptText(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveTranscript(dir, "Text Video", sampleID, sampleURL, sampleEntries(), FormatText)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "Text Video\nURL: "+sampleURL+"\n"+strings.Repeat("=", 60)+"\n\n") {
		t.Errorf("text header:\n%q", content)
	}
	if !strings.Contains(content, "Hello world Second line Third line") {
		t.Errorf("text body:\n%q", content)
	}
}

func TestSaveTranscriptSRT(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveTranscript(dir, "SRT Video", sampleID, sampleURL, sampleEntries(), FormatSRT)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// The third cue has no duration and gets the default 2s padding.
	want := "1\n00:00:00,000 --> 00:00:01,500\nHello world\n\n" +
		"2\n00:00:45,000 --> 00:00:47,500\nSecond line\n\n" +
		"3\n00:02:05,000 --> 00:02:07,000\nThird line\n\n"
	if string(data) != want {
		t.Errorf("srt output:\n%q\nwant:\n%q", data, want)
	}
}

func TestSaveTranscriptEmptyTitle(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveTranscript(dir, "   ", sampleID, sampleURL, sampleEntries(), FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, sampleID+".md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestTranscriptExists(t *testing.T) {
	dir := t.TempDir()

	if TranscriptExists(dir, "Test Video", FormatMarkdown) {
		t.Error("TranscriptExists true before save")
	}

	if _, err := SaveTranscript(dir, "Test Video", sampleID, sampleURL, sampleEntries(), FormatMarkdown); err != nil {
		t.Fatal(err)
	}

	if !TranscriptExists(dir, "Test Video", FormatMarkdown) {
		t.Error("TranscriptExists false after save")
	}
	if TranscriptExists(dir, "Test Video", FormatSRT) {
		t.Error("TranscriptExists true for a format that was never saved")
	}

	// Existence keys on the sanitized title, so a messy variant of the
	// same title hits the same file.
	if !TranscriptExists(dir, "Test  Video", FormatMarkdown) {
		t.Error("TranscriptExists false for title sanitizing to the same stem")
	}
}

func TestSrtTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{7.5, "00:00:07,500"},
		{61.25, "00:01:01,250"},
		{3661.5, "01:01:01,500"},
	}
	for _, tt := range tests {
		if got := srtTime(tt.seconds); got != tt.want {
			t.Errorf("srtTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"JSON", FormatJSON, false},
		{" txt ", FormatText, false},
		{"text", FormatText, false},
		{"srt", FormatSRT, false},
		{"pdf", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCombineFormat(t *testing.T) {
	if _, err := ParseCombineFormat("srt"); err == nil {
		t.Error("ParseCombineFormat(srt) should fail")
	}
	got, err := ParseCombineFormat("json")
	if err != nil || got != FormatJSON {
		t.Errorf("ParseCombineFormat(json) = (%v, %v)", got, err)
	}
}
