package internal

import (
	"io"
	"log/slog"
	"testing"
)

// newTestApp builds an App for tests: temp-dir output, silent UI, and a
// discarded logger so test output stays clean.
func newTestApp(t *testing.T, options ...AppOption) *App {
	t.Helper()
	config := &Config{
		OutputDir:        t.TempDir(),
		Format:           "md",
		Languages:        []string{"en"},
		SkipExisting:     true,
		SearchContext:    2,
		SearchMaxResults: 50,
		Quiet:            true,
	}
	options = append([]AppOption{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, options...)
	return NewApp(config, options...)
}

func TestNewAppDefaults(t *testing.T) {
	app := newTestApp(t)

	if app.lister == nil {
		t.Error("lister not wired")
	}
	if app.transcripts == nil {
		t.Error("transcript source not wired")
	}
	if app.newTitles == nil {
		t.Error("title source factory not wired")
	}

	// One InnerTube client serves both roles.
	lister, ok := app.lister.(*InnerTubeClient)
	if !ok {
		t.Fatalf("default lister is %T, want *InnerTubeClient", app.lister)
	}
	source, ok := app.transcripts.(*InnerTubeClient)
	if !ok {
		t.Fatalf("default transcript source is %T, want *InnerTubeClient", app.transcripts)
	}
	if lister != source {
		t.Error("lister and transcript source should share one client")
	}

	if err := app.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestAppOptions(t *testing.T) {
	lister := &fakeLister{}
	source := &fakeTranscriptSource{}

	app := newTestApp(t, WithLister(lister), WithTranscriptSource(source))

	if app.lister != VideoLister(lister) {
		t.Error("WithLister did not replace the lister")
	}
	if app.transcripts != TranscriptSource(source) {
		t.Error("WithTranscriptSource did not replace the source")
	}
}
