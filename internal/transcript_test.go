package internal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeTranscriptSource implements TranscriptSource for tests. It records
// the track handed to FetchTrack so selection can be asserted.
type fakeTranscriptSource struct {
	tracks     []TranscriptTrack
	entries    []TranscriptEntry
	listErr    error
	fetchErr   error
	listErrFor map[string]error

	lastTrack TranscriptTrack
}

func (f *fakeTranscriptSource) ListTracks(_ context.Context, videoID string) ([]TranscriptTrack, error) {
	if err, ok := f.listErrFor[videoID]; ok {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tracks, nil
}

func (f *fakeTranscriptSource) FetchTrack(_ context.Context, track TranscriptTrack) ([]TranscriptEntry, error) {
	f.lastTrack = track
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.entries != nil {
		return f.entries, nil
	}
	return []TranscriptEntry{{Text: "hello", Start: 0, Duration: 1}}, nil
}

func manualTrack(lang string) TranscriptTrack {
	return TranscriptTrack{LanguageCode: lang, Name: lang, BaseURL: "https://example.com/" + lang}
}

func generatedTrack(lang string) TranscriptTrack {
	t := manualTrack(lang)
	t.Generated = true
	return t
}

func TestGetTranscriptSelection(t *testing.T) {
	tests := []struct {
		name          string
		tracks        []TranscriptTrack
		languages     []string
		wantLang      string
		wantGenerated bool
	}{
		{
			name:      "single manual track",
			tracks:    []TranscriptTrack{manualTrack("en")},
			languages: []string{"en"},
			wantLang:  "en",
		},
		{
			// A manual track in a later-requested language beats a
			// generated track in an earlier-requested one.
			name:      "manual beats generated across languages",
			tracks:    []TranscriptTrack{generatedTrack("en"), manualTrack("de")},
			languages: []string{"en", "de"},
			wantLang:  "de",
		},
		{
			name:      "language order decides among manual tracks",
			tracks:    []TranscriptTrack{manualTrack("de"), manualTrack("en")},
			languages: []string{"en", "de"},
			wantLang:  "en",
		},
		{
			name:          "generated fallback when no manual match",
			tracks:        []TranscriptTrack{generatedTrack("en"), manualTrack("fr")},
			languages:     []string{"en"},
			wantLang:      "en",
			wantGenerated: true,
		},
		{
			name:          "language order decides among generated tracks",
			tracks:        []TranscriptTrack{generatedTrack("de"), generatedTrack("en")},
			languages:     []string{"en", "de"},
			wantLang:      "en",
			wantGenerated: true,
		},
		{
			name:      "nil languages default to English",
			tracks:    []TranscriptTrack{manualTrack("de"), manualTrack("en")},
			languages: nil,
			wantLang:  "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeTranscriptSource{tracks: tt.tracks}

			entries, err := GetTranscript(context.Background(), source, "video123xyz", tt.languages)
			if err != nil {
				t.Fatalf("GetTranscript() error = %v", err)
			}
			if len(entries) == 0 {
				t.Fatal("GetTranscript() returned no entries")
			}
			if source.lastTrack.LanguageCode != tt.wantLang {
				t.Errorf("fetched language = %q, want %q", source.lastTrack.LanguageCode, tt.wantLang)
			}
			if source.lastTrack.Generated != tt.wantGenerated {
				t.Errorf("fetched generated = %v, want %v", source.lastTrack.Generated, tt.wantGenerated)
			}
		})
	}
}

func TestGetTranscriptNoMatch(t *testing.T) {
	source := &fakeTranscriptSource{tracks: []TranscriptTrack{manualTrack("fr")}}

	_, err := GetTranscript(context.Background(), source, "video123xyz", []string{"en", "de"})
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("error = %v, want ErrNoTranscript", err)
	}
}

func TestGetTranscriptNoTracks(t *testing.T) {
	source := &fakeTranscriptSource{}

	_, err := GetTranscript(context.Background(), source, "video123xyz", nil)
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("error = %v, want ErrNoTranscript", err)
	}
}

func TestGetTranscriptListError(t *testing.T) {
	source := &fakeTranscriptSource{listErr: ErrTranscriptsDisabled}

	_, err := GetTranscript(context.Background(), source, "video123xyz", nil)
	if !errors.Is(err, ErrTranscriptsDisabled) {
		t.Errorf("error = %v, want wrapped ErrTranscriptsDisabled", err)
	}
	if err == nil || !strings.Contains(err.Error(), "video123xyz") {
		t.Errorf("error %v does not name the video", err)
	}
}

func TestGetTranscriptFetchError(t *testing.T) {
	fetchErr := errors.New("network down")
	source := &fakeTranscriptSource{
		tracks:   []TranscriptTrack{manualTrack("en")},
		fetchErr: fetchErr,
	}

	_, err := GetTranscript(context.Background(), source, "video123xyz", []string{"en"})
	if !errors.Is(err, fetchErr) {
		t.Errorf("error = %v, want wrapped fetch error", err)
	}
	if err == nil || !strings.Contains(err.Error(), "fetching en transcript") {
		t.Errorf("error %v does not name the track language", err)
	}
}
