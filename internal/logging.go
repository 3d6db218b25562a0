package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// multiHandler fans one record out to several slog handlers so the console
// and the run log file can sit at different levels.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// NewLogger builds the run logger. Console output goes to stderr at Warn,
// or Debug when verbose; the run log file always captures Debug so
// per-video outcomes survive quiet runs. A file that cannot be opened
// degrades to console-only logging. The returned closer flushes the file
// handle and is safe to call when no file was opened.
func NewLogger(logPath string, verbose bool) (*slog.Logger, func() error) {
	consoleLevel := slog.LevelWarn
	if verbose {
		consoleLevel = slog.LevelDebug
	}

	console := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: consoleLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps belong in the file; the console stays terse.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	handlers := []slog.Handler{console}
	closer := func() error { return nil }

	if logPath != "" {
		logFile, err := openLogFile(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file %q: %v\n", logPath, err)
		} else {
			handlers = append(handlers, slog.NewTextHandler(logFile, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
			closer = logFile.Close
		}
	}

	return slog.New(&multiHandler{handlers: handlers}), closer
}

func openLogFile(path string) (*os.File, error) {
	if err := EnsureDirs(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
