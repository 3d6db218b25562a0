package internal

import (
	"context"
	"log/slog"
)

// App holds the application state and dependencies
type App struct {
	config      *Config
	logger      *slog.Logger
	ui          UIManager
	lister      VideoLister
	transcripts TranscriptSource
	newTitles   TitleSourceFactory
	closeLog    func() error
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	logger, closeLog := NewLogger(config.LogFile, config.Verbose)

	innertube := NewInnerTubeClient(nil)

	app := &App{
		config:      config,
		logger:      logger,
		ui:          NewUIManager(config.Verbose, config.Quiet),
		lister:      innertube,
		transcripts: innertube,
		newTitles: func(ctx context.Context, apiKey string) (TitleSource, error) {
			return NewAPITitles(ctx, apiKey)
		},
		closeLog: closeLog,
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// Close releases the run log file handle.
func (app *App) Close() error {
	if app.closeLog == nil {
		return nil
	}
	return app.closeLog()
}

// AppOption customizes App creation
type AppOption func(*App)

// WithLister sets a custom video lister
func WithLister(lister VideoLister) AppOption {
	return func(a *App) {
		a.lister = lister
	}
}

// WithTranscriptSource sets a custom transcript source
func WithTranscriptSource(source TranscriptSource) AppOption {
	return func(a *App) {
		a.transcripts = source
	}
}

// WithTitleSourceFactory sets a custom title source factory
func WithTitleSourceFactory(factory TitleSourceFactory) AppOption {
	return func(a *App) {
		a.newTitles = factory
	}
}

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}
