package internal

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// APITitles resolves video titles through the YouTube Data API v3.
// Snippet lookups cost one quota unit each; listing-source titles stay
// the default when no API key is configured.
type APITitles struct {
	service *youtube.Service
}

// NewAPITitles builds a Data API title source from an API key.
func NewAPITitles(ctx context.Context, apiKey string) (*APITitles, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &APITitles{service: service}, nil
}

// VideoTitle returns the snippet title for videoID.
func (a *APITitles) VideoTitle(ctx context.Context, videoID string) (string, error) {
	resp, err := a.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("videos.list for %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", fmt.Errorf("%w: %s", ErrTitleNotFound, videoID)
	}
	return resp.Items[0].Snippet.Title, nil
}
