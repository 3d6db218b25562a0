package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

// YouTube InnerTube API client. The browse endpoint lists a channel's
// uploads with continuation-token pagination (WEB client); the player
// endpoint resolves video metadata and caption tracks (ANDROID client,
// which returns caption URLs fetchable without a browser session).
// No API key is required for either.

const (
	browseEndpoint = "https://www.youtube.com/youtubei/v1/browse"
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	webClientVersion     = "2.20240101.00.00"
	androidClientVersion = "20.10.38"
	androidSDKVersion    = 30

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	androidUserAgent = "com.google.android.youtube/" + androidClientVersion + " (Linux; U; Android 11) gzip"

	// videosTabParams selects the Videos tab of a channel browse request.
	videosTabParams = "EgZ2aWRlb3PyBgQKAjoA"

	maxResponseSize = 8 << 20
)

// InnerTubeClient implements VideoLister and TranscriptSource against
// YouTube's internal InnerTube API.
type InnerTubeClient struct {
	httpClient *http.Client
}

// NewInnerTubeClient returns a client backed by httpClient, or a default
// client with a 30s timeout when nil.
func NewInnerTubeClient(httpClient *http.Client) *InnerTubeClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &InnerTubeClient{httpClient: httpClient}
}

type browseRequest struct {
	Context      clientContext `json:"context"`
	BrowseID     string        `json:"browseId,omitempty"`
	Continuation string        `json:"continuation,omitempty"`
	Params       string        `json:"params,omitempty"`
}

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        clientContext `json:"context"`
	RacyCheckOK    bool          `json:"racyCheckOk"`
	ContentCheckOK bool          `json:"contentCheckOk"`
}

type clientContext struct {
	Client innerTubeContext `json:"client"`
}

type innerTubeContext struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion,omitempty"`
	HL                string `json:"hl"`
	GL                string `json:"gl"`
}

func webContext() clientContext {
	return clientContext{Client: innerTubeContext{
		ClientName:    "WEB",
		ClientVersion: webClientVersion,
		HL:            "en",
		GL:            "US",
	}}
}

func androidContext() clientContext {
	return clientContext{Client: innerTubeContext{
		ClientName:        "ANDROID",
		ClientVersion:     androidClientVersion,
		AndroidSDKVersion: androidSDKVersion,
		HL:                "en",
		GL:                "US",
	}}
}

// Browse response renderer tree, trimmed to the paths that carry the
// Videos tab grid and its continuation tokens.

type browseResponse struct {
	Contents           *browseContents  `json:"contents,omitempty"`
	OnResponseReceived []responseAction `json:"onResponseReceivedActions,omitempty"`
}

type browseContents struct {
	TwoColumnBrowseResultsRenderer *browseResultsRenderer `json:"twoColumnBrowseResultsRenderer,omitempty"`
}

type browseResultsRenderer struct {
	Tabs []browseTab `json:"tabs,omitempty"`
}

type browseTab struct {
	TabRenderer *tabRenderer `json:"tabRenderer,omitempty"`
}

type tabRenderer struct {
	Title   string      `json:"title,omitempty"`
	Content *tabContent `json:"content,omitempty"`
}

type tabContent struct {
	RichGridRenderer *richGridRenderer `json:"richGridRenderer,omitempty"`
}

type richGridRenderer struct {
	Contents []gridItem `json:"contents,omitempty"`
}

type gridItem struct {
	RichItemRenderer         *richItemRenderer         `json:"richItemRenderer,omitempty"`
	ContinuationItemRenderer *continuationItemRenderer `json:"continuationItemRenderer,omitempty"`
}

type richItemRenderer struct {
	Content *richItemContent `json:"content,omitempty"`
}

type richItemContent struct {
	VideoRenderer *videoRenderer `json:"videoRenderer,omitempty"`
}

type videoRenderer struct {
	VideoID string    `json:"videoId,omitempty"`
	Title   *textRuns `json:"title,omitempty"`
}

type continuationItemRenderer struct {
	ContinuationEndpoint *continuationEndpoint `json:"continuationEndpoint,omitempty"`
}

type continuationEndpoint struct {
	ContinuationCommand *continuationCommand `json:"continuationCommand,omitempty"`
}

type continuationCommand struct {
	Token string `json:"token,omitempty"`
}

type responseAction struct {
	AppendContinuationItemsAction *appendContinuationItemsAction `json:"appendContinuationItemsAction,omitempty"`
}

type appendContinuationItemsAction struct {
	ContinuationItems []gridItem `json:"continuationItems,omitempty"`
}

type textRuns struct {
	Runs       []textRun `json:"runs,omitempty"`
	SimpleText string    `json:"simpleText,omitempty"`
}

type textRun struct {
	Text string `json:"text,omitempty"`
}

func (t *textRuns) text() string {
	if t == nil {
		return ""
	}
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var parts []string
	for _, run := range t.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}

// Player response, trimmed to video details, caption tracks, and the
// playability status that explains missing captions.

type playerResponse struct {
	VideoDetails      *videoDetails      `json:"videoDetails,omitempty"`
	Captions          *captionsWrapper   `json:"captions,omitempty"`
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus,omitempty"`
}

type videoDetails struct {
	VideoID string `json:"videoId,omitempty"`
	Title   string `json:"title,omitempty"`
}

type captionsWrapper struct {
	PlayerCaptionsTracklistRenderer captionsTracklist `json:"playerCaptionsTracklistRenderer"`
}

type captionsTracklist struct {
	CaptionTracks []captionTrack `json:"captionTracks,omitempty"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	Name         *textRuns `json:"name,omitempty"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind,omitempty"` // "asr" = auto-generated
}

type playabilityStatus struct {
	Status string `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Timedtext caption XML: <transcript><text start="1.3" dur="2.5">...</text></transcript>

type timedTextDocument struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// ChannelVideos lists a channel's uploads, newest first, following
// continuation tokens until the channel is exhausted or limit is
// reached (limit <= 0 means all).
func (c *InnerTubeClient) ChannelVideos(ctx context.Context, channelID string, limit int) ([]Video, error) {
	var videos []Video
	continuation := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, &ListError{Source: "innertube", Channel: channelID, Err: err}
		}

		resp, err := c.browse(ctx, channelID, continuation)
		if err != nil {
			return nil, &ListError{Source: "innertube", Channel: channelID, Err: err}
		}

		page, next := collectBrowseVideos(resp)
		for _, video := range page {
			videos = append(videos, video)
			if limit > 0 && len(videos) >= limit {
				return videos, nil
			}
		}

		if next == "" || len(page) == 0 {
			return videos, nil
		}
		continuation = next
	}
}

// VideoTitle resolves a single video's title via the player endpoint.
func (c *InnerTubeClient) VideoTitle(ctx context.Context, videoID string) (string, error) {
	resp, err := c.player(ctx, videoID)
	if err != nil {
		return "", err
	}
	if resp.VideoDetails == nil || resp.VideoDetails.Title == "" {
		if reason := playabilityReason(resp); reason != "" {
			return "", fmt.Errorf("%w: %s", ErrVideoUnavailable, reason)
		}
		return "", fmt.Errorf("%w: no title for video %s", ErrVideoUnavailable, videoID)
	}
	return resp.VideoDetails.Title, nil
}

// ListTracks returns the caption tracks available for a video.
func (c *InnerTubeClient) ListTracks(ctx context.Context, videoID string) ([]TranscriptTrack, error) {
	resp, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}

	var raw []captionTrack
	if resp.Captions != nil {
		raw = resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	}
	if len(raw) == 0 {
		if reason := playabilityReason(resp); reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, reason)
		}
		return nil, ErrTranscriptsDisabled
	}

	tracks := make([]TranscriptTrack, 0, len(raw))
	for _, track := range raw {
		tracks = append(tracks, TranscriptTrack{
			LanguageCode: track.LanguageCode,
			Name:         track.Name.text(),
			Generated:    track.Kind == "asr",
			BaseURL:      track.BaseURL,
		})
	}
	return tracks, nil
}

// FetchTrack downloads a caption track's timedtext XML and converts it
// to timestamped entries. HTML entities are unescaped; YouTube escapes
// them twice, once for XML and once more inside the text.
func (c *InnerTubeClient) FetchTrack(ctx context.Context, track TranscriptTrack) ([]TranscriptEntry, error) {
	if track.BaseURL == "" {
		return nil, errors.New("caption track has no URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	var doc timedTextDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing timedtext XML: %w", err)
	}

	entries := make([]TranscriptEntry, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if line.Text == "" {
			continue
		}
		entries = append(entries, TranscriptEntry{
			Text:     html.UnescapeString(line.Text),
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return entries, nil
}

func (c *InnerTubeClient) browse(ctx context.Context, channelID, continuation string) (*browseResponse, error) {
	req := browseRequest{Context: webContext()}
	if continuation != "" {
		req.Continuation = continuation
	} else {
		req.BrowseID = channelID
		req.Params = videosTabParams
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, browseEndpoint+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", browserUserAgent)
	httpReq.Header.Set("Origin", "https://www.youtube.com")
	httpReq.Header.Set("Referer", "https://www.youtube.com/")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("browse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("browse returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	var parsed browseResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding browse response: %w", err)
	}
	return &parsed, nil
}

func (c *InnerTubeClient) player(ctx context.Context, videoID string) (*playerResponse, error) {
	body, err := json.Marshal(playerRequest{
		VideoID:        videoID,
		Context:        androidContext(),
		RacyCheckOK:    true,
		ContentCheckOK: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerEndpoint+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidClientVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	var parsed playerResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}
	return &parsed, nil
}

func playabilityReason(resp *playerResponse) string {
	status := resp.PlayabilityStatus
	if status == nil || status.Status == "" || status.Status == "OK" {
		return ""
	}
	if status.Reason != "" {
		return status.Reason
	}
	return status.Status
}

// collectBrowseVideos walks a browse response and returns the videos it
// carries plus the continuation token for the next page, if any. Both
// the initial tab grid and continuation appendices are handled.
func collectBrowseVideos(resp *browseResponse) ([]Video, string) {
	var videos []Video
	next := ""

	collect := func(item gridItem) {
		if r := item.RichItemRenderer; r != nil && r.Content != nil && r.Content.VideoRenderer != nil {
			video := r.Content.VideoRenderer
			if video.VideoID != "" {
				videos = append(videos, Video{ID: video.VideoID, Title: video.Title.text()})
			}
		}
		if c := item.ContinuationItemRenderer; c != nil && c.ContinuationEndpoint != nil && c.ContinuationEndpoint.ContinuationCommand != nil {
			next = c.ContinuationEndpoint.ContinuationCommand.Token
		}
	}

	for _, action := range resp.OnResponseReceived {
		if action.AppendContinuationItemsAction == nil {
			continue
		}
		for _, item := range action.AppendContinuationItemsAction.ContinuationItems {
			collect(item)
		}
	}

	if resp.Contents != nil && resp.Contents.TwoColumnBrowseResultsRenderer != nil {
		for _, tab := range resp.Contents.TwoColumnBrowseResultsRenderer.Tabs {
			if tab.TabRenderer == nil || tab.TabRenderer.Content == nil || tab.TabRenderer.Content.RichGridRenderer == nil {
				continue
			}
			for _, item := range tab.TabRenderer.Content.RichGridRenderer.Contents {
				collect(item)
			}
		}
	}

	return videos, next
}
