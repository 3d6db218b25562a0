package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytm-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	// fetch_video_transcript tool
	s.mcpServer.AddTool(mcp.NewTool("fetch_video_transcript",
		mcp.WithDescription("Fetch the transcript for a YouTube video, save it to the transcript library, and return its contents. Prefers manually authored captions over auto-generated ones. Fails if the video has no captions in the requested languages."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or bare 11-character video id"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("Output format: md, json, txt, or srt (defaults to the configured format)"),
		),
		mcp.WithString("languages",
			mcp.Description("Comma-separated language preference, e.g. \"de,en\""),
		),
	), s.handleFetchTranscript)

	// search_transcripts tool
	s.mcpServer.AddTool(mcp.NewTool("search_transcripts",
		mcp.WithDescription("Search all saved transcripts for a keyword and return the matches with surrounding context lines and timestamps. Matching is literal substring, case-insensitive unless requested otherwise."),
		mcp.WithString("keyword",
			mcp.Description("Text to search for"),
			mcp.Required(),
		),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Match case exactly (default false)"),
		),
		mcp.WithNumber("context",
			mcp.Description("Lines of context around each match"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of matches to return"),
		),
	), s.handleSearchTranscripts)

	// get_transcript_stats tool
	s.mcpServer.AddTool(mcp.NewTool("get_transcript_stats",
		mcp.WithDescription("Summarize the transcript library: file and word counts, estimated total duration, and the longest and shortest transcripts by word count."),
	), s.handleTranscriptStats)
}

// handleFetchTranscript implements the fetch_video_transcript tool
func (s *MCPServer) handleFetchTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	MCPLogInfo("fetch_video_transcript: %s", url)

	formatName := request.GetString("format", "")
	explicit := formatName != ""
	if !explicit {
		formatName = s.app.config.Format
	}
	format, err := ParseFormat(formatName)
	if err != nil {
		if explicit {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = FormatMarkdown
	}

	var languages []string
	if raw := request.GetString("languages", ""); raw != "" {
		for _, lang := range strings.Split(raw, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				languages = append(languages, lang)
			}
		}
	}

	path, err := s.app.FetchVideo(ctx, url, FetchOptions{
		Format:    format,
		Languages: languages,
		APIKey:    s.app.config.APIKey,
	})
	if err != nil {
		MCPLogError("fetch_video_transcript failed: %v", err)
		return mcp.NewToolResultErrorFromErr("fetching transcript", err), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("reading saved transcript", err), nil
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("Saved to: %s\n\n", path))
	buf.Write(content)

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleSearchTranscripts implements the search_transcripts tool
func (s *MCPServer) handleSearchTranscripts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := request.RequireString("keyword")
	if err != nil || strings.TrimSpace(keyword) == "" {
		return mcp.NewToolResultError("keyword parameter is required and must be a non-empty string"), nil
	}
	MCPLogInfo("search_transcripts: %q", keyword)

	results := s.app.Search(s.app.config.OutputDir, keyword, SearchOptions{
		CaseSensitive: request.GetBool("case_sensitive", false),
		ContextLines:  request.GetInt("context", s.app.config.SearchContext),
		MaxResults:    request.GetInt("max_results", s.app.config.SearchMaxResults),
	})
	if len(results) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(fmt.Sprintf("No matches found for %q.", keyword))},
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(FormatSearchResults(results, keyword, true))},
	}, nil
}

// handleTranscriptStats implements the get_transcript_stats tool
func (s *MCPServer) handleTranscriptStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	MCPLogInfo("get_transcript_stats")

	stats, err := s.app.Stats(s.app.config.OutputDir)
	if err != nil {
		MCPLogError("get_transcript_stats failed: %v", err)
		return mcp.NewToolResultErrorFromErr("computing transcript stats", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(FormatStats(stats))},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
