package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rizzpect/Youtube-Transcipt-Manager/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server exposing the transcript library",
	Long: `Run a Model Context Protocol (MCP) server that exposes the transcript
library as tools.

The MCP server provides three tools:
- fetch_video_transcript: Fetch a video's transcript into the library
- search_transcripts: Search saved transcripts for a keyword
- get_transcript_stats: Summarize the transcript library

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport (e.g. for desktop AI assistants)
  ytm mcp

  # Run MCP server with HTTP transport on port 8080
  ytm mcp --transport=http --port=8080`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so disable verbose logging
		config.Verbose = false
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		internal.InitMCPLogging(config)

		app := internal.NewApp(config)
		defer app.Close()

		mcpServer := internal.NewMCPServer(app)

		if transport == "http" {
			fmt.Fprintf(os.Stderr, "Starting ytm MCP server on HTTP port %d...\n", port)
		}

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	rootCmd.AddCommand(mcpCmd)
}
