package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndhai/remixtube/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for remixtube",
	Long: `Run a Model Context Protocol (MCP) server that exposes remixtube
functionality as tools.

The MCP server provides four tools:
- get_video_metadata: Video details and caption availability
- get_video_transcript: Existing captions as plain text
- summarize_video: Vietnamese bullet-point summary
- write_video_script: Short-form script in a chosen style

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  remixtube mcp

  # Run MCP server with HTTP transport on port 8080
  remixtube mcp --transport=http --port=8080`,
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
		mcpServer := internal.NewMCPServer(app)

		if transport == "http" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting remixtube MCP server on HTTP port %d...\n", port)
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
