package internal

import (
	"context"
	"fmt"
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
		"remixtube-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_video_metadata",
		mcp.WithDescription("Get YouTube video metadata including caption availability. Check 'Has Captions' to know whether get_video_transcript will work without the audio fallback."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or ID"),
			mcp.Required(),
		),
	), s.handleGetMetadata)

	s.mcpServer.AddTool(mcp.NewTool("get_video_transcript",
		mcp.WithDescription("Get the existing YouTube captions as plain text. Fails if the video has no captions; this tool never downloads audio."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("summarize_video",
		mcp.WithDescription("Generate a Vietnamese bullet-point summary of a YouTube video with Gemini. Falls back to processing the audio track when the video has no captions (uses API quota)."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or ID"),
			mcp.Required(),
		),
	), s.handleSummarize)

	s.mcpServer.AddTool(mcp.NewTool("write_video_script",
		mcp.WithDescription("Rewrite a YouTube video as a short-form script with Gemini: TIÊU ĐỀ, HOOK, NỘI DUNG CHÍNH, CTA. Accepts a free-text style. Falls back to processing the audio track when the video has no captions (uses API quota)."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or ID"),
			mcp.Required(),
		),
		mcp.WithString("style",
			mcp.Description("Script voice, e.g. \"Hài hước & Vui nhộn\""),
		),
	), s.handleWriteScript)
}

// handleGetMetadata implements the get_video_metadata tool
func (s *MCPServer) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	_, videoID, err := ParseArg(url)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid url", err), nil
	}

	MCPLogInfo("metadata request for %s", videoID)

	metadata, err := s.app.Metadata(ctx, videoID)
	if err != nil {
		MCPLogError("metadata for %s: %v", videoID, err)
		return mcp.NewToolResultErrorFromErr("metadata error", err), nil
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("Title: %s\n", metadata.Title))
	buf.WriteString(fmt.Sprintf("Channel: %s\n", metadata.Channel))
	buf.WriteString(fmt.Sprintf("Duration: %.0f seconds\n", metadata.Duration))
	buf.WriteString(fmt.Sprintf("Description: %s\n", metadata.Description))
	buf.WriteString(fmt.Sprintf("Thumbnail: %s\n", metadata.Thumbnail))
	buf.WriteString(fmt.Sprintf("Has Captions: %t\n", metadata.HasCaptions))

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleGetTranscript implements the get_video_transcript tool (captions only)
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	_, videoID, err := ParseArg(url)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid url", err), nil
	}

	transcript, err := s.app.GetTranscript(ctx, videoID)
	if err != nil {
		MCPLogError("transcript for %s: %v", videoID, err)
		return mcp.NewToolResultErrorFromErr("no captions available - use get_video_metadata to check caption availability", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleSummarize implements the summarize_video tool
func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	summary, err := s.app.Summarize(ctx, url, true)
	if err != nil {
		MCPLogError("summarize %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("failed to summarize video", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(summary)},
	}, nil
}

// handleWriteScript implements the write_video_script tool
func (s *MCPServer) handleWriteScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	style := request.GetString("style", s.app.config.Style)

	script, err := s.app.WriteScript(ctx, url, style, true)
	if err != nil {
		MCPLogError("write script for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("failed to write script", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(script)},
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
