// go_transcript — YouTube Transcript MCP server.
//
// Exposes three MCP tools: get_transcript, get_timed_transcript, get_video_info.
// Runs as HTTP MCP server or stdio transport.
//
// No credentials required — captions and metadata come from YouTube's public
// Innertube endpoints.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/ytserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	// FETCH_TIMEOUT bounds one whole tool operation (all attempts and
	// fallbacks); the client timeout caps a single HTTP attempt.
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	engine.Init(engine.Config{
		DefaultLanguage:    env.Str("TRANSCRIPT_LANGUAGE", "en"),
		MaxTranscriptRunes: env.Int("MAX_TRANSCRIPT_CHARS", 50000),
		FetchTimeout:       fetchTimeout,
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	})
}
