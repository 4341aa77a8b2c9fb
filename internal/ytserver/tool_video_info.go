package ytserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGetVideoInfo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_video_info",
		Description: "Get metadata for a YouTube video: title, author, duration, view count, and the available caption languages (manual and auto-generated). Accepts a video URL or bare video ID.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoInfoInput) (*mcp.CallToolResult, engine.VideoInfoOutput, error) {
		engine.IncrVideoInfoRequests()

		videoID, err := sources.ExtractVideoID(input.VideoURL)
		if err != nil {
			return nil, engine.VideoInfoOutput{}, userError(input.VideoURL, err)
		}

		info, err := sources.FetchVideoInfo(ctx, videoID)
		if err != nil {
			return nil, engine.VideoInfoOutput{}, userError(input.VideoURL, err)
		}

		slog.Info("get_video_info",
			slog.String("id", videoID),
			slog.String("title", info.Title),
			slog.Int("caption_tracks", len(info.Captions)),
		)
		return nil, info, nil
	})
}
