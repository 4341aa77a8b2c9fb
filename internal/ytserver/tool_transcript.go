package ytserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGetTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Get the plain text transcript of a YouTube video as continuous text without timestamps. Accepts a video URL or bare video ID. Prefers manually created captions over auto-generated ones. Useful for summarization or analysis when timing isn't needed.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.TranscriptOutput, error) {
		engine.IncrTranscriptRequests()

		videoID, err := sources.ExtractVideoID(input.VideoURL)
		if err != nil {
			return nil, engine.TranscriptOutput{}, userError(input.VideoURL, err)
		}

		segs, lang, err := sources.FetchTranscript(ctx, videoID, langPrefs(input.Language))
		if err != nil {
			return nil, engine.TranscriptOutput{}, userError(input.VideoURL, err)
		}

		text := sources.JoinSegments(segs)
		out := engine.TranscriptOutput{
			VideoID:  videoID,
			Language: lang,
		}
		if limit := engine.Cfg.MaxTranscriptRunes; limit > 0 && len(text) > limit {
			truncated := engine.TruncateRunes(text, limit, "")
			out.Truncated = truncated != text
			text = truncated
		}
		out.Transcript = text

		slog.Info("get_transcript",
			slog.String("id", videoID),
			slog.String("lang", lang),
			slog.Int("chars", len(out.Transcript)),
		)
		return nil, out, nil
	})
}

func registerGetTimedTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_timed_transcript",
		Description: "Get the transcript of a YouTube video as ordered segments with start time and duration in seconds. Accepts a video URL or bare video ID. Useful when you need to reference specific parts of the video.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.TimedTranscriptOutput, error) {
		engine.IncrTimedTranscriptRequests()

		videoID, err := sources.ExtractVideoID(input.VideoURL)
		if err != nil {
			return nil, engine.TimedTranscriptOutput{}, userError(input.VideoURL, err)
		}

		segs, lang, err := sources.FetchTranscript(ctx, videoID, langPrefs(input.Language))
		if err != nil {
			return nil, engine.TimedTranscriptOutput{}, userError(input.VideoURL, err)
		}

		slog.Info("get_timed_transcript",
			slog.String("id", videoID),
			slog.String("lang", lang),
			slog.Int("segments", len(segs)),
		)
		return nil, engine.TimedTranscriptOutput{
			VideoID:  videoID,
			Language: lang,
			Segments: segs,
		}, nil
	})
}
