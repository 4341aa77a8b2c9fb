// Package ytserver registers the YouTube transcript MCP tools:
// get_transcript, get_timed_transcript, get_video_info.
package ytserver

import (
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all transcript tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerGetTranscript(server)
	registerGetTimedTranscript(server)
	registerGetVideoInfo(server)
}

// langPrefs builds the track-selection preference order from a tool input.
// The requested language wins, English is always the fallback.
func langPrefs(lang string) []string {
	def := engine.Cfg.DefaultLanguage
	if lang == "" || lang == def {
		return []string{def}
	}
	return []string{lang, def}
}

// userError converts an engine error into the message returned to the host.
// Every failure maps onto the taxonomy; unknown errors pass through with the
// upstream detail attached.
func userError(videoRef string, err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidVideoID):
		return fmt.Errorf("could not extract a video ID from %q — pass a YouTube URL or an 11-character video ID", videoRef)
	case errors.Is(err, engine.ErrVideoUnavailable):
		return fmt.Errorf("video %q is unavailable or does not exist: %v", videoRef, err)
	case errors.Is(err, engine.ErrTranscriptsDisabled):
		return fmt.Errorf("transcripts are disabled for video %q", videoRef)
	case errors.Is(err, engine.ErrNoTranscript):
		return fmt.Errorf("no transcript found for video %q", videoRef)
	default:
		return fmt.Errorf("error retrieving data for %q: %v", videoRef, err)
	}
}
