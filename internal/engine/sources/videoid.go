package sources

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Video ID extraction happens before any network call — a malformed reference
// must fail fast without touching YouTube.

var videoIDPatterns = []*regexp.Regexp{
	// watch, embed, shorts, live, legacy /v/, and youtu.be short links
	regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|live/|v/)|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	// bare 11-char ID
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format or
// accepts a bare ID as-is. Format validation only — no semantic checks.
func ExtractVideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", engine.ErrInvalidVideoID)
	}
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(ref); len(m) >= 2 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", engine.ErrInvalidVideoID, ref)
}
