package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Player response retrieval.
// Primary:  scrape watch page ytInitialPlayerResponse (works from any IP)
// Fallback: ANDROID Innertube /player (works from non-blocked IPs)
//
// Both paths return the same innertubePlayerResp shape carrying playability,
// caption tracks, and videoDetails.

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// getPlayerResponse fetches the player response, trying the watch page first
// and the ANDROID /player endpoint on failure. Errors are transport/parse
// failures only — playability problems are reported inside the response and
// mapped by playabilityErr.
func getPlayerResponse(ctx context.Context, videoID string) (*innertubePlayerResp, error) {
	pr, err := fetchPlayerViaPageScrape(ctx, videoID)
	if err == nil {
		return pr, nil
	}
	slog.Warn("youtube: page scrape failed, trying ANDROID player",
		slog.String("id", videoID), slog.Any("err", err))

	pr, androidErr := fetchPlayerViaAndroid(ctx, videoID)
	if androidErr != nil {
		return nil, fmt.Errorf("player response: %w (page scrape: %v)", androidErr, err)
	}
	return pr, nil
}

// playabilityErr maps a player response playability status onto the engine
// error taxonomy. Returns nil when the video is playable.
func playabilityErr(pr *innertubePlayerResp) error {
	ps := pr.PlayabilityStatus
	if ps == nil || ps.Status == "" || ps.Status == "OK" {
		return nil
	}
	switch ps.Status {
	case "ERROR", "LOGIN_REQUIRED", "UNPLAYABLE", "AGE_CHECK_REQUIRED", "LIVE_STREAM_OFFLINE":
		if ps.Reason != "" {
			return fmt.Errorf("%w: %s", engine.ErrVideoUnavailable, ps.Reason)
		}
		return fmt.Errorf("%w: status %s", engine.ErrVideoUnavailable, ps.Status)
	}
	return fmt.Errorf("playability status %s: %s", ps.Status, ps.Reason)
}

// fetchPlayerViaPageScrape scrapes the YouTube watch page HTML and extracts
// ytInitialPlayerResponse. Works from any IP.
func fetchPlayerViaPageScrape(ctx context.Context, videoID string) (*innertubePlayerResp, error) {
	engine.IncrWatchPageRequests()
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		engine.IncrFetchErrors()
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var pr innertubePlayerResp
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &pr, nil
}

// fetchPlayerViaAndroid uses the ANDROID Innertube /player endpoint.
func fetchPlayerViaAndroid(ctx context.Context, videoID string) (*innertubePlayerResp, error) {
	engine.IncrInnertubeRequests()

	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		engine.IncrFetchErrors()
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var pr innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return &pr, nil
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	var prev byte
	for i, c := range b {
		if inStr {
			if c == '"' && prev != '\\' {
				inStr = false
			}
		} else {
			switch c {
			case '"':
				inStr = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return b[:i+1]
				}
			}
		}
		prev = c
	}
	return nil
}
