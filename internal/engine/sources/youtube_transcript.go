package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Transcript fetching.
// Primary:  player response captionTracks → timedtext XML (keeps per-segment timing)
// Fallback: /next → engagement panel → /get_transcript (works from datacenter IPs
//           where the caption URLs are gated)

// FetchTranscript fetches the timed caption segments for a YouTube video.
// langs is the preference order for track selection; manual tracks win over
// auto-generated ones. The returned language is the BCP-47 code of the track
// actually used ("und" when the engagement panel fallback served the request,
// since that endpoint does not report a track code).
func FetchTranscript(ctx context.Context, videoID string, langs []string) ([]engine.TranscriptSegment, string, error) {
	ctx, cancel := fetchContext(ctx)
	defer cancel()

	pr, err := getPlayerResponse(ctx, videoID)
	if err != nil {
		// No player response at all — try the engagement panel before giving up.
		if segs, fbErr := fetchTranscriptViaEngagementPanel(ctx, videoID); fbErr == nil {
			return segs, "und", nil
		}
		return nil, "", err
	}

	tracks, err := captionTracksFromPlayer(videoID, pr)
	if err != nil {
		return nil, "", err
	}

	track, ok := pickBestTrack(tracks, langs)
	if ok {
		segs, ttErr := fetchTimedText(ctx, track.BaseURL)
		if ttErr == nil {
			return segs, track.LanguageCode, nil
		}
		slog.Warn("youtube: timedtext fetch failed, trying engagement panel",
			slog.String("id", videoID), slog.Any("err", ttErr))
	} else {
		slog.Warn("youtube: all caption tracks require PoToken, trying engagement panel",
			slog.String("id", videoID))
	}

	segs, fbErr := fetchTranscriptViaEngagementPanel(ctx, videoID)
	if fbErr != nil {
		return nil, "", wrapFallbackErr(videoID, fbErr)
	}
	return segs, "und", nil
}

// captionTracksFromPlayer maps a player response to its caption track list.
// A playable video without a captions block means the uploader disabled
// transcripts; a captions block with no tracks means none exist.
func captionTracksFromPlayer(videoID string, pr *innertubePlayerResp) ([]captionTrack, error) {
	if perr := playabilityErr(pr); perr != nil {
		return nil, perr
	}
	if pr.Captions == nil {
		return nil, fmt.Errorf("%w for video %s", engine.ErrTranscriptsDisabled, videoID)
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w for video %s", engine.ErrNoTranscript, videoID)
	}
	return tracks, nil
}

// wrapFallbackErr classifies an engagement panel failure. Absence (no
// transcript endpoint, empty segments) keeps the no-transcript meaning;
// transport failures pass through so they surface as upstream errors.
func wrapFallbackErr(videoID string, err error) error {
	if errors.Is(err, engine.ErrNoTranscript) {
		return fmt.Errorf("%w for video %s", engine.ErrNoTranscript, videoID)
	}
	return fmt.Errorf("transcript fetch for video %s: %w", videoID, err)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Skips tracks that require PoToken — those only work in a browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return tracks[0], false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches a YouTube timedtext caption URL and parses it into
// timed segments, sorted by start time.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.TranscriptSegment, error) {
	engine.IncrTimedTextRequests()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		engine.IncrFetchErrors()
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

// parseTimedText decodes timedtext XML into ordered transcript segments.
func parseTimedText(body []byte) ([]engine.TranscriptSegment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]engine.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		segs = append(segs, engine.TranscriptSegment{
			Start:    line.Start,
			Duration: line.Dur,
			Text:     text,
		})
	}
	if len(segs) == 0 {
		return nil, errors.New("empty transcript segments")
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	return segs, nil
}

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", fmt.Errorf("%w: getTranscriptEndpoint not found in engagement panels", engine.ErrNoTranscript)
}

// parseTranscriptSegments extracts timed segments from a /get_transcript JSON response.
// startMs/endMs arrive as decimal strings of milliseconds.
func parseTranscriptSegments(resp ytGetTranscriptResp) []engine.TranscriptSegment {
	var segs []engine.TranscriptSegment
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		initial := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range initial {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var sb strings.Builder
			for _, run := range r.Snippet.Runs {
				if run.Text != "" {
					if sb.Len() > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(run.Text)
				}
			}
			text := engine.CollapseWhitespace(sb.String())
			if text == "" {
				continue
			}
			startMs, _ := strconv.ParseFloat(r.StartMs, 64)
			endMs, _ := strconv.ParseFloat(r.EndMs, 64)
			dur := (endMs - startMs) / 1000
			if dur < 0 {
				dur = 0
			}
			segs = append(segs, engine.TranscriptSegment{
				Start:    startMs / 1000,
				Duration: dur,
				Text:     text,
			})
		}
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	return segs
}

// fetchTranscriptViaEngagementPanel fetches a transcript via:
//  1. POST /next → get engagementPanels containing transcript continuation token
//  2. POST /get_transcript with the token → JSON segments
//
// This approach works from datacenter IPs where caption track URLs are gated.
func fetchTranscriptViaEngagementPanel(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	visitorData := generateVisitorData()

	nextData, err := postInnerTubeWEB(ctx, ytNextURL, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	transcriptData, err := postInnerTubeWEB(ctx, ytGetTranscriptURL, map[string]any{
		"params": token,
		"context": map[string]any{
			"client": ytWebClientCtx{
				ClientName:    "WEB",
				ClientVersion: ytWebVersion,
				VisitorData:   visitorData,
				Hl:            "en",
				Gl:            "US",
			},
		},
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	segs := parseTranscriptSegments(transcriptResp)
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty transcript segments", engine.ErrNoTranscript)
	}
	return segs, nil
}

// JoinSegments space-joins segment texts in order — the plain transcript is
// defined as exactly this projection of the timed transcript.
func JoinSegments(segs []engine.TranscriptSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
