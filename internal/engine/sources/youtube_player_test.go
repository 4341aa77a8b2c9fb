package sources

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1};var next = 2`, `{"a":1}`},
		{"nested", `{"a":{"b":{"c":3}}}tail`, `{"a":{"b":{"c":3}}}`},
		{"braces in strings", `{"a":"}{","b":"\"}"}rest`, `{"a":"}{","b":"\"}"}`},
		{"not an object", `[1,2,3]`, ""},
		{"unterminated", `{"a":1`, ""},
		{"empty", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractJSON([]byte(tc.in))
			if string(got) != tc.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPlayabilityErr(t *testing.T) {
	mk := func(status, reason string) *innertubePlayerResp {
		pr := &innertubePlayerResp{}
		if status != "" {
			pr.PlayabilityStatus = &struct {
				Status string `json:"status"`
				Reason string `json:"reason"`
			}{Status: status, Reason: reason}
		}
		return pr
	}

	if err := playabilityErr(mk("", "")); err != nil {
		t.Errorf("missing playability status should be nil, got %v", err)
	}
	if err := playabilityErr(mk("OK", "")); err != nil {
		t.Errorf("OK should be nil, got %v", err)
	}

	for _, status := range []string{"ERROR", "LOGIN_REQUIRED", "UNPLAYABLE", "AGE_CHECK_REQUIRED", "LIVE_STREAM_OFFLINE"} {
		err := playabilityErr(mk(status, "Video unavailable"))
		if !errors.Is(err, engine.ErrVideoUnavailable) {
			t.Errorf("status %s: want ErrVideoUnavailable, got %v", status, err)
		}
	}

	// Unknown statuses surface as generic upstream errors, not taxonomy hits.
	err := playabilityErr(mk("CONTENT_CHECK_REQUIRED", "confirm your age"))
	if err == nil || errors.Is(err, engine.ErrVideoUnavailable) {
		t.Errorf("unknown status should be a generic error, got %v", err)
	}
}

const samplePlayerJSON = `{
  "playabilityStatus": {"status": "OK"},
  "videoDetails": {
    "videoId": "dQw4w9WgXcQ",
    "title": "Never Gonna Give You Up",
    "author": "Rick Astley",
    "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw",
    "lengthSeconds": "213",
    "viewCount": "1400000000",
    "shortDescription": "The official video.",
    "isLiveContent": false,
    "isPrivate": false
  },
  "captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
    {"baseUrl": "https://www.youtube.com/api/timedtext?lang=en&kind=asr", "name": {"runs": [{"text": "English (auto-generated)"}]}, "languageCode": "en", "kind": "asr"},
    {"baseUrl": "https://www.youtube.com/api/timedtext?lang=es", "name": {"simpleText": "Spanish"}, "languageCode": "es"}
  ]}}
}`

func TestDecodePlayerResponse(t *testing.T) {
	var pr innertubePlayerResp
	if err := json.Unmarshal([]byte(samplePlayerJSON), &pr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pr.VideoDetails == nil || pr.VideoDetails.Title != "Never Gonna Give You Up" {
		t.Fatalf("videoDetails not decoded: %+v", pr.VideoDetails)
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) != 2 {
		t.Fatalf("expected 2 caption tracks, got %d", len(tracks))
	}
	if tracks[0].Name.text() != "English (auto-generated)" {
		t.Errorf("runs track name: %q", tracks[0].Name.text())
	}
	if tracks[1].Name.text() != "Spanish" {
		t.Errorf("simpleText track name: %q", tracks[1].Name.text())
	}
}

func TestExtractPlayerFromWatchPage(t *testing.T) {
	page := []byte(`<html><script>var ytInitialPlayerResponse = ` + samplePlayerJSON + `;var meta = {};</script></html>`)
	idx := bytes.Index(page, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		t.Fatal("marker not found")
	}
	data := extractJSON(page[idx+len(ytInitialPlayerResponseMarker):])
	if data == nil {
		t.Fatal("extractJSON returned nil")
	}
	var pr innertubePlayerResp
	if err := json.Unmarshal(data, &pr); err != nil {
		t.Fatalf("decode extracted JSON: %v", err)
	}
	if pr.VideoDetails.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("videoId = %q", pr.VideoDetails.VideoID)
	}
}
