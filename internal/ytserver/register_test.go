package ytserver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

func init() {
	engine.Init(engine.Config{DefaultLanguage: "en"})
}

func TestLangPrefs(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{"en"}},
		{"en", []string{"en"}},
		{"es", []string{"es", "en"}},
		{"de", []string{"de", "en"}},
	}
	for _, tc := range cases {
		got := langPrefs(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("langPrefs(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("langPrefs(%q) = %v, want %v", tc.in, got, tc.want)
				break
			}
		}
	}
}

func TestUserErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantPart string
	}{
		{"invalid id", engine.ErrInvalidVideoID, "could not extract a video ID"},
		{"unavailable", fmt.Errorf("%w: private", engine.ErrVideoUnavailable), "unavailable"},
		{"disabled", fmt.Errorf("%w for video x", engine.ErrTranscriptsDisabled), "transcripts are disabled"},
		{"no transcript", fmt.Errorf("%w for video x", engine.ErrNoTranscript), "no transcript found"},
		{"upstream", fmt.Errorf("HTTP 500: boom"), "error retrieving data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := userError("https://youtu.be/dQw4w9WgXcQ", tc.err)
			if got == nil {
				t.Fatal("userError returned nil")
			}
			if !strings.Contains(got.Error(), tc.wantPart) {
				t.Errorf("message %q missing %q", got.Error(), tc.wantPart)
			}
			if !strings.Contains(got.Error(), "dQw4w9WgXcQ") {
				t.Errorf("message %q should echo the caller reference", got.Error())
			}
		})
	}
}

// Captions-disabled must never degrade into the generic upstream message.
func TestUserErrorDisabledNotGeneric(t *testing.T) {
	err := userError("dQw4w9WgXcQ", fmt.Errorf("wrapped: %w", engine.ErrTranscriptsDisabled))
	if strings.Contains(err.Error(), "error retrieving data") {
		t.Errorf("disabled error fell through to generic: %q", err.Error())
	}
}
