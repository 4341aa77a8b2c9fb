package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	DefaultLanguage    string // preferred transcript language when the caller gives none
	MaxTranscriptRunes int    // cap on transcript text returned to the host (0 = no cap)
	FetchTimeout       time.Duration // deadline for one whole fetch operation, fallbacks included (0 = unbounded)
	HTTPClient         *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for the sources sub-package.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	cfg = c
	Cfg = &cfg
}
