package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth helpers for engine consumers.
// Watch-page scraping rotates browser user agents; API calls use fixed UAs.
func RandomUserAgent() string { return stealth.RandomUserAgent() }
