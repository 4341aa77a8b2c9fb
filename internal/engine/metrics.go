package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests      atomic.Int64
	TimedTranscriptRequests atomic.Int64
	VideoInfoRequests       atomic.Int64
	WatchPageRequests       atomic.Int64
	InnertubeRequests       atomic.Int64
	TimedTextRequests       atomic.Int64
	FetchErrors             atomic.Int64
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests":       metrics.TranscriptRequests.Load(),
		"timed_transcript_requests": metrics.TimedTranscriptRequests.Load(),
		"video_info_requests":       metrics.VideoInfoRequests.Load(),
		"watch_page_requests":       metrics.WatchPageRequests.Load(),
		"innertube_requests":        metrics.InnertubeRequests.Load(),
		"timedtext_requests":        metrics.TimedTextRequests.Load(),
		"fetch_errors":              metrics.FetchErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "timed_transcript_requests", "video_info_requests",
		"watch_page_requests", "innertube_requests", "timedtext_requests",
		"fetch_errors",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the ytserver package.
func IncrTranscriptRequests()      { metrics.TranscriptRequests.Add(1) }
func IncrTimedTranscriptRequests() { metrics.TimedTranscriptRequests.Add(1) }
func IncrVideoInfoRequests()       { metrics.VideoInfoRequests.Add(1) }

// Incrementors for the sources sub-package.
func IncrWatchPageRequests() { metrics.WatchPageRequests.Add(1) }
func IncrInnertubeRequests() { metrics.InnertubeRequests.Add(1) }
func IncrTimedTextRequests() { metrics.TimedTextRequests.Add(1) }
func IncrFetchErrors()       { metrics.FetchErrors.Add(1) }
