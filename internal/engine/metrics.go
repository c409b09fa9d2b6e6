package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests    atomic.Int64
	VideoInfoRequests     atomic.Int64
	BrowserSessions       atomic.Int64
	BrowserSessionsClosed atomic.Int64
	CaptionsNotFound      atomic.Int64
	CaptionFetches        atomic.Int64
	CaptionFetchErrors    atomic.Int64
	ParseErrors           atomic.Int64
	LLMCalls              atomic.Int64
	LLMErrors             atomic.Int64
	APIRequests           atomic.Int64
	APIRejected           atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"transcript_requests", "video_info_requests",
	"browser_sessions", "browser_sessions_closed", "browser_sessions_open",
	"captions_not_found", "caption_fetches", "caption_fetch_errors",
	"parse_errors",
	"llm_calls", "llm_errors",
	"api_requests", "api_rejected",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	opened := metrics.BrowserSessions.Load()
	closed := metrics.BrowserSessionsClosed.Load()
	return map[string]int64{
		"transcript_requests":     metrics.TranscriptRequests.Load(),
		"video_info_requests":     metrics.VideoInfoRequests.Load(),
		"browser_sessions":        opened,
		"browser_sessions_closed": closed,
		"browser_sessions_open":   opened - closed,
		"captions_not_found":      metrics.CaptionsNotFound.Load(),
		"caption_fetches":         metrics.CaptionFetches.Load(),
		"caption_fetch_errors":    metrics.CaptionFetchErrors.Load(),
		"parse_errors":            metrics.ParseErrors.Load(),
		"llm_calls":               metrics.LLMCalls.Load(),
		"llm_errors":              metrics.LLMErrors.Load(),
		"api_requests":            metrics.APIRequests.Load(),
		"api_rejected":            metrics.APIRejected.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the transcript sub-package.
func IncrTranscriptRequests()    { metrics.TranscriptRequests.Add(1) }
func IncrVideoInfoRequests()     { metrics.VideoInfoRequests.Add(1) }
func IncrBrowserSessions()       { metrics.BrowserSessions.Add(1) }
func IncrBrowserSessionsClosed() { metrics.BrowserSessionsClosed.Add(1) }
func IncrCaptionsNotFound()      { metrics.CaptionsNotFound.Add(1) }
func IncrCaptionFetches()        { metrics.CaptionFetches.Add(1) }
func IncrCaptionFetchErrors()    { metrics.CaptionFetchErrors.Add(1) }
func IncrParseErrors()           { metrics.ParseErrors.Add(1) }

// Incrementors for the api package.
func IncrAPIRequests() { metrics.APIRequests.Add(1) }
func IncrAPIRejected() { metrics.APIRejected.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
