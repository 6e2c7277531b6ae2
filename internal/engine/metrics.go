package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TitleLookups       atomic.Int64
	TitleFallbacks     atomic.Int64
	LanguageLookups    atomic.Int64
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	FilesWritten       atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"title_lookups":       metrics.TitleLookups.Load(),
		"title_fallbacks":     metrics.TitleFallbacks.Load(),
		"language_lookups":    metrics.LanguageLookups.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_errors":   metrics.TranscriptErrors.Load(),
		"files_written":       metrics.FilesWritten.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"title_lookups", "title_fallbacks",
		"language_lookups",
		"transcript_requests", "transcript_errors",
		"files_written",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ and cli/.
func IncrTitleLookup()       { metrics.TitleLookups.Add(1) }
func IncrTitleFallback()     { metrics.TitleFallbacks.Add(1) }
func IncrLanguageLookup()    { metrics.LanguageLookups.Add(1) }
func IncrTranscriptRequest() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptError()   { metrics.TranscriptErrors.Add(1) }
func IncrFilesWritten(n int) { metrics.FilesWritten.Add(int64(n)) }
