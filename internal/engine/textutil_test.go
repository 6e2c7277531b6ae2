package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"apostrophe entity", "don&#39;t stop", "don't stop"},
		{"ampersand", "rock &amp; roll", "rock & roll"},
		{"formatting tags", "<i>really</i> <b>loud</b>", "really loud"},
		{"surrounding space", "  padded \n", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCaption(tt.in))
		})
	}
}

func TestFormatMetrics(t *testing.T) {
	IncrTitleLookup()
	IncrTranscriptRequest()

	out := FormatMetrics()
	for _, k := range []string{"title_lookups", "transcript_requests", "transcript_errors", "cache_hits"} {
		assert.Contains(t, out, k+" ")
	}
	assert.GreaterOrEqual(t, GetMetrics()["title_lookups"], int64(1))
}

func TestConfigRetry(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 0, c.Retry().MaxRetries, "remote calls are attempted once by default")

	c.HTTPRetries = 2
	assert.Equal(t, 2, c.Retry().MaxRetries)

	c.HTTPRetries = -1
	assert.Equal(t, 0, c.Retry().MaxRetries)
}
