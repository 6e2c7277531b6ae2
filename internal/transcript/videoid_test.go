package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"legacy v", "https://www.youtube.com/v/dQw4w9WgXcQ#frag", "dQw4w9WgXcQ", true},
		{"mobile host", "https://m.youtube.com/watch?v=abc123", "abc123", true},
		{"not youtube", "https://vimeo.com/123456", "", false},
		{"watch without v first", "https://www.youtube.com/watch?feature=share&v=abc", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchURL(t *testing.T) {
	id, ok := ExtractVideoID(WatchURL("abc123"))
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
}
