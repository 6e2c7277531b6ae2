package engine

import (
	"html"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgentBot identifies plain API requests (oEmbed, timedtext).
const UserAgentBot = "GoTranscript/1.0"

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// CleanCaption decodes HTML entities and strips formatting tags from caption text.
// Timedtext XML escapes entities twice (&amp;#39;); the XML decoder removes the first layer.
func CleanCaption(s string) string {
	return CleanHTML(html.UnescapeString(s))
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
