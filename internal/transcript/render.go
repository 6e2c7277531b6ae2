package transcript

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// SentencesPerParagraph is the fixed grouping size of the prose rendering.
const SentencesPerParagraph = 3

// ws matches whitespace the way caption text needs it: ASCII, the
// U+001C..U+001F separators, NEL and Unicode separators (NBSP).
const ws = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	wsRunRe          = regexp.MustCompile(ws + `+`)
	wsBeforeTermRe   = regexp.MustCompile(ws + `+([.!?])`)
	sentenceBoundary = regexp.MustCompile(`[.!?]` + ws + `+`)
)

// FormatTimestamp renders seconds as HH:MM:SS, truncating fractions.
// Hours are not wrapped at 24.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// RenderTimestamped writes one "[HH:MM:SS] text" line per segment, in order.
func RenderTimestamped(segs []Segment) string {
	lines := make([]string, len(segs))
	for i, seg := range segs {
		lines[i] = "[" + FormatTimestamp(seg.Start) + "] " + strings.TrimSpace(seg.Text)
	}
	return strings.Join(lines, "\n")
}

// RenderProse joins all segment text into sentences grouped three to a paragraph.
func RenderProse(segs []Segment) string {
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text
	}
	full := strings.Join(texts, " ")
	full = wsRunRe.ReplaceAllString(full, " ")
	full = wsBeforeTermRe.ReplaceAllString(full, "$1")

	return strings.Join(GroupParagraphs(SplitSentences(full)), "\n\n")
}

// SplitSentences cuts text at whitespace that follows '.', '!' or '?'.
// Abbreviations ("Dr. Smith") and similar are split too; blank pieces are dropped.
func SplitSentences(text string) []string {
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	start := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(text, -1) {
		add(text[start : m[0]+1])
		start = m[1]
	}
	add(text[start:])
	return out
}

// GroupParagraphs joins every SentencesPerParagraph sentences into one paragraph.
// A shorter trailing group becomes the last paragraph.
func GroupParagraphs(sentences []string) []string {
	var paragraphs, current []string
	for _, s := range sentences {
		current = append(current, s)
		if len(current) >= SentencesPerParagraph {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	return paragraphs
}
