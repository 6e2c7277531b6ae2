package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00"},
		{"one hour one minute one second", 3661, "01:01:01"},
		{"fraction truncates", 59.999, "00:00:59"},
		{"minutes", 754.2, "00:12:34"},
		{"past a day does not wrap", 90000, "25:00:00"},
		{"three digit hours", 360000, "100:00:00"},
		{"negative clamps", -5, "00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.seconds))
		})
	}
}

func TestRenderTimestamped(t *testing.T) {
	segs := []Segment{
		{Text: "  hello there ", Start: 0, Duration: 1.5},
		{Text: "general kenobi", Start: 1.5, Duration: 2},
		{Text: "hello there", Start: 3661.7, Duration: 1},
	}
	out := RenderTimestamped(segs)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, len(segs))
	assert.Equal(t, "[00:00:00] hello there", lines[0])
	assert.Equal(t, "[00:00:01] general kenobi", lines[1])
	assert.Equal(t, "[01:01:01] hello there", lines[2], "duplicates are kept")
	for _, l := range lines {
		assert.Regexp(t, `^\[\d{2,}:\d{2}:\d{2}\] `, l)
	}
}

func TestRenderTimestampedEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTimestamped(nil))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"three terminators", "One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"no terminator", "just words here", []string{"just words here"}},
		{"trailing text", "Done. and then", []string{"Done.", "and then"}},
		{"abbreviation splits", "Dr. Smith is here.", []string{"Dr.", "Smith is here."}},
		{"decimal without space stays", "Pi is 3.14 today.", []string{"Pi is 3.14 today."}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestGroupParagraphs(t *testing.T) {
	sentences := []string{"s1.", "s2.", "s3.", "s4.", "s5.", "s6.", "s7."}
	paragraphs := GroupParagraphs(sentences)

	require.Len(t, paragraphs, 3)
	sizes := make([]int, len(paragraphs))
	for i, p := range paragraphs {
		sizes[i] = len(strings.Fields(p))
	}
	assert.Equal(t, []int{3, 3, 1}, sizes)
	assert.Equal(t, "s1. s2. s3.", paragraphs[0])
	assert.Equal(t, "s7.", paragraphs[2])

	assert.Equal(t, []string{"a. b."}, GroupParagraphs([]string{"a.", "b."}))
	assert.Empty(t, GroupParagraphs(nil))
}

func TestRenderProse(t *testing.T) {
	segs := []Segment{
		{Text: "Hello   world ."},
		{Text: "How are you ?"},
		{Text: "I am\nfine!"},
		{Text: "Thanks for asking."},
		{Text: "Bye"},
	}
	want := "Hello world. How are you? I am fine!\n\nThanks for asking. Bye"
	assert.Equal(t, want, RenderProse(segs))
}

func TestRenderProseSevenSentences(t *testing.T) {
	var segs []Segment
	for _, s := range []string{"One.", "Two.", "Three.", "Four.", "Five.", "Six.", "Seven."} {
		segs = append(segs, Segment{Text: s})
	}
	paragraphs := strings.Split(RenderProse(segs), "\n\n")
	assert.Equal(t, []string{"One. Two. Three.", "Four. Five. Six.", "Seven."}, paragraphs)
}

func TestRenderProseNonBreakingSpace(t *testing.T) {
	segs := []Segment{{Text: "word\u00a0\u00a0word\u00a0."}}
	assert.Equal(t, "word word.", RenderProse(segs))
}

func TestRenderProseSeparatorControls(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"file separator", "x\x1cy. z", "x y. z"},
		{"unit separator before terminator", "done\x1f. next", "done. next"},
		{"separator after terminator splits", "one.\x1dtwo.\x1ethree.\x1cfour.", "one. two. three.\n\nfour."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderProse([]Segment{{Text: tt.text}}))
		})
	}
}

func TestRender(t *testing.T) {
	segs := []Segment{{Text: "Hi.", Start: 2}}
	assert.Equal(t, "[00:00:02] Hi.", Render(KindTimestamped, segs))
	assert.Equal(t, "Hi.", Render(KindProse, segs))
}
