package transcriptserver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

type fakeService struct {
	langs  transcript.Languages
	tracks map[string][]transcript.Segment
}

func (f *fakeService) Metadata(_ context.Context, id string) transcript.Metadata {
	return transcript.Metadata{ID: id, Title: "Sample Talk"}
}

func (f *fakeService) ListLanguages(context.Context, string) (transcript.Languages, error) {
	if f.langs == nil {
		return nil, errors.New("captions disabled")
	}
	return f.langs, nil
}

func (f *fakeService) FetchSegments(_ context.Context, _, lang string) ([]transcript.Segment, error) {
	segs, ok := f.tracks[lang]
	if !ok {
		return nil, errors.New("no transcript for " + lang)
	}
	return segs, nil
}

func newFake() *fakeService {
	return &fakeService{
		langs: transcript.NewLanguages(
			transcript.Language{Code: "de", Name: "German"},
			transcript.Language{Code: "en", Name: "English", Generated: true},
		),
		tracks: map[string][]transcript.Segment{
			"en": {
				{Text: "Hello there.", Start: 0, Duration: 2},
				{Text: "Second line!", Start: 62, Duration: 3},
			},
		},
	}
}

func TestTranscriptTool(t *testing.T) {
	h := &handlers{yt: newFake()}

	out, err := h.transcript(context.Background(), TranscriptInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", out.VideoID)
	assert.Equal(t, "Sample Talk", out.Title)
	require.Len(t, out.Transcripts, 1)
	en := out.Transcripts[0]
	assert.Equal(t, "en", en.Language)
	assert.Equal(t, "English", en.Name)
	assert.Equal(t, 2, en.Segments)
	assert.Equal(t, "00:01:05", en.Duration)
	assert.Equal(t, "[00:00:00] Hello there.\n[00:01:02] Second line!", en.Timestamped)
	assert.Equal(t, "Hello there. Second line!", en.Prose)

	require.Len(t, out.Failures, 1, "auto-selection also tries de")
	assert.Equal(t, "de", out.Failures[0].Language)
}

func TestTranscriptToolFormat(t *testing.T) {
	h := &handlers{yt: newFake()}

	out, err := h.transcript(context.Background(), TranscriptInput{
		URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Languages: "en", Format: "Prose",
	})
	require.NoError(t, err)
	require.Len(t, out.Transcripts, 1)
	assert.Empty(t, out.Transcripts[0].Timestamped)
	assert.NotEmpty(t, out.Transcripts[0].Prose)
	assert.Empty(t, out.Failures)

	_, err = h.transcript(context.Background(), TranscriptInput{
		URL: "https://youtu.be/dQw4w9WgXcQ", Format: "srt",
	})
	assert.Error(t, err)
}

func TestTranscriptToolErrors(t *testing.T) {
	tests := []struct {
		name  string
		yt    *fakeService
		input TranscriptInput
		want  error
	}{
		{"missing url", newFake(), TranscriptInput{}, errURLRequired},
		{"invalid url", newFake(), TranscriptInput{URL: "https://example.com/watch"}, errInvalidURL},
		{"no captions", &fakeService{}, TranscriptInput{URL: "https://youtu.be/dQw4w9WgXcQ"}, errNoTranscripts},
		{"all fail", newFake(), TranscriptInput{URL: "https://youtu.be/dQw4w9WgXcQ", Languages: "fr, es"}, errAllFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &handlers{yt: tt.yt}
			_, err := h.transcript(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLanguagesTool(t *testing.T) {
	h := &handlers{yt: newFake()}

	out, err := h.languages(context.Background(), LanguagesInput{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", out.VideoID)
	assert.Equal(t, []string{"de", "en"}, out.Languages.Codes())

	h = &handlers{yt: &fakeService{}}
	_, err = h.languages(context.Background(), LanguagesInput{URL: "https://youtu.be/dQw4w9WgXcQ"})
	assert.ErrorContains(t, err, "captions disabled")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"", formatBoth, false},
		{"both", formatBoth, false},
		{" TIMESTAMPED ", formatTimestamped, false},
		{"prose", formatProse, false},
		{"vtt", "", true},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
