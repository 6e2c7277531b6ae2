package transcriptserver

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// TranscriptInput is the input for the youtube_transcript tool.
type TranscriptInput struct {
	URL       string `json:"url" jsonschema:"YouTube video URL (watch page, youtu.be, embed or /v/ link)"`
	Languages string `json:"languages,omitempty" jsonschema:"Comma-separated language codes, e.g. en,de. Empty tries en first, then every available language"`
	Format    string `json:"format,omitempty" jsonschema:"Rendering to return: timestamped, prose or both (default both)"`
}

// LanguageTranscript is one fetched language in both renderings.
type LanguageTranscript struct {
	Language    string `json:"language"`
	Name        string `json:"name,omitempty"`
	Segments    int    `json:"segments"`
	Duration    string `json:"duration"`
	Timestamped string `json:"timestamped,omitempty"`
	Prose       string `json:"prose,omitempty"`
}

// LanguageFailure is a requested language that could not be fetched.
type LanguageFailure struct {
	Language string `json:"language"`
	Error    string `json:"error"`
}

// TranscriptOutput is the youtube_transcript result.
type TranscriptOutput struct {
	VideoID     string               `json:"video_id"`
	Title       string               `json:"title"`
	Transcripts []LanguageTranscript `json:"transcripts"`
	Failures    []LanguageFailure    `json:"failures,omitempty"`
}

// LanguagesInput is the input for the youtube_transcript_languages tool.
type LanguagesInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL"`
}

// LanguagesOutput lists the caption tracks of a video.
type LanguagesOutput struct {
	VideoID   string               `json:"video_id"`
	Languages transcript.Languages `json:"languages"`
}

const (
	formatBoth        = "both"
	formatTimestamped = string(transcript.KindTimestamped)
	formatProse       = string(transcript.KindProse)
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", formatBoth:
		return formatBoth, nil
	case formatTimestamped, formatProse:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: use timestamped, prose or both", s)
	}
}
