package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	errURLRequired   = errors.New("url is required")
	errInvalidURL    = errors.New("invalid YouTube URL")
	errNoTranscripts = errors.New("no transcripts available for this video")
	errAllFailed     = errors.New("failed to fetch transcripts in any of the requested languages")
)

// RegisterTools registers the transcript tools on the given MCP server:
// youtube_transcript, youtube_transcript_languages.
func RegisterTools(server *mcp.Server, yt transcript.Service) {
	h := &handlers{yt: yt}
	registerTranscript(server, h)
	registerLanguages(server, h)
}

func registerTranscript(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the captions of a YouTube video. Returns, per language, a timestamped transcript ([HH:MM:SS] text per caption line) and a prose transcript (sentences grouped into paragraphs of three). Languages default to English first, then every available track.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		out, err := h.transcript(ctx, input)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		return nil, out, nil
	})
}

func registerLanguages(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript_languages",
		Description: "List the caption languages available for a YouTube video. Manually created tracks come first; auto-generated ones are flagged.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input LanguagesInput) (*mcp.CallToolResult, LanguagesOutput, error) {
		out, err := h.languages(ctx, input)
		if err != nil {
			return nil, LanguagesOutput{}, err
		}
		return nil, out, nil
	})
}

type handlers struct {
	yt transcript.Service
}

func videoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errURLRequired
	}
	id, ok := transcript.ExtractVideoID(rawURL)
	if !ok {
		return "", fmt.Errorf("%w: %s", errInvalidURL, rawURL)
	}
	return id, nil
}

func (h *handlers) transcript(ctx context.Context, input TranscriptInput) (TranscriptOutput, error) {
	id, err := videoID(input.URL)
	if err != nil {
		return TranscriptOutput{}, err
	}
	format, err := parseFormat(input.Format)
	if err != nil {
		return TranscriptOutput{}, err
	}

	cacheKey := engine.CacheKey("tool_transcript", id, input.Languages, format)
	if out, ok := engine.CacheLoadJSON[TranscriptOutput](ctx, cacheKey); ok {
		return out, nil
	}

	meta := h.yt.Metadata(ctx, id)
	langs, err := h.yt.ListLanguages(ctx, id)
	if err != nil {
		slog.Warn("youtube_transcript: list languages failed", slog.String("video_id", id), slog.Any("error", err))
	}
	if len(langs) == 0 {
		return TranscriptOutput{}, errNoTranscripts
	}

	res, err := transcript.FetchAll(ctx, h.yt, id, transcript.RequestedLanguages(input.Languages, langs))
	if err != nil {
		return TranscriptOutput{}, err
	}

	out := TranscriptOutput{VideoID: id, Title: meta.Title}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, LanguageFailure{
			Language: f.Code,
			Error:    engine.TruncateRunes(f.Summary(), 300, "..."),
		})
	}
	if res.Set.Len() == 0 {
		slog.Info("youtube_transcript: nothing fetched", slog.String("video_id", id), slog.Int("failures", len(res.Failures)))
		return TranscriptOutput{}, errAllFailed
	}

	for _, code := range res.Set.Languages() {
		segs, _ := res.Set.Get(code)
		name, _ := langs.Name(code)
		t := LanguageTranscript{
			Language: code,
			Name:     name,
			Segments: len(segs),
			Duration: transcript.FormatTimestamp(transcript.Duration(segs)),
		}
		if format != formatProse {
			t.Timestamped = transcript.RenderTimestamped(segs)
		}
		if format != formatTimestamped {
			t.Prose = transcript.RenderProse(segs)
		}
		out.Transcripts = append(out.Transcripts, t)
	}

	engine.CacheStoreJSON(ctx, cacheKey, out)
	return out, nil
}

func (h *handlers) languages(ctx context.Context, input LanguagesInput) (LanguagesOutput, error) {
	id, err := videoID(input.URL)
	if err != nil {
		return LanguagesOutput{}, err
	}
	langs, err := h.yt.ListLanguages(ctx, id)
	if err != nil {
		return LanguagesOutput{}, fmt.Errorf("list languages: %w", err)
	}
	return LanguagesOutput{VideoID: id, Languages: langs}, nil
}
