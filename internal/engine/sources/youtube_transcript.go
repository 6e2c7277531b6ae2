package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// YouTube caption fetching.
// Tracks:   scrape watch page ytInitialPlayerResponse → captionTracks (works from any IP)
// Fallback: ANDROID Innertube /player → captionTracks
// Segments: caption track baseUrl → timedtext XML

var (
	ErrNoCaptions      = errors.New("no captions available")
	ErrTrackNotFound   = errors.New("no transcript found for language")
	ErrPoTokenRequired = errors.New("caption track requires PoToken")
	ErrRateLimited     = errors.New("rate limited by YouTube")
)

// statusError describes a non-200 reply; throttling statuses wrap ErrRateLimited.
func statusError(what string, code int) error {
	if engine.IsRetryableStatus(code) {
		return fmt.Errorf("%s: %w (HTTP %d)", what, ErrRateLimited, code)
	}
	return fmt.Errorf("%s: HTTP %d", what, code)
}

// fetchBody sends newReq through engine.RetryHTTP and reads at most limit bytes
// of a 200 reply. A throttling status wraps ErrRateLimited even after RetryHTTP
// has turned it into its own error.
func (y *YouTube) fetchBody(ctx context.Context, what string, limit int64, newReq func() (*http.Request, error)) ([]byte, error) {
	var status int
	resp, err := engine.RetryHTTP(ctx, engine.Cfg.Retry(), func() (*http.Response, error) {
		status = 0
		req, err := newReq()
		if err != nil {
			return nil, err
		}
		resp, err := y.client().Do(req)
		if err == nil {
			status = resp.StatusCode
		}
		return resp, err
	})
	if err != nil {
		if engine.IsRetryableStatus(status) {
			return nil, fmt.Errorf("%w: %w", statusError(what, status), err)
		}
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(what, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", what, err)
	}
	return body, nil
}

// YouTube talks to the YouTube watch page, Innertube and oEmbed endpoints.
// Caption tracks go through the engine cache, so listing languages and
// fetching several of them loads the watch page once per cache TTL.
type YouTube struct {
	BaseURL    string       // watch page and Innertube host
	OEmbedURL  string       // oEmbed endpoint for titles
	HTTPClient *http.Client // nil = engine.Cfg.HTTPClient
}

// NewYouTube returns a client for the public YouTube endpoints.
func NewYouTube() *YouTube {
	return &YouTube{BaseURL: ytBaseURL, OEmbedURL: ytBaseURL + "/oembed"}
}

func (y *YouTube) client() *http.Client {
	if y.HTTPClient != nil {
		return y.HTTPClient
	}
	return engine.Cfg.HTTPClient
}

// ListLanguages returns the caption tracks available for the video,
// manually created tracks first.
func (y *YouTube) ListLanguages(ctx context.Context, videoID string) (transcript.Languages, error) {
	engine.IncrLanguageLookup()

	tracks, err := y.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	langs := make([]transcript.Language, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, transcript.Language{
			Code:      t.LanguageCode,
			Name:      t.Name.String(),
			Generated: t.Kind == "asr",
		})
	}
	slices.SortStableFunc(langs, func(a, b transcript.Language) int {
		switch {
		case a.Generated == b.Generated:
			return 0
		case b.Generated:
			return -1
		default:
			return 1
		}
	})
	return transcript.NewLanguages(langs...), nil
}

// FetchSegments fetches the caption segments of one language.
// A manually created track wins over an auto-generated one.
func (y *YouTube) FetchSegments(ctx context.Context, videoID, lang string) ([]transcript.Segment, error) {
	engine.IncrTranscriptRequest()

	key := engine.CacheKey("segments", videoID, lang)
	if segs, ok := engine.CacheLoadJSON[[]transcript.Segment](ctx, key); ok {
		return segs, nil
	}

	segs, err := y.fetchSegments(ctx, videoID, lang)
	if err != nil {
		engine.IncrTranscriptError()
		return nil, err
	}
	engine.CacheStoreJSON(ctx, key, segs)
	return segs, nil
}

func (y *YouTube) fetchSegments(ctx context.Context, videoID, lang string) ([]transcript.Segment, error) {
	tracks, err := y.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	track, err := pickTrack(tracks, lang)
	if err != nil {
		return nil, err
	}
	return y.fetchTimedText(ctx, track.BaseURL)
}

// captionTracks loads the track list from the watch page, falling back to the ANDROID player.
func (y *YouTube) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	key := engine.CacheKey("tracks", videoID)
	if tracks, ok := engine.CacheLoadJSON[[]captionTrack](ctx, key); ok {
		return tracks, nil
	}

	tracks, err := y.tracksFromWatchPage(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("youtube: watch page failed, trying player",
			slog.String("id", videoID), slog.Any("error", err))

		pr, perr := y.player(ctx, androidClient, videoID)
		if perr == nil {
			tracks, perr = pr.tracks()
		}
		if perr != nil {
			return nil, errors.Join(perr, fmt.Errorf("watch page: %w", err))
		}
	}

	engine.CacheStoreJSON(ctx, key, tracks)
	return tracks, nil
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// tracksFromWatchPage scrapes the watch page HTML for ytInitialPlayerResponse.
func (y *YouTube) tracksFromWatchPage(ctx context.Context, videoID string) ([]captionTrack, error) {
	body, err := y.watchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var pr playerResponse
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return pr.tracks()
}

// watchPage fetches the watch page, through the stealth browser client when one is configured.
func (y *YouTube) watchPage(ctx context.Context, videoID string) ([]byte, error) {
	watchURL := y.BaseURL + "/watch?v=" + videoID

	if bc := engine.Cfg.BrowserClient; bc != nil && y.HTTPClient == nil {
		headers := engine.ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := bc.Do(http.MethodGet, watchURL, headers, nil)
		if err != nil {
			return nil, fmt.Errorf("watch page: %w", err)
		}
		if status != http.StatusOK {
			return nil, statusError("watch page", status)
		}
		return data, nil
	}

	return y.fetchBody(ctx, "watch page", 6*1024*1024, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return req, nil
	})
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects the track for lang: manual first, then auto-generated.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, error) {
	var gated bool
	for _, wantASR := range []bool{false, true} {
		for _, t := range tracks {
			if t.LanguageCode != lang || (t.Kind == "asr") != wantASR {
				continue
			}
			if needsPoToken(t.BaseURL) {
				gated = true
				continue
			}
			return t, nil
		}
	}
	if gated {
		return captionTrack{}, fmt.Errorf("%w: %s", ErrPoTokenRequired, lang)
	}

	codes := make([]string, 0, len(tracks))
	for _, t := range tracks {
		codes = append(codes, t.LanguageCode)
	}
	return captionTrack{}, fmt.Errorf("%w %q (available: %s)", ErrTrackNotFound, lang, strings.Join(codes, ", "))
}

// --- Timedtext XML types ---

// timedText covers both the classic format (<text start dur>) and srv3 (<body><p t d>).
type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
	Body struct {
		Paragraphs []struct {
			T    string `xml:"t,attr"` // milliseconds
			D    string `xml:"d,attr"` // milliseconds
			Text string `xml:",innerxml"`
		} `xml:"p"`
	} `xml:"body"`
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (y *YouTube) fetchTimedText(ctx context.Context, baseURL string) ([]transcript.Segment, error) {
	baseURL = strings.Replace(baseURL, "&fmt=srv3", "", 1)

	body, err := y.fetchBody(ctx, "fetch timedtext", 8*1024*1024, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

// parseTimedText converts a timedtext document into segments, skipping empty cues.
func parseTimedText(body []byte) ([]transcript.Segment, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty timedtext response")
	}
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]transcript.Segment, 0, len(tt.Lines)+len(tt.Body.Paragraphs))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start, err := parseSeconds(line.Start, 1)
		if err != nil {
			return nil, fmt.Errorf("bad start %q: %w", line.Start, err)
		}
		dur, _ := parseSeconds(line.Dur, 1)
		segs = append(segs, transcript.Segment{Text: engine.CleanCaption(line.Text), Start: start, Duration: dur})
	}
	for _, p := range tt.Body.Paragraphs {
		text := engine.CleanCaption(p.Text)
		if text == "" {
			continue
		}
		start, err := parseSeconds(p.T, 1000)
		if err != nil {
			return nil, fmt.Errorf("bad start %q: %w", p.T, err)
		}
		dur, _ := parseSeconds(p.D, 1000)
		segs = append(segs, transcript.Segment{Text: text, Start: start, Duration: dur})
	}
	return segs, nil
}

// parseSeconds parses a numeric attribute and divides by unit; empty means 0.
func parseSeconds(v string, unit float64) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return max(f/unit, 0), nil
}
