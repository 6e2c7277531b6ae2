package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

const defaultTitleTimeout = 10 * time.Second

var errEmptyTitle = errors.New("oembed: empty title")

type oembedResp struct {
	Title string `json:"title"`
}

// Metadata looks up the video title via oEmbed. It never fails: on any error the
// title falls back to the video id and a warning is logged.
func (y *YouTube) Metadata(ctx context.Context, videoID string) transcript.Metadata {
	engine.IncrTitleLookup()
	meta := transcript.Metadata{ID: videoID, Title: videoID}

	key := engine.CacheKey("title", videoID)
	if title, ok := engine.CacheLoadJSON[string](ctx, key); ok {
		meta.Title = title
		return meta
	}

	title, err := y.fetchTitle(ctx, videoID)
	if err != nil {
		engine.IncrTitleFallback()
		slog.Warn("youtube: could not fetch video title",
			slog.String("id", videoID), slog.Any("error", err))
		return meta
	}
	engine.CacheStoreJSON(ctx, key, title)
	meta.Title = title
	return meta
}

// fetchTitle makes a single bounded oEmbed request.
func (y *YouTube) fetchTitle(ctx context.Context, videoID string) (string, error) {
	timeout := engine.Cfg.TitleTimeout
	if timeout <= 0 {
		timeout = defaultTitleTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", transcript.WatchURL(videoID))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.OEmbedURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", engine.UserAgentBot)
	resp, err := y.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("oembed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed: HTTP %d", resp.StatusCode)
	}

	var out oembedResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&out); err != nil {
		return "", fmt.Errorf("oembed: decode: %w", err)
	}
	if out.Title == "" {
		return "", errEmptyTitle
	}
	return out.Title, nil
}
