// go_transcript fetches YouTube captions and writes them as a timestamped
// transcript and a prose transcript per language.
//
// The default command is interactive; `languages`, `history` and `serve`
// (MCP server exposing youtube_transcript and youtube_transcript_languages)
// are subcommands.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/joho/godotenv"

	"github.com/anatolykoptev/go_transcript/internal/cli"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/history"
)

var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	initLogging(env.Str("LOG_LEVEL", "warn"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	initEngine()
	store := openHistory(ctx)

	code := cli.Execute(ctx, &cli.App{
		YouTube:          sources.NewYouTube(),
		History:          store,
		OutputDir:        engine.Cfg.OutputDir,
		DefaultLanguages: engine.Cfg.DefaultLanguages,
		Version:          version,
		MCPPort:          env.Str("MCP_PORT", "8892"),
	}, os.Args[1:])

	if err := store.Close(); err != nil {
		slog.Warn("history close failed", slog.Any("error", err))
	}
	engine.CloseCache()
	stop()
	os.Exit(code)
}

func initLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func initEngine() {
	c := engine.Config{
		HTTPTimeout:          env.Duration("HTTP_TIMEOUT", 15*time.Second),
		TitleTimeout:         env.Duration("TITLE_TIMEOUT", 10*time.Second),
		HTTPRetries:          env.Int("HTTP_RETRIES", 0),
		OutputDir:            env.Str("OUTPUT_DIR", "."),
		DefaultLanguages:     env.List("DEFAULT_LANGUAGES", ""),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	// The stealth client is only worth building behind a proxy pool:
	// without one it talks from the same IP as HTTPClient.
	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			bc, err := stealth.NewClient(
				stealth.WithTimeout(15),
				stealth.WithProxyPool(pool),
			)
			if err != nil {
				slog.Error("stealth client init failed", slog.Any("error", err))
			} else {
				c.BrowserClient = bc
				slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
			}
		}
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 30*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

func openHistory(ctx context.Context) history.Store {
	store, err := history.Open(ctx, env.Str("DATABASE_URL", ""), env.Str("HISTORY_DB", ""))
	if err != nil {
		slog.Warn("history store unavailable, exports will not be recorded", slog.Any("error", err))
		return history.Nop{}
	}
	return store
}
