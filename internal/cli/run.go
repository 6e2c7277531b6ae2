package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/history"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// RunOptions pre-supplies answers to the interactive prompts.
type RunOptions struct {
	URL          string
	Languages    string
	LanguagesSet bool // Languages was given explicitly, even if blank
	OutputDir    string
}

// Run performs one interactive fetch. A nil error covers both a completed run
// and the early returns where nothing could be fetched.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	p := newPrompter(a.in(), a.out())

	a.println("YouTube Transcript Fetcher")
	a.println(strings.Repeat("=", 30))

	id, err := a.askVideoID(ctx, p, opts.URL)
	if err != nil {
		return err
	}
	a.printf("\nVideo ID: %s\n", id)

	a.println("Fetching video title...")
	meta := a.YouTube.Metadata(ctx, id)
	if err := ctx.Err(); err != nil {
		return err
	}
	a.printf("Video title: %s\n", meta.Title)

	a.println("\nFetching available languages...")
	langs, err := a.YouTube.ListLanguages(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Error("list languages failed", slog.String("video_id", id), slog.Any("error", err))
		a.printf("Error fetching available languages: %s\n", transcript.Failure{Err: err}.Summary())
	}
	if len(langs) == 0 {
		a.println("No transcripts available for this video.")
		return nil
	}

	a.println("\nAvailable languages:")
	for _, l := range langs {
		a.printf("  %s: %s\n", l.Code, l.Name)
	}

	answer, err := a.askLanguages(ctx, p, opts)
	if err != nil {
		return err
	}
	codes := transcript.RequestedLanguages(answer, langs)

	a.printf("\nFetching transcripts in: %s\n", strings.Join(codes, ", "))
	res, err := transcript.FetchAll(ctx, a.YouTube, id, codes)
	if err != nil {
		return err
	}
	for _, code := range res.Attempted {
		if f, failed := res.Failure(code); failed {
			a.printf("Failed to fetch transcript in %s: %s\n", code, f.Summary())
			continue
		}
		a.printf("✓ Successfully fetched transcript in %s\n", code)
	}

	if res.Set.Len() == 0 {
		a.println("Failed to fetch transcripts in any of the requested languages.")
		return nil
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = a.OutputDir
	}
	for _, code := range res.Set.Languages() {
		segs, _ := res.Set.Get(code)
		if err := a.save(ctx, dir, meta, code, segs); err != nil {
			slog.Error("save transcript failed", slog.String("lang", code), slog.Any("error", err))
			a.printf("Error saving files: %v\n", err)
		}
	}

	a.println("\nTranscript processing complete!")
	a.printf("Languages processed: %s\n", strings.Join(res.Set.Languages(), ", "))
	a.printf("Total segments across all languages: %d\n", res.Set.TotalSegments())
	first, _ := res.Set.Get(res.Set.Languages()[0])
	if len(first) > 0 {
		a.printf("Duration: %s\n", transcript.FormatTimestamp(transcript.Duration(first)))
	}

	slog.Debug("run finished", slog.String("metrics", engine.FormatMetrics()))
	return nil
}

func (a *App) askVideoID(ctx context.Context, p *prompter, preset string) (string, error) {
	for {
		url := strings.TrimSpace(preset)
		preset = ""
		if url == "" {
			var err error
			if url, err = p.ask(ctx, "\nEnter YouTube video URL: "); err != nil {
				return "", err
			}
		}
		if url == "" {
			a.println("Please enter a valid URL.")
			continue
		}
		if id, ok := transcript.ExtractVideoID(url); ok {
			return id, nil
		}
		a.println("Invalid YouTube URL. Please try again.")
	}
}

func (a *App) askLanguages(ctx context.Context, p *prompter, opts RunOptions) (string, error) {
	if opts.LanguagesSet {
		return opts.Languages, nil
	}
	if len(a.DefaultLanguages) > 0 {
		return strings.Join(a.DefaultLanguages, ","), nil
	}
	a.println("\nEnter language codes (comma-separated) or press Enter for auto-detection:")
	return p.ask(ctx, "Languages: ")
}

// save writes both renderings of one language and records them in history.
func (a *App) save(ctx context.Context, dir string, meta transcript.Metadata, lang string, segs []transcript.Segment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, kind := range transcript.Kinds {
		path := filepath.Join(dir, transcript.Filename(meta.Title, meta.ID, lang, kind))
		if err := os.WriteFile(path, []byte(transcript.Render(kind, segs)), 0o644); err != nil {
			return err
		}
		engine.IncrFilesWritten(1)
		if kind == transcript.KindTimestamped {
			a.printf("✓ Timestamped transcript saved to: %s\n", path)
		} else {
			a.printf("✓ Prose transcript saved to: %s\n", path)
		}

		err := a.store().Record(ctx, history.Export{
			VideoID:  meta.ID,
			Title:    meta.Title,
			Language: lang,
			Kind:     string(kind),
			Path:     path,
			Segments: len(segs),
		})
		if err != nil {
			slog.Warn("history record failed", slog.String("path", path), slog.Any("error", err))
		}
	}
	return nil
}
