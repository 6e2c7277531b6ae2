package transcript

import (
	"context"
	"errors"
	"strings"
)

// AutoLanguage is tried first when the user does not pick languages.
const AutoLanguage = "en"

// Source fetches caption segments for one language of one video.
type Source interface {
	FetchSegments(ctx context.Context, videoID, lang string) ([]Segment, error)
}

// Service is the full caption provider: title lookup, track listing and fetch.
type Service interface {
	Source
	Metadata(ctx context.Context, videoID string) Metadata
	ListLanguages(ctx context.Context, videoID string) (Languages, error)
}

// Failure records a language that could not be fetched.
type Failure struct {
	Code string
	Err  error
}

// Summary is the first line of the error message.
func (f Failure) Summary() string {
	if f.Err == nil {
		return ""
	}
	line, _, _ := strings.Cut(f.Err.Error(), "\n")
	return line
}

// FetchResult holds the fetched transcripts and the languages that failed.
// Attempted lists every code tried, in request order, without repeats.
type FetchResult struct {
	Set       Set
	Failures  []Failure
	Attempted []string
}

// Failure returns the recorded failure for code, if any.
func (r FetchResult) Failure(code string) (Failure, bool) {
	for _, f := range r.Failures {
		if f.Code == code {
			return f, true
		}
	}
	return Failure{}, false
}

// FetchAll fetches every requested language independently, once each.
// A failing language is recorded in Failures and never stops the others.
// The returned error is non-nil only when ctx is done.
func FetchAll(ctx context.Context, src Source, videoID string, codes []string) (FetchResult, error) {
	var res FetchResult
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true

		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Attempted = append(res.Attempted, code)
		segs, err := src.FetchSegments(ctx, videoID, code)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return res, ctx.Err()
			}
			res.Failures = append(res.Failures, Failure{Code: code, Err: err})
			continue
		}
		res.Set.Add(code, segs)
	}
	return res, nil
}

// RequestedLanguages turns the user's comma-separated answer into language codes.
// Blank input selects AutoLanguage followed by every available code.
func RequestedLanguages(input string, available Languages) []string {
	if strings.TrimSpace(input) == "" {
		return append([]string{AutoLanguage}, available.Codes()...)
	}
	var codes []string
	for _, part := range strings.Split(input, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
