package transcript

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned segments; languages missing from tracks fail.
type fakeSource struct {
	tracks map[string][]Segment
	calls  []string
	errFor map[string]error
}

func (f *fakeSource) FetchSegments(_ context.Context, _ string, lang string) ([]Segment, error) {
	f.calls = append(f.calls, lang)
	if err, ok := f.errFor[lang]; ok {
		return nil, err
	}
	segs, ok := f.tracks[lang]
	if !ok {
		return nil, fmt.Errorf("no transcript for %s\nfull details follow", lang)
	}
	return segs, nil
}

func TestFetchAllSkipsFailedLanguages(t *testing.T) {
	src := &fakeSource{tracks: map[string][]Segment{"en": {{Text: "hi", Start: 0, Duration: 1}}}}

	res, err := FetchAll(context.Background(), src, "abc123", []string{"en", "xx"})
	require.NoError(t, err)

	assert.Equal(t, []string{"en"}, res.Set.Languages())
	_, ok := res.Set.Get("xx")
	assert.False(t, ok)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "xx", res.Failures[0].Code)
	assert.Equal(t, "no transcript for xx", res.Failures[0].Summary())
	assert.Equal(t, []string{"en", "xx"}, src.calls)

	f, ok := res.Failure("xx")
	assert.True(t, ok)
	assert.Equal(t, "xx", f.Code)
	_, ok = res.Failure("en")
	assert.False(t, ok)
}

func TestFetchAllOrderAndDedup(t *testing.T) {
	src := &fakeSource{tracks: map[string][]Segment{
		"en": {{Text: "a"}},
		"de": {{Text: "b"}, {Text: "c"}},
	}}

	res, err := FetchAll(context.Background(), src, "abc123", []string{"en", "de", "en"})
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "de"}, res.Set.Languages())
	assert.Equal(t, []string{"en", "de"}, src.calls, "each language is attempted once")
	assert.Equal(t, []string{"en", "de"}, res.Attempted)
	assert.Equal(t, 3, res.Set.TotalSegments())
	assert.Empty(t, res.Failures)
}

func TestFetchAllAllFail(t *testing.T) {
	src := &fakeSource{}
	res, err := FetchAll(context.Background(), src, "abc123", []string{"fr", "es"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Set.Len())
	assert.Len(t, res.Failures, 2)
}

func TestFetchAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{errFor: map[string]error{}}
	src.tracks = map[string][]Segment{"en": {{Text: "a"}}}
	cancel()

	_, err := FetchAll(ctx, src, "abc123", []string{"en"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.calls)
}

func TestFetchAllCanceledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &cancelingSource{cancel: cancel}

	res, err := FetchAll(ctx, src, "abc123", []string{"en", "de"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Failures, "an interrupt is not a language failure")
}

type cancelingSource struct{ cancel context.CancelFunc }

func (c *cancelingSource) FetchSegments(ctx context.Context, _, _ string) ([]Segment, error) {
	c.cancel()
	return nil, fmt.Errorf("fetch: %w", ctx.Err())
}

func TestFailureSummary(t *testing.T) {
	assert.Equal(t, "", Failure{Code: "en"}.Summary())
	assert.Equal(t, "boom", Failure{Code: "en", Err: errors.New("boom")}.Summary())
}

func TestRequestedLanguages(t *testing.T) {
	available := NewLanguages(
		Language{Code: "de", Name: "German"},
		Language{Code: "en", Name: "English"},
	)
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"blank auto selects", "", []string{"en", "de", "en"}},
		{"whitespace auto selects", "   ", []string{"en", "de", "en"}},
		{"comma separated", "fr, de ,es", []string{"fr", "de", "es"}},
		{"empty parts dropped", "en,,", []string{"en"}},
		{"only commas", " , ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequestedLanguages(tt.input, available))
		})
	}
}
