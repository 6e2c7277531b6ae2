// Package transcript turns timed caption segments into text files:
// video id extraction, language selection, fetch orchestration, the
// timestamped and prose renderings, and output filenames.
package transcript

// Segment is one timed unit of caption text.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`    // seconds from the start of the video
	Duration float64 `json:"duration"` // seconds
}

// End returns the offset at which the segment stops being displayed.
func (s Segment) End() float64 { return s.Start + s.Duration }

// Duration returns the end offset of the last segment, 0 for an empty transcript.
func Duration(segs []Segment) float64 {
	if len(segs) == 0 {
		return 0
	}
	return segs[len(segs)-1].End()
}

// Set maps language codes to segment sequences, remembering insertion order.
// The zero value is ready to use.
type Set struct {
	order  []string
	byLang map[string][]Segment
}

// Add stores segs under code. Re-adding a code replaces its segments but keeps its position.
func (s *Set) Add(code string, segs []Segment) {
	if s.byLang == nil {
		s.byLang = make(map[string][]Segment)
	}
	if _, ok := s.byLang[code]; !ok {
		s.order = append(s.order, code)
	}
	s.byLang[code] = segs
}

// Get returns the segments for code.
func (s *Set) Get(code string) ([]Segment, bool) {
	segs, ok := s.byLang[code]
	return segs, ok
}

// Languages returns the codes in insertion order.
func (s *Set) Languages() []string {
	return append([]string(nil), s.order...)
}

// Len is the number of languages in the set.
func (s *Set) Len() int { return len(s.order) }

// TotalSegments counts segments across all languages.
func (s *Set) TotalSegments() int {
	n := 0
	for _, segs := range s.byLang {
		n += len(segs)
	}
	return n
}

// Language is one caption track offered for a video.
type Language struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Generated bool   `json:"generated,omitempty"` // auto-generated (ASR) track
}

// Languages is an ordered code → name listing.
type Languages []Language

// NewLanguages builds a listing from tracks. A repeated code keeps the position of
// its first occurrence and takes the name of its last one.
func NewLanguages(tracks ...Language) Languages {
	out := make(Languages, 0, len(tracks))
	idx := make(map[string]int, len(tracks))
	for _, t := range tracks {
		if i, ok := idx[t.Code]; ok {
			out[i] = t
			continue
		}
		idx[t.Code] = len(out)
		out = append(out, t)
	}
	return out
}

// Codes returns the language codes in listed order.
func (l Languages) Codes() []string {
	codes := make([]string, len(l))
	for i, lang := range l {
		codes[i] = lang.Code
	}
	return codes
}

// Name returns the human-readable name for code.
func (l Languages) Name(code string) (string, bool) {
	for _, lang := range l {
		if lang.Code == code {
			return lang.Name, true
		}
	}
	return "", false
}

// Metadata describes a video. Title equals ID when no real title was found.
type Metadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// HasTitle reports whether a real title was found.
func (m Metadata) HasTitle() bool { return m.Title != "" && m.Title != m.ID }

// Kind tags the two file renderings.
type Kind string

const (
	KindTimestamped Kind = "timestamped"
	KindProse       Kind = "prose"
)

// Kinds lists the renderings in the order files are written.
var Kinds = []Kind{KindTimestamped, KindProse}

// Render produces the text for kind.
func Render(kind Kind, segs []Segment) string {
	if kind == KindProse {
		return RenderProse(segs)
	}
	return RenderTimestamped(segs)
}
