package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// titleWords is how many title words make up a filename stem.
const titleWords = 3

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`)

// Filename derives "{stem}_transcript_{kind}_{lang}.txt".
// The stem is the first three words of title, lowercased and underscore-joined,
// or id when there is no real title or nothing survives cleaning.
func Filename(title, id, lang string, kind Kind) string {
	return fmt.Sprintf("%s_transcript_%s_%s.txt", stem(title, id), kind, lang)
}

func stem(title, id string) string {
	if !(Metadata{ID: id, Title: title}).HasTitle() {
		return id
	}
	words := strings.Fields(wsRunRe.ReplaceAllString(nonWordRe.ReplaceAllString(title, ""), " "))
	if len(words) == 0 {
		return id
	}
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.ToLower(strings.Join(words, "_"))
}
