package transcript

import "regexp"

// videoIDPatterns are tried in order; the first capture wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
}

// ExtractVideoID pulls the video id out of a watch, short-link, embed or legacy /v/ URL.
// It does not check that the video exists.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL is the canonical watch page for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
