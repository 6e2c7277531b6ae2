package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Innertube API: constants, player response types and the /player request.
// Caption track selection and timedtext parsing live in youtube_transcript.go.

const (
	ytBaseURL    = "https://www.youtube.com"
	ytPlayerPath = "/youtubei/v1/player"
)

// clientProfile is the app identity sent to /player.
type clientProfile struct {
	name       string
	nameID     string // X-Youtube-Client-Name
	version    string
	userAgent  string
	androidSDK int
}

var androidClient = clientProfile{
	name:       "ANDROID",
	nameID:     "3",
	version:    "20.10.38",
	userAgent:  "com.google.android.youtube/20.10.38 (Linux; U; Android 11) gzip",
	androidSDK: 30,
}

// --- ANDROID client types (/player endpoint) ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

// playerResponse is the subset of ytInitialPlayerResponse / Innertube /player we read.
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	Name         trackName `json:"name"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"` // "asr" = auto-generated
}

// trackName is either {"simpleText": "..."} (web) or {"runs": [{"text": "..."}]} (android).
type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n trackName) String() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var sb strings.Builder
	for _, r := range n.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// tracks returns the caption tracks or explains why there are none.
func (p *playerResponse) tracks() ([]captionTrack, error) {
	if p.Captions == nil {
		if p.PlayabilityStatus != nil && p.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoCaptions, p.PlayabilityStatus.Reason)
		}
		return nil, ErrNoCaptions
	}
	tracks := p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}
	return tracks, nil
}

// player asks the Innertube /player endpoint for the player response as client.
// Used when the watch page is gated or does not embed the response.
func (y *YouTube) player(ctx context.Context, client clientProfile, videoID string) (*playerResponse, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{Client: innertubeClient{
			ClientName:        client.name,
			ClientVersion:     client.version,
			AndroidSdkVersion: client.androidSDK,
			Hl:                "en",
			Gl:                "US",
		}},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}
	what := strings.ToLower(client.name) + " player"

	body, err := y.fetchBody(ctx, what, 4*1024*1024, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.BaseURL+ytPlayerPath+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", client.userAgent)
		req.Header.Set("X-Youtube-Client-Name", client.nameID)
		req.Header.Set("X-Youtube-Client-Version", client.version)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var pr playerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return &pr, nil
}

// extractJSON returns the balanced JSON object at the start of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
