package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
)

const (
	watchPageURLFormat = "https://www.youtube.com/watch?v=%s"
	oembedURLFormat    = "https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v=%s&format=json"

	// YouTube serves caption metadata only to browser-looking clients.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// videoIDPatterns covers the common YouTube URL shapes plus bare video IDs
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

var (
	timestampRegex  = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// VideoInfo represents basic video information
type VideoInfo struct {
	Title   string `json:"title"`
	Channel string `json:"channel"`
}

// captionTrack mirrors the caption track entries embedded in the watch page
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// timedTextDocument is the XML payload served by a caption track URL
type timedTextDocument struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// ExtractVideoID extracts the video ID from various YouTube URL formats.
// A bare 11-character video ID is accepted as-is.
func ExtractVideoID(source string) (string, error) {
	for _, pattern := range videoIDPatterns {
		matches := pattern.FindStringSubmatch(source)
		if len(matches) > 1 {
			return matches[1], nil
		}
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", source)
}

// FetchVideoInfo fetches basic video information via the oEmbed endpoint,
// which needs no API key
func FetchVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	oembedURL := fmt.Sprintf(oembedURLFormat, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oEmbed request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube oEmbed API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read oEmbed response: %w", err)
	}

	var oembed struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &oembed); err != nil {
		return nil, fmt.Errorf("failed to parse oEmbed response: %w", err)
	}

	return &VideoInfo{
		Title:   oembed.Title,
		Channel: oembed.AuthorName,
	}, nil
}

// FetchTranscript retrieves the caption transcript for a video. Tracks are
// chosen by language preference order, manual captions before auto-generated.
func FetchTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	pageHTML, err := fetchWatchPage(ctx, videoID)
	if err != nil {
		return "", err
	}

	tracks, err := parseCaptionTracks(pageHTML)
	if err != nil {
		return "", fmt.Errorf("no captions available for video %s: %w", videoID, err)
	}

	track := pickTrack(tracks, languages)
	raw, err := fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch caption track for video %s: %w", videoID, err)
	}

	cleaned := cleanTranscript(raw)
	if cleaned == "" {
		return "", fmt.Errorf("empty transcript for video %s", videoID)
	}
	return cleaned, nil
}

// FetchAll fetches transcripts for every source, waiting delay between
// requests. Sources that fail are skipped with a warning; at least one
// transcript must survive.
func FetchAll(ctx context.Context, sources []string, languages []string, delay time.Duration) ([]core.Transcript, error) {
	transcripts := make([]core.Transcript, 0, len(sources))

	for i, source := range sources {
		fmt.Printf("📹 Fetching transcript %d/%d: %s\n", i+1, len(sources), source)

		transcript, err := fetchOne(ctx, source, languages)
		if err != nil {
			fmt.Printf("   ⚠️  Skipping: %v\n", err)
		} else {
			fmt.Printf("   ✓ %d characters\n", len(transcript.Text))
			transcripts = append(transcripts, *transcript)
		}

		if delay > 0 && i < len(sources)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if len(transcripts) == 0 {
		return nil, fmt.Errorf("no transcripts could be fetched")
	}
	return transcripts, nil
}

// fetchOne resolves a single source into a transcript with video metadata
func fetchOne(ctx context.Context, source string, languages []string) (*core.Transcript, error) {
	videoID, err := ExtractVideoID(source)
	if err != nil {
		return nil, err
	}

	text, err := FetchTranscript(ctx, videoID, languages)
	if err != nil {
		return nil, err
	}

	transcript := &core.Transcript{
		ID:          uuid.NewString(),
		VideoID:     videoID,
		VideoURL:    fmt.Sprintf(watchPageURLFormat, videoID),
		Text:        text,
		DateFetched: time.Now().UTC(),
	}

	// Video metadata is best-effort
	if info, err := FetchVideoInfo(ctx, videoID); err == nil {
		transcript.Title = info.Title
		transcript.Channel = info.Channel
	}

	return transcript, nil
}

func fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	url := fmt.Sprintf(watchPageURLFormat, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build watch page request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read watch page: %w", err)
	}
	return string(body), nil
}

// parseCaptionTracks locates the captionTracks JSON array embedded in the
// watch page and decodes it
func parseCaptionTracks(pageHTML string) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	start := strings.Index(pageHTML, marker)
	if start == -1 {
		return nil, fmt.Errorf("no caption tracks found")
	}

	raw, err := scanJSONArray(pageHTML[start+len(marker):])
	if err != nil {
		return nil, err
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks found")
	}
	return tracks, nil
}

// scanJSONArray returns the balanced JSON array at the start of s. Brackets
// inside string values are skipped, honoring escape sequences.
func scanJSONArray(s string) (string, error) {
	if len(s) == 0 || s[0] != '[' {
		return "", fmt.Errorf("malformed caption track data")
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i+1], nil
			}
		}
	}
	return "", fmt.Errorf("malformed caption track data")
}

// pickTrack selects the track best matching the language preference order.
// Within a language, manual captions win over auto-generated ("asr") ones.
func pickTrack(tracks []captionTrack, languages []string) captionTrack {
	for _, lang := range languages {
		var generated *captionTrack
		for i := range tracks {
			if !strings.EqualFold(tracks[i].LanguageCode, lang) {
				continue
			}
			if tracks[i].Kind != "asr" {
				return tracks[i]
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated
		}
	}
	return tracks[0]
}

// fetchTimedText downloads a caption track and joins its lines into a single
// text. YouTube double-escapes entities, so lines are unescaped once more
// after XML decoding.
func fetchTimedText(ctx context.Context, trackURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build caption request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read captions: %w", err)
	}

	var doc timedTextDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse captions: %w", err)
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, line := range doc.Texts {
		text := html.UnescapeString(line.Text)
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// cleanTranscript strips timestamp markers and collapses whitespace
func cleanTranscript(raw string) string {
	cleaned := timestampRegex.ReplaceAllString(raw, "")
	cleaned = whitespaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
