package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{
			name:   "standard watch URL",
			source: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "short youtu.be URL",
			source: "https://youtu.be/dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "embed URL",
			source: "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "shorts URL",
			source: "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "watch URL with extra parameters",
			source: "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "mobile watch URL",
			source: "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "watch URL with timestamp",
			source: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:   "bare video ID",
			source: "dQw4w9WgXcQ",
			want:   "dQw4w9WgXcQ",
		},
		{
			name:    "unrelated URL",
			source:  "https://example.com/watch?v=nothing",
			wantErr: true,
		},
		{
			name:    "too-short ID",
			source:  "shortid",
			wantErr: true,
		},
		{
			name:    "empty string",
			source:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.source)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got ID %q", tt.source, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected ID %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u-es", LanguageCode: "es"},
		{BaseURL: "u-en-auto", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u-en-manual", LanguageCode: "en"},
	}

	if got := pickTrack(tracks, []string{"en", "en-US"}); got.BaseURL != "u-en-manual" {
		t.Errorf("Expected manual English track, got %q", got.BaseURL)
	}

	if got := pickTrack(tracks, []string{"es"}); got.BaseURL != "u-es" {
		t.Errorf("Expected Spanish track, got %q", got.BaseURL)
	}

	if got := pickTrack(tracks, []string{"fr", "de"}); got.BaseURL != "u-es" {
		t.Errorf("Expected first track as fallback, got %q", got.BaseURL)
	}

	autoOnly := []captionTrack{{BaseURL: "u-auto", LanguageCode: "en", Kind: "asr"}}
	if got := pickTrack(autoOnly, []string{"en"}); got.BaseURL != "u-auto" {
		t.Errorf("Expected auto-generated track when nothing else matches, got %q", got.BaseURL)
	}

	upper := []captionTrack{{BaseURL: "u-upper", LanguageCode: "EN"}}
	if got := pickTrack(upper, []string{"en"}); got.BaseURL != "u-upper" {
		t.Errorf("Expected case-insensitive language match, got %q", got.BaseURL)
	}
}

func TestScanJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "flat array",
			input: `[{"a":1}]trailing`,
			want:  `[{"a":1}]`,
		},
		{
			name:  "nested arrays",
			input: `[{"name":{"runs":[{"text":"English"}]}},{"b":2}]},"rest"`,
			want:  `[{"name":{"runs":[{"text":"English"}]}},{"b":2}]`,
		},
		{
			name:  "bracket inside string value",
			input: `[{"baseUrl":"https://example.com/t[1]"}]more`,
			want:  `[{"baseUrl":"https://example.com/t[1]"}]`,
		},
		{
			name:  "escaped quote inside string",
			input: `[{"title":"say \"hi]\" now"}]x`,
			want:  `[{"title":"say \"hi]\" now"}]`,
		},
		{
			name:    "not an array",
			input:   `{"a":1}`,
			wantErr: true,
		},
		{
			name:    "unterminated array",
			input:   `[{"a":1}`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanJSONArray(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseCaptionTracks(t *testing.T) {
	page := `var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		`{"baseUrl":"https://example.com/tt?lang=en","name":{"simpleText":"English"},"languageCode":"en","kind":"asr"},` +
		`{"baseUrl":"https://example.com/tt?lang=es","name":{"runs":[{"text":"Spanish"}]},"languageCode":"es"}` +
		`]}},"videoDetails":{}}`

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].LanguageCode != "en" || tracks[0].Kind != "asr" {
		t.Errorf("Unexpected first track: %+v", tracks[0])
	}
	if tracks[1].BaseURL != "https://example.com/tt?lang=es" {
		t.Errorf("Unexpected second track URL: %q", tracks[1].BaseURL)
	}
}

func TestParseCaptionTracksMissing(t *testing.T) {
	_, err := parseCaptionTracks(`<html><body>no captions here</body></html>`)
	if err == nil {
		t.Error("Expected error for a page without caption tracks")
	}

	_, err = parseCaptionTracks(`"captionTracks":[]`)
	if err == nil {
		t.Error("Expected error for an empty caption track list")
	}
}

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello   world", "hello world"},
		{"[00:01:23] timestamped line", "timestamped line"},
		{"line one\nline two\n\nline three", "line one line two line three"},
		{"  padded  ", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanTranscript(tt.input); got != tt.want {
			t.Errorf("cleanTranscript(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestFetchTimedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8" ?><transcript>` +
			`<text start="0.0" dur="1.5">Hello &amp;#39;world&amp;#39;</text>` +
			`<text start="1.5" dur="2.0">second line</text>` +
			`<text start="3.5" dur="1.0">   </text>` +
			`</transcript>`))
	}))
	defer server.Close()

	got, err := fetchTimedText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "Hello 'world' second line"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFetchTimedTextErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := fetchTimedText(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for non-200 caption response")
	}
	if err != nil && !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestFetchAllNoSources(t *testing.T) {
	_, err := FetchAll(context.Background(), nil, []string{"en"}, 0)
	if err == nil {
		t.Error("Expected error when no sources are given")
	}
}

func TestFetchAllSkipsInvalidSources(t *testing.T) {
	_, err := FetchAll(context.Background(), []string{"nope", "also wrong"}, []string{"en"}, 0)
	if err == nil {
		t.Error("Expected error when every source fails")
	}
	if !strings.Contains(err.Error(), "no transcripts could be fetched") {
		t.Errorf("Expected aggregate failure error, got %v", err)
	}
}

func TestFetchTranscriptIntegration(t *testing.T) {
	if os.Getenv("YOUTUBE_INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test: YOUTUBE_INTEGRATION_TEST not set")
	}

	text, err := FetchTranscript(context.Background(), "dQw4w9WgXcQ", []string{"en", "en-US", "en-GB"})
	if err != nil {
		t.Fatalf("Expected transcript, got error: %v", err)
	}
	if len(text) == 0 {
		t.Error("Expected non-empty transcript text")
	}
}
