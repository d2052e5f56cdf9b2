// Package links extracts URLs from free-form text and probes them for
// accessibility.
package links

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultVerifyTimeout is the probe timeout used when none is configured.
const DefaultVerifyTimeout = 10 * time.Second

// probeUserAgent is sent with every probe. Some sites reject requests
// without a browser User-Agent.
const probeUserAgent = "Mozilla/5.0"

// urlRegex matches http(s) URLs. The final character class excludes trailing
// punctuation so sentence-ending periods and commas are not captured.
var urlRegex = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+[^\\s<>\"{}|\\\\^`\\[\\].,;:!?]")

// ExtractLinks returns all URLs found in text, in order of appearance.
// Duplicates are preserved.
func ExtractLinks(text string) []string {
	return urlRegex.FindAllString(text, -1)
}

// Verify reports whether a URL is accessible. It issues a GET request with a
// browser User-Agent and accepts only a 200 response. Request errors,
// timeouts and non-200 statuses all count as inaccessible.
func Verify(rawURL string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", probeUserAgent)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// ProbeReport describes the result of inspecting a single URL.
type ProbeReport struct {
	URL        string // Probed URL
	Live       bool   // Whether the probe returned 200
	StatusCode int    // HTTP status code (0 when the request itself failed)
	Title      string // Page title when the response was parseable HTML
}

// Inspect probes a URL and, when it is live, extracts the page title from the
// response body. It is used by the verify command to give more detail than
// the bare accessible/dead answer.
func Inspect(rawURL string, timeout time.Duration) ProbeReport {
	report := ProbeReport{URL: rawURL}

	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return report
	}
	req.Header.Set("User-Agent", probeUserAgent)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return report
	}
	defer func() { _ = resp.Body.Close() }()

	report.StatusCode = resp.StatusCode
	report.Live = resp.StatusCode == http.StatusOK
	if !report.Live {
		return report
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return report
	}
	report.Title = pageTitle(doc)
	return report
}

// pageTitle tries the title tag first, then the OpenGraph title, then the
// first h1.
func pageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title != "" {
		return title
	}

	ogTitle, _ := doc.Find("meta[property='og:title']").Attr("content")
	if strings.TrimSpace(ogTitle) != "" {
		return strings.TrimSpace(ogTitle)
	}

	return strings.TrimSpace(doc.Find("h1").First().Text())
}
