package pipeline

import (
	"context"
	"time"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
	"github.com/rahimkhoja/ai-article-writer/internal/gemini"
	"github.com/rahimkhoja/ai-article-writer/internal/links"
)

// GeminiAdapter wraps internal/gemini to implement ArticleGenerator
type GeminiAdapter struct {
	client *gemini.Client
}

func NewGeminiAdapter(client *gemini.Client) *GeminiAdapter {
	return &GeminiAdapter{
		client: client,
	}
}

func (a *GeminiAdapter) GenerateBody(ctx context.Context, pair core.PromptPair, research bool) (string, error) {
	return a.client.GenerateBody(ctx, pair, research)
}

func (a *GeminiAdapter) GenerateTitle(ctx context.Context, pair core.PromptPair) (string, error) {
	return a.client.GenerateTitle(ctx, pair)
}

func (a *GeminiAdapter) GenerateReferences(ctx context.Context, pair core.PromptPair) (string, error) {
	return a.client.GenerateReferences(ctx, pair)
}

// HTTPProber wraps internal/links to implement LinkProber
type HTTPProber struct {
	timeout time.Duration
}

// NewHTTPProber creates a prober that gives each URL the supplied timeout.
// Zero or negative values fall back to the default verify timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = links.DefaultVerifyTimeout
	}
	return &HTTPProber{
		timeout: timeout,
	}
}

func (p *HTTPProber) Probe(url string) bool {
	return links.Verify(url, p.timeout)
}
