package mocks

import (
	"context"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
)

// MockArticleGenerator provides a mock implementation of pipeline.ArticleGenerator.
// Call counters track how many times each stage was invoked.
type MockArticleGenerator struct {
	GenerateBodyFunc       func(ctx context.Context, pair core.PromptPair, research bool) (string, error)
	GenerateTitleFunc      func(ctx context.Context, pair core.PromptPair) (string, error)
	GenerateReferencesFunc func(ctx context.Context, pair core.PromptPair) (string, error)

	BodyCalls       int
	TitleCalls      int
	ReferencesCalls int
}

func (m *MockArticleGenerator) GenerateBody(ctx context.Context, pair core.PromptPair, research bool) (string, error) {
	m.BodyCalls++
	if m.GenerateBodyFunc != nil {
		return m.GenerateBodyFunc(ctx, pair, research)
	}
	return "Mock article body content.", nil
}

func (m *MockArticleGenerator) GenerateTitle(ctx context.Context, pair core.PromptPair) (string, error) {
	m.TitleCalls++
	if m.GenerateTitleFunc != nil {
		return m.GenerateTitleFunc(ctx, pair)
	}
	return "Mock Article Title", nil
}

func (m *MockArticleGenerator) GenerateReferences(ctx context.Context, pair core.PromptPair) (string, error) {
	m.ReferencesCalls++
	if m.GenerateReferencesFunc != nil {
		return m.GenerateReferencesFunc(ctx, pair)
	}
	return "## References\n\n- [Mock Source](https://example.com/source)", nil
}

// MockLinkProber provides a mock implementation of pipeline.LinkProber.
// Every probed URL is recorded in order.
type MockLinkProber struct {
	ProbeFunc func(url string) bool

	Probed []string
}

func (m *MockLinkProber) Probe(url string) bool {
	m.Probed = append(m.Probed, url)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(url)
	}
	return true
}
