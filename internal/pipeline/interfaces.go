package pipeline

import (
	"context"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
)

// ArticleGenerator runs the model-backed generation stages
type ArticleGenerator interface {
	// GenerateBody generates the raw article body from the composed prompt
	// Research enables grounding tools on the underlying model call
	GenerateBody(ctx context.Context, pair core.PromptPair, research bool) (string, error)

	// GenerateTitle generates a title for already-generated article content
	GenerateTitle(ctx context.Context, pair core.PromptPair) (string, error)

	// GenerateReferences generates a markdown references section
	GenerateReferences(ctx context.Context, pair core.PromptPair) (string, error)
}

// LinkProber checks whether a URL is reachable
type LinkProber interface {
	// Probe returns true only when the URL answers with HTTP 200
	Probe(url string) bool
}
