package pipeline

import (
	"fmt"
	"time"

	"github.com/rahimkhoja/ai-article-writer/internal/gemini"
)

// Builder helps construct a fully configured Pipeline
type Builder struct {
	geminiClient *gemini.Client
	generator    ArticleGenerator
	prober       LinkProber
	config       *Config
}

// NewBuilder creates a new pipeline builder with default settings
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithGeminiClient sets the Gemini client backing all generation stages
func (b *Builder) WithGeminiClient(client *gemini.Client) *Builder {
	b.geminiClient = client
	return b
}

// WithGenerator sets a custom generator, taking precedence over the Gemini
// client
func (b *Builder) WithGenerator(generator ArticleGenerator) *Builder {
	b.generator = generator
	return b
}

// WithProber sets a custom link prober
func (b *Builder) WithProber(prober LinkProber) *Builder {
	b.prober = prober
	return b
}

// WithProbeTimeout sets the per-link probe timeout
func (b *Builder) WithProbeTimeout(timeout time.Duration) *Builder {
	if b.config != nil {
		b.config.ProbeTimeout = timeout
	}
	return b
}

// WithConfig sets the pipeline configuration
func (b *Builder) WithConfig(config *Config) *Builder {
	b.config = config
	return b
}

// Build constructs a fully configured Pipeline
func (b *Builder) Build() (*Pipeline, error) {
	if b.config == nil {
		b.config = DefaultConfig()
	}

	// Validate required components
	generator := b.generator
	if generator == nil {
		if b.geminiClient == nil {
			return nil, fmt.Errorf("gemini client is required")
		}
		generator = NewGeminiAdapter(b.geminiClient)
	}

	prober := b.prober
	if prober == nil {
		prober = NewHTTPProber(b.config.ProbeTimeout)
	}

	return NewPipeline(generator, prober, b.config), nil
}
