package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
	"github.com/rahimkhoja/ai-article-writer/internal/links"
	"github.com/rahimkhoja/ai-article-writer/internal/prompt"
)

// maxReferenceAttempts caps the references stage at one generation plus one
// regeneration.
const maxReferenceAttempts = 2

// fallbackReferences replaces the references section when the model fails on
// either pass.
const fallbackReferences = "\n\n## References\n\n*References could not be generated.*"

// Pipeline orchestrates the staged article generation workflow.
// Stages run strictly in order: body, then title, then references. Only a
// body failure aborts the run; the later stages degrade to fallbacks.
type Pipeline struct {
	// Core components
	generator ArticleGenerator
	prober    LinkProber

	// Configuration
	config *Config
}

// Config holds pipeline configuration
type Config struct {
	ProbeTimeout time.Duration // Timeout applied to each link probe
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		ProbeTimeout: links.DefaultVerifyTimeout,
	}
}

// NewPipeline creates a new pipeline with all dependencies
func NewPipeline(generator ArticleGenerator, prober LinkProber, config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}

	return &Pipeline{
		generator: generator,
		prober:    prober,
		config:    config,
	}
}

// Result contains the output of article generation
type Result struct {
	RunID      string                // Unique identifier for this run
	Article    core.Article          // The assembled article pieces
	References core.ReferencesResult // Outcome of the references stage
	Stats      Stats                 // Pipeline execution metrics
}

// Stats tracks pipeline execution metrics
type Stats struct {
	TranscriptCount   int
	NoteLinksFound    int
	NoteLinksVerified int
	UsedFallbackTitle bool
	StartTime         time.Time
	EndTime           time.Time
	ProcessingTime    time.Duration
}

// GenerateArticle executes the full staged generation flow against the
// supplied transcripts
func (p *Pipeline) GenerateArticle(ctx context.Context, transcripts []core.Transcript, genCtx core.GenerationContext) (*Result, error) {
	startTime := time.Now()
	stats := Stats{
		TranscriptCount: len(transcripts),
		StartTime:       startTime,
	}

	if len(transcripts) == 0 {
		return nil, fmt.Errorf("no transcripts to generate from")
	}

	// Step 1: Verify links supplied alongside the notes
	noteLinks := links.ExtractLinks(genCtx.AdditionalInfo)
	stats.NoteLinksFound = len(noteLinks)
	var verifiedLinks []string
	if len(noteLinks) > 0 {
		fmt.Printf("🔍 Step 1/4: Verifying %d provided link(s)...\n", len(noteLinks))
		verifiedLinks = p.probeAll(noteLinks)
		fmt.Printf("   ✓ %d/%d links verified\n\n", len(verifiedLinks), len(noteLinks))
	} else {
		fmt.Printf("⏭️  Step 1/4: No provided links to verify\n\n")
	}
	stats.NoteLinksVerified = len(verifiedLinks)

	// Step 2: Article body
	fmt.Printf("🤖 Step 2/4: Generating article body...\n")
	fmt.Printf("   • This may take a few minutes\n")
	bodyPair := prompt.ComposeBodyPrompt(transcripts, genCtx)
	rawBody, err := p.generator.GenerateBody(ctx, bodyPair, genCtx.Research)
	if err != nil {
		return nil, fmt.Errorf("failed to generate article body: %w", err)
	}
	parsed := ParseArticleResponse(rawBody)
	fmt.Printf("   ✓ Generated %d words\n\n", len(strings.Fields(parsed.Content)))

	// Step 3: Title
	fmt.Printf("📝 Step 3/4: Generating title...\n")
	title, usedFallbackTitle := p.generateTitle(ctx, parsed.Content, genCtx)
	stats.UsedFallbackTitle = usedFallbackTitle
	if usedFallbackTitle {
		fmt.Printf("   • Using fallback title: %s\n\n", title)
	} else {
		fmt.Printf("   ✓ Title: %s\n\n", title)
	}

	// Step 4: References
	fmt.Printf("📚 Step 4/4: Generating references...\n")
	references := p.generateReferences(ctx, parsed.Content, title, genCtx, verifiedLinks)
	if references.UsedFallback {
		fmt.Printf("   • Continuing with placeholder references\n\n")
	} else {
		fmt.Printf("   ✓ Generated references with %d link(s)\n\n", len(references.Links))
	}

	stats.EndTime = time.Now()
	stats.ProcessingTime = stats.EndTime.Sub(startTime)

	return &Result{
		RunID: uuid.New().String(),
		Article: core.Article{
			Title:       title,
			Content:     parsed.Content,
			References:  references.Text,
			Hashtags:    parsed.Hashtags,
			Format:      genCtx.Format,
			GeneratedAt: time.Now(),
		},
		References: references,
		Stats:      stats,
	}, nil
}

// generateTitle runs the title stage. Failures are not fatal: the article
// falls back to a deterministic format-plus-timestamp name.
func (p *Pipeline) generateTitle(ctx context.Context, content string, genCtx core.GenerationContext) (string, bool) {
	pair := prompt.ComposeTitlePrompt(content, genCtx)
	raw, err := p.generator.GenerateTitle(ctx, pair)
	if err != nil {
		fmt.Printf("   ⚠️  Title generation failed: %v\n", err)
		return FallbackTitle(genCtx.Format, time.Now()), true
	}
	return CleanTitle(raw), false
}

// generateReferences runs the references stage with verify-then-regenerate.
// The first pass is probed link by link; any unreachable link triggers
// exactly one regeneration, and the regenerated section is accepted without
// re-probing. A model failure on either pass yields the placeholder section.
func (p *Pipeline) generateReferences(ctx context.Context, content, title string, genCtx core.GenerationContext, verifiedLinks []string) core.ReferencesResult {
	result := core.ReferencesResult{VerifiedLinks: verifiedLinks}

	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		var pair core.PromptPair
		if attempt == 1 {
			pair = prompt.ComposeReferencesPrompt(content, title, genCtx, verifiedLinks)
		} else {
			pair = prompt.ComposeReferencesRetryPrompt(content, title, genCtx, verifiedLinks)
		}

		text, err := p.generator.GenerateReferences(ctx, pair)
		if err != nil {
			fmt.Printf("   ⚠️  References generation failed: %v\n", err)
			result.Text = fallbackReferences
			result.Links = nil
			result.UsedFallback = true
			return result
		}

		result.Text = strings.TrimSpace(text)
		result.Links = links.ExtractLinks(result.Text)

		if attempt == maxReferenceAttempts {
			return result
		}

		alive := p.probeAll(result.Links)
		dead := len(result.Links) - len(alive)
		if dead == 0 {
			return result
		}

		fmt.Printf("   ⚠️  %d unreachable link(s), regenerating references...\n", dead)
		result.Regenerated = true
	}

	return result
}

// probeAll probes each URL and returns the reachable ones, preserving order
func (p *Pipeline) probeAll(urls []string) []string {
	var alive []string
	for _, url := range urls {
		if p.prober.Probe(url) {
			fmt.Printf("   ✓ Verified: %s\n", url)
			alive = append(alive, url)
		} else {
			fmt.Printf("   ✗ Unreachable: %s\n", url)
		}
	}
	return alive
}

// CleanTitle normalizes a model-generated title by trimming whitespace and
// any wrapping quotes
func CleanTitle(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"'`)
}

// FallbackTitle builds the deterministic title used when the title stage
// fails, combining the format name with a timestamp
func FallbackTitle(format string, now time.Time) string {
	return fmt.Sprintf("%s_%s", format, now.Format("20060102_150405"))
}
