package cost

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
	"github.com/rahimkhoja/ai-article-writer/internal/prompt"
)

// GeminiPricing represents the current pricing for Gemini models
type GeminiPricing struct {
	Model                 string
	InputCostPer1MTokens  float64 // Cost per 1M input tokens in USD
	OutputCostPer1MTokens float64 // Cost per 1M output tokens in USD
}

// PricingTable contains current Gemini pricing as of mid 2026
var PricingTable = map[string]GeminiPricing{
	"gemini-3-pro-preview": {
		Model:                 "gemini-3-pro-preview",
		InputCostPer1MTokens:  2.00,  // $2.00 per 1M tokens
		OutputCostPer1MTokens: 12.00, // $12.00 per 1M tokens
	},
	"gemini-2.5-pro": {
		Model:                 "gemini-2.5-pro",
		InputCostPer1MTokens:  1.25,
		OutputCostPer1MTokens: 10.00,
	},
	"gemini-2.5-flash": {
		Model:                 "gemini-2.5-flash",
		InputCostPer1MTokens:  0.30,
		OutputCostPer1MTokens: 2.50,
	},
	"gemini-2.0-flash-exp": {
		Model:                 "gemini-2.0-flash-exp",
		InputCostPer1MTokens:  0.10,
		OutputCostPer1MTokens: 0.40,
	},
}

// defaultPricingModel prices unknown models; flash pricing keeps the
// estimate conservative without inflating it.
const defaultPricingModel = "gemini-2.0-flash-exp"

// Output token budgets per stage. Title and references mirror the caps the
// generation calls run with; body output scales with the requested word count
// at roughly 4 tokens per 3 words.
const (
	titleOutputTokens      = 50
	referencesOutputTokens = 500
	tokensPerWord          = 4.0 / 3.0
)

// Prompt overhead for the stages whose input embeds the generated body
// (template text plus instructions).
const (
	titlePromptOverhead      = 100 // tokens for the title prompt template
	referencesPromptOverhead = 150 // tokens for the references prompt template
)

// StageCostEstimate represents the estimated cost of a single generation stage
type StageCostEstimate struct {
	Stage        string // "body", "title" or "references"
	Model        string
	InputTokens  int
	OutputTokens int
	InputCost    float64
	OutputCost   float64
	TotalCost    float64
	ExactInput   bool // True when InputTokens came from the CountTokens API
}

// RunCostEstimate represents the estimated cost of one full article run
type RunCostEstimate struct {
	Format            string
	Stages            []StageCostEstimate
	TotalInputTokens  int
	TotalOutputTokens int
	TotalCost         float64
}

// StageModels names the model each generation stage runs against
type StageModels struct {
	Body       string
	Title      string
	References string
}

// TokenCounter returns the token count of text under the named model. A nil
// counter falls back to the character heuristic.
type TokenCounter func(ctx context.Context, model string, text string) (int, error)

// EstimateRunCost estimates the cost of generating one article from the given
// transcripts. The body prompt is measured as composed; title and references
// inputs are derived from the estimated body length, since their prompts embed
// content that does not exist yet.
func EstimateRunCost(ctx context.Context, transcripts []core.Transcript, genCtx core.GenerationContext, models StageModels, counter TokenCounter) (*RunCostEstimate, error) {
	if len(transcripts) == 0 {
		return nil, fmt.Errorf("no transcripts to estimate from")
	}

	bodyPair := prompt.ComposeBodyPrompt(transcripts, genCtx)
	bodyInput := bodyPair.System + "\n" + bodyPair.User

	bodyInputTokens := EstimateTokenCount(bodyInput)
	exactInput := false
	if counter != nil {
		if counted, err := counter(ctx, models.Body, bodyInput); err == nil {
			bodyInputTokens = counted
			exactInput = true
		}
	}

	bodyOutputTokens := int(math.Ceil(float64(genCtx.WordCount) * tokensPerWord))

	estimate := &RunCostEstimate{Format: genCtx.Format}
	estimate.addStage("body", models.Body, bodyInputTokens, bodyOutputTokens, exactInput)
	estimate.addStage("title", models.Title, bodyOutputTokens+titlePromptOverhead, titleOutputTokens, false)
	estimate.addStage("references", models.References, bodyOutputTokens+referencesPromptOverhead, referencesOutputTokens, false)

	return estimate, nil
}

// addStage prices a single stage and folds it into the run totals
func (e *RunCostEstimate) addStage(stage, model string, inputTokens, outputTokens int, exactInput bool) {
	pricing := pricingFor(model)

	inputCost := float64(inputTokens) * pricing.InputCostPer1MTokens / 1000000
	outputCost := float64(outputTokens) * pricing.OutputCostPer1MTokens / 1000000

	e.Stages = append(e.Stages, StageCostEstimate{
		Stage:        stage,
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		InputCost:    inputCost,
		OutputCost:   outputCost,
		TotalCost:    inputCost + outputCost,
		ExactInput:   exactInput,
	})

	e.TotalInputTokens += inputTokens
	e.TotalOutputTokens += outputTokens
	e.TotalCost += inputCost + outputCost
}

// pricingFor returns the pricing entry for a model, falling back to flash
// pricing when the model is not in the table
func pricingFor(model string) GeminiPricing {
	if pricing, exists := PricingTable[model]; exists {
		return pricing
	}

	pricing := PricingTable[defaultPricingModel]
	pricing.Model = model
	return pricing
}

// EstimateTokenCount provides a rough estimation of token count for text.
// This is a simplified approximation - typically 1 token ≈ 0.75 words ≈ 4 characters
func EstimateTokenCount(text string) int {
	// Remove extra whitespace and count characters
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")

	charCount := utf8.RuneCountInString(text)

	// Rough estimation: 1 token per 3.5 characters (conservative for English)
	return int(math.Ceil(float64(charCount) / 3.5))
}

// CountTokens asks the Gemini API for the exact token count of text under the
// named model. Dry runs use it when an API key is configured.
func CountTokens(ctx context.Context, apiKey, model, text string) (int, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return 0, fmt.Errorf("failed to create token counting client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(model).CountTokens(ctx, genai.Text(text))
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	return int(resp.TotalTokens), nil
}

// FormatEstimate formats the cost estimate for display
func (e *RunCostEstimate) FormatEstimate() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Cost Estimation for %s\n", e.Format))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	// Summary
	sb.WriteString("📊 Summary:\n")
	sb.WriteString(fmt.Sprintf("   Generation stages: %d\n", len(e.Stages)))
	sb.WriteString(fmt.Sprintf("   Total input tokens: %d\n", e.TotalInputTokens))
	sb.WriteString(fmt.Sprintf("   Total output tokens: %d\n", e.TotalOutputTokens))
	sb.WriteString(fmt.Sprintf("   Total estimated cost: $%.6f\n", e.TotalCost))
	sb.WriteString("\n")

	// Per-stage breakdown
	sb.WriteString("💰 Per-Stage Breakdown:\n")
	for i, stage := range e.Stages {
		precision := "~"
		if stage.ExactInput {
			precision = ""
		}
		sb.WriteString(fmt.Sprintf("   %d. %s (%s): %s%d input + ~%d output tokens ($%.6f)\n",
			i+1, stage.Stage, stage.Model, precision, stage.InputTokens, stage.OutputTokens, stage.TotalCost))
	}

	return sb.String()
}
