// Package gemini wraps the Google Gemini API for the three generation
// stages: body, title and references. Each stage uses its own model and
// generation config.
package gemini

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
)

const (
	// DefaultBodyModel is the default Gemini model for the article body stage.
	DefaultBodyModel = "gemini-3-pro-preview"
	// DefaultTitleModel is the default model for title generation.
	DefaultTitleModel = "gemini-2.0-flash-exp"
	// DefaultReferencesModel is the default model for references generation.
	DefaultReferencesModel = "gemini-2.0-flash-exp"

	// titleMaxOutputTokens caps title responses - titles should be short.
	titleMaxOutputTokens = int32(50)
	// referencesMaxOutputTokens caps the references section length.
	referencesMaxOutputTokens = int32(500)

	// defaultCallTimeout bounds a single generation call. The body stage can
	// run for minutes on a thinking model.
	defaultCallTimeout = 300 * time.Second
)

// Client represents a client for the Gemini generation stages.
type Client struct {
	apiKey          string
	bodyModel       string
	titleModel      string
	referencesModel string
	callTimeout     time.Duration
	gClient         *genai.Client
}

// NewClient creates a new Gemini client.
// It supports multiple ways to get the API key (in order of preference):
// 1. Environment variable: GEMINI_API_KEY (or alternatives)
// 2. Viper configuration: ai.gemini.api_key
func NewClient(bodyModel string) (*Client, error) {
	// Try to get API key from multiple sources for backward compatibility
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		// Try alternative environment variable names
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("ai.gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file.\nGet your API key from: https://makersuite.google.com/app/apikey")
	}

	// Get model names from parameter, viper config, or defaults
	if bodyModel == "" {
		bodyModel = viper.GetString("ai.gemini.model")
		if bodyModel == "" {
			bodyModel = DefaultBodyModel
		}
	}
	titleModel := viper.GetString("ai.gemini.title_model")
	if titleModel == "" {
		titleModel = DefaultTitleModel
	}
	referencesModel := viper.GetString("ai.gemini.references_model")
	if referencesModel == "" {
		referencesModel = DefaultReferencesModel
	}

	callTimeout := defaultCallTimeout
	if raw := viper.GetString("ai.gemini.timeout"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			callTimeout = d
		}
	}

	ctx := context.Background()
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		apiKey:          apiKey,
		bodyModel:       bodyModel,
		titleModel:      titleModel,
		referencesModel: referencesModel,
		callTimeout:     callTimeout,
		gClient:         gClient,
	}, nil
}

// GenerateBody runs the article body stage on the thinking model. Research
// enables the URL context and Google Search grounding tools.
func (c *Client) GenerateBody(ctx context.Context, pair core.PromptPair, research bool) (string, error) {
	config := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingLevel: genai.ThinkingLevelHigh,
		},
	}
	if research {
		config.Tools = []*genai.Tool{
			{URLContext: &genai.URLContext{}},
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	return c.generateContent(ctx, c.bodyModel, pair, config)
}

// GenerateTitle runs the title stage. No thinking, no tools, short output.
func (c *Client) GenerateTitle(ctx context.Context, pair core.PromptPair) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: titleMaxOutputTokens,
	}

	return c.generateContent(ctx, c.titleModel, pair, config)
}

// GenerateReferences runs the references stage. The URL context tool is
// always enabled so the model can check links while writing references.
func (c *Client) GenerateReferences(ctx context.Context, pair core.PromptPair) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: referencesMaxOutputTokens,
		Tools: []*genai.Tool{
			{URLContext: &genai.URLContext{}},
		},
	}

	return c.generateContent(ctx, c.referencesModel, pair, config)
}

// generateContent is a helper that wraps the SDK's GenerateContent call with
// the per-call timeout and the system instruction attached.
func (c *Client) generateContent(ctx context.Context, modelName string, pair core.PromptPair, config *genai.GenerateContentConfig) (string, error) {
	if config == nil {
		config = &genai.GenerateContentConfig{}
	}
	if pair.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: pair.System}},
		}
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: pair.User}},
		Role:  "user",
	}}

	callCtx := ctx
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	resp, err := c.gClient.Models.GenerateContent(callCtx, modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	// Use the Text() helper from the SDK (returns string only)
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// GetBodyModel returns the model used for the body stage.
func (c *Client) GetBodyModel() string {
	return c.bodyModel
}

// GetTitleModel returns the model used for the title stage.
func (c *Client) GetTitleModel() string {
	return c.titleModel
}

// GetReferencesModel returns the model used for the references stage.
func (c *Client) GetReferencesModel() string {
	return c.referencesModel
}

// Close closes the underlying client connection.
func (c *Client) Close() {
	// New SDK client doesn't require explicit close
}
