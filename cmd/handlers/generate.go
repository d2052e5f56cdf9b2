package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rahimkhoja/ai-article-writer/internal/config"
	"github.com/rahimkhoja/ai-article-writer/internal/core"
	"github.com/rahimkhoja/ai-article-writer/internal/cost"
	"github.com/rahimkhoja/ai-article-writer/internal/formats"
	"github.com/rahimkhoja/ai-article-writer/internal/gemini"
	"github.com/rahimkhoja/ai-article-writer/internal/logger"
	"github.com/rahimkhoja/ai-article-writer/internal/pipeline"
	"github.com/rahimkhoja/ai-article-writer/internal/render"
	"github.com/rahimkhoja/ai-article-writer/internal/tui"
	"github.com/rahimkhoja/ai-article-writer/internal/youtube"
)

// NewGenerateCmd creates the article generation command
func NewGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate [video-url|video-id]...",
		Short: "Generate an article from one or more YouTube videos",
		Long: `Download transcripts for the given YouTube videos and generate a complete
article from them.

Generation runs in three stages:
  1. Article body on the thinking model, following the format guidelines
  2. Title derived from the generated body
  3. References section with HTTP-verified links

Links found in --additional-info are verified up front and offered to the
references stage. Dead links in the generated references trigger a single
regeneration pass.

Examples:
  # Single video with defaults
  article-writer generate https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Multiple videos into one article
  article-writer generate VIDEO_ID_1 VIDEO_ID_2 --format Substack

  # Provide an angle and extra notes with links
  article-writer generate URL --context "Scaling inference" --additional-info "See https://example.com/launch"

  # Estimate costs without making generation calls
  article-writer generate URL --dry-run

  # Pick format and word count interactively
  article-writer generate URL --interactive`,
		Args: cobra.RangeArgs(1, 10),
		Run:  generateRunFunc,
	}

	// Generation flags
	generateCmd.Flags().StringP("format", "f", "", "Article format (see 'article-writer formats')")
	generateCmd.Flags().IntP("word-count", "w", 0, "Target word count for the article body")
	generateCmd.Flags().String("context", "", "Topic or angle for the article")
	generateCmd.Flags().String("additional-info", "", "Free-form notes for the model; links in them are verified and offered to the references stage")
	generateCmd.Flags().String("audience", "", "Target audience description")
	generateCmd.Flags().Bool("research", false, "Enable grounding tools for the body stage")
	generateCmd.Flags().Duration("delay", 0, "Delay between transcript downloads")
	generateCmd.Flags().StringP("output", "o", "", "Output directory for the article file")
	generateCmd.Flags().Bool("dry-run", false, "Estimate costs without making generation calls")
	generateCmd.Flags().Bool("interactive", false, "Pick format and word count interactively")

	return generateCmd
}

func generateRunFunc(cmd *cobra.Command, args []string) {
	article := config.GetArticle()

	// Flags win over config, config over built-in defaults
	format := article.Format
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		format = f
	}
	wordCount := article.WordCount
	if w, _ := cmd.Flags().GetInt("word-count"); w != 0 {
		wordCount = w
	}
	audience := article.Audience
	if a, _ := cmd.Flags().GetString("audience"); a != "" {
		audience = a
	}
	research := article.Research
	if cmd.Flags().Changed("research") {
		research, _ = cmd.Flags().GetBool("research")
	}

	// The interactive picker replaces the format and word count choices
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		picked, err := tui.RunPicker(formats.GetAvailableFormats(), formats.WordCountChoices)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Interactive selection failed: %v\n", err)
			os.Exit(1)
		}
		if picked.Aborted {
			fmt.Println("Cancelled.")
			return
		}
		format = picked.Format
		wordCount = picked.WordCount
	}

	if !formats.IsValidFormat(format) {
		fmt.Fprintf(os.Stderr, "❌ Unknown format: %s\n", format)
		fmt.Fprintf(os.Stderr, "💡 Run 'article-writer formats' to list the supported formats\n")
		os.Exit(1)
	}

	topic, _ := cmd.Flags().GetString("context")
	additionalInfo, _ := cmd.Flags().GetString("additional-info")

	genCtx := core.GenerationContext{
		Topic:          topic,
		AdditionalInfo: additionalInfo,
		Format:         format,
		WordCount:      wordCount,
		Audience:       audience,
		Research:       research,
	}

	delay := config.GetDownloadDelay()
	if cmd.Flags().Changed("delay") {
		delay, _ = cmd.Flags().GetDuration("delay")
	}

	outputDir := config.GetOutputDirectory()
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		outputDir = o
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if err := runGenerate(cmd.Context(), args, genCtx, delay, outputDir, dryRun); err != nil {
		logger.Error("Failed to generate article", err)
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, sources []string, genCtx core.GenerationContext, delay time.Duration, outputDir string, dryRun bool) error {
	logger.Info("Starting article generation",
		"sources", len(sources),
		"format", genCtx.Format,
		"word_count", genCtx.WordCount,
		"research", genCtx.Research,
		"dry_run", dryRun,
	)

	fmt.Printf("🎬 Generating %s from %d video(s)\n\n", genCtx.Format, len(sources))

	transcripts, err := youtube.FetchAll(ctx, sources, config.GetTranscriptLanguages(), delay)
	if err != nil {
		return fmt.Errorf("failed to fetch transcripts: %w", err)
	}

	if dryRun {
		logger.Info("Dry run mode - performing cost estimation", "transcripts", len(transcripts))
		return runDryRun(ctx, transcripts, genCtx)
	}

	client, err := gemini.NewClient(config.GetBodyModel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "💡 Run with --dry-run to preview costs without an API key\n")
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	p, err := pipeline.NewBuilder().
		WithGeminiClient(client).
		WithProbeTimeout(config.GetVerifyTimeout()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	result, err := p.GenerateArticle(ctx, transcripts, genCtx)
	if err != nil {
		return err
	}

	outputPath, err := render.WriteArticleToFile(result.Article, outputDir)
	if err != nil {
		return fmt.Errorf("failed to write article: %w", err)
	}

	logger.Info("Article generated",
		"run_id", result.RunID,
		"title", result.Article.Title,
		"output", outputPath,
	)

	lines := []string{
		fmt.Sprintf("Title: %s", result.Article.Title),
		fmt.Sprintf("Format: %s", result.Article.Format),
		fmt.Sprintf("Words: %d", len(strings.Fields(result.Article.Content))),
		fmt.Sprintf("Transcripts: %d", result.Stats.TranscriptCount),
		fmt.Sprintf("Output: %s", outputPath),
		fmt.Sprintf("Duration: %s", result.Stats.ProcessingTime.Round(time.Second)),
	}
	fmt.Println()
	fmt.Println(tui.RenderSummary("✅ Article generated", lines))

	return nil
}

// runDryRun estimates the cost of the run without calling the generation
// endpoints. With a configured API key the body prompt is counted exactly
// through the CountTokens API; otherwise a character heuristic is used.
func runDryRun(ctx context.Context, transcripts []core.Transcript, genCtx core.GenerationContext) error {
	models := cost.StageModels{
		Body:       config.GetBodyModel(),
		Title:      config.GetTitleModel(),
		References: config.GetReferencesModel(),
	}

	var counter cost.TokenCounter
	if config.HasValidAPIKey() {
		apiKey := config.GetGeminiAPIKey()
		counter = func(ctx context.Context, model string, text string) (int, error) {
			return cost.CountTokens(ctx, apiKey, model, text)
		}
	}

	estimate, err := cost.EstimateRunCost(ctx, transcripts, genCtx, models, counter)
	if err != nil {
		return fmt.Errorf("failed to estimate costs: %w", err)
	}

	fmt.Println()
	fmt.Print(estimate.FormatEstimate())
	return nil
}
