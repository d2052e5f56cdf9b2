// Package prompt composes the system instructions and user prompts for the
// three generation stages: body, title and references.
package prompt

import (
	"fmt"
	"strings"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
	"github.com/rahimkhoja/ai-article-writer/internal/formats"
	"github.com/rahimkhoja/ai-article-writer/internal/links"
)

// HashtagMarker is the line prefix the body stage is instructed to emit
// before its hashtag list. The response parser looks for the same prefix.
const HashtagMarker = "HASHTAGS:"

const bodySystemTemplate = `ROLE & OBJECTIVE:
You are a Senior Technical Evangelist and Engineering Editor. Your goal is to ingest multiple raw transcripts (attached by the user), filter out conversational noise, synthesize the technical concepts, and produce a high-impact %s. It should be informative, and provide core concepts to people. %s

YOUR DATA SOURCE:
The user will attach multiple files (transcripts/notes). These contain the source of truth.
Prioritize Synthesis: Do not just summarize one file after another. Look for patterns, conflicting opinions, and complementary technical details across all provided files to create a unified narrative.
Ignore Fluff: Disregard conversational filler (e.g., "Can you hear me?", "Next slide", jokes). Focus purely on architectural details, technical trade-offs, and engineering insights.

CONTENT GUIDELINES:
Fairness is Key: When comparing technologies (e.g., Ray vs. Triton), you must be objective. Highlight where Tool A shines and where Tool B is better. Avoid marketing hype; focus on engineering reality.
Depth: The content must be useful to a technical practitioner. Do not stay on the surface.

%s

IMPORTANT OUTPUT REQUIREMENTS:
%s

INTERACTION MODEL:
The user will provide the files and a specific "Context Block" containing the Topic, Angle, and Audience. You will wait for this input, analyze the attached files based on those variables, and generate the %s.`

const bodyUserTemplate = `%s%s

Please analyze the following transcripts and generate a %s based on the guidelines above:

%s

Remember to:
%s`

const titleSystemTemplate = `You are an expert at creating compelling, attention-grabbing titles for %ss.

Your task is to generate a single, engaging title based on the article content provided.

Guidelines:
- The title should be concise (ideally 6-12 words, maximum 15 words)
- It should capture the main value proposition or key insight
- It should be optimized for the target audience: %s
- Make it compelling and click-worthy while remaining accurate
- Do not use quotes, colons, or special formatting unless necessary
- Return ONLY the title, nothing else`

const titleUserTemplate = `Based on the following %s content, generate a compelling title.%s

Target Audience: %s

Article Content:
%s

Generate a single, compelling title (6-12 words, max 15 words):`

const referencesSystemTemplate = `You are an expert at creating reference sections for %ss.

Your task is to generate a references section with 2-5 high-quality references based on the article content.

Guidelines:
- Generate 2-5 references (aim for 3-4 ideally)
- All links MUST be verified and accessible
- Include a mix of documentation, articles, research papers, or official resources
- Prioritize any verified links provided by the user
- Each reference should include: title/description and URL
- Format: [Title/Description](URL)
- Ensure all URLs are valid and accessible
- Target audience: %s
- Return ONLY the references section in markdown format, nothing else`

const referencesUserTemplate = `Based on the following %s content, generate a references section with 2-5 verified links.

Article Title: %s
Target Audience: %s%s

Article Content:
%s

Generate a references section with 2-5 verified, accessible links. Format as markdown links: [Title](URL)`

const referencesRetryUserTemplate = `The previous response contained invalid links. Please regenerate the references section with ONLY verified, accessible links.

Article Title: %s
Target Audience: %s%s

Article Content:
%s

Generate a references section with 2-5 verified, accessible links. Format as markdown links: [Title](URL)
IMPORTANT: Only include links that you can verify are accessible.`

// WordRange returns the acceptable word count range for a target: 90% to
// 110% of the target, truncated.
func WordRange(target int) (low int, high int) {
	return int(float64(target) * 0.9), int(float64(target) * 1.1)
}

// ComposeBodyPrompt builds the prompt pair for the article body stage. The
// hashtag instructions are included only when the format profile marks
// hashtags as applicable.
func ComposeBodyPrompt(transcripts []core.Transcript, genCtx core.GenerationContext) core.PromptPair {
	profile := formats.GetProfile(genCtx.Format)
	typeLower := strings.ToLower(genCtx.Format)

	low, high := WordRange(genCtx.WordCount)
	sizeGuidance := fmt.Sprintf("The %s should be approximately %d words (target: %d words, acceptable range: %d-%d words).",
		typeLower, genCtx.WordCount, genCtx.WordCount, low, high)

	requirements := "1. DO NOT include a title in your response - only provide the article content"
	if profile.Hashtags {
		requirements += fmt.Sprintf("\n2. At the end, include a line with \"%s \" followed by 3-5 relevant hashtags separated by spaces", HashtagMarker)
	}

	system := fmt.Sprintf(bodySystemTemplate, typeLower, sizeGuidance, profile.Guidelines, requirements, typeLower)

	var contextBlock string
	if strings.TrimSpace(genCtx.Topic) != "" {
		contextBlock = fmt.Sprintf("\nCONTEXT BLOCK:\nTopic: %s\nAngle: Technical deep-dive with practical insights\nAudience: %s\n",
			genCtx.Topic, genCtx.Audience)
	} else {
		contextBlock = fmt.Sprintf("\nCONTEXT BLOCK:\nAngle: Technical deep-dive with practical insights\nAudience: %s\n",
			genCtx.Audience)
	}

	var additionalBlock string
	if strings.TrimSpace(genCtx.AdditionalInfo) != "" {
		linksText := ""
		if found := links.ExtractLinks(genCtx.AdditionalInfo); len(found) > 0 {
			linksText = "\n\nIMPORTANT: The following links are provided for you to review and potentially reference:"
			for _, link := range found {
				linksText += "\n- " + link
			}
		}
		additionalBlock = fmt.Sprintf("\nADDITIONAL INFORMATION:\n%s%s\n\nPlease review any provided links and incorporate relevant information from them into the article.\n",
			genCtx.AdditionalInfo, linksText)
	}

	var transcriptContent strings.Builder
	for i, transcript := range transcripts {
		fmt.Fprintf(&transcriptContent, "\n\n--- TRANSCRIPT %d ---\n\n%s\n", i+1, transcript.Text)
	}

	reminders := fmt.Sprintf("1. Include the full %s content (NO TITLE - title will be generated separately)\n2. DO NOT include a references section - that will be generated separately", typeLower)
	if profile.Hashtags {
		reminders += fmt.Sprintf("\n3. End with \"%s \" followed by 3-5 relevant hashtags", HashtagMarker)
	}

	user := fmt.Sprintf(bodyUserTemplate, contextBlock, additionalBlock, genCtx.Format, transcriptContent.String(), reminders)

	return core.PromptPair{System: system, User: user}
}

// ComposeTitlePrompt builds the prompt pair for the title stage.
func ComposeTitlePrompt(content string, genCtx core.GenerationContext) core.PromptPair {
	typeLower := strings.ToLower(genCtx.Format)

	contextInfo := ""
	if strings.TrimSpace(genCtx.Topic) != "" {
		contextInfo = "\nContext/Topic: " + genCtx.Topic
	}

	system := fmt.Sprintf(titleSystemTemplate, typeLower, genCtx.Audience)
	user := fmt.Sprintf(titleUserTemplate, typeLower, contextInfo, genCtx.Audience, content)

	return core.PromptPair{System: system, User: user}
}

// ComposeReferencesPrompt builds the prompt pair for the first references
// call. verifiedLinks are user-provided links that passed verification and
// are surfaced to the model for prioritization.
func ComposeReferencesPrompt(content, title string, genCtx core.GenerationContext, verifiedLinks []string) core.PromptPair {
	typeLower := strings.ToLower(genCtx.Format)

	system := fmt.Sprintf(referencesSystemTemplate, typeLower, genCtx.Audience)
	user := fmt.Sprintf(referencesUserTemplate, typeLower, title, genCtx.Audience, verifiedLinksContext(verifiedLinks), content)

	return core.PromptPair{System: system, User: user}
}

// ComposeReferencesRetryPrompt builds the prompt pair for the one-shot
// references regeneration after dead links were found. It shares the system
// instruction with the first call.
func ComposeReferencesRetryPrompt(content, title string, genCtx core.GenerationContext, verifiedLinks []string) core.PromptPair {
	typeLower := strings.ToLower(genCtx.Format)

	system := fmt.Sprintf(referencesSystemTemplate, typeLower, genCtx.Audience)
	user := fmt.Sprintf(referencesRetryUserTemplate, title, genCtx.Audience, verifiedLinksContext(verifiedLinks), content)

	return core.PromptPair{System: system, User: user}
}

func verifiedLinksContext(verifiedLinks []string) string {
	if len(verifiedLinks) == 0 {
		return ""
	}
	context := "\n\nIMPORTANT: The following verified links were provided and should be prioritized in the references:"
	for _, link := range verifiedLinks {
		context += "\n- " + link
	}
	return context
}
