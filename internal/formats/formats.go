// Package formats defines the supported article formats and their prompt
// profiles.
package formats

// ArticleFormat identifies a supported article output format.
type ArticleFormat string

const (
	// FormatLinkedInArticle is a long-form LinkedIn article with hashtags
	FormatLinkedInArticle ArticleFormat = "LinkedIn Article"
	// FormatLinkedInPost is a short LinkedIn post with hashtags
	FormatLinkedInPost ArticleFormat = "LinkedIn Post"
	// FormatSubstack is a newsletter-style long-form article
	FormatSubstack ArticleFormat = "Substack"
	// FormatRedditPost is a conversational post with a TL;DR summary
	FormatRedditPost ArticleFormat = "Reddit Post"
	// FormatBlogPost is a standard blog article
	FormatBlogPost ArticleFormat = "Blog Post"
	// FormatTwitterThread is a numbered thread of tweet-sized chunks
	FormatTwitterThread ArticleFormat = "Twitter Thread"
)

// WordCountChoices lists the accepted target word counts for generation.
var WordCountChoices = []int{500, 1000, 1500, 2000, 2500, 3000}

// Profile contains the prompt configuration for an article format.
type Profile struct {
	Format     ArticleFormat // Canonical format identifier
	Guidelines string        // Formatting guidelines injected into the body prompt
	Hashtags   bool          // Whether the format ends with a hashtag line
}

const guidelinesLinkedInArticle = `OUTPUT FORMATTING (STRICT LINKEDIN STYLE):
The Hook: Start with a punchy, 1-2 sentence hook. No "In this post" or "Today we discuss." Jump straight into the tension or the value proposition.
Structure:
Use short paragraphs (1-2 sentences max).
Use double line breaks for "white space" readability.
Use bullet points for technical comparisons or feature lists.
Tone: Professional, insightful, slightly conversational but highly technical.
Emojis: Use them to break up text, but do not overdo it. (e.g., 🚀 🛠️ 💡).
Engagement: End with a specific question to the audience to drive comments.
Hashtags: 3-5 relevant tags at the very bottom.`

const guidelinesLinkedInPost = `OUTPUT FORMATTING (LINKEDIN POST STYLE):
Keep it concise and punchy (under 3000 characters).
Start with a strong hook that grabs attention.
Use short paragraphs and line breaks for readability.
Include emojis sparingly for visual appeal.
End with a call-to-action or question.
Hashtags: 3-5 relevant tags at the bottom.`

const guidelinesSubstack = `OUTPUT FORMATTING (SUBSTACK STYLE):
Professional newsletter/article format.
Longer form content with clear sections.
Use headers and subheaders to break up content.
Include engaging introduction and conclusion.
More narrative and storytelling approach.
No hashtags needed.`

const guidelinesRedditPost = `OUTPUT FORMATTING (REDDIT POST STYLE):
Conversational and engaging tone.
Use clear formatting with headers and bullet points.
Include TL;DR (Too Long; Didn't Read) summary at the top.
Engage with the community style - ask questions, invite discussion.
Use markdown formatting for readability.
No hashtags needed.`

const guidelinesBlogPost = `OUTPUT FORMATTING (BLOG POST STYLE):
Professional blog article format.
Clear introduction, body, and conclusion.
Use headers and subheaders for structure.
Include engaging narrative and examples.
SEO-friendly structure.
No hashtags needed.`

const guidelinesTwitterThread = `OUTPUT FORMATTING (TWITTER THREAD STYLE):
Break content into tweet-sized chunks (280 characters each).
Number each tweet (1/n, 2/n, etc.).
Start with a hook tweet that grabs attention.
Each tweet should be self-contained but part of a narrative.
Use emojis and formatting for engagement.
Include a final tweet with key takeaways.
No hashtags needed.`

// GetProfile returns the profile for the specified format identifier.
// Unknown identifiers fall back to the LinkedIn Article profile.
func GetProfile(format string) Profile {
	switch ArticleFormat(format) {
	case FormatLinkedInArticle:
		return Profile{
			Format:     FormatLinkedInArticle,
			Guidelines: guidelinesLinkedInArticle,
			Hashtags:   true,
		}
	case FormatLinkedInPost:
		return Profile{
			Format:     FormatLinkedInPost,
			Guidelines: guidelinesLinkedInPost,
			Hashtags:   true,
		}
	case FormatSubstack:
		return Profile{
			Format:     FormatSubstack,
			Guidelines: guidelinesSubstack,
			Hashtags:   false,
		}
	case FormatRedditPost:
		return Profile{
			Format:     FormatRedditPost,
			Guidelines: guidelinesRedditPost,
			Hashtags:   false,
		}
	case FormatBlogPost:
		return Profile{
			Format:     FormatBlogPost,
			Guidelines: guidelinesBlogPost,
			Hashtags:   false,
		}
	case FormatTwitterThread:
		return Profile{
			Format:     FormatTwitterThread,
			Guidelines: guidelinesTwitterThread,
			Hashtags:   false,
		}
	default:
		return GetProfile(string(FormatLinkedInArticle))
	}
}

// GetAvailableFormats returns all supported format identifiers.
func GetAvailableFormats() []string {
	return []string{
		string(FormatLinkedInArticle),
		string(FormatLinkedInPost),
		string(FormatSubstack),
		string(FormatRedditPost),
		string(FormatBlogPost),
		string(FormatTwitterThread),
	}
}

// IsValidFormat reports whether the identifier names a supported format.
func IsValidFormat(format string) bool {
	for _, f := range GetAvailableFormats() {
		if f == format {
			return true
		}
	}
	return false
}
