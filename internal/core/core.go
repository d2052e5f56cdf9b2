package core

import "time"

// Transcript represents a single downloaded video transcript.
type Transcript struct {
	ID          string    `json:"id"`           // Unique identifier for the transcript
	VideoID     string    `json:"video_id"`     // 11-character YouTube video ID
	VideoURL    string    `json:"video_url"`    // Original URL or ID the transcript was requested with
	Title       string    `json:"title"`        // Video title from oEmbed metadata (can be empty)
	Channel     string    `json:"channel"`      // Channel name from oEmbed metadata (can be empty)
	Text        string    `json:"text"`         // Cleaned transcript text
	DateFetched time.Time `json:"date_fetched"` // Timestamp when the transcript was downloaded
}

// GenerationContext carries the user-supplied parameters for one generation run.
type GenerationContext struct {
	Topic          string `json:"topic"`           // Optional topic/context for the article (can be empty)
	AdditionalInfo string `json:"additional_info"` // Optional free-form notes, may contain links (can be empty)
	Format         string `json:"format"`          // Article format identifier (e.g., "LinkedIn Article")
	WordCount      int    `json:"word_count"`      // Target word count for the article body
	Audience       string `json:"audience"`        // Target audience description
	Research       bool   `json:"research"`        // Whether grounding tools are enabled for the body stage
}

// PromptPair bundles the system instruction and user prompt for one model call.
type PromptPair struct {
	System string `json:"system"` // System instruction text
	User   string `json:"user"`   // User prompt text
}

// ParsedArticle is the result of splitting a raw body response into content and hashtags.
type ParsedArticle struct {
	Content  string   `json:"content"`  // Article body with the hashtag line removed
	Hashtags []string `json:"hashtags"` // Extracted hashtag tokens (can be empty)
}

// ReferencesResult captures the outcome of the references stage.
type ReferencesResult struct {
	Text          string   `json:"text"`           // References section text
	Links         []string `json:"links"`          // Links extracted from the accepted references text
	VerifiedLinks []string `json:"verified_links"` // User-provided links that passed verification
	Regenerated   bool     `json:"regenerated"`    // Whether the one-shot regeneration pass was triggered
	UsedFallback  bool     `json:"used_fallback"`  // Whether the placeholder references text was used
}

// Article is a fully generated article before assembly into markdown.
type Article struct {
	Title       string    `json:"title"`        // Generated or fallback title
	Content     string    `json:"content"`      // Article body without title, references or hashtags
	References  string    `json:"references"`   // References section text
	Hashtags    []string  `json:"hashtags"`     // Hashtags extracted from the body response
	Format      string    `json:"format"`       // Article format identifier
	GeneratedAt time.Time `json:"generated_at"` // Timestamp when generation finished
}
