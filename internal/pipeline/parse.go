package pipeline

import (
	"regexp"
	"strings"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
	"github.com/rahimkhoja/ai-article-writer/internal/prompt"
)

// hashtagMarkerRegex matches the hashtag marker at the start of a line.
// Mid-line occurrences of the marker text are prose, not markers.
var hashtagMarkerRegex = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(prompt.HashtagMarker))

// ParseArticleResponse splits a raw body response into article content and
// hashtags. The last line-anchored marker wins. Everything after the marker
// is whitespace-split into hashtags, and everything before the marker line
// is trimmed content. A response without a marker is all content.
func ParseArticleResponse(raw string) core.ParsedArticle {
	matches := hashtagMarkerRegex.FindAllStringIndex(raw, -1)
	if len(matches) == 0 {
		return core.ParsedArticle{Content: strings.TrimSpace(raw)}
	}

	last := matches[len(matches)-1]
	return core.ParsedArticle{
		Content:  strings.TrimSpace(raw[:last[0]]),
		Hashtags: strings.Fields(raw[last[1]:]),
	}
}
