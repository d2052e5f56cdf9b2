package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rahimkhoja/ai-article-writer/internal/formats"
)

// NewFormatsCmd creates the format listing command
func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported article formats",
		Long:  `Display all supported article formats and the accepted target word counts.`,
		Run: func(cmd *cobra.Command, args []string) {
			printAvailableFormats()
		},
	}
}

func printAvailableFormats() {
	fmt.Println("Available article formats:")
	fmt.Println("  LinkedIn Article - Long-form article with professional hashtags")
	fmt.Println("  LinkedIn Post    - Short post with a hook and hashtags")
	fmt.Println("  Substack         - Newsletter-style long-form article")
	fmt.Println("  Reddit Post      - Conversational post with a TL;DR")
	fmt.Println("  Blog Post        - Standard blog article")
	fmt.Println("  Twitter Thread   - Numbered thread of tweet-sized chunks")

	choices := make([]string, 0, len(formats.WordCountChoices))
	for _, wordCount := range formats.WordCountChoices {
		choices = append(choices, strconv.Itoa(wordCount))
	}
	fmt.Printf("\nTarget word counts: %s\n", strings.Join(choices, ", "))
	fmt.Printf("\nUsage: article-writer generate --format \"<format>\" <video-url>\n")
}
