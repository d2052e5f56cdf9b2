package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
)

// DefaultOutputDir is used when no output directory is configured
const DefaultOutputDir = "articles"

// maxFilenameLength caps sanitized file names
const maxFilenameLength = 100

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	filenameWhitespace   = regexp.MustCompile(`\s+`)
)

// AssembleArticle joins the generated pieces into the final markdown
// document: title heading, body, references behind a divider, and an
// optional hashtag footer
func AssembleArticle(article core.Article) string {
	var doc strings.Builder

	doc.WriteString(fmt.Sprintf("# %s\n\n", article.Title))
	doc.WriteString(article.Content)
	doc.WriteString("\n\n---\n\n## References\n\n")
	doc.WriteString(article.References)

	if len(article.Hashtags) > 0 {
		doc.WriteString(fmt.Sprintf("\n\n---\n\n**Hashtags:** %s\n", strings.Join(article.Hashtags, " ")))
	}

	return doc.String()
}

// SanitizeFilename makes a title safe to use as a file name. Characters that
// are invalid on common filesystems are removed, whitespace runs become
// underscores, and the result is capped at 100 characters.
func SanitizeFilename(name string) string {
	cleaned := invalidFilenameChars.ReplaceAllString(name, "")
	cleaned = filenameWhitespace.ReplaceAllString(cleaned, "_")

	if utf8.RuneCountInString(cleaned) > maxFilenameLength {
		runes := []rune(cleaned)
		cleaned = string(runes[:maxFilenameLength])
	}
	return cleaned
}

// WriteArticleToFile assembles the article and writes it to outputDir,
// returning the path written
func WriteArticleToFile(article core.Article, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filename := SanitizeFilename(article.Title) + ".md"
	filePath := filepath.Join(outputDir, filename)

	err = os.WriteFile(filePath, []byte(AssembleArticle(article)), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write article file %s: %w", filePath, err)
	}

	return filePath, nil
}
