package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rahimkhoja/ai-article-writer/internal/core"
)

func TestAssembleArticle_WithHashtags(t *testing.T) {
	article := core.Article{
		Title:      "Scaling Beyond One Box",
		Content:    "Body paragraph.",
		References: "- [Doc](https://example.com/doc)",
		Hashtags:   []string{"#go", "#scale"},
	}

	got := AssembleArticle(article)
	want := "# Scaling Beyond One Box\n\n" +
		"Body paragraph.\n\n" +
		"---\n\n## References\n\n" +
		"- [Doc](https://example.com/doc)\n\n" +
		"---\n\n**Hashtags:** #go #scale\n"

	if got != want {
		t.Errorf("Expected assembled document:\n%q\ngot:\n%q", want, got)
	}
}

func TestAssembleArticle_NoHashtags(t *testing.T) {
	article := core.Article{
		Title:      "Plain Post",
		Content:    "Some content.",
		References: "- https://example.com/a",
	}

	got := AssembleArticle(article)

	if strings.Contains(got, "**Hashtags:**") {
		t.Error("Expected no hashtag footer when the article has no hashtags")
	}
	if !strings.HasPrefix(got, "# Plain Post\n\n") {
		t.Errorf("Expected title heading first, got %q", got)
	}
	if !strings.Contains(got, "\n\n---\n\n## References\n\n") {
		t.Error("Expected references divider and heading")
	}
}

func TestAssembleArticle_PlaceholderReferences(t *testing.T) {
	article := core.Article{
		Title:      "Degraded Run",
		Content:    "Content survived.",
		References: "\n\n## References\n\n*References could not be generated.*",
	}

	got := AssembleArticle(article)

	if !strings.Contains(got, "*References could not be generated.*") {
		t.Error("Expected placeholder references text to be embedded")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "forbidden characters removed",
			input: `What: A/B <Test>? "Maybe"|Not*`,
			want:  "What_AB_Test_MaybeNot",
		},
		{
			name:  "whitespace runs become single underscores",
			input: "Multiple   spaces\tand\nnewlines",
			want:  "Multiple_spaces_and_newlines",
		},
		{
			name:  "plain title unchanged",
			input: "Simple-Title_2025",
			want:  "Simple-Title_2025",
		},
		{
			name:  "long name capped at 100 characters",
			input: strings.Repeat("a", 150),
			want:  strings.Repeat("a", 100),
		},
		{
			name:  "multibyte characters survive the cap",
			input: strings.Repeat("é", 150),
			want:  strings.Repeat("é", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWriteArticleToFile(t *testing.T) {
	tmpDir := t.TempDir()
	article := core.Article{
		Title:      "My Great Article",
		Content:    "The body of the article.",
		References: "- https://example.com/source",
		Hashtags:   []string{"#writing"},
	}

	filePath, err := WriteArticleToFile(article, tmpDir)
	if err != nil {
		t.Fatalf("WriteArticleToFile failed: %v", err)
	}

	if filepath.Base(filePath) != "My_Great_Article.md" {
		t.Errorf("Expected sanitized file name, got %q", filepath.Base(filePath))
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		t.Fatal("Article file should be created")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read article file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "# My Great Article") {
		t.Error("Content should contain the title heading")
	}
	if !strings.Contains(contentStr, "The body of the article.") {
		t.Error("Content should contain the article body")
	}
	if !strings.Contains(contentStr, "https://example.com/source") {
		t.Error("Content should contain the references")
	}
	if !strings.Contains(contentStr, "**Hashtags:** #writing") {
		t.Error("Content should contain the hashtag footer")
	}
}

func TestWriteArticleToFile_CreatesNestedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "out", "articles")

	article := core.Article{Title: "Nested", Content: "x", References: "y"}
	filePath, err := WriteArticleToFile(article, nested)
	if err != nil {
		t.Fatalf("WriteArticleToFile failed: %v", err)
	}

	if !strings.HasPrefix(filePath, nested) {
		t.Errorf("Expected file under %q, got %q", nested, filePath)
	}
	if _, err := os.Stat(filePath); err != nil {
		t.Errorf("Expected file to exist, got %v", err)
	}
}
