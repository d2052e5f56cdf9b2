package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/rahimkhoja/ai-article-writer/test/mocks"
)

func TestBuilderRequiresClient(t *testing.T) {
	_, err := NewBuilder().Build()
	if err == nil {
		t.Fatal("Expected error when no client is configured")
	}
	if !strings.Contains(err.Error(), "gemini client is required") {
		t.Errorf("Expected missing client error, got %v", err)
	}
}

func TestBuilderWithGenerator(t *testing.T) {
	p, err := NewBuilder().
		WithGenerator(&mocks.MockArticleGenerator{}).
		Build()
	if err != nil {
		t.Fatalf("Expected no error with a custom generator, got %v", err)
	}
	if p == nil {
		t.Fatal("Expected a pipeline instance")
	}
	if p.prober == nil {
		t.Error("Expected a default prober to be wired")
	}
}

func TestBuilderWithProbeTimeout(t *testing.T) {
	p, err := NewBuilder().
		WithGenerator(&mocks.MockArticleGenerator{}).
		WithProbeTimeout(5 * time.Second).
		Build()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.config.ProbeTimeout != 5*time.Second {
		t.Errorf("Expected probe timeout 5s, got %v", p.config.ProbeTimeout)
	}
}

func TestBuilderWithCustomProber(t *testing.T) {
	prober := &mocks.MockLinkProber{}
	p, err := NewBuilder().
		WithGenerator(&mocks.MockArticleGenerator{}).
		WithProber(prober).
		Build()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.prober != prober {
		t.Error("Expected the custom prober to be used")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ProbeTimeout != 10*time.Second {
		t.Errorf("Expected default probe timeout 10s, got %v", cfg.ProbeTimeout)
	}
}
