package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rahimkhoja/ai-article-writer/internal/config"
	"github.com/rahimkhoja/ai-article-writer/internal/links"
)

// NewVerifyCmd creates the link verification command
func NewVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify [url]...",
		Short: "Check whether links are accessible",
		Long: `Probe each URL the same way the references stage does and report the
result. A link counts as accessible only when it answers with HTTP 200;
redirect loops, errors and non-200 statuses are all reported as dead.

Examples:
  article-writer verify https://example.com/article
  article-writer verify https://example.com/a https://example.com/b --timeout 5s`,
		Args: cobra.MinimumNArgs(1),
		Run:  verifyRunFunc,
	}

	verifyCmd.Flags().Duration("timeout", 0, "Probe timeout per link")

	return verifyCmd
}

func verifyRunFunc(cmd *cobra.Command, args []string) {
	timeout := config.GetVerifyTimeout()
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	fmt.Printf("🔍 Verifying %d link(s)\n\n", len(args))

	live := 0
	for _, rawURL := range args {
		report := links.Inspect(rawURL, timeout)
		switch {
		case report.Live && report.Title != "":
			fmt.Printf("   ✓ %s (%d) - %s\n", report.URL, report.StatusCode, report.Title)
			live++
		case report.Live:
			fmt.Printf("   ✓ %s (%d)\n", report.URL, report.StatusCode)
			live++
		case report.StatusCode != 0:
			fmt.Printf("   ✗ %s (%d)\n", report.URL, report.StatusCode)
		default:
			fmt.Printf("   ✗ %s (unreachable)\n", report.URL)
		}
	}

	fmt.Printf("\n%d/%d accessible\n", live, len(args))
}
