// Package formatter builds the prompt sent to the commit message generator.
package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// diffPromptLimit caps the diff portion of the prompt; very large diffs are
// truncated rather than rejected.
const diffPromptLimit = 4000

// BuildPrompt assembles the generation prompt from the changed file list and
// the diff captured before staging.
func BuildPrompt(changedFiles []string, diff string) string {
	if len(diff) > diffPromptLimit {
		diff = truncateToValidUTF8(diff, diffPromptLimit) + "...(content is too long, truncated)"
	}

	var b strings.Builder
	b.WriteString("Generate a commit message for the following changes. ")
	b.WriteString("Use the Conventional Commits format (type(scope): description). ")
	b.WriteString("Reply with the commit message only, no explanations.\n")

	if len(changedFiles) > 0 {
		b.WriteString("\nChanged files:\n")
		for _, file := range changedFiles {
			fmt.Fprintf(&b, "- %s\n", file)
		}
	}

	b.WriteString("\nDiff:\n")
	b.WriteString(diff)

	return b.String()
}

// truncateToValidUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateToValidUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	truncated := s[:limit]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}
