package synth

import (
	"fmt"
	"strings"

	"github.com/patternforge/skillsmith/internal/research"
)

// buildExamples renders worked examples: one file per related test
// found in the codebase, plus a walkthrough per declared workflow when
// no tests matched it.
func buildExamples(input research.GenerationInput) []File {
	var files []File
	req := input.Requirements

	if cb := input.CodebasePatterns; cb != nil {
		for i, test := range cb.RelatedTests {
			var sb strings.Builder
			sb.WriteString("# Example: " + exampleTitle(test) + "\n\n")
			if test.Context != "" {
				sb.WriteString(test.Context + "\n\n")
			}
			sb.WriteString(fenced(&cb.RelatedTests[i]))

			files = append(files, File{
				Path:    fmt.Sprintf("examples/test-%02d.md", i+1),
				Content: sb.String(),
				Type:    FileTypeExample,
			})
		}
	}

	for i, workflow := range req.Workflows {
		if hasExampleFor(input, workflow) {
			continue
		}
		var sb strings.Builder
		sb.WriteString("# Walkthrough: " + workflowTitle(workflow) + "\n\n")
		sb.WriteString(strings.TrimSpace(workflow) + ", step by step:\n\n")
		sb.WriteString("1. Start from the Quick Reference in SKILL.md\n")
		sb.WriteString("2. Apply the workflow to the smallest relevant unit\n")
		sb.WriteString("3. Compare the result against the Conventions section\n")

		files = append(files, File{
			Path:    fmt.Sprintf("examples/walkthrough-%02d.md", i+1),
			Content: sb.String(),
			Type:    FileTypeExample,
		})
	}

	return files
}

// hasExampleFor reports whether any related test already covers the
// workflow's topic.
func hasExampleFor(input research.GenerationInput, workflow string) bool {
	if input.CodebasePatterns == nil {
		return false
	}
	keywords := topicKeywords(workflow)
	if len(keywords) == 0 {
		return false
	}
	for _, test := range input.CodebasePatterns.RelatedTests {
		if matchesTopic(test.Content+" "+test.Context, keywords) {
			return true
		}
	}
	return false
}

func exampleTitle(test research.CodeBlock) string {
	if test.Path != "" {
		return test.Path
	}
	return "related test"
}
