package synth

import (
	"strings"

	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/logging"
	"github.com/patternforge/skillsmith/internal/research"
)

// Options tunes one synthesis run.
type Options struct {
	// MaxTemplateFiles caps the snippet files emitted under templates/.
	// Zero means the default of 10.
	MaxTemplateFiles int
}

// Synthesize runs the full pipeline over the collected research: pick a
// structural template from the most similar existing skill, build the
// frontmatter, assemble sections in fixed order, deduplicate by title,
// prioritize, and render the auxiliary reference, template, and example
// files. It is a pure pass over its inputs except for the template
// skeleton read, whose failure degrades to no template.
func Synthesize(input research.GenerationInput, similar []library.SimilarSkill, opts Options) Content {
	tmpl := selectTemplate(similar)
	templateName := ""
	if tmpl != nil {
		templateName = tmpl.Name
	}

	content := Content{
		Frontmatter: buildFrontmatter(input.Requirements),
	}

	sections := buildSections(input, tmpl)
	sections = dedupeSections(sections)
	content.Sections = prioritize(sections, input.Requirements)

	content.References = buildReferences(input)
	content.Templates = buildTemplates(input, opts.MaxTemplateFiles)
	content.Examples = buildExamples(input)
	content.Metadata = buildMetadata(&content, templateName)

	logging.Debug("synthesis complete",
		"run_id", content.Metadata.RunID,
		"sections", content.Metadata.SectionCount,
		"files", content.Metadata.FileCount,
		"template", templateName)

	return content
}

// RenderBody renders the section list as the markdown body of SKILL.md,
// one H2 per section in priority order.
func RenderBody(content Content) string {
	var sb strings.Builder
	for i, section := range content.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## " + section.Title + "\n\n")
		sb.WriteString(strings.TrimRight(section.Content, "\n") + "\n")
	}
	return sb.String()
}

// Files flattens the auxiliary artifacts in emit order.
func Files(content Content) []File {
	out := make([]File, 0, len(content.References)+len(content.Templates)+len(content.Examples))
	out = append(out, content.References...)
	out = append(out, content.Templates...)
	out = append(out, content.Examples...)
	return out
}
