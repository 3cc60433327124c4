package synth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// buildMetadata records provenance and size statistics for one run.
func buildMetadata(content *Content, templateName string) Metadata {
	files := len(content.References) + len(content.Templates) + len(content.Examples)

	lines := 0
	seen := make(map[string]bool)
	var sources []string
	for _, section := range content.Sections {
		lines += strings.Count(section.Content, "\n")
		for _, source := range strings.Split(section.Source, "+") {
			if source == "" || seen[source] {
				continue
			}
			seen[source] = true
			sources = append(sources, source)
		}
	}
	for _, group := range [][]File{content.References, content.Templates, content.Examples} {
		for _, file := range group {
			lines += strings.Count(file.Content, "\n")
		}
	}

	return Metadata{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		TemplateName: templateName,
		SectionCount: len(content.Sections),
		FileCount:    files,
		TotalLines:   lines,
		Sources:      sources,
	}
}
