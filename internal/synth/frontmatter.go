package synth

import (
	"strings"

	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/research"
)

// maxDescriptionLen caps the frontmatter description, ellipsis included.
const maxDescriptionLen = 120

// allowedToolsByType holds the four fixed category→toolset mappings.
var allowedToolsByType = map[research.SkillType][]string{
	research.SkillTypeTechnique: {"Read", "Grep", "Glob"},
	research.SkillTypePattern:   {"Read", "Grep", "Glob", "Edit"},
	research.SkillTypeReference: {"Read", "WebFetch"},
	research.SkillTypeWorkflow:  {"Read", "Edit", "Write", "Bash"},
}

// buildFrontmatter derives the document frontmatter from the
// requirements: a normalized short description, the toolset for the
// skill category, and cross-references to related skills detected in
// the search patterns.
func buildFrontmatter(req research.Requirements) library.Frontmatter {
	return library.Frontmatter{
		Name:          req.Name,
		Description:   normalizeDescription(req.Purpose),
		Category:      string(req.SkillType),
		AllowedTools:  allowedTools(req.SkillType),
		RelatedSkills: relatedSkills(req),
	}
}

// normalizeDescription canonicalizes a leading "use when" phrase and
// truncates to maxDescriptionLen runes with an ellipsis.
func normalizeDescription(purpose string) string {
	desc := strings.TrimSpace(purpose)
	lower := strings.ToLower(desc)

	switch {
	case strings.HasPrefix(lower, "use when "):
		desc = "Use when " + strings.TrimSpace(desc[len("use when "):])
	case strings.HasPrefix(lower, "when to use "):
		desc = "Use when " + strings.TrimSpace(desc[len("when to use "):])
	case strings.HasPrefix(lower, "when "):
		desc = "Use when " + strings.TrimSpace(desc[len("when "):])
	}

	runes := []rune(desc)
	if len(runes) > maxDescriptionLen {
		desc = strings.TrimSpace(string(runes[:maxDescriptionLen-3])) + "..."
	}
	return desc
}

// allowedTools returns the toolset for the category, defaulting to the
// technique toolset for unknown categories.
func allowedTools(skillType research.SkillType) []string {
	tools, ok := allowedToolsByType[skillType]
	if !ok {
		tools = allowedToolsByType[research.SkillTypeTechnique]
	}
	out := make([]string, len(tools))
	copy(out, tools)
	return out
}

// relatedSkills scans the free-text search patterns for domain keyword
// groups and returns the deduplicated cross-references they imply.
func relatedSkills(req research.Requirements) []string {
	seen := make(map[string]bool)
	var related []string
	for _, pattern := range req.SearchPatterns {
		for _, group := range matchingGroups(pattern) {
			for _, skill := range relatedSkillsByGroup[group] {
				if skill == req.Name || seen[skill] {
					continue
				}
				seen[skill] = true
				related = append(related, skill)
			}
		}
	}
	return related
}
