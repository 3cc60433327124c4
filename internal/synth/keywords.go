package synth

import "strings"

// keywordGroups drives both related-skill detection and preference
// boosts. Matching is approximate lowercase substring containment;
// anything that does not match simply falls back to boilerplate
// content, so over- and under-matching degrade gracefully.
var keywordGroups = map[string][]string{
	"frontend": {"react", "vue", "svelte", "component", "frontend", "css", "ui"},
	"backend":  {"api", "server", "database", "backend", "endpoint", "service"},
	"testing":  {"test", "testing", "mock", "coverage", "assertion", "fixture"},
	"infra":    {"docker", "kubernetes", "deploy", "pipeline", "infra", "terraform"},
	"docs":     {"documentation", "readme", "changelog", "guide", "docs"},
}

// relatedSkillsByGroup maps each keyword group to the library skills
// worth cross-referencing from a new skill in that domain.
var relatedSkillsByGroup = map[string][]string{
	"frontend": {"frontend-patterns"},
	"backend":  {"backend-services"},
	"testing":  {"testing-strategies"},
	"infra":    {"infrastructure-setup"},
	"docs":     {"documentation-style"},
}

// matchingGroups returns the keyword groups whose keywords appear in
// the given text, in a stable order.
func matchingGroups(text string) []string {
	lower := strings.ToLower(text)
	var groups []string
	for _, group := range groupOrder {
		for _, kw := range keywordGroups[group] {
			if strings.Contains(lower, kw) {
				groups = append(groups, group)
				break
			}
		}
	}
	return groups
}

// groupOrder fixes iteration order over keywordGroups so output is
// deterministic.
var groupOrder = []string{"frontend", "backend", "testing", "infra", "docs"}

// groupForPreference resolves a declared content preference to a
// keyword group, or "" when none matches.
func groupForPreference(pref string) string {
	lower := strings.ToLower(strings.TrimSpace(pref))
	if lower == "" {
		return ""
	}
	if _, ok := keywordGroups[lower]; ok {
		return lower
	}
	// A preference phrased as free text still counts if it names a group.
	for _, group := range groupOrder {
		if strings.Contains(lower, group) {
			return group
		}
	}
	return ""
}

// topicKeywords extracts the significant lowercase words of a section
// title or workflow name for snippet matching.
func topicKeywords(topic string) []string {
	var words []string
	for _, w := range strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

// matchesTopic reports whether any topic keyword appears in the text.
// With no usable keywords everything matches, so sparse topics still
// pick up snippets.
func matchesTopic(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
