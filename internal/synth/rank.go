package synth

import (
	"sort"
	"strings"

	"github.com/patternforge/skillsmith/internal/research"
)

// dedupeSections removes duplicate titles, keeping the higher-priority
// body at the position of the first occurrence.
func dedupeSections(sections []Section) []Section {
	index := make(map[string]int, len(sections))
	out := make([]Section, 0, len(sections))

	for _, section := range sections {
		key := strings.ToLower(strings.TrimSpace(section.Title))
		if at, seen := index[key]; seen {
			if section.Priority > out[at].Priority {
				out[at] = section
			}
			continue
		}
		index[key] = len(out)
		out = append(out, section)
	}
	return out
}

// prioritize boosts each section by 10 per keyword group that both the
// section text and a stated content preference belong to, then orders
// sections by descending priority. The sort is stable so equal
// priorities keep their build order, and References stays last because
// its base priority sits below any reachable boost floor.
func prioritize(sections []Section, req research.Requirements) []Section {
	prefGroups := make(map[string]bool)
	for _, pref := range req.ContentPreferences {
		if group := groupForPreference(pref); group != "" {
			prefGroups[group] = true
		}
	}

	out := make([]Section, len(sections))
	copy(out, sections)

	if len(prefGroups) > 0 {
		for i := range out {
			if out[i].Title == titleReferences {
				continue
			}
			for _, group := range matchingGroups(out[i].Title + " " + out[i].Content) {
				if prefGroups[group] {
					out[i].Priority += 10
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
