package synth

import (
	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/logging"
)

// selectTemplate picks the highest-scoring similar skill and reads its
// structural skeleton. Ties keep the first candidate. Any failure,
// meaning no candidates or an unreadable skill directory, returns nil: the
// template only biases the document shape and must never abort the
// synthesis.
func selectTemplate(similar []library.SimilarSkill) *library.SkillTemplate {
	if len(similar) == 0 {
		return nil
	}

	best := similar[0]
	for _, candidate := range similar[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	tmpl, err := library.ReadSkeleton(best.Dir)
	if err != nil {
		logging.Debug("template skeleton read failed", "skill", best.Name, "error", err)
		return nil
	}
	return tmpl
}

// templateHasSection reports whether the skeleton carries a section
// with the given title.
func templateHasSection(tmpl *library.SkillTemplate, title string) bool {
	if tmpl == nil {
		return false
	}
	for _, section := range tmpl.Sections {
		if section == title {
			return true
		}
	}
	return false
}
