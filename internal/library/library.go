package library

import (
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/patternforge/skillsmith/internal/config"
	"github.com/patternforge/skillsmith/internal/logging"
)

// SkillInfo describes one existing skill in the library.
type SkillInfo struct {
	Name        string
	Description string
	Category    string
	Dir         string
}

// SimilarSkill pairs an existing skill with its similarity score
// against the skill being authored. Higher is more similar.
type SimilarSkill struct {
	SkillInfo
	Score int
}

// Scan walks the library directory and returns every parseable skill.
// Directories without a SKILL.md, or with unparseable frontmatter, are
// skipped silently: a half-written skill must not break the tool.
func Scan(dir string) ([]SkillInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var skills []SkillInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillDir := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(filepath.Join(skillDir, config.SkillFileName))
		if err != nil {
			continue
		}
		fm, _, err := ParseFrontmatter(data)
		if err != nil {
			logging.Debug("skipping skill with bad frontmatter", "dir", skillDir, "error", err)
			continue
		}
		name := fm.Name
		if name == "" {
			name = entry.Name()
		}
		skills = append(skills, SkillInfo{
			Name:        name,
			Description: fm.Description,
			Category:    fm.Category,
			Dir:         skillDir,
		})
	}

	logging.Debug("library scan complete", "dir", dir, "skills", len(skills))
	return skills, nil
}

// skillCorpus adapts []SkillInfo to fuzzy.Source, matching against the
// skill name and description together.
type skillCorpus []SkillInfo

func (c skillCorpus) String(i int) string { return c[i].Name + " " + c[i].Description }
func (c skillCorpus) Len() int            { return len(c) }

// Rank fuzzy-scores the library against a query (typically the new
// skill's name plus purpose) and returns matches ordered best first.
// An empty query or empty library yields nil.
func Rank(query string, skills []SkillInfo) []SimilarSkill {
	if query == "" || len(skills) == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, skillCorpus(skills))

	ranked := make([]SimilarSkill, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, SimilarSkill{
			SkillInfo: skills[m.Index],
			Score:     m.Score,
		})
	}
	return ranked
}
