package library

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/patternforge/skillsmith/internal/config"
)

// SkillTemplate is the structural skeleton borrowed from an existing
// skill: its section headings, which auxiliary directories it carries,
// and which frontmatter fields it fills in.
type SkillTemplate struct {
	Name              string
	Sections          []string
	HasReferences     bool
	HasTemplates      bool
	HasExamples       bool
	FrontmatterFields []string
}

// ReadSkeleton extracts the structural template of the skill stored in
// dir. It reads SKILL.md, collects its level-2 headings in order, and
// checks for the auxiliary subdirectories.
func ReadSkeleton(dir string) (*SkillTemplate, error) {
	data, err := os.ReadFile(filepath.Join(dir, config.SkillFileName))
	if err != nil {
		return nil, err
	}

	fm, body, err := ParseFrontmatter(data)
	if err != nil {
		return nil, err
	}

	tmpl := &SkillTemplate{
		Name:              fm.Name,
		Sections:          sectionHeadings(body),
		FrontmatterFields: fm.FieldNames(),
	}
	if tmpl.Name == "" {
		tmpl.Name = filepath.Base(dir)
	}

	tmpl.HasReferences = dirExists(filepath.Join(dir, "references"))
	tmpl.HasTemplates = dirExists(filepath.Join(dir, "templates"))
	tmpl.HasExamples = dirExists(filepath.Join(dir, "examples"))

	return tmpl, nil
}

// sectionHeadings returns the text of every "## " heading, in order.
func sectionHeadings(body []byte) []string {
	var headings []string
	scanner := bufio.NewScanner(bytes.NewReader(body))
	inFence := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(line, "## ") {
			headings = append(headings, strings.TrimSpace(strings.TrimPrefix(line, "## ")))
		}
	}
	return headings
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
