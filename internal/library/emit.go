package library

import (
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/patternforge/skillsmith/internal/config"
	"github.com/patternforge/skillsmith/internal/logging"
)

// OutputFile is one auxiliary artifact to write relative to the skill
// directory, e.g. "references/react.md" or "templates/go/index.md".
type OutputFile struct {
	Path    string
	Content string
}

// Document is a complete skill ready to be written to disk.
type Document struct {
	Frontmatter Frontmatter
	Body        string
	Files       []OutputFile
}

// Emit writes the skill document and its auxiliary files into dir,
// creating the directory tree as needed. Every auxiliary path is
// resolved with securejoin so a generated path can never escape the
// skill directory.
func Emit(dir string, doc Document) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	content, err := WriteFrontmatter(doc.Frontmatter, []byte(doc.Body))
	if err != nil {
		return err
	}
	skillPath := filepath.Join(dir, config.SkillFileName)
	if err := os.WriteFile(skillPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.SkillFileName, err)
	}

	for _, file := range doc.Files {
		path, err := securejoin.SecureJoin(dir, file.Path)
		if err != nil {
			return fmt.Errorf("invalid artifact path %q: %w", file.Path, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", file.Path, err)
		}
		if err := os.WriteFile(path, []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	logging.Debug("skill emitted", "dir", dir, "files", len(doc.Files))
	return nil
}
