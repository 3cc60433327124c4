package synth

import (
	"time"

	"github.com/patternforge/skillsmith/internal/library"
)

// Section is one titled content block of the skill document.
type Section struct {
	Title    string
	Content  string
	Source   string
	Priority int
}

// Section sources, recorded for provenance.
const (
	SourceRequirements = "requirements"
	SourceCodebase     = "codebase"
	SourceContext7     = "context7"
	SourceWeb          = "web"
)

// FileType classifies an auxiliary artifact.
type FileType string

const (
	FileTypeReference FileType = "reference"
	FileTypeTemplate  FileType = "template"
	FileTypeExample   FileType = "example"
)

// File is one auxiliary artifact, keyed by its path relative to the
// skill directory. Paths are unique within one synthesis run.
type File struct {
	Path    string
	Content string
	Type    FileType
}

// Metadata aggregates statistics and provenance for one synthesis run.
type Metadata struct {
	RunID        string
	GeneratedAt  time.Time
	TemplateName string
	SectionCount int
	FileCount    int
	TotalLines   int
	Sources      []string
}

// Content is the synthesized document model handed to the file emitter.
type Content struct {
	Frontmatter library.Frontmatter
	Sections    []Section
	References  []File
	Templates   []File
	Examples    []File
	Metadata    Metadata
}
