// Package research defines the data gathered for a skill before synthesis.
//
// Requirements describe the skill being authored. The three enrichment
// inputs (codebase patterns, fetched package documentation, and web
// findings) are collected by external collaborators (search tools,
// documentation fetchers) and are always optional: synthesis degrades to
// boilerplate content when they are absent.
package research

// SkillType categorizes the skill being generated.
type SkillType string

const (
	SkillTypeTechnique SkillType = "technique"
	SkillTypePattern   SkillType = "pattern"
	SkillTypeReference SkillType = "reference"
	SkillTypeWorkflow  SkillType = "workflow"
)

// Requirements holds the mandatory description of the skill to generate.
type Requirements struct {
	Name               string
	Purpose            string
	SkillType          SkillType
	Audience           string
	Workflows          []string
	ContentPreferences []string
	SearchPatterns     []string
}

// FileMatch is a codebase file that matched a search pattern.
type FileMatch struct {
	Path    string
	Pattern string
	Matches int
}

// CodeBlock is a snippet extracted from the codebase.
type CodeBlock struct {
	Path     string
	Language string
	Content  string
	Context  string
}

// Convention is a recurring practice detected in the codebase.
type Convention struct {
	Name        string
	Description string
	Example     string
}

// CodebasePatterns aggregates everything the codebase search produced.
type CodebasePatterns struct {
	Files        []FileMatch
	Conventions  []Convention
	CodeBlocks   []CodeBlock
	RelatedTests []CodeBlock
}

// DocSectionKind distinguishes API listings from prose documentation.
type DocSectionKind string

const (
	DocSectionProse DocSectionKind = "prose"
	DocSectionAPI   DocSectionKind = "api"
)

// DocSection is one titled chunk of fetched package documentation.
type DocSection struct {
	Title   string
	Content string
	Kind    DocSectionKind
}

// PackageDocs holds fetched documentation for one external package.
type PackageDocs struct {
	Name     string
	Version  string
	Sections []DocSection
}

// ResearchData aggregates fetched external documentation.
type ResearchData struct {
	Packages []PackageDocs
}

// Finding is one web search result kept by the user.
type Finding struct {
	Title   string
	URL     string
	Summary string
}

// WebResearch aggregates kept web findings.
type WebResearch struct {
	Findings []Finding
}

// GenerationInput is the read-only bundle consumed by the synthesizer.
// Requirements is mandatory; the enrichment fields may be nil.
type GenerationInput struct {
	Requirements     Requirements
	CodebasePatterns *CodebasePatterns
	Context7Data     *ResearchData
	WebResearch      *WebResearch
}

// HasEnrichment reports whether any optional input carries data.
func (g *GenerationInput) HasEnrichment() bool {
	if g.CodebasePatterns != nil && (len(g.CodebasePatterns.Files) > 0 ||
		len(g.CodebasePatterns.Conventions) > 0 ||
		len(g.CodebasePatterns.CodeBlocks) > 0 ||
		len(g.CodebasePatterns.RelatedTests) > 0) {
		return true
	}
	if g.Context7Data != nil && len(g.Context7Data.Packages) > 0 {
		return true
	}
	if g.WebResearch != nil && len(g.WebResearch.Findings) > 0 {
		return true
	}
	return false
}
