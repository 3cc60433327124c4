package workflow

import (
	"github.com/patternforge/skillsmith/internal/research"
)

// PackageMatch is one Context7 search hit offered for selection.
type PackageMatch struct {
	Name        string
	Description string
}

// Context7State tracks the external-documentation channel. History
// grows monotonically; nothing is removed once appended.
type Context7State struct {
	Query            string
	SearchHistory    []string
	Matches          []PackageMatch
	SelectedPackages []string
	Docs             []research.PackageDocs
}

// CodebaseState tracks the codebase-search channel.
type CodebaseState struct {
	Query         string
	SearchHistory []string
	Patterns      *research.CodebasePatterns
	Selected      []string
}

// WebState tracks the web-search channel.
type WebState struct {
	Query         string
	SearchHistory []string
	Findings      []research.Finding
	Selected      []string
}

// State is the complete workflow state for one session. It is treated
// as an immutable value: ProcessAnswer clones before mutating, so a
// retained State is never changed behind the caller's back.
type State struct {
	CurrentStep Step
	Sources     SelectedSources
	Context7    Context7State
	Codebase    CodebaseState
	Web         WebState
}

// NewState builds the initial state for a session.
func NewState() State {
	return State{
		CurrentStep: StepSourceSelection,
	}
}

// Clone returns a deep copy of the state. Nested slices are copied so
// the clone shares no memory with the original.
func (s State) Clone() State {
	out := s
	out.Context7.SearchHistory = cloneStrings(s.Context7.SearchHistory)
	out.Context7.Matches = cloneMatches(s.Context7.Matches)
	out.Context7.SelectedPackages = cloneStrings(s.Context7.SelectedPackages)
	out.Context7.Docs = cloneDocs(s.Context7.Docs)
	out.Codebase.SearchHistory = cloneStrings(s.Codebase.SearchHistory)
	out.Codebase.Selected = cloneStrings(s.Codebase.Selected)
	out.Codebase.Patterns = clonePatterns(s.Codebase.Patterns)
	out.Web.SearchHistory = cloneStrings(s.Web.SearchHistory)
	out.Web.Findings = cloneFindings(s.Web.Findings)
	out.Web.Selected = cloneStrings(s.Web.Selected)
	return out
}

// IsTerminal reports whether the workflow has reached its final step.
func (s State) IsTerminal() bool {
	return s.CurrentStep == StepComplete
}

// ReadyToGenerate reports whether all selected sources have completed
// and the session can be synthesized.
func (s State) ReadyToGenerate() bool {
	return s.CurrentStep == StepGeneration
}

// ActiveQuery returns the query string for the source the current step
// belongs to, or "" for steps outside a source chain.
func (s State) ActiveQuery() string {
	switch s.CurrentStep {
	case StepContext7Query, StepContext7Results, StepContext7Fetch:
		return s.Context7.Query
	case StepCodebaseQuery, StepCodebaseResults:
		return s.Codebase.Query
	case StepWebQuery, StepWebResults:
		return s.Web.Query
	}
	return ""
}

// Visited reports whether the given source has produced any search
// history in this session.
func (s State) Visited(src Source) bool {
	switch src {
	case SourceContext7:
		return len(s.Context7.SearchHistory) > 0
	case SourceCodebase:
		return len(s.Codebase.SearchHistory) > 0
	case SourceWeb:
		return len(s.Web.SearchHistory) > 0
	}
	return false
}

// BuildGenerationInput packages the accumulated research for the
// synthesizer. Sources that were skipped or produced nothing yield nil
// enrichment fields.
func BuildGenerationInput(s State, req research.Requirements) research.GenerationInput {
	input := research.GenerationInput{Requirements: req}

	if s.Sources.Context7 && len(s.Context7.Docs) > 0 {
		input.Context7Data = &research.ResearchData{
			Packages: cloneDocs(s.Context7.Docs),
		}
	}
	if s.Sources.Codebase && s.Codebase.Patterns != nil {
		input.CodebasePatterns = clonePatterns(s.Codebase.Patterns)
	}
	if s.Sources.Web && len(s.Web.Findings) > 0 {
		input.WebResearch = &research.WebResearch{
			Findings: cloneFindings(s.Web.Findings),
		}
	}

	return input
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneMatches(values []PackageMatch) []PackageMatch {
	if values == nil {
		return nil
	}
	out := make([]PackageMatch, len(values))
	copy(out, values)
	return out
}

func cloneDocs(values []research.PackageDocs) []research.PackageDocs {
	if values == nil {
		return nil
	}
	out := make([]research.PackageDocs, len(values))
	for i, pkg := range values {
		out[i] = pkg
		out[i].Sections = make([]research.DocSection, len(pkg.Sections))
		copy(out[i].Sections, pkg.Sections)
	}
	return out
}

func cloneFindings(values []research.Finding) []research.Finding {
	if values == nil {
		return nil
	}
	out := make([]research.Finding, len(values))
	copy(out, values)
	return out
}

func clonePatterns(p *research.CodebasePatterns) *research.CodebasePatterns {
	if p == nil {
		return nil
	}
	out := &research.CodebasePatterns{}
	if p.Files != nil {
		out.Files = make([]research.FileMatch, len(p.Files))
		copy(out.Files, p.Files)
	}
	if p.Conventions != nil {
		out.Conventions = make([]research.Convention, len(p.Conventions))
		copy(out.Conventions, p.Conventions)
	}
	if p.CodeBlocks != nil {
		out.CodeBlocks = make([]research.CodeBlock, len(p.CodeBlocks))
		copy(out.CodeBlocks, p.CodeBlocks)
	}
	if p.RelatedTests != nil {
		out.RelatedTests = make([]research.CodeBlock, len(p.RelatedTests))
		copy(out.RelatedTests, p.RelatedTests)
	}
	return out
}
