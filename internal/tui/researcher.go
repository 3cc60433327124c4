package tui

import (
	"github.com/patternforge/skillsmith/internal/research"
	"github.com/patternforge/skillsmith/internal/workflow"
)

// Researcher supplies the research results the wizard presents at each
// results step. Implementations may search locally, hit fixtures, or
// return nothing, in which case the step only offers search-again and
// skip.
type Researcher interface {
	SearchPackages(query string) []workflow.PackageMatch
	FetchDocs(names []string) []research.PackageDocs
	SearchCodebase(query string) *research.CodebasePatterns
	SearchWeb(query string) []research.Finding
}

// LocalResearcher resolves codebase queries by scanning the project
// tree under Root. Package documentation and web lookups need network
// access and return nothing here.
type LocalResearcher struct {
	Root string
}

func (r *LocalResearcher) SearchPackages(string) []workflow.PackageMatch { return nil }

func (r *LocalResearcher) FetchDocs(names []string) []research.PackageDocs {
	docs := make([]research.PackageDocs, len(names))
	for i, name := range names {
		docs[i] = research.PackageDocs{Name: name}
	}
	return docs
}

func (r *LocalResearcher) SearchCodebase(query string) *research.CodebasePatterns {
	return research.NewScanner(r.Root).Search(query)
}

func (r *LocalResearcher) SearchWeb(string) []research.Finding { return nil }

// StaticResearcher serves canned results, useful in tests and demos.
type StaticResearcher struct {
	Packages []workflow.PackageMatch
	Docs     map[string]research.PackageDocs
	Patterns *research.CodebasePatterns
	Findings []research.Finding
}

func (r *StaticResearcher) SearchPackages(string) []workflow.PackageMatch { return r.Packages }

func (r *StaticResearcher) FetchDocs(names []string) []research.PackageDocs {
	var docs []research.PackageDocs
	for _, name := range names {
		if doc, ok := r.Docs[name]; ok {
			docs = append(docs, doc)
			continue
		}
		docs = append(docs, research.PackageDocs{Name: name})
	}
	return docs
}

func (r *StaticResearcher) SearchCodebase(string) *research.CodebasePatterns { return r.Patterns }

func (r *StaticResearcher) SearchWeb(string) []research.Finding { return r.Findings }
