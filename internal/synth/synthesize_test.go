package synth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/research"
)

func baseRequirements() research.Requirements {
	return research.Requirements{
		Name:      "api-testing",
		Purpose:   "Use when writing integration tests against HTTP endpoints",
		SkillType: research.SkillTypeTechnique,
		Audience:  "backend developers",
		Workflows: []string{"add a test for a new endpoint"},
	}
}

func enrichedInput() research.GenerationInput {
	return research.GenerationInput{
		Requirements: baseRequirements(),
		CodebasePatterns: &research.CodebasePatterns{
			Files: []research.FileMatch{
				{Path: "internal/api/server_test.go", Pattern: "httptest", Matches: 4},
			},
			Conventions: []research.Convention{
				{Name: "table-driven tests", Description: "every handler test is table-driven", Example: "tests := []struct{...}{}"},
			},
			CodeBlocks: []research.CodeBlock{
				{Path: "internal/api/server_test.go", Language: "go", Content: "func TestEndpoint(t *testing.T) {}", Context: "endpoint test"},
			},
			RelatedTests: []research.CodeBlock{
				{Path: "internal/api/server_test.go", Language: "go", Content: "func TestEndpoint(t *testing.T) {}", Context: "covers add a test for a new endpoint"},
			},
		},
		Context7Data: &research.ResearchData{
			Packages: []research.PackageDocs{
				{Name: "net/http", Version: "go1.24", Sections: []research.DocSection{
					{Title: "Handlers", Content: "How handlers work", Kind: research.DocSectionProse},
					{Title: "Client", Content: "type Client struct", Kind: research.DocSectionAPI},
				}},
			},
		},
		WebResearch: &research.WebResearch{
			Findings: []research.Finding{
				{Title: "Common httptest pitfalls", URL: "https://example.com/pitfalls", Summary: "error handling issues"},
			},
		},
	}
}

func TestSynthesizeInvariants(t *testing.T) {
	content := Synthesize(enrichedInput(), nil, Options{})

	if len(content.Sections) == 0 {
		t.Fatal("expected sections")
	}

	seen := make(map[string]bool)
	for i, section := range content.Sections {
		if seen[section.Title] {
			t.Errorf("duplicate section title %q", section.Title)
		}
		seen[section.Title] = true
		if section.Content == "" {
			t.Errorf("section %q has empty content", section.Title)
		}
		if i > 0 && section.Priority > content.Sections[i-1].Priority {
			t.Errorf("priority increases at %q: %d after %d",
				section.Title, section.Priority, content.Sections[i-1].Priority)
		}
	}

	last := content.Sections[len(content.Sections)-1]
	if last.Title != "References" {
		t.Errorf("last section = %q, want References", last.Title)
	}

	paths := make(map[string]bool)
	for _, file := range Files(content) {
		if paths[file.Path] {
			t.Errorf("duplicate file path %q", file.Path)
		}
		paths[file.Path] = true
	}

	if content.Metadata.RunID == "" {
		t.Error("metadata missing run ID")
	}
	if content.Metadata.SectionCount != len(content.Sections) {
		t.Errorf("SectionCount = %d, want %d", content.Metadata.SectionCount, len(content.Sections))
	}
	if content.Metadata.FileCount != len(Files(content)) {
		t.Errorf("FileCount = %d, want %d", content.Metadata.FileCount, len(Files(content)))
	}
}

func TestSynthesizeMinimalInput(t *testing.T) {
	input := research.GenerationInput{Requirements: baseRequirements()}
	content := Synthesize(input, nil, Options{})

	titles := sectionTitles(content.Sections)
	for _, want := range []string{"Overview", "When to Use", "References"} {
		if !contains(titles, want) {
			t.Errorf("missing section %q in %v", want, titles)
		}
	}
	if contains(titles, "Quick Reference") {
		t.Error("Quick Reference present without enrichment")
	}
	if contains(titles, "Codebase Patterns") {
		t.Error("Codebase Patterns present without codebase data")
	}
	if len(content.References) != 0 || len(content.Templates) != 0 {
		t.Error("expected no reference or template files without enrichment")
	}
}

func TestDedupeSectionsKeepsHigherPriority(t *testing.T) {
	sections := []Section{
		{Title: "Overview", Content: "low", Priority: 80},
		{Title: "Details", Content: "other", Priority: 60},
		{Title: "Overview", Content: "high", Priority: 100},
	}

	out := dedupeSections(sections)
	if len(out) != 2 {
		t.Fatalf("got %d sections, want 2", len(out))
	}
	if out[0].Title != "Overview" || out[0].Priority != 100 || out[0].Content != "high" {
		t.Errorf("first section = %+v, want the priority-100 Overview", out[0])
	}
	if out[1].Title != "Details" {
		t.Errorf("second section = %q, want Details", out[1].Title)
	}
}

func TestPrioritizePreferenceBoost(t *testing.T) {
	req := research.Requirements{ContentPreferences: []string{"testing"}}
	sections := []Section{
		{Title: "Deployment Notes", Content: "plain content", Priority: 50},
		{Title: "Testing Strategy", Content: "how to structure tests", Priority: 50},
	}

	out := prioritize(sections, req)
	if out[0].Title != "Testing Strategy" {
		t.Errorf("boosted section not first: got %q", out[0].Title)
	}
	if out[0].Priority != 60 {
		t.Errorf("boosted priority = %d, want 60", out[0].Priority)
	}
	if out[1].Priority != 50 {
		t.Errorf("unboosted priority = %d, want 50", out[1].Priority)
	}
}

func TestPrioritizeStableWithoutPreferences(t *testing.T) {
	sections := []Section{
		{Title: "A", Content: "x", Priority: 50},
		{Title: "B", Content: "y", Priority: 50},
		{Title: "C", Content: "z", Priority: 90},
	}
	out := prioritize(sections, research.Requirements{})
	got := sectionTitles(out)
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReferencesNeverBoostedPastContent(t *testing.T) {
	input := enrichedInput()
	input.Requirements.ContentPreferences = []string{"testing", "backend", "frontend", "infra", "docs"}

	content := Synthesize(input, nil, Options{})
	last := content.Sections[len(content.Sections)-1]
	if last.Title != "References" {
		t.Errorf("References displaced from last position by %q", last.Title)
	}
}

func TestNormalizeDescription(t *testing.T) {
	long := strings.Repeat("a", 150)

	tests := []struct {
		name    string
		purpose string
		want    string
	}{
		{"plain", "Generate API clients", "Generate API clients"},
		{"use when prefix", "use when debugging flaky tests", "Use when debugging flaky tests"},
		{"when to use prefix", "When to use feature flags", "Use when feature flags"},
		{"when prefix", "when migrating databases", "Use when migrating databases"},
		{"truncated", long, strings.Repeat("a", 117) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeDescription(tt.purpose)
			if got != tt.want {
				t.Errorf("normalizeDescription(%q) = %q, want %q", tt.purpose, got, tt.want)
			}
			if len([]rune(got)) > 120 {
				t.Errorf("description exceeds 120 runes: %d", len([]rune(got)))
			}
		})
	}
}

func TestAllowedTools(t *testing.T) {
	tests := []struct {
		skillType research.SkillType
		want      []string
	}{
		{research.SkillTypeTechnique, []string{"Read", "Grep", "Glob"}},
		{research.SkillTypePattern, []string{"Read", "Grep", "Glob", "Edit"}},
		{research.SkillTypeReference, []string{"Read", "WebFetch"}},
		{research.SkillTypeWorkflow, []string{"Read", "Edit", "Write", "Bash"}},
		{research.SkillType("mystery"), []string{"Read", "Grep", "Glob"}},
	}

	for _, tt := range tests {
		got := allowedTools(tt.skillType)
		if len(got) != len(tt.want) {
			t.Errorf("allowedTools(%q) = %v, want %v", tt.skillType, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("allowedTools(%q)[%d] = %q, want %q", tt.skillType, i, got[i], tt.want[i])
			}
		}
	}

	// The returned slice must be a copy.
	tools := allowedTools(research.SkillTypeTechnique)
	tools[0] = "mutated"
	if allowedTools(research.SkillTypeTechnique)[0] != "Read" {
		t.Error("allowedTools exposes shared backing array")
	}
}

func TestRelatedSkills(t *testing.T) {
	req := research.Requirements{
		Name:           "backend-services",
		SearchPatterns: []string{"api endpoint handlers", "mock server fixtures"},
	}
	got := relatedSkills(req)

	if contains(got, "backend-services") {
		t.Error("related skills include the skill itself")
	}
	if !contains(got, "testing-strategies") {
		t.Errorf("expected testing-strategies in %v", got)
	}
	seen := make(map[string]bool)
	for _, skill := range got {
		if seen[skill] {
			t.Errorf("duplicate related skill %q", skill)
		}
		seen[skill] = true
	}
}

func TestSelectTemplate(t *testing.T) {
	dir := t.TempDir()
	best := filepath.Join(dir, "existing-skill")
	if err := os.MkdirAll(filepath.Join(best, "references"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "---\nname: existing-skill\ndescription: prior art\n---\n\n## Overview\n\ntext\n\n## Quick Reference\n\nmore\n"
	if err := os.WriteFile(filepath.Join(best, "SKILL.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	similar := []library.SimilarSkill{
		{SkillInfo: library.SkillInfo{Name: "weak", Dir: filepath.Join(dir, "missing")}, Score: 10},
		{SkillInfo: library.SkillInfo{Name: "existing-skill", Dir: best}, Score: 42},
	}

	tmpl := selectTemplate(similar)
	if tmpl == nil {
		t.Fatal("expected a template")
	}
	if tmpl.Name != "existing-skill" {
		t.Errorf("Name = %q", tmpl.Name)
	}
	if !contains(tmpl.Sections, "Quick Reference") {
		t.Errorf("Sections = %v, want Quick Reference", tmpl.Sections)
	}
	if !tmpl.HasReferences {
		t.Error("HasReferences = false")
	}
}

func TestSelectTemplateDegradesToNil(t *testing.T) {
	if tmpl := selectTemplate(nil); tmpl != nil {
		t.Errorf("no candidates: got %+v", tmpl)
	}

	similar := []library.SimilarSkill{
		{SkillInfo: library.SkillInfo{Name: "gone", Dir: filepath.Join(t.TempDir(), "nope")}, Score: 99},
	}
	if tmpl := selectTemplate(similar); tmpl != nil {
		t.Errorf("unreadable dir: got %+v", tmpl)
	}
}

func sectionTitles(sections []Section) []string {
	titles := make([]string, len(sections))
	for i, section := range sections {
		titles[i] = section.Title
	}
	return titles
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func TestWorkflowTitleCannotDisplaceFixedSections(t *testing.T) {
	// A workflow literally named after a fixed section must not win
	// dedup against it; "references" in particular would knock the
	// References section off the end of the document.
	input := research.GenerationInput{
		Requirements: research.Requirements{
			Name:               "doc-linking",
			Purpose:            "Use when cross-linking documents",
			SkillType:          research.SkillTypeTechnique,
			Workflows:          []string{"references", "troubleshooting"},
			ContentPreferences: []string{"troubleshooting"},
		},
	}

	content := Synthesize(input, nil, Options{})

	last := content.Sections[len(content.Sections)-1]
	if last.Title != titleReferences {
		t.Fatalf("last section = %q, want %q", last.Title, titleReferences)
	}
	if last.Priority != priorityReferences {
		t.Errorf("References priority = %d, want %d", last.Priority, priorityReferences)
	}

	titles := sectionTitles(content.Sections)
	if !contains(titles, "References Workflow") {
		t.Errorf("colliding workflow title should be suffixed, got %v", titles)
	}
	if !contains(titles, "Troubleshooting Workflow") {
		t.Errorf("colliding workflow title should be suffixed, got %v", titles)
	}
	if !contains(titles, titleTroubleshooting) {
		t.Errorf("requested Troubleshooting section missing: %v", titles)
	}
}

func TestBuildReferencesDisambiguatesSlugCollisions(t *testing.T) {
	input := research.GenerationInput{
		Context7Data: &research.ResearchData{
			Packages: []research.PackageDocs{
				{Name: "net/http"},
				{Name: "net.http"},
			},
		},
	}

	files := buildReferences(input)
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Path != "references/net-http.md" {
		t.Errorf("first path = %q", files[0].Path)
	}
	if files[1].Path != "references/net-http-2.md" {
		t.Errorf("colliding path = %q, want references/net-http-2.md", files[1].Path)
	}
}

func TestBuildTemplatesCapDropsEmptyIndexes(t *testing.T) {
	input := research.GenerationInput{
		CodebasePatterns: &research.CodebasePatterns{
			CodeBlocks: []research.CodeBlock{
				{Language: "go", Content: "package a"},
				{Language: "python", Content: "print()"},
			},
		},
	}

	files := buildTemplates(input, 1)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	if !contains(paths, "templates/go-01.go") || !contains(paths, "templates/go-index.md") {
		t.Fatalf("paths = %v", paths)
	}
	for _, p := range paths {
		if strings.Contains(p, "python") {
			t.Errorf("language cut by the file cap still emitted %s", p)
		}
	}
}
