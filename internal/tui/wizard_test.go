package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/patternforge/skillsmith/internal/research"
	"github.com/patternforge/skillsmith/internal/workflow"
)

func keyEnter() tea.Msg  { return tea.KeyMsg{Type: tea.KeyEnter} }
func keySpace() tea.Msg  { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}} }
func keyRune(r rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func staticResearcher() *StaticResearcher {
	return &StaticResearcher{
		Packages: []workflow.PackageMatch{
			{Name: "gin", Description: "HTTP web framework"},
			{Name: "echo", Description: "minimalist web framework"},
		},
		Docs: map[string]research.PackageDocs{
			"gin": {Name: "gin", Sections: []research.DocSection{
				{Title: "Routing", Content: "how routes work", Kind: research.DocSectionProse},
			}},
		},
		Patterns: &research.CodebasePatterns{
			Files: []research.FileMatch{{Path: "internal/api/server.go", Pattern: "handler", Matches: 3}},
		},
		Findings: []research.Finding{
			{Title: "REST design notes", URL: "https://example.com/rest"},
		},
	}
}

// workflowWizard returns a wizard already past intake, sitting at
// source selection.
func workflowWizard(t *testing.T, r Researcher) *wizardModel {
	t.Helper()
	w := newWizardModel(r)
	w.nameInput.SetValue("api-skill")
	w.purposeInput.SetValue("Use when building HTTP APIs")
	w.intake = intakeDone
	if cmd := w.prepareStep(); cmd != nil {
		cmd()
	}
	if w.state.CurrentStep != workflow.StepSourceSelection {
		t.Fatalf("initial workflow step = %v", w.state.CurrentStep)
	}
	return &w
}

// selectSources toggles the named sources and submits.
func selectSources(t *testing.T, w *wizardModel, sources ...string) {
	t.Helper()
	for _, src := range sources {
		found := false
		for i, opt := range w.options {
			if opt.value == src {
				w.cursor = i
				w.Update(keySpace())
				found = true
			}
		}
		if !found {
			t.Fatalf("source option %q not offered", src)
		}
	}
	w.Update(keyEnter())
}

func TestIntakeValidation(t *testing.T) {
	t.Run("invalid name rejected", func(t *testing.T) {
		w := newWizardModel(&StaticResearcher{})
		w.nameInput.SetValue("Bad Name!")

		w.Update(keyEnter())
		if w.intake != intakeName {
			t.Error("should stay on name step with invalid name")
		}
		if w.notice == "" {
			t.Error("notice should explain the rejection")
		}
	})

	t.Run("valid name advances", func(t *testing.T) {
		w := newWizardModel(&StaticResearcher{})
		w.nameInput.SetValue("api-skill")

		w.Update(keyEnter())
		if w.intake != intakePurpose {
			t.Errorf("intake = %v, want intakePurpose", w.intake)
		}
	})

	t.Run("empty purpose rejected", func(t *testing.T) {
		w := newWizardModel(&StaticResearcher{})
		w.intake = intakePurpose

		w.Update(keyEnter())
		if w.intake != intakePurpose {
			t.Error("should stay on purpose step")
		}
	})
}

func TestIntakeBackNavigation(t *testing.T) {
	t.Run("esc at first step cancels", func(t *testing.T) {
		w := newWizardModel(&StaticResearcher{})

		done, result, _ := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if !done || result != nil {
			t.Error("esc at first step should cancel")
		}
	})

	t.Run("esc mid-intake goes back", func(t *testing.T) {
		w := newWizardModel(&StaticResearcher{})
		w.intake = intakeAudience

		done, _, _ := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if done {
			t.Error("should not be done")
		}
		if w.intake != intakeType {
			t.Errorf("intake = %v, want intakeType", w.intake)
		}
	})

	t.Run("ctrl+c cancels anywhere", func(t *testing.T) {
		w := workflowWizard(t, &StaticResearcher{})

		done, result, _ := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if !done || result != nil {
			t.Error("ctrl+c should cancel")
		}
	})
}

func TestSourceSelectionDrivesWorkflow(t *testing.T) {
	t.Run("context7 first", func(t *testing.T) {
		w := workflowWizard(t, staticResearcher())
		selectSources(t, w, "context7", "codebase")

		if w.state.CurrentStep != workflow.StepContext7Query {
			t.Errorf("step = %v, want context7-query", w.state.CurrentStep)
		}
	})

	t.Run("codebase only", func(t *testing.T) {
		w := workflowWizard(t, staticResearcher())
		selectSources(t, w, "codebase")

		if w.state.CurrentStep != workflow.StepCodebaseQuery {
			t.Errorf("step = %v, want codebase-query", w.state.CurrentStep)
		}
	})

	t.Run("no selection re-prompts", func(t *testing.T) {
		w := workflowWizard(t, staticResearcher())
		w.Update(keyEnter())

		if w.state.CurrentStep != workflow.StepSourceSelection {
			t.Error("should stay on source selection")
		}
		if w.notice == "" {
			t.Error("notice should prompt for a selection")
		}
	})
}

func TestContext7Flow(t *testing.T) {
	w := workflowWizard(t, staticResearcher())
	selectSources(t, w, "context7")

	// Query.
	w.queryInput.SetValue("web framework")
	w.Update(keyEnter())
	if w.state.CurrentStep != workflow.StepContext7Results {
		t.Fatalf("step = %v, want context7-results", w.state.CurrentStep)
	}
	if len(w.state.Context7.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(w.state.Context7.Matches))
	}
	if len(w.options) != 2 {
		t.Fatalf("options = %d, want 2", len(w.options))
	}

	// Select the first package.
	w.cursor = 0
	w.Update(keySpace())
	w.Update(keyEnter())
	if w.state.CurrentStep != workflow.StepContext7Fetch {
		t.Fatalf("step = %v, want context7-fetch", w.state.CurrentStep)
	}

	// Fetch pre-checks the shortlist.
	if len(w.options) != 1 || !w.checked[0] {
		t.Fatal("fetch checklist should offer the selected package pre-checked")
	}

	done, result, _ := w.Update(keyEnter())
	if !done {
		t.Fatal("wizard should finish once generation is reached")
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}
	if result.State.CurrentStep != workflow.StepGeneration {
		t.Errorf("final step = %v, want generation", result.State.CurrentStep)
	}
	if len(result.State.Context7.Docs) != 1 || result.State.Context7.Docs[0].Name != "gin" {
		t.Errorf("docs = %+v, want gin docs", result.State.Context7.Docs)
	}
	if len(result.State.Context7.Docs[0].Sections) != 1 {
		t.Error("fetched docs should carry the researcher payload, not a stub")
	}
	if result.Requirements.Name != "api-skill" {
		t.Errorf("requirements name = %q", result.Requirements.Name)
	}
}

func TestSearchAgainAndSkip(t *testing.T) {
	t.Run("r returns to query", func(t *testing.T) {
		w := workflowWizard(t, staticResearcher())
		selectSources(t, w, "context7")
		w.queryInput.SetValue("web framework")
		w.Update(keyEnter())

		w.Update(keyRune('r'))
		if w.state.CurrentStep != workflow.StepContext7Query {
			t.Errorf("step = %v, want context7-query", w.state.CurrentStep)
		}
	})

	t.Run("s advances to the next source", func(t *testing.T) {
		w := workflowWizard(t, staticResearcher())
		selectSources(t, w, "context7", "codebase")
		w.queryInput.SetValue("web framework")
		w.Update(keyEnter())

		w.Update(keyRune('s'))
		if w.state.CurrentStep != workflow.StepCodebaseQuery {
			t.Errorf("step = %v, want codebase-query", w.state.CurrentStep)
		}
	})
}

func TestCodebaseResultsAttachPatterns(t *testing.T) {
	w := workflowWizard(t, staticResearcher())
	selectSources(t, w, "codebase")

	w.queryInput.SetValue("handler wiring")
	w.Update(keyEnter())
	if w.state.CurrentStep != workflow.StepCodebaseResults {
		t.Fatalf("step = %v, want codebase-results", w.state.CurrentStep)
	}
	if w.state.Codebase.Patterns == nil || len(w.state.Codebase.Patterns.Files) != 1 {
		t.Fatal("patterns should be attached from the researcher")
	}

	w.cursor = 0
	w.Update(keySpace())
	done, result, _ := w.Update(keyEnter())
	if !done || result == nil {
		t.Fatal("single-source run ends at generation after results")
	}
	if len(result.State.Codebase.Selected) != 1 {
		t.Errorf("selected = %v", result.State.Codebase.Selected)
	}
}

func TestRequirementsAssembly(t *testing.T) {
	w := newWizardModel(&StaticResearcher{})
	w.nameInput.SetValue("api-skill")
	w.purposeInput.SetValue("Use when building HTTP APIs")
	w.audienceInput.SetValue("backend developers")
	w.workflowsInput.SetValue("add an endpoint, write a handler test")
	w.preferencesInput.SetValue("testing, troubleshooting")
	w.patternsInput.SetValue("handler, router")

	req := w.requirements()
	if req.Name != "api-skill" {
		t.Errorf("Name = %q", req.Name)
	}
	if len(req.Workflows) != 2 {
		t.Errorf("Workflows = %v", req.Workflows)
	}
	if len(req.ContentPreferences) != 2 {
		t.Errorf("ContentPreferences = %v", req.ContentPreferences)
	}
	if req.SkillType != research.SkillTypeTechnique {
		t.Errorf("SkillType = %q, want default technique", req.SkillType)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{" , , ", 0},
		{"one", 1},
		{"one, two,three", 3},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); len(got) != tt.want {
			t.Errorf("splitList(%q) = %v, want %d items", tt.in, got, tt.want)
		}
	}
}

func TestWizardView(t *testing.T) {
	t.Run("intake shows name prompt", func(t *testing.T) {
		w := newWizardModel(&StaticResearcher{})
		view := w.View()
		if !strings.Contains(view, "New Skill") {
			t.Error("should contain title")
		}
		if !strings.Contains(view, "Skill name") {
			t.Error("should contain name label")
		}
		if !strings.Contains(view, "1. Describe") {
			t.Error("should contain progress bar")
		}
	})

	t.Run("empty results show placeholder", func(t *testing.T) {
		w := workflowWizard(t, &StaticResearcher{})
		selectSources(t, w, "web")
		w.queryInput.SetValue("anything")
		w.Update(keyEnter())

		view := w.View()
		if !strings.Contains(view, "nothing found") {
			t.Error("should show the empty-results placeholder")
		}
		if !strings.Contains(view, "search again") {
			t.Error("help should mention search again")
		}
	})
}
