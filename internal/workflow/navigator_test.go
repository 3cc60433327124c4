package workflow

import "testing"

func TestNextAfterSourceSelection(t *testing.T) {
	tests := []struct {
		name    string
		sources SelectedSources
		want    Step
	}{
		{"all selected goes to context7 first", SelectedSources{Codebase: true, Context7: true, Web: true}, StepContext7Query},
		{"context7 only", SelectedSources{Context7: true}, StepContext7Query},
		{"codebase only", SelectedSources{Codebase: true}, StepCodebaseQuery},
		{"web only", SelectedSources{Web: true}, StepWebQuery},
		{"codebase beats web", SelectedSources{Codebase: true, Web: true}, StepCodebaseQuery},
		{"nothing selected goes straight to generation", SelectedSources{}, StepGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextAfterSourceSelection(tt.sources); got != tt.want {
				t.Errorf("NextAfterSourceSelection(%+v) = %v, want %v", tt.sources, got, tt.want)
			}
		})
	}
}

func TestNextAfterSource(t *testing.T) {
	tests := []struct {
		name    string
		done    Source
		sources SelectedSources
		want    Step
	}{
		{"context7 then codebase", SourceContext7, SelectedSources{Codebase: true, Context7: true, Web: true}, StepCodebaseQuery},
		{"context7 then web when codebase off", SourceContext7, SelectedSources{Context7: true, Web: true}, StepWebQuery},
		{"context7 then generation when alone", SourceContext7, SelectedSources{Context7: true}, StepGeneration},
		{"codebase then web", SourceCodebase, SelectedSources{Codebase: true, Web: true}, StepWebQuery},
		{"codebase then generation", SourceCodebase, SelectedSources{Codebase: true}, StepGeneration},
		{"web always ends at generation", SourceWeb, SelectedSources{Codebase: true, Context7: true, Web: true}, StepGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextAfterSource(tt.done, tt.sources); got != tt.want {
				t.Errorf("NextAfterSource(%v, %+v) = %v, want %v", tt.done, tt.sources, got, tt.want)
			}
		})
	}
}

func TestNextStep_TransitionTable(t *testing.T) {
	all := SelectedSources{Codebase: true, Context7: true, Web: true}

	tests := []struct {
		current Step
		want    Step
	}{
		{StepSourceSelection, StepContext7Query},
		{StepContext7Query, StepContext7Results},
		{StepContext7Results, StepContext7Fetch},
		{StepContext7Fetch, StepCodebaseQuery},
		{StepCodebaseQuery, StepCodebaseResults},
		{StepCodebaseResults, StepWebQuery},
		{StepWebQuery, StepWebResults},
		{StepWebResults, StepGeneration},
		{StepGeneration, StepComplete},
		{StepComplete, StepComplete},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			if got := NextStep(tt.current, all); got != tt.want {
				t.Errorf("NextStep(%v) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestNextStep_EveryStepMapped(t *testing.T) {
	// The transition table must cover the whole enumeration so the
	// workflow can never fall off the map.
	for _, step := range Steps {
		if _, ok := transitions[step]; !ok {
			t.Errorf("step %v missing from transition table", step)
		}
	}
}

func TestNextStep_UnknownStepMapsToItself(t *testing.T) {
	got := NextStep(Step("bogus"), SelectedSources{Web: true})
	if got != Step("bogus") {
		t.Errorf("NextStep(bogus) = %v, want bogus", got)
	}
}

func TestNextStep_IsPure(t *testing.T) {
	sources := SelectedSources{Codebase: true, Web: true}
	first := NextStep(StepSourceSelection, sources)
	for i := 0; i < 100; i++ {
		if got := NextStep(StepSourceSelection, sources); got != first {
			t.Fatalf("NextStep returned %v after returning %v for identical input", got, first)
		}
	}
}

func TestNextStep_AlwaysValid(t *testing.T) {
	// Every reachable successor must stay inside the step enumeration.
	combos := []SelectedSources{
		{},
		{Codebase: true},
		{Context7: true},
		{Web: true},
		{Codebase: true, Context7: true},
		{Codebase: true, Web: true},
		{Context7: true, Web: true},
		{Codebase: true, Context7: true, Web: true},
	}
	for _, sources := range combos {
		for _, step := range Steps {
			if next := NextStep(step, sources); !next.Valid() {
				t.Errorf("NextStep(%v, %+v) = %v, not a valid step", step, sources, next)
			}
		}
	}
}
