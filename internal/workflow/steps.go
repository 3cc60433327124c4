package workflow

// Step identifies one stage of the research workflow.
type Step string

const (
	StepSourceSelection Step = "source-selection"
	StepContext7Query   Step = "context7-query"
	StepContext7Results Step = "context7-results"
	StepContext7Fetch   Step = "context7-fetch"
	StepCodebaseQuery   Step = "codebase-query"
	StepCodebaseResults Step = "codebase-results"
	StepWebQuery        Step = "web-query"
	StepWebResults      Step = "web-results"
	StepGeneration      Step = "generation"
	StepComplete        Step = "complete"
)

// Steps lists every valid step. Useful for validation and tests.
var Steps = []Step{
	StepSourceSelection,
	StepContext7Query,
	StepContext7Results,
	StepContext7Fetch,
	StepCodebaseQuery,
	StepCodebaseResults,
	StepWebQuery,
	StepWebResults,
	StepGeneration,
	StepComplete,
}

// Valid reports whether s is a member of the step enumeration.
func (s Step) Valid() bool {
	for _, step := range Steps {
		if s == step {
			return true
		}
	}
	return false
}

// Source is one of the three research channels.
type Source string

const (
	SourceCodebase Source = "codebase"
	SourceContext7 Source = "context7"
	SourceWeb      Source = "web"
)

// SelectedSources records which research channels the user picked.
// It is set exactly once, while processing the source-selection answer,
// and never altered afterward.
type SelectedSources struct {
	Codebase bool
	Context7 bool
	Web      bool
}

// Enabled reports whether the given source was selected.
func (s SelectedSources) Enabled(src Source) bool {
	switch src {
	case SourceCodebase:
		return s.Codebase
	case SourceContext7:
		return s.Context7
	case SourceWeb:
		return s.Web
	}
	return false
}

// Count returns the number of selected sources.
func (s SelectedSources) Count() int {
	n := 0
	for _, src := range sourcePriority {
		if s.Enabled(src) {
			n++
		}
	}
	return n
}

// Sentinel option values. These are part of the wire contract for
// results-step answers and are matched literally, never by pattern.
const (
	SearchAgainValue = "SEARCH_AGAIN"
	SkipValue        = "SKIP"
)

// Answer actions. Equivalent to placing the matching sentinel value in
// SelectedOptions.
const (
	ActionSearchAgain = "search-again"
	ActionSkip        = "skip"
)

// Answer is one user response, tied to the step it was collected for.
type Answer struct {
	Step            Step
	SelectedOptions []string
	CustomInput     string
	Action          string
}

// hasSentinel reports whether the answer carries the given sentinel,
// either as an option value or as the equivalent action.
func (a Answer) hasSentinel(value, action string) bool {
	if a.Action == action {
		return true
	}
	for _, opt := range a.SelectedOptions {
		if opt == value {
			return true
		}
	}
	return false
}

// dataOptions returns SelectedOptions with sentinel values removed.
func (a Answer) dataOptions() []string {
	var opts []string
	for _, opt := range a.SelectedOptions {
		if opt == SearchAgainValue || opt == SkipValue {
			continue
		}
		opts = append(opts, opt)
	}
	return opts
}
