package workflow

import (
	"strings"

	"github.com/patternforge/skillsmith/internal/logging"
	"github.com/patternforge/skillsmith/internal/research"
)

// ProcessAnswer applies one user answer to the state and returns the
// resulting state. The input state is never mutated: the result is a
// deep clone, so retrying with the same state and answer is safe.
//
// Malformed input never fails. An answer for the wrong step, an empty
// query, or an unmapped step all return the state unchanged; callers
// detect a stalled workflow by comparing CurrentStep.
func ProcessAnswer(state State, answer Answer) State {
	if answer.Step != state.CurrentStep {
		logging.Debug("answer step mismatch", "state", state.CurrentStep, "answer", answer.Step)
		return state
	}

	next := state.Clone()

	switch state.CurrentStep {
	case StepSourceSelection:
		processSourceSelection(&next, answer)

	case StepContext7Query:
		processQuery(&next, answer, &next.Context7.Query, &next.Context7.SearchHistory, StepContext7Results)

	case StepContext7Results:
		processContext7Results(&next, answer)

	case StepContext7Fetch:
		processContext7Fetch(&next, answer)

	case StepCodebaseQuery:
		processQuery(&next, answer, &next.Codebase.Query, &next.Codebase.SearchHistory, StepCodebaseResults)

	case StepCodebaseResults:
		processResults(&next, answer, SourceCodebase, StepCodebaseQuery, &next.Codebase.Selected)

	case StepWebQuery:
		processQuery(&next, answer, &next.Web.Query, &next.Web.SearchHistory, StepWebResults)

	case StepWebResults:
		processResults(&next, answer, SourceWeb, StepWebQuery, &next.Web.Selected)

	default:
		// Unknown or terminal steps pass through unchanged.
		return state
	}

	return next
}

// processSourceSelection records the selected sources exactly once and
// routes to the first selected source's query step.
func processSourceSelection(state *State, answer Answer) {
	for _, opt := range answer.dataOptions() {
		switch Source(opt) {
		case SourceCodebase:
			state.Sources.Codebase = true
		case SourceContext7:
			state.Sources.Context7 = true
		case SourceWeb:
			state.Sources.Web = true
		}
	}
	state.CurrentStep = NextAfterSourceSelection(state.Sources)
	logging.Debug("sources selected",
		"codebase", state.Sources.Codebase,
		"context7", state.Sources.Context7,
		"web", state.Sources.Web,
		"next", state.CurrentStep,
	)
}

// processQuery captures the active query for a source and advances to
// its results step. With no resolvable query the step does not advance.
func processQuery(state *State, answer Answer, query *string, history *[]string, results Step) {
	q := strings.TrimSpace(answer.CustomInput)
	if q == "" {
		if opts := answer.dataOptions(); len(opts) > 0 {
			q = strings.TrimSpace(opts[0])
		}
	}
	if q == "" {
		// Unresolvable input: stay put, caller re-prompts.
		return
	}
	*query = q
	*history = append(*history, q)
	state.CurrentStep = results
}

// processContext7Results branches on the sentinel values: search-again
// returns to the query step, skip advances past Context7 entirely, and
// any other options are the chosen package identifiers.
func processContext7Results(state *State, answer Answer) {
	if answer.hasSentinel(SearchAgainValue, ActionSearchAgain) {
		state.CurrentStep = StepContext7Query
		return
	}
	if answer.hasSentinel(SkipValue, ActionSkip) {
		state.CurrentStep = NextAfterSource(SourceContext7, state.Sources)
		return
	}
	chosen := answer.dataOptions()
	if len(chosen) == 0 {
		return
	}
	state.Context7.SelectedPackages = append(state.Context7.SelectedPackages, chosen...)
	state.CurrentStep = StepContext7Fetch
}

// processContext7Fetch records which packages had documentation
// fetched and moves on to the next selected source. The document
// payloads themselves are attached by the fetching collaborator.
func processContext7Fetch(state *State, answer Answer) {
	if answer.hasSentinel(SkipValue, ActionSkip) {
		state.CurrentStep = NextAfterSource(SourceContext7, state.Sources)
		return
	}
	fetched := answer.dataOptions()
	if len(fetched) == 0 && len(state.Context7.Docs) == 0 {
		return
	}
	for _, name := range fetched {
		if hasDocs(state.Context7.Docs, name) {
			continue
		}
		state.Context7.Docs = append(state.Context7.Docs, research.PackageDocs{Name: name})
	}
	state.CurrentStep = NextAfterSource(SourceContext7, state.Sources)
}

// processResults handles the results step of the codebase and web
// channels, which share the sentinel semantics of context7-results but
// have no fetch sub-step.
func processResults(state *State, answer Answer, src Source, query Step, selected *[]string) {
	if answer.hasSentinel(SearchAgainValue, ActionSearchAgain) {
		state.CurrentStep = query
		return
	}
	if answer.hasSentinel(SkipValue, ActionSkip) {
		state.CurrentStep = NextAfterSource(src, state.Sources)
		return
	}
	chosen := answer.dataOptions()
	if len(chosen) == 0 {
		return
	}
	*selected = append(*selected, chosen...)
	state.CurrentStep = NextAfterSource(src, state.Sources)
}

func hasDocs(docs []research.PackageDocs, name string) bool {
	for _, d := range docs {
		if d.Name == name {
			return true
		}
	}
	return false
}
