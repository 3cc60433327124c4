package workflow

// sourcePriority fixes the visit order across research channels. The
// workflow always proceeds Context7 → codebase → web → generation,
// skipping any channel that was not selected. Tests depend on this
// exact ordering.
var sourcePriority = []Source{SourceContext7, SourceCodebase, SourceWeb}

// queryStep maps each source to its entry step.
var queryStep = map[Source]Step{
	SourceContext7: StepContext7Query,
	SourceCodebase: StepCodebaseQuery,
	SourceWeb:      StepWebQuery,
}

// transition describes where a step leads. Exactly one field is set:
// a fixed successor, or a scan of the remaining sources starting after
// the named channel (afterAll scans from the beginning).
type transition struct {
	next     Step
	after    Source
	afterAll bool
}

// transitions is the explicit step-transition table.
var transitions = map[Step]transition{
	StepSourceSelection: {afterAll: true},
	StepContext7Query:   {next: StepContext7Results},
	StepContext7Results: {next: StepContext7Fetch},
	StepContext7Fetch:   {after: SourceContext7},
	StepCodebaseQuery:   {next: StepCodebaseResults},
	StepCodebaseResults: {after: SourceCodebase},
	StepWebQuery:        {next: StepWebResults},
	StepWebResults:      {after: SourceWeb},
	StepGeneration:      {next: StepComplete},
	StepComplete:        {next: StepComplete},
}

// NextStep returns the step that follows current for the given source
// selection. It is a pure lookup: identical inputs always yield the
// same result. Unknown steps map to themselves.
func NextStep(current Step, sources SelectedSources) Step {
	tr, ok := transitions[current]
	if !ok {
		return current
	}
	if tr.next != "" {
		return tr.next
	}
	if tr.afterAll {
		return scanSources(sources, "")
	}
	return scanSources(sources, tr.after)
}

// NextAfterSourceSelection returns the first step after source
// selection: the query step of the highest-priority selected source,
// or generation when nothing was selected.
func NextAfterSourceSelection(sources SelectedSources) Step {
	return scanSources(sources, "")
}

// NextAfterSource returns the step following the completion of one
// source's sub-steps, continuing the priority scan past it.
func NextAfterSource(done Source, sources SelectedSources) Step {
	return scanSources(sources, done)
}

// scanSources walks the priority order, starting after the given
// source (or from the top when after is empty), and returns the query
// step of the first selected source, falling back to generation.
func scanSources(sources SelectedSources, after Source) Step {
	start := 0
	if after != "" {
		for i, src := range sourcePriority {
			if src == after {
				start = i + 1
				break
			}
		}
	}
	for _, src := range sourcePriority[start:] {
		if sources.Enabled(src) {
			return queryStep[src]
		}
	}
	return StepGeneration
}
