// Package workflow implements the interactive research workflow for
// skill generation.
//
// The workflow is a finite-state machine driven entirely by the caller:
// a UI renders the prompt for the current step, collects an Answer, and
// calls ProcessAnswer to obtain the next state. No goroutines and no
// blocking; the machine suspends implicitly between calls.
//
// Steps visit up to three research sources in a fixed priority order
// (Context7 documentation, codebase search, web search), skipping any
// source the user did not select, and end at the generation step.
//
// ProcessAnswer never fails: malformed or unresolvable answers return
// the state unchanged, and the caller detects a stalled step by
// comparing CurrentStep before and after.
package workflow
