// Package tui provides the terminal user interface for skillsmith: the
// interactive skill-creation wizard and the library browser.
//
// The wizard is a thin driver over internal/workflow. It renders the
// current step, turns keystrokes into workflow answers, and lets
// ProcessAnswer decide where the conversation goes next. Research
// results reach the wizard through the Researcher interface so the
// actual lookups stay replaceable.
package tui
