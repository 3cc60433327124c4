// Package synth turns collected research into a complete skill document
// model.
//
// Synthesize runs once per session, synchronously, in five ordered
// phases: structural template selection, frontmatter generation,
// section building, deduplication, and prioritization. Reference,
// template and example files are built as separate auxiliary passes
// over the same input.
//
// Every enrichment input is optional. Missing data never fails the
// synthesis: sections that depend on an absent source are simply
// omitted, and sections that blend enrichment with boilerplate fall
// back to the boilerplate alone. The single guarded failure point is
// reading the structural template from disk, which degrades to "no
// template".
package synth
