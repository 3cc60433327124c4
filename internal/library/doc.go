// Package library manages the on-disk skill library.
//
// A skill is a directory containing a SKILL.md document (YAML
// frontmatter between --- fences, then markdown) and optional
// references/, templates/ and examples/ subdirectories.
//
// The package supports four operations:
//   - Scan: walk the library and parse every skill's frontmatter
//   - Rank: fuzzy-score existing skills against a query to find the
//     most similar ones (candidates for structural templates)
//   - ReadSkeleton: extract the section-heading skeleton of one skill
//   - Emit: write a synthesized skill document and its auxiliary files
//     into a new skill directory
package library
