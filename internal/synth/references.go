package synth

import (
	"fmt"
	"strings"

	"github.com/patternforge/skillsmith/internal/research"
)

// apiSplitThreshold is the number of API-kind documentation sections
// past which a package gets a dedicated API reference file alongside
// its prose reference.
const apiSplitThreshold = 5

// buildReferences renders one markdown reference file per fetched
// package, a separate <pkg>-api.md for API-heavy packages, and a
// conventions.md capturing codebase conventions.
func buildReferences(input research.GenerationInput) []File {
	var files []File

	// Distinct package names can slugify to the same filename
	// ("net/http" and "net.http" both become net-http), so every path
	// stem is claimed once and collisions get a numeric suffix.
	used := make(map[string]bool)
	claim := func(slug string) string {
		if !used[slug] {
			used[slug] = true
			return slug
		}
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d", slug, n)
			if !used[candidate] {
				used[candidate] = true
				return candidate
			}
		}
	}

	if c7 := input.Context7Data; c7 != nil {
		for _, pkg := range c7.Packages {
			prose, api := splitDocSections(pkg.Sections)

			slug := claim(slugify(pkg.Name))
			body := prose
			if len(api) <= apiSplitThreshold {
				body = append(body, api...)
				api = nil
			}
			files = append(files, File{
				Path:    "references/" + slug + ".md",
				Content: renderPackageDoc(pkg, body),
				Type:    FileTypeReference,
			})
			if len(api) > 0 {
				files = append(files, File{
					Path:    "references/" + claim(slug+"-api") + ".md",
					Content: renderAPIDoc(pkg, api),
					Type:    FileTypeReference,
				})
			}
		}
	}

	if cb := input.CodebasePatterns; cb != nil && len(cb.Conventions) > 0 {
		files = append(files, File{
			Path:    "references/" + claim("conventions") + ".md",
			Content: renderConventionsDoc(cb.Conventions),
			Type:    FileTypeReference,
		})
	}

	return files
}

func splitDocSections(sections []research.DocSection) (prose, api []research.DocSection) {
	for _, section := range sections {
		if section.Kind == research.DocSectionAPI {
			api = append(api, section)
		} else {
			prose = append(prose, section)
		}
	}
	return prose, api
}

func renderPackageDoc(pkg research.PackageDocs, sections []research.DocSection) string {
	var sb strings.Builder
	sb.WriteString("# " + pkg.Name + "\n\n")
	if pkg.Version != "" {
		sb.WriteString("Version: " + pkg.Version + "\n\n")
	}
	if len(sections) == 0 {
		sb.WriteString("No documentation sections were fetched for this package.\n")
		return sb.String()
	}
	for _, section := range sections {
		sb.WriteString("## " + section.Title + "\n\n")
		sb.WriteString(strings.TrimRight(section.Content, "\n") + "\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func renderAPIDoc(pkg research.PackageDocs, sections []research.DocSection) string {
	var sb strings.Builder
	sb.WriteString("# " + pkg.Name + " API\n\n")
	for _, section := range sections {
		sb.WriteString("## " + section.Title + "\n\n")
		sb.WriteString(strings.TrimRight(section.Content, "\n") + "\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func renderConventionsDoc(conventions []research.Convention) string {
	var sb strings.Builder
	sb.WriteString("# Project Conventions\n\n")
	for _, conv := range conventions {
		sb.WriteString("## " + conv.Name + "\n\n")
		sb.WriteString(conv.Description + "\n\n")
		if conv.Example != "" {
			sb.WriteString("```\n" + strings.TrimRight(conv.Example, "\n") + "\n```\n\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// slugify lowercases a package name and flattens every non-alphanumeric
// run to a single hyphen so it can serve as a filename.
func slugify(name string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
