package synth

import (
	"fmt"
	"strings"

	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/research"
)

// Base section priorities. Spacing leaves room for preference boosts
// without reordering the fixed head of the document; References sits
// far below everything so it can never be boosted past another section
// and always sorts last.
const (
	priorityOverview        = 100
	priorityWhenToUse       = 95
	priorityQuickReference  = 90
	priorityWorkflow        = 80
	priorityCodebase        = 70
	priorityConventions     = 65
	priorityAPIReference    = 60
	priorityTroubleshooting = 50
	priorityAntiPatterns    = 45
	priorityReferences      = 5

	// templateBoost nudges sections that also appear in the borrowed
	// structural template.
	templateBoost = 5
)

// Fixed section titles.
const (
	titleOverview        = "Overview"
	titleWhenToUse       = "When to Use"
	titleQuickReference  = "Quick Reference"
	titleCodebase        = "Codebase Patterns"
	titleConventions     = "Conventions"
	titleAPIReference    = "API Reference"
	titleTroubleshooting = "Troubleshooting"
	titleAntiPatterns    = "Anti-Patterns"
	titleReferences      = "References"
)

// buildSections produces the document sections in their fixed order:
// Overview, When to Use, Quick Reference (with enrichment only), one
// section per workflow, the conditional enrichment sections, and
// References always last.
func buildSections(input research.GenerationInput, tmpl *library.SkillTemplate) []Section {
	req := input.Requirements
	var sections []Section

	add := func(title, content, source string, priority int) {
		if tmpl != nil && title != titleReferences && templateHasSection(tmpl, title) {
			priority += templateBoost
		}
		sections = append(sections, Section{
			Title:    title,
			Content:  content,
			Source:   source,
			Priority: priority,
		})
	}

	add(titleOverview, buildOverview(input), SourceRequirements, priorityOverview)
	add(titleWhenToUse, buildWhenToUse(req), SourceRequirements, priorityWhenToUse)

	if input.HasEnrichment() {
		add(titleQuickReference, buildQuickReference(input), mergedSource(input), priorityQuickReference)
	}

	for _, workflow := range req.Workflows {
		title := workflowTitle(workflow)
		if title == "" {
			continue
		}
		add(title, buildWorkflowSection(workflow, input), SourceRequirements, priorityWorkflow)
	}

	if cb := input.CodebasePatterns; cb != nil {
		if len(cb.Files) > 0 || len(cb.CodeBlocks) > 0 {
			add(titleCodebase, buildCodebaseSection(cb), SourceCodebase, priorityCodebase)
		}
		if len(cb.Conventions) > 0 {
			add(titleConventions, buildConventionsSection(cb.Conventions), SourceCodebase, priorityConventions)
		}
	}

	if req.SkillType == research.SkillTypeReference && input.Context7Data != nil && len(input.Context7Data.Packages) > 0 {
		add(titleAPIReference, buildAPISection(input.Context7Data), SourceContext7, priorityAPIReference)
	}

	if wantsSection(req.ContentPreferences, "troubleshooting") {
		add(titleTroubleshooting, buildTroubleshooting(input), SourceRequirements, priorityTroubleshooting)
	}
	if wantsSection(req.ContentPreferences, "anti-patterns") {
		add(titleAntiPatterns, buildAntiPatterns(req), SourceRequirements, priorityAntiPatterns)
	}

	add(titleReferences, buildReferencesSection(input), mergedSource(input), priorityReferences)

	return sections
}

// buildOverview describes the skill's purpose and what research fed it.
// Always non-empty: the requirements alone suffice.
func buildOverview(input research.GenerationInput) string {
	req := input.Requirements
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(req.Purpose))
	sb.WriteString("\n\n")

	if req.Audience != "" {
		sb.WriteString("**Audience**: " + req.Audience + "\n\n")
	}
	sb.WriteString("**Category**: " + categoryLabel(req.SkillType) + "\n")

	var fed []string
	if input.CodebasePatterns != nil {
		fed = append(fed, "codebase analysis")
	}
	if input.Context7Data != nil && len(input.Context7Data.Packages) > 0 {
		fed = append(fed, "package documentation")
	}
	if input.WebResearch != nil && len(input.WebResearch.Findings) > 0 {
		fed = append(fed, "web research")
	}
	if len(fed) > 0 {
		sb.WriteString("\nThis skill was assembled from " + strings.Join(fed, ", ") + ".\n")
	}

	return sb.String()
}

// buildWhenToUse lists the situations the skill applies to, one bullet
// per declared workflow, with boilerplate guidance when none exist.
func buildWhenToUse(req research.Requirements) string {
	var sb strings.Builder

	sb.WriteString(normalizeDescription(req.Purpose))
	sb.WriteString("\n\n")

	if len(req.Workflows) > 0 {
		sb.WriteString("Reach for this skill when:\n\n")
		for _, workflow := range req.Workflows {
			sb.WriteString("- " + strings.TrimSpace(workflow) + "\n")
		}
	} else {
		sb.WriteString("Reach for this skill whenever the task matches the purpose above.\n")
	}

	return sb.String()
}

// buildQuickReference condenses the enrichment sources into a short
// scannable list. Only called when at least one source has data.
func buildQuickReference(input research.GenerationInput) string {
	var sb strings.Builder

	if cb := input.CodebasePatterns; cb != nil && len(cb.Conventions) > 0 {
		sb.WriteString("**Project conventions**:\n\n")
		for i, conv := range cb.Conventions {
			if i >= 5 {
				break
			}
			sb.WriteString("- **" + conv.Name + "**: " + conv.Description + "\n")
		}
		sb.WriteString("\n")
	}

	if c7 := input.Context7Data; c7 != nil && len(c7.Packages) > 0 {
		sb.WriteString("**Documented packages**:\n\n")
		for _, pkg := range c7.Packages {
			line := "- `" + pkg.Name + "`"
			if pkg.Version != "" {
				line += " (" + pkg.Version + ")"
			}
			sb.WriteString(line + " - see `references/" + slugify(pkg.Name) + ".md`\n")
		}
		sb.WriteString("\n")
	}

	if web := input.WebResearch; web != nil && len(web.Findings) > 0 {
		sb.WriteString("**Key findings**:\n\n")
		for i, finding := range web.Findings {
			if i >= 5 {
				break
			}
			sb.WriteString("- " + finding.Title + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// buildWorkflowSection scaffolds one declared workflow, preferring a
// concrete snippet whose content overlaps the workflow topic and
// falling back to boilerplate steps so the section is never empty.
func buildWorkflowSection(workflow string, input research.GenerationInput) string {
	var sb strings.Builder
	keywords := topicKeywords(workflow)

	sb.WriteString(strings.TrimSpace(workflow) + ".\n\n")
	sb.WriteString("1. Identify where this applies in the task at hand\n")
	sb.WriteString("2. Follow the project's existing conventions\n")
	sb.WriteString("3. Verify the result against the checks below\n")

	if block := firstMatchingBlock(input, keywords); block != nil {
		sb.WriteString("\nExample from " + codeOrigin(block) + ":\n\n")
		sb.WriteString(fenced(block))
	}

	return sb.String()
}

// buildCodebaseSection lists matched files and shows the strongest
// code snippets found in the project.
func buildCodebaseSection(cb *research.CodebasePatterns) string {
	var sb strings.Builder

	if len(cb.Files) > 0 {
		sb.WriteString("Relevant files in this project:\n\n")
		for i, file := range cb.Files {
			if i >= 10 {
				break
			}
			sb.WriteString(fmt.Sprintf("- `%s` (%d matches for %q)\n", file.Path, file.Matches, file.Pattern))
		}
		sb.WriteString("\n")
	}

	shown := 0
	for i := range cb.CodeBlocks {
		if shown >= 3 {
			break
		}
		block := &cb.CodeBlocks[i]
		sb.WriteString("From " + codeOrigin(block) + ":\n\n")
		sb.WriteString(fenced(block))
		sb.WriteString("\n")
		shown++
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// buildConventionsSection documents the detected project conventions.
func buildConventionsSection(conventions []research.Convention) string {
	var sb strings.Builder
	sb.WriteString("Follow these conventions observed in the codebase:\n\n")
	for _, conv := range conventions {
		sb.WriteString("### " + conv.Name + "\n\n")
		sb.WriteString(conv.Description + "\n\n")
		if conv.Example != "" {
			sb.WriteString("```\n" + strings.TrimRight(conv.Example, "\n") + "\n```\n\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// buildAPISection summarizes the API-kind documentation sections of
// each fetched package.
func buildAPISection(data *research.ResearchData) string {
	var sb strings.Builder
	for _, pkg := range data.Packages {
		sb.WriteString("### " + pkg.Name + "\n\n")
		wrote := false
		for _, section := range pkg.Sections {
			if section.Kind != research.DocSectionAPI {
				continue
			}
			sb.WriteString("- **" + section.Title + "**: " + firstLine(section.Content) + "\n")
			wrote = true
		}
		if !wrote {
			sb.WriteString("See `references/" + slugify(pkg.Name) + ".md` for the full documentation.\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// buildTroubleshooting blends boilerplate diagnosis steps with any web
// findings that look like problem reports.
func buildTroubleshooting(input research.GenerationInput) string {
	var sb strings.Builder

	sb.WriteString("When something goes wrong:\n\n")
	sb.WriteString("1. Re-read the error message before changing anything\n")
	sb.WriteString("2. Check the Conventions section: most failures here are convention drift\n")
	sb.WriteString("3. Reduce to a minimal reproduction before asking for help\n")

	if web := input.WebResearch; web != nil {
		keywords := []string{"error", "issue", "problem", "pitfall", "debug"}
		wroteHeader := false
		for _, finding := range web.Findings {
			if !matchesTopic(finding.Title+" "+finding.Summary, keywords) {
				continue
			}
			if !wroteHeader {
				sb.WriteString("\nKnown issues from research:\n\n")
				wroteHeader = true
			}
			sb.WriteString("- [" + finding.Title + "](" + finding.URL + ")\n")
		}
	}

	return sb.String()
}

// buildAntiPatterns emits the boilerplate anti-pattern checklist.
func buildAntiPatterns(req research.Requirements) string {
	var sb strings.Builder
	sb.WriteString("Avoid these when applying this skill:\n\n")
	sb.WriteString("- Copying an example without checking it matches the project's conventions\n")
	sb.WriteString("- Skipping the verification step because the change \"looks right\"\n")
	sb.WriteString("- Expanding scope beyond what the workflow calls for\n")
	if req.Audience != "" {
		sb.WriteString("- Writing for a different audience than " + req.Audience + "\n")
	}
	return sb.String()
}

// buildReferencesSection links out to every source that contributed.
// Always present, even when it only points at the skill's own files.
func buildReferencesSection(input research.GenerationInput) string {
	var sb strings.Builder

	if c7 := input.Context7Data; c7 != nil {
		for _, pkg := range c7.Packages {
			sb.WriteString("- `references/" + slugify(pkg.Name) + ".md` - " + pkg.Name + " documentation\n")
		}
	}
	if cb := input.CodebasePatterns; cb != nil && len(cb.Conventions) > 0 {
		sb.WriteString("- `references/conventions.md` - project conventions\n")
	}
	if web := input.WebResearch; web != nil {
		for _, finding := range web.Findings {
			sb.WriteString("- [" + finding.Title + "](" + finding.URL + ")\n")
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("No external references were collected for this skill.\n")
	}
	return sb.String()
}

// wantsSection reports whether any declared content preference asks
// for the named section.
func wantsSection(preferences []string, name string) bool {
	for _, pref := range preferences {
		if strings.Contains(strings.ToLower(pref), name) {
			return true
		}
	}
	return false
}

// firstMatchingBlock returns the first enrichment code block whose
// content overlaps the topic keywords, or nil.
func firstMatchingBlock(input research.GenerationInput, keywords []string) *research.CodeBlock {
	if input.CodebasePatterns == nil {
		return nil
	}
	for i := range input.CodebasePatterns.CodeBlocks {
		block := &input.CodebasePatterns.CodeBlocks[i]
		if matchesTopic(block.Content+" "+block.Context, keywords) {
			return block
		}
	}
	return nil
}

// mergedSource labels a section fed by whichever enrichment sources
// are present.
func mergedSource(input research.GenerationInput) string {
	var sources []string
	if input.CodebasePatterns != nil {
		sources = append(sources, SourceCodebase)
	}
	if input.Context7Data != nil {
		sources = append(sources, SourceContext7)
	}
	if input.WebResearch != nil {
		sources = append(sources, SourceWeb)
	}
	if len(sources) == 0 {
		return SourceRequirements
	}
	return strings.Join(sources, "+")
}

// reservedTitles are the fixed section titles, lowercased the way
// dedupeSections keys them. A workflow named after one of these would
// collide in dedup and could displace the fixed section (a workflow
// called "references" would knock the References section off the end
// of the document), so colliding workflow titles get a suffix.
var reservedTitles = map[string]bool{
	strings.ToLower(titleOverview):        true,
	strings.ToLower(titleWhenToUse):       true,
	strings.ToLower(titleQuickReference):  true,
	strings.ToLower(titleCodebase):        true,
	strings.ToLower(titleConventions):     true,
	strings.ToLower(titleAPIReference):    true,
	strings.ToLower(titleTroubleshooting): true,
	strings.ToLower(titleAntiPatterns):    true,
	strings.ToLower(titleReferences):      true,
}

func workflowTitle(workflow string) string {
	title := strings.TrimSpace(workflow)
	if title == "" {
		return ""
	}
	runes := []rune(title)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	title = string(runes)
	if reservedTitles[strings.ToLower(title)] {
		title += " Workflow"
	}
	return title
}

func categoryLabel(skillType research.SkillType) string {
	if skillType == "" {
		return string(research.SkillTypeTechnique)
	}
	return string(skillType)
}

func codeOrigin(block *research.CodeBlock) string {
	if block.Path != "" {
		return "`" + block.Path + "`"
	}
	return "the codebase"
}

func fenced(block *research.CodeBlock) string {
	return "```" + block.Language + "\n" + strings.TrimRight(block.Content, "\n") + "\n```\n"
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return strings.TrimSpace(text)
}
