package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/patternforge/skillsmith/internal/config"
	"github.com/patternforge/skillsmith/internal/errors"
	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/logging"
	"github.com/patternforge/skillsmith/internal/research"
	"github.com/patternforge/skillsmith/internal/synth"
	"github.com/patternforge/skillsmith/internal/tui"
	"github.com/patternforge/skillsmith/internal/workflow"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new skill",
	Long: `Creates a new skill in the library.

By default this opens the interactive wizard: describe the skill, pick
research sources, and review the results before generation. With --yes
the skill is generated directly from the flags, using only a local
codebase scan for enrichment.`,
	RunE: runNew,
}

var (
	newYes       bool
	newProject   string
	newName      string
	newPurpose   string
	newType      string
	newAudience  string
	newWorkflows []string
	newPrefs     []string
	newPatterns  []string
)

func init() {
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Skip the wizard and generate from flags")
	newCmd.Flags().StringVar(&newProject, "project", ".", "Project directory to scan for codebase patterns")
	newCmd.Flags().StringVar(&newName, "name", "", "Skill name (lowercase, digits, hyphens)")
	newCmd.Flags().StringVar(&newPurpose, "purpose", "", "One-line purpose; becomes the description")
	newCmd.Flags().StringVar(&newType, "type", "technique", "Skill type: technique, pattern, reference, or workflow")
	newCmd.Flags().StringVar(&newAudience, "audience", "", "Intended audience")
	newCmd.Flags().StringArrayVar(&newWorkflows, "workflow", nil, "Workflow the skill covers (repeatable)")
	newCmd.Flags().StringArrayVar(&newPrefs, "prefer", nil, "Content preference, e.g. testing or troubleshooting (repeatable)")
	newCmd.Flags().StringArrayVar(&newPatterns, "pattern", nil, "Search pattern seeding research (repeatable)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var req research.Requirements
	var input research.GenerationInput

	if newYes {
		req, input, err = flagRequirements()
		if err != nil {
			return err
		}
	} else {
		result, err := tui.Run(&tui.LocalResearcher{Root: newProject})
		if err != nil {
			return fmt.Errorf("wizard error: %w", err)
		}
		if result == nil {
			logInfo("Cancelled.")
			return nil
		}
		req = result.Requirements
		input = workflow.BuildGenerationInput(result.State, req)
	}

	if err := config.ValidateSkillName(req.Name); err != nil {
		return errors.ValidationError(err.Error())
	}

	dir, err := cfg.SkillDir(req.Name)
	if err != nil {
		return errors.ValidationError(err.Error())
	}
	if _, err := os.Stat(filepath.Join(dir, config.SkillFileName)); err == nil {
		return errors.SkillExists(req.Name)
	}

	skills, err := library.Scan(cfg.LibraryDir)
	if err != nil {
		return errors.ConfigError("failed to scan skill library", err)
	}
	similar := library.Rank(req.Name+" "+req.Purpose, skills)

	log := logging.ForSkill(req.Name)
	log.Debug("generating skill",
		"library_skills", len(skills),
		"enriched", input.HasEnrichment())

	content := synth.Synthesize(input, similar, synth.Options{
		MaxTemplateFiles: cfg.MaxTemplateFiles,
	})
	if content.Frontmatter.Category == "" {
		content.Frontmatter.Category = cfg.DefaultCategory
	}

	doc := library.Document{
		Frontmatter: content.Frontmatter,
		Body:        synth.RenderBody(content),
		Files:       toOutputFiles(synth.Files(content)),
	}
	if err := library.Emit(dir, doc); err != nil {
		return errors.EmitFailed(dir, err)
	}
	log.Debug("skill emitted", "dir", dir, "files", content.Metadata.FileCount)

	logSuccess("Created skill %s", req.Name)
	fmt.Printf("  Location: %s\n", dir)
	fmt.Printf("  Sections: %d\n", content.Metadata.SectionCount)
	fmt.Printf("  Files:    %d\n", content.Metadata.FileCount)
	if content.Metadata.TemplateName != "" {
		fmt.Printf("  Modeled after: %s\n", content.Metadata.TemplateName)
	}
	if !newYes {
		fmt.Println("\nRe-run non-interactively with:")
		fmt.Printf("  %s\n", shellquote.Join(equivalentArgs(req, newProject)...))
	}

	return nil
}

// flagRequirements builds the requirements and research input for a
// non-interactive run.
func flagRequirements() (research.Requirements, research.GenerationInput, error) {
	if newName == "" || newPurpose == "" {
		return research.Requirements{}, research.GenerationInput{},
			errors.ValidationError("--name and --purpose are required with --yes")
	}

	skillType := research.SkillType(strings.ToLower(newType))
	switch skillType {
	case research.SkillTypeTechnique, research.SkillTypePattern,
		research.SkillTypeReference, research.SkillTypeWorkflow:
	default:
		return research.Requirements{}, research.GenerationInput{},
			errors.ValidationError(fmt.Sprintf("unknown skill type %q", newType))
	}

	req := research.Requirements{
		Name:               newName,
		Purpose:            newPurpose,
		SkillType:          skillType,
		Audience:           newAudience,
		Workflows:          newWorkflows,
		ContentPreferences: newPrefs,
		SearchPatterns:     newPatterns,
	}

	input := research.GenerationInput{Requirements: req}
	if newProject != "" && len(req.SearchPatterns) > 0 {
		patterns := research.NewScanner(newProject).Search(strings.Join(req.SearchPatterns, " "))
		if len(patterns.Files) > 0 || len(patterns.Conventions) > 0 {
			input.CodebasePatterns = patterns
		}
	}
	return req, input, nil
}

// equivalentArgs reconstructs the flag-based invocation matching what
// the wizard collected.
func equivalentArgs(req research.Requirements, project string) []string {
	args := []string{
		"skillsmith", "new", "--yes",
		"--name", req.Name,
		"--purpose", req.Purpose,
		"--type", string(req.SkillType),
	}
	if req.Audience != "" {
		args = append(args, "--audience", req.Audience)
	}
	for _, w := range req.Workflows {
		args = append(args, "--workflow", w)
	}
	for _, p := range req.ContentPreferences {
		args = append(args, "--prefer", p)
	}
	for _, p := range req.SearchPatterns {
		args = append(args, "--pattern", p)
	}
	if project != "" && project != "." {
		args = append(args, "--project", project)
	}
	return args
}

func toOutputFiles(files []synth.File) []library.OutputFile {
	out := make([]library.OutputFile, len(files))
	for i, file := range files {
		out[i] = library.OutputFile{Path: file.Path, Content: file.Content}
	}
	return out
}
