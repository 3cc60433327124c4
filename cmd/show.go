package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patternforge/skillsmith/internal/config"
	"github.com/patternforge/skillsmith/internal/errors"
	"github.com/patternforge/skillsmith/internal/library"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := config.ValidateSkillName(name); err != nil {
		return errors.ValidationError(err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir, err := cfg.SkillDir(name)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	data, err := os.ReadFile(filepath.Join(dir, config.SkillFileName))
	if err != nil {
		return errors.SkillNotFound(name)
	}

	fm, _, err := library.ParseFrontmatter(data)
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("skill %s has a malformed %s", name, config.SkillFileName), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", fm.Name)
	if fm.Description != "" {
		fmt.Fprintf(out, "  %s\n", fm.Description)
	}
	fmt.Fprintf(out, "  Category: %s\n", fm.Category)
	if len(fm.AllowedTools) > 0 {
		fmt.Fprintf(out, "  Tools:    %s\n", strings.Join(fm.AllowedTools, ", "))
	}
	if len(fm.RelatedSkills) > 0 {
		fmt.Fprintf(out, "  Related:  %s\n", strings.Join(fm.RelatedSkills, ", "))
	}
	fmt.Fprintf(out, "  Location: %s\n", dir)

	return nil
}
