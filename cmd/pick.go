package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternforge/skillsmith/internal/errors"
	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/logging"
	"github.com/patternforge/skillsmith/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive library browser",
	Long: `Opens an interactive TUI for browsing the skill library.

Use arrow keys or j/k to navigate, / to filter, Enter to open.

Actions:
  Enter  - Show the selected skill's location
  n      - Show instructions for creating a new skill
  q/Esc  - Quit`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logging.Debug("picker mode started")

	skills, err := library.Scan(cfg.LibraryDir)
	if err != nil {
		return errors.ConfigError("failed to scan skill library", err)
	}

	if len(skills) == 0 {
		logInfo("No skills found. Create one with: skillsmith new")
		return nil
	}

	result, err := tui.RunPicker(skills)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionOpen:
		if result.Skill != nil {
			fmt.Printf("%s\n", result.Skill.Dir)
			if result.Skill.Description != "" {
				fmt.Printf("  %s\n", result.Skill.Description)
			}
		}

	case tui.ActionNew:
		fmt.Println("\nTo create a new skill, run:")
		fmt.Println("  skillsmith new")

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}
