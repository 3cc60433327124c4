package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternforge/skillsmith/internal/errors"
	"github.com/patternforge/skillsmith/internal/library"
	"github.com/patternforge/skillsmith/internal/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills in the library",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	skills, err := library.Scan(cfg.LibraryDir)
	if err != nil {
		return errors.ConfigError("failed to scan skill library", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.ListSkills(skills))
	return nil
}
