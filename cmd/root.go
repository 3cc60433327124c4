package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/patternforge/skillsmith/internal/config"
	"github.com/patternforge/skillsmith/internal/errors"
	"github.com/patternforge/skillsmith/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "skillsmith",
	Short: "Skill library generator CLI",
	Long: `skillsmith builds documentation skills from guided research.

Each skill is a directory in your library with:
  - SKILL.md with frontmatter and prioritized sections
  - references/ with package and convention docs
  - templates/ with reusable code snippets
  - examples/ with worked examples`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)

// loadConfig loads the tool configuration from the default config dir.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.DefaultConfigDir())
	if err != nil {
		return nil, errors.ConfigError("failed to load configuration", err)
	}
	return cfg, nil
}
