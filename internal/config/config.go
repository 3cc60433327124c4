// Package config provides tool configuration and filesystem paths for skillsmith.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// skillNameRegex validates skill names.
// Names must start with a lowercase letter or digit, followed by lowercase
// letters, digits, or hyphens. Maximum length is 63 characters.
var skillNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// ValidateSkillName checks if a skill name is valid.
// Valid names:
//   - Start with a lowercase letter or digit
//   - Contain only lowercase letters, digits, or hyphens
//   - Are between 1 and 63 characters long
//   - Do not contain path separators or special characters
func ValidateSkillName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}

	if !skillNameRegex.MatchString(name) {
		return fmt.Errorf("invalid skill name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// SafePath validates that a constructed path stays within the base directory.
// This prevents path traversal where names like "../../../etc/passwd" could
// escape the intended directory.
func SafePath(baseDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("name cannot be an absolute path")
	}

	if filepath.Dir(name) != "." {
		return "", fmt.Errorf("name cannot contain path separators")
	}

	path := filepath.Join(baseDir, name)

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	// Add separator to prevent prefix matching (e.g., /lib/skills vs /lib/skills-evil)
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return "", fmt.Errorf("path escapes base directory")
	}

	return path, nil
}

const (
	// DefaultConfigName is the config file looked up in the config dir.
	DefaultConfigName = "config.toml"

	// SkillFileName is the primary document inside each skill directory.
	SkillFileName = "SKILL.md"
)

// Config represents the tool configuration from config.toml
type Config struct {
	// LibraryDir is the root of the skill library.
	LibraryDir string `toml:"library_dir"`

	// DefaultCategory is applied when the wizard leaves the category blank.
	DefaultCategory string `toml:"default_category"`

	// MaxTemplateFiles caps the number of individual template snippet
	// files written per language.
	MaxTemplateFiles int `toml:"max_template_files"`
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.LibraryDir == "" {
		return fmt.Errorf("library_dir is required")
	}
	if c.MaxTemplateFiles < 0 {
		return fmt.Errorf("max_template_files cannot be negative (got %d)", c.MaxTemplateFiles)
	}
	return nil
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.DefaultCategory == "" {
		c.DefaultCategory = "technique"
	}
	if c.MaxTemplateFiles == 0 {
		c.MaxTemplateFiles = 10
	}
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		LibraryDir: defaultLibraryDir(),
	}
	cfg.applyDefaults()
	return cfg
}

func defaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skillsmith/library"
	}
	return filepath.Join(home, ".skillsmith", "library")
}

// Load loads the configuration from config.toml in the given directory.
// A missing file is not an error: defaults are returned.
func Load(configDir string) (*Config, error) {
	path := filepath.Join(configDir, DefaultConfigName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LibraryDir == "" {
		cfg.LibraryDir = defaultLibraryDir()
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigDir returns the directory searched for config.toml.
func DefaultConfigDir() string {
	if dir := os.Getenv("SKILLSMITH_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skillsmith"
	}
	return filepath.Join(home, ".skillsmith")
}

// SkillDir returns the directory for a named skill inside the library.
func (c *Config) SkillDir(name string) (string, error) {
	dir, err := SafePath(c.LibraryDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid skill name: %w", err)
	}
	return dir, nil
}
