package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all onething configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	// Board startup
	Board BoardConfig `yaml:"board"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig configures the terminal board.
type UIConfig struct {
	Theme    string `yaml:"theme"`     // auto, light, dark
	Language string `yaml:"language"`  // en, fr
	WordWrap int    `yaml:"word_wrap"` // markdown wrap width for descriptions
	ShowHelp bool   `yaml:"show_help"` // start with the full key help open
}

// BoardConfig configures the board at startup.
type BoardConfig struct {
	SeedSamples bool `yaml:"seed_samples"` // start with the demo tasks
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "onething",
		Version: "0.3.0",

		UI: UIConfig{
			Theme:    "auto",
			Language: "en",
			WordWrap: 60,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   "onething.log",
		},
	}
}

// DefaultPath returns ~/.config/onething/config.yaml, or a relative path if
// the user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".onething", "config.yaml")
	}
	return filepath.Join(dir, "onething", "config.yaml")
}

// Load loads configuration from a YAML file. A .env file next to it is
// loaded into the environment first; variables already set win.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults if the config file doesn't exist
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("ONETHING_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if lang := os.Getenv("ONETHING_LANG"); lang != "" {
		c.UI.Language = strings.ToLower(lang)
	}
	if level := os.Getenv("ONETHING_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if v := os.Getenv("ONETHING_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
		}
	}
	if v := os.Getenv("ONETHING_SAMPLES"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			c.Board.SeedSamples = seed
		}
	}
}

var (
	// ValidThemes lists the accepted ui.theme values.
	ValidThemes = []string{"auto", "light", "dark"}

	// ValidLanguages lists the languages with a message catalogue.
	ValidLanguages = []string{"en", "fr"}

	// ValidLogLevels lists the accepted logging.level values.
	ValidLogLevels = []string{"debug", "info", "warn", "error"}

	// ValidLogFormats lists the accepted logging.format values.
	ValidLogFormats = []string{"json", "console"}
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if !slices.Contains(ValidLanguages, c.UI.Language) {
		return fmt.Errorf("invalid ui.language: %s (valid: %v)", c.UI.Language, ValidLanguages)
	}
	if c.UI.WordWrap < 0 {
		return fmt.Errorf("invalid ui.word_wrap: %d", c.UI.WordWrap)
	}
	if !slices.Contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !slices.Contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}
