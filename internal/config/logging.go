package config

// LoggingConfig configures logging. The board owns the terminal, so logs only
// ever go to File.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // json, console
	File       string          `yaml:"file"`                 // relative paths resolve against the config dir
	DebugMode  bool            `yaml:"debug_mode"`           // false = no logging at all
	Categories map[string]bool `yaml:"categories,omitempty"` // per-category toggles: store, drag, ui, config, boot
}

// IsCategoryEnabled reports whether a category should log. Nothing logs
// outside debug mode; in debug mode unlisted categories are on.
func (c LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	enabled, exists := c.Categories[category]
	return !exists || enabled
}
