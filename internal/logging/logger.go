// Package logging provides config-driven categorized logging for onething.
// All categories share one zap logger writing to the configured file.
// Logging is controlled by debug_mode - when false, every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"onething/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup and shutdown
	CategoryStore  Category = "store"  // Task store mutations
	CategoryDrag   Category = "drag"   // Drag sessions and drops
	CategoryUI     Category = "ui"     // Board key handling and rendering
	CategoryConfig Category = "config" // Config loading and live reload
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
	cfg  config.LoggingConfig
)

// Initialize builds the shared logger. baseDir resolves a relative log file.
// Outside debug mode it installs a no-op logger and creates no files.
func Initialize(c config.LoggingConfig, baseDir string) error {
	mu.Lock()
	defer mu.Unlock()

	_ = root.Sync()
	cfg = c
	if !c.DebugMode {
		root = zap.NewNop()
		return nil
	}

	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	file := c.File
	if file == "" {
		file = "onething.log"
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(baseDir, file)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "json"
	if c.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.OutputPaths = []string{file}
	zc.ErrorOutputPaths = []string{file}
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	root = logger
	root.Named(string(CategoryBoot)).Info("logging initialized", zap.String("file", file), zap.String("level", level.String()))
	return nil
}

// IsDebugMode reports whether logging is on.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled reports whether a category logs.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns the logger for a category, or a no-op logger if the category
// is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}

// Reset drops back to the no-op logger.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	_ = root.Sync()
	root = zap.NewNop()
	cfg = config.LoggingConfig{}
}
