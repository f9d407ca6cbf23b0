// Package logging builds rumo's zap logger and hands out per-category
// children of it.
//
// The interactive wizard owns the terminal, so logs there go to a file
// (or nowhere). Non-interactive commands may also log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryConfig Category = "config" // Config load/validate
	CategoryWizard Category = "wizard" // Interview navigation and completion
	CategoryStore  Category = "store"  // Profile persistence, file watching
	CategoryExport Category = "export" // Exporters and clipboard
	CategoryUI     Category = "ui"     // Terminal program
)

// Categories lists every category, in display order.
var Categories = []Category{
	CategoryBoot, CategoryConfig, CategoryWizard, CategoryStore, CategoryExport, CategoryUI,
}

// Options selects level, encoding and sinks.
type Options struct {
	Level   string // debug, info, warn, error; empty = info
	Format  string // json, console; empty = json
	File    string // append to this file when set
	Stderr  bool   // also write to stderr
	Verbose bool   // force debug level
}

var (
	baseMu sync.RWMutex
	base   = zap.NewNop()
)

// New builds a logger from opts. With no sink configured it returns a
// no-op logger, never an error.
func New(opts Options) (*zap.Logger, error) {
	var outputs []string
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		outputs = append(outputs, opts.File)
	}
	if opts.Stderr {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch opts.Format {
	case "", "json":
		config.Encoding = "json"
	case "console":
		config.Encoding = "console"
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// Initialize installs l as the process-wide base logger. A nil l resets
// to a no-op logger.
func Initialize(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	baseMu.Lock()
	base = l
	baseMu.Unlock()
}

// L returns the base logger.
func L() *zap.Logger {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return base
}

// For returns the category child of l. A nil l yields a no-op logger.
func For(l *zap.Logger, category Category) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(string(category))
}

// Get returns the category child of the base logger.
func Get(category Category) *zap.Logger {
	return For(L(), category)
}

// Sync flushes the base logger. Errors from syncing stderr are expected on
// some platforms and ignored.
func Sync() {
	_ = L().Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - printf-style logging on the base logger
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Sugar().Infof(format, args...)
}

// Store logs to the store category
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Sugar().Infof(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Sugar().Debugf(format, args...)
}

// Wizard logs to the wizard category
func Wizard(format string, args ...interface{}) {
	Get(CategoryWizard).Sugar().Infof(format, args...)
}

// WizardDebug logs debug to the wizard category
func WizardDebug(format string, args ...interface{}) {
	Get(CategoryWizard).Sugar().Debugf(format, args...)
}
