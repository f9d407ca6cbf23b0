package export

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"rumo/internal/logging"
)

// ErrClipboardUnavailable means no system clipboard could be reached, or
// clipboard use is disabled in config.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Package-level hooks so tests can stand in for the system clipboard.
var (
	clipboardWriteAll    = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// Clipboard is the copy sink used by the completion screen and `rumo copy`.
type Clipboard struct {
	enabled bool
	logger  *zap.Logger
}

// NewClipboard returns a sink. A disabled sink always reports
// ErrClipboardUnavailable.
func NewClipboard(enabled bool, logger *zap.Logger) *Clipboard {
	if logger == nil {
		logger = logging.Get(logging.CategoryExport)
	}
	return &Clipboard{enabled: enabled, logger: logger}
}

// Enabled reports whether Copy will attempt to reach the clipboard.
func (c *Clipboard) Enabled() bool { return c.enabled && !clipboardUnsupported() }

// Copy places text on the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return ErrClipboardUnavailable
	}
	if err := clipboardWriteAll(text); err != nil {
		c.logger.Warn("clipboard write failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	c.logger.Debug("copied to clipboard", zap.Int("bytes", len(text)))
	return nil
}
