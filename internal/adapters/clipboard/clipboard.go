package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"photocat/internal/ports"
)

// System implements ports.Clipboard on the desktop clipboard
type System struct{}

// Ensure System implements Clipboard
var _ ports.Clipboard = System{}

// New returns the system clipboard, or nil when no clipboard utility
// is installed
func New() ports.Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return System{}
}

// WriteAll replaces the clipboard contents
func (System) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
