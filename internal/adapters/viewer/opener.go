package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"photocat/internal/ports"
)

// Opener implements ports.FileOpener
type Opener struct {
	command string
}

// Ensure Opener implements FileOpener
var _ ports.FileOpener = (*Opener)(nil)

// NewOpener creates a viewer opener. An empty command falls back to
// $PHOTOCAT_VIEWER and then the platform opener.
func NewOpener(command string) *Opener {
	return &Opener{command: command}
}

// OpenFile opens an image in the viewer without waiting for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	go cmd.Wait()
	return nil
}

// Command returns an exec.Cmd for opening a file in the viewer
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	viewer := o.findViewer()
	if viewer == "" {
		return nil, fmt.Errorf("no image viewer found: set $PHOTOCAT_VIEWER")
	}

	cmd := exec.Command(viewer, path)
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// findViewer returns the viewer to use
func (o *Opener) findViewer() string {
	if o.command != "" {
		return o.command
	}
	if env := os.Getenv("PHOTOCAT_VIEWER"); env != "" {
		return env
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"open"}
	case "windows":
		candidates = []string{"explorer"}
	default:
		candidates = []string{"xdg-open", "feh", "eog", "display"}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
	}
	return ""
}
