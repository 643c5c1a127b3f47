package ports

import "os/exec"

// FileOpener opens an image in an external viewer
type FileOpener interface {
	OpenFile(path string) error

	// Command returns an exec.Cmd for the viewer.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

// Clipboard receives text copied by the user
type Clipboard interface {
	WriteAll(text string) error
}
