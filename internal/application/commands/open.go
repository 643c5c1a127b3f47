package commands

import (
	"context"
	"fmt"

	"photocat/internal/application"
	"photocat/internal/ports"
)

// resolveFile resolves a target that must name exactly one file
func resolveFile(session *application.Session, arg string) (*application.Target, error) {
	if err := application.ValidateRequired("target", arg); err != nil {
		return nil, err
	}
	target, err := session.Resolve(arg)
	if err != nil {
		return nil, err
	}
	if target.Kind != application.TargetFile {
		return nil, &application.ValidationError{
			Field:   "target",
			Message: fmt.Sprintf("expected a file, got directory %s", target.Path),
		}
	}
	return target, nil
}

// OpenCommand shows a cataloged file in the external viewer
type OpenCommand struct {
	session *application.Session
	opener  ports.FileOpener
	Target  string
}

// NewOpenCommand creates a new OpenCommand
func NewOpenCommand(session *application.Session, opener ports.FileOpener, target string) *OpenCommand {
	return &OpenCommand{
		session: session,
		opener:  opener,
		Target:  target,
	}
}

// Execute runs the open command and returns the opened path
func (c *OpenCommand) Execute(ctx context.Context) (string, error) {
	target, err := resolveFile(c.session, c.Target)
	if err != nil {
		return "", err
	}
	if err := c.opener.OpenFile(target.Path); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", target.Path, err)
	}
	return target.Path, nil
}

// CopyCommand copies the full path of a cataloged file to the clipboard
type CopyCommand struct {
	session   *application.Session
	clipboard ports.Clipboard
	Target    string
}

// NewCopyCommand creates a new CopyCommand
func NewCopyCommand(session *application.Session, clipboard ports.Clipboard, target string) *CopyCommand {
	return &CopyCommand{
		session:   session,
		clipboard: clipboard,
		Target:    target,
	}
}

// Execute runs the copy command and returns the copied path
func (c *CopyCommand) Execute(ctx context.Context) (string, error) {
	target, err := resolveFile(c.session, c.Target)
	if err != nil {
		return "", err
	}
	if err := c.clipboard.WriteAll(target.Path); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return target.Path, nil
}
