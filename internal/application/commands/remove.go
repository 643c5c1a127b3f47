package commands

import (
	"context"
	"fmt"

	"photocat/internal/application"
	"photocat/internal/domain"
)

// RemoveResult contains the result of removing files
type RemoveResult struct {
	Target  *application.Target
	Removed []domain.EntryID
	Message string
}

// RemoveCommand drops a file, or every cataloged file in a directory, from the catalog.
// Files on disk are never touched.
type RemoveCommand struct {
	session *application.Session
	Target  string
}

// NewRemoveCommand creates a new RemoveCommand
func NewRemoveCommand(session *application.Session, target string) *RemoveCommand {
	return &RemoveCommand{
		session: session,
		Target:  target,
	}
}

// Validate checks the command arguments
func (c *RemoveCommand) Validate() error {
	return application.ValidateRequired("target", c.Target)
}

// Execute runs the remove command
func (c *RemoveCommand) Execute(ctx context.Context) (*RemoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	target, err := c.session.Resolve(c.Target)
	if err != nil {
		return nil, err
	}

	cat := c.session.Catalog()
	res := &RemoveResult{Target: target}
	for _, id := range target.IDs {
		if err := cat.RemoveFile(id); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", id, err)
		}
		res.Removed = append(res.Removed, id)
	}

	if target.Kind == application.TargetFile {
		res.Message = fmt.Sprintf("Removed %s %s", target.IDs[0], target.Path)
	} else {
		res.Message = fmt.Sprintf("Removed %d file(s) in %s", len(res.Removed), target.Path)
	}
	return res, nil
}
