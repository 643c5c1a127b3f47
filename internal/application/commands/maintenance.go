package commands

import (
	"context"
	"fmt"
	"strings"

	"photocat/internal/application"
	"photocat/internal/domain"
)

// SaveResult contains the result of saving the catalog
type SaveResult struct {
	Saved   bool
	Message string
}

// SaveCommand writes the catalog when it has unsaved changes
type SaveCommand struct {
	session *application.Session
}

// NewSaveCommand creates a new SaveCommand
func NewSaveCommand(session *application.Session) *SaveCommand {
	return &SaveCommand{session: session}
}

// Execute runs the save command
func (c *SaveCommand) Execute(ctx context.Context) (*SaveResult, error) {
	saved, err := c.session.Save(ctx)
	if err != nil {
		return nil, err
	}
	if !saved {
		return &SaveResult{Message: "There are no changes to save."}, nil
	}
	return &SaveResult{Saved: true, Message: "Changes saved successfully."}, nil
}

// StatsCommand reports the catalog counters
type StatsCommand struct {
	session *application.Session
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(session *application.Session) *StatsCommand {
	return &StatsCommand{session: session}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (domain.Stats, error) {
	return c.session.Catalog().Stats(), nil
}

// CheckResult contains the outcome of a consistency check
type CheckResult struct {
	OK      bool
	Problem string
	Message string
}

// CheckCommand verifies that every index matches the entry table
type CheckCommand struct {
	session *application.Session
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(session *application.Session) *CheckCommand {
	return &CheckCommand{session: session}
}

// Execute runs the check command. An inconsistency is a result, not an error.
func (c *CheckCommand) Execute(ctx context.Context) (*CheckResult, error) {
	cat := c.session.Catalog()
	if err := cat.CheckConsistency(); err != nil {
		return &CheckResult{Problem: err.Error(), Message: fmt.Sprintf("Catalog is inconsistent: %v", err)}, nil
	}
	return &CheckResult{OK: true, Message: fmt.Sprintf("Catalog is consistent (%d files)", cat.Len())}, nil
}

// Export formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportCommand produces a snapshot of the catalog for rendering
type ExportCommand struct {
	session *application.Session
	Format  string
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(session *application.Session, format string) *ExportCommand {
	return &ExportCommand{
		session: session,
		Format:  strings.ToLower(format),
	}
}

// Validate checks the command arguments
func (c *ExportCommand) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML, FormatJSON:
		return nil
	}
	return &application.ValidationError{
		Field:   "format",
		Message: fmt.Sprintf("unknown format %q (want text, yaml or json)", c.Format),
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*domain.Snapshot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.session.Catalog().Snapshot(), nil
}
