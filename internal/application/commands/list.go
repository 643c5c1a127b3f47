package commands

import (
	"context"
	"fmt"
	"strings"

	"photocat/internal/application"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

// ListResult holds either entries or plain keys, never both
type ListResult struct {
	Title   string
	Entries []*catalog.Entry
	Keys    []string
}

// ListCommand lists the catalog, its directories or keywords, a target,
// or the files under one index key
type ListCommand struct {
	session *application.Session
	Subject string
	By      string
}

// NewListCommand creates a new ListCommand
func NewListCommand(session *application.Session, subject, by string) *ListCommand {
	return &ListCommand{
		session: session,
		Subject: subject,
		By:      by,
	}
}

// Validate checks the command arguments
func (c *ListCommand) Validate() error {
	if c.By == "" {
		return nil
	}
	if _, ok := catalog.ParseIndexKind(c.By); !ok {
		return &application.ValidationError{
			Field:   "indexKind",
			Message: fmt.Sprintf("unknown index: %s", c.By),
		}
	}
	return application.ValidateRequired("key", c.Subject)
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cat := c.session.Catalog()
	if c.By != "" {
		kind, _ := catalog.ParseIndexKind(c.By)
		ids, err := cat.Find(kind, c.Subject)
		if err != nil {
			return nil, err
		}
		return &ListResult{
			Title:   fmt.Sprintf("Files with %s %s", kind, c.Subject),
			Entries: entries(cat, ids.Sorted()),
		}, nil
	}

	switch strings.ToLower(c.Subject) {
	case "":
		return &ListResult{Title: "All files", Entries: cat.Entries()}, nil
	case "dirs", "directories":
		return &ListResult{Title: "Directories", Keys: cat.Directories()}, nil
	case "keywords":
		return &ListResult{Title: "Keywords", Keys: cat.Keywords()}, nil
	case "duplicates":
		return &ListResult{Title: "Duplicates", Entries: entries(cat, cat.DuplicateIDs())}, nil
	case "potential":
		return &ListResult{Title: "Potential duplicates", Entries: entries(cat, cat.PotentialDuplicateIDs())}, nil
	}

	target, err := c.session.Resolve(c.Subject)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Title:   fmt.Sprintf("Files in %s", target.Path),
		Entries: entries(cat, target.IDs),
	}, nil
}

func entries(cat *catalog.Catalog, ids []domain.EntryID) []*catalog.Entry {
	out := make([]*catalog.Entry, 0, len(ids))
	for _, id := range ids {
		if e, err := cat.Entry(id); err == nil {
			out = append(out, e)
		}
	}
	return out
}

// DetailsCommand returns full records for a target
type DetailsCommand struct {
	session *application.Session
	Target  string
}

// NewDetailsCommand creates a new DetailsCommand
func NewDetailsCommand(session *application.Session, target string) *DetailsCommand {
	return &DetailsCommand{
		session: session,
		Target:  target,
	}
}

// Validate checks the command arguments
func (c *DetailsCommand) Validate() error {
	return application.ValidateRequired("target", c.Target)
}

// Execute runs the details command
func (c *DetailsCommand) Execute(ctx context.Context) ([]*catalog.Entry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	target, err := c.session.Resolve(c.Target)
	if err != nil {
		return nil, err
	}
	return entries(c.session.Catalog(), target.IDs), nil
}
