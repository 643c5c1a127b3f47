package commands

import (
	"context"
	"fmt"

	"photocat/internal/application"
	"photocat/internal/domain"
)

// KeywordResult contains the result of a keyword edit
type KeywordResult struct {
	Keyword string
	IDs     []domain.EntryID
	Message string
}

// AddKeywordCommand tags a file, or every cataloged file in a directory
type AddKeywordCommand struct {
	session *application.Session
	Keyword string
	Target  string
}

// NewAddKeywordCommand creates a new AddKeywordCommand
func NewAddKeywordCommand(session *application.Session, keyword, target string) *AddKeywordCommand {
	return &AddKeywordCommand{
		session: session,
		Keyword: keyword,
		Target:  target,
	}
}

// Validate checks the command arguments
func (c *AddKeywordCommand) Validate() error {
	if err := application.ValidateUserKeyword(c.Keyword, true); err != nil {
		return err
	}
	return application.ValidateRequired("target", c.Target)
}

// Execute runs the add keyword command
func (c *AddKeywordCommand) Execute(ctx context.Context) (*KeywordResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	target, err := c.session.Resolve(c.Target)
	if err != nil {
		return nil, err
	}

	kw := domain.NormalizeKeyword(c.Keyword)
	cat := c.session.Catalog()
	for _, id := range target.IDs {
		if err := cat.AddKeyword(kw, id); err != nil {
			return nil, fmt.Errorf("failed to add keyword: %w", err)
		}
	}

	return &KeywordResult{
		Keyword: kw,
		IDs:     target.IDs,
		Message: fmt.Sprintf("Keyword %s added to %d file(s)", kw, len(target.IDs)),
	}, nil
}

// RemoveKeywordCommand removes a keyword from a file or a directory's files
type RemoveKeywordCommand struct {
	session *application.Session
	Keyword string
	Target  string
}

// NewRemoveKeywordCommand creates a new RemoveKeywordCommand
func NewRemoveKeywordCommand(session *application.Session, keyword, target string) *RemoveKeywordCommand {
	return &RemoveKeywordCommand{
		session: session,
		Keyword: keyword,
		Target:  target,
	}
}

// Validate checks the command arguments
func (c *RemoveKeywordCommand) Validate() error {
	if err := application.ValidateUserKeyword(c.Keyword, false); err != nil {
		return err
	}
	return application.ValidateRequired("target", c.Target)
}

// Execute runs the remove keyword command
func (c *RemoveKeywordCommand) Execute(ctx context.Context) (*KeywordResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	target, err := c.session.Resolve(c.Target)
	if err != nil {
		return nil, err
	}

	kw := domain.NormalizeKeyword(c.Keyword)
	cat := c.session.Catalog()
	for _, id := range target.IDs {
		if err := cat.RemoveKeyword(kw, id); err != nil {
			return nil, fmt.Errorf("failed to remove keyword: %w", err)
		}
	}

	return &KeywordResult{
		Keyword: kw,
		IDs:     target.IDs,
		Message: fmt.Sprintf("Keyword %s removed from %d file(s)", kw, len(target.IDs)),
	}, nil
}
