package application

import (
	"errors"
	"fmt"

	"photocat/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidEntry     = domain.ErrInvalidEntry
	ErrReservedKeyword  = errors.New("reserved keyword")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrUnknownCommand   = errors.New("unknown command")
)

// ValidationError represents a validation failure with details
type ValidationError = domain.ValidationError

// NotFoundError reports a missing file, directory or keyword
type NotFoundError = domain.NotFoundError

// KeywordError reports an attempt to change a keyword the catalog manages itself
type KeywordError struct {
	Keyword string
	Reason  string
}

func (e *KeywordError) Error() string {
	return fmt.Sprintf("keyword %s %s", e.Keyword, e.Reason)
}

func (e *KeywordError) Is(target error) bool {
	return target == ErrReservedKeyword
}

// ArgumentError reports a command invoked with the wrong arguments
type ArgumentError struct {
	Command string
	Usage   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid arguments, usage: %s", e.Command, e.Usage)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArguments
}
