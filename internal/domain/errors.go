package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the catalog error taxonomy
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidEntry    = errors.New("invalid entry")
	ErrSnapshotAbsent  = errors.New("snapshot absent")
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
	ErrPersistenceIO   = errors.New("persistence I/O failure")
)

// ValidationError represents a field that is missing or out of range
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEntry
}

// NotFoundError reports a missing id, path, directory or keyword
type NotFoundError struct {
	What string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StoreError is returned by snapshot stores. Kind is one of the
// snapshot sentinels and Err carries the underlying cause, if any.
type StoreError struct {
	Op       string
	Location string
	Kind     error
	Err      error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Location, e.Kind, e.Err)
}

func (e *StoreError) Is(target error) bool {
	return target == e.Kind
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Absent, Corrupt and IOFailure build StoreErrors of the matching kind.
func Absent(op, location string) error {
	return &StoreError{Op: op, Location: location, Kind: ErrSnapshotAbsent}
}

func Corrupt(op, location string, err error) error {
	return &StoreError{Op: op, Location: location, Kind: ErrSnapshotCorrupt, Err: err}
}

func IOFailure(op, location string, err error) error {
	return &StoreError{Op: op, Location: location, Kind: ErrPersistenceIO, Err: err}
}

// Kind names the taxonomy bucket an error falls into, or "" if none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInvalidEntry):
		return "InvalidEntry"
	case errors.Is(err, ErrSnapshotAbsent):
		return "SnapshotAbsent"
	case errors.Is(err, ErrSnapshotCorrupt):
		return "SnapshotCorrupt"
	case errors.Is(err, ErrPersistenceIO):
		return "PersistenceIOFailure"
	default:
		return ""
	}
}
