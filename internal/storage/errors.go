package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ConflictError carries the violated constraint name so services can map
// a unique violation back to the offending field. errors.Is matches it
// against ErrConflict.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return "conflict on constraint " + e.Constraint
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
