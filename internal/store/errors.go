// Package store owns the canonical resume state and funnels every mutation through one commit path.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by update operations when no entry has the given id.
	// The collection is left untouched; callers decide whether it matters.
	ErrNotFound = errors.New("entry not found")
	// ErrDuplicateSkill is returned when a skill already exists in its group
	ErrDuplicateSkill = errors.New("duplicate skill")
	// ErrEmptySkill is returned for empty or whitespace-only skills
	ErrEmptySkill = errors.New("empty skill")
)

// InvariantError reports a write rejected because it would break a store invariant
type InvariantError struct {
	Message string
	Cause   error
}

func (e *InvariantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invariant violation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

func (e *InvariantError) Unwrap() error {
	return e.Cause
}
