package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers missing or empty required input.
	ErrValidation = errors.New("missing required input")
	// ErrPermissionDenied is returned when the actor lacks the role an
	// action requires.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCannotModifySelf guards role changes and deletion against the
	// acting admin targeting their own account.
	ErrCannotModifySelf = errors.New("cannot perform this action on your own account")
)

// InsufficientCandidatesError is returned by the return-carrier lottery when
// the eligible pool is smaller than the number of boards needing a carrier.
// No assignment is performed in that case.
type InsufficientCandidatesError struct {
	Needed    int
	Available int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("not enough transport candidates: need %d, have %d", e.Needed, e.Available)
}
