// Package engine implements the stage-routing state machine: the stage
// machine, the action resolver, the thought ledger and the session
// coordinator that ties them together.
package engine

import "errors"

// Sentinel errors for the failure taxonomy. Callers classify with
// errors.Is; the coordinator converts all of them into structured
// responses rather than letting them escape.
var (
	ErrValidation        = errors.New("validation failed")
	ErrIllegalTransition = errors.New("illegal stage transition")
	ErrNotFound          = errors.New("not found")
	ErrConfigurationGap  = errors.New("configuration gap")
	ErrPersistence       = errors.New("persistence failed")
)
