package service

import "errors"

var (
	// Calculation engine contract violations. Validation screens these out
	// upstream; the engine still rejects them rather than producing
	// nonsensical schedules.
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidTerm      = errors.New("term is out of range")
	ErrInvalidRate      = errors.New("rate cannot be negative")

	ErrUnknownBank = errors.New("unknown bank")

	// Form state machine rejections.
	ErrUnknownForm    = errors.New("unknown form kind")
	ErrNoSession      = errors.New("no form in progress")
	ErrFormInProgress = errors.New("a form is already in progress")

	ErrInvalidDuration = errors.New("grant duration must be positive")
)
