package models

import "errors"

// Validation sentinels. Every violation is raised synchronously at
// construction/validation time; callers discriminate with errors.Is and
// treat any of these as "this configuration payload is invalid".
var (
	// ErrInvalidButton reports a button whose action is ambiguous or
	// missing, whose callback data exceeds the length bound, or whose
	// text is empty.
	ErrInvalidButton = errors.New("invalid inline keyboard button")

	// ErrMissingKeyboard reports a callback-contract check that ran
	// against a message exposing no callback data at all.
	ErrMissingKeyboard = errors.New("message exposes no callback data")

	// ErrUnsatisfiedCallbackContract reports a keyboard whose callback
	// data does not satisfy the required rule.
	ErrUnsatisfiedCallbackContract = errors.New("unsatisfied callback contract")

	// Quick-links collection violations.
	ErrTooManyLinks         = errors.New("too many quick links")
	ErrDuplicateLinkTitle   = errors.New("duplicate quick link title")
	ErrMissingRequiredLinks = errors.New("missing required quick links")

	// ErrMissingPersistenceKey reports a persisted record without both
	// partition and sort keys.
	ErrMissingPersistenceKey = errors.New("PK and SK are required")
)
