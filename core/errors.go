package core

import "errors"

var (
	// ErrInvalidConfiguration reports an unsupported driver setting such as an
	// unknown microstep mode.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMotionAlreadyInProgress is returned by Move while a profile is active.
	ErrMotionAlreadyInProgress = errors.New("motion already in progress")

	// ErrInvalidArgument reports a negative rate or similar bad input.
	ErrInvalidArgument = errors.New("invalid argument")
)
