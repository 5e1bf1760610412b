package service

import "errors"

var (
	// ErrNoProgram is returned by operations that need a generated program.
	ErrNoProgram = errors.New("no program; run `grindfit start` first")

	ErrNotConfirmed = errors.New("action not confirmed")

	// ErrGenerationInProgress is returned while a plan generation is pending.
	ErrGenerationInProgress = errors.New("program generation already in progress")

	// ErrGenerationFailed wraps every plan generation failure. No partial
	// program is installed when it is returned.
	ErrGenerationFailed = errors.New("failed to generate program")
)
