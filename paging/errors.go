package paging

import "errors"

var (
	// ErrAlreadyComplete is returned by Step when every instruction of the
	// run has been executed. It is informational; reset to start over.
	ErrAlreadyComplete = errors.New("all instructions have been executed")

	// ErrInvalidInstructionCount is returned when a run is configured with
	// fewer than one instruction.
	ErrInvalidInstructionCount = errors.New("instruction count must be at least 1")

	// ErrUnknownPolicy is returned when a policy name cannot be parsed.
	ErrUnknownPolicy = errors.New("unknown replacement policy")
)
