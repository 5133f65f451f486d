package cmdlet

import "errors"

var (
	// ErrStageOrder matches every StageOrderError via errors.Is.
	ErrStageOrder = errors.New("cmdlet: stage out of order")

	// ErrHooksMismatch is returned by New when WithHooks was given hooks for
	// another target type.
	ErrHooksMismatch = errors.New("cmdlet: hooks type mismatch")
)

// StageOrderError is returned when the host invokes a stage the current state
// does not allow, e.g. ProcessRecord before a successful BeginProcessing.
type StageOrderError struct {
	Stage Stage
	State State
}

// Error implements the error interface.
func (e StageOrderError) Error() string {
	// Example: cmdlet: process not allowed in state created
	return "cmdlet: " + e.Stage.String() + " not allowed in state " + e.State.String()
}

// Is reports whether target is ErrStageOrder.
func (e StageOrderError) Is(target error) bool { return target == ErrStageOrder }
