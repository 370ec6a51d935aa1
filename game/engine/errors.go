package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a random world is requested with an
	// interior height or width outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("invalid world size")

	// ErrInvalidState is returned when a serialized tensor violates the
	// plane layout or its invariants.
	ErrInvalidState = errors.New("invalid state")

	ErrInvalidOptions   = errors.New("invalid generation options")
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownCondition = errors.New("unknown condition")

	// ErrObserver wraps failures raised by an installed Observer.
	ErrObserver = errors.New("observer failed")
)

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
