package engine

import (
	"errors"
	"fmt"
)

// Observer is notified after every mutating action has settled. It receives
// only the action name and its outcome and has no access to the grid.
type Observer interface {
	Observe(action Action, outcome bool) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(action Action, outcome bool) error

// Observe calls f.
func (f ObserverFunc) Observe(action Action, outcome bool) error {
	return f(action, outcome)
}

// MultiObserver fans a notification out to every observer in order. All
// observers run even if an earlier one fails; the failures are joined.
type MultiObserver []Observer

// Observe notifies each observer.
func (m MultiObserver) Observe(action Action, outcome bool) error {
	var errs []error
	for _, o := range m {
		if o == nil {
			continue
		}
		if err := o.Observe(action, outcome); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notify runs the observer in isolation. Errors and panics are converted to
// an error wrapping ErrObserver.
func notify(o Observer, action Action, outcome bool) (err error) {
	if o == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrObserver, action, r)
		}
	}()
	if oerr := o.Observe(action, outcome); oerr != nil {
		return fmt.Errorf("%w: %s: %w", ErrObserver, action, oerr)
	}
	return nil
}
