package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for world operations
type Engine interface {
	// World state
	Grid() *Grid
	Pose() Pose
	Tensor() Tensor
	MarkerCount(p Position) int
	Reset(grid *Grid) error

	// Hero actions
	Move() bool
	TurnLeft() bool
	TurnRight() bool
	PickMarker() bool
	PutMarker() bool
	Do(action Action) bool
	Execute(name string) (bool, error)

	// Sensors
	FrontIsClear() bool
	LeftIsClear() bool
	RightIsClear() bool
	MarkersPresent() bool
	NoMarkersPresent() bool
	FacingNorth() bool
	FacingEast() bool
	FacingSouth() bool
	FacingWest() bool
	Check(cond Condition) bool
	Evaluate(name string) (bool, error)

	// Trace
	History() []ActionRecord
	LastAction() *ActionRecord
	Steps() int
	ObserverErr() error
}

// WorldEngine implements the Engine interface over a single Grid.
type WorldEngine struct {
	grid        *Grid
	observer    Observer
	observerErr error
	history     []ActionRecord
	now         func() time.Time
}

// Option configures a WorldEngine.
type Option func(*WorldEngine)

// WithObserver installs an observer notified after each action.
func WithObserver(o Observer) Option {
	return func(e *WorldEngine) {
		e.observer = o
	}
}

// WithClock overrides the clock used to timestamp the action trace.
func WithClock(now func() time.Time) Option {
	return func(e *WorldEngine) {
		e.now = now
	}
}

// NewEngine creates an engine that drives grid. The engine takes ownership
// of grid; callers must not keep mutating references to it.
func NewEngine(grid *Grid, opts ...Option) (*WorldEngine, error) {
	if grid == nil {
		return nil, fmt.Errorf("grid cannot be nil")
	}
	e := &WorldEngine{
		grid:    grid,
		history: []ActionRecord{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewEngineFromTensor parses t and wraps the resulting grid in an engine.
func NewEngineFromTensor(t Tensor, opts ...Option) (*WorldEngine, error) {
	grid, err := FromTensor(t)
	if err != nil {
		return nil, err
	}
	return NewEngine(grid, opts...)
}

// Grid returns the world. Grid exposes no mutators outside this package.
func (e *WorldEngine) Grid() *Grid {
	return e.grid
}

// Pose returns the hero pose.
func (e *WorldEngine) Pose() Pose {
	return e.grid.pose
}

// Tensor returns a fresh serialization of the world.
func (e *WorldEngine) Tensor() Tensor {
	return e.grid.Tensor()
}

// MarkerCount returns the marker count at p.
func (e *WorldEngine) MarkerCount(p Position) int {
	return e.grid.MarkerCount(p)
}

// SetObserver replaces the installed observer. A nil observer disables
// notifications.
func (e *WorldEngine) SetObserver(o Observer) {
	e.observer = o
}

// Reset starts a new episode on grid and clears the action trace.
func (e *WorldEngine) Reset(grid *Grid) error {
	if grid == nil {
		return fmt.Errorf("grid cannot be nil")
	}
	e.grid = grid
	e.history = []ActionRecord{}
	e.observerErr = nil
	return nil
}

// History returns a copy of the action trace of the current episode.
func (e *WorldEngine) History() []ActionRecord {
	out := make([]ActionRecord, len(e.history))
	copy(out, e.history)
	return out
}

// LastAction returns the most recent trace entry, or nil if none.
func (e *WorldEngine) LastAction() *ActionRecord {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// Steps returns the number of actions executed in the current episode.
func (e *WorldEngine) Steps() int {
	return len(e.history)
}

// ObserverErr returns the observer failure of the most recent action, if any.
func (e *WorldEngine) ObserverErr() error {
	return e.observerErr
}

// RestoreHistory replaces the action trace, used when a persisted episode is
// loaded back into memory.
func (e *WorldEngine) RestoreHistory(records []ActionRecord) {
	e.history = make([]ActionRecord, len(records))
	copy(e.history, records)
}

// settle records the finished action and then notifies the observer. The
// grid is already consistent at this point.
func (e *WorldEngine) settle(action Action, from Pose, outcome bool) {
	to := e.grid.pose
	e.history = append(e.history, ActionRecord{
		Step:      len(e.history) + 1,
		Action:    action,
		Success:   outcome,
		From:      from,
		To:        to,
		Markers:   e.grid.MarkerCount(to.Position),
		Timestamp: e.now().Unix(),
	})
	e.observerErr = notify(e.observer, action, outcome)
}
