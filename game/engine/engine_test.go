package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)

	g, err := RandomGridFromSeed(DefaultRandomOptions(), 1)
	require.NoError(t, err)

	e, err := NewEngine(g)
	require.NoError(t, err)
	assert.Same(t, g, e.Grid())
	assert.Equal(t, g.Pose(), e.Pose())
	assert.Equal(t, 0, e.Steps())
	assert.Nil(t, e.LastAction())
	assert.Empty(t, e.History())
	assert.NoError(t, e.ObserverErr())
}

func TestNewEngineFromTensorInvalid(t *testing.T) {
	_, err := NewEngineFromTensor(NewTensor(4, 4))
	assert.ErrorIs(t, err, ErrInvalidState)
}

// The 4x4 open world scenario walks through every action kind once.
func TestEndToEndScenario(t *testing.T) {
	e := newTestEngine(t, worldTensor(4, 4, pose(1, 1, East), nil, nil))

	assert.True(t, e.FrontIsClear())
	assert.True(t, e.Move())
	assert.Equal(t, Position{Row: 1, Col: 2}, e.Pose().Position)
	assert.True(t, e.PutMarker())
	assert.True(t, e.MarkersPresent())
	assert.Equal(t, 1, e.MarkerCount(Position{Row: 1, Col: 2}))
	assert.True(t, e.PickMarker())
	assert.False(t, e.MarkersPresent())
	assert.NoError(t, ValidateTensor(e.Tensor()))
}

func TestExecuteAcceptsBothNamings(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(2, 2, North), nil, nil))

	for _, name := range []string{"turnLeft", "turn_left", "turnRight", "turn_right", "put_marker", "pickMarker"} {
		ok, err := e.Execute(name)
		require.NoError(t, err, name)
		assert.True(t, ok, name)
	}
	assert.Equal(t, North, e.Pose().Direction)

	ok, err := e.Execute("jump")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, 6, e.Steps(), "unknown action is not recorded")
}

func TestEvaluate(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, West), nil, nil))

	tests := []struct {
		name     string
		expected bool
	}{
		{"frontIsClear", false},
		{"front_is_clear", false},
		{"rightIsClear", true},
		{"left_is_clear", false},
		{"facing_west", true},
		{"facingNorth", false},
		{"no_markers_present", true},
		{"markersPresent", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := e.Evaluate(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
		})
	}

	_, err := e.Evaluate("isHappy")
	assert.ErrorIs(t, err, ErrUnknownCondition)
}

func TestObserverSeesSettledState(t *testing.T) {
	var e *WorldEngine
	var seen []Action
	var outcomes []bool
	var positions []Position

	e = newTestEngine(t, worldTensor(3, 3, pose(1, 1, North), nil, nil),
		WithObserver(ObserverFunc(func(action Action, outcome bool) error {
			seen = append(seen, action)
			outcomes = append(outcomes, outcome)
			positions = append(positions, e.Pose().Position)
			return nil
		})))

	e.Move()
	e.TurnLeft()
	e.Move()
	e.PickMarker()
	e.PutMarker()

	assert.Equal(t, []Action{ActionMove, ActionTurnLeft, ActionMove, ActionPickMarker, ActionPutMarker}, seen)
	assert.Equal(t, []bool{true, true, false, false, true}, outcomes)
	assert.Equal(t, Position{Row: 2, Col: 1}, positions[0], "observer runs after the move is applied")
}

func TestObserverNotCalledForSensors(t *testing.T) {
	calls := 0
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, North), nil, nil),
		WithObserver(ObserverFunc(func(Action, bool) error {
			calls++
			return nil
		})))

	e.FrontIsClear()
	e.Sensors()
	_, _ = e.Evaluate("facingNorth")
	assert.Zero(t, calls)
}

func TestObserverErrorDoesNotCorruptState(t *testing.T) {
	boom := errors.New("boom")
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, North), nil, nil),
		WithObserver(ObserverFunc(func(Action, bool) error { return boom })))

	ok, err := e.Execute("move")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrObserver)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Position{Row: 2, Col: 1}, e.Pose().Position)
	assert.NoError(t, ValidateTensor(e.Tensor()))
	assert.Equal(t, 1, e.Steps())
}

func TestObserverPanicIsRecovered(t *testing.T) {
	panicking := true
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, North), nil, nil),
		WithObserver(ObserverFunc(func(Action, bool) error {
			if panicking {
				panic("observer exploded")
			}
			return nil
		})))

	assert.NotPanics(t, func() {
		assert.True(t, e.PutMarker())
	})
	assert.ErrorIs(t, e.ObserverErr(), ErrObserver)
	assert.Equal(t, 1, e.MarkerCount(Position{Row: 1, Col: 1}))

	panicking = false
	e.TurnLeft()
	assert.NoError(t, e.ObserverErr(), "observer error is per action")
}

func TestMultiObserver(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	var calls []string

	multi := MultiObserver{
		ObserverFunc(func(Action, bool) error { calls = append(calls, "a"); return first }),
		nil,
		ObserverFunc(func(Action, bool) error { calls = append(calls, "b"); return second }),
	}

	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, North), nil, nil), WithObserver(multi))
	e.TurnRight()

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.ErrorIs(t, e.ObserverErr(), first)
	assert.ErrorIs(t, e.ObserverErr(), second)

	e.SetObserver(nil)
	e.TurnRight()
	assert.NoError(t, e.ObserverErr())
	assert.Len(t, calls, 2)
}

func TestHistory(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, East), nil, nil), WithClock(func() time.Time { return fixed }))

	e.Move()
	e.PutMarker()
	e.TurnRight()
	e.Move()

	history := e.History()
	require.Len(t, history, 4)

	assert.Equal(t, ActionRecord{
		Step:      1,
		Action:    ActionMove,
		Success:   true,
		From:      pose(1, 1, East),
		To:        pose(1, 2, East),
		Timestamp: fixed.Unix(),
	}, history[0])
	assert.Equal(t, 1, history[1].Markers)
	assert.Equal(t, pose(1, 2, South), history[2].To)
	assert.False(t, history[3].Success)
	assert.Equal(t, history[3].From, history[3].To)

	last := e.LastAction()
	require.NotNil(t, last)
	assert.Equal(t, 4, last.Step)

	history[0].Action = ActionPutMarker
	assert.Equal(t, ActionMove, e.History()[0].Action, "History returns a copy")
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, East), nil, nil))
	e.Move()
	e.PutMarker()

	assert.Error(t, e.Reset(nil))

	fresh, err := FromTensor(worldTensor(2, 2, pose(2, 2, South), nil, nil))
	require.NoError(t, err)
	require.NoError(t, e.Reset(fresh))

	assert.Equal(t, pose(2, 2, South), e.Pose())
	assert.Equal(t, 0, e.Steps())
	assert.Nil(t, e.LastAction())
}

func TestRestoreHistory(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, East), nil, nil))
	records := []ActionRecord{{Step: 1, Action: ActionMove, Success: true}}

	e.RestoreHistory(records)
	records[0].Success = false

	assert.Equal(t, 1, e.Steps())
	assert.True(t, e.History()[0].Success)

	e.TurnLeft()
	assert.Equal(t, 2, e.LastAction().Step)
}

func TestEngineInterface(t *testing.T) {
	var _ Engine = (*WorldEngine)(nil)
}
