package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, tensor Tensor, opts ...Option) *WorldEngine {
	t.Helper()
	e, err := NewEngineFromTensor(tensor, opts...)
	require.NoError(t, err)
	return e
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		hero     Pose
		walls    []Position
		expected Position
		success  bool
	}{
		{"north", pose(2, 2, North), nil, Position{Row: 3, Col: 2}, true},
		{"east", pose(2, 2, East), nil, Position{Row: 2, Col: 3}, true},
		{"south", pose(2, 2, South), nil, Position{Row: 1, Col: 2}, true},
		{"west", pose(2, 2, West), nil, Position{Row: 2, Col: 1}, true},
		{"blocked by ring", pose(1, 1, South), nil, Position{Row: 1, Col: 1}, false},
		{"blocked by ring west", pose(3, 1, West), nil, Position{Row: 3, Col: 1}, false},
		{"blocked by obstacle", pose(2, 2, East), []Position{{Row: 2, Col: 3}}, Position{Row: 2, Col: 2}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := newTestEngine(t, worldTensor(3, 3, test.hero, test.walls, nil))
			before := e.Tensor()

			assert.Equal(t, test.success, e.Move())
			assert.Equal(t, test.expected, e.Pose().Position)
			assert.Equal(t, test.hero.Direction, e.Pose().Direction)

			if !test.success {
				if diff := cmp.Diff(before, e.Tensor()); diff != "" {
					t.Errorf("blocked move changed the world (-before +after):\n%s", diff)
				}
			}
		})
	}
}

func TestTurns(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(2, 2, North), nil, nil))

	assert.True(t, e.TurnLeft())
	assert.Equal(t, West, e.Pose().Direction)
	assert.True(t, e.TurnRight())
	assert.True(t, e.TurnRight())
	assert.Equal(t, East, e.Pose().Direction)
	assert.Equal(t, Position{Row: 2, Col: 2}, e.Pose().Position)

	for _, turn := range []func() bool{e.TurnLeft, e.TurnRight} {
		start := e.Pose().Direction
		for i := 0; i < 4; i++ {
			turn()
		}
		assert.Equal(t, start, e.Pose().Direction, "four quarter turns restore the heading")
	}
}

func TestMarkerBounds(t *testing.T) {
	e := newTestEngine(t, worldTensor(2, 2, pose(1, 1, North), nil, nil))
	here := Position{Row: 1, Col: 1}

	for i := 1; i <= MaxMarkers; i++ {
		require.True(t, e.PutMarker(), "put %d", i)
		assert.Equal(t, i, e.MarkerCount(here))
	}
	before := e.Tensor()
	assert.False(t, e.PutMarker(), "tenth put fails")
	assert.Equal(t, MaxMarkers, e.MarkerCount(here))
	if diff := cmp.Diff(before, e.Tensor()); diff != "" {
		t.Errorf("failed put changed the world:\n%s", diff)
	}

	for i := MaxMarkers - 1; i >= 0; i-- {
		require.True(t, e.PickMarker())
		assert.Equal(t, i, e.MarkerCount(here))
	}
	assert.False(t, e.PickMarker(), "pick on an empty cell fails")
	assert.Equal(t, 0, e.MarkerCount(here))
}

func TestMarkerTensorIsOneHot(t *testing.T) {
	e := newTestEngine(t, worldTensor(2, 2, pose(2, 2, West), nil, map[Position]int{{Row: 2, Col: 2}: 3}))

	e.PutMarker()
	tensor := e.Tensor()
	for k := 0; k < MaxMarkers; k++ {
		assert.Equal(t, k == 3, tensor[PlaneMarkerBase+k][2][2], "plane for count %d", k+1)
	}

	e.PickMarker()
	e.PickMarker()
	e.PickMarker()
	e.PickMarker()
	tensor = e.Tensor()
	for k := 0; k < MaxMarkers; k++ {
		assert.False(t, tensor[PlaneMarkerBase+k][2][2])
	}
}

func TestSensors(t *testing.T) {
	// hero in the bottom-left corner facing north, obstacle to the north-east
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, North), []Position{{Row: 2, Col: 2}}, nil))

	assert.True(t, e.FrontIsClear())
	assert.False(t, e.LeftIsClear())
	assert.True(t, e.RightIsClear())
	assert.False(t, e.MarkersPresent())
	assert.True(t, e.NoMarkersPresent())
	assert.True(t, e.FacingNorth())
	assert.False(t, e.FacingEast())
	assert.False(t, e.FacingSouth())
	assert.False(t, e.FacingWest())

	e.TurnRight()
	assert.True(t, e.FacingEast())
	assert.True(t, e.FrontIsClear())
	assert.True(t, e.LeftIsClear())
	assert.False(t, e.RightIsClear())

	e.Move()
	assert.False(t, e.LeftIsClear(), "obstacle is to the left")
	assert.True(t, e.FrontIsClear())
}

func TestSensorsDoNotMutate(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(2, 2, South), nil, map[Position]int{{Row: 2, Col: 2}: 1}))
	before := e.Tensor()

	for _, c := range Conditions {
		e.Check(c)
	}
	e.Sensors()

	if diff := cmp.Diff(before, e.Tensor()); diff != "" {
		t.Errorf("sensors changed the world:\n%s", diff)
	}
	assert.Equal(t, 0, e.Steps())
}

func TestDo(t *testing.T) {
	e := newTestEngine(t, worldTensor(3, 3, pose(1, 1, East), nil, nil))

	assert.True(t, e.Do(ActionMove))
	assert.True(t, e.Do(ActionPutMarker))
	assert.True(t, e.Do(ActionPickMarker))
	assert.True(t, e.Do(ActionTurnLeft))
	assert.True(t, e.Do(ActionTurnRight))
	assert.False(t, e.Do(Action("jump")))
	assert.Equal(t, 5, e.Steps())
}
