package main

import (
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/service"
)

// WallFollower walks the world keeping a wall on the hero's right and picks
// up every marker it steps on. It first heads straight until it hits a wall.
//
// It decides from sensors only, so it works on any world without reading
// the map. Markers away from the walls it follows are never found; the
// follower reports a loop instead of circling forever.
type WallFollower struct {
	foundWall bool

	// poses seen since the last pickup
	seen map[engine.Pose]bool
}

func NewWallFollower() *WallFollower {
	return &WallFollower{seen: make(map[engine.Pose]bool)}
}

// Reset forgets everything learned in a previous attempt.
func (w *WallFollower) Reset() {
	w.foundWall = false
	w.seen = make(map[engine.Pose]bool)
}

// Stop reasons reported by Next.
const (
	StopCollected = "all markers collected"
	StopLoop      = "loop detected"
)

// Next returns the actions to run from state, or a stop reason when the
// walk is over. Multi-action steps are meant to run as one program with
// stop-on-failure.
func (w *WallFollower) Next(state *service.StateView) ([]engine.Action, string) {
	sensors := state.Sensors

	if sensors[engine.CondMarkersPresent] {
		w.seen = make(map[engine.Pose]bool)
		return []engine.Action{engine.ActionPickMarker}, ""
	}
	if state.TotalMarkers == 0 {
		return nil, StopCollected
	}

	front := sensors[engine.CondFrontIsClear]
	right := sensors[engine.CondRightIsClear]

	if !w.foundWall {
		if front {
			return []engine.Action{engine.ActionMove}, ""
		}
		w.foundWall = true
	}

	if w.seen[state.Pose] {
		return nil, StopLoop
	}
	w.seen[state.Pose] = true

	switch {
	case right:
		return []engine.Action{engine.ActionTurnRight, engine.ActionMove}, ""
	case front:
		return []engine.Action{engine.ActionMove}, ""
	default:
		return []engine.Action{engine.ActionTurnLeft}, ""
	}
}
