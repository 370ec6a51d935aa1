package service

import (
	"log"

	"github.com/google/uuid"
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/render"
)

// NewEpisodeID returns a fresh identifier for an episode.
func NewEpisodeID() string {
	return uuid.NewString()
}

// Tracer logs every action of every session. With DrawGrid set it also
// prints the world after each action.
type Tracer struct {
	Logger   *log.Logger
	DrawGrid bool
}

// WorldSnapshot is the read-only view a tracer gets after each action.
type WorldSnapshot struct {
	Steps int
	Grid  *engine.Grid
}

// SnapshotOf returns a snapshot function for world. Grid has no exported
// mutators, so holders of a snapshot cannot change the world.
func SnapshotOf(world *engine.WorldEngine) func() WorldSnapshot {
	return func() WorldSnapshot {
		return WorldSnapshot{Steps: world.Steps(), Grid: world.Grid()}
	}
}

// For returns an observer bound to one session.
func (t *Tracer) For(sessionID string, snapshot func() WorldSnapshot) engine.Observer {
	return engine.ObserverFunc(func(action engine.Action, outcome bool) error {
		logger := t.Logger
		if logger == nil {
			logger = log.Default()
		}
		world := snapshot()
		pose := world.Grid.Pose()
		logger.Printf("[TRACE] session=%s step=%d %s ok=%t pose=(%d,%d,%s)",
			sessionID, world.Steps, action, outcome, pose.Position.Row, pose.Position.Col, pose.Direction)
		if t.DrawGrid {
			logger.Printf("[TRACE] session=%s\n%s", sessionID, render.String(world.Grid))
		}
		return nil
	})
}
