package engine

import (
	"fmt"
	"strings"
)

// Both the camelCase and the snake_case spellings are accepted by action
// programs. They map onto the single canonical name.
var actionNames = map[string]Action{
	"move":        ActionMove,
	"turnLeft":    ActionTurnLeft,
	"turn_left":   ActionTurnLeft,
	"turnRight":   ActionTurnRight,
	"turn_right":  ActionTurnRight,
	"pickMarker":  ActionPickMarker,
	"pick_marker": ActionPickMarker,
	"putMarker":   ActionPutMarker,
	"put_marker":  ActionPutMarker,
}

var conditionNames = map[string]Condition{
	"frontIsClear":       CondFrontIsClear,
	"front_is_clear":     CondFrontIsClear,
	"leftIsClear":        CondLeftIsClear,
	"left_is_clear":      CondLeftIsClear,
	"rightIsClear":       CondRightIsClear,
	"right_is_clear":     CondRightIsClear,
	"markersPresent":     CondMarkersPresent,
	"markers_present":    CondMarkersPresent,
	"noMarkersPresent":   CondNoMarkersPresent,
	"no_markers_present": CondNoMarkersPresent,
	"facingNorth":        CondFacingNorth,
	"facing_north":       CondFacingNorth,
	"facingEast":         CondFacingEast,
	"facing_east":        CondFacingEast,
	"facingSouth":        CondFacingSouth,
	"facing_south":       CondFacingSouth,
	"facingWest":         CondFacingWest,
	"facing_west":        CondFacingWest,
}

// ParseAction resolves an action name in either calling convention.
func ParseAction(name string) (Action, error) {
	if a, ok := actionNames[strings.TrimSpace(name)]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// ParseCondition resolves a sensor name in either calling convention.
func ParseCondition(name string) (Condition, error) {
	if c, ok := conditionNames[strings.TrimSpace(name)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCondition, name)
}
