package engine

// Move steps the hero one cell forward. A wall in front leaves the world
// untouched and returns false.
func (e *WorldEngine) Move() bool {
	from := e.grid.pose
	next := from.Position.Step(from.Direction)
	ok := !e.grid.IsWall(next)
	if ok {
		e.grid.pose.Position = next
	}
	e.settle(ActionMove, from, ok)
	return ok
}

// TurnLeft rotates the hero a quarter turn counter-clockwise.
func (e *WorldEngine) TurnLeft() bool {
	from := e.grid.pose
	e.grid.pose.Direction = from.Direction.Left()
	e.settle(ActionTurnLeft, from, true)
	return true
}

// TurnRight rotates the hero a quarter turn clockwise.
func (e *WorldEngine) TurnRight() bool {
	from := e.grid.pose
	e.grid.pose.Direction = from.Direction.Right()
	e.settle(ActionTurnRight, from, true)
	return true
}

// PickMarker removes one marker from the hero cell. It returns false when
// the cell is empty.
func (e *WorldEngine) PickMarker() bool {
	from := e.grid.pose
	k := e.grid.MarkerCount(from.Position)
	ok := k > 0
	if ok {
		e.grid.setMarkers(from.Position, k-1)
	}
	e.settle(ActionPickMarker, from, ok)
	return ok
}

// PutMarker adds one marker to the hero cell. It returns false when the cell
// already holds MaxMarkers.
func (e *WorldEngine) PutMarker() bool {
	from := e.grid.pose
	k := e.grid.MarkerCount(from.Position)
	ok := k < MaxMarkers
	if ok {
		e.grid.setMarkers(from.Position, k+1)
	}
	e.settle(ActionPutMarker, from, ok)
	return ok
}

// Do dispatches a canonical action. Unknown actions return false without
// touching the world.
func (e *WorldEngine) Do(action Action) bool {
	switch action {
	case ActionMove:
		return e.Move()
	case ActionTurnLeft:
		return e.TurnLeft()
	case ActionTurnRight:
		return e.TurnRight()
	case ActionPickMarker:
		return e.PickMarker()
	case ActionPutMarker:
		return e.PutMarker()
	}
	return false
}

// Execute runs the action named name in either naming convention. The error
// is non-nil for unknown names, or when the observer failed after the
// action settled; in that case the outcome is still valid.
func (e *WorldEngine) Execute(name string) (bool, error) {
	action, err := ParseAction(name)
	if err != nil {
		return false, err
	}
	ok := e.Do(action)
	return ok, e.observerErr
}

func (e *WorldEngine) clearToward(d Direction) bool {
	return !e.grid.IsWall(e.grid.pose.Position.Step(d))
}

// FrontIsClear reports whether the cell ahead is free of walls.
func (e *WorldEngine) FrontIsClear() bool {
	return e.clearToward(e.grid.pose.Direction)
}

// LeftIsClear reports whether the cell to the hero's left is free of walls.
func (e *WorldEngine) LeftIsClear() bool {
	return e.clearToward(e.grid.pose.Direction.Left())
}

// RightIsClear reports whether the cell to the hero's right is free of walls.
func (e *WorldEngine) RightIsClear() bool {
	return e.clearToward(e.grid.pose.Direction.Right())
}

// MarkersPresent reports whether the hero cell holds any marker.
func (e *WorldEngine) MarkersPresent() bool {
	return e.grid.MarkerCount(e.grid.pose.Position) > 0
}

// NoMarkersPresent is the complement of MarkersPresent.
func (e *WorldEngine) NoMarkersPresent() bool {
	return !e.MarkersPresent()
}

func (e *WorldEngine) FacingNorth() bool { return e.grid.pose.Direction == North }
func (e *WorldEngine) FacingEast() bool  { return e.grid.pose.Direction == East }
func (e *WorldEngine) FacingSouth() bool { return e.grid.pose.Direction == South }
func (e *WorldEngine) FacingWest() bool  { return e.grid.pose.Direction == West }

// Check evaluates a canonical condition. Unknown conditions are false.
func (e *WorldEngine) Check(cond Condition) bool {
	switch cond {
	case CondFrontIsClear:
		return e.FrontIsClear()
	case CondLeftIsClear:
		return e.LeftIsClear()
	case CondRightIsClear:
		return e.RightIsClear()
	case CondMarkersPresent:
		return e.MarkersPresent()
	case CondNoMarkersPresent:
		return e.NoMarkersPresent()
	case CondFacingNorth:
		return e.FacingNorth()
	case CondFacingEast:
		return e.FacingEast()
	case CondFacingSouth:
		return e.FacingSouth()
	case CondFacingWest:
		return e.FacingWest()
	}
	return false
}

// Evaluate checks the condition named name in either naming convention.
func (e *WorldEngine) Evaluate(name string) (bool, error) {
	cond, err := ParseCondition(name)
	if err != nil {
		return false, err
	}
	return e.Check(cond), nil
}

// Sensors evaluates every condition, keyed by canonical name.
func (e *WorldEngine) Sensors() map[Condition]bool {
	out := make(map[Condition]bool, len(Conditions))
	for _, c := range Conditions {
		out[c] = e.Check(c)
	}
	return out
}
