package engine

// Plane indices of the serialized world tensor.
const (
	PlaneNorth = iota
	PlaneEast
	PlaneSouth
	PlaneWest
	PlaneObstacle
	PlaneBoundary
	PlaneMarkerBase

	// NumPlanes is the fixed depth of a world tensor: 4 orientation planes,
	// 2 wall planes and 9 one-hot marker-count planes.
	NumPlanes = PlaneMarkerBase + MaxMarkers
)

const (
	// MinSize and MaxSize bound the interior height and width of a world.
	MinSize = 2
	MaxSize = 16

	// MaxMarkers is the largest number of markers a single cell can hold.
	MaxMarkers = 9

	// MaxProgramSteps caps the number of actions executed by one program call.
	MaxProgramSteps = 1000

	WebSocketBufferSize = 256
)

// Direction is the hero heading. The numeric value equals the orientation
// plane that carries the hero.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionDeltas = [4]Position{
	{Row: 1, Col: 0},  // north
	{Row: 0, Col: 1},  // east
	{Row: -1, Col: 0}, // south
	{Row: 0, Col: -1}, // west
}

var directionNames = [4]string{"north", "east", "south", "west"}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// Left returns the direction after a quarter turn counter-clockwise.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction after a quarter turn clockwise.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Delta returns the unit vector for d.
func (d Direction) Delta() Position {
	return directionDeltas[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return directionNames[d]
}

// Position is a cell coordinate in the full tensor (border included).
// Row 0 is the bottom row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighbouring position one cell towards d.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Pose is the hero position and heading.
type Pose struct {
	Position  Position  `json:"position"`
	Direction Direction `json:"direction"`
}

// Tensor is the dense boolean exchange form of a world, indexed
// [plane][row][col] with NumPlanes planes.
type Tensor [][][]bool

// Action names a mutating hero operation. The string values are the names
// reported to observers and recorded in action traces.
type Action string

const (
	ActionMove       Action = "move"
	ActionTurnLeft   Action = "turnLeft"
	ActionTurnRight  Action = "turnRight"
	ActionPickMarker Action = "pickMarker"
	ActionPutMarker  Action = "putMarker"
)

// Actions lists every mutating action in canonical order.
var Actions = []Action{ActionMove, ActionTurnLeft, ActionTurnRight, ActionPickMarker, ActionPutMarker}

// Condition names a read-only sensor predicate.
type Condition string

const (
	CondFrontIsClear     Condition = "frontIsClear"
	CondLeftIsClear      Condition = "leftIsClear"
	CondRightIsClear     Condition = "rightIsClear"
	CondMarkersPresent   Condition = "markersPresent"
	CondNoMarkersPresent Condition = "noMarkersPresent"
	CondFacingNorth      Condition = "facingNorth"
	CondFacingEast       Condition = "facingEast"
	CondFacingSouth      Condition = "facingSouth"
	CondFacingWest       Condition = "facingWest"
)

// Conditions lists every sensor predicate in canonical order.
var Conditions = []Condition{
	CondFrontIsClear, CondLeftIsClear, CondRightIsClear,
	CondMarkersPresent, CondNoMarkersPresent,
	CondFacingNorth, CondFacingEast, CondFacingSouth, CondFacingWest,
}

// ActionRecord is a single entry of an episode's action trace.
type ActionRecord struct {
	Step      int    `json:"step"`
	Action    Action `json:"action"`
	Success   bool   `json:"success"`
	From      Pose   `json:"from"`
	To        Pose   `json:"to"`
	Markers   int    `json:"markers"` // marker count under the hero after the action
	Timestamp int64  `json:"timestamp"`
}

// WorldConfig is a named preset for random world generation, loaded from JSON.
type WorldConfig struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Height           int     `json:"height"`
	Width            int     `json:"width"`
	WallRatio        float64 `json:"wall_ratio"`
	MarkerRatio      float64 `json:"marker_ratio"`
	MaxMarkersInCell int     `json:"max_markers_in_cell,omitempty"`
	Seed             *int64  `json:"seed,omitempty"` // fixed seed; nil means one per session
}
