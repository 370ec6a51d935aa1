package engine

// Grid is the mutable world of one episode. Walls and marker counts are kept
// as a mask and a bounded count per cell; the one-hot plane form is only
// produced by Tensor.
type Grid struct {
	height  int // interior rows
	width   int // interior columns
	walls   []bool
	markers []uint8
	pose    Pose
}

func newGrid(height, width int) *Grid {
	cells := (height + 2) * (width + 2)
	return &Grid{
		height:  height,
		width:   width,
		walls:   make([]bool, cells),
		markers: make([]uint8, cells),
	}
}

// FromTensor parses a serialized world. The tensor is first cropped to the
// bounding box of the boundary plane, then every invariant is checked.
// Any violation yields an error wrapping ErrInvalidState and no grid.
func FromTensor(t Tensor) (*Grid, error) {
	cropped, err := CropToBoundary(t)
	if err != nil {
		return nil, err
	}

	rows, cols := len(cropped[0]), len(cropped[0][0])
	g := newGrid(rows-2, cols-2)
	if g.height < MinSize || g.height > MaxSize || g.width < MinSize || g.width > MaxSize {
		return nil, invalidState("interior %dx%d outside [%d,%d]", g.height, g.width, MinSize, MaxSize)
	}

	var activePlanes [4]bool
	heroCells := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := Position{Row: r, Col: c}
			border := g.IsBoundary(p)
			if cropped[PlaneBoundary][r][c] != border {
				if border {
					return nil, invalidState("boundary ring is not closed at (%d,%d)", r, c)
				}
				return nil, invalidState("boundary plane set inside the ring at (%d,%d)", r, c)
			}
			if cropped[PlaneObstacle][r][c] {
				if border {
					return nil, invalidState("obstacle on the boundary ring at (%d,%d)", r, c)
				}
				g.walls[g.index(p)] = true
			}

			hero := false
			for d := North; d <= West; d++ {
				if cropped[d][r][c] {
					hero = true
					activePlanes[d] = true
					g.pose = Pose{Position: p, Direction: d}
				}
			}
			if hero {
				heroCells++
			}

			count := 0
			for k := 0; k < MaxMarkers; k++ {
				if !cropped[PlaneMarkerBase+k][r][c] {
					continue
				}
				if count != 0 {
					return nil, invalidState("more than one marker plane set at (%d,%d)", r, c)
				}
				count = k + 1
			}
			g.markers[g.index(p)] = uint8(count)
		}
	}

	active := 0
	for _, on := range activePlanes {
		if on {
			active++
		}
	}
	switch {
	case heroCells == 0:
		return nil, invalidState("no hero position")
	case active > 1:
		return nil, invalidState("too many hero directions")
	case heroCells > 1:
		return nil, invalidState("too many hero positions")
	case g.IsBoundary(g.pose.Position):
		return nil, invalidState("hero on the boundary ring at (%d,%d)", g.pose.Position.Row, g.pose.Position.Col)
	}

	return g, nil
}

// ValidateTensor checks that t is an exact, uncropped world tensor that
// satisfies every invariant.
func ValidateTensor(t Tensor) error {
	if _, err := checkShape(t); err != nil {
		return err
	}
	if _, err := FromTensor(t); err != nil {
		return err
	}
	rows, cols := len(t[0]), len(t[0][0])
	if !t[PlaneBoundary][0][0] || !t[PlaneBoundary][rows-1][cols-1] {
		return invalidState("tensor %dx%d extends beyond the boundary ring", rows, cols)
	}
	return nil
}

// Tensor synthesizes the full bit-plane tensor. The result is a fresh copy.
func (g *Grid) Tensor() Tensor {
	rows, cols := g.Rows(), g.Cols()
	t := NewTensor(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := Position{Row: r, Col: c}
			i := g.index(p)
			t[PlaneBoundary][r][c] = g.IsBoundary(p)
			t[PlaneObstacle][r][c] = g.walls[i]
			if n := g.markers[i]; n > 0 {
				t[PlaneMarkerBase+int(n)-1][r][c] = true
			}
		}
	}
	hero := g.pose.Position
	t[g.pose.Direction][hero.Row][hero.Col] = true
	return t
}

// Pose returns the hero position and heading.
func (g *Grid) Pose() Pose {
	return g.pose
}

// Height returns the number of interior rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of interior columns.
func (g *Grid) Width() int { return g.width }

// Rows returns the number of tensor rows, border included.
func (g *Grid) Rows() int { return g.height + 2 }

// Cols returns the number of tensor columns, border included.
func (g *Grid) Cols() int { return g.width + 2 }

// InBounds reports whether p addresses a cell of the tensor.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows() && p.Col >= 0 && p.Col < g.Cols()
}

// IsBoundary reports whether p lies on the outer ring.
func (g *Grid) IsBoundary(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	return p.Row == 0 || p.Col == 0 || p.Row == g.Rows()-1 || p.Col == g.Cols()-1
}

// IsObstacle reports whether p holds an interior wall.
func (g *Grid) IsObstacle(p Position) bool {
	return g.InBounds(p) && g.walls[g.index(p)]
}

// IsWall reports whether p is blocked by an interior wall or the boundary
// ring. Positions outside the tensor are treated as walls.
func (g *Grid) IsWall(p Position) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.IsBoundary(p) || g.walls[g.index(p)]
}

// MarkerCount returns the number of markers at p, 0 through MaxMarkers.
func (g *Grid) MarkerCount(p Position) int {
	if !g.InBounds(p) {
		return 0
	}
	return int(g.markers[g.index(p)])
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		height:  g.height,
		width:   g.width,
		walls:   make([]bool, len(g.walls)),
		markers: make([]uint8, len(g.markers)),
		pose:    g.pose,
	}
	copy(c.walls, g.walls)
	copy(c.markers, g.markers)
	return c
}

// Equal reports whether g and other describe the same world.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.height != other.height || g.width != other.width || g.pose != other.pose {
		return false
	}
	for i := range g.walls {
		if g.walls[i] != other.walls[i] || g.markers[i] != other.markers[i] {
			return false
		}
	}
	return true
}

func (g *Grid) index(p Position) int {
	return p.Row*g.Cols() + p.Col
}

func (g *Grid) setMarkers(p Position, n int) {
	g.markers[g.index(p)] = uint8(n)
}
