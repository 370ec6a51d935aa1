package engine

import (
	"fmt"
	"strings"
)

// NewTensor allocates an all-false tensor of NumPlanes x rows x cols.
func NewTensor(rows, cols int) Tensor {
	t := make(Tensor, NumPlanes)
	for p := range t {
		t[p] = make([][]bool, rows)
		for r := range t[p] {
			t[p][r] = make([]bool, cols)
		}
	}
	return t
}

// Shape returns the plane, row and column extents of t. It assumes t is
// rectangular.
func (t Tensor) Shape() (planes, rows, cols int) {
	planes = len(t)
	if planes > 0 {
		rows = len(t[0])
		if rows > 0 {
			cols = len(t[0][0])
		}
	}
	return planes, rows, cols
}

// Clone returns a deep copy of t.
func (t Tensor) Clone() Tensor {
	c := make(Tensor, len(t))
	for p := range t {
		c[p] = make([][]bool, len(t[p]))
		for r := range t[p] {
			c[p][r] = append([]bool(nil), t[p][r]...)
		}
	}
	return c
}

// Equal reports whether t and other have the same shape and bits.
func (t Tensor) Equal(other Tensor) bool {
	if len(t) != len(other) {
		return false
	}
	for p := range t {
		if len(t[p]) != len(other[p]) {
			return false
		}
		for r := range t[p] {
			if len(t[p][r]) != len(other[p][r]) {
				return false
			}
			for c := range t[p][r] {
				if t[p][r][c] != other[p][r][c] {
					return false
				}
			}
		}
	}
	return true
}

// checkShape verifies that t has NumPlanes non-empty, rectangular planes.
func checkShape(t Tensor) (rows int, err error) {
	if len(t) != NumPlanes {
		return 0, invalidState("expected %d planes, got %d", NumPlanes, len(t))
	}
	rows = len(t[0])
	if rows == 0 || len(t[0][0]) == 0 {
		return 0, invalidState("empty tensor")
	}
	cols := len(t[0][0])
	for p := range t {
		if len(t[p]) != rows {
			return 0, invalidState("plane %d has %d rows, expected %d", p, len(t[p]), rows)
		}
		for r := range t[p] {
			if len(t[p][r]) != cols {
				return 0, invalidState("plane %d row %d has %d columns, expected %d", p, r, len(t[p][r]), cols)
			}
		}
	}
	return rows, nil
}

// CropToBoundary returns a copy of t restricted to the bounding box of the
// true cells of the boundary plane.
func CropToBoundary(t Tensor) (Tensor, error) {
	rows, err := checkShape(t)
	if err != nil {
		return nil, err
	}
	cols := len(t[0][0])

	minR, maxR, minC, maxC := rows, -1, cols, -1
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !t[PlaneBoundary][r][c] {
				continue
			}
			minR, maxR = min(minR, r), max(maxR, r)
			minC, maxC = min(minC, c), max(maxC, c)
		}
	}
	if maxR < 0 {
		return nil, invalidState("boundary plane is empty")
	}

	cropped := make(Tensor, NumPlanes)
	for p := range t {
		cropped[p] = make([][]bool, maxR-minR+1)
		for r := minR; r <= maxR; r++ {
			cropped[p][r-minR] = append([]bool(nil), t[p][r][minC:maxC+1]...)
		}
	}
	return cropped, nil
}

// EncodeTensor renders t in the compact text form: planes separated by '/',
// rows by ',' and one '0' or '1' per cell.
func EncodeTensor(t Tensor) string {
	var b strings.Builder
	for p := range t {
		if p > 0 {
			b.WriteByte('/')
		}
		for r := range t[p] {
			if r > 0 {
				b.WriteByte(',')
			}
			for _, on := range t[p][r] {
				if on {
					b.WriteByte('1')
				} else {
					b.WriteByte('0')
				}
			}
		}
	}
	return b.String()
}

// DecodeTensor parses the compact text form produced by EncodeTensor. It
// only checks the syntax and shape; use FromTensor to validate contents.
func DecodeTensor(s string) (Tensor, error) {
	planes := strings.Split(strings.TrimSpace(s), "/")
	t := make(Tensor, len(planes))
	for p, plane := range planes {
		rows := strings.Split(plane, ",")
		t[p] = make([][]bool, len(rows))
		for r, row := range rows {
			t[p][r] = make([]bool, len(row))
			for c, ch := range row {
				switch ch {
				case '0':
				case '1':
					t[p][r][c] = true
				default:
					return nil, fmt.Errorf("%w: invalid character %q at plane %d row %d", ErrInvalidState, ch, p, r)
				}
			}
		}
	}
	if _, err := checkShape(t); err != nil {
		return nil, err
	}
	return t, nil
}
