package engine

import (
	"fmt"
	"math/rand"
)

// RandomOptions parameterizes random world generation.
type RandomOptions struct {
	Height      int
	Width       int
	WallRatio   float64
	MarkerRatio float64

	// MaxMarkersInCell is accepted for compatibility with existing callers
	// but not consulted: generated cells hold at most one marker.
	MaxMarkersInCell int
}

// DefaultRandomOptions returns the options used when a preset omits them.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{
		Height:           8,
		Width:            8,
		WallRatio:        0.1,
		MarkerRatio:      0.1,
		MaxMarkersInCell: 1,
	}
}

// Validate checks the size and ratio bounds.
func (o RandomOptions) Validate() error {
	if o.Height < MinSize || o.Width < MinSize {
		return fmt.Errorf("%w: height and width should be at least %d, got %dx%d", ErrInvalidSize, MinSize, o.Height, o.Width)
	}
	if o.Height > MaxSize || o.Width > MaxSize {
		return fmt.Errorf("%w: height and width should be at most %d, got %dx%d", ErrInvalidSize, MaxSize, o.Height, o.Width)
	}
	if !(o.WallRatio >= 0 && o.WallRatio <= 1) {
		return fmt.Errorf("%w: wall ratio %v outside [0,1]", ErrInvalidOptions, o.WallRatio)
	}
	if !(o.MarkerRatio >= 0 && o.MarkerRatio <= 1) {
		return fmt.Errorf("%w: marker ratio %v outside [0,1]", ErrInvalidOptions, o.MarkerRatio)
	}
	return nil
}

// RandomGrid generates a world from rng. Draws happen in a fixed order (one
// wall draw per interior cell, hero row, column and heading, then one marker
// draw per interior cell) so equal rng states produce identical worlds.
// Walls are drawn independently of the hero, who may start on one.
func RandomGrid(opts RandomOptions, rng *rand.Rand) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidOptions)
	}

	g := newGrid(opts.Height, opts.Width)
	for r := 1; r <= g.height; r++ {
		for c := 1; c <= g.width; c++ {
			if rng.Float64() < opts.WallRatio {
				g.walls[g.index(Position{Row: r, Col: c})] = true
			}
		}
	}

	hero := Position{Row: 1 + rng.Intn(g.height), Col: 1 + rng.Intn(g.width)}
	g.pose = Pose{Position: hero, Direction: Direction(rng.Intn(4))}

	for r := 1; r <= g.height; r++ {
		for c := 1; c <= g.width; c++ {
			i := g.index(Position{Row: r, Col: c})
			if rng.Float64() < opts.MarkerRatio && !g.walls[i] {
				g.markers[i] = 1
			}
		}
	}

	return g, nil
}

// RandomGridFromSeed generates a world from a private source seeded with seed.
func RandomGridFromSeed(opts RandomOptions, seed int64) (*Grid, error) {
	return RandomGrid(opts, rand.New(rand.NewSource(seed)))
}
