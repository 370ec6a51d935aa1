// Package engine provides the core world logic for the hero grid.
//
// A world is a rectangular grid surrounded by a one-cell boundary ring. The
// interior holds obstacles, per-cell marker counts from 0 to 9 and exactly
// one hero with a position and a heading. The engine package implements:
//   - The bit-plane tensor exchange form and its validating parser
//   - Seeded random world generation
//   - Hero actions (move, turns, marker pick and put) and sensors
//   - Action observers and a per-episode action trace
//   - World presets loaded from JSON
//
// Tensor Layout:
//
// A tensor is indexed [plane][row][col]. Planes 0-3 carry the hero heading
// (north, east, south, west), plane 4 the interior obstacles, plane 5 the
// boundary ring and planes 6-14 the one-hot marker count 1-9. Row 0 is the
// bottom row, so moving north increases the row index.
//
// Usage:
//
//	grid, err := engine.RandomGridFromSeed(engine.DefaultRandomOptions(), 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	world, err := engine.NewEngine(grid)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for world.FrontIsClear() {
//		world.Move()
//	}
//	world.PutMarker()
//	tensor := world.Tensor()
//
// Actions never fail with an error: a blocked move, a pick on an empty cell
// or a put on a full cell simply report false and leave the world unchanged.
package engine
