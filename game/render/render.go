// Package render turns a world into printable text, one string per grid row
// with the top row first.
package render

import (
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/herogrid/game/engine"
)

// Glyphs selects the characters used for each cell kind.
type Glyphs struct {
	Obstacle string
	Boundary string
	Empty    string
	Hero     [4]string // indexed by engine.Direction
	// HeroOver is appended to a non-empty cell glyph when the hero stands on
	// it, so the underlying digit stays visible.
	HeroOver [4]string
}

// Unicode is the box-drawing glyph set.
var Unicode = Glyphs{
	Obstacle: "░",
	Boundary: "█",
	Empty:    " ",
	Hero:     [4]string{"↑", "→", "↓", "←"},
	HeroOver: [4]string{"\u0305", "\u0355", "\u0322", "\u0354"},
}

// ASCII is a plain glyph set for terminals and logs without Unicode support.
var ASCII = Glyphs{
	Obstacle: "#",
	Boundary: "*",
	Empty:    ".",
	Hero:     [4]string{"^", ">", "v", "<"},
	HeroOver: [4]string{"^", ">", "v", "<"},
}

// Rows renders g with the Unicode glyph set.
func Rows(g *engine.Grid) []string {
	return RowsWith(g, Unicode)
}

// ASCIIRows renders g with the ASCII glyph set.
func ASCIIRows(g *engine.Grid) []string {
	return RowsWith(g, ASCII)
}

// RowsWith renders g with a custom glyph set. Cell precedence is obstacle,
// boundary, marker digit, hero, empty.
func RowsWith(g *engine.Grid, glyphs Glyphs) []string {
	hero := g.Pose()
	rows := make([]string, 0, g.Rows())
	for r := g.Rows() - 1; r >= 0; r-- {
		var b strings.Builder
		for c := 0; c < g.Cols(); c++ {
			p := engine.Position{Row: r, Col: c}
			glyph := cellGlyph(g, p, glyphs)
			if p == hero.Position {
				if glyph == glyphs.Empty {
					glyph = glyphs.Hero[hero.Direction]
				} else {
					glyph += glyphs.HeroOver[hero.Direction]
				}
			}
			b.WriteString(glyph)
		}
		rows = append(rows, b.String())
	}
	return rows
}

func cellGlyph(g *engine.Grid, p engine.Position, glyphs Glyphs) string {
	switch {
	case g.IsObstacle(p):
		return glyphs.Obstacle
	case g.IsBoundary(p):
		return glyphs.Boundary
	}
	if n := g.MarkerCount(p); n > 0 {
		return strconv.Itoa(n)
	}
	return glyphs.Empty
}

// String renders g as newline separated Unicode rows.
func String(g *engine.Grid) string {
	return strings.Join(Rows(g), "\n")
}

// ASCIIString renders g as newline separated ASCII rows.
func ASCIIString(g *engine.Grid) string {
	return strings.Join(ASCIIRows(g), "\n")
}
