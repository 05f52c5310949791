// Package core provides fundamental types and utilities for the wandering
// simulation. It contains no external dependencies to keep the simulation
// logic pure and testable.
package core

import "fmt"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String formats the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Parity returns 0 or 1 for the x+y checkerboard class of p. A single
// step always flips it.
func (p Point) Parity() int {
	return Abs(p.X+p.Y) % 2
}

// Grid describes the bounds of the board. Valid cells satisfy
// 0 <= x < W and 0 <= y < H.
type Grid struct {
	W, H int
}

// Valid reports whether both dimensions are positive.
func (g Grid) Valid() bool {
	return g.W > 0 && g.H > 0
}

// Contains returns true if p lies inside the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	if !g.Valid() {
		return 0
	}
	return g.W * g.H
}

// Corner returns the bottom-right cell.
func (g Grid) Corner() Point {
	return Point{X: g.W - 1, Y: g.H - 1}
}

// Direction is one of the four axis-aligned moves.
type Direction int

// The order matters: policies draw a direction index in this order.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all directions in draw order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit displacement for the direction.
// Up decreases y, matching screen coordinates.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{Y: -1}
	case DirDown:
		return Point{Y: 1}
	case DirLeft:
		return Point{X: -1}
	case DirRight:
		return Point{X: 1}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Neighbors returns the in-bounds cells adjacent to p, in direction order.
func (g Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, len(Directions))
	for _, d := range Directions {
		n := p.Add(d.Delta())
		if g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
