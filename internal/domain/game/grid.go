package game

import (
	"fmt"
	"strings"
)

// Point is a grid cell.
type Point struct {
	X int
	Y int
}

// Add returns p moved by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("[%d, %d]", p.X, p.Y)
}

// Grid is the playfield size in cells.
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p is on the playfield.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Center returns the starting cell of the snake head.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Direction is a heading on the grid.
type Direction uint8

// Directions. The zero value is Right, the initial heading.
const (
	Right Direction = iota
	Left
	Up
	Down
)

// Directions lists every heading in a stable order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Directions = [...]Direction{Up, Down, Left, Right}

// Delta returns the unit step for d. Y grows downwards.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{Y: -1}
	case Down:
		return Point{Y: 1}
	case Left:
		return Point{X: -1}
	default:
		return Point{X: 1}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return "RIGHT"
	}
}

// ParseDirection accepts UP, DOWN, LEFT or RIGHT in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return Up, true
	case "DOWN":
		return Down, true
	case "LEFT":
		return Left, true
	case "RIGHT":
		return Right, true
	default:
		return Right, false
	}
}
