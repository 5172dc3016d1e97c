package models

import "strconv"

// World is the square toroidal grid the simulation runs on. It holds no
// mutable state; every method is pure coordinate arithmetic.
type World struct {
	size int
}

// NewWorld creates a size×size world.
func NewWorld(size int) (*World, error) {
	if size <= 0 {
		return nil, &ConfigError{Field: "size", Reason: "world size must be at least 1, got " + strconv.Itoa(size)}
	}
	return &World{size: size}, nil
}

// Size returns the side length of the grid.
func (w *World) Size() int {
	return w.size
}

// Wrap maps any coordinate onto [0, size).
func (w *World) Wrap(coord int) int {
	m := coord % w.size
	if m < 0 {
		m += w.size
	}
	return m
}

// Step moves one cell in the given direction, wrapping at the edges.
func (w *World) Step(pos Position, dir Direction) Position {
	dx, dy := dir.Delta()
	return Position{X: w.Wrap(pos.X + dx), Y: w.Wrap(pos.Y + dy)}
}

// InBounds reports whether pos lies inside the grid without wrapping.
func (w *World) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < w.size && pos.Y >= 0 && pos.Y < w.size
}

// AllPositions lists every cell in row-major order.
func (w *World) AllPositions() []Position {
	out := make([]Position, 0, w.size*w.size)
	for y := 0; y < w.size; y++ {
		for x := 0; x < w.size; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

func (w *World) String() string {
	return "World(size=" + strconv.Itoa(w.size) + ")"
}
