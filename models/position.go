package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Position is a cell coordinate. (0,0) is the top-left cell.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four movement commands.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the unit step for the direction. Up decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// String returns the single-letter code used in movement sequences.
func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "?"
}

// Name returns the long form, e.g. "Right".
func (d Direction) Name() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Unknown"
}

// ParseDirection maps a movement code (case-insensitive) to a Direction.
func ParseDirection(r rune) (Direction, error) {
	switch unicode.ToUpper(r) {
	case 'U':
		return Up, nil
	case 'D':
		return Down, nil
	case 'L':
		return Left, nil
	case 'R':
		return Right, nil
	}
	return 0, &ValidationError{Field: "movement character", Value: string(r), Reason: "expected one of U, D, L, R"}
}

// ParseDirections converts a movement string into directions. Whitespace is
// ignored; any other unknown character is rejected.
func ParseDirections(moves string) ([]Direction, error) {
	dirs := make([]Direction, 0, len(moves))
	for _, r := range moves {
		if unicode.IsSpace(r) {
			continue
		}
		d, err := ParseDirection(r)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// FormatDirections is the inverse of ParseDirections.
func FormatDirections(dirs []Direction) string {
	var b strings.Builder
	for _, d := range dirs {
		b.WriteString(d.String())
	}
	return b.String()
}
