// Package parser turns user-supplied text into a simulation configuration
// using Participle v2. Coordinates are written "x,y" or "(x,y)" and lists are
// separated by whitespace or semicolons.
package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"zombie-outbreak/server/models"
)

// Coordinate: "(" ? x "," y ")" ?
type Coordinate struct {
	X int `parser:"\"(\"? @Int \",\""`
	Y int `parser:"@Int \")\"?"`
}

// CoordinateList is a sequence of coordinates with optional ";" separators.
type CoordinateList struct {
	Coordinates []*Coordinate `parser:"( @@ \";\"? )*"`
}

var coordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),;]`},
})

var (
	coordinateParser = participle.MustBuild[Coordinate](
		participle.Lexer(coordLexer),
		participle.Elide("Whitespace"),
	)
	listParser = participle.MustBuild[CoordinateList](
		participle.Lexer(coordLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// Position converts the AST node to a grid position.
func (c *Coordinate) Position() models.Position {
	return models.Position{X: c.X, Y: c.Y}
}

// ParsePosition parses a single coordinate.
func ParsePosition(text string) (models.Position, error) {
	coord, err := coordinateParser.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return models.Position{}, &models.ValidationError{Field: "position", Value: text, Reason: err.Error()}
	}
	return coord.Position(), nil
}

// ParsePositions parses a list of coordinates. Blank input yields no positions.
func ParsePositions(text string) ([]models.Position, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	list, err := listParser.ParseString("", text)
	if err != nil {
		return nil, &models.ValidationError{Field: "positions", Value: text, Reason: err.Error()}
	}
	out := make([]models.Position, 0, len(list.Coordinates))
	for _, c := range list.Coordinates {
		out = append(out, c.Position())
	}
	return out, nil
}

// ParseMoves normalizes a movement string: upper case, with whitespace and
// commas removed. Unknown letters are kept for validation to reject.
func ParseMoves(text string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(text) {
		if r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseSize parses the grid size.
func ParseSize(text string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &models.ConfigError{Field: "size", Reason: "not a number: " + text}
	}
	return size, nil
}

// ParseConfig parses and validates all inputs into a configuration.
func ParseConfig(gridSize int, zombiePosition, creaturePositions, moves string) (*models.SimulationConfig, error) {
	if gridSize < 1 {
		return nil, &models.ConfigError{Field: "size", Reason: "grid size must be at least 1"}
	}

	zombie, err := ParsePosition(zombiePosition)
	if err != nil {
		return nil, err
	}

	creatures, err := ParsePositions(creaturePositions)
	if err != nil {
		return nil, err
	}

	normalized := ParseMoves(moves)
	if _, err := models.ParseDirections(normalized); err != nil {
		return nil, err
	}

	return &models.SimulationConfig{
		GridSize:    gridSize,
		ZombieStart: zombie,
		Creatures:   creatures,
		Moves:       normalized,
	}, nil
}
