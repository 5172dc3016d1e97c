package services

import (
	"fmt"
	"strings"

	"zombie-outbreak/server/models"
)

// KeyMap maps the WASD keys to directions.
var KeyMap = map[string]models.Direction{
	"w": models.Up,
	"a": models.Left,
	"s": models.Down,
	"d": models.Right,
}

// GameState is free play: every key press moves all zombies one cell in the
// same direction at once. Zombies created by that move join on the next press.
type GameState struct {
	world     *models.World
	start     models.Position
	initial   []models.Position
	zombies   []models.Position
	creatures []models.Position // input order, infected ones removed
	history   []models.Direction
	message   string
}

// NewGameState sets up a free-play game. Duplicate creature positions
// collapse into one creature.
func NewGameState(world *models.World, zombieStart models.Position, creatures []models.Position) (*GameState, error) {
	if world == nil {
		return nil, &models.ConfigError{Field: "world", Reason: "world is required"}
	}
	if !world.InBounds(zombieStart) {
		return nil, &models.ValidationError{Field: "zombie position", Value: zombieStart.String(), Reason: "outside grid"}
	}
	seen := make(map[models.Position]bool, len(creatures))
	initial := make([]models.Position, 0, len(creatures))
	for _, pos := range creatures {
		if !world.InBounds(pos) {
			return nil, &models.ValidationError{Field: "creature position", Value: pos.String(), Reason: "outside grid"}
		}
		if seen[pos] {
			continue
		}
		seen[pos] = true
		initial = append(initial, pos)
	}

	g := &GameState{world: world, start: zombieStart, initial: initial}
	g.Reset()
	return g, nil
}

// Reset restores the starting layout and clears the history.
func (g *GameState) Reset() {
	g.zombies = []models.Position{g.start}
	g.creatures = append([]models.Position(nil), g.initial...)
	g.history = nil
	g.message = ""
}

// Move handles a key press. It returns false when the key is not a movement
// key, in which case nothing changes.
func (g *GameState) Move(key string) bool {
	dir, ok := KeyMap[strings.ToLower(key)]
	if !ok {
		return false
	}
	g.history = append(g.history, dir)

	var infected []models.Position
	for i, pos := range g.zombies {
		next := g.world.Step(pos, dir)
		g.zombies[i] = next
		if g.removeCreature(next) {
			infected = append(infected, next)
		}
	}
	g.zombies = append(g.zombies, infected...)

	g.message = "Moved " + dir.Name()
	if len(infected) > 0 {
		g.message += fmt.Sprintf(" - Infected %d creature(s)!", len(infected))
	}
	return true
}

func (g *GameState) removeCreature(pos models.Position) bool {
	for i, c := range g.creatures {
		if c == pos {
			g.creatures = append(g.creatures[:i], g.creatures[i+1:]...)
			return true
		}
	}
	return false
}

// World returns the grid the game is played on.
func (g *GameState) World() *models.World { return g.world }

// Zombies returns zombie positions in creation order.
func (g *GameState) Zombies() []models.Position { return g.zombies }

// Creatures returns the positions of the creatures still alive.
func (g *GameState) Creatures() []models.Position { return g.creatures }

// Message describes the last move.
func (g *GameState) Message() string { return g.message }

// SetMessage overrides the status line, e.g. after a reset.
func (g *GameState) SetMessage(msg string) { g.message = msg }

// History returns every move made since the last reset.
func (g *GameState) History() []models.Direction { return g.history }

// RecentMoves renders the last n moves, or "(none)".
func (g *GameState) RecentMoves(n int) string {
	h := g.history
	if len(h) > n {
		h = h[len(h)-n:]
	}
	if len(h) == 0 {
		return "(none)"
	}
	return models.FormatDirections(h)
}

// AllInfected reports whether no creature is left.
func (g *GameState) AllInfected() bool {
	return len(g.creatures) == 0
}

// Summary is the game-over report.
func (g *GameState) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Total moves: %d\n", len(g.history))
	fmt.Fprintf(&b, "  Move sequence: %s\n", models.FormatDirections(g.history))
	fmt.Fprintf(&b, "  Final zombies: %d\n", len(g.zombies))
	fmt.Fprintf(&b, "  Surviving creatures: %d\n", len(g.creatures))
	b.WriteString("\n  Final positions:\n")
	fmt.Fprintf(&b, "    Zombies: %s\n", joinPositions(g.zombies))
	fmt.Fprintf(&b, "    Creatures: %s\n", joinPositions(g.creatures))
	return b.String()
}
