package models

import "fmt"

// Entity is anything that occupies a cell.
type Entity interface {
	GetID() int
	GetPosition() Position
}

// Creature is a living entity that zombies can infect. Implementations
// override the hooks to customise behaviour; BasicCreature is the default.
type Creature interface {
	Entity
	// CanBeInfected returns false for immune creatures.
	CanBeInfected() bool
	// OnZombieNearby is called when a zombie steps onto the creature's cell.
	OnZombieNearby(zombiePos Position, world *World)
	// OnInfected is called right before the creature turns.
	OnInfected()
}

// BasicCreature never moves and is always infectable.
type BasicCreature struct {
	ID       int      `json:"id"`
	Position Position `json:"position"`
}

// NewBasicCreature creates the default creature.
func NewBasicCreature(id int, pos Position) Creature {
	return &BasicCreature{ID: id, Position: pos}
}

func (c *BasicCreature) GetID() int            { return c.ID }
func (c *BasicCreature) GetPosition() Position { return c.Position }
func (c *BasicCreature) CanBeInfected() bool   { return true }

func (c *BasicCreature) OnZombieNearby(zombiePos Position, world *World) {}

func (c *BasicCreature) OnInfected() {}

func (c *BasicCreature) String() string {
	return fmt.Sprintf("creature %d at %s", c.ID, c.Position)
}

// Zombie walks a movement sequence shared by every zombie in the run.
type Zombie struct {
	ID       int
	Position Position

	moves  []Direction
	cursor int
}

// NewZombie creates a zombie at pos that will replay moves.
func NewZombie(id int, pos Position, moves []Direction) *Zombie {
	return &Zombie{ID: id, Position: pos, moves: moves}
}

func (z *Zombie) GetID() int            { return z.ID }
func (z *Zombie) GetPosition() Position { return z.Position }

// Done reports whether the whole sequence has been walked.
func (z *Zombie) Done() bool {
	return z.cursor >= len(z.moves)
}

// Remaining returns the number of moves left.
func (z *Zombie) Remaining() int {
	return len(z.moves) - z.cursor
}

// Moves returns the zombie's movement sequence.
func (z *Zombie) Moves() []Direction {
	return z.moves
}

// Advance applies the next move and returns the new position. It must not be
// called once Done reports true.
func (z *Zombie) Advance(world *World) Position {
	dir := z.moves[z.cursor]
	z.cursor++
	z.Position = world.Step(z.Position, dir)
	return z.Position
}

func (z *Zombie) String() string {
	return fmt.Sprintf("zombie %d", z.ID)
}
