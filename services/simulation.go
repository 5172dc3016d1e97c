package services

import (
	"errors"
	"fmt"

	"zombie-outbreak/server/models"
)

var (
	// ErrSimulationConsumed is returned by Run on a simulation that already ran.
	ErrSimulationConsumed = errors.New("simulation already consumed")
	// ErrSimulationAborted is returned after an event handler failed.
	ErrSimulationAborted = errors.New("simulation aborted by event handler")
)

// CreatureFactory builds the creature placed at a starting position.
type CreatureFactory func(id int, pos models.Position) models.Creature

// SimulationParams is everything needed to set up a simulation.
type SimulationParams struct {
	InitialZombie models.Position
	// Creatures are placed in order; the order is kept for the result and
	// decides which creature turns first when several share a cell.
	Creatures []models.Position
	Moves     string
	Handler   models.EventHandler
	// NewCreature defaults to models.NewBasicCreature.
	NewCreature CreatureFactory
}

// Simulation runs zombies one after another through the shared movement
// sequence. Each zombie created by an infection waits until every zombie
// created before it has finished.
type Simulation struct {
	world    *models.World
	moves    []models.Direction
	entities *EntityTracker
	handler  models.EventHandler

	queue []*models.Zombie // append-only
	head  int

	moveCount      int
	infectionCount int
	consumed       bool
	aborted        bool
}

// NewSimulation validates params and places the initial zombie and the
// creatures. Nothing moves until Step or Run is called.
func NewSimulation(world *models.World, params SimulationParams) (*Simulation, error) {
	if world == nil {
		return nil, &models.ConfigError{Field: "world", Reason: "world is required"}
	}

	moves, err := models.ParseDirections(params.Moves)
	if err != nil {
		return nil, err
	}

	if !world.InBounds(params.InitialZombie) {
		return nil, &models.ValidationError{
			Field:  "zombie position",
			Value:  params.InitialZombie.String(),
			Reason: fmt.Sprintf("outside %dx%d grid", world.Size(), world.Size()),
		}
	}

	newCreature := params.NewCreature
	if newCreature == nil {
		newCreature = models.NewBasicCreature
	}

	entities := NewEntityTracker()
	for i, pos := range params.Creatures {
		c := newCreature(i, pos)
		if !world.InBounds(c.GetPosition()) {
			return nil, &models.ValidationError{
				Field:  "creature position",
				Value:  c.GetPosition().String(),
				Reason: fmt.Sprintf("outside %dx%d grid", world.Size(), world.Size()),
			}
		}
		if err := entities.AddCreature(c); err != nil {
			return nil, err
		}
	}

	first := entities.CreateZombieAt(params.InitialZombie, moves)

	return &Simulation{
		world:    world,
		moves:    moves,
		entities: entities,
		handler:  params.Handler,
		queue:    []*models.Zombie{first},
	}, nil
}

// World returns the grid the simulation runs on.
func (s *Simulation) World() *models.World {
	return s.world
}

// Moves returns the parsed movement sequence.
func (s *Simulation) Moves() []models.Direction {
	return s.moves
}

// QueueLen returns how many zombies have been queued so far, finished or not.
func (s *Simulation) QueueLen() int {
	return len(s.queue)
}

// Done reports whether every queued zombie has finished its sequence.
func (s *Simulation) Done() bool {
	s.skipFinished()
	return s.head >= len(s.queue)
}

// Current returns the zombie that moves next, or nil when done.
func (s *Simulation) Current() *models.Zombie {
	if s.Done() {
		return nil
	}
	return s.queue[s.head]
}

func (s *Simulation) skipFinished() {
	for s.head < len(s.queue) && s.queue[s.head].Done() {
		s.head++
	}
}

// Step moves the current zombie one cell and resolves infections on the cell
// it lands on. It returns false once no zombie has moves left.
func (s *Simulation) Step() (bool, error) {
	if s.aborted {
		return false, ErrSimulationAborted
	}
	if s.Done() {
		return false, nil
	}

	zombie := s.queue[s.head]
	pos := zombie.Advance(s.world)
	s.moveCount++
	if err := s.emit(models.ZombieMoved{ZombieID: zombie.ID, Position: pos}); err != nil {
		return false, err
	}

	creatures := s.entities.CreaturesAt(pos)
	for _, c := range creatures {
		c.OnZombieNearby(pos, s.world)
	}
	for _, c := range creatures {
		if !c.CanBeInfected() {
			continue
		}
		c.OnInfected()
		if err := s.entities.RemoveCreature(c.GetID()); err != nil {
			return false, err
		}
		newZombie := s.entities.CreateZombieAt(pos, s.moves)
		s.queue = append(s.queue, newZombie)
		s.infectionCount++
		err := s.emit(models.CreatureInfected{
			ZombieID:    zombie.ID,
			CreatureID:  c.GetID(),
			Position:    pos,
			NewZombieID: newZombie.ID,
		})
		if err != nil {
			return false, err
		}
	}

	return true, nil
}

// Run steps until every zombie is done and returns the final state. A
// simulation runs once; a second call returns ErrSimulationConsumed.
func (s *Simulation) Run() (*SimulationResult, error) {
	if s.aborted {
		return nil, ErrSimulationAborted
	}
	if s.consumed {
		return nil, ErrSimulationConsumed
	}
	s.consumed = true

	for {
		more, err := s.Step()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return s.Snapshot(), nil
}

// Snapshot captures the current positions. After Run it is the final result.
func (s *Simulation) Snapshot() *SimulationResult {
	zombies := s.entities.Zombies()
	zombiePositions := make([]models.Position, 0, len(zombies))
	for _, z := range zombies {
		zombiePositions = append(zombiePositions, z.Position)
	}

	living := s.entities.LivingCreatures()
	creaturePositions := make([]models.Position, 0, len(living))
	for _, c := range living {
		creaturePositions = append(creaturePositions, c.GetPosition())
	}

	return &SimulationResult{
		Zombies:    zombiePositions,
		Creatures:  creaturePositions,
		Moves:      s.moveCount,
		Infections: s.infectionCount,
	}
}

func (s *Simulation) emit(event models.Event) error {
	if s.handler == nil {
		return nil
	}
	if err := s.handler.HandleEvent(event); err != nil {
		s.aborted = true
		return fmt.Errorf("event handler failed on %s: %w", event.Kind(), err)
	}
	return nil
}
