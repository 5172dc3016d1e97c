package services

import (
	"fmt"
	"strconv"

	"zombie-outbreak/server/models"
)

// trackedCreature pairs a creature with its infection state.
type trackedCreature struct {
	creature models.Creature
	infected bool
}

// EntityTracker owns every zombie and creature of one simulation and indexes
// the creatures that can still be reached by position.
type EntityTracker struct {
	zombies   []*models.Zombie
	creatures []*trackedCreature // input order
	byID      map[int]*trackedCreature
	cells     map[models.Position][]*trackedCreature
}

// NewEntityTracker creates an empty tracker.
func NewEntityTracker() *EntityTracker {
	return &EntityTracker{
		byID:  make(map[int]*trackedCreature),
		cells: make(map[models.Position][]*trackedCreature),
	}
}

// AddCreature registers a creature. Ids must be unique.
func (et *EntityTracker) AddCreature(c models.Creature) error {
	if _, exists := et.byID[c.GetID()]; exists {
		return &models.ValidationError{
			Field:  "creature id",
			Value:  strconv.Itoa(c.GetID()),
			Reason: "duplicate id",
		}
	}
	tc := &trackedCreature{creature: c}
	et.creatures = append(et.creatures, tc)
	et.byID[c.GetID()] = tc
	pos := c.GetPosition()
	et.cells[pos] = append(et.cells[pos], tc)
	return nil
}

// CreaturesAt returns the creatures still tracked on a cell, in input order.
// The returned slice is a copy and safe to hold while the tracker changes.
func (et *EntityTracker) CreaturesAt(pos models.Position) []models.Creature {
	cell := et.cells[pos]
	if len(cell) == 0 {
		return nil
	}
	out := make([]models.Creature, 0, len(cell))
	for _, tc := range cell {
		out = append(out, tc.creature)
	}
	return out
}

// RemoveCreature marks a creature infected and drops it from its cell so no
// later step can reach it again.
func (et *EntityTracker) RemoveCreature(id int) error {
	tc, exists := et.byID[id]
	if !exists {
		return fmt.Errorf("creature %d not tracked", id)
	}
	if tc.infected {
		return fmt.Errorf("creature %d already infected", id)
	}
	tc.infected = true

	pos := tc.creature.GetPosition()
	cell := et.cells[pos]
	for i, other := range cell {
		if other == tc {
			cell = append(cell[:i], cell[i+1:]...)
			break
		}
	}
	if len(cell) == 0 {
		delete(et.cells, pos)
	} else {
		et.cells[pos] = cell
	}
	return nil
}

// CreateZombieAt creates a zombie with the next id in creation order.
func (et *EntityTracker) CreateZombieAt(pos models.Position, moves []models.Direction) *models.Zombie {
	z := models.NewZombie(len(et.zombies), pos, moves)
	et.zombies = append(et.zombies, z)
	return z
}

// Zombies returns every zombie in creation order.
func (et *EntityTracker) Zombies() []*models.Zombie {
	return et.zombies
}

// LivingCreatures returns the never-infected creatures in input order.
func (et *EntityTracker) LivingCreatures() []models.Creature {
	out := make([]models.Creature, 0, len(et.creatures))
	for _, tc := range et.creatures {
		if !tc.infected {
			out = append(out, tc.creature)
		}
	}
	return out
}

// ZombieCount returns the number of zombies created so far.
func (et *EntityTracker) ZombieCount() int {
	return len(et.zombies)
}
