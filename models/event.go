package models

import "fmt"

// EventKind identifies the variant of an Event.
type EventKind string

const (
	EventZombieMoved      EventKind = "zombie_moved"
	EventCreatureInfected EventKind = "creature_infected"
)

// Event is an observable state change emitted by the simulation.
type Event interface {
	Kind() EventKind
	String() string
}

// ZombieMoved is emitted once per step taken by any zombie.
type ZombieMoved struct {
	ZombieID int
	Position Position
}

func (e ZombieMoved) Kind() EventKind { return EventZombieMoved }

func (e ZombieMoved) String() string {
	return fmt.Sprintf("zombie %d moved to %s", e.ZombieID, e.Position)
}

// CreatureInfected follows the ZombieMoved of the step that caused it.
type CreatureInfected struct {
	ZombieID    int
	CreatureID  int
	Position    Position
	NewZombieID int
}

func (e CreatureInfected) Kind() EventKind { return EventCreatureInfected }

func (e CreatureInfected) String() string {
	return fmt.Sprintf("zombie %d infected creature at %s", e.ZombieID, e.Position)
}

// EventHandler receives events synchronously, in emission order. A returned
// error aborts the run.
type EventHandler interface {
	HandleEvent(event Event) error
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(event Event) error

func (f EventHandlerFunc) HandleEvent(event Event) error {
	return f(event)
}
