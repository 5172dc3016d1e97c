package models

import "time"

// SimulationConfig is the validated input for one run.
type SimulationConfig struct {
	GridSize    int        `json:"grid_size"`
	ZombieStart Position   `json:"zombie_start"`
	Creatures   []Position `json:"creatures"`
	Moves       string     `json:"moves"`
}

// EventRecord is the stored form of an Event.
type EventRecord struct {
	Kind        EventKind `json:"kind"`
	ZombieID    int       `json:"zombie_id"`
	Position    Position  `json:"position"`
	CreatureID  *int      `json:"creature_id,omitempty"`
	NewZombieID *int      `json:"new_zombie_id,omitempty"`
}

// NewEventRecord converts an engine event into its stored form.
func NewEventRecord(event Event) EventRecord {
	switch e := event.(type) {
	case ZombieMoved:
		return EventRecord{Kind: e.Kind(), ZombieID: e.ZombieID, Position: e.Position}
	case CreatureInfected:
		creatureID, newZombieID := e.CreatureID, e.NewZombieID
		return EventRecord{
			Kind:        e.Kind(),
			ZombieID:    e.ZombieID,
			Position:    e.Position,
			CreatureID:  &creatureID,
			NewZombieID: &newZombieID,
		}
	}
	return EventRecord{Kind: event.Kind()}
}

// String renders the record as the engine's log line.
func (r EventRecord) String() string {
	switch r.Kind {
	case EventZombieMoved:
		return ZombieMoved{ZombieID: r.ZombieID, Position: r.Position}.String()
	case EventCreatureInfected:
		return CreatureInfected{ZombieID: r.ZombieID, Position: r.Position}.String()
	}
	return string(r.Kind)
}

// RunRecord is a finished simulation run as kept by persistence.
type RunRecord struct {
	ID        string           `json:"id"`
	Config    SimulationConfig `json:"config"`
	Zombies   []Position       `json:"zombies"`
	Survivors []Position       `json:"survivors"`
	Events    []EventRecord    `json:"events"`
	CreatedAt time.Time        `json:"created_at"`
}

// Infections counts the infection events of the run.
func (r *RunRecord) Infections() int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == EventCreatureInfected {
			n++
		}
	}
	return n
}
