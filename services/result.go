package services

import (
	"strings"

	"zombie-outbreak/server/models"
)

// SimulationResult is the state after a run: zombies in creation order and
// surviving creatures in input order.
type SimulationResult struct {
	Zombies    []models.Position `json:"zombies"`
	Creatures  []models.Position `json:"creatures"`
	Moves      int               `json:"moves"`
	Infections int               `json:"infections"`
}

// EventCount is the number of events the run emitted.
func (r *SimulationResult) EventCount() int {
	return r.Moves + r.Infections
}

// FormatOutput renders the two-line positions report.
func (r *SimulationResult) FormatOutput() string {
	return "zombies' positions: " + joinPositions(r.Zombies) + "\n" +
		"creatures' positions: " + joinPositions(r.Creatures)
}

func joinPositions(positions []models.Position) string {
	if len(positions) == 0 {
		return "none"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
