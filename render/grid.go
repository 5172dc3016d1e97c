// Package render draws simulation state as an ASCII map.
package render

import (
	"fmt"
	"strings"

	"zombie-outbreak/server/models"
	"zombie-outbreak/server/services"
)

const colWidth = 3

// MaxMapSize is the largest grid the server will draw.
const MaxMapSize = 256

// Legend explains the map symbols.
const Legend = "  Legend: Z=Zombie  C=Creature  ·=Empty"

// DrawMap draws a size×size map. Stacked zombies show as Z2, Z3, ...
func DrawMap(size int, zombies, creatures []models.Position, title string) string {
	zombieCounts := make(map[models.Position]int, len(zombies))
	for _, p := range zombies {
		zombieCounts[p]++
	}
	creatureSet := make(map[models.Position]bool, len(creatures))
	for _, p := range creatures {
		creatureSet[p] = true
	}

	var lines []string
	if title != "" {
		lines = append(lines, title)
	}

	var header strings.Builder
	header.WriteString("   ")
	for x := 0; x < size; x++ {
		header.WriteString(center(fmt.Sprint(x), colWidth))
	}
	lines = append(lines, header.String())
	lines = append(lines, "  ┌"+strings.Repeat("───", size)+"┐")

	for y := 0; y < size; y++ {
		cells := make([]string, size)
		for x := 0; x < size; x++ {
			p := models.Position{X: x, Y: y}
			cells[x] = cell(zombieCounts[p], creatureSet[p])
		}
		lines = append(lines, fmt.Sprintf("%2d │", y)+strings.Join(cells, " ")+" │")
	}

	lines = append(lines, "  └"+strings.Repeat("───", size)+"┘")
	lines = append(lines, "", Legend)
	return strings.Join(lines, "\n")
}

// DrawResult draws the final state of a run.
func DrawResult(size int, result *services.SimulationResult) string {
	return DrawMap(size, result.Zombies, result.Creatures, "Final State:")
}

func cell(zombies int, creature bool) string {
	switch {
	case zombies > 0 && creature:
		return "ZC"
	case zombies > 9:
		return "Z+"
	case zombies > 1:
		return fmt.Sprintf("Z%d", zombies)
	case zombies == 1:
		return " Z"
	case creature:
		return " C"
	}
	return " ·"
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
