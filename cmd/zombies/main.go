// Command zombies runs a zombie outbreak simulation from the command line.
//
//	zombies                                         run the built-in example
//	zombies -interactive                            play with w/a/s/d
//	zombies -size 4 -zombie 3,1 -creatures "0,1 1,2 1,1" -moves RDRU
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"zombie-outbreak/server/config"
	"zombie-outbreak/server/models"
	"zombie-outbreak/server/parser"
	"zombie-outbreak/server/persistence"
	"zombie-outbreak/server/render"
	"zombie-outbreak/server/services"
	"zombie-outbreak/server/tui"
)

type options struct {
	size        int
	zombie      string
	creatures   string
	moves       string
	verbose     bool
	interactive bool
	save        bool
	history     bool
	configPath  string
}

var errMissingArgs = errors.New("-size, -zombie and -moves must be given together")

func main() {
	opts := parseFlags()

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func parseFlags() options {
	var opts options
	flag.IntVar(&opts.size, "size", 0, "grid size N for an NxN world")
	flag.StringVar(&opts.zombie, "zombie", "", `initial zombie position, e.g. "3,1" or "(3,1)"`)
	flag.StringVar(&opts.creatures, "creatures", "", `creature positions, e.g. "0,1 1,2 1,1"`)
	flag.StringVar(&opts.moves, "moves", "", "movement sequence of U, D, L and R, e.g. RDRU")
	flag.BoolVar(&opts.verbose, "verbose", false, "print every move and infection")
	flag.BoolVar(&opts.interactive, "interactive", false, "play in the terminal with w/a/s/d")
	flag.BoolVar(&opts.save, "save", false, "store the run in the configured store")
	flag.BoolVar(&opts.history, "history", false, "list stored runs and exit")
	flag.StringVar(&opts.configPath, "config", "", "path to a JSON config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "\nMovement commands: U=Up, D=Down, L=Left, R=Right")
		fmt.Fprintln(flag.CommandLine.Output(), "Coordinates are zero-indexed, (0,0) is top-left.")
	}
	flag.Parse()
	return opts
}

func run(opts options, in io.Reader, out io.Writer) error {
	argsGiven := opts.size != 0 || opts.zombie != "" || opts.moves != ""
	argsComplete := opts.size != 0 && opts.zombie != "" && opts.moves != ""

	switch {
	case opts.history:
		return withStore(opts.configPath, func(db persistence.Storage) error {
			return printHistory(out, services.NewRunService(db))
		})
	case opts.interactive:
		return runInteractive(opts, in, out)
	case argsGiven && !argsComplete:
		return errMissingArgs
	}

	cfg := exampleConfig()
	if argsComplete {
		var err error
		cfg, err = parser.ParseConfig(opts.size, opts.zombie, opts.creatures, opts.moves)
		if err != nil {
			return err
		}
	}

	execute := func(rs *services.RunService) error {
		if argsComplete {
			return runWithArgs(out, rs, cfg, opts.verbose)
		}
		return runExample(out, rs, cfg)
	}
	if opts.save {
		return withStore(opts.configPath, func(db persistence.Storage) error {
			return execute(services.NewRunService(db))
		})
	}
	return execute(services.NewRunService(nil))
}

func withStore(configPath string, fn func(persistence.Storage) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, err := persistence.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func exampleConfig() *models.SimulationConfig {
	return &models.SimulationConfig{
		GridSize:    4,
		ZombieStart: models.Position{X: 3, Y: 1},
		Creatures:   []models.Position{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 1}},
		Moves:       "RDRU",
	}
}

func runExample(out io.Writer, rs *services.RunService, cfg *models.SimulationConfig) error {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Zombie Outbreak Simulation")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Input:")
	fmt.Fprintf(out, "  Grid size: %d\n", cfg.GridSize)
	fmt.Fprintf(out, "  Zombie start: %s\n", cfg.ZombieStart)
	fmt.Fprintf(out, "  Creatures: %s\n", formatPositions(cfg.Creatures))
	fmt.Fprintf(out, "  Moves: %s\n", cfg.Moves)
	fmt.Fprintln(out)
	fmt.Fprintln(out, thin)
	fmt.Fprintln(out, "Simulation Log:")
	fmt.Fprintln(out, thin)

	run, result, err := rs.Execute(cfg, services.NewEventLogger(out))
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, thin)
	fmt.Fprintln(out, "Final Result:")
	fmt.Fprintln(out, thin)
	fmt.Fprintln(out, render.DrawResult(cfg.GridSize, result))
	fmt.Fprintln(out)
	fmt.Fprintln(out, thin)
	fmt.Fprintln(out, result.FormatOutput())
	fmt.Fprintf(out, "\nrun %s\n", run.ID)
	return nil
}

func runWithArgs(out io.Writer, rs *services.RunService, cfg *models.SimulationConfig, verbose bool) error {
	var handler models.EventHandler
	if verbose {
		handler = services.NewEventLogger(out)
	}

	_, result, err := rs.Execute(cfg, handler)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, result.FormatOutput())
	return nil
}

func printHistory(out io.Writer, rs *services.RunService) error {
	runs, err := rs.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored runs.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  size=%d moves=%s zombies=%d survivors=%d\n",
			run.ID, run.CreatedAt.Format(time.RFC3339), run.Config.GridSize, run.Config.Moves,
			len(run.Zombies), len(run.Survivors))
	}
	return nil
}

// promptGame asks for the game setup on in when the flags do not give it
func promptGame(opts options, in io.Reader, out io.Writer) (*services.GameState, error) {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	size := opts.size
	if size == 0 {
		var err error
		if size, err = parser.ParseSize(ask("Grid size (N for NxN): ")); err != nil {
			return nil, err
		}
	}
	zombieText := opts.zombie
	if zombieText == "" {
		zombieText = ask("Zombie starting position (x,y): ")
	}
	creatureText := opts.creatures
	if creatureText == "" && opts.size == 0 {
		creatureText = ask("Creature positions (e.g. '0,1 1,2 1,1' or empty): ")
	}

	world, err := models.NewWorld(size)
	if err != nil {
		return nil, err
	}
	zombie, err := parser.ParsePosition(zombieText)
	if err != nil {
		return nil, err
	}
	creatures, err := parser.ParsePositions(creatureText)
	if err != nil {
		return nil, err
	}
	return services.NewGameState(world, zombie, creatures)
}

func runInteractive(opts options, in io.Reader, out io.Writer) error {
	game, err := promptGame(opts, in, out)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	tui.NewApp(screen, game).Run()
	screen.Fini()

	rule := strings.Repeat("=", 45)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "  Game Over!")
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
	fmt.Fprint(out, game.Summary())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Thanks for playing!")
	return nil
}

func formatPositions(positions []models.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
