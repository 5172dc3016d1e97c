// Package tui plays the free-play game on a tcell screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"zombie-outbreak/server/render"
	"zombie-outbreak/server/services"
)

const recentMoves = 20

var (
	textStyle    = tcell.StyleDefault
	titleStyle   = tcell.StyleDefault.Bold(true)
	messageStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bannerStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

type line struct {
	text  string
	style tcell.Style
}

// App draws a GameState and feeds it key presses. The caller owns the
// screen's Init and Fini.
type App struct {
	screen tcell.Screen
	game   *services.GameState
}

// NewApp binds a game to a screen
func NewApp(screen tcell.Screen, game *services.GameState) *App {
	return &App{screen: screen, game: game}
}

// Game returns the game being played
func (a *App) Game() *services.GameState {
	return a.game
}

// HandleRune applies a key press. It returns false when the player quits.
func (a *App) HandleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		a.game.Reset()
		a.game.SetMessage("Game reset!")
	default:
		a.game.Move(string(r))
	}
	return true
}

// HandleEvent dispatches a tcell event. It returns false when the player quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return a.HandleRune(ev.Rune())
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Run draws and handles events until the player quits or the screen is
// finalized.
func (a *App) Run() {
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.HandleEvent(ev) {
			return
		}
	}
}

// Draw renders the whole game onto the screen
func (a *App) Draw() {
	a.screen.Clear()
	for y, l := range a.lines() {
		x := 0
		for _, r := range l.text {
			a.screen.SetContent(x, y, r, nil, l.style)
			x++
		}
	}
	a.screen.Show()
}

func (a *App) lines() []line {
	g := a.game
	rule := strings.Repeat("=", 45)

	out := []line{
		{rule, titleStyle},
		{"  ZOMBIE OUTBREAK - Interactive Mode", titleStyle},
		{rule, titleStyle},
		{"", textStyle},
		{"  Controls: W=Up  A=Left  S=Down  D=Right", textStyle},
		{"            Q=Quit  R=Reset", textStyle},
		{"", textStyle},
	}
	for _, s := range strings.Split(render.DrawMap(g.World().Size(), g.Zombies(), g.Creatures(), ""), "\n") {
		out = append(out, line{s, textStyle})
	}
	out = append(out,
		line{"", textStyle},
		line{fmt.Sprintf("  Zombies: %d  |  Creatures: %d", len(g.Zombies()), len(g.Creatures())), textStyle},
		line{"  Moves: " + g.RecentMoves(recentMoves), textStyle},
	)
	if msg := g.Message(); msg != "" {
		out = append(out, line{"", textStyle}, line{"  >> " + msg, messageStyle})
	}
	if g.AllInfected() {
		out = append(out, line{"", textStyle}, line{"  *** ALL CREATURES INFECTED! ***", bannerStyle})
	}
	return out
}
