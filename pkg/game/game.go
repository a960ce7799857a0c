package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/golangdaddy/rcproam/pkg/race"
)

const (
	ScreenWidth  = 1024
	ScreenHeight = 600
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Game implements the ebiten.Game interface and hosts the races of a session
type Game struct {
	log           *zap.Logger
	session       *race.Session
	currentScreen Screen
}

// NewGame creates a game showing the title of the session's first race
func NewGame(session *race.Session, logger *zap.Logger) (*Game, error) {
	g := &Game{
		log:     logger,
		session: session,
	}
	if err := g.startRace(); err != nil {
		return nil, err
	}
	return g, nil
}

// Update handles game logic updates, called at race.TicksPerSecond
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth, ScreenHeight
}

func (g *Game) startRace() error {
	c, err := g.session.NewRace()
	if err != nil {
		return err
	}
	g.currentScreen = NewTitleScreen(c, func() error {
		g.currentScreen = NewRaceScreen(c, g.log, g.onRaceEnd)
		return nil
	})
	return nil
}

// onRaceEnd moves on to the next track when the human qualified and
// restarts the same one otherwise
func (g *Game) onRaceEnd() error {
	g.session.Advance()
	return g.startRace()
}
