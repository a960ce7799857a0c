package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/golangdaddy/rcproam/pkg/race"
)

// TitleScreen announces the next race and waits for the player
type TitleScreen struct {
	startTime time.Time
	face      text.Face
	lines     []string
	onStart   func() error
}

// NewTitleScreen shows the track and grid of the coming race
func NewTitleScreen(c *race.Coordinator, onStart func() error) *TitleScreen {
	t := c.Track()
	lines := []string{
		fmt.Sprintf("%s - %d laps", t.Name, c.RequiredLaps()),
		"",
	}
	for i, e := range c.Entries() {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, e.Name(), driver(e)))
	}
	return &TitleScreen{
		startTime: time.Now(),
		face:      text.NewGoXFace(bitmapfont.Face),
		lines:     lines,
		onStart:   onStart,
	}
}

func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return ts.onStart()
	}
	return nil
}

func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2

	// pulsing title
	title := "RC PRO-AM"
	scale := 6.0 * (1 + 0.05*math.Sin(elapsed*2))
	ts.drawCentered(screen, title, centerX, float64(height)/5, scale, color.RGBA{255, 200, 50, 255})

	y := float64(height)/5 + 100
	for _, line := range ts.lines {
		ts.drawCentered(screen, line, centerX, y, 1.5, color.RGBA{180, 180, 200, 255})
		y += 24
	}

	if int(elapsed*2)%2 == 0 {
		ts.drawCentered(screen, "Press ENTER or SPACE to race", centerX, float64(height)-100, 1.5,
			color.RGBA{150, 200, 255, 255})
	}
}

func (ts *TitleScreen) drawCentered(screen *ebiten.Image, s string, centerX, y, scale float64, clr color.Color) {
	w := text.Advance(s, ts.face) * scale
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(centerX-w/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, ts.face, op)
}

// driver names who is at the wheel of e
func driver(e *race.Entry) string {
	switch e.Controller().(type) {
	case *race.InputController:
		return "keyboard"
	case *race.PilotController:
		if e.IsHuman() {
			return "autopilot"
		}
		return "cpu"
	default:
		return e.Vehicle.Kind().String()
	}
}
