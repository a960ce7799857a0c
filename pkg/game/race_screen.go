package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/golangdaddy/rcproam/pkg/race"
	"github.com/golangdaddy/rcproam/pkg/track"
	"github.com/golangdaddy/rcproam/pkg/vehicle"
)

const (
	panelWidth = 260
	margin     = 10
	carLength  = 12
	carWidth   = 7
)

var (
	roadColor       = color.RGBA{90, 90, 96, 255}
	offRoadColor    = color.RGBA{150, 120, 70, 255}
	checkpointColor = color.RGBA{240, 240, 240, 255}
	finishColor     = color.RGBA{255, 215, 0, 255}
	carColors       = []color.RGBA{
		{220, 20, 20, 255},
		{30, 120, 230, 255},
		{40, 190, 60, 255},
		{240, 200, 30, 255},
		{200, 60, 200, 255},
		{250, 140, 20, 255},
	}
)

// RaceScreen runs one race and draws a top down view of it with the HUD
type RaceScreen struct {
	log       *zap.Logger
	race      *race.Coordinator
	onRaceEnd func() error

	face       text.Face
	trackImage *ebiten.Image
	carImages  []*ebiten.Image
	pixel      *ebiten.Image // 1x1 white, scaled and tinted for flat rectangles
	cell       float64 // pixels per grid cell
	originX    float64
	originY    float64
	flash      int // ticks left to highlight a collision of the human
}

// NewRaceScreen creates the screen for c. onRaceEnd is called once the
// race completed and the player pressed enter.
func NewRaceScreen(c *race.Coordinator, logger *zap.Logger, onRaceEnd func() error) *RaceScreen {
	rs := &RaceScreen{
		log:       logger,
		race:      c,
		onRaceEnd: onRaceEnd,
		face:      text.NewGoXFace(bitmapfont.Face),
	}

	g := c.Track().Grid
	areaW := float64(ScreenWidth - panelWidth - 2*margin)
	areaH := float64(ScreenHeight - 2*margin)
	rs.cell = math.Min(areaW/float64(g.Columns()), areaH/float64(g.Rows()))
	rs.originX = margin + (areaW-rs.cell*float64(g.Columns()))/2
	rs.originY = margin + (areaH-rs.cell*float64(g.Rows()))/2

	rs.trackImage = newTrackImage(g)
	rs.pixel = ebiten.NewImage(1, 1)
	rs.pixel.Fill(color.White)
	for i := range c.Entries() {
		img := ebiten.NewImage(carLength, carWidth)
		img.Fill(carColors[i%len(carColors)])
		// nose
		nose := ebiten.NewImage(3, carWidth)
		nose.Fill(color.RGBA{250, 250, 250, 255})
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(carLength-3, 0)
		img.DrawImage(nose, op)
		rs.carImages = append(rs.carImages, img)
	}
	return rs
}

// newTrackImage renders the road mask at one pixel per cell
func newTrackImage(g *track.Grid) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, g.Columns(), g.Rows()))
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			c := offRoadColor
			if g.IsRoad(float64(col), float64(row)) {
				c = roadColor
			}
			img.SetRGBA(col, row, c)
		}
	}
	return ebiten.NewImageFromImage(img)
}

// Update advances the race by one tick
func (rs *RaceScreen) Update() error {
	if rs.race.HasRaceCompleted() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			return rs.onRaceEnd()
		}
		return nil
	}

	ev, err := rs.race.Update(race.Tick)
	if err != nil {
		return err
	}
	if rs.flash > 0 {
		rs.flash--
	}
	for _, col := range ev.Collisions {
		if col.Mover.IsHuman() || col.Other.IsHuman() {
			rs.flash = race.TicksPerSecond / 4
		}
	}
	for _, lap := range ev.Laps {
		if lap.Entry.IsHuman() {
			rs.log.Info("lap", zap.Int("lap", lap.Lap), zap.Duration("time", lap.Time))
		}
	}
	return nil
}

// Draw renders the race screen
func (rs *RaceScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	rs.drawTrack(screen)
	rs.drawCheckpoints(screen)
	rs.drawCars(screen)
	rs.drawUI(screen)
}

func (rs *RaceScreen) toScreen(p track.Point) (float64, float64) {
	return rs.originX + p.Col*rs.cell, rs.originY + p.Row*rs.cell
}

func (rs *RaceScreen) drawTrack(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rs.cell, rs.cell)
	op.GeoM.Translate(rs.originX, rs.originY)
	screen.DrawImage(rs.trackImage, op)
}

func (rs *RaceScreen) drawCheckpoints(screen *ebiten.Image) {
	g := rs.race.Track().Grid
	for i, cp := range g.Checkpoints() {
		clr := checkpointColor
		if g.IsFinalCheckpoint(i) {
			clr = finishColor
		}
		x, y := rs.toScreen(cp)
		rs.fillRect(screen, x-2, y-2, 4, 4, clr)
	}
}

// drawCars draws every car rotated to its grid space travel direction
func (rs *RaceScreen) drawCars(screen *ebiten.Image) {
	for i, e := range rs.race.Entries() {
		v := e.Vehicle
		x, y := rs.toScreen(v.Position())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-carLength/2, -carWidth/2)
		op.GeoM.Rotate((v.FacingDegrees() + vehicle.HeadingOffset) * math.Pi / 180)
		op.GeoM.Translate(x, y)
		if e.IsHuman() && rs.flash > 0 {
			op.ColorScale.Scale(1, 0.4, 0.4, 1)
		}
		screen.DrawImage(rs.carImages[i], op)
	}
}

// drawUI renders the side panel: countdown, laps, leaderboard and speed
func (rs *RaceScreen) drawUI(screen *ebiten.Image) {
	x := float64(ScreenWidth - panelWidth)
	rs.fillRect(screen, x, margin, panelWidth-margin, ScreenHeight-2*margin, color.RGBA{20, 20, 30, 200})

	white := color.RGBA{230, 230, 230, 255}
	grey := color.RGBA{160, 160, 170, 255}
	t := rs.race.Track()

	y := 24.0
	rs.drawText(screen, t.Name, x+10, y, 1.5, white)
	y += 28

	if rs.race.State() == race.Starting {
		secs := int(math.Ceil(rs.race.Countdown().Seconds()))
		rs.drawText(screen, fmt.Sprintf("%d", secs), x+10, y, 3, color.RGBA{255, 255, 100, 255})
	}
	y += 48

	human, err := rs.race.Human()
	if err == nil {
		rs.drawText(screen, fmt.Sprintf("Laps %d/%d", human.Tracker.Laps(), rs.race.RequiredLaps()), x+10, y, 1.5, white)
		y += 24
		for _, line := range human.Tracker.LapDescription(rs.race.RequiredLaps()) {
			rs.drawText(screen, line, x+10, y, 1, grey)
			y += 16
		}
	}
	y += 16

	rs.drawText(screen, "Standings", x+10, y, 1.5, white)
	y += 24
	board, entries := rs.race.Leaderboard(), rs.race.Entries()
	for i, line := range rs.race.LeaderboardLines() {
		idx := lo.IndexOf(entries, board[i])
		rs.drawText(screen, line, x+10, y, 1, carColors[idx%len(carColors)])
		y += 16
	}

	if err == nil {
		v := human.Vehicle
		top := v.Attributes().MaxRoadSpeed * vehicle.HandicapBoost
		rs.drawSpeedGauge(screen, x+10, ScreenHeight-60, panelWidth-40, 15, v.Speed()/top)
	}

	if rs.race.HasRaceCompleted() {
		msg := "Not qualified - press enter to retry"
		if rs.race.HasHumanQualified() {
			msg = "Qualified! Press enter for the next track"
		}
		w := text.Advance(msg, rs.face) * 2
		rs.drawText(screen, msg, rs.originX+(rs.cell*float64(t.Grid.Columns())-w)/2, ScreenHeight/2, 2, finishColor)
	}
}

func (rs *RaceScreen) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, rs.face, op)
}

// fillRect draws a w x h rectangle of clr with its top left corner at x, y
func (rs *RaceScreen) fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(rs.pixel, op)
}

// drawSpeedGauge draws a horizontal bar filled to ratio
func (rs *RaceScreen) drawSpeedGauge(screen *ebiten.Image, x, y, width, height float64, ratio float64) {
	ratio = math.Max(0, math.Min(ratio, 1))
	rs.fillRect(screen, x, y, width, height, color.RGBA{40, 40, 40, 255})

	filledWidth := math.Floor(width * ratio)
	if filledWidth == 0 {
		return
	}
	// green to yellow, then yellow to red
	var barColor color.RGBA
	if ratio < 0.5 {
		r := ratio / 0.5
		barColor = color.RGBA{uint8(100 + r*155), 255, 100, 255}
	} else {
		r := (ratio - 0.5) / 0.5
		barColor = color.RGBA{255, uint8(255 - r*155), uint8(100 - r*100), 255}
	}
	rs.fillRect(screen, x, y, filledWidth, height, barColor)
}
