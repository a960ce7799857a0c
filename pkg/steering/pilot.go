package steering

import (
	"math"

	"github.com/golangdaddy/rcproam/pkg/progress"
	"github.com/golangdaddy/rcproam/pkg/track"
	"github.com/golangdaddy/rcproam/pkg/vehicle"
)

// Car is the view of a vehicle the pilot steers
type Car interface {
	Position() track.Point
	FacingDegrees() float64
}

// Target exposes the checkpoint a car is heading for
type Target interface {
	CheckpointTarget() int
}

// Pilot steers a CPU car toward its target checkpoint
type Pilot struct {
	personality Personality
}

func NewPilot(p Personality) *Pilot {
	return &Pilot{personality: p}
}

func (p *Pilot) Personality() Personality {
	return p.personality
}

// SetPersonality replaces the driving style, used when a new race starts
func (p *Pilot) SetPersonality(pers Personality) {
	p.personality = pers
}

// Decide always keeps the throttle open. It turns along the shorter arc
// when the heading error exceeds the current tolerance and then caps the
// road speed at the turning ceiling.
func (p *Pilot) Decide(car Car, g *track.Grid, target Target) vehicle.Command {
	pos := car.Position()
	idx := target.CheckpointTarget()

	desired := DesiredHeading(pos, g.Checkpoint(idx))
	diff := AngleDifference(car.FacingDegrees(), desired)

	tolerance := p.personality.RelaxedTolerance
	if progress.CheckpointFraction(pos, g, idx) > AccurateProgress || !g.IsRoad(pos.Col, pos.Row) {
		tolerance = p.personality.AccurateTolerance
	}

	cmd := vehicle.Command{
		Accelerate:     true,
		RoadSpeedLimit: p.personality.Attributes.MaxRoadSpeed,
	}
	if math.Abs(diff) > tolerance {
		cmd.TurnRight = diff > 0
		cmd.TurnLeft = diff < 0
		cmd.RoadSpeedLimit = p.personality.TurningSpeed
	}
	return cmd
}

// DesiredHeading is the facing angle that drives from -> to in a straight line
func DesiredHeading(from, to track.Point) float64 {
	deg := math.Atan2(to.Row-from.Row, to.Col-from.Col) * 180 / math.Pi
	return vehicle.NormalizeDegrees(deg - vehicle.HeadingOffset)
}

// AngleDifference is the signed rotation in (-180, 180] taking facing to
// desired. Positive means turn right.
func AngleDifference(facing, desired float64) float64 {
	d := vehicle.NormalizeDegrees(desired - facing)
	if d > 180 {
		d -= 360
	}
	return d
}
