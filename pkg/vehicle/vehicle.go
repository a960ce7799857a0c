package vehicle

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/golangdaddy/rcproam/pkg/track"
)

const (
	// TurnStep is the rotation applied once a turn has been held long enough
	TurnStep = 15.0
	// StartAngle faces the cars west, along the start straight
	StartAngle = 45.0
	// HeadingOffset maps the facing angle onto grid space travel direction.
	// Facing 0 is the sprite default which points south-east on the grid.
	HeadingOffset = 135.0

	SpeedDecelerate = 0.975
	DragAccelerate  = 0.9
	DragCoast       = 0.98
)

// Kind tells who is at the wheel
type Kind int

const (
	Human Kind = iota
	CPU
)

func (k Kind) String() string {
	if k == Human {
		return "human"
	}
	return "cpu"
}

// Command is the per tick driver input. Human and CPU controllers both
// produce one.
type Command struct {
	TurnLeft   bool
	TurnRight  bool
	Accelerate bool
	// RoadSpeedLimit lowers the on-road ceiling for this tick, 0 means none
	RoadSpeedLimit float64
}

// Vehicle is the simulated state of one car. It survives across races and
// is Reset at the start of each one.
type Vehicle struct {
	id    uuid.UUID
	name  string
	kind  Kind
	attrs Attributes

	position  track.Point
	angle     float64
	speed     float64
	velocityX float64
	velocityY float64

	turnCounter  int
	turningLeft  bool
	turningRight bool
	accelerating bool
	roadLimit    float64
}

// New creates a vehicle parked at the origin
func New(name string, kind Kind, attrs Attributes) (*Vehicle, error) {
	if err := attrs.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", name, err)
	}
	return &Vehicle{
		id:    uuid.New(),
		name:  name,
		kind:  kind,
		attrs: attrs,
		angle: StartAngle,
	}, nil
}

func (v *Vehicle) ID() uuid.UUID {
	return v.id
}

func (v *Vehicle) Name() string {
	return v.name
}

func (v *Vehicle) Kind() Kind {
	return v.kind
}

func (v *Vehicle) IsHuman() bool {
	return v.kind == Human
}

func (v *Vehicle) Attributes() Attributes {
	return v.attrs
}

// SetAttributes replaces the stats as a whole
func (v *Vehicle) SetAttributes(attrs Attributes) error {
	if err := attrs.Validate(); err != nil {
		return fmt.Errorf("vehicle %q: %w", v.name, err)
	}
	v.attrs = attrs
	v.turnCounter = 0
	return nil
}

// SetHandicap sets the handicap for the next speed ceiling computation
func (v *Vehicle) SetHandicap(h Handicap) {
	v.attrs.Handicap = h
}

func (v *Vehicle) Handicap() Handicap {
	return v.attrs.Handicap
}

// Reset parks the vehicle at start facing StartAngle with no motion
func (v *Vehicle) Reset(start track.Point) {
	v.position = start
	v.angle = StartAngle
	v.speed = 0
	v.velocityX, v.velocityY = 0, 0
	v.turnCounter = 0
	v.turningLeft, v.turningRight, v.accelerating = false, false, false
	v.roadLimit = 0
	v.attrs.Handicap = HandicapNone
}

func (v *Vehicle) Position() track.Point {
	return v.position
}

// SetPosition moves the vehicle without touching its motion
func (v *Vehicle) SetPosition(p track.Point) {
	v.position = p
}

// FacingDegrees is in [0, 360)
func (v *Vehicle) FacingDegrees() float64 {
	return v.angle
}

func (v *Vehicle) Speed() float64 {
	return v.speed
}

// Velocity returns the per tick displacement in columns and rows
func (v *Vehicle) Velocity() (float64, float64) {
	return v.velocityX, v.velocityY
}

func (v *Vehicle) IsAccelerating() bool {
	return v.accelerating
}

func (v *Vehicle) IsTurning() bool {
	return v.turningLeft || v.turningRight
}

func (v *Vehicle) IsTurningLeft() bool {
	return v.turningLeft
}

func (v *Vehicle) IsTurningRight() bool {
	return v.turningRight
}

// Apply latches the driver input for the next Tick. Asking for both
// directions at once cancels the turn.
func (v *Vehicle) Apply(cmd Command) {
	left, right := cmd.TurnLeft, cmd.TurnRight
	if left && right {
		left, right = false, false
	}
	if left != v.turningLeft || right != v.turningRight {
		v.turnCounter = 0
	}
	v.turningLeft = left
	v.turningRight = right
	v.accelerating = cmd.Accelerate
	v.roadLimit = cmd.RoadSpeedLimit
}

// SpeedCeiling is the maximum speed acceleration may reach in the
// vehicle's current cell
func (v *Vehicle) SpeedCeiling(g *track.Grid) float64 {
	ceiling := v.attrs.MaxOffRoadSpeed
	if g.IsRoad(v.position.Col, v.position.Row) {
		ceiling = v.attrs.MaxRoadSpeed
		if v.roadLimit > 0 && v.roadLimit < ceiling {
			ceiling = v.roadLimit
		}
	}
	return ceiling * v.attrs.Handicap.Multiplier()
}

// Tick advances the vehicle one fixed simulation step
func (v *Vehicle) Tick(g *track.Grid) {
	ceiling := v.SpeedCeiling(g)

	v.turn()

	switch {
	case v.accelerating && v.speed < ceiling:
		v.speed = math.Min(v.speed+v.attrs.AccelerateRate, ceiling)
	case v.accelerating:
		// above the ceiling, e.g. just left the road: bleed off gradually
		v.speed = math.Max(v.speed*SpeedDecelerate, ceiling)
	default:
		v.speed *= SpeedDecelerate
	}

	drag := DragCoast
	if v.accelerating {
		heading := (v.angle + HeadingOffset) * math.Pi / 180
		v.velocityX += v.speed * math.Cos(heading)
		v.velocityY += v.speed * math.Sin(heading)
		drag = DragAccelerate
	}
	v.velocityX *= drag
	v.velocityY *= drag

	next, colClamped, rowClamped := g.Clamp(track.Point{
		Col: v.position.Col + v.velocityX,
		Row: v.position.Row + v.velocityY,
	})
	if colClamped {
		v.velocityX = 0
	}
	if rowClamped {
		v.velocityY = 0
	}
	v.position = next
}

func (v *Vehicle) turn() {
	if !v.IsTurning() {
		v.turnCounter = 0
		return
	}
	v.turnCounter++
	if v.turnCounter < v.attrs.TurnStepCount {
		return
	}
	v.turnCounter = 0
	if v.turningRight {
		v.angle = NormalizeDegrees(v.angle + TurnStep)
	} else {
		v.angle = NormalizeDegrees(v.angle - TurnStep)
	}
}

// NormalizeDegrees wraps an angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
