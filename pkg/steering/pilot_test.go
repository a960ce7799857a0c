package steering

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/rcproam/pkg/track"
	"github.com/golangdaddy/rcproam/pkg/vehicle"
)

type car struct {
	pos    track.Point
	facing float64
}

func (c car) Position() track.Point  { return c.pos }
func (c car) FacingDegrees() float64 { return c.facing }

type target int

func (t target) CheckpointTarget() int { return int(t) }

// crossGrid is a 20x20 grid with checkpoints west, north, south and east of
// the centre. offRoad cells are marked off-road.
func crossGrid(t *testing.T, offRoad ...track.Point) *track.Grid {
	t.Helper()
	mask := make([][]bool, 20)
	for r := range mask {
		mask[r] = make([]bool, 20)
		for c := range mask[r] {
			mask[r][c] = true
		}
	}
	for _, p := range offRoad {
		mask[int(p.Row)][int(p.Col)] = false
	}
	g, err := track.NewGrid(mask, []track.Point{
		{Col: 2, Row: 10}, {Col: 10, Row: 2}, {Col: 10, Row: 18}, {Col: 18, Row: 10},
	})
	require.NoError(t, err)
	return g
}

func TestDesiredHeading(t *testing.T) {
	from := track.Point{Col: 10, Row: 10}
	tests := []struct {
		name string
		to   track.Point
		want float64
	}{
		{"west", track.Point{Col: 2, Row: 10}, 45},
		{"north", track.Point{Col: 10, Row: 2}, 135},
		{"east", track.Point{Col: 18, Row: 10}, 225},
		{"south", track.Point{Col: 10, Row: 18}, 315},
		{"north west", track.Point{Col: 2, Row: 2}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DesiredHeading(from, tt.to), 1e-9)
		})
	}
}

func TestAngleDifference(t *testing.T) {
	tests := []struct {
		facing, desired, want float64
	}{
		{45, 45, 0},
		{45, 135, 90},
		{45, 315, -90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, AngleDifference(tt.facing, tt.desired), 1e-9,
			"facing=%v desired=%v", tt.facing, tt.desired)
	}
}

func TestDecideTurnDirection(t *testing.T) {
	g := crossGrid(t)
	p := NewPilot(DefaultPersonality())
	full := p.Personality().Attributes.MaxRoadSpeed
	turning := p.Personality().TurningSpeed
	at := track.Point{Col: 10, Row: 10}

	tests := []struct {
		name   string
		facing float64
		target target
		want   vehicle.Command
	}{
		{"on course", 45, 0, vehicle.Command{Accelerate: true, RoadSpeedLimit: full}},
		{"target to the right", 45, 1, vehicle.Command{Accelerate: true, TurnRight: true, RoadSpeedLimit: turning}},
		{"target to the left", 45, 2, vehicle.Command{Accelerate: true, TurnLeft: true, RoadSpeedLimit: turning}},
		{"east, short arc right", 200, 3, vehicle.Command{Accelerate: true, TurnRight: true, RoadSpeedLimit: turning}},
		{"east, short arc left", 250, 3, vehicle.Command{Accelerate: true, TurnLeft: true, RoadSpeedLimit: turning}},
		{"right across zero", 350, 0, vehicle.Command{Accelerate: true, TurnRight: true, RoadSpeedLimit: turning}},
		{"overshot west", 100, 0, vehicle.Command{Accelerate: true, TurnLeft: true, RoadSpeedLimit: turning}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Decide(car{pos: at, facing: tt.facing}, g, tt.target)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.TurnLeft && got.TurnRight)
		})
	}
}

func TestDecideTolerance(t *testing.T) {
	pers := DefaultPersonality()
	pers.AccurateTolerance = 5
	pers.RelaxedTolerance = 10
	p := NewPilot(pers)

	// 7 degrees off the westward heading to checkpoint 0
	facing := 52.0
	far := track.Point{Col: 17, Row: 10}
	near := track.Point{Col: 5, Row: 10}

	g := crossGrid(t)
	assert.False(t, p.Decide(car{pos: far, facing: facing}, g, target(0)).TurnLeft,
		"far from the checkpoint the relaxed tolerance applies")
	assert.True(t, p.Decide(car{pos: near, facing: facing}, g, target(0)).TurnLeft,
		"close to the checkpoint the accurate tolerance applies")

	offRoad := crossGrid(t, far)
	assert.True(t, p.Decide(car{pos: far, facing: facing}, offRoad, target(0)).TurnLeft,
		"off the road the accurate tolerance applies")
}

func TestAssignPersonality(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		pers := AssignPersonality(rng)
		a := pers.Attributes

		require.NoError(t, a.Validate())
		require.Contains(t, TurnStepCountOptions, a.TurnStepCount)
		seen[a.TurnStepCount] = true

		require.GreaterOrEqual(t, a.MaxRoadSpeed, vehicle.DefaultMaxRoadSpeed*0.75)
		require.LessOrEqual(t, a.MaxRoadSpeed, vehicle.DefaultMaxRoadSpeed*1.25)
		require.GreaterOrEqual(t, a.AccelerateRate, vehicle.DefaultAccelerateRate*0.75)
		require.LessOrEqual(t, a.AccelerateRate, vehicle.DefaultAccelerateRate*1.25)
		require.Equal(t, vehicle.DefaultMaxOffRoadSpeed, a.MaxOffRoadSpeed)
		require.InDelta(t, a.MaxRoadSpeed*TurningSpeedRatio, pers.TurningSpeed, 1e-15)

		require.GreaterOrEqual(t, pers.AccurateTolerance, AccurateToleranceRange[0])
		require.LessOrEqual(t, pers.AccurateTolerance, AccurateToleranceRange[1])
		require.GreaterOrEqual(t, pers.RelaxedTolerance, RelaxedToleranceRange[0])
		require.LessOrEqual(t, pers.RelaxedTolerance, RelaxedToleranceRange[1])
	}
	assert.Len(t, seen, len(TurnStepCountOptions))
}

func TestAssignPersonalityDeterministic(t *testing.T) {
	a := AssignPersonality(rand.New(rand.NewPCG(42, 42)))
	b := AssignPersonality(rand.New(rand.NewPCG(42, 42)))
	assert.Equal(t, a, b)
}
