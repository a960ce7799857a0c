package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/rcproam/pkg/track"
)

func uniformGrid(t *testing.T, cols, rows int, road bool) *track.Grid {
	t.Helper()
	mask := make([][]bool, rows)
	for r := range mask {
		mask[r] = make([]bool, cols)
		for c := range mask[r] {
			mask[r][c] = road
		}
	}
	g, err := track.NewGrid(mask, []track.Point{{Col: 1, Row: 1}, {Col: float64(cols) - 1, Row: 1}})
	require.NoError(t, err)
	return g
}

func newTestVehicle(t *testing.T, kind Kind) *Vehicle {
	t.Helper()
	v, err := New("test", kind, DefaultAttributes())
	require.NoError(t, err)
	return v
}

func TestAttributesValidate(t *testing.T) {
	tests := []struct {
		name    string
		steps   int
		wantErr bool
	}{
		{"default", DefaultTurnStepCount, false},
		{"two", 2, false},
		{"eight", 8, false},
		{"odd", 3, true},
		{"zero", 0, true},
		{"negative", -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultAttributes()
			a.TurnStepCount = tt.steps
			err := a.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTurnStepCount)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := New("odd", CPU, Attributes{TurnStepCount: 5, AccelerateRate: 1, MaxRoadSpeed: 1, MaxOffRoadSpeed: 1})
	assert.ErrorIs(t, err, ErrInvalidTurnStepCount)
}

func TestTurnStep(t *testing.T) {
	g := uniformGrid(t, 20, 20, true)
	for _, steps := range []int{2, 4, 6, 8} {
		v := newTestVehicle(t, CPU)
		a := DefaultAttributes()
		a.TurnStepCount = steps
		require.NoError(t, v.SetAttributes(a))
		v.Reset(track.Point{Col: 10, Row: 10})

		v.Apply(Command{TurnRight: true})
		for i := 1; i < steps; i++ {
			v.Tick(g)
			assert.Equal(t, StartAngle, v.FacingDegrees(), "tick %d of %d", i, steps)
		}
		v.Tick(g)
		assert.Equal(t, StartAngle+TurnStep, v.FacingDegrees())
	}
}

func TestTurnLeftWraps(t *testing.T) {
	g := uniformGrid(t, 20, 20, true)
	v := newTestVehicle(t, Human)
	v.Reset(track.Point{Col: 10, Row: 10})

	v.Apply(Command{TurnLeft: true})
	for i := 0; i < 4*DefaultTurnStepCount; i++ {
		v.Tick(g)
		assert.GreaterOrEqual(t, v.FacingDegrees(), 0.0)
		assert.Less(t, v.FacingDegrees(), 360.0)
	}
	// 45 - 4*15
	assert.InDelta(t, 345.0, v.FacingDegrees(), 1e-9)

	v.Apply(Command{TurnRight: true})
	for i := 0; i < 1000; i++ {
		v.Tick(g)
		require.GreaterOrEqual(t, v.FacingDegrees(), 0.0)
		require.Less(t, v.FacingDegrees(), 360.0)
	}
}

func TestApplyBothDirections(t *testing.T) {
	v := newTestVehicle(t, Human)
	v.Apply(Command{TurnLeft: true, TurnRight: true, Accelerate: true})
	assert.False(t, v.IsTurningLeft())
	assert.False(t, v.IsTurningRight())
	assert.False(t, v.IsTurning())
	assert.True(t, v.IsAccelerating())
}

func TestAccelerateAndCoast(t *testing.T) {
	g := uniformGrid(t, 400, 400, true)
	v := newTestVehicle(t, Human)
	v.Reset(track.Point{Col: 399, Row: 200})

	v.Apply(Command{Accelerate: true})
	prev := 0.0
	for i := 0; i < 1000; i++ {
		v.Tick(g)
		require.LessOrEqual(t, v.Speed(), DefaultMaxRoadSpeed)
		require.GreaterOrEqual(t, v.Speed(), prev)
		prev = v.Speed()
	}
	assert.InDelta(t, DefaultMaxRoadSpeed, v.Speed(), 1e-12)

	v.Apply(Command{})
	for i := 0; i < 500; i++ {
		v.Tick(g)
		require.Less(t, v.Speed(), prev)
		prev = v.Speed()
	}
	assert.Less(t, v.Speed(), DefaultMaxRoadSpeed*0.0001)
}

func TestHeadingConvention(t *testing.T) {
	g := uniformGrid(t, 100, 100, true)
	v := newTestVehicle(t, Human)
	start := track.Point{Col: 50, Row: 50}
	v.Reset(start)

	v.Apply(Command{Accelerate: true})
	for i := 0; i < 100; i++ {
		v.Tick(g)
	}
	p := v.Position()
	assert.Less(t, p.Col, start.Col, "start angle must head west")
	assert.InDelta(t, start.Row, p.Row, 1e-9)
}

func TestOffRoadCeiling(t *testing.T) {
	mask := [][]bool{make([]bool, 200)}
	for c := 100; c < 200; c++ {
		mask[0][c] = true
	}
	g, err := track.NewGrid(mask, []track.Point{{Col: 1, Row: 0.5}, {Col: 150, Row: 0.5}})
	require.NoError(t, err)

	v := newTestVehicle(t, Human)
	v.Reset(track.Point{Col: 199, Row: 0.5})
	v.Apply(Command{Accelerate: true})
	for v.Position().Col >= 100 {
		v.Tick(g)
	}
	entry := v.Speed()
	require.Greater(t, entry, DefaultMaxOffRoadSpeed)

	v.Tick(g)
	assert.Less(t, v.Speed(), entry)
	assert.Greater(t, v.Speed(), DefaultMaxOffRoadSpeed, "ceiling must not clamp the speed instantly")

	for i := 0; i < 2000; i++ {
		v.Tick(g)
	}
	assert.InDelta(t, DefaultMaxOffRoadSpeed, v.Speed(), 1e-12)
}

func TestSpeedCeiling(t *testing.T) {
	g := uniformGrid(t, 10, 10, true)
	v := newTestVehicle(t, CPU)
	v.Reset(track.Point{Col: 5, Row: 5})

	assert.InDelta(t, DefaultMaxRoadSpeed, v.SpeedCeiling(g), 1e-15)

	v.SetHandicap(HandicapSlower)
	assert.InDelta(t, DefaultMaxRoadSpeed*HandicapPenalty, v.SpeedCeiling(g), 1e-15)
	v.SetHandicap(HandicapFaster)
	assert.InDelta(t, DefaultMaxRoadSpeed*HandicapBoost, v.SpeedCeiling(g), 1e-15)
	v.SetHandicap(HandicapNone)

	v.Apply(Command{RoadSpeedLimit: DefaultMaxRoadSpeed * 0.75})
	assert.InDelta(t, DefaultMaxRoadSpeed*0.75, v.SpeedCeiling(g), 1e-15)

	offroad := uniformGrid(t, 10, 10, false)
	assert.InDelta(t, DefaultMaxOffRoadSpeed, v.SpeedCeiling(offroad), 1e-15)
}

func TestClampToGrid(t *testing.T) {
	g := uniformGrid(t, 10, 10, true)
	v := newTestVehicle(t, Human)
	v.Reset(track.Point{Col: 0.05, Row: 5})

	v.Apply(Command{Accelerate: true})
	for i := 0; i < 200; i++ {
		v.Tick(g)
		require.True(t, g.Contains(v.Position()))
	}
	assert.Equal(t, 0.0, v.Position().Col)
	vx, _ := v.Velocity()
	assert.Equal(t, 0.0, vx)
}

func TestReset(t *testing.T) {
	g := uniformGrid(t, 10, 10, true)
	v := newTestVehicle(t, CPU)
	v.Reset(track.Point{Col: 5, Row: 5})
	v.SetHandicap(HandicapSlower)
	v.Apply(Command{Accelerate: true, TurnLeft: true})
	for i := 0; i < 30; i++ {
		v.Tick(g)
	}

	start := track.Point{Col: 2, Row: 3}
	v.Reset(start)
	assert.Equal(t, start, v.Position())
	assert.Equal(t, StartAngle, v.FacingDegrees())
	assert.Zero(t, v.Speed())
	vx, vy := v.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
	assert.False(t, v.IsTurning())
	assert.False(t, v.IsAccelerating())
	assert.Equal(t, HandicapNone, v.Handicap())
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{375, 15},
		{-15, 345},
		{-720, 0},
		{719, 359},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeDegrees(tt.in), 1e-9, "in=%v", tt.in)
	}
}
