package vehicle

import (
	"errors"
	"fmt"
)

const (
	DefaultTurnStepCount   = 4
	DefaultAccelerateRate  = 0.00005
	DefaultMaxRoadSpeed    = 0.0125
	DefaultMaxOffRoadSpeed = 0.00125

	HandicapBoost   = 1.25
	HandicapPenalty = 0.75
)

var ErrInvalidTurnStepCount = errors.New("invalid turn step count")

// Handicap adjusts the speed ceiling of a vehicle for the current tick
type Handicap int

const (
	HandicapNone Handicap = iota
	HandicapFaster
	HandicapSlower
)

func (h Handicap) String() string {
	switch h {
	case HandicapFaster:
		return "faster"
	case HandicapSlower:
		return "slower"
	default:
		return "none"
	}
}

// Multiplier is the factor applied to the speed ceiling
func (h Handicap) Multiplier() float64 {
	switch h {
	case HandicapFaster:
		return HandicapBoost
	case HandicapSlower:
		return HandicapPenalty
	default:
		return 1
	}
}

// Attributes are the driving stats of a vehicle. They are replaced as a
// whole when a race is set up, never patched field by field.
type Attributes struct {
	TurnStepCount   int
	AccelerateRate  float64
	MaxRoadSpeed    float64
	MaxOffRoadSpeed float64
	Handicap        Handicap
}

// DefaultAttributes returns the stats of the human car
func DefaultAttributes() Attributes {
	return Attributes{
		TurnStepCount:   DefaultTurnStepCount,
		AccelerateRate:  DefaultAccelerateRate,
		MaxRoadSpeed:    DefaultMaxRoadSpeed,
		MaxOffRoadSpeed: DefaultMaxOffRoadSpeed,
	}
}

// Validate checks the attributes can drive a vehicle
func (a Attributes) Validate() error {
	if a.TurnStepCount <= 0 || a.TurnStepCount%2 != 0 {
		return fmt.Errorf("%w: %d, must be even and positive",
			ErrInvalidTurnStepCount, a.TurnStepCount)
	}
	if a.AccelerateRate <= 0 || a.MaxRoadSpeed <= 0 || a.MaxOffRoadSpeed <= 0 {
		return fmt.Errorf("speed stats must be positive: rate=%v road=%v offroad=%v",
			a.AccelerateRate, a.MaxRoadSpeed, a.MaxOffRoadSpeed)
	}
	return nil
}
