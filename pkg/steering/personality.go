package steering

import (
	"math/rand/v2"

	"github.com/golangdaddy/rcproam/pkg/vehicle"
)

const (
	// TurningSpeedRatio of the road ceiling is allowed while correcting heading
	TurningSpeedRatio = 0.75
	// AccurateProgress is the checkpoint fraction after which the tight
	// tolerance applies
	AccurateProgress = 0.4
	// StatSpread bounds the random stats around the baseline (+/-)
	StatSpread = 0.25
)

var (
	TurnStepCountOptions = []int{2, 4, 6, 8}

	AccurateToleranceRange = [2]float64{vehicle.TurnStep * 0.33, vehicle.TurnStep * 0.5}
	RelaxedToleranceRange  = [2]float64{vehicle.TurnStep * 0.5, vehicle.TurnStep * 0.75}
)

// Personality is the driving style of a CPU car for one race
type Personality struct {
	Attributes        vehicle.Attributes
	TurningSpeed      float64
	AccurateTolerance float64
	RelaxedTolerance  float64
}

// DefaultPersonality drives with the baseline stats and mid tolerances
func DefaultPersonality() Personality {
	attrs := vehicle.DefaultAttributes()
	return Personality{
		Attributes:        attrs,
		TurningSpeed:      attrs.MaxRoadSpeed * TurningSpeedRatio,
		AccurateTolerance: (AccurateToleranceRange[0] + AccurateToleranceRange[1]) / 2,
		RelaxedTolerance:  (RelaxedToleranceRange[0] + RelaxedToleranceRange[1]) / 2,
	}
}

// AssignPersonality draws a random but bounded personality from rng
func AssignPersonality(rng *rand.Rand) Personality {
	attrs := vehicle.DefaultAttributes()
	attrs.TurnStepCount = TurnStepCountOptions[rng.IntN(len(TurnStepCountOptions))]
	attrs.AccelerateRate = spread(rng, vehicle.DefaultAccelerateRate)
	attrs.MaxRoadSpeed = spread(rng, vehicle.DefaultMaxRoadSpeed)

	return Personality{
		Attributes:        attrs,
		TurningSpeed:      attrs.MaxRoadSpeed * TurningSpeedRatio,
		AccurateTolerance: between(rng, AccurateToleranceRange),
		RelaxedTolerance:  between(rng, RelaxedToleranceRange),
	}
}

func spread(rng *rand.Rand, base float64) float64 {
	return between(rng, [2]float64{base * (1 - StatSpread), base * (1 + StatSpread)})
}

func between(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + (r[1]-r[0])*rng.Float64()
}
