package race

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

const (
	// TicksPerSecond is the fixed simulation rate
	TicksPerSecond = 60
	// Tick is the dt of one simulation step
	Tick = time.Second / TicksPerSecond

	DefaultStartDelay = 5 * time.Second
	// HandicapMargin is the race progress gap, in checkpoints, that
	// triggers a handicap
	HandicapMargin = 2.0
	// CollisionRadius is the minimum distance kept between two cars
	CollisionRadius = 0.5
)

type Option func(c *Coordinator)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		c.log = logger
	}
}

func WithHandicap(enabled bool) Option {
	return func(c *Coordinator) {
		c.handicap = enabled
	}
}

func WithCollision(enabled bool) Option {
	return func(c *Coordinator) {
		c.collision = enabled
	}
}

func WithStartDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		c.startDelay = d
	}
}

// WithRequiredLaps overrides the lap count of the track
func WithRequiredLaps(laps int) Option {
	return func(c *Coordinator) {
		c.requiredLaps = laps
	}
}

// WithRand sets the generator CPU personalities are drawn from
func WithRand(rng *rand.Rand) Option {
	return func(c *Coordinator) {
		c.rng = rng
	}
}

// WithRequireHuman controls whether Start fails without a human entry
func WithRequireHuman(required bool) Option {
	return func(c *Coordinator) {
		c.requireHuman = required
	}
}
