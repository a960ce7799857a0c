package config

import (
	"time"

	"github.com/golangdaddy/rcproam/pkg/race"
)

// this holds the resolved configuration values from CLI
var (
	TrackCatalog string        // path to the track catalog
	TrackID      string        // id of the first track to race, empty for the first one
	PlayerName   string        // name of the human driver
	Vehicles     int           // vehicles on the grid, including the human
	Seed         uint64        // seed of the session generator, 0 picks one from the clock
	Laps         int           // overrides the lap count of the track when > 0
	StartDelay   time.Duration // countdown before the race begins
	Handicap     bool          // rubber banding between human and CPU
	Collision    bool          // cars block each other
	LogLevel     string        // sets the log level (zap log level values)
	LogFormat    string        // text vs json
	Ticks        int           // max ticks for a headless race
	Autopilot    bool          // let the steering AI drive the human car
)

// RaceSettings are the race options resolved from the CLI values
type RaceSettings struct {
	Laps       int
	StartDelay time.Duration
	Handicap   bool
	Collision  bool
}

// CurrentRaceSettings collects the race related values
func CurrentRaceSettings() RaceSettings {
	return RaceSettings{
		Laps:       Laps,
		StartDelay: StartDelay,
		Handicap:   Handicap,
		Collision:  Collision,
	}
}

// Options turns the settings into coordinator options
func (s RaceSettings) Options() []race.Option {
	opts := []race.Option{
		race.WithStartDelay(s.StartDelay),
		race.WithHandicap(s.Handicap),
		race.WithCollision(s.Collision),
	}
	if s.Laps > 0 {
		opts = append(opts, race.WithRequiredLaps(s.Laps))
	}
	return opts
}
