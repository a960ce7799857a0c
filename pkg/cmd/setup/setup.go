package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/golangdaddy/rcproam/pkg/config"
	"github.com/golangdaddy/rcproam/pkg/log"
	"github.com/golangdaddy/rcproam/pkg/race"
	"github.com/golangdaddy/rcproam/pkg/track"
)

// AddRaceFlags registers the flags shared by the commands that race
func AddRaceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.TrackID, "track", "",
		"id of the first track (default is the first catalog entry)")
	cmd.Flags().StringVar(&config.PlayerName, "name", "Player",
		"name of the human driver")
	cmd.Flags().IntVar(&config.Vehicles, "vehicles", 4,
		"vehicles on the grid, including the human")
	cmd.Flags().Uint64Var(&config.Seed, "seed", 0,
		"seed for CPU personalities and lap counts (0 picks one)")
	cmd.Flags().IntVar(&config.Laps, "laps", 0,
		"overrides the lap count of every track when > 0")
	cmd.Flags().DurationVar(&config.StartDelay, "start-delay", race.DefaultStartDelay,
		"countdown before the race begins")
	cmd.Flags().BoolVar(&config.Handicap, "handicap", true,
		"slows runaway CPU cars and boosts a trailing human")
	cmd.Flags().BoolVar(&config.Collision, "collision", true,
		"cars block each other")
}

// Logger builds the stderr logger from the log flags
func Logger() *zap.Logger {
	return log.New(os.Stderr, log.ParseLevel(config.LogLevel, zapcore.InfoLevel), config.LogFormat)
}

// Session loads the catalog and creates a session with the human entry and
// enough CPU entries to fill the grid
func Session(logger *zap.Logger, human *race.Entry) (*race.Session, error) {
	catalog, err := track.LoadCatalog(config.TrackCatalog)
	if err != nil {
		return nil, err
	}
	if len(catalog.Tracks) == 0 {
		return nil, fmt.Errorf("%w: catalog %s is empty", track.ErrUnknownTrack, config.TrackCatalog)
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("session", zap.Uint64("seed", seed), zap.Strings("tracks", catalog.IDs()))

	s := race.NewSession(catalog, seed, logger, config.CurrentRaceSettings().Options()...)
	if config.TrackID != "" {
		idx, err := catalog.Index(config.TrackID)
		if err != nil {
			return nil, err
		}
		if err := s.SetTrack(idx); err != nil {
			return nil, err
		}
	}
	if err := s.Join(human); err != nil {
		return nil, err
	}
	if err := s.FillCPUs(config.Vehicles); err != nil {
		return nil, err
	}
	return s, nil
}
