package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/golangdaddy/rcproam/pkg/cmd/setup"
	"github.com/golangdaddy/rcproam/pkg/config"
	"github.com/golangdaddy/rcproam/pkg/race"
)

func NewSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "runs a headless race and prints the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd.OutOrStdout())
		},
	}
	setup.AddRaceFlags(cmd)
	cmd.Flags().IntVar(&config.Ticks, "ticks", 10*60*race.TicksPerSecond,
		"give up after this many simulation ticks")
	cmd.Flags().BoolVar(&config.Autopilot, "autopilot", true,
		"let the steering AI drive the human car")
	return cmd
}

// Result summarizes a headless race
type Result struct {
	Ticks      int
	Collisions int
	Laps       int
	Completed  bool
}

// Run drives c at the fixed tick rate until it completes or maxTicks
// steps have passed
func Run(c *race.Coordinator, maxTicks int, logger *zap.Logger) (Result, error) {
	var res Result
	for res.Ticks < maxTicks && !c.HasRaceCompleted() {
		ev, err := c.Update(race.Tick)
		if err != nil {
			return res, err
		}
		res.Ticks++
		res.Collisions += len(ev.Collisions)
		res.Laps += len(ev.Laps)
		for _, lap := range ev.Laps {
			logger.Info("lap",
				zap.String("vehicle", lap.Entry.Name()),
				zap.Int("lap", lap.Lap),
				zap.Duration("time", lap.Time))
		}
	}
	res.Completed = c.HasRaceCompleted()
	return res, nil
}

func runSim(w io.Writer) error {
	logger := setup.Logger()
	//nolint:errcheck // stderr sync
	defer logger.Sync()

	var human *race.Entry
	var err error
	if config.Autopilot {
		human, err = race.NewAutopilotHuman(config.PlayerName)
	} else {
		human, err = race.NewHuman(config.PlayerName, nil)
	}
	if err != nil {
		return err
	}

	s, err := setup.Session(logger, human)
	if err != nil {
		return err
	}
	c, err := s.NewRace()
	if err != nil {
		return err
	}

	res, err := Run(c, config.Ticks, logger)
	if err != nil {
		return err
	}
	printResult(w, c, res)
	return nil
}

func printResult(w io.Writer, c *race.Coordinator, res Result) {
	t := c.Track()
	fmt.Fprintf(w, "Track: %s (%s), %d laps\n", t.Name, t.ID, c.RequiredLaps())
	if res.Completed {
		fmt.Fprintf(w, "Winner: %s after %d ticks\n", c.Winner().Name(), res.Ticks)
		if c.HasHumanQualified() {
			fmt.Fprintln(w, "Human qualified")
		} else {
			fmt.Fprintln(w, "Human did not qualify")
		}
	} else {
		fmt.Fprintf(w, "Race not completed after %d ticks\n", res.Ticks)
	}
	fmt.Fprintf(w, "Collisions: %d\n", res.Collisions)

	fmt.Fprintln(w, "Leaderboard:")
	for _, line := range c.LeaderboardLines() {
		fmt.Fprintln(w, "  "+line)
	}
	if h, err := c.Human(); err == nil {
		fmt.Fprintf(w, "%s:\n  %s\n", h.Name(), strings.Join(h.Tracker.LapDescription(c.RequiredLaps()), "\n  "))
	}
}
