package race

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/golangdaddy/rcproam/pkg/progress"
	"github.com/golangdaddy/rcproam/pkg/steering"
	"github.com/golangdaddy/rcproam/pkg/track"
	"github.com/golangdaddy/rcproam/pkg/vehicle"
)

var (
	ErrNoHuman               = errors.New("no human vehicle")
	ErrDuplicateHuman        = errors.New("more than one human vehicle")
	ErrStartPositionMismatch = errors.New("vehicle count does not match start positions")
	ErrUnnamedVehicle        = errors.New("vehicle has no name")
	ErrNotStartable          = errors.New("race cannot be started")
)

type State int

const (
	NotStarted State = iota
	Starting
	Racing
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Starting:
		return "starting"
	case Racing:
		return "racing"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Collision reports a car that was put back to its previous position
type Collision struct {
	Mover   *Entry
	Other   *Entry
	MoverID uuid.UUID
	OtherID uuid.UUID
}

// Lap reports a completed lap
type Lap struct {
	Entry     *Entry
	VehicleID uuid.UUID
	Lap       int
	Time      time.Duration
}

// Events is what happened during one Update
type Events struct {
	Collisions   []Collision
	Laps         []Lap
	StateChanged bool
	State        State
}

// Coordinator runs one race on one track. It is driven by Update at a fixed
// step from a single goroutine.
type Coordinator struct {
	log   *zap.Logger
	track *track.Track
	rng   *rand.Rand

	entries      []*Entry
	requiredLaps int
	startDelay   time.Duration
	startTimer   time.Duration
	handicap     bool
	collision    bool
	requireHuman bool

	state          State
	winner         *Entry
	humanQualified bool
}

// New creates a coordinator for t. The required laps default to the
// track's lap count.
func New(t *track.Track, opts ...Option) *Coordinator {
	c := &Coordinator{
		log:          zap.NewNop(),
		track:        t,
		requiredLaps: max(t.Laps, t.MinLaps, 1),
		startDelay:   DefaultStartDelay,
		handicap:     true,
		collision:    true,
		requireHuman: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
	return c
}

// Add appends an entry to the grid. Entries start in the order they are
// added.
func (c *Coordinator) Add(e *Entry) error {
	if c.state != NotStarted {
		return fmt.Errorf("%w: add %q while %s", ErrNotStartable, e.Name(), c.state)
	}
	if e.Name() == "" {
		return ErrUnnamedVehicle
	}
	if e.IsHuman() && lo.ContainsBy(c.entries, func(o *Entry) bool { return o.IsHuman() }) {
		return fmt.Errorf("%w: %q", ErrDuplicateHuman, e.Name())
	}
	c.entries = append(c.entries, e)
	return nil
}

// Start validates the grid, puts every car on its start cell and begins
// the countdown. Without a start delay the race begins immediately.
func (c *Coordinator) Start() error {
	if c.state != NotStarted {
		return fmt.Errorf("%w: race is %s", ErrNotStartable, c.state)
	}
	if len(c.entries) != len(c.track.Start) {
		return fmt.Errorf("%w: %d vehicles, %d start positions on %q",
			ErrStartPositionMismatch, len(c.entries), len(c.track.Start), c.track.ID)
	}
	if c.requireHuman {
		if _, err := c.Human(); err != nil {
			return err
		}
	}
	if c.requiredLaps < 1 {
		return fmt.Errorf("%w: required laps %d", ErrNotStartable, c.requiredLaps)
	}

	for i, e := range c.entries {
		e.Vehicle.Reset(c.track.Start[i])
		e.Tracker.Reset()
		e.rank = i + 1
	}
	c.startTimer = 0
	c.state = Starting
	c.log.Info("race starting",
		zap.String("track", c.track.ID),
		zap.Int("laps", c.requiredLaps),
		zap.Int("vehicles", len(c.entries)))

	if c.startDelay <= 0 {
		return c.beginRacing()
	}
	return nil
}

// beginRacing resets every car and gives the CPU drivers new personalities
func (c *Coordinator) beginRacing() error {
	for i, e := range c.entries {
		attrs := vehicle.DefaultAttributes()
		if pilot, ok := e.pilot(); ok {
			pers := steering.AssignPersonality(c.rng)
			pilot.SetPersonality(pers)
			attrs = pers.Attributes
		}
		if err := e.Vehicle.SetAttributes(attrs); err != nil {
			return err
		}
		e.Vehicle.Reset(c.track.Start[i])
		e.Tracker.Reset()
	}
	c.state = Racing
	c.log.Debug("race state", zap.Stringer("state", c.state))
	return nil
}

// Update advances the race by one fixed step of dt
func (c *Coordinator) Update(dt time.Duration) (Events, error) {
	ev := Events{State: c.state}

	switch c.state {
	case Starting:
		c.startTimer += dt
		if c.startTimer >= c.startDelay {
			if err := c.beginRacing(); err != nil {
				return ev, err
			}
			ev.StateChanged, ev.State = true, c.state
		}
	case Racing:
		c.tick(dt, &ev)
	}
	return ev, nil
}

func (c *Coordinator) tick(dt time.Duration, ev *Events) {
	g := c.track.Grid
	c.applyHandicap()

	for _, e := range c.entries {
		prev := e.Vehicle.Position()
		prevLaps := e.Tracker.Laps()

		e.Vehicle.Apply(e.controller.Decide(e, g))
		e.Vehicle.Tick(g)

		switch e.Tracker.Update(e.Vehicle, g, dt) {
		case progress.CaptureCheckpoint:
			c.log.Debug("checkpoint",
				zap.String("vehicle", e.Name()),
				zap.Stringer("id", e.Vehicle.ID()),
				zap.Int("next", e.Tracker.CheckpointTarget()))
		case progress.CaptureLap:
			times := e.Tracker.LapTimes()
			lap := Lap{Entry: e, VehicleID: e.Vehicle.ID(), Lap: e.Tracker.Laps(), Time: times[len(times)-1]}
			ev.Laps = append(ev.Laps, lap)
			c.log.Debug("lap",
				zap.String("vehicle", e.Name()),
				zap.Stringer("id", lap.VehicleID),
				zap.Int("lap", lap.Lap),
				zap.Duration("time", lap.Time))
		}

		if c.collision {
			if other, hit := c.collidesWith(e); hit {
				e.Vehicle.SetPosition(prev)
				ev.Collisions = append(ev.Collisions, Collision{
					Mover:   e,
					Other:   other,
					MoverID: e.Vehicle.ID(),
					OtherID: other.Vehicle.ID(),
				})
				c.log.Debug("collision",
					zap.String("vehicle", e.Name()),
					zap.Stringer("id", e.Vehicle.ID()),
					zap.String("other", other.Name()),
					zap.Stringer("otherId", other.Vehicle.ID()))
			}
		}

		if e.Tracker.Laps() > prevLaps && e.Tracker.Laps() >= c.requiredLaps {
			c.finish(e)
			ev.StateChanged, ev.State = true, c.state
			return
		}
	}
}

// collidesWith finds another vehicle within CollisionRadius of e
func (c *Coordinator) collidesWith(e *Entry) (*Entry, bool) {
	id, pos := e.Vehicle.ID(), e.Vehicle.Position()
	return lo.Find(c.entries, func(o *Entry) bool {
		return o.Vehicle.ID() != id && o.Vehicle.Position().Distance(pos) <= CollisionRadius
	})
}

// applyHandicap clears every handicap and sets them again from the current
// gaps to the human
func (c *Coordinator) applyHandicap() {
	for _, e := range c.entries {
		e.Vehicle.SetHandicap(vehicle.HandicapNone)
	}
	if !c.handicap {
		return
	}
	human, err := c.Human()
	if err != nil {
		return
	}

	humanProgress := human.Tracker.RaceProgress()
	for _, e := range lo.Filter(c.entries, func(e *Entry, _ int) bool { return !e.IsHuman() }) {
		gap := e.Tracker.RaceProgress() - humanProgress
		switch {
		case gap > HandicapMargin:
			e.Vehicle.SetHandicap(vehicle.HandicapSlower)
		case -gap > HandicapMargin:
			human.Vehicle.SetHandicap(vehicle.HandicapFaster)
		}
	}
}

func (c *Coordinator) finish(winner *Entry) {
	c.state = Completed
	c.winner = winner

	board := c.Leaderboard()
	if human, err := c.Human(); err == nil {
		c.humanQualified = human.rank < len(board)
	}
	c.log.Info("race completed",
		zap.String("track", c.track.ID),
		zap.String("winner", winner.Name()),
		zap.Bool("humanQualified", c.humanQualified))
}

func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) HasRaceCompleted() bool {
	return c.state == Completed
}

// HasHumanQualified reports whether the human finished ahead of last place
func (c *Coordinator) HasHumanQualified() bool {
	return c.humanQualified
}

// Winner is the entry that completed the race, nil before that
func (c *Coordinator) Winner() *Entry {
	return c.winner
}

// Human returns the human entry
func (c *Coordinator) Human() (*Entry, error) {
	h, ok := lo.Find(c.entries, func(e *Entry) bool { return e.IsHuman() })
	if !ok {
		return nil, ErrNoHuman
	}
	return h, nil
}

// Entries returns the entries in grid order
func (c *Coordinator) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

func (c *Coordinator) Track() *track.Track {
	return c.track
}

func (c *Coordinator) RequiredLaps() int {
	return c.requiredLaps
}

// Countdown is the time left before racing begins
func (c *Coordinator) Countdown() time.Duration {
	if c.state != Starting {
		return 0
	}
	return max(c.startDelay-c.startTimer, 0)
}
