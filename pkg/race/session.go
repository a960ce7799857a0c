package race

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/golangdaddy/rcproam/pkg/data"
	"github.com/golangdaddy/rcproam/pkg/steering"
	"github.com/golangdaddy/rcproam/pkg/track"
)

// Session is a championship over the tracks of a catalog. It owns the
// random generator and the roster, which persists from race to race.
type Session struct {
	log     *zap.Logger
	catalog *track.Catalog
	rng     *rand.Rand
	opts    []Option

	roster   []*Entry
	trackIdx int
	race     *Coordinator
}

// NewSession creates a session starting on the first catalog track.
// The same seed reproduces the same CPU personalities and lap counts.
func NewSession(catalog *track.Catalog, seed uint64, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		log:     logger,
		catalog: catalog,
		rng:     rand.New(rand.NewPCG(seed, seed)),
		opts:    opts,
	}
}

// Join adds an entry to the roster
func (s *Session) Join(e *Entry) error {
	if e.IsHuman() && lo.ContainsBy(s.roster, func(o *Entry) bool { return o.IsHuman() }) {
		return fmt.Errorf("%w: %q", ErrDuplicateHuman, e.Name())
	}
	s.roster = append(s.roster, e)
	return nil
}

// FillCPUs adds computer drivers with distinct names until the roster has
// size entries
func (s *Session) FillCPUs(size int) error {
	taken := lo.Map(s.roster, func(e *Entry, _ int) string { return e.Name() })
	names := lo.Filter(data.DriverNames, func(n string, _ int) bool { return !lo.Contains(taken, n) })
	s.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	for len(s.roster) < size {
		if len(names) == 0 {
			return fmt.Errorf("not enough driver names for %d vehicles", size)
		}
		e, err := NewCPU(names[0], steering.AssignPersonality(s.rng))
		if err != nil {
			return err
		}
		names = names[1:]
		s.roster = append(s.roster, e)
	}
	return nil
}

func (s *Session) Roster() []*Entry {
	return append([]*Entry(nil), s.roster...)
}

// SetTrack selects the catalog track raced next
func (s *Session) SetTrack(idx int) error {
	if idx < 0 || idx >= len(s.catalog.Tracks) {
		return fmt.Errorf("%w: index %d", track.ErrUnknownTrack, idx)
	}
	s.trackIdx = idx
	return nil
}

func (s *Session) TrackIndex() int {
	return s.trackIdx
}

// NextTrack moves to the following catalog track, wrapping to the first
func (s *Session) NextTrack() int {
	s.trackIdx = (s.trackIdx + 1) % len(s.catalog.Tracks)
	return s.trackIdx
}

// NewRace loads the current track, draws the lap count when the track
// gives a range and starts a race with the whole roster
func (s *Session) NewRace(opts ...Option) (*Coordinator, error) {
	t, err := s.catalog.Load(s.trackIdx)
	if err != nil {
		return nil, err
	}

	all := []Option{WithLogger(s.log), WithRand(s.rng)}
	if t.HasLapRange() {
		laps := t.MinLaps + s.rng.IntN(t.MaxLaps-t.MinLaps+1)
		all = append(all, WithRequiredLaps(laps))
	}
	all = append(append(all, s.opts...), opts...)

	c := New(t, all...)
	for _, e := range s.roster {
		if err := c.Add(e); err != nil {
			return nil, err
		}
	}
	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("track %q: %w", t.ID, err)
	}
	s.race = c
	return c, nil
}

// Race is the current race, nil before NewRace
func (s *Session) Race() *Coordinator {
	return s.race
}

// Advance is called after a race completed. A qualified human moves on to
// the next track, otherwise the same track is raced again.
func (s *Session) Advance() bool {
	if s.race == nil || !s.race.HasRaceCompleted() {
		return false
	}
	if !s.race.HasHumanQualified() {
		s.log.Info("not qualified, retrying track", zap.Int("track", s.trackIdx))
		return false
	}
	s.NextTrack()
	s.log.Info("qualified, next track", zap.Int("track", s.trackIdx))
	return true
}
