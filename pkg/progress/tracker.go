package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/golangdaddy/rcproam/pkg/track"
)

const (
	HumanCaptureRadius = 5.0
	CPUCaptureRadius   = 1.5
)

// Driver is what the tracker needs to know about a vehicle
type Driver interface {
	Position() track.Point
	IsHuman() bool
}

// Capture reports what an Update achieved
type Capture int

const (
	CaptureNone Capture = iota
	CaptureCheckpoint
	CaptureLap
)

// Tracker follows one vehicle around the checkpoint sequence.
// RaceProgress is the ranking key: checkpoints captured so far this race
// plus the fraction of the way toward the current target.
type Tracker struct {
	checkpointTarget int
	laps             int
	completed        int
	fraction         float64

	lapTimes []time.Duration
	lapTime  time.Duration
	raceTime time.Duration
}

func New() *Tracker {
	return &Tracker{}
}

// Reset clears all progress and timers for a new race
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// CaptureRadius is how close a driver must get to a checkpoint
func CaptureRadius(human bool) float64 {
	if human {
		return HumanCaptureRadius
	}
	return CPUCaptureRadius
}

// Update advances the timers by dt, captures the target checkpoint when the
// driver is close enough and recomputes the race progress.
// The finish line only counts once the driver is level with or west of it.
func (t *Tracker) Update(d Driver, g *track.Grid, dt time.Duration) Capture {
	t.lapTime += dt
	t.raceTime += dt

	pos := d.Position()
	target := g.Checkpoint(t.checkpointTarget)

	result := CaptureNone
	if pos.Distance(target) <= CaptureRadius(d.IsHuman()) {
		if g.IsFinalCheckpoint(t.checkpointTarget) {
			if pos.Col <= target.Col {
				t.completed++
				t.laps++
				t.checkpointTarget = 0
				t.lapTimes = append(t.lapTimes, t.lapTime)
				t.lapTime = 0
				result = CaptureLap
			}
		} else {
			t.completed++
			t.checkpointTarget++
			result = CaptureCheckpoint
		}
	}

	t.fraction = CheckpointFraction(pos, g, t.checkpointTarget)
	return result
}

// CheckpointFraction is how far pos has come toward checkpoint target,
// 1 at the target and 0 at (or beyond) the distance of the previous one
func CheckpointFraction(pos track.Point, g *track.Grid, target int) float64 {
	to := g.Checkpoint(target)
	full := g.PreviousCheckpoint(target).Distance(to)
	f := 1 - pos.Distance(to)/full
	return math.Max(0, math.Min(1, f))
}

func (t *Tracker) Laps() int {
	return t.laps
}

func (t *Tracker) CheckpointTarget() int {
	return t.checkpointTarget
}

func (t *Tracker) CompletedCheckpoints() int {
	return t.completed
}

// CheckpointProgress is the fraction of the way to the current target
func (t *Tracker) CheckpointProgress() float64 {
	return t.fraction
}

func (t *Tracker) RaceProgress() float64 {
	return float64(t.completed) + t.fraction
}

// LapTimes returns the recorded lap times, oldest first
func (t *Tracker) LapTimes() []time.Duration {
	return append([]time.Duration(nil), t.lapTimes...)
}

// LapTime is the running time of the current lap
func (t *Tracker) LapTime() time.Duration {
	return t.lapTime
}

func (t *Tracker) RaceTime() time.Duration {
	return t.raceTime
}

// BestLap returns the fastest recorded lap, false when none is recorded
func (t *Tracker) BestLap() (time.Duration, bool) {
	if len(t.lapTimes) == 0 {
		return 0, false
	}
	best := t.lapTimes[0]
	for _, lt := range t.lapTimes[1:] {
		best = min(best, lt)
	}
	return best, true
}

// LapDescription renders the HUD lap board: one line per lap of the race
// followed by the total.
func (t *Tracker) LapDescription(requiredLaps int) []string {
	lines := make([]string, 0, max(requiredLaps, len(t.lapTimes))+1)
	for i, lt := range t.lapTimes {
		lines = append(lines, fmt.Sprintf("Lap %d - %s", i+1, FormatDuration(lt)))
	}
	for lap := len(t.lapTimes) + 1; lap <= requiredLaps; lap++ {
		if lap == len(t.lapTimes)+1 {
			lines = append(lines, fmt.Sprintf("Lap %d - %s", lap, FormatDuration(t.lapTime)))
			continue
		}
		lines = append(lines, fmt.Sprintf("Lap %d - --:--.---", lap))
	}
	return append(lines, "Total - "+FormatDuration(t.raceTime))
}

// FormatDuration renders mm:ss.mmm
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}
