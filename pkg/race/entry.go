package race

import (
	"fmt"

	"github.com/golangdaddy/rcproam/pkg/progress"
	"github.com/golangdaddy/rcproam/pkg/steering"
	"github.com/golangdaddy/rcproam/pkg/track"
	"github.com/golangdaddy/rcproam/pkg/vehicle"
)

// Controller produces the driver input of an entry each tick
type Controller interface {
	Decide(e *Entry, g *track.Grid) vehicle.Command
}

// InputSource is polled for the human driver's controls
type InputSource interface {
	TurnLeft() bool
	TurnRight() bool
	Accelerate() bool
}

// InputController drives from an InputSource, typically the keyboard
type InputController struct {
	Input InputSource
}

func (c *InputController) Decide(_ *Entry, _ *track.Grid) vehicle.Command {
	if c.Input == nil {
		return vehicle.Command{}
	}
	return vehicle.Command{
		TurnLeft:   c.Input.TurnLeft(),
		TurnRight:  c.Input.TurnRight(),
		Accelerate: c.Input.Accelerate(),
	}
}

// PilotController drives with the steering AI
type PilotController struct {
	Pilot *steering.Pilot

	aim int
}

func (c *PilotController) Decide(e *Entry, g *track.Grid) vehicle.Command {
	if !e.IsHuman() {
		return c.Pilot.Decide(e.Vehicle, g, e.Tracker)
	}
	return c.Pilot.Decide(e.Vehicle, g, checkpointIndex(c.aimFor(e, g)))
}

// aimFor picks the checkpoint an autopiloted human steers at. The wide human
// capture radius moves the target on early, so the pilot keeps aiming at the
// checkpoint just captured until the car is within the CPU capture radius.
// The aim is never ahead of the tracker's target.
func (c *PilotController) aimFor(e *Entry, g *track.Grid) int {
	target := e.Tracker.CheckpointTarget()
	prev := (target + g.CheckpointCount() - 1) % g.CheckpointCount()
	if c.aim == prev && e.Tracker.CompletedCheckpoints() > 0 &&
		e.Vehicle.Position().Distance(g.Checkpoint(prev)) > progress.CPUCaptureRadius {
		return prev
	}
	c.aim = target
	return target
}

type checkpointIndex int

func (i checkpointIndex) CheckpointTarget() int {
	return int(i)
}

// Entry is one competitor: the vehicle, its progress and who drives it.
// Entries persist across the races of a session.
type Entry struct {
	Vehicle *vehicle.Vehicle
	Tracker *progress.Tracker

	controller Controller
	rank       int
}

// NewEntry creates an entry with default attributes
func NewEntry(name string, kind vehicle.Kind, controller Controller) (*Entry, error) {
	if name == "" {
		return nil, ErrUnnamedVehicle
	}
	if controller == nil {
		return nil, fmt.Errorf("entry %q: no controller", name)
	}
	attrs := vehicle.DefaultAttributes()
	if pc, ok := controller.(*PilotController); ok && kind == vehicle.CPU {
		attrs = pc.Pilot.Personality().Attributes
	}
	v, err := vehicle.New(name, kind, attrs)
	if err != nil {
		return nil, err
	}
	return &Entry{
		Vehicle:    v,
		Tracker:    progress.New(),
		controller: controller,
	}, nil
}

// NewHuman creates the human entry reading input
func NewHuman(name string, input InputSource) (*Entry, error) {
	return NewEntry(name, vehicle.Human, &InputController{Input: input})
}

// NewAutopilotHuman creates a human entry driven by the steering AI with
// the baseline personality
func NewAutopilotHuman(name string) (*Entry, error) {
	return NewEntry(name, vehicle.Human, &PilotController{Pilot: steering.NewPilot(steering.DefaultPersonality())})
}

// NewCPU creates a computer driven entry
func NewCPU(name string, p steering.Personality) (*Entry, error) {
	return NewEntry(name, vehicle.CPU, &PilotController{Pilot: steering.NewPilot(p)})
}

func (e *Entry) Name() string {
	return e.Vehicle.Name()
}

func (e *Entry) IsHuman() bool {
	return e.Vehicle.IsHuman()
}

// Rank as of the last leaderboard computation, 0 before the first
func (e *Entry) Rank() int {
	return e.rank
}

func (e *Entry) Controller() Controller {
	return e.controller
}

// pilot returns the steering AI of a computer driven entry
func (e *Entry) pilot() (*steering.Pilot, bool) {
	if e.IsHuman() {
		return nil, false
	}
	pc, ok := e.controller.(*PilotController)
	if !ok {
		return nil, false
	}
	return pc.Pilot, true
}
