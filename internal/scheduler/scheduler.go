// Package scheduler turns variable frame times into a fixed number of
// simulation steps.
package scheduler

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/vbeat/internal/judge"
)

// Ticker is advanced by exactly one timestep per call.
type Ticker interface {
	Tick()
}

type Scheduler struct {
	timestep time.Duration
	maxDelta time.Duration

	lag   time.Duration // Frame time not yet simulated
	peak  time.Duration // Largest lag left after a step, for diagnostics only
	alpha float64
	ticks uint64
}

// New creates a scheduler. Frames longer than maxDelta are shortened to it,
// which slows the simulation down instead of catching up without bound.
func New(timestep, maxDelta time.Duration) (*Scheduler, error) {
	if timestep <= 0 {
		return nil, &judge.ConfigError{Field: "timestep", Reason: fmt.Sprintf("%v must be positive", timestep)}
	}
	if maxDelta < timestep {
		return nil, &judge.ConfigError{Field: "max-delta", Reason: fmt.Sprintf("%v is shorter than the timestep %v", maxDelta, timestep)}
	}
	return &Scheduler{timestep: timestep, maxDelta: maxDelta}, nil
}

// Advance adds a frame's worth of wall time and steps t as many times as it
// allows. The number of steps taken is returned.
func (s *Scheduler) Advance(delta time.Duration, t Ticker) int {
	if delta < 0 {
		delta = 0
	}
	if delta > s.maxDelta {
		delta = s.maxDelta
	}
	s.lag += delta

	n := 0
	for s.lag >= s.timestep {
		s.lag -= s.timestep
		if s.lag > s.peak {
			s.peak = s.lag
		}
		t.Tick()
		s.ticks++
		n++
	}

	// how far between steps is this?
	s.alpha = float64(s.lag) / float64(s.timestep)
	return n
}

// MaxSteps is the most steps a single Advance can take.
func (s *Scheduler) MaxSteps() int {
	return int((s.maxDelta + s.timestep - 1) / s.timestep)
}

// Alpha is the fraction of a step elapsed since the last one, in [0, 1).
func (s *Scheduler) Alpha() float64 {
	return s.alpha
}

func (s *Scheduler) Lag() time.Duration {
	return s.lag
}

func (s *Scheduler) Peak() time.Duration {
	return s.peak
}

func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

func (s *Scheduler) Timestep() time.Duration {
	return s.timestep
}
