// Package play runs a single play of a chart: input routing, the fixed step
// scheduler and the judgment engine, all on the caller's goroutine.
package play

import (
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/input"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"git.lost.host/meutraa/vbeat/internal/scheduler"
	"github.com/rs/zerolog/log"
)

type Timing struct {
	Start    time.Duration // Song time at the first frame, negative for a lead in
	Timestep time.Duration
	MaxDelta time.Duration
}

func DefaultTiming() Timing {
	step := time.Second / 60
	return Timing{Start: -time.Second, Timestep: step, MaxDelta: 3 * step}
}

func (t Timing) Clock() game.Clock {
	return game.NewClock(t.Start, t.Timestep)
}

// Session owns everything that changes during a play.
type Session struct {
	Engine    *judge.Engine
	Scheduler *scheduler.Scheduler

	routes map[input.Kind]func(input.Event)
	inputs []game.Input
	quit   bool

	// OnJudge is called with every candidate an input judged
	OnJudge func(ev input.Event, judged []judge.Candidate)
}

func New(chart *game.Chart, timing Timing, cfg judge.Config) (*Session, error) {
	sched, err := scheduler.New(timing.Timestep, timing.MaxDelta)
	if nil != err {
		return nil, err
	}
	engine, err := judge.New(chart, timing.Clock(), cfg)
	if nil != err {
		return nil, err
	}

	s := &Session{
		Engine:    engine,
		Scheduler: sched,
	}
	s.routes = map[input.Kind]func(input.Event){
		input.KindLane: s.press,
		input.KindQuit: func(input.Event) { s.quit = true },
	}
	return s, nil
}

// Route replaces the handler for one kind of event.
func (s *Session) Route(kind input.Kind, handler func(input.Event)) {
	s.routes[kind] = handler
}

// Frame applies the frame's input against the current state, then runs as
// many steps as delta allows. It returns the number of steps run.
func (s *Session) Frame(delta time.Duration, events []input.Event) int {
	for _, ev := range events {
		handler, ok := s.routes[ev.Kind]
		if !ok {
			log.Debug().Uint8("kind", uint8(ev.Kind)).Msg("no route for event")
			continue
		}
		handler(ev)
	}
	return s.Scheduler.Advance(delta, s.Engine)
}

func (s *Session) press(ev input.Event) {
	tick := s.Engine.Clock().Ticks
	judged := s.Engine.Input(ev.Lane)
	s.inputs = append(s.inputs, game.Input{Lane: ev.Lane, Tick: tick})
	if nil != s.OnJudge {
		s.OnJudge(ev, judged)
	}
}

// Done once every row is judged, or the player quit.
func (s *Session) Done() bool {
	return s.quit || s.Engine.Done()
}

func (s *Session) Quit() bool {
	return s.quit
}

// Inputs are all lane presses so far, in the order they were applied.
func (s *Session) Inputs() []game.Input {
	return append([]game.Input(nil), s.inputs...)
}

func (s *Session) Results() []judge.Result {
	return s.Engine.Results()
}

// Alpha is the fraction of a step to interpolate rendering by.
func (s *Session) Alpha() float64 {
	return s.Scheduler.Alpha()
}
