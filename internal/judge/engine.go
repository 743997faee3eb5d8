package judge

import (
	"fmt"

	"git.lost.host/meutraa/vbeat/internal/game"
	"github.com/rs/zerolog/log"
)

// Engine slides a judging window over a chart one fixed step at a time.
//
// Every row moves through three states. It is scheduled while it is later
// than now+Good, windowed while it is within Good of now, and judged once
// it falls behind now-Good and is moved to the results log. Each row reaches
// the log exactly once.
type Engine struct {
	chart  *game.Chart
	clock  game.Clock
	cfg    Config
	policy Policy

	next    int // First chart row not yet admitted
	window  []Candidate
	results []Result
	visible []Sprite
}

func New(chart *game.Chart, clock game.Clock, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); nil != err {
		return nil, err
	}
	if clock.Step <= 0 {
		return nil, &ConfigError{Field: "timestep", Reason: fmt.Sprintf("%v must be positive", clock.Step)}
	}
	policy, err := PolicyByName(cfg.Policy)
	if nil != err {
		return nil, err
	}

	e := &Engine{
		chart:   chart,
		clock:   clock,
		cfg:     cfg,
		policy:  policy,
		results: make([]Result, 0, chart.Len()),
	}
	e.place()
	return e, nil
}

// SetPolicy replaces the configured input policy.
func (e *Engine) SetPolicy(p Policy) {
	e.policy = p
}

// Tick advances the clock by exactly one step and updates the window.
func (e *Engine) Tick() {
	e.clock.Advance()

	now := e.clock.Ms()
	good := e.cfg.Good.Milliseconds()
	earliest, latest := now-good, now+good

	// Send anything out of range into the final results
	for len(e.window) > 0 && e.rowMs(e.window[0].Row) < earliest {
		e.finish(e.window[0])
		e.window = e.window[1:]
	}

	// Add anything ahead in range to the window
	for e.next < e.chart.Len() {
		ms := e.rowMs(e.next)
		if ms >= latest {
			break
		}
		cand := Candidate{Row: e.next}
		e.next++
		if ms < earliest {
			// Stepped over without ever being judgable. Only possible when
			// Good is shorter than a step, and the window is empty then.
			e.finish(cand)
			continue
		}
		e.push(cand)
	}

	e.place()
}

// Input applies a lane press at the current simulation time. Pressing with
// an empty window does nothing. The candidates that were judged are returned.
func (e *Engine) Input(lane uint8) []Candidate {
	if len(e.window) == 0 {
		return nil
	}

	now := e.clock.Ms()
	var judged []Candidate
	for _, i := range e.policy.Select(e.window, e.chart, lane, now) {
		cand := &e.window[i]
		if cand.Hit {
			panic(fmt.Sprintf("judge: policy %T selected row %d twice", e.policy, cand.Row))
		}
		cand.Offset = e.rowMs(cand.Row) - now
		cand.Hit = true
		judged = append(judged, *cand)
		log.Debug().Int("row", cand.Row).Int64("offset", cand.Offset).Uint8("lane", lane).Msg("hit")
	}
	if len(judged) > 0 {
		e.place()
	}
	return judged
}

func (e *Engine) push(cand Candidate) {
	if n := len(e.window); n > 0 {
		back := e.window[n-1]
		if back.Row >= cand.Row || e.rowMs(back.Row) > e.rowMs(cand.Row) {
			panic(fmt.Sprintf("judge: row %d admitted after row %d", cand.Row, back.Row))
		}
	}
	e.window = append(e.window, cand)
}

func (e *Engine) finish(cand Candidate) {
	band := e.cfg.Classify(cand)
	if band == Miss {
		log.Debug().Int("row", cand.Row).Uint32("ms", e.chart.Row(cand.Row).Ms).Msg("miss")
	}
	e.results = append(e.results, Result{Candidate: cand, Band: band})
}

// place rebuilds the render set. Rows that have scrolled past the receptors
// are left out but stay in the window until they expire.
func (e *Engine) place() {
	e.visible = e.visible[:0]
	now := e.clock.Now()
	horizon := now + e.cfg.Lookahead

	add := func(i int) bool {
		row := e.chart.Row(i)
		if row.Time() > horizon {
			return false
		}
		offset := (row.Time() - now).Seconds() * e.cfg.ScrollSpeed
		if offset >= 0 {
			e.visible = append(e.visible, Sprite{Row: i, Columns: row.Columns, Offset: offset})
		}
		return true
	}

	for _, cand := range e.window {
		if cand.Hit {
			continue
		}
		if !add(cand.Row) {
			return
		}
	}
	for i := e.next; i < e.chart.Len(); i++ {
		if !add(i) {
			return
		}
	}
}

func (e *Engine) rowMs(i int) int64 {
	return int64(e.chart.Row(i).Ms)
}

// Interpolate moves a sprite forward by a fraction of a step, for drawing
// between ticks.
func (e *Engine) Interpolate(s Sprite, alpha float64) float64 {
	return s.Offset - alpha*e.clock.Step.Seconds()*e.cfg.ScrollSpeed
}

// Done is true once every row of the chart has been judged.
func (e *Engine) Done() bool {
	return e.next == e.chart.Len() && len(e.window) == 0
}

func (e *Engine) Window() []Candidate {
	return append([]Candidate(nil), e.window...)
}

func (e *Engine) Results() []Result {
	return append([]Result(nil), e.results...)
}

// Visible is the render set as of the last tick or input.
func (e *Engine) Visible() []Sprite {
	return append([]Sprite(nil), e.visible...)
}

func (e *Engine) Clock() game.Clock {
	return e.clock
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Chart() *game.Chart {
	return e.chart
}
