package score

import (
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"git.lost.host/meutraa/vbeat/internal/play"
	"github.com/google/uuid"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the inputs of this performance
	Save(chart *game.Chart, inputs []game.Input, settings Settings) (uuid.UUID, error)

	// Load up previous performances of the chart
	Load(chart *game.Chart) ([]History, error)

	Score(chart *game.Chart, history *History) (Score, error)
}

// Settings are everything besides the inputs that a replay depends on.
type Settings struct {
	Start    time.Duration
	Timestep time.Duration
	Good     time.Duration
	Great    time.Duration
	Policy   string
}

func NewSettings(timing play.Timing, cfg judge.Config) Settings {
	return Settings{
		Start:    timing.Start,
		Timestep: timing.Timestep,
		Good:     cfg.Good,
		Great:    cfg.Great,
		Policy:   cfg.Policy,
	}
}

func (s Settings) Clock() game.Clock {
	return game.NewClock(s.Start, s.Timestep)
}

func (s Settings) Config() judge.Config {
	cfg := judge.DefaultConfig()
	cfg.Good = s.Good
	cfg.Great = s.Great
	cfg.Policy = s.Policy
	return cfg
}

type History struct {
	ID       uuid.UUID
	Sum      string
	Played   time.Time
	Settings Settings
	Inputs   []game.Input
}

type Score struct {
	Counts     [3]int // Indexed by judge.Band
	MissCount  int
	Hits       int
	Combo      int // Current run of rows without a miss
	MaxCombo   int
	TotalError time.Duration
	Mean       float64 // ms, positive is early
	Stdev      float64 // ms
	Accuracy   float64 // percent
}
