package play

import (
	"fmt"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/judge"
)

// Replay judges a recorded play again. Inputs must be in the order they were
// recorded. The chart is run until every row is judged.
func Replay(chart *game.Chart, clock game.Clock, cfg judge.Config, inputs []game.Input) ([]judge.Result, error) {
	engine, err := judge.New(chart, clock, cfg)
	if nil != err {
		return nil, err
	}

	for i, in := range inputs {
		if i > 0 && in.Tick < inputs[i-1].Tick {
			return nil, fmt.Errorf("input %d at tick %d is before tick %d", i, in.Tick, inputs[i-1].Tick)
		}
		for engine.Clock().Ticks < in.Tick {
			engine.Tick()
		}
		engine.Input(in.Lane)
	}
	for !engine.Done() {
		engine.Tick()
	}
	return engine.Results(), nil
}
