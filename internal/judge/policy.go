package judge

import (
	"fmt"

	"git.lost.host/meutraa/vbeat/internal/game"
)

const (
	PolicyNearest = "nearest"
	PolicyAll     = "all"
)

// Policy chooses which window positions a lane press judges. Only unjudged
// candidates may be returned.
type Policy interface {
	Select(window []Candidate, chart *game.Chart, lane uint8, nowMs int64) []int
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyNearest, "":
		return NearestInLane{}, nil
	case PolicyAll:
		return AllPending{}, nil
	}
	return nil, &ConfigError{Field: "policy", Reason: fmt.Sprintf("unknown policy %q", name)}
}

// NearestInLane judges the single closest unjudged row that has a note in the
// pressed lane. On a tie the earlier row wins.
type NearestInLane struct{}

func (NearestInLane) Select(window []Candidate, chart *game.Chart, lane uint8, nowMs int64) []int {
	best := -1
	bestDistance := int64(0)
	for i, cand := range window {
		if cand.Hit {
			continue
		}
		row := chart.Row(cand.Row)
		if !row.Has(lane) {
			continue
		}
		d := int64(row.Ms) - nowMs
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDistance {
			best, bestDistance = i, d
		} else {
			// the window is ordered, so distances only grow from here
			break
		}
	}
	if best == -1 {
		return nil
	}
	return []int{best}
}

// AllPending judges every unjudged row in the window at once, whatever lane
// was pressed.
type AllPending struct{}

func (AllPending) Select(window []Candidate, _ *game.Chart, _ uint8, _ int64) []int {
	var selected []int
	for i, cand := range window {
		if !cand.Hit {
			selected = append(selected, i)
		}
	}
	return selected
}
