package testdata

import (
	"encoding/json"

	"git.lost.host/meutraa/vbeat/internal/game"
)

type chart struct {
	Difficulty game.Difficulty
	Rows       []game.NoteRow
}

func GetChart() (*game.Chart, error) {
	var c chart
	if err := json.Unmarshal([]byte(data), &c); nil != err {
		return nil, err
	}
	return game.NewChart(c.Rows, c.Difficulty)
}
