package score

import (
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"git.lost.host/meutraa/vbeat/internal/play"
	"git.lost.host/meutraa/vbeat/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openScorer(t *testing.T) *DefaultScorer {
	t.Helper()
	s := &DefaultScorer{}
	if err := s.Init(filepath.Join(t.TempDir(), "scores.db")); nil != err {
		t.Skip("sqlite unavailable:", err)
	}
	t.Cleanup(s.Deinit)
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openScorer(t)
	chart, err := testdata.GetChart()
	require.NoError(t, err)

	settings := NewSettings(play.DefaultTiming(), judge.DefaultConfig())
	inputs := []game.Input{{Lane: 1, Tick: 88}, {Lane: 4, Tick: 88}, {Lane: 3, Tick: 106}}
	id, err := s.Save(chart, inputs, settings)
	require.NoError(t, err)

	histories, err := s.Load(chart)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, id, histories[0].ID)
	assert.Equal(t, chart.Hash(), histories[0].Sum)
	assert.Equal(t, settings, histories[0].Settings)
	assert.Equal(t, inputs, histories[0].Inputs)

	other, err := game.NewChart([]game.NoteRow{{Ms: 1, Columns: 2}}, game.Difficulty{})
	require.NoError(t, err)
	histories, err = s.Load(other)
	require.NoError(t, err)
	assert.Empty(t, histories)
}

func TestScoreReplaysHistory(t *testing.T) {
	chart, err := testdata.GetChart()
	require.NoError(t, err)

	timing := play.DefaultTiming()
	history := &History{
		Settings: NewSettings(timing, judge.DefaultConfig()),
		// -1000ms + 90 steps is 499.99994ms, 1ms early on the first row
		Inputs: []game.Input{{Lane: 1, Tick: 90}, {Lane: 4, Tick: 90}},
	}

	score, err := (&DefaultScorer{}).Score(chart, history)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Hits)
	assert.Equal(t, chart.Len()-1, score.MissCount)
	assert.Equal(t, 1, score.Counts[judge.Great])
	assert.InDelta(t, 1.0, score.Mean, 1e-9)
}
