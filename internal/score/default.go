package score

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"git.lost.host/meutraa/vbeat/internal/play"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

type DefaultScorer struct {
	db *sql.DB
}

// InputsCompact is a run of consecutive presses in one lane.
type InputsCompact struct {
	Lane  uint8
	Ticks []uint64
}

func compactInputs(inputs []game.Input) []InputsCompact {
	ins := []InputsCompact{}
	for _, i := range inputs {
		if n := len(ins); n > 0 && ins[n-1].Lane == i.Lane {
			ins[n-1].Ticks = append(ins[n-1].Ticks, i.Tick)
			continue
		}
		ins = append(ins, InputsCompact{Lane: i.Lane, Ticks: []uint64{i.Tick}})
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Ticks {
			ins = append(ins, game.Input{Lane: i.Lane, Tick: t})
		}
	}
	return ins
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists plays
	  (
		  id text not null primary key,
		  sum text not null,
		  played integer not null,
		  settings text not null,
		  inputs blob not null
	  );
	create index if not exists plays_sum on plays(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create score tables: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			log.Warn().Err(err).Msg("unable to close score database")
		}
		s.db = nil
	}
}

func (s *DefaultScorer) Save(c *game.Chart, inputs []game.Input, settings Settings) (uuid.UUID, error) {
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return uuid.Nil, fmt.Errorf("unable to marshal inputs: %w", err)
	}
	st, err := json.Marshal(settings)
	if nil != err {
		return uuid.Nil, fmt.Errorf("unable to marshal settings: %w", err)
	}

	id := uuid.New()
	_, err = s.db.Exec(
		"insert into plays(id, sum, played, settings, inputs) values(?, ?, ?, ?, ?)",
		id.String(), c.Hash(), time.Now().Unix(), string(st), data,
	)
	if nil != err {
		return uuid.Nil, fmt.Errorf("unable to save play: %w", err)
	}
	log.Info().Str("id", id.String()).Int("inputs", len(inputs)).Msg("saved play")
	return id, nil
}

func (s *DefaultScorer) Load(c *game.Chart) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query("select id, sum, played, settings, inputs from plays where sum = ? order by played", c.Hash())
	if nil != err {
		return histories, fmt.Errorf("unable to load plays: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, sum, settings string
		var played int64
		var data []byte
		if err := rows.Scan(&id, &sum, &played, &settings, &data); nil != err {
			return histories, fmt.Errorf("unable to read play: %w", err)
		}
		h := History{Sum: sum, Played: time.Unix(played, 0)}
		if h.ID, err = uuid.Parse(id); nil != err {
			log.Warn().Err(err).Str("id", id).Msg("skipping play with bad id")
			continue
		}
		if err := json.Unmarshal([]byte(settings), &h.Settings); nil != err {
			log.Warn().Err(err).Str("id", id).Msg("unable to unmarshal play settings")
			continue
		}
		var ins []InputsCompact
		if err := json.Unmarshal(data, &ins); nil != err {
			log.Warn().Err(err).Str("id", id).Msg("unable to unmarshal input history")
			continue
		}
		h.Inputs = uncompactInputs(ins)
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

// Score judges a previous play again and tallies it.
func (s *DefaultScorer) Score(c *game.Chart, history *History) (Score, error) {
	results, err := play.Replay(c, history.Settings.Clock(), history.Settings.Config(), history.Inputs)
	if nil != err {
		return Score{}, err
	}
	return Tally(results), nil
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Tally reduces a results log in chart order to a score.
func Tally(results []judge.Result) Score {
	var score Score
	sumOfDistance := 0.0
	for _, r := range results {
		score.Counts[r.Band]++
		if r.Band == judge.Miss {
			score.MissCount++
			score.Combo = 0
			continue
		}
		score.Hits++
		score.Combo++
		if score.Combo > score.MaxCombo {
			score.MaxCombo = score.Combo
		}
		score.TotalError += time.Duration(abs(r.Offset)) * time.Millisecond
		sumOfDistance += float64(r.Offset)
	}

	if score.Hits > 0 {
		score.Mean = sumOfDistance / float64(score.Hits)
	}
	if score.Hits > 1 {
		for _, r := range results {
			if r.Band == judge.Miss {
				continue
			}
			xi := float64(r.Offset) - score.Mean
			score.Stdev += xi * xi
		}
		score.Stdev /= float64(score.Hits - 1)
		score.Stdev = math.Sqrt(score.Stdev)
	}
	if len(results) > 0 {
		points := float64(score.Counts[judge.Great]) + float64(score.Counts[judge.Good])/2
		score.Accuracy = 100 * points / float64(len(results))
	}
	return score
}
