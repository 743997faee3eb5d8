package main

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/vbeat/internal/audio"
	"git.lost.host/meutraa/vbeat/internal/config"
	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/input"
	"git.lost.host/meutraa/vbeat/internal/parser"
	"git.lost.host/meutraa/vbeat/internal/score"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); nil != err {
		fmt.Fprintln(os.Stderr, err)
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) (func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if nil != err {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.Kitchen}).Level(cfg.LogLevel)
	return func() { f.Close() }, nil
}

// findSong looks for a chart and, optionally, the song audio in a directory.
func findSong(dir string) (chartFile, audioFile string, err error) {
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".sm":
			chartFile = p
		case ".mid", ".midi":
			if chartFile == "" {
				chartFile = p
			}
		}
		if audio.IsAudio(p) {
			audioFile = p
		}
		return nil
	})
	if nil != err {
		return "", "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if chartFile == "" {
		return "", "", errors.New("unable to find a .sm or .mid file in given directory")
	}
	return chartFile, audioFile, nil
}

func chooseChart(cfg *config.Config, charts []*game.Chart, src *input.Source) (*game.Chart, error) {
	if len(charts) == 0 {
		return nil, errors.New("no playable charts")
	}
	index := cfg.Difficulty
	if index < 0 {
		for i, c := range charts {
			fmt.Printf("%2v) %3v  %5v  %v\r\n", i, c.Difficulty.Msd, c.NoteCount(), c.Difficulty.Name)
		}
		r, err := src.Wait()
		if nil != err {
			return nil, err
		}
		i, err := strconv.Atoi(string(r))
		if nil != err {
			return nil, fmt.Errorf("not a chart index %q", r)
		}
		index = i
	}
	if index >= len(charts) {
		return nil, fmt.Errorf("no chart %v, there are %v", index, len(charts))
	}
	return charts[index], nil
}

func printHistory(scorer *score.DefaultScorer, chart *game.Chart) error {
	histories, err := scorer.Load(chart)
	if nil != err {
		return err
	}
	fmt.Printf("%v plays of %v\r\n", len(histories), chart.Difficulty.Name)
	for _, h := range histories {
		s, err := scorer.Score(chart, &h)
		if nil != err {
			log.Warn().Err(err).Str("id", h.ID.String()).Msg("unable to replay play")
			continue
		}
		fmt.Printf("%v  %v  %6.2f%%  combo %4v  miss %4v  mean %6.2fms  stdev %6.2fms\r\n",
			h.Played.Format(time.RFC3339), h.ID, s.Accuracy, s.MaxCombo, s.MissCount, s.Mean, s.Stdev)
	}
	return nil
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if nil != err {
		return err
	}
	defer closeLog()

	chartFile, audioFile, err := findSong(cfg.Directory)
	if nil != err {
		return err
	}
	psr, err := parser.ForFile(chartFile)
	if nil != err {
		return err
	}
	charts, err := psr.Parse(chartFile)
	if nil != err {
		return err
	}
	log.Info().Str("chart", chartFile).Int("charts", len(charts)).Msg("parsed charts")

	scorer := &score.DefaultScorer{}
	if err := scorer.Init(cfg.Database); nil != err {
		return err
	}
	defer scorer.Deinit()

	src, err := input.Open(nil, 128)
	if nil != err {
		return err
	}
	defer func() {
		if err := src.Close(); nil != err {
			log.Warn().Err(err).Msg("unable to close keyboard")
		}
	}()

	chart, err := chooseChart(cfg, charts, src)
	if nil != err {
		return err
	}
	if cfg.History {
		return printHistory(scorer, chart)
	}
	src.SetKeymap(cfg.Keymap(chart.Difficulty))

	var player *audio.Player
	if audioFile != "" {
		if player, err = audio.Open(audioFile); nil != err {
			return err
		}
		defer player.Close()
	} else {
		log.Warn().Msg("no audio found, playing silently")
	}

	p := &Program{
		Config: cfg,
		Chart:  chart,
		Source: src,
		Player: player,
		Scorer: scorer,
	}
	if err := p.Init(); nil != err {
		return err
	}
	return p.Run()
}
