package parser

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

// DefaultBaseKey is middle C, the lowest key that becomes a lane.
const DefaultBaseKey = 60

// MidiParser reads a Standard MIDI File as a single 6key chart. Note ons
// from BaseKey up to BaseKey+5, on any track and channel, become lanes 0-5.
type MidiParser struct {
	BaseKey uint8
}

type tempoChange struct {
	tick uint64
	bpm  float64
}

type midiNote struct {
	tick uint64
	key  uint8
}

// tempoMap converts absolute ticks into song time.
type tempoMap struct {
	resolution smf.MetricTicks
	changes    []tempoChange
}

func (m tempoMap) at(tick uint64) time.Duration {
	var d time.Duration
	last, bpm := uint64(0), 120.0
	for _, c := range m.changes {
		if c.tick >= tick {
			break
		}
		d += m.resolution.Duration(bpm, uint32(c.tick-last))
		last, bpm = c.tick, c.bpm
	}
	return d + m.resolution.Duration(bpm, uint32(tick-last))
}

func (p *MidiParser) Parse(file string) (charts []*game.Chart, e error) {
	// smf can panic on malformed input
	defer func() {
		if r := recover(); r != nil {
			e = fmt.Errorf("unable to parse midi file %v: %v", file, r)
		}
	}()

	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if nil != err {
		return nil, fmt.Errorf("unable to parse midi file %v: %w", file, err)
	}
	resolution, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time midi files are supported")
	}

	tempos := tempoMap{resolution: resolution}
	notes := []midiNote{}
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)
			var bpm float64
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				tempos.changes = append(tempos.changes, tempoChange{tick: tick, bpm: bpm})
			case midi.Message(ev.Message).GetNoteStart(&channel, &key, &velocity):
				if key >= p.BaseKey && key < p.BaseKey+6 {
					notes = append(notes, midiNote{tick: tick, key: key})
				}
			}
		}
	}
	slices.SortStableFunc(tempos.changes, func(a, b tempoChange) bool { return a.tick < b.tick })
	slices.SortStableFunc(notes, func(a, b midiNote) bool { return a.tick < b.tick })

	difficulty := game.Difficulty{
		Name:  strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		Msd:   "-",
		NKeys: 6,
	}
	chart, err := game.NewChart(p.rows(tempos, notes), difficulty)
	if nil != err {
		return nil, err
	}
	return []*game.Chart{chart}, nil
}

func (p *MidiParser) rows(tempos tempoMap, notes []midiNote) []game.NoteRow {
	rows := []game.NoteRow{}
	for _, n := range notes {
		ms := math.Round(float64(tempos.at(n.tick)) / float64(time.Millisecond))
		rows = appendRow(rows, uint32(ms), 1<<(n.key-p.BaseKey))
	}
	return rows
}
