package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

const sm = `#TITLE:Test;
#OFFSET:-0.100;
#BPMS:0.000=120.000,
8.000=240.000;
#NOTES:
     dance-single:
     :
     Beginner:
     1:
     0,0,0,0,0:
1000
0100
0000
1001
,  // measure 2
M000
2000
3000
0110
,
1000
0000
0000
0000
;
#NOTES:
     dance-double:
     :
     Hard:
     9:
     0,0,0,0,0:
10000000
00000000
00000000
00000001
;
#NOTES:
     dance-solo:
     :
     Medium:
     4:
     0,0,0,0,0:
100001
000000
000000
010000
;
`

func TestParse(t *testing.T) {
	p := DefaultParser{}
	charts, err := p.parse(sm)
	require.NoError(t, err)
	require.Len(t, charts, 2)

	single := charts[0]
	assert.Equal(t, "Beginner", single.Difficulty.Name)
	assert.Equal(t, uint8(4), single.Difficulty.NKeys)
	assert.Equal(t, []game.NoteRow{
		{Ms: 100, Columns: 0b00010},
		{Ms: 600, Columns: 0b00100},
		{Ms: 1600, Columns: 0b10010},
		{Ms: 2600, Columns: 0b00010},
		{Ms: 3600, Columns: 0b01100},
		{Ms: 4100, Columns: 0b00010},
	}, single.Rows())

	solo := charts[1]
	assert.Equal(t, "Medium", solo.Difficulty.Name)
	assert.Equal(t, []game.NoteRow{
		{Ms: 100, Columns: 0b100001},
		{Ms: 1600, Columns: 0b000010},
	}, solo.Rows())
}

func TestParseBpmChange(t *testing.T) {
	p := DefaultParser{}
	charts, err := p.parse(`#OFFSET:0;
#BPMS:0=60,4=120;
#NOTES:
     dance-single:
     :
     Easy:
     1:
     0,0,0,0,0:
1000
0000
0000
0000
,
1000
0100
0010
0001
;
`)
	require.NoError(t, err)
	require.Len(t, charts, 1)
	assert.Equal(t, []game.NoteRow{
		{Ms: 0, Columns: 0b00010},
		{Ms: 4000, Columns: 0b00010},
		{Ms: 4500, Columns: 0b00100},
		{Ms: 5000, Columns: 0b01000},
		{Ms: 5500, Columns: 0b10000},
	}, charts[0].Rows())
}

func TestParseRejectsNotesBeforeStart(t *testing.T) {
	p := DefaultParser{}
	_, err := p.parse(`#OFFSET:0.5;
#BPMS:0=120;
#NOTES:
     dance-single:
     :
     Easy:
     1:
     0,0,0,0,0:
1000
0000
0000
0000
;
`)
	var cerr *game.ChartError
	assert.True(t, errors.As(err, &cerr), "got %v", err)
}

func TestParseRequiresBpm(t *testing.T) {
	p := DefaultParser{}
	_, err := p.parse("#OFFSET:0;\n")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.sm")
	require.NoError(t, os.WriteFile(file, []byte(sm), 0o644))

	p, err := ForFile(file)
	require.NoError(t, err)
	charts, err := p.Parse(file)
	require.NoError(t, err)
	assert.Len(t, charts, 2)

	_, err = ForFile("song.ogg")
	assert.Error(t, err)
}

func TestTempoMap(t *testing.T) {
	m := tempoMap{
		resolution: smf.MetricTicks(960),
		changes:    []tempoChange{{tick: 0, bpm: 120}, {tick: 1920, bpm: 60}},
	}
	assert.Equal(t, time.Duration(0), m.at(0))
	assert.Equal(t, 500*time.Millisecond, m.at(960))
	assert.Equal(t, time.Second, m.at(1920))
	assert.Equal(t, 2*time.Second, m.at(2880))
}

func TestMidiRows(t *testing.T) {
	p := MidiParser{BaseKey: DefaultBaseKey}
	m := tempoMap{resolution: smf.MetricTicks(960)}
	rows := p.rows(m, []midiNote{
		{tick: 0, key: 60},
		{tick: 0, key: 65},
		{tick: 480, key: 61},
		{tick: 960, key: 61},
	})
	assert.Equal(t, []game.NoteRow{
		{Ms: 0, Columns: 0b100001},
		{Ms: 250, Columns: 0b000010},
		{Ms: 500, Columns: 0b000010},
	}, rows)
}
