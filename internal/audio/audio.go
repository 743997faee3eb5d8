// Package audio plays the song behind a chart. Playback follows the
// simulation clock, it never drives it.
package audio

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog/log"
)

// Extensions that Open can decode
var Extensions = []string{".ogg", ".mp3", ".wav"}

func IsAudio(file string) bool {
	ext := strings.ToLower(path.Ext(file))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	started  bool
}

func Open(file string) (*Player, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(path.Ext(file)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		err = fmt.Errorf("unsupported audio file %v", file)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}
	log.Info().Str("file", file).Int("rate", int(format.SampleRate)).Msg("opened audio")
	return &Player{streamer: streamer, format: format}, nil
}

// Sync starts playback the first time the song time reaches zero. Starting
// late seeks to the song time instead.
func (p *Player) Sync(songTime time.Duration) {
	if p.started || songTime < 0 {
		return
	}
	p.started = true
	if pos := p.format.SampleRate.N(songTime); pos > 0 && pos < p.streamer.Len() {
		if err := p.streamer.Seek(pos); nil != err {
			log.Warn().Err(err).Msg("unable to seek audio")
		}
	}
	speaker.Play(p.streamer)
}

func (p *Player) Close() error {
	speaker.Clear()
	return p.streamer.Close()
}
