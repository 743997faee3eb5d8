package input

import (
	"fmt"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog/log"
)

// Source collects key presses from the terminal. Presses queue up between
// frames and are drained once per frame.
type Source struct {
	keymap Keymap
	keys   <-chan keyboard.KeyEvent
}

func Open(keymap Keymap, buffer int) (*Source, error) {
	keys, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return &Source{keymap: keymap, keys: keys}, nil
}

func (s *Source) SetKeymap(keymap Keymap) {
	s.keymap = keymap
}

// Drain returns every event queued since the last call without blocking.
func (s *Source) Drain() []Event {
	var events []Event
	for {
		select {
		case key, ok := <-s.keys:
			if !ok {
				return append(events, Quit())
			}
			if ev, ok := s.translate(key); ok {
				events = append(events, ev)
			}
		default:
			return events
		}
	}
}

// Wait blocks for the next key rune, for menus outside of play.
func (s *Source) Wait() (rune, error) {
	key, ok := <-s.keys
	if !ok {
		return 0, fmt.Errorf("keyboard closed")
	}
	if nil != key.Err {
		return 0, key.Err
	}
	if key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC {
		return 0, fmt.Errorf("cancelled")
	}
	return key.Rune, nil
}

func (s *Source) translate(key keyboard.KeyEvent) (Event, bool) {
	if nil != key.Err {
		log.Warn().Err(key.Err).Msg("unable to read keyboard input")
		return Event{}, false
	}
	switch key.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Quit(), true
	case keyboard.KeySpace:
		return s.keymap.Event(' ')
	}
	return s.keymap.Event(key.Rune)
}

func (s *Source) Close() error {
	return keyboard.Close()
}
