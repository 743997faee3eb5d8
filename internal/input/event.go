package input

// Kind tags what an Event carries.
type Kind uint8

const (
	KindLane Kind = iota // Lane is set
	KindQuit
)

type Event struct {
	Kind Kind
	Lane uint8
}

func Lane(lane uint8) Event {
	return Event{Kind: KindLane, Lane: lane}
}

func Quit() Event {
	return Event{Kind: KindQuit}
}

// Keymap turns key runes into lanes for one layout.
type Keymap map[rune]uint8

// NewKeymap assigns keys to lanes in order, so keys[i] presses lanes[i].
func NewKeymap(keys []rune, lanes []uint8) Keymap {
	km := make(Keymap, len(keys))
	for i, r := range keys {
		if i >= len(lanes) {
			break
		}
		km[r] = lanes[i]
	}
	return km
}

func (k Keymap) Event(r rune) (Event, bool) {
	lane, ok := k[r]
	if !ok {
		return Event{}, false
	}
	return Lane(lane), true
}
