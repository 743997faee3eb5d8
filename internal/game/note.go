package game

import (
	"math/bits"
	"time"
)

/*
 * Columns is a bitfield.
 * 76543210
 * ||||||||
 * |||||||+-- lane 0 (6key only)
 * |||++++--- lanes 1-4
 * ||+------- lane 5 (6key only)
 * ++-------- holds, reserved
 */
const (
	Note4Mask uint8 = 0x1E
	Note6Mask uint8 = 0x3F
	HoldMask  uint8 = 0xC0

	// NoteMask covers every lane that can be judged
	NoteMask = Note6Mask
)

// NoteRow is every note that shares a single timestamp.
type NoteRow struct {
	Ms      uint32 // The time the row should be hit, from the start of the song
	Columns uint8  // Which lanes have a note at this time
}

func (r NoteRow) Has(lane uint8) bool {
	return lane < 8 && r.Columns&(1<<lane) != 0
}

// Lanes lists the judgeable lanes in this row, lowest first.
func (r NoteRow) Lanes() []uint8 {
	lanes := make([]uint8, 0, bits.OnesCount8(r.Columns&NoteMask))
	for i := uint8(0); i < 6; i++ {
		if r.Has(i) {
			lanes = append(lanes, i)
		}
	}
	return lanes
}

func (r NoteRow) NoteCount() int {
	return bits.OnesCount8(r.Columns & NoteMask)
}

func (r NoteRow) Time() time.Duration {
	return time.Duration(r.Ms) * time.Millisecond
}
