package game

type Difficulty struct {
	Name    string
	Msd     string
	Section string
	NKeys   uint8
}

// Only layouts that fit in the note bits of a row
var NKeyMap = map[string]uint8{
	"dance-single": 4,
	"dance-solo":   6,
}

// Lane converts a chart column into a row bit index.
// 4key charts use the middle lanes so both layouts share bits 1-4.
func (d Difficulty) Lane(column int) uint8 {
	if d.NKeys == 4 {
		return uint8(column + 1)
	}
	return uint8(column)
}

// Lanes are the row bits this layout can contain, in column order.
func (d Difficulty) Lanes() []uint8 {
	lanes := make([]uint8, d.NKeys)
	for i := range lanes {
		lanes[i] = d.Lane(i)
	}
	return lanes
}
