package judge

type Band uint8

const (
	Miss Band = iota
	Good
	Great
)

// Bands in display order, best first.
var Bands = []Band{Great, Good, Miss}

func (b Band) String() string {
	switch b {
	case Great:
		return "Great"
	case Good:
		return "Good"
	}
	return "Miss"
}

// Candidate is a chart row that is, or was, inside the judging window.
type Candidate struct {
	Row    int   // Index into the chart
	Offset int64 // Row time minus the time of the input, in ms. Only set when Hit
	Hit    bool
}

type Result struct {
	Candidate
	Band Band
}

// Sprite places a row on screen. Offset is the distance above the receptors.
type Sprite struct {
	Row     int
	Columns uint8
	Offset  float64
}
