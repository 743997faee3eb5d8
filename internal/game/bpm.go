package game

type BPM struct {
	StartingBeat float64
	Value        float64
}
