package game

// Input is a lane press, stamped with the simulation tick it was judged on.
type Input struct {
	Lane uint8
	Tick uint64
}
