package game

import "time"

// Clock is the simulation time base. It only moves in whole steps, so any
// number of runs with the same steps land on exactly the same times.
type Clock struct {
	Start time.Duration // Song time before the first step, negative for a lead in
	Step  time.Duration
	Ticks uint64
}

func NewClock(start, step time.Duration) Clock {
	return Clock{Start: start, Step: step}
}

func (c *Clock) Advance() {
	c.Ticks++
}

func (c Clock) Now() time.Duration {
	return c.Start + time.Duration(c.Ticks)*c.Step
}

// Ms is the song time in whole milliseconds, truncated toward zero
func (c Clock) Ms() int64 {
	return c.Now().Milliseconds()
}

func (c Clock) Seconds() float64 {
	return c.Now().Seconds()
}
