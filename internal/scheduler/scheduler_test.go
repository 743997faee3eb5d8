package scheduler

import (
	"errors"
	"testing"
	"time"

	"git.lost.host/meutraa/vbeat/internal/judge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter int

func (c *counter) Tick() {
	*c++
}

const step = time.Second / 60

func TestNewRejectsBadTiming(t *testing.T) {
	var cerr *judge.ConfigError

	_, err := New(0, step)
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "timestep", cerr.Field)

	_, err = New(step, step/2)
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "max-delta", cerr.Field)
}

func TestAdvanceClampsLongFrames(t *testing.T) {
	s, err := New(step, 3*step)
	require.NoError(t, err)

	var c counter
	n := s.Advance(10*time.Second, &c)
	assert.Equal(t, 3, n)
	assert.Equal(t, counter(3), c)
	assert.Equal(t, time.Duration(0), s.Lag())
}

func TestAdvanceAccumulatesLag(t *testing.T) {
	s, err := New(10*time.Millisecond, 30*time.Millisecond)
	require.NoError(t, err)

	var c counter
	assert.Equal(t, 0, s.Advance(4*time.Millisecond, &c))
	assert.InDelta(t, 0.4, s.Alpha(), 1e-9)
	assert.Equal(t, 1, s.Advance(7*time.Millisecond, &c))
	assert.Equal(t, time.Millisecond, s.Lag())
	assert.InDelta(t, 0.1, s.Alpha(), 1e-9)
	assert.Equal(t, 2, s.Advance(19*time.Millisecond, &c))
	assert.Equal(t, uint64(3), s.Ticks())
	assert.Equal(t, counter(3), c)
	assert.Equal(t, 10*time.Millisecond, s.Peak())
}

func TestAdvanceIgnoresNegativeDelta(t *testing.T) {
	s, err := New(step, 3*step)
	require.NoError(t, err)

	var c counter
	assert.Equal(t, 0, s.Advance(-time.Second, &c))
	assert.Equal(t, time.Duration(0), s.Lag())
	assert.Equal(t, 0.0, s.Alpha())
}

func TestAdvanceNeverExceedsMaxSteps(t *testing.T) {
	deltas := []time.Duration{
		0, 1, step - 1, step, step + 1, 2 * step, 3*step - 1, 3 * step, 3*step + 1,
		time.Second, time.Hour, 7 * time.Millisecond, 49 * time.Millisecond,
	}
	for _, maxDelta := range []time.Duration{step, 2*step + 5, 3 * step, 10 * step} {
		s, err := New(step, maxDelta)
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			for _, d := range deltas {
				var c counter
				n := s.Advance(d, &c)
				assert.LessOrEqual(t, n, s.MaxSteps(), "max %v delta %v", maxDelta, d)
				assert.GreaterOrEqual(t, s.Alpha(), 0.0)
				assert.Less(t, s.Alpha(), 1.0)
			}
		}
	}
}
