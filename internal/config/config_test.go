package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/input"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	dir := t.TempDir()
	c, err := Parse([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, dir, c.Directory)
	assert.Equal(t, -1, c.Difficulty)
	assert.Equal(t, 200*time.Millisecond, c.Judge.Good)
	assert.Equal(t, 50*time.Millisecond, c.Judge.Great)
	assert.Equal(t, judge.PolicyNearest, c.Judge.Policy)
	assert.Equal(t, -time.Second, c.Timing.Start)
	assert.Equal(t, time.Second/60, c.Timing.Timestep)
	assert.Equal(t, 3*c.Timing.Timestep, c.Timing.MaxDelta)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
}

func TestParseFlags(t *testing.T) {
	c, err := Parse([]string{
		t.TempDir(),
		"--good", "150ms",
		"--great", "30ms",
		"--policy", "all",
		"--tick-rate", "100",
		"--max-steps", "5",
		"--lead-in", "2s",
		"--log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, c.Judge.Good)
	assert.Equal(t, 30*time.Millisecond, c.Judge.Great)
	assert.Equal(t, judge.PolicyAll, c.Judge.Policy)
	assert.Equal(t, 10*time.Millisecond, c.Timing.Timestep)
	assert.Equal(t, 50*time.Millisecond, c.Timing.MaxDelta)
	assert.Equal(t, -2*time.Second, c.Timing.Start)
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel)
}

func TestParseRejectsGreatWiderThanGood(t *testing.T) {
	_, err := Parse([]string{t.TempDir(), "--good", "40ms", "--great", "50ms"})
	var cerr *judge.ConfigError
	require.True(t, errors.As(err, &cerr), "got %v", err)
	assert.Equal(t, "great", cerr.Field)
}

func TestParseRejectsBadTickRate(t *testing.T) {
	_, err := Parse([]string{t.TempDir(), "--tick-rate", "0"})
	var cerr *judge.ConfigError
	require.True(t, errors.As(err, &cerr), "got %v", err)
	assert.Equal(t, "tick-rate", cerr.Field)
}

func TestProfileOverridesFlags(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`
good: 180ms
great: 45ms
policy: all
keys-single: asjk
`), 0o644))

	c, err := Parse([]string{dir, "--profile", profile, "--good", "100ms"})
	require.NoError(t, err)
	assert.Equal(t, 180*time.Millisecond, c.Judge.Good)
	assert.Equal(t, 45*time.Millisecond, c.Judge.Great)
	assert.Equal(t, judge.PolicyAll, c.Judge.Policy)
	assert.Equal(t, []rune("asjk"), c.Keys(4))
	assert.Equal(t, []rune("sdfjkl"), c.Keys(6))
}

func TestKeymap(t *testing.T) {
	c, err := Parse([]string{t.TempDir()})
	require.NoError(t, err)

	km := c.Keymap(game.Difficulty{NKeys: 4})
	ev, ok := km.Event('d')
	assert.True(t, ok)
	assert.Equal(t, input.Lane(1), ev)
	ev, ok = km.Event('k')
	assert.True(t, ok)
	assert.Equal(t, input.Lane(4), ev)

	km = c.Keymap(game.Difficulty{NKeys: 6})
	ev, ok = km.Event('s')
	assert.True(t, ok)
	assert.Equal(t, input.Lane(0), ev)
}
