package judge

import (
	"fmt"
	"time"
)

// ConfigError rejects judging thresholds before a session starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid judge config: %s: %s", e.Field, e.Reason)
}

type Config struct {
	// Good is the half width of the judgable window. Anything further from
	// now than this can not be hit.
	Good time.Duration
	// Great is the half width of the tight accuracy band, Great <= Good.
	Great time.Duration
	// ScrollSpeed is screen units travelled per second of song time.
	ScrollSpeed float64
	// Lookahead is how far past now rows are put in the render set.
	Lookahead time.Duration
	// Policy names the rule for choosing which candidates an input judges.
	Policy string
}

func DefaultConfig() Config {
	return Config{
		Good:        200 * time.Millisecond,
		Great:       50 * time.Millisecond,
		ScrollSpeed: 32 * 4,
		Lookahead:   2 * time.Second,
		Policy:      PolicyNearest,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Good < time.Millisecond:
		return &ConfigError{Field: "good", Reason: fmt.Sprintf("%v must be at least 1ms", c.Good)}
	case c.Great < 0:
		return &ConfigError{Field: "great", Reason: fmt.Sprintf("%v is negative", c.Great)}
	case c.Great > c.Good:
		return &ConfigError{Field: "great", Reason: fmt.Sprintf("%v is wider than good %v", c.Great, c.Good)}
	case c.ScrollSpeed <= 0:
		return &ConfigError{Field: "scroll-speed", Reason: fmt.Sprintf("%v must be positive", c.ScrollSpeed)}
	case c.Lookahead < 0:
		return &ConfigError{Field: "lookahead", Reason: fmt.Sprintf("%v is negative", c.Lookahead)}
	}
	if _, err := PolicyByName(c.Policy); nil != err {
		return err
	}
	return nil
}

// Classify buckets a finished candidate.
func (c Config) Classify(cand Candidate) Band {
	if !cand.Hit {
		return Miss
	}
	d := cand.Offset
	if d < 0 {
		d = -d
	}
	switch {
	case d <= c.Great.Milliseconds():
		return Great
	case d <= c.Good.Milliseconds():
		return Good
	}
	return Miss
}
