package config

import (
	"fmt"
	"os"
	"time"

	"git.lost.host/meutraa/vbeat/internal/game"
	"git.lost.host/meutraa/vbeat/internal/input"
	"git.lost.host/meutraa/vbeat/internal/judge"
	"git.lost.host/meutraa/vbeat/internal/play"
	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

const Version = "0.3.0"

type Config struct {
	Directory   string
	Difficulty  int // -1 asks before playing
	Judge       judge.Config
	Timing      play.Timing
	FramePeriod time.Duration
	BarRow      int
	Spacing     int
	Database    string
	LogFile     string
	LogLevel    zerolog.Level
	History     bool

	keys map[uint8][]rune
}

// Profile overrides flags from a yaml file. Zero values are ignored.
type Profile struct {
	Good        time.Duration `yaml:"good"`
	Great       time.Duration `yaml:"great"`
	ScrollSpeed float64       `yaml:"scroll-speed"`
	Lookahead   time.Duration `yaml:"lookahead"`
	Policy      string        `yaml:"policy"`
	TickRate    float64       `yaml:"tick-rate"`
	LeadIn      time.Duration `yaml:"lead-in"`
	KeysSingle  string        `yaml:"keys-single"`
	KeysSolo    string        `yaml:"keys-solo"`
}

func LoadProfile(file string) (*Profile, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); nil != err {
		return nil, fmt.Errorf("unable to parse profile %v: %w", file, err)
	}
	return &p, nil
}

func Parse(args []string) (*Config, error) {
	app := kingpin.New("vbeat", "Fixed step rhythm game")
	app.Version(Version)

	var (
		directory   = app.Arg("directory", "Song/chart directory").Required().ExistingDir()
		difficulty  = app.Flag("difficulty", "Chart index to play, asks if unset").Default("-1").Short('c').Int()
		good        = app.Flag("good", "Half width of the judging window").Default("200ms").Short('g').Duration()
		great       = app.Flag("great", "Half width of the great band").Default("50ms").Short('G').Duration()
		policy      = app.Flag("policy", "Which notes a key press judges").Default(judge.PolicyNearest).Enum(judge.PolicyNearest, judge.PolicyAll)
		scrollSpeed = app.Flag("scroll-speed", "Rows scrolled per second").Default("16").Short('s').Float64()
		lookahead   = app.Flag("lookahead", "How far ahead notes are shown").Default("2s").Duration()
		tickRate    = app.Flag("tick-rate", "Simulation steps per second").Default("60").Short('t').Float64()
		maxSteps    = app.Flag("max-steps", "Most steps simulated in a single frame").Default("3").Int()
		leadIn      = app.Flag("lead-in", "Time before the song starts").Default("1s").Short('d').Duration()
		framePeriod = app.Flag("frame-period", "Render frame period").Default("4ms").Short('p').Duration()
		barRow      = app.Flag("bar-row", "Rows from the bottom to render the receptors").Default("4").Int()
		spacing     = app.Flag("spacing", "Columns between lanes").Default("6").Short('S').Int()
		keys4       = app.Flag("keys-single", "Keys for 4k").Default("dfjk").Short('k').String()
		keys6       = app.Flag("keys-solo", "Keys for 6k").Default("sdfjkl").String()
		database    = app.Flag("db", "Score database").Default("scores.db").String()
		logFile     = app.Flag("log-file", "Log output").Default("vbeat.log").String()
		logLevel    = app.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")
		profile     = app.Flag("profile", "Yaml profile overriding flags").ExistingFile()
		history     = app.Flag("history", "List previous plays of the chart instead of playing").Bool()
	)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	if "" != *profile {
		p, err := LoadProfile(*profile)
		if nil != err {
			return nil, err
		}
		overrideDuration(good, p.Good)
		overrideDuration(great, p.Great)
		overrideDuration(lookahead, p.Lookahead)
		overrideDuration(leadIn, p.LeadIn)
		overrideFloat(scrollSpeed, p.ScrollSpeed)
		overrideFloat(tickRate, p.TickRate)
		overrideString(policy, p.Policy)
		overrideString(keys4, p.KeysSingle)
		overrideString(keys6, p.KeysSolo)
	}

	if *tickRate <= 0 {
		return nil, &judge.ConfigError{Field: "tick-rate", Reason: fmt.Sprintf("%v must be positive", *tickRate)}
	}
	if *maxSteps < 1 {
		return nil, &judge.ConfigError{Field: "max-steps", Reason: fmt.Sprintf("%v must be at least 1", *maxSteps)}
	}
	level, err := zerolog.ParseLevel(*logLevel)
	if nil != err {
		return nil, err
	}

	step := time.Duration(float64(time.Second) / *tickRate)
	c := &Config{
		Directory:  *directory,
		Difficulty: *difficulty,
		Judge: judge.Config{
			Good:        *good,
			Great:       *great,
			ScrollSpeed: *scrollSpeed,
			Lookahead:   *lookahead,
			Policy:      *policy,
		},
		Timing: play.Timing{
			Start:    -*leadIn,
			Timestep: step,
			MaxDelta: time.Duration(*maxSteps) * step,
		},
		FramePeriod: *framePeriod,
		BarRow:      *barRow,
		Spacing:     *spacing,
		Database:    *database,
		LogFile:     *logFile,
		LogLevel:    level,
		History:     *history,
		keys: map[uint8][]rune{
			4: []rune(*keys4),
			6: []rune(*keys6),
		},
	}
	if err := c.Judge.Validate(); nil != err {
		return nil, err
	}
	return c, nil
}

func (c *Config) Keys(nKeys uint8) []rune {
	if keys, ok := c.keys[nKeys]; ok {
		return keys
	}
	return c.keys[4]
}

// Keymap binds the configured keys to the lanes of a chart layout.
func (c *Config) Keymap(d game.Difficulty) input.Keymap {
	return input.NewKeymap(c.Keys(d.NKeys), d.Lanes())
}

func overrideDuration(flag *time.Duration, v time.Duration) {
	if v != 0 {
		*flag = v
	}
}

func overrideFloat(flag *float64, v float64) {
	if v != 0 {
		*flag = v
	}
}

func overrideString(flag *string, v string) {
	if v != "" {
		*flag = v
	}
}
