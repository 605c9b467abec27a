// Package config resolves game settings from defaults, a .env file, BOUNCE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "BOUNCE_"

// Config holds every tunable of the game and its hosts.
type Config struct {
	Width   float64
	Height  float64
	Columns int
	Rows    int

	PlayerRadius   float64
	MonsterRadius  float64
	PlayerInset    float64
	JitterDivisor  float64
	MonsterDamping float64
	VelocityScale  float64

	TransitionDuration time.Duration
	RestartDelay       time.Duration
	TPS                int

	MusicPath string
	Muted     bool
	Debug     bool
	Seed      int64
	EnvFile   string
}

// Default returns the stock arena: a 10x10 field on a 1024x768 board.
func Default() Config {
	return Config{
		Width:   1024,
		Height:  768,
		Columns: 10,
		Rows:    10,

		PlayerRadius:   40,
		MonsterRadius:  20,
		PlayerInset:    100,
		JitterDivisor:  30,
		MonsterDamping: 0.1,
		VelocityScale:  0.5,

		TransitionDuration: 500 * time.Millisecond,
		RestartDelay:       3 * time.Second,
		TPS:                60,

		EnvFile: ".env",
	}
}

// MonsterCount is the number of monsters a fresh arena spawns.
func (c Config) MonsterCount() int {
	return c.Columns * c.Rows
}

// TickSeconds is the fixed simulation step.
func (c Config) TickSeconds() float64 {
	return 1 / float64(c.TPS)
}

type field struct {
	name  string
	usage string
	ptr   func(c *Config) any
}

var fields = []field{
	{"width", "arena width in world units", func(c *Config) any { return &c.Width }},
	{"height", "arena height in world units", func(c *Config) any { return &c.Height }},
	{"columns", "monster grid columns", func(c *Config) any { return &c.Columns }},
	{"rows", "monster grid rows", func(c *Config) any { return &c.Rows }},
	{"player-radius", "player circle radius", func(c *Config) any { return &c.PlayerRadius }},
	{"monster-radius", "monster circle radius", func(c *Config) any { return &c.MonsterRadius }},
	{"player-inset", "distance of the player from the right edge", func(c *Config) any { return &c.PlayerInset }},
	{"jitter-divisor", "monster vertical jitter is height divided by this; 0 disables it", func(c *Config) any { return &c.JitterDivisor }},
	{"monster-damping", "monster linear damping", func(c *Config) any { return &c.MonsterDamping }},
	{"velocity-scale", "fraction of the gesture velocity added to the player", func(c *Config) any { return &c.VelocityScale }},
	{"transition", "scene flip duration", func(c *Config) any { return &c.TransitionDuration }},
	{"restart-delay", "time on the game over screen before a new game", func(c *Config) any { return &c.RestartDelay }},
	{"tps", "simulation ticks per second", func(c *Config) any { return &c.TPS }},
	{"music", "background music file (.ogg, .wav or .mp3); empty uses the built-in track", func(c *Config) any { return &c.MusicPath }},
	{"muted", "disable all audio", func(c *Config) any { return &c.Muted }},
	{"debug", "show the debug overlay", func(c *Config) any { return &c.Debug }},
	{"seed", "random seed for monster placement; 0 picks one from the clock", func(c *Config) any { return &c.Seed }},
	{"env", "path of the .env file", func(c *Config) any { return &c.EnvFile }},
}

// envName maps a flag name to its environment variable, e.g. player-radius
// to BOUNCE_PLAYER_RADIUS.
func envName(flagName string) string {
	b := []byte(envPrefix)
	for i := 0; i < len(flagName); i++ {
		ch := flagName[i]
		switch {
		case ch == '-':
			ch = '_'
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
		}
		b = append(b, ch)
	}
	return string(b)
}

// Load resolves the configuration for a binary named name from args, which
// excludes the program name.
func Load(name string, args []string) (Config, error) {
	return LoadFlagSet(flag.NewFlagSet(name, flag.ContinueOnError), args)
}

// LoadFlagSet is Load for a caller that registered its own flags on fs. The
// configuration flags are added to fs before parsing.
func LoadFlagSet(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	flagged := cfg
	for _, f := range fields {
		bindFlag(fs, f, f.ptr(&flagged))
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	envFile, explicit := cfg.EnvFile, false
	if v, ok := os.LookupEnv(envName("env")); ok {
		envFile, explicit = v, true
	}
	if set["env"] {
		envFile, explicit = flagged.EnvFile, true
	}
	cfg.EnvFile = envFile

	fileValues, err := readEnvFile(envFile, explicit)
	if err != nil {
		return Config{}, err
	}

	for _, f := range fields {
		key := envName(f.name)
		v, ok := os.LookupEnv(key)
		if !ok {
			v, ok = fileValues[key]
		}
		if !ok || f.name == "env" {
			continue
		}
		if err := setString(f.ptr(&cfg), v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
	}

	for _, f := range fields {
		if !set[f.name] {
			continue
		}
		if err := setString(f.ptr(&cfg), fs.Lookup(f.name).Value.String()); err != nil {
			return Config{}, fmt.Errorf("-%s: %w", f.name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFile(path string, explicit bool) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("env file: %w", err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("env file %s: %w", path, err)
	}
	return values, nil
}

func bindFlag(fs *flag.FlagSet, f field, ptr any) {
	switch p := ptr.(type) {
	case *float64:
		fs.Float64Var(p, f.name, *p, f.usage)
	case *int:
		fs.IntVar(p, f.name, *p, f.usage)
	case *int64:
		fs.Int64Var(p, f.name, *p, f.usage)
	case *bool:
		fs.BoolVar(p, f.name, *p, f.usage)
	case *string:
		fs.StringVar(p, f.name, *p, f.usage)
	case *time.Duration:
		fs.DurationVar(p, f.name, *p, f.usage)
	default:
		panic(fmt.Sprintf("config: unsupported field type %T", ptr))
	}
}

func setString(ptr any, v string) error {
	var err error
	switch p := ptr.(type) {
	case *float64:
		*p, err = strconv.ParseFloat(v, 64)
	case *int:
		*p, err = strconv.Atoi(v)
	case *int64:
		*p, err = strconv.ParseInt(v, 10, 64)
	case *bool:
		*p, err = strconv.ParseBool(v)
	case *string:
		*p = v
	case *time.Duration:
		*p, err = time.ParseDuration(v)
	default:
		panic(fmt.Sprintf("config: unsupported field type %T", ptr))
	}
	return err
}

// Validate rejects settings the arena cannot be built from.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size %gx%g must be positive", c.Width, c.Height))
	}
	if c.Columns < 0 || c.Rows < 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d must not be negative", c.Columns, c.Rows))
	}
	if c.PlayerRadius <= 0 || c.MonsterRadius <= 0 {
		errs = append(errs, errors.New("radii must be positive"))
	}
	if c.JitterDivisor < 0 {
		errs = append(errs, errors.New("jitter divisor must not be negative"))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if c.TransitionDuration < 0 || c.RestartDelay < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	return errors.Join(errs...)
}
