package conf

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
)

//go:embed schema.json
var schemaJSON string

// schema is compiled once at load time; the embedded document is part of the
// binary, so a compile failure is a programming error.
var schema = jsonschema.MustCompileString("schema.json", schemaJSON)

// Config is the full run configuration: the flock settings plus everything
// the drivers need (movie output, frame pacing, logging).
type Config struct {
	// Simulation
	Population  int     `json:"population" mapstructure:"population"`
	WorldWidth  float64 `json:"worldWidth" mapstructure:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" mapstructure:"worldHeight"`
	Seed        uint64  `json:"seed" mapstructure:"seed"`
	Dt          float64 `json:"dt" mapstructure:"dt"`

	// Behavior
	Vision         float64 `json:"vision" mapstructure:"vision"`
	Separation     float64 `json:"separation" mapstructure:"separation"`
	CohereFactor   float64 `json:"cohereFactor" mapstructure:"cohereFactor"`
	SeparateFactor float64 `json:"separateFactor" mapstructure:"separateFactor"`
	MatchFactor    float64 `json:"matchFactor" mapstructure:"matchFactor"`
	MaxSpeed       float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	MinSpeed       float64 `json:"minSpeed" mapstructure:"minSpeed"`

	// Driver
	Frames          int     `json:"frames" mapstructure:"frames"`
	FrameIntervalMs int     `json:"frameIntervalMs" mapstructure:"frameIntervalMs"`
	Output          string  `json:"output" mapstructure:"output"`
	FrameScale      float64 `json:"frameScale" mapstructure:"frameScale"` // pixels per world unit
	LogLevel        string  `json:"logLevel" mapstructure:"logLevel"`
}

func setDefaults(v *viper.Viper) {
	s := flock.DefaultSettings()
	v.SetDefault("population", s.Population)
	v.SetDefault("worldWidth", s.Width)
	v.SetDefault("worldHeight", s.Height)
	v.SetDefault("seed", s.Seed)
	v.SetDefault("dt", s.Dt)
	v.SetDefault("vision", s.Vision)
	v.SetDefault("separation", s.Separation)
	v.SetDefault("cohereFactor", s.CohereFactor)
	v.SetDefault("separateFactor", s.SeparateFactor)
	v.SetDefault("matchFactor", s.MatchFactor)
	v.SetDefault("maxSpeed", s.MaxSpeed)
	v.SetDefault("minSpeed", s.MinSpeed)

	v.SetDefault("frames", 250)
	v.SetDefault("frameIntervalMs", 20)
	v.SetDefault("output", "")
	v.SetDefault("frameScale", 6)
	v.SetDefault("logLevel", "info")
}

// Load reads the configuration. Missing path means defaults only. A config
// file is JSON, validated against the embedded schema before viper merges it
// over the defaults; FLOCKERS_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FLOCKERS")
	v.AutomaticEnv()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		var doc interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config json: %w", err)
		}
		if err := schema.Validate(doc); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}

		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Environment overrides arrive as strings; weak typing converts them.
	weak := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }

	var cfg Config
	if err := v.Unmarshal(&cfg, weak); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The schema checks shape and ranges of the file; this catches bad
	// values coming from env overrides as well.
	if err := cfg.Flock().Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.FrameIntervalMs <= 0 {
		return nil, fmt.Errorf("frameIntervalMs must be positive, got %d", cfg.FrameIntervalMs)
	}
	if cfg.FrameScale <= 0 {
		return nil, fmt.Errorf("frameScale must be positive, got %g", cfg.FrameScale)
	}

	return &cfg, nil
}

// Flock converts the configuration into flock settings.
func (c *Config) Flock() flock.Settings {
	return flock.Settings{
		Population:     c.Population,
		Width:          c.WorldWidth,
		Height:         c.WorldHeight,
		Seed:           c.Seed,
		Dt:             c.Dt,
		Vision:         c.Vision,
		Separation:     c.Separation,
		CohereFactor:   c.CohereFactor,
		SeparateFactor: c.SeparateFactor,
		MatchFactor:    c.MatchFactor,
		MaxSpeed:       c.MaxSpeed,
		MinSpeed:       c.MinSpeed,
	}
}
