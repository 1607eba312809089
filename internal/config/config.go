package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	World     WorldConfig     `toml:"world"`
	Churn     ChurnConfig     `toml:"churn"`
	Sim       SimConfig       `toml:"sim"`
	Profile   ProfileConfig   `toml:"profile"`
	Scenarios ScenariosConfig `toml:"scenarios"`
	Scripts   ScriptsConfig   `toml:"scripts"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type WorldConfig struct {
	Reserve int `toml:"reserve"` // handle slots preallocated at startup
}

// ChurnConfig drives the pathological create/remove/destroy rounds.
type ChurnConfig struct {
	Entities            int `toml:"entities"` // initial population
	Rounds              int `toml:"rounds"`
	Refill              int `toml:"refill"` // entities created after each round
	RemovePositionEvery int `toml:"remove_position_every"`
	RemoveVelocityEvery int `toml:"remove_velocity_every"`
	RemoveHealthEvery   int `toml:"remove_health_every"`
	DestroyEvery        int `toml:"destroy_every"`
}

type SimConfig struct {
	TickRate time.Duration `toml:"tick_rate"` // simulated dt per tick
	Lifetime int32         `toml:"lifetime"`  // ticks a refilled entity lives; 0 disables expiry
	Audit    bool          `toml:"audit"`     // run World.Check every tick
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Path string `toml:"path"`
}

type ScenariosConfig struct {
	Dir string `toml:"dir"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	ch := c.Churn
	if ch.Entities < 0 || ch.Rounds < 0 || ch.Refill < 0 {
		return fmt.Errorf("churn: entities, rounds and refill must not be negative")
	}
	for name, every := range map[string]int{
		"remove_position_every": ch.RemovePositionEvery,
		"remove_velocity_every": ch.RemoveVelocityEvery,
		"remove_health_every":   ch.RemoveHealthEvery,
		"destroy_every":         ch.DestroyEvery,
	} {
		if every <= 0 {
			return fmt.Errorf("churn: %s must be positive, got %d", name, every)
		}
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("profile: unknown mode %q", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		World: WorldConfig{
			Reserve: 1 << 16,
		},
		Churn: ChurnConfig{
			Entities:            500_000,
			Rounds:              10,
			Refill:              50_000,
			RemovePositionEvery: 7,
			RemoveVelocityEvery: 11,
			RemoveHealthEvery:   13,
			DestroyEvery:        17,
		},
		Sim: SimConfig{
			TickRate: 16 * time.Millisecond,
			Lifetime: 3,
			Audit:    true,
		},
		Profile: ProfileConfig{
			Path: ".",
		},
		Scenarios: ScenariosConfig{
			Dir: "data/scenarios",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
	}
}
