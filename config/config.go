// Package config loads termfolio settings from an optional YAML file with
// TERMFOLIO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/games/blocks"
	"github.com/lixenwraith/termfolio/games/cards"
	"github.com/lixenwraith/termfolio/input"
	"github.com/lixenwraith/termfolio/theme"
)

const (
	envPrefix = "TERMFOLIO_"
	appDir    = "termfolio"
)

// Duration is a time.Duration written as a Go duration string
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the top-level configuration, corresponding to config.yaml
type Config struct {
	StorePath string          `yaml:"store_path" koanf:"store_path"`
	Theme     string          `yaml:"theme" koanf:"theme"`
	Sound     bool            `yaml:"sound" koanf:"sound"`
	Debug     bool            `yaml:"debug" koanf:"debug"`
	CacheSize int             `yaml:"cache_size" koanf:"cache_size"`
	Blocks    BlocksConfig    `yaml:"blocks" koanf:"blocks"`
	Cards     CardsConfig     `yaml:"cards" koanf:"cards"`
	Narrative NarrativeConfig `yaml:"narrative" koanf:"narrative"`

	// Keys overrides bindings: section -> key -> action, e.g. blocks.w: rotate
	Keys map[string]map[string]string `yaml:"keys,omitempty" koanf:"keys"`
}

// BlocksConfig tunes falling-block gravity
type BlocksConfig struct {
	GravityStart Duration `yaml:"gravity_start" koanf:"gravity_start"`
	GravityDecay float64  `yaml:"gravity_decay" koanf:"gravity_decay"`
	GravityFloor Duration `yaml:"gravity_floor" koanf:"gravity_floor"`
}

// CardsConfig tunes the card loop
type CardsConfig struct {
	Goal        int     `yaml:"goal" koanf:"goal"`
	Turns       int     `yaml:"turns" koanf:"turns"`
	HandSize    int     `yaml:"hand_size" koanf:"hand_size"`
	RelicChance float64 `yaml:"relic_chance" koanf:"relic_chance"`
	RelicCap    int     `yaml:"relic_cap" koanf:"relic_cap"`
}

// NarrativeConfig bounds the story stats
type NarrativeConfig struct {
	StatMax int `yaml:"stat_max" koanf:"stat_max"`
}

// Dir returns the per-user directory holding config and data
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, appDir)
}

// DefaultPath returns the config file location used when none is given
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a Config populated with default values
func DefaultConfig() *Config {
	return &Config{
		StorePath: filepath.Join(Dir(), "termfolio.db"),
		Theme:     string(theme.DefaultKey),
		Sound:     true,
		CacheSize: 16,
		Blocks: BlocksConfig{
			GravityStart: Duration(constants.GravityStart),
			GravityDecay: constants.GravityDecay,
			GravityFloor: Duration(constants.GravityFloor),
		},
		Cards: CardsConfig{
			Goal:        constants.CardGoal,
			Turns:       constants.CardTurns,
			HandSize:    constants.CardHandSize,
			RelicChance: constants.RelicChance,
			RelicCap:    constants.RelicCap,
		},
		Narrative: NarrativeConfig{
			StatMax: constants.StatMax,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment overrides: TERMFOLIO_THEME -> theme, TERMFOLIO_CARDS__GOAL -> cards.goal
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	var errs []error
	if _, ok := theme.Parse(c.Theme); !ok {
		errs = append(errs, fmt.Errorf("invalid theme %q: must be one of %s", c.Theme, keyList()))
	}
	if c.CacheSize < 1 {
		errs = append(errs, errors.New("cache_size must be positive"))
	}
	b := c.Blocks
	if b.GravityStart <= 0 || b.GravityFloor <= 0 {
		errs = append(errs, errors.New("blocks gravity intervals must be positive"))
	}
	if b.GravityFloor > b.GravityStart {
		errs = append(errs, errors.New("blocks.gravity_floor must not exceed gravity_start"))
	}
	if b.GravityDecay <= 0 || b.GravityDecay > 1 {
		errs = append(errs, fmt.Errorf("blocks.gravity_decay %v outside (0,1]", b.GravityDecay))
	}
	cd := c.Cards
	if cd.Goal < 1 || cd.Turns < 1 {
		errs = append(errs, errors.New("cards.goal and cards.turns must be positive"))
	}
	if cd.HandSize < 1 {
		errs = append(errs, errors.New("cards.hand_size must be at least 1"))
	}
	if cd.RelicChance < 0 || cd.RelicChance > 1 {
		errs = append(errs, fmt.Errorf("cards.relic_chance %v outside [0,1]", cd.RelicChance))
	}
	if cd.RelicCap < 0 {
		errs = append(errs, errors.New("cards.relic_cap must be non-negative"))
	}
	if c.Narrative.StatMax < 1 {
		errs = append(errs, errors.New("narrative.stat_max must be positive"))
	}
	if _, err := input.LoadKeyConfig(c.Keys); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}
	return errors.Join(errs...)
}

func keyList() string {
	names := make([]string, len(theme.Keys))
	for i, k := range theme.Keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Game returns the falling-block parameters
func (b BlocksConfig) Game() blocks.Config {
	cfg := blocks.DefaultConfig()
	cfg.GravityStart = time.Duration(b.GravityStart)
	cfg.GravityDecay = b.GravityDecay
	cfg.GravityFloor = time.Duration(b.GravityFloor)
	return cfg
}

// Game returns the card loop parameters
func (c CardsConfig) Game() cards.Config {
	cfg := cards.DefaultConfig()
	cfg.Goal = c.Goal
	cfg.Turns = c.Turns
	cfg.HandSize = c.HandSize
	cfg.RelicChance = c.RelicChance
	cfg.RelicCap = c.RelicCap
	return cfg
}
