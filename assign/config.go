/*
config.go - Assignment model configuration

PURPOSE:
  Crew-size bounds and objective weights, passed as an explicit immutable
  value into every constraint and objective builder. Nothing reads ambient
  state, which keeps each builder independently testable.

WEIGHTS:
  The objective is a plain non-negative weighted sum with no normalization:
  absolute weights directly trade off friend co-location against the three
  diversity rewards. At least one weight must be positive, otherwise the
  objective is degenerate (every feasible assignment scores zero).

PRESETS:
  DefaultConfig        5..7 crew size, friend 2, diversity 1/1/1
  HighFriendWeight     friend 4, diversity 1/1/1
  HighDiversity        friend 1, diversity 2/2/2

FILE OVERRIDES:
  LoadConfig reads a YAML file and overlays it onto the defaults, so a file
  only needs the fields it wants to change:

      min_crew_size: 6
      friend_weight: 3

SEE ALSO:
  - constraints.go: Uses the size bounds
  - objective.go: Uses the weights
*/
package assign

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds crew-size bounds and objective weights.
type Config struct {
	// Crew size constraints. Counts assigned youth plus the crew's
	// pre-existing adult roster.
	MinCrewSize int `yaml:"min_crew_size" json:"min_crew_size"`
	MaxCrewSize int `yaml:"max_crew_size" json:"max_crew_size"`

	// Objective weights.
	FriendWeight  int `yaml:"friend_weight" json:"friend_weight"`
	GenderWeight  int `yaml:"gender_weight" json:"gender_weight"`
	YearWeight    int `yaml:"year_weight" json:"year_weight"`
	HistoryWeight int `yaml:"history_weight" json:"history_weight"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MinCrewSize:   5,
		MaxCrewSize:   7,
		FriendWeight:  2,
		GenderWeight:  1,
		YearWeight:    1,
		HistoryWeight: 1,
	}
}

// HighFriendWeight prioritizes friend preferences over diversity.
func HighFriendWeight() Config {
	cfg := DefaultConfig()
	cfg.FriendWeight = 4
	return cfg
}

// HighDiversity prioritizes the diversity rewards over friend preferences.
func HighDiversity() Config {
	cfg := DefaultConfig()
	cfg.FriendWeight = 1
	cfg.GenderWeight = 2
	cfg.YearWeight = 2
	cfg.HistoryWeight = 2
	return cfg
}

// Presets returns the named preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		"default":            DefaultConfig(),
		"high_friend_weight": HighFriendWeight(),
		"high_diversity":     HighDiversity(),
	}
}

// Validate checks the invariants every builder relies on.
func (c Config) Validate() error {
	if c.MinCrewSize < 0 {
		return &ConfigError{Field: "min_crew_size", Reason: "must be non-negative"}
	}
	if c.MaxCrewSize < c.MinCrewSize {
		return &ConfigError{Field: "max_crew_size", Reason: "must be >= min_crew_size"}
	}
	for field, w := range map[string]int{
		"friend_weight":  c.FriendWeight,
		"gender_weight":  c.GenderWeight,
		"year_weight":    c.YearWeight,
		"history_weight": c.HistoryWeight,
	} {
		if w < 0 {
			return &ConfigError{Field: field, Reason: "must be non-negative"}
		}
	}
	if c.FriendWeight == 0 && c.GenderWeight == 0 && c.YearWeight == 0 && c.HistoryWeight == 0 {
		return &ConfigError{Field: "weights", Reason: "at least one weight must be positive"}
	}
	return nil
}

// LoadConfig reads a YAML file and overlays it onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
