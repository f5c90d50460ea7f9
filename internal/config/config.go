package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	StrategyPruner = "pruner"
	StrategyRandom = "random"
)

// GameConfig fixes the combination space for a session: the symbol alphabet,
// the sequence length and whether symbols may repeat. Immutable once loaded;
// every oracle and solver of a run shares one value.
type GameConfig struct {
	Options    []string `json:"options"`
	Length     int      `json:"length"`
	Duplicates bool     `json:"duplicates"`
}

type SolverConfig struct {
	Strategy string `json:"strategy"`
	// MaxTries bounds the random strategy's redraws per guess; omit or set
	// negative for unbounded search.
	MaxTries *int `json:"max_tries,omitempty"`
}

type StorageConfig struct {
	Path string `json:"path"`
}

type LogConfig struct {
	Path  string `json:"path,omitempty"`
	Level string `json:"level,omitempty"`
}

type Config struct {
	Mode     string        `json:"mode"`
	Game     GameConfig    `json:"game"`
	Solver   SolverConfig  `json:"solver"`
	Sessions int           `json:"sessions"`
	Storage  StorageConfig `json:"storage"`
	Log      LogConfig     `json:"log"`
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":       c.Mode,
		"options":    len(c.Game.Options),
		"length":     c.Game.Length,
		"duplicates": c.Game.Duplicates,
		"strategy":   c.Solver.Strategy,
		"sessions":   c.Sessions,
		"storage":    c.Storage.Path,
	}
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) MaxTries() int {
	if c.Solver.MaxTries == nil {
		return -1
	}
	return *c.Solver.MaxTries
}

func (c Config) Validate() error {
	if len(c.Game.Options) == 0 {
		return errors.New("options alphabet must not be empty")
	}
	if c.Game.Length <= 0 {
		return fmt.Errorf("length must be positive, got %d", c.Game.Length)
	}
	if !c.Game.Duplicates && len(c.Game.Options) < c.Game.Length {
		return fmt.Errorf("%d options cannot fill length %d without duplicates",
			len(c.Game.Options), c.Game.Length)
	}
	switch c.Solver.Strategy {
	case StrategyPruner, StrategyRandom:
	default:
		return fmt.Errorf("unknown strategy %q", c.Solver.Strategy)
	}
	if c.Sessions < 0 {
		return fmt.Errorf("sessions must not be negative, got %d", c.Sessions)
	}
	return nil
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// Default is the configuration used when no file is given: the classic
// eight-color game solved by the pruner, results kept next to the binary.
func Default() Config {
	return Config{
		Mode: "development",
		Game: GameConfig{
			Options:    []string{"black", "gray", "white", "red", "green", "blue", "yellow", "purple"},
			Length:     4,
			Duplicates: true,
		},
		Solver:   SolverConfig{Strategy: StrategyPruner},
		Sessions: 1,
		Storage:  StorageConfig{Path: "mastermind.db"},
	}
}
