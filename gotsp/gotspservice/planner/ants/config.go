package ants

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/mitchellh/mapstructure"
)

var ErrInvalidConfig = errors.New("invalid ant colony configuration")

// IterationStep caps the iteration count for inputs of up to MaxCities cities.
type IterationStep struct {
	MaxCities  int `mapstructure:"maxCities" json:"maxCities"`
	Iterations int `mapstructure:"iterations" json:"iterations"`
}

// AdaptiveConfig drives the weight adaptation under stagnation. Once the
// stagnation counter exceeds Threshold, each iteration without improvement
// raises the visibility weight and lowers the pheromone weight; an improving
// iteration relaxes both a step toward the configured defaults.
type AdaptiveConfig struct {
	Enabled         bool    `mapstructure:"enabled" json:"enabled"`
	Threshold       int     `mapstructure:"threshold" json:"threshold"`
	VisibilityStep  float64 `mapstructure:"visibilityStep" json:"visibilityStep"`
	VisibilityMax   float64 `mapstructure:"visibilityMax" json:"visibilityMax"`
	VisibilityRelax float64 `mapstructure:"visibilityRelax" json:"visibilityRelax"`
	PheromoneStep   float64 `mapstructure:"pheromoneStep" json:"pheromoneStep"`
	PheromoneMin    float64 `mapstructure:"pheromoneMin" json:"pheromoneMin"`
	PheromoneRelax  float64 `mapstructure:"pheromoneRelax" json:"pheromoneRelax"`
}

type Config struct {
	InitialPheromone float64 `mapstructure:"initialPheromone" json:"initialPheromone"`
	Evaporation      float64 `mapstructure:"evaporation" json:"evaporation"`
	PheromoneWeight  float64 `mapstructure:"alpha" json:"alpha"`
	VisibilityWeight float64 `mapstructure:"beta" json:"beta"`
	Deposit          float64 `mapstructure:"q" json:"q"`
	MinPheromone     float64 `mapstructure:"minPheromone" json:"minPheromone"`
	MaxPheromone     float64 `mapstructure:"maxPheromone" json:"maxPheromone"`

	MinAnts         int             `mapstructure:"minAnts" json:"minAnts"`
	StagnationLimit int             `mapstructure:"stagnationLimit" json:"stagnationLimit"`
	MaxTime         time.Duration   `mapstructure:"maxTime" json:"maxTime"`
	Iterations      []IterationStep `mapstructure:"iterations" json:"iterations"`
	// MaxIterations applies above the last Iterations step.
	MaxIterations int `mapstructure:"maxIterations" json:"maxIterations"`

	LocalSearch          bool    `mapstructure:"localSearch" json:"localSearch"`
	ImprovementThreshold float64 `mapstructure:"twoOptThreshold" json:"twoOptThreshold"`

	Adaptive AdaptiveConfig `mapstructure:"adaptive" json:"adaptive"`

	// Seed 0 picks a time based seed, the one used is reported in Solution.
	Seed    int64 `mapstructure:"seed" json:"seed"`
	Workers int   `mapstructure:"workers" json:"workers"`
}

func DefaultConfig() Config {
	return Config{
		InitialPheromone: 0.1,
		Evaporation:      0.5,
		PheromoneWeight:  1.0,
		VisibilityWeight: 5.0,
		Deposit:          100.0,
		MinPheromone:     0.01,
		MaxPheromone:     10.0,
		MinAnts:          20,
		StagnationLimit:  50,
		MaxTime:          180 * time.Second,
		Iterations: []IterationStep{
			{MaxCities: 20, Iterations: 500},
			{MaxCities: 50, Iterations: 300},
			{MaxCities: 100, Iterations: 200},
		},
		MaxIterations:        100,
		LocalSearch:          true,
		ImprovementThreshold: 0.01,
		Adaptive: AdaptiveConfig{
			Enabled:         true,
			Threshold:       10,
			VisibilityStep:  0.5,
			VisibilityMax:   10.0,
			VisibilityRelax: 0.1,
			PheromoneStep:   0.2,
			PheromoneMin:    0.5,
			PheromoneRelax:  0.1,
		},
		Workers: runtime.GOMAXPROCS(0),
	}
}

// DecodeConfig overlays loosely typed params, as decoded from JSON or built
// from flags, on top of base. Unknown keys are rejected.
func DecodeConfig(params map[string]interface{}, base Config) (Config, error) {
	config := base
	if len(params) == 0 {
		return config, nil
	}
	// keep the overlay from appending into base's schedule
	config.Iterations = append([]IterationStep(nil), base.Iterations...)
	if _, ok := params["iterations"]; ok {
		config.Iterations = nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		Result:      &config,
	})
	if err != nil {
		return base, err
	}
	if err = decoder.Decode(params); err != nil {
		return base, err
	}
	return config, nil
}

// IterationsFor returns the iteration cap for n cities.
func (c Config) IterationsFor(n int) int {
	for _, step := range c.Iterations {
		if n <= step.MaxCities {
			return step.Iterations
		}
	}
	return c.MaxIterations
}

func (c Config) AntsFor(n int) int {
	if n > c.MinAnts {
		return n
	}
	return c.MinAnts
}

func (c Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case c.InitialPheromone <= 0:
		return invalid("initial pheromone must be positive, got %v", c.InitialPheromone)
	case c.Evaporation <= 0 || c.Evaporation > 1:
		return invalid("evaporation must be in (0, 1], got %v", c.Evaporation)
	case c.PheromoneWeight < 0:
		return invalid("pheromone weight must not be negative, got %v", c.PheromoneWeight)
	case c.VisibilityWeight < 0:
		return invalid("visibility weight must not be negative, got %v", c.VisibilityWeight)
	case c.Deposit <= 0:
		return invalid("deposit constant must be positive, got %v", c.Deposit)
	case c.MinPheromone <= 0:
		return invalid("min pheromone must be positive, got %v", c.MinPheromone)
	case c.MaxPheromone < c.MinPheromone:
		return invalid("max pheromone %v is below min pheromone %v", c.MaxPheromone, c.MinPheromone)
	case c.MinAnts <= 0:
		return invalid("ant count floor must be positive, got %d", c.MinAnts)
	case c.StagnationLimit <= 0:
		return invalid("stagnation limit must be positive, got %d", c.StagnationLimit)
	case c.MaxTime <= 0:
		return invalid("time budget must be positive, got %s", c.MaxTime)
	case c.MaxIterations <= 0:
		return invalid("max iterations must be positive, got %d", c.MaxIterations)
	case c.ImprovementThreshold < 0:
		return invalid("2-opt threshold must not be negative, got %v", c.ImprovementThreshold)
	case c.Workers <= 0:
		return invalid("workers must be positive, got %d", c.Workers)
	}

	for i, step := range c.Iterations {
		if step.Iterations <= 0 {
			return invalid("iteration step %d must allow at least one iteration", i)
		}
		if i > 0 && step.MaxCities <= c.Iterations[i-1].MaxCities {
			return invalid("iteration steps must be sorted by increasing city count")
		}
	}

	if a := c.Adaptive; a.Enabled {
		switch {
		case a.Threshold < 0:
			return invalid("adaptive threshold must not be negative, got %d", a.Threshold)
		case a.VisibilityStep < 0 || a.VisibilityRelax < 0 || a.PheromoneStep < 0 || a.PheromoneRelax < 0:
			return invalid("adaptive steps must not be negative")
		case c.VisibilityWeight > a.VisibilityMax:
			return invalid("visibility weight %v is above its adaptive cap %v", c.VisibilityWeight, a.VisibilityMax)
		case c.PheromoneWeight < a.PheromoneMin:
			return invalid("pheromone weight %v is below its adaptive floor %v", c.PheromoneWeight, a.PheromoneMin)
		}
	}
	return nil
}
