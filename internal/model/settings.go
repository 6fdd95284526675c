package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSettings is returned when genetic settings fail validation.
var ErrInvalidSettings = errors.New("invalid genetic settings")

// GeneticSettings holds the parameters of the random-key genetic optimizer.
type GeneticSettings struct {
	Individuals   int     `json:"individuals" yaml:"individuals" mapstructure:"individuals"`
	Elites        int     `json:"elites" yaml:"elites" mapstructure:"elites"`
	Generations   int     `json:"generations" yaml:"generations" mapstructure:"generations"`
	CrossoverProb float64 `json:"crossover_prob" yaml:"crossover_prob" mapstructure:"crossover_prob"` // Probability of inheriting the elite parent's gene
	MutationProb  float64 `json:"mutation_prob" yaml:"mutation_prob" mapstructure:"mutation_prob"`    // Fraction of each generation replaced by fresh random individuals

	Workers       int   `json:"workers" yaml:"workers" mapstructure:"workers"` // Goroutines used for fitness evaluation
	Seed          int64 `json:"seed" yaml:"seed" mapstructure:"seed"`
	SeedHeuristic bool  `json:"seed_heuristic" yaml:"seed_heuristic" mapstructure:"seed_heuristic"` // Start with one volume-descending individual
	LogEvery      int   `json:"log_every" yaml:"log_every" mapstructure:"log_every"`                // Generations between progress log lines, 0 = never
}

func DefaultGeneticSettings() GeneticSettings {
	return GeneticSettings{
		Individuals:   100,
		Elites:        10,
		Generations:   1000,
		CrossoverProb: 0.8,
		MutationProb:  0.3,
		Workers:       1,
		Seed:          1,
		LogEvery:      10,
	}
}

// Mutants returns the number of fresh random individuals per generation.
func (s GeneticSettings) Mutants() int {
	return int(math.Round(s.MutationProb * float64(s.Individuals)))
}

// Offspring returns the number of crossover children per generation.
func (s GeneticSettings) Offspring() int {
	return s.Individuals - s.Elites - s.Mutants()
}

// Validate checks the settings for consistency.
func (s GeneticSettings) Validate() error {
	switch {
	case s.Individuals < 2:
		return fmt.Errorf("%w: individuals must be at least 2, got %d", ErrInvalidSettings, s.Individuals)
	case s.Elites < 1 || s.Elites >= s.Individuals:
		return fmt.Errorf("%w: elites must be in [1, %d), got %d", ErrInvalidSettings, s.Individuals, s.Elites)
	case s.Generations < 0:
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidSettings, s.Generations)
	case s.CrossoverProb < 0 || s.CrossoverProb > 1:
		return fmt.Errorf("%w: crossover probability %.3f outside [0, 1]", ErrInvalidSettings, s.CrossoverProb)
	case s.MutationProb < 0 || s.MutationProb > 1:
		return fmt.Errorf("%w: mutation probability %.3f outside [0, 1]", ErrInvalidSettings, s.MutationProb)
	case s.Offspring() < 0:
		return fmt.Errorf("%w: %d elites and %d mutants exceed %d individuals",
			ErrInvalidSettings, s.Elites, s.Mutants(), s.Individuals)
	case s.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidSettings, s.Workers)
	case s.LogEvery < 0:
		return fmt.Errorf("%w: log interval must not be negative, got %d", ErrInvalidSettings, s.LogEvery)
	}
	return nil
}
