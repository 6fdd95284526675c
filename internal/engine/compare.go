package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/BoxStack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.GeneticSettings
}

// ComparisonResult holds the run result and summary statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.RunResult
	BinsUsed   int
	Fitness    float64
	Efficiency float64
}

// CompareScenarios runs the optimizer once per scenario on the same problem
// and returns the results in scenario order. A failing scenario aborts the
// comparison.
func CompareScenarios(ctx context.Context, problem model.Problem, scenarios []ComparisonScenario, opts ...Option) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		run, err := Solve(ctx, problem, scenario.Settings, opts...)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		results = append(results, ComparisonResult{
			Scenario:   scenario,
			Result:     run,
			BinsUsed:   run.Best.BinsUsed,
			Fitness:    run.Best.Fitness,
			Efficiency: run.Best.TotalEfficiency(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates what-if alternatives around the base
// settings: a larger population, a higher mutation share, an unbiased
// crossover and the heuristic seed toggled.
func BuildDefaultScenarios(base model.GeneticSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	larger := base
	larger.Individuals = base.Individuals * 2
	larger.Elites = base.Elites * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Population %d", larger.Individuals),
		Settings: larger,
	})

	if base.MutationProb < 0.45 {
		mutation := base
		mutation.MutationProb = base.MutationProb + 0.15
		if mutation.Validate() == nil {
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("Mutation %.2f", mutation.MutationProb),
				Settings: mutation,
			})
		}
	}

	if base.CrossoverProb != 0.5 {
		unbiased := base
		unbiased.CrossoverProb = 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Unbiased Crossover",
			Settings: unbiased,
		})
	}

	seeded := base
	seeded.SeedHeuristic = !base.SeedHeuristic
	name := "Heuristic Seed"
	if !seeded.SeedHeuristic {
		name = "Random Start"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: seeded})

	return scenarios
}

// HeuristicBaseline packs the volume-descending, canonical-orientation
// sequence once, without any search.
func HeuristicBaseline(problem model.Problem) (model.PackingResult, error) {
	if err := problem.Validate(); err != nil {
		return model.PackingResult{}, fmt.Errorf("invalid problem: %w", err)
	}
	return NewPlacer(problem.BinSize).Evaluate(HeuristicChromosome(problem.Items), problem.Items)
}
