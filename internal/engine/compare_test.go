package engine

import (
	"context"
	"testing"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := makeTestSettings()

	scenarios := BuildDefaultScenarios(base)

	require.GreaterOrEqual(t, len(scenarios), 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)
	for _, sc := range scenarios {
		assert.NoError(t, sc.Settings.Validate(), "scenario %q has invalid settings", sc.Name)
	}
	last := scenarios[len(scenarios)-1]
	assert.Equal(t, "Heuristic Seed", last.Name)
	assert.True(t, last.Settings.SeedHeuristic)
}

func TestCompareScenarios(t *testing.T) {
	p := makeTestProblem()
	base := makeTestSettings()
	base.Generations = 3
	scenarios := BuildDefaultScenarios(base)

	results, err := CompareScenarios(context.Background(), p, scenarios)
	require.NoError(t, err)

	require.Len(t, results, len(scenarios))
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		assert.Equal(t, r.Result.Best.BinsUsed, r.BinsUsed)
		assert.Equal(t, len(p.Items), r.Result.Best.PlacedCount())
		assert.Greater(t, r.Efficiency, 0.0)
	}
}

func TestCompareScenarios_InvalidScenarioStops(t *testing.T) {
	bad := makeTestSettings()
	bad.Elites = 0
	scenarios := []ComparisonScenario{
		{Name: "ok", Settings: makeTestSettings()},
		{Name: "bad", Settings: bad},
	}

	results, err := CompareScenarios(context.Background(), makeTestProblem(), scenarios)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidSettings)
	assert.Len(t, results, 1)
}

func TestHeuristicBaseline(t *testing.T) {
	p := makeTestProblem()

	res, err := HeuristicBaseline(p)
	require.NoError(t, err)

	assert.Equal(t, len(p.Items), res.PlacedCount())
	assert.Equal(t, p.ItemVolume(), res.TotalLoad())
}
