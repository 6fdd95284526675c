package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestProblem() model.Problem {
	return model.Problem{
		Name:    "test",
		BinSize: model.V(10, 10, 10),
		Items: []model.Item{
			model.NewItem("A", 10, 10, 4),
			model.NewItem("B", 10, 10, 4),
			model.NewItem("C", 10, 10, 4),
			model.NewItem("D", 5, 10, 6),
			model.NewItem("E", 5, 5, 6),
			model.NewItem("F", 5, 5, 6),
			model.NewItem("G", 3, 7, 2),
			model.NewItem("H", 2, 2, 2),
		},
	}
}

func TestNewOptimizer_RejectsInvalidSettings(t *testing.T) {
	s := makeTestSettings()
	s.Elites = s.Individuals

	_, err := NewOptimizer(makeTestProblem(), s)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidSettings))
}

func TestNewOptimizer_RejectsOversizedItem(t *testing.T) {
	p := makeTestProblem()
	p.Items = append(p.Items, model.NewItem("huge", 12, 1, 1))

	_, err := NewOptimizer(p, makeTestSettings())

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrItemTooLarge))
}

func TestOptimize_PlacesAllItems(t *testing.T) {
	p := makeTestProblem()

	run, err := Solve(context.Background(), p, makeTestSettings())
	require.NoError(t, err)

	assert.Equal(t, len(p.Items), run.Best.PlacedCount())
	assert.Equal(t, p.ItemVolume(), run.Best.TotalLoad())
	assert.Equal(t, run.Best.BinsUsed, len(run.Best.Bins))
	assert.GreaterOrEqual(t, run.Best.BinsUsed, p.LowerBound())
	assert.InDelta(t, Fitness(run.Best, p.BinVolume()), run.Best.Fitness, 1e-9)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "test", run.Problem)
}

func TestOptimize_BestFitnessNeverWorsens(t *testing.T) {
	s := makeTestSettings()
	s.Generations = 30

	run, err := Solve(context.Background(), makeTestProblem(), s)
	require.NoError(t, err)

	require.Len(t, run.History, s.Generations+1)
	for i := 1; i < len(run.History); i++ {
		assert.LessOrEqual(t, run.History[i].Best, run.History[i-1].Best,
			"generation %d got worse", run.History[i].Generation)
	}
	assert.InDelta(t, run.History[len(run.History)-1].Best, run.Best.Fitness, 1e-9)
}

func TestOptimize_EvaluationCount(t *testing.T) {
	s := makeTestSettings()

	run, err := Solve(context.Background(), makeTestProblem(), s)
	require.NoError(t, err)

	expected := s.Individuals + s.Generations*(s.Offspring()+s.Mutants())
	assert.Equal(t, expected, run.Evaluations)
}

func TestOptimize_SameSeedSameResultAnyWorkers(t *testing.T) {
	p := makeTestProblem()
	single := makeTestSettings()
	parallel := single
	parallel.Workers = 4

	a, err := Solve(context.Background(), p, single)
	require.NoError(t, err)
	b, err := Solve(context.Background(), p, parallel)
	require.NoError(t, err)

	assert.Equal(t, a.History, b.History)
	assert.Equal(t, a.Best, b.Best)
}

func TestOptimize_HeuristicSeedNeverWorseThanBaseline(t *testing.T) {
	p := makeTestProblem()
	s := makeTestSettings()
	s.SeedHeuristic = true
	s.Generations = 3

	baseline, err := HeuristicBaseline(p)
	require.NoError(t, err)
	run, err := Solve(context.Background(), p, s)
	require.NoError(t, err)

	assert.LessOrEqual(t, run.Best.Fitness, baseline.Fitness)
}

func TestOptimize_ThreeSlabsNeedTwoBins(t *testing.T) {
	p := model.Problem{
		Name:    "slabs",
		BinSize: model.V(10, 10, 10),
		Items: []model.Item{
			model.NewItem("a", 10, 10, 4),
			model.NewItem("b", 10, 10, 4),
			model.NewItem("c", 10, 10, 4),
		},
	}

	run, err := Solve(context.Background(), p, makeTestSettings())
	require.NoError(t, err)

	assert.Equal(t, 2, run.Best.BinsUsed)
	assert.Equal(t, 2, run.LowerBound)
	assert.Zero(t, run.Gap())
}

func TestOptimize_SingleCube(t *testing.T) {
	p := model.Problem{
		Name:    "cube",
		BinSize: model.V(10, 10, 10),
		Items:   []model.Item{model.NewItem("cube", 10, 10, 10)},
	}

	run, err := Solve(context.Background(), p, makeTestSettings())
	require.NoError(t, err)

	assert.Equal(t, 1, run.Best.BinsUsed)
	assert.InDelta(t, 2.0, run.Best.Fitness, 1e-9)
}

func TestOptimize_ProgressCallback(t *testing.T) {
	s := makeTestSettings()
	var seen []int

	o, err := NewOptimizer(makeTestProblem(), s, WithProgress(func(gs model.GenerationStats) {
		seen = append(seen, gs.Generation)
	}))
	require.NoError(t, err)
	_, err = o.Optimize(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, s.Generations+1)
	assert.Equal(t, 0, seen[0])
	assert.Equal(t, s.Generations, seen[len(seen)-1])
}

func TestOptimize_CancelledContextReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, err := NewOptimizer(makeTestProblem(), makeTestSettings())
	require.NoError(t, err)
	run, err := o.Optimize(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, run.History, 1)
	assert.Greater(t, run.Best.BinsUsed, 0)

	champ, ok := o.Champion()
	require.True(t, ok)
	assert.Equal(t, run.Best, champ)
}

func TestOptimize_ZeroGenerations(t *testing.T) {
	s := makeTestSettings()
	s.Generations = 0

	run, err := Solve(context.Background(), makeTestProblem(), s)
	require.NoError(t, err)

	assert.Len(t, run.History, 1)
	assert.Equal(t, s.Individuals, run.Evaluations)
}
