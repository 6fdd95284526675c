// Package engine implements the 3D bin packing core: the empty maximal
// space placement heuristic and the random-key genetic optimizer that
// searches packing orders and orientations.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/BoxStack/internal/model"
)

const tracerName = "github.com/piwi3910/BoxStack/internal/engine"

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger sets the logger used for run and progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracer sets the tracer used for run and generation spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Optimizer) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithProgress registers a callback invoked after every generation.
func WithProgress(fn func(model.GenerationStats)) Option {
	return func(o *Optimizer) {
		o.progress = fn
	}
}

// Optimizer runs the random-key genetic algorithm over one problem.
// It owns the champion: the best packing seen across all evaluations.
type Optimizer struct {
	problem  model.Problem
	settings model.GeneticSettings
	placer   *Placer
	rng      *rand.Rand

	logger   *slog.Logger
	tracer   trace.Tracer
	progress func(model.GenerationStats)

	mu          sync.Mutex
	champion    model.PackingResult
	championSeq int
	hasChampion bool
	evaluations int
}

// NewOptimizer validates problem and settings and prepares a run.
func NewOptimizer(problem model.Problem, settings model.GeneticSettings, opts ...Option) (*Optimizer, error) {
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := &Optimizer{
		problem:  problem,
		settings: settings,
		placer:   NewPlacer(problem.BinSize),
		rng:      rand.New(rand.NewSource(settings.Seed)),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Solve is a convenience wrapper that builds an Optimizer and runs it.
func Solve(ctx context.Context, problem model.Problem, settings model.GeneticSettings, opts ...Option) (model.RunResult, error) {
	o, err := NewOptimizer(problem, settings, opts...)
	if err != nil {
		return model.RunResult{}, err
	}
	return o.Optimize(ctx)
}

// Champion returns the best packing evaluated so far.
func (o *Optimizer) Champion() (model.PackingResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.champion, o.hasChampion
}

// Optimize runs the configured number of generations and returns the best
// packing found. If ctx is cancelled between generations the run stops
// early and returns the best result so far along with ctx.Err().
func (o *Optimizer) Optimize(ctx context.Context) (model.RunResult, error) {
	ctx, span := o.tracer.Start(ctx, "engine.Optimize", trace.WithAttributes(
		attribute.String("problem", o.problem.Name),
		attribute.Int("items", o.problem.TotalItems()),
		attribute.Int("individuals", o.settings.Individuals),
		attribute.Int("generations", o.settings.Generations),
	))
	defer span.End()

	run := model.RunResult{
		ID:         uuid.NewString(),
		Problem:    o.problem.Name,
		BinSize:    o.problem.BinSize,
		ItemCount:  o.problem.TotalItems(),
		Settings:   o.settings,
		LowerBound: o.problem.LowerBound(),
		StartedAt:  time.Now().UTC(),
	}
	o.logger.Info("optimization started",
		"problem", o.problem.Name,
		"items", o.problem.TotalItems(),
		"bin", o.problem.BinSize.String(),
		"individuals", o.settings.Individuals,
		"generations", o.settings.Generations,
		"workers", o.settings.Workers,
	)

	pop := NewPopulation(o.settings, o.problem.TotalItems(), o.rng)
	var seed Chromosome
	if o.settings.SeedHeuristic {
		seed = HeuristicChromosome(o.problem.Items)
	}
	pop.Initialize(seed)

	if err := o.evaluate(pop.Individuals()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return o.finish(run, span), err
	}
	pop.Partition()
	o.record(&run, pop.Stats(0))

	for gen := 1; gen <= o.settings.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("optimization cancelled", "generation", gen, "error", err)
			span.SetStatus(codes.Error, "cancelled")
			return o.finish(run, span), err
		}
		if err := o.generation(ctx, pop, gen); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return o.finish(run, span), err
		}
		o.record(&run, pop.Stats(gen))
	}

	return o.finish(run, span), nil
}

// generation advances the population by one step: mate, mutate, replace,
// then evaluate everything new before re-partitioning.
func (o *Optimizer) generation(ctx context.Context, pop *Population, gen int) error {
	_, span := o.tracer.Start(ctx, "engine.generation", trace.WithAttributes(attribute.Int("generation", gen)))
	defer span.End()

	offspring := pop.Mating()
	mutants := pop.Mutation()
	pop.Replace(offspring, mutants)

	if err := o.evaluate(pop.Unevaluated()); err != nil {
		return fmt.Errorf("generation %d: %w", gen, err)
	}
	pop.Partition()

	best := pop.Best()
	span.SetAttributes(
		attribute.Float64("best_fitness", best.Fitness()),
		attribute.Int("bins_used", best.Result().BinsUsed),
	)
	return nil
}

// evaluate packs every individual in inds across the configured workers and
// returns once all are done.
func (o *Optimizer) evaluate(inds []*Individual) error {
	o.mu.Lock()
	base := o.evaluations
	o.evaluations += len(inds)
	o.mu.Unlock()

	p := pool.New().WithErrors().WithMaxGoroutines(o.settings.Workers)
	for i, ind := range inds {
		seq := base + i
		p.Go(func() error {
			res, err := o.placer.Evaluate(ind.Chromosome, o.problem.Items)
			if err != nil {
				return err
			}
			ind.setResult(res)
			o.offer(res, seq)
			return nil
		})
	}
	return p.Wait()
}

// offer records res as champion if it beats the current one. Equal fitness
// goes to the earlier evaluation so the outcome is independent of worker
// scheduling.
func (o *Optimizer) offer(res model.PackingResult, seq int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.hasChampion || res.Fitness < o.champion.Fitness ||
		(res.Fitness == o.champion.Fitness && seq < o.championSeq) {
		o.champion = res
		o.championSeq = seq
		o.hasChampion = true
	}
}

func (o *Optimizer) record(run *model.RunResult, stats model.GenerationStats) {
	run.History = append(run.History, stats)

	attrs := []any{
		"generation", stats.Generation,
		"best", stats.Best,
		"mean", stats.Mean,
		"bins", stats.BinsUsed,
	}
	if o.settings.LogEvery > 0 && stats.Generation%o.settings.LogEvery == 0 {
		if champ, ok := o.Champion(); ok {
			attrs = append(attrs, "loads", champ.Loads())
		}
		o.logger.Info("generation", attrs...)
	} else {
		o.logger.Debug("generation", attrs...)
	}

	if o.progress != nil {
		o.progress(stats)
	}
}

func (o *Optimizer) finish(run model.RunResult, span trace.Span) model.RunResult {
	o.mu.Lock()
	run.Best = o.champion
	run.Evaluations = o.evaluations
	o.mu.Unlock()
	run.Elapsed = time.Since(run.StartedAt)

	span.SetAttributes(
		attribute.Float64("best_fitness", run.Best.Fitness),
		attribute.Int("bins_used", run.Best.BinsUsed),
		attribute.Int("evaluations", run.Evaluations),
	)
	o.logger.Info("optimization finished",
		"problem", run.Problem,
		"fitness", run.Best.Fitness,
		"bins", run.Best.BinsUsed,
		"lower_bound", run.LowerBound,
		"evaluations", run.Evaluations,
		"elapsed", run.Elapsed.String(),
	)
	return run
}
