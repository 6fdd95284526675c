package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/BoxStack/internal/model"
)

// Individual is one candidate solution: a chromosome and, once evaluated,
// its packing result.
type Individual struct {
	Chromosome Chromosome
	result     model.PackingResult
	evaluated  bool
}

// NewIndividual wraps c as an unevaluated individual.
func NewIndividual(c Chromosome) *Individual {
	return &Individual{Chromosome: c}
}

// Fitness returns the evaluated fitness. Unevaluated individuals report 0.
func (ind *Individual) Fitness() float64 { return ind.result.Fitness }

// Result returns the packing the chromosome decodes to.
func (ind *Individual) Result() model.PackingResult { return ind.result }

// Evaluated reports whether the individual has been packed.
func (ind *Individual) Evaluated() bool { return ind.evaluated }

func (ind *Individual) setResult(res model.PackingResult) {
	ind.result = res
	ind.evaluated = true
}

// Population holds the individuals of the current generation together with
// the elite and non-elite views computed by Partition. All random draws go
// through rng, which must only be used from one goroutine.
type Population struct {
	settings model.GeneticSettings
	nItems   int
	rng      *rand.Rand

	individuals []*Individual
	elites      []*Individual
	nonElites   []*Individual
}

// NewPopulation creates an empty population for n items.
func NewPopulation(settings model.GeneticSettings, n int, rng *rand.Rand) *Population {
	return &Population{
		settings: settings,
		nItems:   n,
		rng:      rng,
	}
}

// Individuals returns the current generation.
func (p *Population) Individuals() []*Individual { return p.individuals }

// Elites returns the fittest individuals as of the last Partition.
func (p *Population) Elites() []*Individual { return p.elites }

// NonElites returns the remaining individuals as of the last Partition.
func (p *Population) NonElites() []*Individual { return p.nonElites }

// Initialize fills the population with uniformly random chromosomes.
// When seed is non-nil it replaces the first individual.
func (p *Population) Initialize(seed Chromosome) {
	p.individuals = make([]*Individual, p.settings.Individuals)
	for i := range p.individuals {
		p.individuals[i] = NewIndividual(RandomChromosome(p.rng, p.nItems))
	}
	if seed != nil && len(p.individuals) > 0 {
		p.individuals[0] = NewIndividual(seed.Clone())
	}
	p.elites, p.nonElites = nil, nil
}

// Partition sorts the population by ascending fitness and splits it into
// elites and non-elites. Equal fitness keeps the previous order.
func (p *Population) Partition() {
	sort.SliceStable(p.individuals, func(i, j int) bool {
		return p.individuals[i].Fitness() < p.individuals[j].Fitness()
	})
	n := p.settings.Elites
	if n > len(p.individuals) {
		n = len(p.individuals)
	}
	p.elites = p.individuals[:n:n]
	p.nonElites = p.individuals[n:]
}

// Crossover builds a child gene by gene, taking the elite parent's gene
// with probability CrossoverProb and the non-elite parent's otherwise.
func (p *Population) Crossover(elite, nonElite *Individual) *Individual {
	child := make(Chromosome, len(elite.Chromosome))
	for i := range child {
		if p.rng.Float64() < p.settings.CrossoverProb {
			child[i] = elite.Chromosome[i]
		} else {
			child[i] = nonElite.Chromosome[i]
		}
	}
	return NewIndividual(child)
}

// Mating produces Offspring() children, each from an elite and a non-elite
// parent drawn uniformly with replacement.
func (p *Population) Mating() []*Individual {
	count := p.settings.Offspring()
	if count <= 0 || len(p.elites) == 0 || len(p.nonElites) == 0 {
		return nil
	}
	children := make([]*Individual, count)
	for i := range children {
		elite := p.elites[p.rng.Intn(len(p.elites))]
		nonElite := p.nonElites[p.rng.Intn(len(p.nonElites))]
		children[i] = p.Crossover(elite, nonElite)
	}
	return children
}

// Mutation produces Mutants() fresh random individuals.
func (p *Population) Mutation() []*Individual {
	count := p.settings.Mutants()
	mutants := make([]*Individual, count)
	for i := range mutants {
		mutants[i] = NewIndividual(RandomChromosome(p.rng, p.nItems))
	}
	return mutants
}

// Replace installs the next generation: the current elites followed by
// offspring and mutants.
func (p *Population) Replace(offspring, mutants []*Individual) {
	next := make([]*Individual, 0, len(p.elites)+len(offspring)+len(mutants))
	next = append(next, p.elites...)
	next = append(next, offspring...)
	next = append(next, mutants...)
	p.individuals = next
	p.elites, p.nonElites = nil, nil
}

// Unevaluated returns the individuals that still need packing.
func (p *Population) Unevaluated() []*Individual {
	var out []*Individual
	for _, ind := range p.individuals {
		if !ind.evaluated {
			out = append(out, ind)
		}
	}
	return out
}

// Best returns the fittest individual, or nil for an empty population.
func (p *Population) Best() *Individual {
	var best *Individual
	for _, ind := range p.individuals {
		if best == nil || ind.Fitness() < best.Fitness() {
			best = ind
		}
	}
	return best
}

// Stats summarises the current generation.
func (p *Population) Stats(generation int) model.GenerationStats {
	stats := model.GenerationStats{Generation: generation}
	if len(p.individuals) == 0 {
		return stats
	}
	var sum float64
	for _, ind := range p.individuals {
		sum += ind.Fitness()
	}
	best := p.Best()
	stats.Best = best.Fitness()
	stats.BinsUsed = best.result.BinsUsed
	stats.Mean = sum / float64(len(p.individuals))
	return stats
}
