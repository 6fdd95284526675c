package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/piwi3910/BoxStack/internal/model"
)

// ErrInvalidChromosome is returned when a chromosome's length does not
// match twice the number of items.
var ErrInvalidChromosome = errors.New("invalid chromosome")

// Chromosome is a vector of 2N random keys in [0, 1). The first N genes
// decide packing order, the second N decide each item's orientation.
type Chromosome []float64

// RandomChromosome draws a chromosome for n items.
func RandomChromosome(rng *rand.Rand, n int) Chromosome {
	c := make(Chromosome, 2*n)
	for i := range c {
		c[i] = rng.Float64()
	}
	return c
}

// Clone returns an independent copy.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// OrientedItem is an item paired with the orientation it will be packed in.
type OrientedItem struct {
	Item        model.Item
	Orientation model.Orientation
	Size        model.Vec3 // Extent after applying Orientation
}

// Decode turns a chromosome into an ordered, oriented item sequence.
// With order = argsort(c[:N]), item i lands at output position order[i]
// and takes orientation ceil(6*c[N+i]). Equal keys sort stably.
func Decode(c Chromosome, items []model.Item) ([]OrientedItem, error) {
	n := len(items)
	if len(c) != 2*n {
		return nil, fmt.Errorf("%w: length %d, expected %d for %d items", ErrInvalidChromosome, len(c), 2*n, n)
	}

	order := argsort(c[:n])
	out := make([]OrientedItem, n)
	for i, it := range items {
		o := model.OrientationFromGene(c[n+i])
		out[order[i]] = OrientedItem{
			Item:        it,
			Orientation: o,
			Size:        o.Apply(it.Size),
		}
	}
	return out, nil
}

func argsort(keys []float64) []int {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]] < keys[idx[b]]
	})
	return idx
}

// HeuristicChromosome encodes a volume-descending packing order with every
// item in its canonical orientation. It gives the optimizer a greedy
// starting point and serves as a baseline.
func HeuristicChromosome(items []model.Item) Chromosome {
	n := len(items)
	byVolume := make([]int, n)
	for i := range byVolume {
		byVolume[i] = i
	}
	sort.SliceStable(byVolume, func(a, b int) bool {
		return items[byVolume[a]].Volume() > items[byVolume[b]].Volume()
	})

	// Decode puts item i at argsort(keys)[i]. Giving key k the rank
	// byVolume[k] makes that argsort the inverse of byVolume, so position k
	// receives item byVolume[k].
	c := make(Chromosome, 2*n)
	for k := 0; k < n; k++ {
		c[k] = (float64(byVolume[k]) + 0.5) / float64(n)
		c[n+k] = 0.1
	}
	return c
}
