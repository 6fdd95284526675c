// Package dataset generates synthetic bin packing instances with a known
// one-bin solution and writes them in the instance file format.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/piwi3910/BoxStack/internal/model"
)

// ErrInvalidOptions is returned for generator options out of range.
var ErrInvalidOptions = errors.New("invalid generator options")

const (
	minItems = 10
	maxItems = 1000
)

// GeneratorOptions controls instance generation.
type GeneratorOptions struct {
	Items   int        `json:"items" yaml:"items" mapstructure:"items"`
	Samples int        `json:"samples" yaml:"samples" mapstructure:"samples"`
	Seed    int64      `json:"seed" yaml:"seed" mapstructure:"seed"`
	BinSize model.Vec3 `json:"bin_size" yaml:"bin_size" mapstructure:"bin_size"`
}

// DefaultGeneratorOptions returns 100 items cut from a 100x100x100 bin with
// 5 surplus pieces removed.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Items:   100,
		Samples: 5,
		Seed:    0,
		BinSize: model.V(100, 100, 100),
	}
}

// Validate checks the option ranges.
func (o GeneratorOptions) Validate() error {
	if o.Items < minItems || o.Items > maxItems {
		return fmt.Errorf("%w: items must be between %d and %d, got %d", ErrInvalidOptions, minItems, maxItems, o.Items)
	}
	if o.Samples < 0 {
		return fmt.Errorf("%w: samples must not be negative, got %d", ErrInvalidOptions, o.Samples)
	}
	if !o.BinSize.Positive() {
		return fmt.Errorf("%w: bin size %s", ErrInvalidOptions, o.BinSize)
	}
	if o.BinSize.Volume() < int64(o.Items+o.Samples) {
		return fmt.Errorf("%w: bin %s cannot be cut into %d pieces", ErrInvalidOptions, o.BinSize, o.Items+o.Samples)
	}
	return nil
}

// FileName returns the conventional instance file name, "<items>.<seed>.dat".
func (o GeneratorOptions) FileName() string {
	return fmt.Sprintf("%d.%d.dat", o.Items, o.Seed)
}

// piece is a box cut from the bin, remembered with its origin.
type piece struct {
	origin model.Vec3
	size   model.Vec3
}

// Generate cuts the bin into Items+Samples pieces, always splitting the
// largest piece along its longest axis, then drops the Samples pieces that
// sit highest. The remaining items pack perfectly into one bin.
func Generate(opts GeneratorOptions) (model.Problem, error) {
	if err := opts.Validate(); err != nil {
		return model.Problem{}, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	pieces := []piece{{size: opts.BinSize}}
	for len(pieces) < opts.Items+opts.Samples {
		last := pieces[len(pieces)-1]
		pieces = pieces[:len(pieces)-1]

		axis := last.size.LongestAxis()
		extent := last.size[axis]
		if extent == 1 {
			// unit cube
			pieces = append(pieces, last)
			continue
		}

		cut := 1 + rng.Intn(extent-1)
		a, b := last, last
		a.size[axis] = cut
		b.size[axis] = extent - cut
		b.origin[axis] += cut

		pieces = append(pieces, a, b)
		sort.SliceStable(pieces, func(i, j int) bool {
			return pieces[i].size.Volume() < pieces[j].size.Volume()
		})
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].origin[model.AxisZ] < pieces[j].origin[model.AxisZ]
	})
	pieces = pieces[:opts.Items]
	rng.Shuffle(len(pieces), func(i, j int) {
		pieces[i], pieces[j] = pieces[j], pieces[i]
	})

	p := model.Problem{
		Name:    fmt.Sprintf("%d.%d", opts.Items, opts.Seed),
		BinSize: opts.BinSize,
		NBins:   1,
		NItems:  opts.Items,
		Items:   make([]model.Item, len(pieces)),
	}
	for i, pc := range pieces {
		p.Items[i] = model.Item{
			ID:    fmt.Sprintf("%d", i+1),
			Label: fmt.Sprintf("Item %d", i+1),
			Size:  pc.size,
		}
	}
	p.TotalVolume = p.ItemVolume()
	return p, nil
}
