package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidItem is returned for items with a non-positive extent.
	ErrInvalidItem = errors.New("invalid item")
	// ErrItemTooLarge is returned when an item fits an empty bin in no orientation.
	ErrItemTooLarge = errors.New("item does not fit in an empty bin")
	// ErrInvalidBin is returned for a bin with a non-positive extent.
	ErrInvalidBin = errors.New("invalid bin size")
)

// Problem is one bin packing instance: a bin size and the items to pack.
// NBins, NItems and TotalVolume are informational values carried over from
// the instance file header.
type Problem struct {
	Name        string `json:"name"`
	BinSize     Vec3   `json:"bin_size"`
	NBins       int    `json:"n_bins,omitempty"`
	NItems      int    `json:"n_items,omitempty"`
	TotalVolume int64  `json:"total_volume,omitempty"`
	Items       []Item `json:"items"`
}

// TotalItems returns the number of items the optimizer packs.
func (p Problem) TotalItems() int {
	return len(p.Items)
}

// BinVolume returns the volume of a single bin.
func (p Problem) BinVolume() int64 {
	return p.BinSize.Volume()
}

// ItemVolume returns the summed volume of all items.
func (p Problem) ItemVolume() int64 {
	var total int64
	for _, it := range p.Items {
		total += it.Volume()
	}
	return total
}

// LowerBound returns the continuous lower bound on the number of bins,
// ceil(item volume / bin volume).
func (p Problem) LowerBound() int {
	bv := p.BinVolume()
	if bv <= 0 {
		return 0
	}
	iv := p.ItemVolume()
	return int((iv + bv - 1) / bv)
}

// FitsEmptyBin reports whether size fits the bin in at least one orientation.
func (p Problem) FitsEmptyBin(size Vec3) bool {
	bin := Box{Max: p.BinSize}
	for _, o := range AllOrientations() {
		if Fits(o.Apply(size), bin) {
			return true
		}
	}
	return false
}

// Validate checks that the problem can be packed.
func (p Problem) Validate() error {
	if !p.BinSize.Positive() {
		return fmt.Errorf("%w: %s", ErrInvalidBin, p.BinSize)
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("%w: problem %q has no items", ErrInvalidItem, p.Name)
	}
	for i, it := range p.Items {
		if !it.Size.Positive() {
			return fmt.Errorf("%w: item %d (%s) has size %s", ErrInvalidItem, i, it.DisplayName(), it.Size)
		}
		if !p.FitsEmptyBin(it.Size) {
			return fmt.Errorf("%w: item %d (%s) of size %s, bin %s", ErrItemTooLarge, i, it.DisplayName(), it.Size, p.BinSize)
		}
	}
	return nil
}
