package engine

import (
	"fmt"

	"github.com/piwi3910/BoxStack/internal/model"
)

// Placer packs oriented item sequences into bins of one fixed size.
// It holds no state between calls and is safe for concurrent use.
type Placer struct {
	binSize model.Vec3
}

// NewPlacer creates a placer for bins of the given size.
func NewPlacer(binSize model.Vec3) *Placer {
	return &Placer{binSize: binSize}
}

// BinSize returns the bin extent the placer packs into.
func (p *Placer) BinSize() model.Vec3 {
	return p.binSize
}

// Pack places the items in sequence order. Each item goes into the first
// bin, in creation order, that has an eligible EMS; when none has, a new
// bin is opened. An item whose decoded orientation exceeds an empty bin is
// turned to the first orientation that fits.
func (p *Placer) Pack(seq []OrientedItem) (model.PackingResult, error) {
	var bins []*Bin

	for _, oi := range seq {
		placed := false
		for _, b := range bins {
			if idx, ok := b.Choose(oi.Size); ok {
				b.Commit(oi.Item, oi.Orientation, idx)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		b := NewBin(p.binSize)
		o, ok := p.orientationForEmptyBin(oi)
		if !ok {
			return model.PackingResult{}, fmt.Errorf("%w: item %s of size %s, bin %s",
				model.ErrItemTooLarge, oi.Item.DisplayName(), oi.Item.Size, p.binSize)
		}
		idx, _ := b.Choose(o.Apply(oi.Item.Size))
		b.Commit(oi.Item, o, idx)
		bins = append(bins, b)
	}

	return p.result(bins), nil
}

// Evaluate decodes c against items and packs the resulting sequence.
func (p *Placer) Evaluate(c Chromosome, items []model.Item) (model.PackingResult, error) {
	seq, err := Decode(c, items)
	if err != nil {
		return model.PackingResult{}, err
	}
	return p.Pack(seq)
}

func (p *Placer) orientationForEmptyBin(oi OrientedItem) (model.Orientation, bool) {
	empty := model.Box{Max: p.binSize}
	if model.Fits(oi.Size, empty) {
		return oi.Orientation, true
	}
	for _, o := range model.AllOrientations() {
		if model.Fits(o.Apply(oi.Item.Size), empty) {
			return o, true
		}
	}
	return 0, false
}

func (p *Placer) result(bins []*Bin) model.PackingResult {
	res := model.PackingResult{
		BinsUsed: len(bins),
		Bins:     make([]model.BinResult, len(bins)),
	}
	for i, b := range bins {
		res.Bins[i] = b.Result(i)
	}
	res.Fitness = Fitness(res, p.binSize.Volume())
	return res
}

// Fitness scores a packing as bins used plus the fill fraction of the least
// loaded bin. Lower is better.
func Fitness(res model.PackingResult, binVolume int64) float64 {
	if res.BinsUsed == 0 || binVolume <= 0 {
		return float64(res.BinsUsed)
	}
	return float64(res.BinsUsed) + float64(res.MinLoad())/float64(binVolume)
}
