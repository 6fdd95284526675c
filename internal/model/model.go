package model

import (
	"math"
	"time"
)

// Placement represents a single item placed in a bin.
type Placement struct {
	Item        Item        `json:"item"`
	Orientation Orientation `json:"orientation"`
	Box         Box         `json:"box"` // Occupied region in bin coordinates
}

// Size returns the oriented extent of the placed item.
func (p Placement) Size() Vec3 {
	return p.Box.Size()
}

// Volume returns the occupied volume.
func (p Placement) Volume() int64 {
	return p.Box.Volume()
}

// BinResult represents one bin with its placed items.
type BinResult struct {
	Index      int         `json:"index"`
	Size       Vec3        `json:"size"`
	Placements []Placement `json:"placements"`
	Load       int64       `json:"load"` // Summed volume of the placed items
}

// TotalVolume returns the bin volume.
func (br BinResult) TotalVolume() int64 {
	return br.Size.Volume()
}

// Efficiency returns the filled percentage of the bin.
func (br BinResult) Efficiency() float64 {
	tv := br.TotalVolume()
	if tv == 0 {
		return 0
	}
	return float64(br.Load) / float64(tv) * 100.0
}

// Boxes returns the occupied regions of all placements.
func (br BinResult) Boxes() []Box {
	boxes := make([]Box, len(br.Placements))
	for i, p := range br.Placements {
		boxes[i] = p.Box
	}
	return boxes
}

// PackingResult is the outcome of decoding and packing one chromosome.
// Fitness is bins used plus the fill fraction of the least loaded bin;
// lower is better.
type PackingResult struct {
	Fitness  float64     `json:"fitness"`
	BinsUsed int         `json:"bins_used"`
	Bins     []BinResult `json:"bins"`
}

// Loads returns the load of each bin in creation order.
func (pr PackingResult) Loads() []int64 {
	loads := make([]int64, len(pr.Bins))
	for i, b := range pr.Bins {
		loads[i] = b.Load
	}
	return loads
}

// MinLoad returns the smallest bin load, or 0 when no bin is used.
func (pr PackingResult) MinLoad() int64 {
	if len(pr.Bins) == 0 {
		return 0
	}
	m := int64(math.MaxInt64)
	for _, b := range pr.Bins {
		if b.Load < m {
			m = b.Load
		}
	}
	return m
}

// TotalLoad returns the volume placed across all bins.
func (pr PackingResult) TotalLoad() int64 {
	var total int64
	for _, b := range pr.Bins {
		total += b.Load
	}
	return total
}

// PlacedCount returns the number of items placed across all bins.
func (pr PackingResult) PlacedCount() int {
	n := 0
	for _, b := range pr.Bins {
		n += len(b.Placements)
	}
	return n
}

// TotalEfficiency returns the overall filled percentage across all used bins.
func (pr PackingResult) TotalEfficiency() float64 {
	var total int64
	for _, b := range pr.Bins {
		total += b.TotalVolume()
	}
	if total == 0 {
		return 0
	}
	return float64(pr.TotalLoad()) / float64(total) * 100.0
}

// GenerationStats summarises one generation of the optimizer.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Mean       float64 `json:"mean"`
	BinsUsed   int     `json:"bins_used"`
}

// RunResult holds the full outcome of an optimizer run.
type RunResult struct {
	ID          string            `json:"id"`
	Problem     string            `json:"problem"`
	BinSize     Vec3              `json:"bin_size"`
	ItemCount   int               `json:"item_count"`
	Settings    GeneticSettings   `json:"settings"`
	Best        PackingResult     `json:"best"`
	History     []GenerationStats `json:"history"`
	Evaluations int               `json:"evaluations"`
	LowerBound  int               `json:"lower_bound"`
	StartedAt   time.Time         `json:"started_at"`
	Elapsed     time.Duration     `json:"elapsed"`
}

// Gap returns how many bins the best packing uses above the volume lower bound.
func (r RunResult) Gap() int {
	return r.Best.BinsUsed - r.LowerBound
}

// Generations returns the number of completed generations; History holds the
// initial population as entry 0.
func (r RunResult) Generations() int {
	if len(r.History) == 0 {
		return 0
	}
	return len(r.History) - 1
}
