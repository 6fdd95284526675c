package engine

import (
	"github.com/piwi3910/BoxStack/internal/model"
)

// Bin tracks one container during packing: the boxes already placed in it
// and its empty maximal spaces (EMS). A new bin starts with a single EMS
// covering the whole container.
type Bin struct {
	size   model.Vec3
	spaces []model.Box
	placed []model.Placement
	load   int64
}

// NewBin creates an empty bin of the given size.
func NewBin(size model.Vec3) *Bin {
	return &Bin{
		size:   size,
		spaces: []model.Box{{Max: size}},
	}
}

// Size returns the bin extent.
func (b *Bin) Size() model.Vec3 { return b.size }

// Load returns the summed volume of placed items.
func (b *Bin) Load() int64 { return b.load }

// Spaces returns a copy of the current empty maximal spaces.
func (b *Bin) Spaces() []model.Box {
	out := make([]model.Box, len(b.spaces))
	copy(out, b.spaces)
	return out
}

// Placements returns a copy of the placed items.
func (b *Bin) Placements() []model.Placement {
	out := make([]model.Placement, len(b.placed))
	copy(out, b.placed)
	return out
}

// Choose selects the EMS an item of the given extent should go into.
// Eligible spaces fit the item at their minimum corner without overlapping
// any placed box. Among those, the one whose resulting far corner lies
// furthest from the bin's far corner wins; ties keep the earliest space.
func (b *Bin) Choose(extent model.Vec3) (int, bool) {
	best := -1
	bestDist := int64(-1)
	for i, ems := range b.spaces {
		if !model.Fits(extent, ems) {
			continue
		}
		candidate := model.BoxAt(ems.Min, extent)
		if b.collides(candidate) {
			continue
		}
		if d := farCornerDistance(ems.Min.Add(extent), b.size); d > bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}

// Commit places item with the given orientation at the minimum corner of
// the EMS at idx and rebuilds the space list. The consumed EMS is removed
// by position. Each of the three successor spaces is kept only if it is
// non-degenerate and not inscribed in a retained space; an accepted
// successor evicts retained spaces inscribed in it.
func (b *Bin) Commit(item model.Item, o model.Orientation, idx int) model.Placement {
	ems := b.spaces[idx]
	extent := o.Apply(item.Size)
	placed := model.BoxAt(ems.Min, extent)

	p := model.Placement{Item: item, Orientation: o, Box: placed}
	b.placed = append(b.placed, p)
	b.load += placed.Volume()

	b.spaces = append(b.spaces[:idx], b.spaces[idx+1:]...)

	for _, succ := range successors(ems, placed) {
		if !succ.Valid() {
			continue
		}
		b.accept(succ)
	}
	return p
}

// Result snapshots the bin as a BinResult with the given index.
func (b *Bin) Result(index int) model.BinResult {
	return model.BinResult{
		Index:      index,
		Size:       b.size,
		Placements: b.Placements(),
		Load:       b.load,
	}
}

// accept adds succ to the space list unless a retained space contains it.
func (b *Bin) accept(succ model.Box) {
	for _, s := range b.spaces {
		if model.Inscribed(succ, s) {
			return
		}
	}
	kept := b.spaces[:0]
	for _, s := range b.spaces {
		if !model.Inscribed(s, succ) {
			kept = append(kept, s)
		}
	}
	b.spaces = append(kept, succ)
}

func (b *Bin) collides(candidate model.Box) bool {
	for _, p := range b.placed {
		if model.Overlaps(candidate, p.Box) {
			return true
		}
	}
	return false
}

// successors returns the three spaces left in ems after placed occupies its
// minimum corner: beyond the item along X, along Y and along Z. Each spans
// to the far corner of ems.
func successors(ems, placed model.Box) [3]model.Box {
	x1, y1, z1 := ems.Min[0], ems.Min[1], ems.Min[2]
	x2, y2, z2 := placed.Max[0], placed.Max[1], placed.Max[2]
	far := ems.Max
	return [3]model.Box{
		{Min: model.V(x2, y1, z1), Max: far},
		{Min: model.V(x1, y2, z1), Max: far},
		{Min: model.V(x1, y1, z2), Max: far},
	}
}

// farCornerDistance is the squared Euclidean distance between corner and
// the bin's far corner.
func farCornerDistance(corner, size model.Vec3) int64 {
	var d int64
	for a := 0; a < 3; a++ {
		diff := int64(size[a] - corner[a])
		d += diff * diff
	}
	return d
}
