package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Item is a rectangular box to be packed. Its extents are given in the
// canonical (length, width, height) order before any orientation is applied.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Size  Vec3   `json:"size"`
}

func NewItem(label string, l, w, h int) Item {
	return Item{
		ID:    uuid.New().String()[:8],
		Label: label,
		Size:  V(l, w, h),
	}
}

// Volume returns the item's volume, which is orientation independent.
func (it Item) Volume() int64 {
	return it.Size.Volume()
}

// DisplayName returns the label when set, otherwise the ID.
func (it Item) DisplayName() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}

// Orientation selects one of the six axis-aligned rotations of an item.
type Orientation int

const (
	OrientLWH Orientation = iota + 1 // (L, W, H)
	OrientLHW                        // (L, H, W)
	OrientWLH                        // (W, L, H)
	OrientWHL                        // (W, H, L)
	OrientHLW                        // (H, L, W)
	OrientHWL                        // (H, W, L)
)

// orientationAxes lists, per orientation, which source axis lands on X, Y and Z.
var orientationAxes = [7][3]int{
	{},
	{AxisX, AxisY, AxisZ},
	{AxisX, AxisZ, AxisY},
	{AxisY, AxisX, AxisZ},
	{AxisY, AxisZ, AxisX},
	{AxisZ, AxisX, AxisY},
	{AxisZ, AxisY, AxisX},
}

// AllOrientations returns the six orientations in gene order.
func AllOrientations() []Orientation {
	return []Orientation{OrientLWH, OrientLHW, OrientWLH, OrientWHL, OrientHLW, OrientHWL}
}

// Valid reports whether o is one of the six defined orientations.
func (o Orientation) Valid() bool {
	return o >= OrientLWH && o <= OrientHWL
}

// Apply returns size permuted according to o. Invalid orientations leave
// size unchanged.
func (o Orientation) Apply(size Vec3) Vec3 {
	if !o.Valid() {
		return size
	}
	ax := orientationAxes[o]
	return Vec3{size[ax[0]], size[ax[1]], size[ax[2]]}
}

func (o Orientation) String() string {
	switch o {
	case OrientLWH:
		return "LWH"
	case OrientLHW:
		return "LHW"
	case OrientWLH:
		return "WLH"
	case OrientWHL:
		return "WHL"
	case OrientHLW:
		return "HLW"
	case OrientHWL:
		return "HWL"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// OrientationFromGene maps a random key in [0, 1) to an orientation as
// ceil(6*g). A gene of exactly 0 selects the first orientation; values at or
// above 1 select the last.
func OrientationFromGene(g float64) Orientation {
	o := Orientation(math.Ceil(6 * g))
	if o < OrientLWH {
		return OrientLWH
	}
	if o > OrientHWL {
		return OrientHWL
	}
	return o
}
