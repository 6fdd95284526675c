// Package model holds the data types shared by the packing engine, the
// importers and the exporters: geometry primitives, items, problems,
// optimizer settings and results.
package model

import "fmt"

// Axis indices into a Vec3.
const (
	AxisX = 0 // length
	AxisY = 1 // width
	AxisZ = 2 // height
)

// Vec3 is an integer 3D vector, used both for points and for extents.
type Vec3 [3]int

// V constructs a Vec3 from its components.
func V(x, y, z int) Vec3 {
	return Vec3{x, y, z}
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Volume returns the product of the components.
func (v Vec3) Volume() int64 {
	return int64(v[0]) * int64(v[1]) * int64(v[2])
}

// Positive reports whether all components are strictly positive.
func (v Vec3) Positive() bool {
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}

// MaxComponent returns the largest component.
func (v Vec3) MaxComponent() int {
	m := v[0]
	for _, c := range v[1:] {
		if c > m {
			m = c
		}
	}
	return m
}

// LongestAxis returns the first axis holding the largest component.
func (v Vec3) LongestAxis() int {
	axis := AxisX
	for a := AxisY; a <= AxisZ; a++ {
		if v[a] > v[axis] {
			axis = a
		}
	}
	return axis
}

func (v Vec3) String() string {
	return fmt.Sprintf("%dx%dx%d", v[0], v[1], v[2])
}

// Box is an axis-aligned region given by its minimum and maximum corners.
// It describes both placed items and empty maximal spaces.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// BoxAt returns the box with minimum corner at origin and the given extent.
func BoxAt(origin, extent Vec3) Box {
	return Box{Min: origin, Max: origin.Add(extent)}
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Volume returns the volume enclosed by the box.
func (b Box) Volume() int64 {
	return b.Size().Volume()
}

// Valid reports whether the box has positive extent on every axis.
// Boxes failing this are degenerate (a face, an edge or inverted).
func (b Box) Valid() bool {
	return b.Min[0] < b.Max[0] && b.Min[1] < b.Max[1] && b.Min[2] < b.Max[2]
}

func (b Box) String() string {
	return fmt.Sprintf("[(%d,%d,%d)-(%d,%d,%d)]",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// Fits reports whether an item of the given extent, anchored at the
// minimum corner of ems, stays within ems on every axis.
func Fits(extent Vec3, ems Box) bool {
	for a := 0; a < 3; a++ {
		if ems.Min[a]+extent[a] > ems.Max[a] {
			return false
		}
	}
	return true
}

// Overlaps reports whether a and b share interior volume.
// Boxes that only touch along a face, edge or corner do not overlap.
func Overlaps(a, b Box) bool {
	for ax := 0; ax < 3; ax++ {
		if !(a.Min[ax] < b.Max[ax] && a.Max[ax] > b.Min[ax]) {
			return false
		}
	}
	return true
}

// Inscribed reports whether inner lies entirely within outer.
// A box is inscribed in itself.
func Inscribed(inner, outer Box) bool {
	for a := 0; a < 3; a++ {
		if inner.Min[a] < outer.Min[a] || inner.Max[a] > outer.Max[a] {
			return false
		}
	}
	return true
}
