package tractfilter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingBox is the axis-aligned box enclosing every point of a bundle.
type BoundingBox struct {
	Min, Max r3.Vec
}

// Extent returns the side lengths of the box along each axis.
func (b BoundingBox) Extent() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// MinExtent returns the shortest side of the box.
func (b BoundingBox) MinExtent() float64 {
	e := b.Extent()
	return min(e.X, e.Y, e.Z)
}

// ComputeBoundingBox reduces every point of every streamline to a
// componentwise min and max corner. Returns ErrEmptyInput if the bundle has
// no streamlines or no points.
func ComputeBoundingBox(b Bundle) (BoundingBox, error) {
	box := BoundingBox{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}

	points := 0
	for _, s := range b {
		for _, p := range s {
			box.Min = r3.Vec{X: min(box.Min.X, p.X), Y: min(box.Min.Y, p.Y), Z: min(box.Min.Z, p.Z)}
			box.Max = r3.Vec{X: max(box.Max.X, p.X), Y: max(box.Max.Y, p.Y), Z: max(box.Max.Z, p.Z)}
		}
		points += len(s)
	}

	if points == 0 {
		return BoundingBox{}, ErrEmptyInput
	}
	return box, nil
}
