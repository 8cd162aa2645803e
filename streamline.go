package tractfilter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Streamline is an ordered sequence of 3D points describing one reconstructed
// fiber path. Functions in this package never modify a streamline's points.
type Streamline []r3.Vec

// Bundle is an indexed collection of streamlines analyzed together. Indices
// are the identity of a streamline for the duration of a call.
type Bundle []Streamline

// Reversed returns a new streamline with the points in opposite order.
func (s Streamline) Reversed() Streamline {
	out := make(Streamline, len(s))
	for i, p := range s {
		out[len(s)-1-i] = p
	}
	return out
}

// View is a subset of a bundle identified by index. It shares the backing
// bundle and never copies point data.
type View struct {
	// Indices are positions in the backing bundle, in the order they were
	// classified.
	Indices []int

	bundle Bundle
}

// NewView binds indices to b. The indices are not copied.
func NewView(b Bundle, indices []int) View {
	if indices == nil {
		indices = []int{}
	}
	return View{Indices: indices, bundle: b}
}

// Len returns the number of streamlines in the view.
func (v View) Len() int { return len(v.Indices) }

// At returns the k-th streamline of the view.
func (v View) At(k int) Streamline { return v.bundle[v.Indices[k]] }

// Streamlines returns the viewed streamlines as a new Bundle. Only slice
// headers are copied; the point storage is shared with the backing bundle.
func (v View) Streamlines() Bundle {
	out := make(Bundle, len(v.Indices))
	for k, idx := range v.Indices {
		out[k] = v.bundle[idx]
	}
	return out
}

// validateBundle checks that b is non-empty and that every streamline has
// finite points.
func validateBundle(b Bundle) error {
	if len(b) == 0 {
		return ErrEmptyInput
	}
	return validateStreamlines(b)
}

// validateStreamlines checks every streamline of b; an empty b passes.
func validateStreamlines(b Bundle) error {
	for i, s := range b {
		if len(s) == 0 {
			return invalidParamf("streamline %d has no points", i)
		}
		for k, p := range s {
			if !finite(p) {
				return invalidParamf("streamline %d point %d is not finite: %v", i, k, p)
			}
		}
	}
	return nil
}

func finite(p r3.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}
