package tractfilter

import (
	"math"

	"github.com/cockroachdb/errors"
)

// thresholdDecay is the ratio between consecutive clustering thresholds.
const thresholdDecay = 1.2

// ComputeThresholds derives the descending clustering threshold schedule from
// a bounding box.
//
// The first threshold is half the shortest side of the box. Level i uses
//
//	initial / 1.2^i
//
// and the schedule stops before the first value below floor. A box whose
// shortest side is under 2*floor, or is not finite, yields no thresholds and
// ErrDegenerateGeometry.
func ComputeThresholds(box BoundingBox, floor float64) ([]float64, error) {
	if !(floor > 0) || math.IsInf(floor, 1) {
		return nil, invalidParamf("threshold floor must be finite and > 0, got %v", floor)
	}

	initial := box.MinExtent() / 2
	if math.IsNaN(initial) || math.IsInf(initial, 0) {
		err := errors.Wrapf(ErrDegenerateGeometry,
			"initial threshold %v is not finite", initial)
		return nil, errors.WithHint(err, "every point coordinate must be finite")
	}

	var thresholds []float64
	for i := 0; ; i++ {
		t := initial / math.Pow(thresholdDecay, float64(i))
		if !(t >= floor) {
			break
		}
		thresholds = append(thresholds, t)
	}

	if len(thresholds) == 0 {
		err := errors.Wrapf(ErrDegenerateGeometry,
			"initial threshold %v is below floor %v", initial, floor)
		return nil, errors.WithHintf(err,
			"the shortest bounding box side (%v) must be at least %v", box.MinExtent(), 2*floor)
	}
	return thresholds, nil
}
