package tractfilter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CurveMetrics measures the shape of a single streamline.
type CurveMetrics interface {
	// Winding is the cumulative unsigned turning angle in degrees.
	Winding(s Streamline) float64
	// MeanCurvature is the average local curvature along the curve.
	MeanCurvature(s Streamline) float64
}

// DiscreteCurveMetrics computes CurveMetrics from finite differences over the
// polyline's points.
type DiscreteCurveMetrics struct{}

// Winding sums, over every triplet of consecutive points, the angle between
// the incoming and outgoing segment. Zero-length segments are skipped so that
// repeated points do not count as turns.
func (DiscreteCurveMetrics) Winding(s Streamline) float64 {
	var turn float64
	var prev r3.Vec
	havePrev := false
	for i := 1; i < len(s); i++ {
		seg := r3.Sub(s[i], s[i-1])
		if r3.Norm2(seg) == 0 {
			continue
		}
		if havePrev {
			turn += math.Atan2(r3.Norm(r3.Cross(prev, seg)), r3.Dot(prev, seg))
		}
		prev, havePrev = seg, true
	}
	return turn * 180 / math.Pi
}

// MeanCurvature averages |γ' × γ''| / |γ'|³ over the points, with γ' and γ''
// estimated by central differences (one-sided at the ends). Points where the
// curve does not move are left out; a curve with none left has curvature 0.
func (DiscreteCurveMetrics) MeanCurvature(s Streamline) float64 {
	if len(s) < 2 {
		return 0
	}
	d1 := gradient(s)
	d2 := gradient(d1)

	var sum float64
	var count int
	for i := range s {
		speed := r3.Norm(d1[i])
		if speed == 0 {
			continue
		}
		sum += r3.Norm(r3.Cross(d1[i], d2[i])) / (speed * speed * speed)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// gradient estimates the derivative of s with respect to point index using
// second order central differences in the interior and first order
// differences at both ends.
func gradient(s Streamline) Streamline {
	n := len(s)
	out := make(Streamline, n)
	if n < 2 {
		return out
	}
	out[0] = r3.Sub(s[1], s[0])
	out[n-1] = r3.Sub(s[n-1], s[n-2])
	for i := 1; i < n-1; i++ {
		out[i] = r3.Scale(0.5, r3.Sub(s[i+1], s[i-1]))
	}
	return out
}
