package tractfilter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Metric is a curve-distance function. Features maps a streamline into the
// space where distances and cluster centroids are computed; Distance must be
// symmetric and non-negative over feature-space curves.
type Metric interface {
	Name() string
	Features(s Streamline) Streamline
	Distance(a, b Streamline) float64
}

// Aligner is implemented by metrics whose features have an orientation
// ambiguity. Align returns s oriented to best match ref, so that averaging
// into a centroid does not cancel out.
type Aligner interface {
	Align(ref, s Streamline) Streamline
}

// MetricFunc adapts a plain distance function into a Metric with identity
// features.
type MetricFunc func(a, b Streamline) float64

func (f MetricFunc) Name() string                     { return "func" }
func (f MetricFunc) Features(s Streamline) Streamline { return s }
func (f MetricFunc) Distance(a, b Streamline) float64 { return f(a, b) }

// DefaultMDFPoints is the resampling resolution of the default metric.
const DefaultMDFPoints = 12

// MDFMetric is the minimum average direct-flip distance. Both curves are
// resampled to Points equally spaced points; the distance is the smaller of
// the mean pointwise Euclidean distance in direct and in reversed order.
type MDFMetric struct {
	Points int
}

func (m MDFMetric) points() int {
	if m.Points < 2 {
		return DefaultMDFPoints
	}
	return m.Points
}

func (m MDFMetric) Name() string { return fmt.Sprintf("MDF_%dpoints", m.points()) }

func (m MDFMetric) Features(s Streamline) Streamline { return Resample(s, m.points()) }

// Distance takes feature-space curves, as returned by Features. Curves with
// exactly Points points are compared as given, even if their spacing is
// uneven; any other length is resampled first. To compare raw streamlines,
// pass them through Features.
func (m MDFMetric) Distance(a, b Streamline) float64 {
	if len(a) != len(b) || len(a) != m.points() {
		a, b = m.Features(a), m.Features(b)
	}
	direct, flipped := directFlip(a, b)
	return min(direct, flipped)
}

// Align implements Aligner.
func (m MDFMetric) Align(ref, s Streamline) Streamline {
	if len(ref) != len(s) {
		return s
	}
	direct, flipped := directFlip(ref, s)
	if flipped < direct {
		return s.Reversed()
	}
	return s
}

// directFlip returns the mean pointwise distance of a to b, and of a to b
// reversed. a and b must have equal length.
func directFlip(a, b Streamline) (direct, flipped float64) {
	n := len(a)
	if n == 0 {
		return 0, 0
	}
	for i := range a {
		direct += r3.Norm(r3.Sub(a[i], b[i]))
		flipped += r3.Norm(r3.Sub(a[i], b[n-1-i]))
	}
	return direct / float64(n), flipped / float64(n)
}

// MetricByName resolves a metric name such as "MDF_12points".
func MetricByName(name string) (Metric, error) {
	var points int
	if _, err := fmt.Sscanf(name, "MDF_%dpoints", &points); err == nil && points >= 2 {
		if want := fmt.Sprintf("MDF_%dpoints", points); want == name {
			return MDFMetric{Points: points}, nil
		}
	}
	return nil, invalidParamf("unknown metric %q", name)
}

// Resample returns n points spaced equally by arc length along s, keeping
// both endpoints. A single-point or zero-length streamline resamples to n
// copies of its first point.
func Resample(s Streamline, n int) Streamline {
	out := make(Streamline, n)
	if len(s) == 0 || n == 0 {
		return out[:0]
	}

	cum := make([]float64, len(s))
	for i := 1; i < len(s); i++ {
		cum[i] = cum[i-1] + r3.Norm(r3.Sub(s[i], s[i-1]))
	}
	total := cum[len(s)-1]
	if total == 0 || n == 1 {
		for i := range out {
			out[i] = s[0]
		}
		return out
	}

	seg := 1
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)
		for seg < len(s)-1 && cum[seg] < target {
			seg++
		}
		span := cum[seg] - cum[seg-1]
		if span == 0 {
			out[i] = s[seg]
			continue
		}
		frac := math.Min(math.Max((target-cum[seg-1])/span, 0), 1)
		out[i] = r3.Add(s[seg-1], r3.Scale(frac, r3.Sub(s[seg], s[seg-1])))
	}
	out[n-1] = s[len(s)-1]
	return out
}
