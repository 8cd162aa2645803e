package tractfilter

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cluster is one group produced by a Clusterer.
type Cluster struct {
	// Indices are bundle positions of the members, in insertion order.
	Indices []int

	// Centroid is the mean of the members' features.
	Centroid Streamline
}

// Clusterer groups the streamlines named by ordering. Every index in ordering
// must appear in exactly one returned cluster, and the result must be
// deterministic for a given ordering.
type Clusterer interface {
	Cluster(b Bundle, m Metric, threshold float64, ordering []int) ([]Cluster, error)
}

// AssignRule selects which cluster an incoming streamline joins.
type AssignRule int

const (
	// AssignFirst joins the first cluster, in creation order, whose centroid
	// is closer than the threshold.
	AssignFirst AssignRule = iota

	// AssignNearest joins the closest cluster if it is closer than the
	// threshold.
	AssignNearest
)

// QuickBundles is the online centroid clustering of Garyfallidis et al.
// Streamlines are visited once in the given order; each one joins an existing
// cluster (per Rule) or starts a new one. A centroid is at distance
// strictly below the threshold to be joined.
type QuickBundles struct {
	Rule AssignRule
}

// Cluster implements Clusterer.
func (q QuickBundles) Cluster(b Bundle, m Metric, threshold float64, ordering []int) ([]Cluster, error) {
	aligner, _ := m.(Aligner)

	var clusters []Cluster
	for _, idx := range ordering {
		if idx < 0 || idx >= len(b) {
			return nil, invalidParamf("ordering index %d out of range [0, %d)", idx, len(b))
		}
		f := m.Features(b[idx])

		best := -1
		bestDist := math.Inf(1)
		for k := range clusters {
			d := m.Distance(clusters[k].Centroid, f)
			if d < threshold && d < bestDist {
				best, bestDist = k, d
				if q.Rule == AssignFirst {
					break
				}
			}
		}

		if best < 0 {
			centroid := make(Streamline, len(f))
			copy(centroid, f)
			clusters = append(clusters, Cluster{Indices: []int{idx}, Centroid: centroid})
			continue
		}

		c := &clusters[best]
		if aligner != nil {
			f = aligner.Align(c.Centroid, f)
		}
		if len(f) != len(c.Centroid) {
			return nil, invalidParamf("metric %s produced %d feature points for streamline %d, centroid has %d",
				m.Name(), len(f), idx, len(c.Centroid))
		}
		c.Indices = append(c.Indices, idx)
		w := 1 / float64(len(c.Indices))
		for i := range c.Centroid {
			c.Centroid[i] = r3.Add(c.Centroid[i], r3.Scale(w, r3.Sub(f[i], c.Centroid[i])))
		}
	}
	return clusters, nil
}
