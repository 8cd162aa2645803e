package tractfilter

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// pcgStream is the fixed PCG stream selector; the caller's seed picks the
// position in it.
const pcgStream = 0x9e3779b97f4a7c15

// HierarchicalStabilityScore scores how consistently each streamline stays in
// large clusters as the bundle is re-clustered with finer thresholds and
// different traversal orders.
//
// For each of cfg.NumTrials random permutations, the bundle is clustered at
// every threshold of the schedule, coarsest first. Only clusters with more
// than cfg.MaxLeafSize members are clustered again at the next level, in the
// order their members were added. A streamline's depth in a trial is the
// number of levels at which it was assigned. The score is the mean depth over
// trials divided by the largest depth any streamline reached in any trial.
//
// Every permutation is drawn up front from one generator seeded by cfg.Seed,
// so the result is identical for any cfg.Workers.
func HierarchicalStabilityScore(b Bundle, cfg Config) (*StabilityResult, error) {
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validateBundle(b); err != nil {
		return nil, err
	}

	box, err := ComputeBoundingBox(b)
	if err != nil {
		return nil, err
	}
	thresholds, err := ComputeThresholds(box, cfg.MinThreshold)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger.Sugar()
	log.Debugw("Threshold schedule derived",
		"streamlines", len(b),
		"levels", len(thresholds),
		"initial_threshold", thresholds[0],
		"final_threshold", thresholds[len(thresholds)-1])

	// Features are computed once; the clusterer then works in feature space.
	features := make(Bundle, len(b))
	for i, s := range b {
		features[i] = cfg.Metric.Features(s)
	}

	h := &hierarchy{
		features:    features,
		metric:      featureMetric{cfg.Metric},
		clusterer:   cfg.Clusterer,
		thresholds:  thresholds,
		maxLeafSize: cfg.MaxLeafSize,
		assignment:  NewClusterAssignment(len(b), len(thresholds), cfg.NumTrials),
	}

	orderings := drawOrderings(len(b), cfg.NumTrials, cfg.Seed)
	err = runTrialsParallel(cfg.NumTrials, cfg.Workers, func(trial int) error {
		return h.runTrial(trial, orderings[trial])
	})
	if err != nil {
		return nil, err
	}

	scores, meanDepth, maxDepth := summarizeDepths(h.assignment)
	log.Debugw("Stability scores computed",
		"trials", cfg.NumTrials,
		"workers", cfg.Workers,
		"max_depth", maxDepth)

	return &StabilityResult{
		Scores:     scores,
		MeanDepth:  meanDepth,
		Thresholds: thresholds,
		Assignment: h.assignment,
	}, nil
}

// drawOrderings shuffles one running permutation of 0..n-1 once per trial
// and snapshots it.
func drawOrderings(n, trials int, seed uint64) [][]int {
	rng := rand.New(rand.NewPCG(seed, pcgStream))

	ordering := make([]int, n)
	for i := range ordering {
		ordering[i] = i
	}

	out := make([][]int, trials)
	for t := range out {
		rng.Shuffle(n, func(i, j int) { ordering[i], ordering[j] = ordering[j], ordering[i] })
		out[t] = slices.Clone(ordering)
	}
	return out
}

// hierarchy holds the per-call state shared by all trials. Trials only read
// it, apart from their own slots of assignment.
type hierarchy struct {
	features    Bundle
	metric      Metric
	clusterer   Clusterer
	thresholds  []float64
	maxLeafSize int
	assignment  *ClusterAssignment
}

// runTrial clusters level by level. The working set holds the member
// orderings of the clusters still large enough to subdivide.
func (h *hierarchy) runTrial(trial int, ordering []int) error {
	working := [][]int{ordering}

	for level, threshold := range h.thresholds {
		id := 0
		var next [][]int
		for _, o := range working {
			clusters, err := h.clusterer.Cluster(h.features, h.metric, threshold, o)
			if err != nil {
				return err
			}
			for _, c := range clusters {
				for _, idx := range c.Indices {
					if idx < 0 || idx >= len(h.features) {
						return invalidParamf("clusterer returned index %d out of range [0, %d)", idx, len(h.features))
					}
					h.assignment.set(idx, level, trial, id)
				}
				id++
				if len(c.Indices) > h.maxLeafSize {
					next = append(next, c.Indices)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		working = next
	}
	return nil
}

// summarizeDepths returns the normalized scores, the mean depth per
// streamline and the largest depth seen in any trial.
func summarizeDepths(a *ClusterAssignment) (scores, meanDepth []float64, maxDepth float64) {
	n, _, trials := a.Dims()

	depths := make([]float64, trials)
	meanDepth = make([]float64, n)
	for i := range meanDepth {
		for t := range depths {
			depths[t] = float64(a.Depth(i, t))
		}
		meanDepth[i] = stat.Mean(depths, nil)
		maxDepth = max(maxDepth, floats.Max(depths))
	}

	scores = make([]float64, n)
	if maxDepth == 0 {
		return scores, meanDepth, maxDepth
	}
	for i, d := range meanDepth {
		scores[i] = d / maxDepth
	}
	return scores, meanDepth, maxDepth
}

// featureMetric wraps a metric for bundles that already hold its features.
type featureMetric struct {
	Metric
}

func (f featureMetric) Features(s Streamline) Streamline { return s }

func (f featureMetric) Align(ref, s Streamline) Streamline {
	if a, ok := f.Metric.(Aligner); ok {
		return a.Align(ref, s)
	}
	return s
}
