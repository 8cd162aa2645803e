package tractfilter

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
)

// RemoveLoopsAndSharpTurns separates looping streamlines from clean ones.
//
// Every streamline whose winding angle is at least cfg.MaxAngle is a loop.
// With cfg.SharpTurnPass set and more than one streamline left, the
// survivors are clustered once in a random order seeded by cfg.Seed, and
// every cluster whose centroid's mean curvature is above the average over
// all centroids is moved to the loops as a whole.
//
// Loops are listed in the order they were found: winding loops by index,
// then sharp-turn clusters. The views share b's storage.
func RemoveLoopsAndSharpTurns(b Bundle, cfg LoopConfig) (clean, loops View, err error) {
	if err := applyLoopDefaults(&cfg); err != nil {
		return View{}, View{}, err
	}
	if err := validateLoopConfig(&cfg); err != nil {
		return View{}, View{}, err
	}
	if err := validateStreamlines(b); err != nil {
		return View{}, View{}, err
	}
	log := cfg.Logger.Sugar()

	loopIdx := []int{}
	kept := []int{}
	for i, s := range b {
		if cfg.Curves.Winding(s) >= cfg.MaxAngle {
			loopIdx = append(loopIdx, i)
		} else {
			kept = append(kept, i)
		}
	}

	if cfg.SharpTurnPass {
		if len(kept) > 1 {
			kept, loopIdx, err = removeSharpTurns(b, kept, loopIdx, &cfg)
			if err != nil {
				return View{}, View{}, err
			}
		} else {
			log.Debugw("Skipping sharp-turn pass, not enough streamlines left",
				"remaining", len(kept))
		}
	}

	log.Debugw("Loop filter done",
		"streamlines", len(b),
		"clean", len(kept),
		"loops", len(loopIdx))

	return NewView(b, kept), NewView(b, loopIdx), nil
}

// removeSharpTurns clusters the kept streamlines and moves clusters with
// above-average centroid curvature to loops. Clean indices come back grouped
// by cluster.
func removeSharpTurns(b Bundle, kept, loopIdx []int, cfg *LoopConfig) (clean, loops []int, err error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, pcgStream))
	ordering := make([]int, len(kept))
	for k, p := range rng.Perm(len(kept)) {
		ordering[k] = kept[p]
	}

	clusters, err := cfg.Clusterer.Cluster(b, cfg.Metric, cfg.ClusterThreshold, ordering)
	if err != nil {
		return nil, nil, err
	}

	curvature := make([]float64, len(clusters))
	for k, c := range clusters {
		curvature[k] = cfg.Curves.MeanCurvature(c.Centroid)
	}
	mean := stat.Mean(curvature, nil)

	clean = []int{}
	loops = loopIdx
	for k, c := range clusters {
		if curvature[k] > mean {
			loops = append(loops, c.Indices...)
		} else {
			clean = append(clean, c.Indices...)
		}
	}
	return clean, loops, nil
}
