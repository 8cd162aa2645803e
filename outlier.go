package tractfilter

import "math"

// Prune splits the indices 0..n-1 by score: indices whose score is strictly
// below threshold are outliers, the rest inliers. Both slices are ascending,
// disjoint, and together cover every index.
func Prune(n int, threshold float64, scores []float64) (outliers, inliers []int, err error) {
	if len(scores) != n {
		return nil, nil, invalidParamf("got %d scores for %d streamlines", len(scores), n)
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, nil, err
	}

	outliers = []int{}
	inliers = []int{}
	for i, s := range scores {
		if s < threshold {
			outliers = append(outliers, i)
		} else {
			inliers = append(inliers, i)
		}
	}
	return outliers, inliers, nil
}

// RemoveOutliers scores b with HierarchicalStabilityScore and splits it at
// threshold. The threshold has no safe default: suitable values depend on the
// bundle. The returned views share b's storage.
func RemoveOutliers(b Bundle, threshold float64, cfg Config) (inliers, outliers View, err error) {
	if err := validateThreshold(threshold); err != nil {
		return View{}, View{}, err
	}

	res, err := HierarchicalStabilityScore(b, cfg)
	if err != nil {
		return View{}, View{}, err
	}

	out, in, err := Prune(len(b), threshold, res.Scores)
	if err != nil {
		return View{}, View{}, err
	}
	return NewView(b, in), NewView(b, out), nil
}

func validateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return invalidParamf("outlier threshold must be finite, got %v", threshold)
	}
	return nil
}
