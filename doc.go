// Package tractfilter separates plausible streamlines from artifacts in a
// bundle of 3D fiber curves.
//
// Two independent filters are provided. RemoveLoopsAndSharpTurns drops
// streamlines whose winding angle is too large, optionally followed by a
// clustering pass that drops clusters with unusually high curvature.
// RemoveOutliers scores every streamline by how stably it stays grouped with
// others when the bundle is re-clustered hierarchically under many random
// traversal orders, and drops the ones scoring under a threshold.
//
// Basic usage:
//
//	clean, loops, err := tractfilter.RemoveLoopsAndSharpTurns(bundle, tractfilter.DefaultLoopConfig())
//
//	cfg := tractfilter.DefaultConfig()
//	cfg.NumTrials = 50
//	inliers, outliers, err := tractfilter.RemoveOutliers(bundle, 0.5, cfg)
//	// inliers.Indices / outliers.Indices index into bundle
//
// The score itself is available from HierarchicalStabilityScore, and Prune
// splits any score array at a threshold.
//
// # Collaborators
//
// Clustering and curve measurements are behind the Clusterer, Metric and
// CurveMetrics interfaces. The defaults are QuickBundles with the 12-point
// minimum direct-flip distance (MDFMetric) and DiscreteCurveMetrics.
//
// # Determinism
//
// All randomness comes from a PCG generator seeded from the config. Two calls
// with the same bundle and config return identical results, whatever the
// number of workers.
package tractfilter
