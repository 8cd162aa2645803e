package tractfilter

import (
	"math"
	"runtime"

	"go.uber.org/zap"
)

// Config controls hierarchical stability scoring and outlier removal.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// MinThreshold is the floor of the threshold schedule: the finest
	// clustering distance used. Must be > 0. Default: 0.5.
	MinThreshold float64 `yaml:"min_threshold"`

	// NumTrials is the number of randomized traversal orders to cluster.
	// Must be >= 2. Default: 30.
	NumTrials int `yaml:"num_trials"`

	// Seed initializes the generator that draws every trial's ordering.
	// Default: 1234.
	Seed uint64 `yaml:"seed"`

	// MaxLeafSize is the largest cluster that is not subdivided at the next
	// level. Must be >= 1. Default: 10.
	MaxLeafSize int `yaml:"max_leaf_size"`

	// Metric is the curve distance used by the clusterer.
	// Default: MDFMetric{Points: 12}.
	Metric Metric `yaml:"-"`

	// MetricName selects a metric with MetricByName when Metric is nil.
	MetricName string `yaml:"metric"`

	// Clusterer is the clustering primitive. Default: QuickBundles{}.
	Clusterer Clusterer `yaml:"-"`

	// Workers controls how many goroutines run trials. Results do not depend
	// on it. 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int `yaml:"workers"`

	// Logger receives debug diagnostics. Default: zap.NewNop().
	Logger *zap.Logger `yaml:"-"`
}

// LoopConfig controls RemoveLoopsAndSharpTurns.
// Start with [DefaultLoopConfig] and override the fields you need.
type LoopConfig struct {
	// MaxAngle is the winding angle, in degrees, at or above which a
	// streamline is a loop. Must be >= 0. Default: 360.
	MaxAngle float64 `yaml:"max_angle"`

	// SharpTurnPass enables the clustering pass that removes whole clusters
	// whose centroid curvature is above the bundle mean. Only meaningful on
	// a single bundle, not a whole-brain tractogram. Default: false.
	SharpTurnPass bool `yaml:"sharp_turn_pass"`

	// ClusterThreshold is the clustering distance of the sharp-turn pass.
	// Must be > 0. Default: 15.0.
	ClusterThreshold float64 `yaml:"cluster_threshold"`

	// Seed initializes the ordering of the sharp-turn pass. Default: 0.
	Seed uint64 `yaml:"seed"`

	// Metric is the curve distance of the sharp-turn pass.
	// Default: MDFMetric{Points: 12}.
	Metric Metric `yaml:"-"`

	// MetricName selects a metric with MetricByName when Metric is nil.
	MetricName string `yaml:"metric"`

	// Clusterer is the clustering primitive. Default: QuickBundles{}.
	Clusterer Clusterer `yaml:"-"`

	// Curves measures winding and curvature. Default: DiscreteCurveMetrics{}.
	Curves CurveMetrics `yaml:"-"`

	// Logger receives debug diagnostics. Default: zap.NewNop().
	Logger *zap.Logger `yaml:"-"`
}

// StabilityResult is the output of HierarchicalStabilityScore.
type StabilityResult struct {
	// Scores is the stability of each streamline in [0, 1]. Streamlines that
	// stay in large clusters through more levels and trials score higher.
	Scores []float64

	// MeanDepth is the number of schedule levels each streamline was assigned
	// at, averaged over trials.
	MeanDepth []float64

	// Thresholds is the schedule used, coarsest first.
	Thresholds []float64

	// Assignment holds the cluster id of every streamline at every level of
	// every trial.
	Assignment *ClusterAssignment
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MinThreshold: 0.5,
		NumTrials:    30,
		Seed:         1234,
		MaxLeafSize:  10,
		Metric:       MDFMetric{Points: DefaultMDFPoints},
		Clusterer:    QuickBundles{},
	}
}

// DefaultLoopConfig returns a LoopConfig with reasonable defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		MaxAngle:         360,
		ClusterThreshold: 15.0,
		Metric:           MDFMetric{Points: DefaultMDFPoints},
		Clusterer:        QuickBundles{},
		Curves:           DiscreteCurveMetrics{},
	}
}

// applyDefaults fills in zero-valued collaborator fields with their defaults.
func applyDefaults(cfg *Config) error {
	m, err := resolveMetric(cfg.Metric, cfg.MetricName)
	if err != nil {
		return err
	}
	cfg.Metric = m
	if cfg.Clusterer == nil {
		cfg.Clusterer = QuickBundles{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if !(cfg.MinThreshold > 0) || math.IsInf(cfg.MinThreshold, 1) {
		return invalidParamf("MinThreshold must be finite and > 0, got %v", cfg.MinThreshold)
	}
	if cfg.NumTrials < 2 {
		return invalidParamf("NumTrials must be >= 2, got %d", cfg.NumTrials)
	}
	if cfg.MaxLeafSize < 1 {
		return invalidParamf("MaxLeafSize must be >= 1, got %d", cfg.MaxLeafSize)
	}
	if cfg.Workers < 0 {
		return invalidParamf("Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

func applyLoopDefaults(cfg *LoopConfig) error {
	m, err := resolveMetric(cfg.Metric, cfg.MetricName)
	if err != nil {
		return err
	}
	cfg.Metric = m
	if cfg.Clusterer == nil {
		cfg.Clusterer = QuickBundles{}
	}
	if cfg.Curves == nil {
		cfg.Curves = DiscreteCurveMetrics{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

func validateLoopConfig(cfg *LoopConfig) error {
	if math.IsNaN(cfg.MaxAngle) || cfg.MaxAngle < 0 {
		return invalidParamf("MaxAngle must be >= 0, got %v", cfg.MaxAngle)
	}
	if cfg.SharpTurnPass && (!(cfg.ClusterThreshold > 0) || math.IsInf(cfg.ClusterThreshold, 1)) {
		return invalidParamf("ClusterThreshold must be finite and > 0, got %v", cfg.ClusterThreshold)
	}
	return nil
}

func resolveMetric(m Metric, name string) (Metric, error) {
	if m != nil {
		return m, nil
	}
	if name == "" {
		return MDFMetric{Points: DefaultMDFPoints}, nil
	}
	return MetricByName(name)
}
