package tractfilter

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.5, cfg.MinThreshold)
	assert.Equal(t, 30, cfg.NumTrials)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, 10, cfg.MaxLeafSize)
	assert.Equal(t, MDFMetric{Points: 12}, cfg.Metric)
	assert.Equal(t, QuickBundles{}, cfg.Clusterer)
	assert.Equal(t, 0, cfg.Workers)
	assert.Nil(t, cfg.Logger)
}

func TestDefaultLoopConfig(t *testing.T) {
	cfg := DefaultLoopConfig()

	assert.Equal(t, 360.0, cfg.MaxAngle)
	assert.False(t, cfg.SharpTurnPass)
	assert.Equal(t, 15.0, cfg.ClusterThreshold)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, MDFMetric{Points: 12}, cfg.Metric)
	assert.Equal(t, DiscreteCurveMetrics{}, cfg.Curves)
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, applyDefaults(&cfg))

	assert.Equal(t, MDFMetric{Points: 12}, cfg.Metric)
	assert.Equal(t, QuickBundles{}, cfg.Clusterer)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.NotNil(t, cfg.Logger)

	cfg = Config{MetricName: "MDF_20points"}
	require.NoError(t, applyDefaults(&cfg))
	assert.Equal(t, MDFMetric{Points: 20}, cfg.Metric)

	cfg = Config{MetricName: "nope"}
	assert.ErrorIs(t, applyDefaults(&cfg), ErrInvalidParameter)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero MinThreshold", func(c *Config) { c.MinThreshold = 0 }},
		{"negative MinThreshold", func(c *Config) { c.MinThreshold = -0.5 }},
		{"NaN MinThreshold", func(c *Config) { c.MinThreshold = math.NaN() }},
		{"Inf MinThreshold", func(c *Config) { c.MinThreshold = math.Inf(1) }},
		{"one trial", func(c *Config) { c.NumTrials = 1 }},
		{"zero MaxLeafSize", func(c *Config) { c.MaxLeafSize = 0 }},
		{"negative Workers", func(c *Config) { c.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, validateConfig(&cfg), ErrInvalidParameter)
		})
	}

	cfg := DefaultConfig()
	assert.NoError(t, validateConfig(&cfg))
}

func TestLoadConfig(t *testing.T) {
	doc := []byte(`
stability:
  min_threshold: 0.75
  num_trials: 12
  seed: 99
  metric: MDF_20points
  workers: 2
loops:
  max_angle: 300
  sharp_turn_pass: true
  cluster_threshold: 10
`)
	cfg, loopCfg, err := LoadConfig(doc)
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.MinThreshold)
	assert.Equal(t, 12, cfg.NumTrials)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 10, cfg.MaxLeafSize, "unset keys keep their defaults")
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "MDF_20points", cfg.MetricName)
	assert.Nil(t, cfg.Metric, "a named metric replaces the default")

	assert.Equal(t, 300.0, loopCfg.MaxAngle)
	assert.True(t, loopCfg.SharpTurnPass)
	assert.Equal(t, 10.0, loopCfg.ClusterThreshold)
	assert.Equal(t, MDFMetric{Points: 12}, loopCfg.Metric)

	require.NoError(t, applyDefaults(&cfg))
	assert.Equal(t, MDFMetric{Points: 20}, cfg.Metric)
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, loopCfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, DefaultLoopConfig(), loopCfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind error
	}{
		{"unknown key", "stability:\n  trials: 3\n", nil},
		{"bad type", "loops:\n  max_angle: lots\n", nil},
		{"invalid trials", "stability:\n  num_trials: 1\n", ErrInvalidParameter},
		{"unknown metric", "loops:\n  metric: hausdorff\n", ErrInvalidParameter},
		{"negative angle", "loops:\n  max_angle: -5\n", ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadConfig([]byte(tt.doc))
			require.Error(t, err)
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
			}
		})
	}
}
