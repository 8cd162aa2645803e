package tractfilter

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML document layout read by LoadConfig.
type fileConfig struct {
	Stability *Config     `yaml:"stability"`
	Loops     *LoopConfig `yaml:"loops"`
}

// LoadConfig decodes a YAML document with optional "stability" and "loops"
// sections on top of DefaultConfig and DefaultLoopConfig. Unknown keys are
// rejected. Metrics are given by name:
//
//	stability:
//	  min_threshold: 0.5
//	  num_trials: 30
//	  seed: 1234
//	  metric: MDF_12points
//	loops:
//	  max_angle: 360
//	  sharp_turn_pass: true
//	  cluster_threshold: 15
//
// The returned configs are validated; collaborator fields (Metric, Clusterer,
// Curves, Logger) are left for the caller or the package defaults.
func LoadConfig(data []byte) (Config, LoopConfig, error) {
	cfg := DefaultConfig()
	loopCfg := DefaultLoopConfig()
	fc := fileConfig{Stability: &cfg, Loops: &loopCfg}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, LoopConfig{}, errors.Wrap(err, "tractfilter: decode config")
	}

	if cfg.MetricName != "" {
		cfg.Metric = nil
	}
	if loopCfg.MetricName != "" {
		loopCfg.Metric = nil
	}

	check := cfg
	if err := applyDefaults(&check); err != nil {
		return Config{}, LoopConfig{}, err
	}
	if err := validateConfig(&check); err != nil {
		return Config{}, LoopConfig{}, err
	}
	checkLoops := loopCfg
	if err := applyLoopDefaults(&checkLoops); err != nil {
		return Config{}, LoopConfig{}, err
	}
	if err := validateLoopConfig(&checkLoops); err != nil {
		return Config{}, LoopConfig{}, err
	}
	return cfg, loopCfg, nil
}
