package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// fileConfig holds defaults loaded from --config. Flags set explicitly
// on the command line win over config values.
type fileConfig struct {
	Regress struct {
		Solver       string  `yaml:"solver"`
		Degree       int     `yaml:"degree"`
		TestSize     float64 `yaml:"test_size"`
		Seed         int64   `yaml:"seed"`
		LearningRate float64 `yaml:"learning_rate"`
		MaxIter      int     `yaml:"max_iter"`
	} `yaml:"regress"`
	Cluster struct {
		Algorithm  string  `yaml:"algorithm"`
		K          int     `yaml:"k"`
		Eps        float64 `yaml:"eps"`
		MinSamples int     `yaml:"min_samples"`
		Linkage    string  `yaml:"linkage"`
		Metric     string  `yaml:"metric"`
	} `yaml:"cluster"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
