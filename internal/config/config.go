// Package config loads benchmark suite definitions from YAML, so a
// whole comparison run (datasets, sweep values, tool locations) can be
// checked into a repo and replayed.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/svmbench/internal/dataset"
)

// ToolConfig locates the two external solver binaries.
type ToolConfig struct {
	Learn    string `yaml:"learn"`
	Classify string `yaml:"classify"`
}

// Suite describes one benchmark run.
type Suite struct {
	Datasets  []string   `yaml:"datasets"`
	Cs        []float64  `yaml:"cs"`
	Tools     ToolConfig `yaml:"tools"`
	Optimizer string     `yaml:"optimizer"` // subgradient | mayfly
	OutDir    string     `yaml:"outDir"`
	DataDir   string     `yaml:"dataDir"`
}

// Default returns the suite used when no config file is given: the two
// built-in reference datasets swept over five decades of C.
func Default() *Suite {
	return &Suite{
		Datasets:  dataset.Names(),
		Cs:        []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		Tools:     ToolConfig{Learn: "svm_multiclass_learn", Classify: "svm_multiclass_classify"},
		Optimizer: "subgradient",
		OutDir:    "./charts",
		DataDir:   "./data",
	}
}

// Load reads a YAML suite file. Fields left empty in the file keep
// their defaults.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	suite := Default()
	if err := yaml.Unmarshal(data, suite); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return suite, nil
}

// Validate checks the suite invariants.
func (s *Suite) Validate() error {
	if len(s.Datasets) == 0 {
		return fmt.Errorf("no datasets")
	}
	if len(s.Cs) == 0 {
		return fmt.Errorf("no sweep values")
	}
	for i, c := range s.Cs {
		if c <= 0 {
			return fmt.Errorf("sweep value %d: C must be positive, got %g", i, c)
		}
	}
	switch s.Optimizer {
	case "subgradient", "mayfly":
	default:
		return fmt.Errorf("unknown optimizer %q (want subgradient or mayfly)", s.Optimizer)
	}
	if s.Tools.Learn == "" || s.Tools.Classify == "" {
		return fmt.Errorf("tool paths must be set")
	}
	return nil
}
