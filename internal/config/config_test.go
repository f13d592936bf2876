package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default suite invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	content := `datasets:
  - blobs3
cs: [0.01, 0.1]
tools:
  learn: /opt/svm/learn
  classify: /opt/svm/classify
optimizer: mayfly
outDir: /tmp/charts
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	suite, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(suite.Datasets) != 1 || suite.Datasets[0] != "blobs3" {
		t.Errorf("Datasets = %v, expected [blobs3]", suite.Datasets)
	}
	if len(suite.Cs) != 2 || suite.Cs[0] != 0.01 || suite.Cs[1] != 0.1 {
		t.Errorf("Cs = %v, expected [0.01 0.1]", suite.Cs)
	}
	if suite.Tools.Learn != "/opt/svm/learn" || suite.Tools.Classify != "/opt/svm/classify" {
		t.Errorf("Tools = %+v", suite.Tools)
	}
	if suite.Optimizer != "mayfly" {
		t.Errorf("Optimizer = %q, expected mayfly", suite.Optimizer)
	}
	if suite.OutDir != "/tmp/charts" {
		t.Errorf("OutDir = %q", suite.OutDir)
	}

	// Fields absent from the file keep their defaults.
	if suite.DataDir != "./data" {
		t.Errorf("DataDir = %q, expected default ./data", suite.DataDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("datasets: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Suite)
	}{
		{"no datasets", func(s *Suite) { s.Datasets = nil }},
		{"no sweep values", func(s *Suite) { s.Cs = nil }},
		{"negative C", func(s *Suite) { s.Cs = []float64{0.1, -1} }},
		{"zero C", func(s *Suite) { s.Cs = []float64{0} }},
		{"unknown optimizer", func(s *Suite) { s.Optimizer = "newton" }},
		{"missing learn tool", func(s *Suite) { s.Tools.Learn = "" }},
		{"missing classify tool", func(s *Suite) { s.Tools.Classify = "" }},
	}

	for _, tc := range cases {
		suite := Default()
		tc.mutate(suite)
		if err := suite.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
