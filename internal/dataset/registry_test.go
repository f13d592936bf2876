package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltins(t *testing.T) {
	for _, name := range Names() {
		ds, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if ds.Name != name {
			t.Errorf("Load(%q) returned dataset named %q", name, ds.Name)
		}
		if err := ds.Validate(); err != nil {
			t.Errorf("Built-in %q invalid: %v", name, err)
		}
	}
}

func TestLoadUnknownName(t *testing.T) {
	if _, err := Load("nope"); err == nil {
		t.Error("Expected error for unknown dataset name")
	}
}

func TestLoadFromFileRemapsLabels(t *testing.T) {
	// Labels 1..3 in the file convention must come back as 0..2.
	path := filepath.Join(t.TempDir(), "data.svm")
	content := "1 1:1\n3 2:1\n2 1:1 2:1\n1 1:2\n2 2:2\n3 1:3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	ds, err := Load(FilePrefix + path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []int{0, 2, 1, 0, 1, 2}
	for i, label := range ds.Y {
		if label != expected[i] {
			t.Errorf("Row %d: label %d, expected %d", i, label, expected[i])
		}
	}
	if ds.NumClasses() != 3 {
		t.Errorf("Expected 3 classes, got %d", ds.NumClasses())
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := Load(FilePrefix + "/does/not/exist.svm"); err == nil {
		t.Error("Expected error for missing file")
	}
}
