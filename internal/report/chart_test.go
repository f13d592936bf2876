package report

import (
	"os"
	"path/filepath"
	"testing"
)

var (
	testCs  = []float64{0.0001, 0.001, 0.01, 0.1, 1}
	seriesA = Series{Name: "svm-struct", Values: []float64{0.2, 0.3, 0.5, 0.8, 1.0}}
	seriesB = Series{Name: "crammer-singer", Values: []float64{0.25, 0.35, 0.55, 0.85, 1.0}}
)

func TestComparisonChart(t *testing.T) {
	p, err := ComparisonChart("accuracy", "training accuracy", testCs, seriesA, seriesB)
	if err != nil {
		t.Fatalf("ComparisonChart failed: %v", err)
	}
	if p.Title.Text != "accuracy" {
		t.Errorf("Title = %q, expected %q", p.Title.Text, "accuracy")
	}
	if p.X.Label.Text != "C" {
		t.Errorf("X label = %q, expected C", p.X.Label.Text)
	}
}

func TestComparisonChartLengthMismatch(t *testing.T) {
	short := Series{Name: "short", Values: []float64{1, 2}}
	if _, err := ComparisonChart("t", "y", testCs, short, seriesB); err == nil {
		t.Error("Expected error for series shorter than sweep")
	}
	if _, err := ComparisonChart("t", "y", testCs, seriesA, short); err == nil {
		t.Error("Expected error for second series shorter than sweep")
	}
}

func TestComparisonChartEmptySweep(t *testing.T) {
	empty := Series{Name: "e"}
	if _, err := ComparisonChart("t", "y", nil, empty, empty); err == nil {
		t.Error("Expected error for empty sweep")
	}
}

func TestSaveWritesChartFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "times")

	path, err := Save("times", "seconds", testCs, seriesA, seriesB, base)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != base+ChartExt {
		t.Errorf("Save returned %q, expected %q", path, base+ChartExt)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Chart file is empty")
	}
}
