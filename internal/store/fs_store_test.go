package store

import (
	"errors"
	"testing"
	"time"

	"github.com/cwbudde/svmbench/internal/bench"
)

func sampleRecord(runID string) *RunRecord {
	cs := []float64{0.01, 0.1, 1}
	now := time.Now().UTC().Truncate(time.Second)
	return &RunRecord{
		RunID: runID,
		Config: RunConfig{
			Dataset:      "blobs3",
			Cs:           cs,
			LearnPath:    "/opt/svm/learn",
			ClassifyPath: "/opt/svm/classify",
			Optimizer:    "subgradient",
		},
		InProcess: bench.Result{
			Name:         "crammer-singer",
			Cs:           cs,
			Accuracies:   []float64{0.8, 0.9, 1.0},
			Times:        []float64{0.1, 0.2, 0.3},
			TimingSource: bench.TimingWallClock,
		},
		Subprocess: bench.Result{
			Name:         "svm-struct",
			Cs:           cs,
			Accuracies:   []float64{0.7, 0.85, 0.95},
			Times:        []float64{0.4, 0.5, 0.6},
			TimingSource: bench.TimingSelfReported,
		},
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	record := sampleRecord("run-1")
	if err := fs.SaveRun(record); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := fs.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}

	if loaded.RunID != record.RunID {
		t.Errorf("RunID = %q, expected %q", loaded.RunID, record.RunID)
	}
	if loaded.Config.Dataset != "blobs3" {
		t.Errorf("Dataset = %q, expected blobs3", loaded.Config.Dataset)
	}
	if loaded.InProcess.TimingSource != bench.TimingWallClock {
		t.Errorf("InProcess timing source = %q", loaded.InProcess.TimingSource)
	}
	if loaded.Subprocess.TimingSource != bench.TimingSelfReported {
		t.Errorf("Subprocess timing source = %q", loaded.Subprocess.TimingSource)
	}
	if len(loaded.InProcess.Accuracies) != 3 || loaded.InProcess.Accuracies[2] != 1.0 {
		t.Errorf("InProcess accuracies = %v", loaded.InProcess.Accuracies)
	}
}

func TestSaveRejectsInvalidRecord(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	record := sampleRecord("run-bad")
	record.InProcess.Times = record.InProcess.Times[:1]

	if err := fs.SaveRun(record); err == nil {
		t.Error("Expected validation error for misaligned series")
	}

	var valErr *ValidationError
	if err := fs.SaveRun(record); !errors.As(err, &valErr) {
		t.Errorf("Expected *ValidationError, got %T", err)
	}
}

func TestLoadMissingRun(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	_, err = fs.LoadRun("nonexistent")
	if err == nil {
		t.Fatal("Expected error for missing run")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	infos, err := fs.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected empty listing, got %d runs", len(infos))
	}

	for _, id := range []string{"run-a", "run-b"} {
		if err := fs.SaveRun(sampleRecord(id)); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	infos, err = fs.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(infos))
	}
	for _, info := range infos {
		if info.Dataset != "blobs3" || info.Points != 3 {
			t.Errorf("Unexpected listing entry: %+v", info)
		}
	}
}

func TestDeleteRun(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	if err := fs.SaveRun(sampleRecord("run-del")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := fs.DeleteRun("run-del"); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	if _, err := fs.LoadRun("run-del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := fs.DeleteRun("run-del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for double delete, got %v", err)
	}
}

func TestRunDirCreated(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	dir, err := fs.RunDir("run-x")
	if err != nil {
		t.Fatalf("RunDir failed: %v", err)
	}
	if dir == "" {
		t.Fatal("RunDir returned empty path")
	}

	again, err := fs.RunDir("run-x")
	if err != nil {
		t.Fatalf("RunDir second call failed: %v", err)
	}
	if again != dir {
		t.Errorf("RunDir not stable: %q vs %q", dir, again)
	}
}
