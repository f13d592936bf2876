package store

import (
	"testing"
	"time"
)

func TestRecordValidateOK(t *testing.T) {
	if err := sampleRecord("ok").Validate(); err != nil {
		t.Errorf("Expected valid record, got: %v", err)
	}
}

func TestRecordValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RunRecord)
	}{
		{"empty run ID", func(r *RunRecord) { r.RunID = "" }},
		{"empty dataset", func(r *RunRecord) { r.Config.Dataset = "" }},
		{"no sweep values", func(r *RunRecord) { r.Config.Cs = nil }},
		{"short accuracy series", func(r *RunRecord) { r.InProcess.Accuracies = r.InProcess.Accuracies[:1] }},
		{"short time series", func(r *RunRecord) { r.Subprocess.Times = nil }},
		{"missing timing source", func(r *RunRecord) { r.Subprocess.TimingSource = "" }},
		{"accuracy above one", func(r *RunRecord) { r.InProcess.Accuracies[0] = 1.5 }},
		{"negative accuracy", func(r *RunRecord) { r.Subprocess.Accuracies[1] = -0.1 }},
		{"zero finish time", func(r *RunRecord) { r.FinishedAt = time.Time{} }},
	}

	for _, tc := range cases {
		record := sampleRecord("run")
		tc.mutate(record)
		if err := record.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestToInfo(t *testing.T) {
	record := sampleRecord("run-info")
	info := record.ToInfo()

	if info.RunID != "run-info" {
		t.Errorf("RunID = %q", info.RunID)
	}
	if info.Dataset != "blobs3" {
		t.Errorf("Dataset = %q", info.Dataset)
	}
	if info.Points != 3 {
		t.Errorf("Points = %d, expected 3", info.Points)
	}
	if !info.FinishedAt.Equal(record.FinishedAt) {
		t.Errorf("FinishedAt = %v, expected %v", info.FinishedAt, record.FinishedAt)
	}
}
