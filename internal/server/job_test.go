package server

import (
	"sync"
	"testing"
	"time"
)

func TestJobManager_CreateJob(t *testing.T) {
	jm := NewJobManager()

	config := JobConfig{
		Dataset:      "blobs3",
		Cs:           []float64{0.01, 0.1, 1},
		LearnPath:    "/opt/svm/learn",
		ClassifyPath: "/opt/svm/classify",
		Optimizer:    "subgradient",
	}

	job := jm.CreateJob(config)

	if job.ID == "" {
		t.Error("Job ID should not be empty")
	}

	if job.State != StatePending {
		t.Errorf("Initial state should be pending, got %s", job.State)
	}

	if job.Config.Dataset != "blobs3" {
		t.Errorf("Config not set correctly")
	}

	if job.TotalPoints != 3 {
		t.Errorf("TotalPoints should match sweep size, got %d", job.TotalPoints)
	}
}

func TestJobManager_GetJob(t *testing.T) {
	jm := NewJobManager()

	config := JobConfig{Dataset: "blobs3", Cs: []float64{1}}
	job := jm.CreateJob(config)

	retrieved, exists := jm.GetJob(job.ID)
	if !exists {
		t.Error("Job should exist")
	}

	if retrieved.ID != job.ID {
		t.Error("Retrieved wrong job")
	}

	_, exists = jm.GetJob("nonexistent")
	if exists {
		t.Error("Should not find nonexistent job")
	}
}

func TestJobManager_ListJobs(t *testing.T) {
	jm := NewJobManager()

	if len(jm.ListJobs()) != 0 {
		t.Error("Should start with no jobs")
	}

	jm.CreateJob(JobConfig{Dataset: "blobs3"})
	jm.CreateJob(JobConfig{Dataset: "blobs10"})

	jobs := jm.ListJobs()
	if len(jobs) != 2 {
		t.Errorf("Expected 2 jobs, got %d", len(jobs))
	}
}

func TestJobManager_UpdateJob(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(JobConfig{Dataset: "blobs3"})

	err := jm.UpdateJob(job.ID, func(j *Job) {
		j.State = StateRunning
		j.Stage = StageInProcess
		j.Point = 2
	})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}

	updated, _ := jm.GetJob(job.ID)
	if updated.State != StateRunning {
		t.Errorf("State not updated, got %s", updated.State)
	}
	if updated.Stage != StageInProcess || updated.Point != 2 {
		t.Errorf("Progress not updated: stage=%q point=%d", updated.Stage, updated.Point)
	}

	err = jm.UpdateJob("nonexistent", func(j *Job) {})
	if err == nil {
		t.Error("Expected error for nonexistent job")
	}
}

func TestJobManager_GetRunningJobs(t *testing.T) {
	jm := NewJobManager()

	a := jm.CreateJob(JobConfig{Dataset: "blobs3"})
	jm.CreateJob(JobConfig{Dataset: "blobs10"})

	jm.UpdateJob(a.ID, func(j *Job) {
		j.State = StateRunning
	})

	running := jm.GetRunningJobs()
	if len(running) != 1 {
		t.Fatalf("Expected 1 running job, got %d", len(running))
	}
	if running[0].ID != a.ID {
		t.Error("Wrong job reported as running")
	}
}

func TestJobManager_GetJobReturnsSnapshot(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{Dataset: "blobs3", Cs: []float64{1}})

	before, _ := jm.GetJob(job.ID)
	jm.UpdateJob(job.ID, func(j *Job) {
		j.State = StateRunning
		j.Point = 1
	})

	// The earlier snapshot must not see the update.
	if before.State != StatePending || before.Point != 0 {
		t.Errorf("Snapshot mutated by UpdateJob: state=%s point=%d", before.State, before.Point)
	}

	// Writing through a snapshot must not reach the stored job.
	after, _ := jm.GetJob(job.ID)
	after.State = StateFailed
	stored, _ := jm.GetJob(job.ID)
	if stored.State != StateRunning {
		t.Errorf("Stored job affected by snapshot write: %s", stored.State)
	}
}

func TestJobManager_ConcurrentReadsDuringUpdates(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{Dataset: "blobs3", Cs: []float64{1, 2, 3}})

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			jm.UpdateJob(job.ID, func(j *Job) {
				j.Point = i
				j.Stage = StageInProcess
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snapshot, _ := jm.GetJob(job.ID)
			_ = snapshot.Point
			_ = snapshot.Stage
			jm.ListJobs()
		}
	}()

	wg.Wait()
}

func TestJobManager_CompletedJobKeepsEndTime(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(JobConfig{Dataset: "blobs3"})
	end := time.Now()

	jm.UpdateJob(job.ID, func(j *Job) {
		j.State = StateCompleted
		j.EndTime = &end
	})

	updated, _ := jm.GetJob(job.ID)
	if updated.EndTime == nil || !updated.EndTime.Equal(end) {
		t.Error("EndTime not preserved")
	}
}
