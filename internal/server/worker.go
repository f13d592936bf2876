package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cwbudde/svmbench/internal/bench"
	"github.com/cwbudde/svmbench/internal/dataset"
	"github.com/cwbudde/svmbench/internal/model"
	"github.com/cwbudde/svmbench/internal/opt"
	"github.com/cwbudde/svmbench/internal/report"
	"github.com/cwbudde/svmbench/internal/store"
	"github.com/cwbudde/svmbench/internal/svmstruct"
)

// Stage names used in progress events and trace entries.
const (
	StageInProcess  = "crammer-singer"
	StageSubprocess = "svm-struct"
)

// runJob executes one benchmark job in the background: load the
// dataset, sweep the in-process adapter, sweep the subprocess adapter,
// persist the record plus comparison charts, broadcasting progress
// per sweep point along the way. Any error fails the whole job; no
// partial charts are produced.
func runJob(ctx context.Context, jm *JobManager, resultStore store.Store, traceDir string, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	}); err != nil {
		return err
	}

	slog.Info("starting benchmark job", "job_id", jobID, "dataset", job.Config.Dataset)

	ds, err := dataset.Load(job.Config.Dataset)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	inproc := model.NewLinearSVM()
	if job.Config.Optimizer == "mayfly" {
		inproc.Optimizer = opt.NewMayfly(200, 20, 42)
	}

	subproc, err := svmstruct.New(svmstruct.ToolPaths{
		Learn:    job.Config.LearnPath,
		Classify: job.Config.ClassifyPath,
	})
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}
	defer subproc.Close()

	trace, err := store.NewTraceWriter(traceDir, jobID)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}
	defer trace.Close()

	// Check for cancellation before the long-running sweeps.
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	startedAt := time.Now()

	sweep := func(stage string, adapter model.Adapter) (*bench.Result, error) {
		jm.UpdateJob(jobID, func(j *Job) {
			j.Stage = stage
			j.Point = 0
		})

		return bench.RunWithProgress(stage, adapter, ds, job.Config.Cs,
			func(index int, c, accuracy, seconds float64) {
				jm.UpdateJob(jobID, func(j *Job) {
					j.Point = index + 1
				})
				trace.Append(store.TraceEntry{
					Sweep:     stage,
					Index:     index,
					C:         c,
					Accuracy:  accuracy,
					Seconds:   seconds,
					Timestamp: time.Now(),
				})
				jm.broadcaster.Broadcast(ProgressEvent{
					JobID:     jobID,
					State:     StateRunning,
					Stage:     stage,
					Point:     index + 1,
					Total:     len(job.Config.Cs),
					C:         c,
					Accuracy:  accuracy,
					Seconds:   seconds,
					Timestamp: time.Now(),
				})
			})
	}

	inprocRes, err := sweep(StageInProcess, inproc)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	subprocRes, err := sweep(StageSubprocess, subproc)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	record := &store.RunRecord{
		RunID: jobID,
		Config: store.RunConfig{
			Dataset:      job.Config.Dataset,
			Cs:           job.Config.Cs,
			LearnPath:    job.Config.LearnPath,
			ClassifyPath: job.Config.ClassifyPath,
			Optimizer:    job.Config.Optimizer,
		},
		InProcess:  *inprocRes,
		Subprocess: *subprocRes,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}

	if err := resultStore.SaveRun(record); err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	if err := saveJobCharts(resultStore, record, ds.Name); err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	endTime := time.Now()
	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.Stage = ""
		j.EndTime = &endTime
	}); err != nil {
		return err
	}

	slog.Info("benchmark job completed",
		"job_id", jobID,
		"dataset", job.Config.Dataset,
		"points", len(job.Config.Cs),
		"elapsed", endTime.Sub(startedAt),
	)

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateCompleted,
		Point:     len(job.Config.Cs),
		Total:     len(job.Config.Cs),
		Timestamp: time.Now(),
	})

	return nil
}

// saveJobCharts renders the time and accuracy comparison charts into
// the run's artifact directory. Times first, then accuracies.
func saveJobCharts(resultStore store.Store, record *store.RunRecord, datasetName string) error {
	dir, err := resultStore.RunDir(record.RunID)
	if err != nil {
		return err
	}

	sub := record.Subprocess
	inp := record.InProcess

	if _, err := report.Save(
		"times "+datasetName,
		fmt.Sprintf("training time (s, %s vs %s)", sub.TimingSource, inp.TimingSource),
		record.Config.Cs,
		report.Series{Name: sub.Name, Values: sub.Times},
		report.Series{Name: inp.Name, Values: inp.Times},
		filepath.Join(dir, "times"),
	); err != nil {
		return err
	}

	if _, err := report.Save(
		"accuracy "+datasetName,
		"training accuracy",
		record.Config.Cs,
		report.Series{Name: sub.Name, Values: sub.Accuracies},
		report.Series{Name: inp.Name, Values: inp.Accuracies},
		filepath.Join(dir, "accuracy"),
	); err != nil {
		return err
	}

	return nil
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("benchmark job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("benchmark job cancelled", "job_id", jobID)
}
