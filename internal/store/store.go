package store

// Store defines the interface for benchmark-run persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRun atomically persists a run record, overwriting any
	// existing record with the same RunID.
	SaveRun(record *RunRecord) error

	// LoadRun retrieves a run record. Returns ErrNotFound if no run
	// exists for this ID.
	LoadRun(runID string) (*RunRecord, error)

	// ListRuns returns metadata for all persisted runs.
	ListRuns() ([]RunInfo, error)

	// DeleteRun removes the run record and any chart artifacts stored
	// alongside it. Returns ErrNotFound if the run doesn't exist.
	DeleteRun(runID string) error

	// RunDir returns the directory that holds a run's artifacts
	// (record JSON and charts), creating it if needed.
	RunDir(runID string) (string, error)
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run error.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
