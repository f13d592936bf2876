// Package svmstruct adapts the external SVM^multiclass command-line
// solver to the same fit/predict/score contract as the in-process
// classifier. All data crosses the process boundary through sparse
// exchange files; callers never see the file protocol.
package svmstruct

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/cwbudde/svmbench/internal/model"
	"github.com/cwbudde/svmbench/internal/svmlight"
	"github.com/google/uuid"
)

// costScaleFactor is the empirical normalization applied to C before
// it is handed to the external learn tool, which uses a different cost
// convention than the in-process objective. The effective cost passed
// on the command line is C * costScaleFactor * N. The factor is
// preserved as observed (x100 per sample), not derived; changing it
// shifts the two solvers onto different effective regularization
// ranges and invalidates the comparison.
const costScaleFactor = 100.0

// regularizationMode is the -w argument of the learn tool: mode 3 is
// the one-slack (margin-rescaling) formulation used throughout this
// benchmark.
const regularizationMode = "3"

// ToolPaths locates the two external binaries. Paths are explicit
// constructor input rather than package state, so adapters pointing at
// different tool builds can coexist. Bare names resolve through PATH,
// explicit paths are checked directly.
type ToolPaths struct {
	Learn    string
	Classify string
}

func (tp ToolPaths) validate() error {
	for _, path := range []string{tp.Learn, tp.Classify} {
		if path == "" {
			return fmt.Errorf("svmstruct: tool path not set")
		}
		if _, err := exec.LookPath(path); err != nil {
			return fmt.Errorf("svmstruct: tool %s: %w", path, err)
		}
	}
	return nil
}

// Adapter runs the external solver behind the model.Adapter contract.
// It owns the path to the most recent trained-model artifact and the
// solver's self-reported runtime for the most recent Fit.
//
// Exchange files get a fresh uuid-based name on every call; reusing a
// path across sweep iterations risks a slow-starting child reading
// stale data. Files are removed once consumed, best-effort only: an
// interrupted process can leak them.
type Adapter struct {
	C float64

	tools     ToolPaths
	workDir   string
	modelPath string
	runtime   float64
	fitted    bool
	output    string // combined learn output, kept for diagnostics
}

// New validates the tool paths and creates a private working directory
// for exchange files. Callers should Close the adapter to remove it.
func New(tools ToolPaths) (*Adapter, error) {
	if err := tools.validate(); err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "svmbench-")
	if err != nil {
		return nil, fmt.Errorf("svmstruct: create work dir: %w", err)
	}

	return &Adapter{
		C:       1.0,
		tools:   tools,
		workDir: workDir,
	}, nil
}

// Close removes the working directory and any artifacts left in it.
func (a *Adapter) Close() error {
	return os.RemoveAll(a.workDir)
}

// SetC sets the regularization strength used by the next Fit.
func (a *Adapter) SetC(c float64) {
	a.C = c
}

// exchangePath returns a fresh collision-free path in the work dir.
func (a *Adapter) exchangePath(kind, ext string) string {
	return filepath.Join(a.workDir, kind+"-"+uuid.New().String()+ext)
}

// Fit serializes (X, y+1) to a fresh exchange file, runs the learn
// tool and parses its self-reported CPU runtime from the output
// banner. Labels are shifted +1 because the tool rejects class index
// zero. Data-shape errors are caught before any process is spawned.
func (a *Adapter) Fit(X [][]float64, y []int) error {
	if err := model.ValidateTrainingData(X, y); err != nil {
		return err
	}
	if a.C <= 0 {
		return fmt.Errorf("svmstruct: C must be positive, got %g", a.C)
	}

	shifted := make([]int, len(y))
	for i, label := range y {
		shifted[i] = label + 1
	}

	dataPath := a.exchangePath("train", ".dat")
	if err := svmlight.DumpFile(dataPath, X, shifted); err != nil {
		return fmt.Errorf("svmstruct: write training exchange file: %w", err)
	}

	modelPath := a.exchangePath("model", ".svm")
	cost := a.C * costScaleFactor * float64(len(X))

	cmd := exec.Command(a.tools.Learn,
		"-w", regularizationMode,
		"-c", strconv.FormatFloat(cost, 'g', -1, 64),
		dataPath, modelPath)

	slog.Debug("invoking learn tool", "cost", cost, "data", dataPath, "model", modelPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("svmstruct: learn tool failed: %w (output: %q)", err, string(out))
	}
	a.output = string(out)

	runtime, err := parseRuntime(a.output)
	if err != nil {
		// A missing runtime must surface here; a silent zero would
		// corrupt the timing comparison downstream.
		return err
	}

	// Training file is consumed; the previous model artifact is now
	// superseded.
	os.Remove(dataPath)
	if a.modelPath != "" {
		os.Remove(a.modelPath)
	}

	a.modelPath = modelPath
	a.runtime = runtime
	a.fitted = true
	return nil
}

// predictRaw runs the classify tool and returns its numeric output
// table: column 0 is the predicted 1-based label, columns 1..K are
// per-class decision scores. The classify step requires a label column
// in its input but ignores its values, so nil y becomes a vector of
// ones.
func (a *Adapter) predictRaw(X [][]float64, y []int) ([][]float64, error) {
	if !a.fitted {
		return nil, fmt.Errorf("svmstruct: not fitted")
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("svmstruct: no samples to predict")
	}

	if y == nil {
		y = make([]int, len(X))
		for i := range y {
			y[i] = 1
		}
	}

	dataPath := a.exchangePath("classify", ".dat")
	if err := svmlight.DumpFile(dataPath, X, y); err != nil {
		return nil, fmt.Errorf("svmstruct: write classify exchange file: %w", err)
	}
	defer os.Remove(dataPath)

	outPath := a.exchangePath("pred", ".out")
	defer os.Remove(outPath)

	cmd := exec.Command(a.tools.Classify, dataPath, a.modelPath, outPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("svmstruct: classify tool failed: %w (output: %q)", err, string(out))
	}

	table, err := svmlight.LoadTableFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("svmstruct: read prediction output: %w", err)
	}
	if len(table) != len(X) {
		return nil, fmt.Errorf("svmstruct: prediction output has %d rows for %d samples", len(table), len(X))
	}
	if len(table[0]) < 1 {
		return nil, fmt.Errorf("svmstruct: prediction output has no columns")
	}
	return table, nil
}

// Predict returns column 0 of the prediction table shifted back to
// 0-based class indices, undoing the +1 applied in Fit.
func (a *Adapter) Predict(X [][]float64) ([]int, error) {
	table, err := a.predictRaw(X, nil)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(table))
	for i, row := range table {
		label := int(math.Round(row[0]))
		if float64(label) != row[0] || label < 1 {
			return nil, fmt.Errorf("svmstruct: row %d: predicted label %v is not a positive integer", i, row[0])
		}
		labels[i] = label - 1
	}
	return labels, nil
}

// DecisionFunction returns columns 1..K of the prediction table.
func (a *Adapter) DecisionFunction(X [][]float64) ([][]float64, error) {
	table, err := a.predictRaw(X, nil)
	if err != nil {
		return nil, err
	}
	if len(table[0]) < 2 {
		return nil, fmt.Errorf("svmstruct: prediction output carries no decision scores")
	}

	scores := make([][]float64, len(table))
	for i, row := range table {
		scores[i] = row[1:]
	}
	return scores, nil
}

// Score returns the accuracy of Predict(X) against y.
func (a *Adapter) Score(X [][]float64, y []int) (float64, error) {
	pred, err := a.Predict(X)
	if err != nil {
		return 0, err
	}
	return model.Accuracy(y, pred)
}

// Runtime implements model.SelfTimer with the CPU time the learn tool
// reported for the most recent Fit.
func (a *Adapter) Runtime() (float64, bool) {
	return a.runtime, a.fitted
}

// Output returns the combined learn-tool output of the most recent
// Fit, for diagnostics.
func (a *Adapter) Output() string {
	return a.output
}
