package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/svmbench/internal/bench"
	"github.com/cwbudde/svmbench/internal/config"
	"github.com/cwbudde/svmbench/internal/dataset"
	"github.com/cwbudde/svmbench/internal/model"
	"github.com/cwbudde/svmbench/internal/opt"
	"github.com/cwbudde/svmbench/internal/report"
	"github.com/cwbudde/svmbench/internal/svmstruct"
)

var (
	configPath   string
	datasetNames []string
	sweepValues  []float64
	learnPath    string
	classifyPath string
	optimizer    string
	outDir       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the solver comparison benchmark",
	Long: `Sweeps both solvers over the configured C values on each dataset
and writes a training-time and a training-accuracy comparison chart
per dataset. Any failure aborts the whole benchmark; no partial charts
are written for a sweep that errored.`,
	RunE: runBenchmark,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Benchmark suite YAML file")
	runCmd.Flags().StringSliceVar(&datasetNames, "dataset", nil, "Dataset names (built-in or file:<path>)")
	runCmd.Flags().Float64SliceVar(&sweepValues, "cs", nil, "Regularization strengths to sweep")
	runCmd.Flags().StringVar(&learnPath, "learn", "", "Path to the svm_multiclass_learn binary")
	runCmd.Flags().StringVar(&classifyPath, "classify", "", "Path to the svm_multiclass_classify binary")
	runCmd.Flags().StringVar(&optimizer, "optimizer", "", "In-process solver: subgradient or mayfly")
	runCmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for comparison charts")

	rootCmd.AddCommand(runCmd)
}

// loadSuite resolves the effective suite: config file (or defaults)
// with explicitly set flags winning.
func loadSuite(cmd *cobra.Command) (*config.Suite, error) {
	suite := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		suite = loaded
	}

	if cmd.Flags().Changed("dataset") {
		suite.Datasets = datasetNames
	}
	if cmd.Flags().Changed("cs") {
		suite.Cs = sweepValues
	}
	if cmd.Flags().Changed("learn") {
		suite.Tools.Learn = learnPath
	}
	if cmd.Flags().Changed("classify") {
		suite.Tools.Classify = classifyPath
	}
	if cmd.Flags().Changed("optimizer") {
		suite.Optimizer = optimizer
	}
	if cmd.Flags().Changed("out-dir") {
		suite.OutDir = outDir
	}

	if err := suite.Validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	suite, err := loadSuite(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(suite.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("starting benchmark",
		"datasets", suite.Datasets,
		"cs", suite.Cs,
		"optimizer", suite.Optimizer,
	)

	start := time.Now()
	for _, name := range suite.Datasets {
		if err := benchmarkDataset(suite, name); err != nil {
			return err
		}
	}

	slog.Info("benchmark complete", "elapsed", time.Since(start))
	return nil
}

// benchmarkDataset runs both sweeps on one dataset and writes its two
// comparison charts: times first, then accuracies.
func benchmarkDataset(suite *config.Suite, name string) error {
	ds, err := dataset.Load(name)
	if err != nil {
		return err
	}

	slog.Info("loaded dataset",
		"dataset", ds.Name,
		"samples", ds.NumSamples(),
		"features", ds.NumFeatures(),
		"classes", ds.NumClasses(),
	)

	inproc := model.NewLinearSVM()
	if suite.Optimizer == "mayfly" {
		inproc.Optimizer = opt.NewMayfly(200, 20, 42)
	}

	subproc, err := svmstruct.New(svmstruct.ToolPaths{
		Learn:    suite.Tools.Learn,
		Classify: suite.Tools.Classify,
	})
	if err != nil {
		return err
	}
	defer subproc.Close()

	inprocRes, err := bench.Run("crammer-singer", inproc, ds, suite.Cs)
	if err != nil {
		return err
	}
	subprocRes, err := bench.Run("svm-struct", subproc, ds, suite.Cs)
	if err != nil {
		return err
	}

	base := filepath.Base(ds.Name)

	timesPath, err := report.Save(
		"times "+base,
		fmt.Sprintf("training time (s, %s vs %s)", subprocRes.TimingSource, inprocRes.TimingSource),
		suite.Cs,
		report.Series{Name: subprocRes.Name, Values: subprocRes.Times},
		report.Series{Name: inprocRes.Name, Values: inprocRes.Times},
		filepath.Join(suite.OutDir, base+"-times"),
	)
	if err != nil {
		return err
	}

	accuracyPath, err := report.Save(
		"accuracy "+base,
		"training accuracy",
		suite.Cs,
		report.Series{Name: subprocRes.Name, Values: subprocRes.Accuracies},
		report.Series{Name: inprocRes.Name, Values: inprocRes.Accuracies},
		filepath.Join(suite.OutDir, base+"-accuracy"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s\n", timesPath, accuracyPath)
	return nil
}
