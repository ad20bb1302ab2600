package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/linear"
	"github.com/PraneethV-cmd/neuroflow-ide/metrics"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

var (
	regressData         string
	regressTarget       string
	regressModel        string
	regressSolver       string
	regressDegree       int
	regressTestSize     float64
	regressSeed         int64
	regressLearningRate float64
	regressMaxIter      int
)

var regressCmd = &cobra.Command{
	Use:   "regress",
	Short: "Train a regression or classification model on a CSV dataset",
	Long: `Train a model on CSV data and report test-set metrics as JSON.

Models:
- linear:     ordinary least squares with solver selection
- polynomial: degree-expanded least squares
- logistic:   binary classification on 0/1 targets`,
	RunE: runRegress,
}

func init() {
	regressCmd.Flags().StringVar(&regressData, "data", "", "CSV dataset path (required)")
	regressCmd.Flags().StringVar(&regressTarget, "target", "", "target column name (default: last column)")
	regressCmd.Flags().StringVar(&regressModel, "model", "linear", "model: linear, polynomial or logistic")
	regressCmd.Flags().StringVar(&regressSolver, "solver", "auto", "linear solver: auto, normal, gradient or svd")
	regressCmd.Flags().IntVar(&regressDegree, "degree", 2, "polynomial degree")
	regressCmd.Flags().Float64Var(&regressTestSize, "test-size", 0.2, "held-out fraction")
	regressCmd.Flags().Int64Var(&regressSeed, "seed", 42, "split shuffle seed")
	regressCmd.Flags().Float64Var(&regressLearningRate, "learning-rate", 0, "gradient descent step size (0 keeps the model default)")
	regressCmd.Flags().IntVar(&regressMaxIter, "max-iter", 0, "gradient descent iteration budget (0 keeps the model default)")
	regressCmd.MarkFlagRequired("data")
}

// regressResult is the JSON document written to stdout.
type regressResult struct {
	Model          string                         `json:"model"`
	Solver         string                         `json:"solver,omitempty"`
	Degree         int                            `json:"degree,omitempty"`
	TrainSamples   int                            `json:"train_samples"`
	TestSamples    int                            `json:"test_samples"`
	Coefficients   []float64                      `json:"coefficients"`
	Intercept      float64                        `json:"intercept"`
	Iterations     int                            `json:"iterations,omitempty"`
	Regression     *metrics.RegressionReport     `json:"regression,omitempty"`
	Classification *metrics.ClassificationReport `json:"classification,omitempty"`
}

func runRegress(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	applyRegressConfig(cmd, cfg)

	ds, err := loadCSV(regressData)
	if err != nil {
		return err
	}
	target, err := ds.targetIndex(regressTarget)
	if err != nil {
		return err
	}
	X, y, err := ds.split(target)
	if err != nil {
		return err
	}

	XTrain, XTest, yTrain, yTest, err := preprocessing.TrainTestSplit(X, y, regressTestSize, regressSeed)
	if err != nil {
		return err
	}

	result := regressResult{
		Model:        regressModel,
		TrainSamples: yTrain.Len(),
		TestSamples:  yTest.Len(),
	}

	switch regressModel {
	case "linear":
		solver, err := linear.ParseSolver(regressSolver)
		if err != nil {
			return err
		}
		opts := []linear.Option{linear.WithSolver(solver)}
		if regressLearningRate > 0 {
			opts = append(opts, linear.WithLearningRate(regressLearningRate))
		}
		if regressMaxIter > 0 {
			opts = append(opts, linear.WithMaxIter(regressMaxIter))
		}
		model := linear.NewLinearRegression(opts...)
		if err := model.Fit(XTrain, yTrain); err != nil {
			return err
		}
		pred, err := model.Predict(XTest)
		if err != nil {
			return err
		}
		report, err := metrics.Regression(yTest, toVec(pred))
		if err != nil {
			return err
		}
		result.Solver = solver.String()
		result.Coefficients = model.Coef()
		result.Intercept = model.Intercept()
		result.Iterations = model.NIter()
		result.Regression = &report

	case "polynomial":
		var inner []linear.Option
		if regressLearningRate > 0 {
			inner = append(inner, linear.WithLearningRate(regressLearningRate))
		}
		if regressMaxIter > 0 {
			inner = append(inner, linear.WithMaxIter(regressMaxIter))
		}
		model := linear.NewPolynomialRegression(regressDegree, linear.WithPolyLinearOptions(inner...))
		if err := model.Fit(XTrain, yTrain); err != nil {
			return err
		}
		pred, err := model.Predict(XTest)
		if err != nil {
			return err
		}
		report, err := metrics.Regression(yTest, toVec(pred))
		if err != nil {
			return err
		}
		result.Degree = regressDegree
		result.Coefficients = model.Coef()
		result.Intercept = model.Intercept()
		result.Regression = &report

	case "logistic":
		var opts []linear.LogisticOption
		if regressLearningRate > 0 {
			opts = append(opts, linear.WithLogisticLearningRate(regressLearningRate))
		}
		if regressMaxIter > 0 {
			opts = append(opts, linear.WithLogisticMaxIter(regressMaxIter))
		}
		model := linear.NewLogisticRegression(opts...)
		if err := model.Fit(XTrain, yTrain); err != nil {
			return err
		}
		pred, err := model.Predict(XTest)
		if err != nil {
			return err
		}
		report, err := metrics.Classification(yTest, toVec(pred))
		if err != nil {
			return err
		}
		result.Coefficients = model.Coef()
		result.Intercept = model.Intercept()
		result.Iterations = model.NIter()
		result.Classification = &report

	default:
		return errors.NewValueError("regress", "unknown model: "+regressModel)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// applyRegressConfig fills in flag defaults from the config file; flags
// set explicitly on the command line take precedence.
func applyRegressConfig(cmd *cobra.Command, cfg *fileConfig) {
	if !cmd.Flags().Changed("solver") && cfg.Regress.Solver != "" {
		regressSolver = cfg.Regress.Solver
	}
	if !cmd.Flags().Changed("degree") && cfg.Regress.Degree > 0 {
		regressDegree = cfg.Regress.Degree
	}
	if !cmd.Flags().Changed("test-size") && cfg.Regress.TestSize > 0 {
		regressTestSize = cfg.Regress.TestSize
	}
	if !cmd.Flags().Changed("seed") && cfg.Regress.Seed != 0 {
		regressSeed = cfg.Regress.Seed
	}
	if !cmd.Flags().Changed("learning-rate") && cfg.Regress.LearningRate > 0 {
		regressLearningRate = cfg.Regress.LearningRate
	}
	if !cmd.Flags().Changed("max-iter") && cfg.Regress.MaxIter > 0 {
		regressMaxIter = cfg.Regress.MaxIter
	}
}

// toVec converts a single-column prediction matrix to vector form.
func toVec(m mat.Matrix) *mat.VecDense {
	if v, ok := m.(*mat.VecDense); ok {
		return v
	}
	r, _ := m.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, m.At(i, 0))
	}
	return out
}
