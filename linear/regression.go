// Package linear implements the regression engine: LinearRegression
// with a configurable solver and fallback chain, PolynomialRegression
// as a feature-expansion wrapper, and LogisticRegression for binary
// classification.
package linear

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/metrics"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// predictionClip bounds predictions mapped back to original units so a
// degenerate fit cannot emit astronomically large values.
const predictionClip = 1e10

// LinearRegression is a least-squares model with solver selection and a
// numerically robust fallback chain. Features and target are always
// standardized before fitting; predictions are mapped back to original
// units, and Coef/Intercept reconstruct original-scale parameters from
// the scaled weight vector.
type LinearRegression struct {
	model.BaseEstimator

	// Hyperparameters
	solver       Solver
	learningRate float64
	maxIter      int
	tol          float64
	randomState  int64

	// Fitted parameters. weights lives in scaled coordinates with the
	// intercept first, so len(weights) == nFeatures + 1.
	weights   *mat.VecDense
	xScaler   *preprocessing.StandardScaler
	yScaler   *preprocessing.TargetScaler
	nFeatures int
	nIter     int
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithSolver selects the optimization strategy.
func WithSolver(s Solver) Option {
	return func(lr *LinearRegression) { lr.solver = s }
}

// WithLearningRate sets the base learning rate for gradient descent.
func WithLearningRate(rate float64) Option {
	return func(lr *LinearRegression) { lr.learningRate = rate }
}

// WithMaxIter sets the iteration budget for gradient descent.
func WithMaxIter(n int) Option {
	return func(lr *LinearRegression) { lr.maxIter = n }
}

// WithTol sets the convergence tolerance.
func WithTol(tol float64) Option {
	return func(lr *LinearRegression) { lr.tol = tol }
}

// WithRandomState seeds the private random generator used for weight
// initialization. Negative values seed from the clock.
func WithRandomState(seed int64) Option {
	return func(lr *LinearRegression) { lr.randomState = seed }
}

// NewLinearRegression creates a LinearRegression with the default
// configuration: auto solver, learning rate 0.01, 10000 iterations,
// tolerance 1e-8.
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		solver:       SolverAuto,
		learningRate: 0.01,
		maxIter:      10000,
		tol:          1e-8,
		randomState:  -1,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit estimates the model parameters from X and y.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.nFeatures = c

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	lr.xScaler = preprocessing.NewStandardScaler()
	xScaled, err := lr.xScaler.FitTransform(X)
	if err != nil {
		return err
	}
	lr.yScaler = preprocessing.NewTargetScaler()
	yScaled, err := lr.yScaler.FitTransform(yVec)
	if err != nil {
		return err
	}

	design := preprocessing.AddIntercept(xScaled)

	solver := lr.solver
	if solver == SolverAuto {
		if r > 1000 || r < c {
			solver = SolverGradient
		} else {
			solver = SolverNormal
		}
	}

	var weights *mat.VecDense
	switch solver {
	case SolverGradient:
		weights = lr.gradientDescent(design, yScaled)
	case SolverSVD:
		weights, err = solveSVDLeastSquares(design, yScaled)
	default:
		weights, err = solveNormalEquation(design, yScaled)
	}

	if weights == nil || err != nil {
		// Ultimate fallback: intercept-only model predicting the mean of
		// the scaled target.
		weights = mat.NewVecDense(c+1, nil)
		weights.SetVec(0, mean(yScaled))
		log.Model("LinearRegression").Warn().
			Str("solver", solver.String()).
			Msg("all solvers failed, falling back to intercept-only model")
	}

	lr.weights = weights
	lr.SetFitted()

	log.Model("LinearRegression").Debug().
		Str("solver", solver.String()).
		Int(log.SamplesKey, r).
		Int(log.FeaturesKey, c).
		Int(log.IterationsKey, lr.nIter).
		Msg("fit complete")
	return nil
}

// gradientDescent runs batch gradient descent on the scaled design
// matrix, tracking the best-loss snapshot and stopping on patience,
// gradient-norm convergence or budget exhaustion. The best snapshot is
// returned, not necessarily the final iterate.
func (lr *LinearRegression) gradientDescent(X *mat.Dense, y *mat.VecDense) *mat.VecDense {
	n, d := X.Dims()

	seed := lr.randomState
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := mat.NewVecDense(d, nil)
	for j := 0; j < d; j++ {
		w.SetVec(j, rng.NormFloat64()*0.01)
	}

	const patience = 100
	best := mat.VecDenseCopyOf(w)
	bestLoss := math.Inf(1)
	patienceCounter := 0
	converged := false

	var pred, residual, grad mat.VecDense
	for iter := 0; iter < lr.maxIter; iter++ {
		lr.nIter = iter + 1

		pred.MulVec(X, w)
		residual.SubVec(&pred, y)
		loss := mat.Dot(&residual, &residual) / float64(n)

		if loss < bestLoss-lr.tol {
			bestLoss = loss
			best.CopyVec(w)
			patienceCounter = 0
		} else {
			patienceCounter++
		}
		if patienceCounter >= patience {
			converged = true
			break
		}

		grad.MulVec(X.T(), &residual)
		grad.ScaleVec(2/float64(n), &grad)

		gradNorm := mat.Norm(&grad, 2)
		if gradNorm > 1.0 {
			grad.ScaleVec(1/gradNorm, &grad)
		}

		currentLR := lr.learningRate / (1 + 0.001*float64(iter))
		w.AddScaledVec(w, -currentLR, &grad)

		if gradNorm < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LinearRegression", lr.maxIter, ""))
	}
	return best
}

// Predict returns predictions in original target units.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, c, 1)
	}

	xScaled, err := lr.xScaler.Transform(X)
	if err != nil {
		return nil, err
	}
	design := preprocessing.AddIntercept(xScaled)

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		scaled := mat.Dot(design.RowView(i), lr.weights)
		value := lr.yScaler.InverseValue(scaled)
		if math.IsNaN(value) {
			value = lr.yScaler.Mean
		}
		predictions.Set(i, 0, errors.ClipValue(value, -predictionClip, predictionClip))
	}
	return predictions, nil
}

// Coef returns the fitted coefficients in original units, derived from
// the scaled weight vector: coef_j = w_{j+1} · yStd / xStd_j.
func (lr *LinearRegression) Coef() []float64 {
	if !lr.IsFitted() {
		return nil
	}
	coef := make([]float64, lr.nFeatures)
	for j := 0; j < lr.nFeatures; j++ {
		coef[j] = lr.weights.AtVec(j+1) * lr.yScaler.Std / lr.xScaler.Std[j]
	}
	return coef
}

// Intercept returns the fitted intercept in original units: the scaled
// intercept mapped through the target scaler minus the contribution of
// the feature means.
func (lr *LinearRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	intercept := lr.weights.AtVec(0)*lr.yScaler.Std + lr.yScaler.Mean
	for j := 0; j < lr.nFeatures; j++ {
		intercept -= lr.weights.AtVec(j+1) * lr.yScaler.Std * lr.xScaler.Mean[j] / lr.xScaler.Std[j]
	}
	return intercept
}

// NIter returns the number of gradient-descent iterations performed,
// zero for closed-form solves.
func (lr *LinearRegression) NIter() int {
	return lr.nIter
}

// Score computes R² on the given data.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, nil)
	yPred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, pred.At(i, 0))
	}
	return metrics.R2Score(yTrue, yPred)
}

func mean(v *mat.VecDense) float64 {
	var sum float64
	for i := 0; i < v.Len(); i++ {
		sum += v.AtVec(i)
	}
	return sum / float64(v.Len())
}
