package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// LogisticRegression is a binary classifier trained with batch gradient
// descent and L2 regularization. Features are standardized before
// fitting; the 0/1 target is used as-is.
type LogisticRegression struct {
	model.BaseEstimator

	// Hyperparameters
	learningRate float64
	maxIter      int
	c            float64 // inverse regularization strength

	// Fitted parameters: weights in scaled coordinates, intercept first.
	weights   *mat.VecDense
	xScaler   *preprocessing.StandardScaler
	nFeatures int
	nIter     int
}

// gradientTol is the early-stopping threshold on the gradient norm.
const gradientTol = 1e-8

// LogisticOption configures a LogisticRegression.
type LogisticOption func(*LogisticRegression)

// WithLogisticLearningRate sets the learning rate.
func WithLogisticLearningRate(rate float64) LogisticOption {
	return func(lr *LogisticRegression) { lr.learningRate = rate }
}

// WithLogisticMaxIter sets the iteration budget.
func WithLogisticMaxIter(n int) LogisticOption {
	return func(lr *LogisticRegression) { lr.maxIter = n }
}

// WithLogisticC sets the inverse regularization strength. Larger C means
// weaker regularization.
func WithLogisticC(c float64) LogisticOption {
	return func(lr *LogisticRegression) { lr.c = c }
}

// NewLogisticRegression creates a LogisticRegression with learning rate
// 0.1, 10000 iterations and C=1.0.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	lr := &LogisticRegression{
		learningRate: 0.1,
		maxIter:      10000,
		c:            1.0,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// sigmoid computes 1/(1+exp(-z)) with the branch on the sign of z so
// exp never overflows, and extreme logits clipped.
func sigmoid(z float64) float64 {
	z = errors.ClipValue(z, -500, 500)
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1 + ez)
}

// Fit trains the classifier on X and a 0/1 target.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LogisticRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}
	if lr.c <= 0 {
		return errors.NewValidationError("C", "must be positive", lr.c)
	}

	lr.nFeatures = c

	lr.xScaler = preprocessing.NewStandardScaler()
	xScaled, err := lr.xScaler.FitTransform(X)
	if err != nil {
		return err
	}
	design := preprocessing.AddIntercept(xScaled)

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return errors.NewValueError("LogisticRegression.Fit", "y must contain only 0/1 labels")
		}
		yVec.SetVec(i, v)
	}

	d := c + 1
	w := mat.NewVecDense(d, nil)

	var logits, probs, residual, grad mat.VecDense
	probs.ReuseAsVec(r)
	converged := false

	for iter := 0; iter < lr.maxIter; iter++ {
		lr.nIter = iter + 1

		logits.MulVec(design, w)
		for i := 0; i < r; i++ {
			probs.SetVec(i, sigmoid(logits.AtVec(i)))
		}

		residual.SubVec(&probs, yVec)
		grad.MulVec(design.T(), &residual)

		// L2 penalty on every weight except the intercept.
		for j := 1; j < d; j++ {
			grad.SetVec(j, grad.AtVec(j)+w.AtVec(j)/lr.c)
		}
		grad.ScaleVec(1/float64(r), &grad)

		w.AddScaledVec(w, -lr.learningRate, &grad)

		if mat.Norm(&grad, 2) < gradientTol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	}

	lr.weights = w
	lr.SetFitted()

	log.Model("LogisticRegression").Debug().
		Int(log.SamplesKey, r).
		Int(log.FeaturesKey, c).
		Int(log.IterationsKey, lr.nIter).
		Msg("fit complete")
	return nil
}

// PredictProba returns P(y=1) per row, clipped to [0, 1].
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures, c, 1)
	}

	xScaled, err := lr.xScaler.Transform(X)
	if err != nil {
		return nil, err
	}
	design := preprocessing.AddIntercept(xScaled)

	probs := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		p := sigmoid(mat.Dot(design.RowView(i), lr.weights))
		if math.IsNaN(p) {
			p = 0.5
		}
		probs.SetVec(i, errors.ClipValue(p, 0, 1))
	}
	return probs, nil
}

// Predict returns 0/1 labels thresholded at 0.5.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	probs, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(probs.Len(), 1, nil)
	for i := 0; i < probs.Len(); i++ {
		if probs.AtVec(i) >= 0.5 {
			out.Set(i, 0, 1)
		}
	}
	return out, nil
}

// Coef returns the coefficients in original feature units.
func (lr *LogisticRegression) Coef() []float64 {
	if !lr.IsFitted() {
		return nil
	}
	coef := make([]float64, lr.nFeatures)
	for j := 0; j < lr.nFeatures; j++ {
		coef[j] = lr.weights.AtVec(j+1) / lr.xScaler.Std[j]
	}
	return coef
}

// Intercept returns the intercept in original feature units.
func (lr *LogisticRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	intercept := lr.weights.AtVec(0)
	for j := 0; j < lr.nFeatures; j++ {
		intercept -= lr.weights.AtVec(j+1) * lr.xScaler.Mean[j] / lr.xScaler.Std[j]
	}
	return intercept
}

// NIter returns the number of gradient-descent iterations performed.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter
}
