// Package naivebayes implements Gaussian Naive Bayes classification
// with maximum-likelihood class statistics and variance smoothing.
package naivebayes

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
)

// GaussianNB assumes features are normally distributed within each
// class. Fit estimates per-class priors, means and variances by maximum
// likelihood; a smoothing term proportional to the largest overall
// feature variance is added to every variance so constant features never
// divide by zero.
type GaussianNB struct {
	model.BaseEstimator

	varSmoothing float64

	classes   []float64 // sorted ascending
	priors    []float64
	means     [][]float64 // nClasses x nFeatures
	variances [][]float64 // nClasses x nFeatures, smoothed
	epsilon   float64
	nFeatures int
}

// GaussianNBOption configures a GaussianNB.
type GaussianNBOption func(*GaussianNB)

// WithVarSmoothing sets the variance smoothing factor.
func WithVarSmoothing(smoothing float64) GaussianNBOption {
	return func(nb *GaussianNB) { nb.varSmoothing = smoothing }
}

// NewGaussianNB creates a GaussianNB with var smoothing 1e-9.
func NewGaussianNB(opts ...GaussianNBOption) *GaussianNB {
	nb := &GaussianNB{varSmoothing: 1e-9}
	for _, opt := range opts {
		opt(nb)
	}
	return nb
}

// Fit estimates class priors, means and variances from X and y.
func (nb *GaussianNB) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("GaussianNB.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("GaussianNB.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GaussianNB.Fit", "y must be a column vector")
	}

	nb.nFeatures = c

	classIdx := make(map[float64][]int)
	for i := 0; i < r; i++ {
		label := y.At(i, 0)
		classIdx[label] = append(classIdx[label], i)
	}
	nb.classes = make([]float64, 0, len(classIdx))
	for class := range classIdx {
		nb.classes = append(nb.classes, class)
	}
	sort.Float64s(nb.classes)

	nClasses := len(nb.classes)
	nb.priors = make([]float64, nClasses)
	nb.means = make([][]float64, nClasses)
	nb.variances = make([][]float64, nClasses)

	for k, class := range nb.classes {
		rows := classIdx[class]
		nb.priors[k] = float64(len(rows)) / float64(r)
		nb.means[k] = make([]float64, c)
		nb.variances[k] = make([]float64, c)

		for j := 0; j < c; j++ {
			var sum float64
			for _, i := range rows {
				sum += X.At(i, j)
			}
			nb.means[k][j] = sum / float64(len(rows))
		}
		for j := 0; j < c; j++ {
			var sumSq float64
			for _, i := range rows {
				d := X.At(i, j) - nb.means[k][j]
				sumSq += d * d
			}
			nb.variances[k][j] = sumSq / float64(len(rows))
		}
	}

	// Smoothing proportional to the largest overall feature variance.
	var maxVar float64
	for j := 0; j < c; j++ {
		var meanJ float64
		for i := 0; i < r; i++ {
			meanJ += X.At(i, j)
		}
		meanJ /= float64(r)

		var varJ float64
		for i := 0; i < r; i++ {
			d := X.At(i, j) - meanJ
			varJ += d * d
		}
		varJ /= float64(r)
		if varJ > maxVar {
			maxVar = varJ
		}
	}
	nb.epsilon = nb.varSmoothing * maxVar
	for k := range nb.variances {
		for j := range nb.variances[k] {
			nb.variances[k][j] += nb.epsilon
		}
	}

	nb.SetFitted()

	log.Model("GaussianNB").Debug().
		Int(log.SamplesKey, r).
		Int(log.FeaturesKey, c).
		Int("classes", nClasses).
		Msg("fit complete")
	return nil
}

// logLikelihood fills one row of joint log-likelihoods:
// log P(class) - 0.5·Σ log(2π·var) - 0.5·Σ (x-mean)²/var.
func (nb *GaussianNB) logLikelihood(x []float64, out []float64) {
	for k := range nb.classes {
		ll := math.Log(nb.priors[k])
		for j := 0; j < nb.nFeatures; j++ {
			v := nb.variances[k][j]
			d := x[j] - nb.means[k][j]
			ll -= 0.5 * math.Log(2*math.Pi*v)
			ll -= 0.5 * d * d / v
		}
		out[k] = ll
	}
}

// Predict returns, for each row, the class with the highest joint
// log-likelihood. Ties resolve to the lowest-valued class.
func (nb *GaussianNB) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !nb.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", "Predict")
	}

	r, c := X.Dims()
	if c != nb.nFeatures {
		return nil, errors.NewDimensionError("GaussianNB.Predict", nb.nFeatures, c, 1)
	}

	out := mat.NewDense(r, 1, nil)
	x := make([]float64, c)
	ll := make([]float64, len(nb.classes))

	for i := 0; i < r; i++ {
		mat.Row(x, i, X)
		nb.logLikelihood(x, ll)

		best := 0
		for k := 1; k < len(ll); k++ {
			if ll[k] > ll[best] {
				best = k
			}
		}
		out.Set(i, 0, nb.classes[best])
	}
	return out, nil
}

// PredictProba returns per-class probabilities via a numerically stable
// softmax over the joint log-likelihoods.
func (nb *GaussianNB) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !nb.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", "PredictProba")
	}

	r, c := X.Dims()
	if c != nb.nFeatures {
		return nil, errors.NewDimensionError("GaussianNB.PredictProba", nb.nFeatures, c, 1)
	}

	nClasses := len(nb.classes)
	out := mat.NewDense(r, nClasses, nil)
	x := make([]float64, c)
	ll := make([]float64, nClasses)

	for i := 0; i < r; i++ {
		mat.Row(x, i, X)
		nb.logLikelihood(x, ll)

		maxLL := ll[0]
		for _, v := range ll[1:] {
			if v > maxLL {
				maxLL = v
			}
		}

		var sum float64
		for k := 0; k < nClasses; k++ {
			e := math.Exp(ll[k] - maxLL)
			out.Set(i, k, e)
			sum += e
		}
		for k := 0; k < nClasses; k++ {
			out.Set(i, k, out.At(i, k)/sum)
		}
	}
	return out, nil
}

// Classes returns the sorted class labels.
func (nb *GaussianNB) Classes() []float64 {
	return nb.classes
}

// ClassPriors returns the fitted class priors, aligned with Classes.
func (nb *GaussianNB) ClassPriors() []float64 {
	return nb.priors
}

// Means returns the per-class feature means, aligned with Classes.
func (nb *GaussianNB) Means() [][]float64 {
	return nb.means
}

// Variances returns the smoothed per-class feature variances.
func (nb *GaussianNB) Variances() [][]float64 {
	return nb.variances
}
