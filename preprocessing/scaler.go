// Package preprocessing provides the numeric helpers the engine composes
// before fitting: robust standardization, train/test partitioning,
// intercept augmentation and polynomial feature expansion.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// zeroStdThreshold is the variance guard: any feature whose standard
// deviation falls below it is pinned to std=1 so scaling never divides
// by a vanishing value.
const zeroStdThreshold = 1e-10

// StandardScaler standardizes features to zero mean and unit variance.
// Statistics are computed once at Fit and reused verbatim afterwards;
// near-constant features are pinned to std=1.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-feature means seen at Fit.
	Mean []float64

	// Std holds the per-feature standard deviations, zero-variance guarded.
	Std []float64

	// NFeatures is the number of features seen at Fit.
	NFeatures int
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - s.Mean[j]
			sumSquares += diff * diff
		}
		s.Std[j] = math.Sqrt(sumSquares / float64(r))
		if s.Std[j] < zeroStdThreshold {
			s.Std[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X with the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Std[j])
		}
	}
	return result, nil
}

// FitTransform fits on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Std[j]+s.Mean[j])
		}
	}
	return result, nil
}

// String returns a short description of the scaler.
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", s.NFeatures)
}

// TargetScaler standardizes a target vector with the same zero-variance
// guard as StandardScaler. A constant target keeps std=1 so the inverse
// transform is the identity around the mean.
type TargetScaler struct {
	model.BaseEstimator

	Mean float64
	Std  float64
}

// NewTargetScaler creates an unfitted TargetScaler.
func NewTargetScaler() *TargetScaler {
	return &TargetScaler{}
}

// Fit computes mean and standard deviation of y.
func (t *TargetScaler) Fit(y *mat.VecDense) error {
	n := y.Len()
	if n == 0 {
		return errors.NewModelError("TargetScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += y.AtVec(i)
	}
	t.Mean = sum / float64(n)

	var sumSquares float64
	for i := 0; i < n; i++ {
		diff := y.AtVec(i) - t.Mean
		sumSquares += diff * diff
	}
	t.Std = math.Sqrt(sumSquares / float64(n))
	if t.Std < zeroStdThreshold {
		t.Std = 1.0
	}

	t.SetFitted()
	return nil
}

// Transform standardizes y with the fitted statistics.
func (t *TargetScaler) Transform(y *mat.VecDense) (*mat.VecDense, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("TargetScaler", "Transform")
	}
	out := mat.NewVecDense(y.Len(), nil)
	for i := 0; i < y.Len(); i++ {
		out.SetVec(i, (y.AtVec(i)-t.Mean)/t.Std)
	}
	return out, nil
}

// FitTransform fits on y and returns the standardized y.
func (t *TargetScaler) FitTransform(y *mat.VecDense) (*mat.VecDense, error) {
	if err := t.Fit(y); err != nil {
		return nil, err
	}
	return t.Transform(y)
}

// InverseValue maps a single standardized prediction back to the
// original target scale.
func (t *TargetScaler) InverseValue(v float64) float64 {
	return v*t.Std + t.Mean
}
