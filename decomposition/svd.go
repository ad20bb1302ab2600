package decomposition

import (
	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
)

// SVD computes a truncated singular value decomposition X = U S Vᵀ of
// the raw data matrix. Unlike PCA it does not center or scale, so it
// suits sparse-style data where the origin is meaningful.
type SVD struct {
	model.BaseEstimator

	nComponents int // 0 keeps every singular value

	u              *mat.Dense
	singularValues []float64
	vt             *mat.Dense
	explainedVar   []float64
	totalVar       float64
	nFeatures      int
	nComponentsFit int
}

// SVDOption configures an SVD.
type SVDOption func(*SVD)

// WithSVDComponents truncates the decomposition to n singular values.
func WithSVDComponents(n int) SVDOption {
	return func(s *SVD) { s.nComponents = n }
}

// NewSVD creates an SVD keeping all singular values unless truncated.
func NewSVD(opts ...SVDOption) *SVD {
	s := &SVD{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit decomposes X.
func (s *SVD) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SVD.Fit", "empty data", errors.ErrEmptyData)
	}
	maxRank := r
	if c < maxRank {
		maxRank = c
	}
	if s.nComponents < 0 || s.nComponents > maxRank {
		return errors.NewValidationError("n_components", "must satisfy 0 <= k <= min(n_samples, n_features)", s.nComponents)
	}

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return errors.NewModelError("SVD.Fit", "singular value decomposition failed to converge", errors.ErrNotConverged)
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	keep := len(values)
	if s.nComponents > 0 {
		keep = s.nComponents
	}

	s.nFeatures = c
	s.nComponentsFit = keep
	s.singularValues = values[:keep]
	s.u = mat.DenseCopyOf(u.Slice(0, r, 0, keep))
	s.vt = mat.NewDense(keep, c, nil)
	for i := 0; i < keep; i++ {
		for j := 0; j < c; j++ {
			s.vt.Set(i, j, v.At(j, i))
		}
	}

	// Variance carried by each singular direction; a single sample has
	// no variance to attribute. The total runs over every singular
	// value, including truncated ones, so ratios stay comparable across
	// truncation levels.
	s.explainedVar = make([]float64, keep)
	s.totalVar = 0
	if r > 1 {
		for i, sv := range s.singularValues {
			s.explainedVar[i] = sv * sv / float64(r-1)
		}
		for _, sv := range values {
			s.totalVar += sv * sv / float64(r-1)
		}
	}

	s.SetFitted()

	log.Model("SVD").Debug().
		Int(log.SamplesKey, r).
		Int(log.FeaturesKey, c).
		Int("n_components", keep).
		Msg("fit complete")
	return nil
}

// Transform projects X onto the right singular vectors.
func (s *SVD) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SVD", "Transform")
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("SVD.Transform", s.nFeatures, c, 1)
	}

	out := mat.NewDense(r, s.nComponentsFit, nil)
	out.Mul(X, s.vt.T())
	return out, nil
}

// FitTransform decomposes X and returns the projection U S of the
// training data.
func (s *SVD) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	r, _ := s.u.Dims()
	out := mat.NewDense(r, s.nComponentsFit, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < s.nComponentsFit; j++ {
			out.Set(i, j, s.u.At(i, j)*s.singularValues[j])
		}
	}
	return out, nil
}

// SingularValues returns the kept singular values in descending order.
func (s *SVD) SingularValues() []float64 {
	return s.singularValues
}

// ExplainedVariance returns the variance attributed to each kept
// singular direction.
func (s *SVD) ExplainedVariance() []float64 {
	return s.explainedVar
}

// ExplainedVarianceRatio returns each kept direction's share of the
// total variance across all singular values.
func (s *SVD) ExplainedVarianceRatio() []float64 {
	ratios := make([]float64, len(s.explainedVar))
	for i, v := range s.explainedVar {
		ratios[i] = errors.SafeDivide(v, s.totalVar)
	}
	return ratios
}

// ComponentsT returns Vᵀ truncated to the kept components.
func (s *SVD) ComponentsT() *mat.Dense {
	return s.vt
}
