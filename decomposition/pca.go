// Package decomposition implements dimensionality reduction:
// principal component analysis via the eigendecomposition of the
// covariance matrix, and truncated singular value decomposition.
package decomposition

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// PCA projects data onto the leading eigenvectors of its covariance
// matrix. Input is standardized by default, so components are computed
// from the correlation structure rather than raw scales.
type PCA struct {
	model.BaseEstimator

	nComponents       int     // 0 selects by variance threshold
	varianceThreshold float64 // cumulative ratio target when nComponents == 0
	standardize       bool

	components       *mat.Dense // column-major eigenvectors, one column per component
	eigenvalues      []float64
	explainedVar     []float64
	explainedRatio   []float64
	xScaler          *preprocessing.StandardScaler
	featureMeans     []float64
	nFeatures        int
	nComponentsFit   int
	totalVariance    float64
}

// PCAOption configures a PCA.
type PCAOption func(*PCA)

// WithNComponents fixes the number of components to keep.
func WithNComponents(n int) PCAOption {
	return func(p *PCA) { p.nComponents = n }
}

// WithVarianceThreshold keeps the fewest components whose cumulative
// explained variance ratio reaches the threshold. Ignored when an
// explicit component count is set.
func WithVarianceThreshold(t float64) PCAOption {
	return func(p *PCA) { p.varianceThreshold = t }
}

// WithStandardize toggles input standardization before decomposition.
func WithStandardize(on bool) PCAOption {
	return func(p *PCA) { p.standardize = on }
}

// NewPCA creates a PCA that standardizes input and keeps all
// components unless an option narrows the selection.
func NewPCA(opts ...PCAOption) *PCA {
	p := &PCA{standardize: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fit computes the principal components of X.
func (p *PCA) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PCA.Fit", "empty data", errors.ErrEmptyData)
	}
	if r < 2 {
		return errors.NewValidationError("X", "needs at least 2 samples", r)
	}
	if p.nComponents < 0 {
		return errors.NewValidationError("n_components", "must be non-negative", p.nComponents)
	}
	if p.varianceThreshold < 0 || p.varianceThreshold > 1 {
		return errors.NewValidationError("variance_threshold", "must lie in [0, 1]", p.varianceThreshold)
	}

	p.nFeatures = c

	var centered *mat.Dense
	if p.standardize {
		p.xScaler = preprocessing.NewStandardScaler()
		scaled, err := p.xScaler.FitTransform(X)
		if err != nil {
			return err
		}
		centered = scaled
		p.featureMeans = nil
	} else {
		p.xScaler = nil
		p.featureMeans = make([]float64, c)
		centered = mat.NewDense(r, c, nil)
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			mat.Col(col, j, X)
			sum := 0.0
			for _, v := range col {
				sum += v
			}
			m := sum / float64(r)
			p.featureMeans[j] = m
			for i, v := range col {
				centered.Set(i, j, v-m)
			}
		}
	}

	// Sample covariance of the (standardized or centered) data.
	var cov mat.SymDense
	cov.SymOuterK(1/float64(r-1), centered.T())

	var eig mat.EigenSym
	if ok := eig.Factorize(&cov, true); !ok {
		return errors.NewModelError("PCA.Fit", "eigendecomposition failed to converge", errors.ErrNotConverged)
	}

	eigenvalues := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Descending eigenvalue order; tiny negatives from roundoff clamp
	// to zero.
	order := make([]int, c)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return eigenvalues[order[a]] > eigenvalues[order[b]]
	})

	sortedVals := make([]float64, c)
	sortedVecs := mat.NewDense(c, c, nil)
	p.totalVariance = 0
	for rank, idx := range order {
		v := eigenvalues[idx]
		if v < 0 {
			v = 0
		}
		sortedVals[rank] = v
		p.totalVariance += v
		for i := 0; i < c; i++ {
			sortedVecs.Set(i, rank, vectors.At(i, idx))
		}
	}

	ratios := make([]float64, c)
	for i, v := range sortedVals {
		ratios[i] = errors.SafeDivide(v, p.totalVariance)
	}

	keep := c
	switch {
	case p.nComponents > 0:
		// A request beyond the feature count caps at the feature count.
		keep = p.nComponents
		if keep > c {
			keep = c
		}
	case p.varianceThreshold > 0:
		cum := 0.0
		for i, ratio := range ratios {
			cum += ratio
			if cum >= p.varianceThreshold {
				keep = i + 1
				break
			}
		}
	}

	p.eigenvalues = sortedVals
	p.explainedVar = sortedVals[:keep]
	p.explainedRatio = ratios[:keep]
	p.components = mat.DenseCopyOf(sortedVecs.Slice(0, c, 0, keep))
	p.nComponentsFit = keep

	p.SetFitted()

	log.Model("PCA").Debug().
		Int(log.SamplesKey, r).
		Int(log.FeaturesKey, c).
		Int("n_components", keep).
		Msg("fit complete")
	return nil
}

// Transform projects X onto the fitted components.
func (p *PCA) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}

	r, c := X.Dims()
	if c != p.nFeatures {
		return nil, errors.NewDimensionError("PCA.Transform", p.nFeatures, c, 1)
	}

	var centered mat.Matrix
	if p.standardize {
		scaled, err := p.xScaler.Transform(X)
		if err != nil {
			return nil, err
		}
		centered = scaled
	} else {
		d := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				d.Set(i, j, X.At(i, j)-p.featureMeans[j])
			}
		}
		centered = d
	}

	out := mat.NewDense(r, p.nComponentsFit, nil)
	out.Mul(centered, p.components)
	return out, nil
}

// FitTransform fits the components and projects X in one call.
func (p *PCA) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// Components returns the projection matrix, one column per component.
func (p *PCA) Components() *mat.Dense {
	return p.components
}

// ExplainedVariance returns the eigenvalue of each kept component.
func (p *PCA) ExplainedVariance() []float64 {
	return p.explainedVar
}

// ExplainedVarianceRatio returns each kept component's share of total
// variance.
func (p *PCA) ExplainedVarianceRatio() []float64 {
	return p.explainedRatio
}

// NComponents returns the number of components kept at fit time.
func (p *PCA) NComponents() int {
	return p.nComponentsFit
}

// Loadings returns the components scaled by the square root of their
// eigenvalues, giving each feature's correlation-style weight.
func (p *PCA) Loadings() *mat.Dense {
	if p.components == nil {
		return nil
	}
	r, c := p.components.Dims()
	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		scale := math.Sqrt(p.eigenvalues[j])
		for i := 0; i < r; i++ {
			out.Set(i, j, p.components.At(i, j)*scale)
		}
	}
	return out
}
