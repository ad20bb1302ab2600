package decomposition

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// correlatedData returns n points where the second feature is a noisy
// copy of the first, so nearly all variance lies on one axis.
func correlatedData(n int, noise float64, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		v := rng.NormFloat64()
		X.Set(i, 0, v)
		X.Set(i, 1, v+rng.NormFloat64()*noise)
	}
	return X
}

func TestPCACorrelatedFeatures(t *testing.T) {
	X := correlatedData(200, 0.01, 1)

	p := NewPCA()
	require.NoError(t, p.Fit(X))

	ratios := p.ExplainedVarianceRatio()
	require.Len(t, ratios, 2)
	assert.Greater(t, ratios[0], 0.99, "first component carries almost all variance")
	assert.InDelta(t, 1.0, ratios[0]+ratios[1], 1e-9, "ratios sum to 1")
}

func TestPCAExplainedVarianceOrdering(t *testing.T) {
	X := correlatedData(100, 0.3, 2)

	p := NewPCA()
	require.NoError(t, p.Fit(X))

	variances := p.ExplainedVariance()
	for i := 1; i < len(variances); i++ {
		assert.GreaterOrEqual(t, variances[i-1], variances[i], "descending order")
		assert.GreaterOrEqual(t, variances[i], 0.0, "no negative eigenvalues")
	}
}

func TestPCATransformShape(t *testing.T) {
	X := correlatedData(50, 0.2, 3)

	p := NewPCA(WithNComponents(1))
	out, err := p.FitTransform(X)
	require.NoError(t, err)

	r, c := out.Dims()
	assert.Equal(t, 50, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, p.NComponents())

	// New data projects through the same components.
	out2, err := p.Transform(correlatedData(10, 0.2, 4))
	require.NoError(t, err)
	r, c = out2.Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 1, c)
}

func TestPCAVarianceThresholdSelection(t *testing.T) {
	X := correlatedData(150, 0.01, 5)

	p := NewPCA(WithVarianceThreshold(0.95))
	require.NoError(t, p.Fit(X))

	// One component already explains >99% of this data.
	assert.Equal(t, 1, p.NComponents())
}

func TestPCALoadings(t *testing.T) {
	X := correlatedData(100, 0.1, 6)

	p := NewPCA()
	require.NoError(t, p.Fit(X))

	loadings := p.Loadings()
	require.NotNil(t, loadings)
	r, c := loadings.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)

	// loading = component * sqrt(eigenvalue)
	comp := p.Components()
	ev := p.ExplainedVariance()
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			want := comp.At(i, j) * math.Sqrt(ev[j])
			assert.InDelta(t, want, loadings.At(i, j), 1e-12)
		}
	}
}

func TestPCAWithoutStandardize(t *testing.T) {
	// Raw-scale PCA on data with one dominant feature picks that axis.
	X := mat.NewDense(4, 2, []float64{
		0, 100,
		0, -100,
		0.1, 50,
		-0.1, -50,
	})

	p := NewPCA(WithStandardize(false), WithNComponents(1))
	require.NoError(t, p.Fit(X))

	comp := p.Components()
	assert.Greater(t, math.Abs(comp.At(1, 0)), math.Abs(comp.At(0, 0)),
		"dominant raw-scale feature should load the first component")
}

func TestPCAComponentCountCapped(t *testing.T) {
	X := correlatedData(10, 0.1, 7)

	// Asking for more components than features keeps them all.
	p := NewPCA(WithNComponents(5))
	require.NoError(t, p.Fit(X))
	assert.Equal(t, 2, p.NComponents())

	out, err := p.Transform(X)
	require.NoError(t, err)
	_, c := out.Dims()
	assert.Equal(t, 2, c)
}

func TestPCAValidation(t *testing.T) {
	X := correlatedData(10, 0.1, 7)

	p := NewPCA(WithNComponents(-1))
	assert.Error(t, p.Fit(X), "negative component count")

	p = NewPCA()
	assert.Error(t, p.Fit(mat.NewDense(1, 2, []float64{1, 2})), "single sample")

	_, err := NewPCA().Transform(X)
	assert.Error(t, err, "transform before fit")
}
