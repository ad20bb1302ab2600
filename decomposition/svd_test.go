package decomposition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSVDReconstruction(t *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 10,
		2, 1, 0,
	})

	s := NewSVD()
	require.NoError(t, s.Fit(X))

	// Full decomposition reconstructs X: (U S) Vᵀ = X.
	us, err := s.FitTransform(X)
	require.NoError(t, err)

	var reconstructed mat.Dense
	reconstructed.Mul(us, s.ComponentsT())
	assert.True(t, mat.EqualApprox(X, &reconstructed, 1e-9),
		"got\n%v\nwant\n%v", mat.Formatted(&reconstructed), mat.Formatted(X))
}

func TestSVDSingularValuesDescending(t *testing.T) {
	X := mat.NewDense(5, 3, []float64{
		2, 0, 1,
		0, 3, 0,
		1, 1, 1,
		4, 2, 0,
		0, 1, 5,
	})

	s := NewSVD()
	require.NoError(t, s.Fit(X))

	values := s.SingularValues()
	require.Len(t, values, 3)
	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i-1], values[i])
	}
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestSVDTruncation(t *testing.T) {
	X := mat.NewDense(6, 4, []float64{
		1, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 3, 0,
		1, 1, 0, 0,
		0, 1, 1, 0,
		1, 0, 1, 0,
	})

	s := NewSVD(WithSVDComponents(2))
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	r, c := out.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 2, c)
	assert.Len(t, s.SingularValues(), 2)

	vtr, vtc := s.ComponentsT().Dims()
	assert.Equal(t, 2, vtr)
	assert.Equal(t, 4, vtc)
}

func TestSVDExplainedVariance(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 0,
		2, 0,
		3, 0,
		4, 0,
	})

	s := NewSVD()
	require.NoError(t, s.Fit(X))

	ev := s.ExplainedVariance()
	values := s.SingularValues()
	for i := range ev {
		assert.InDelta(t, values[i]*values[i]/3.0, ev[i], 1e-12, "s^2/(n-1)")
	}
}

func TestSVDExplainedVarianceRatio(t *testing.T) {
	X := mat.NewDense(5, 3, []float64{
		2, 0, 1,
		0, 3, 0,
		1, 1, 1,
		4, 2, 0,
		0, 1, 5,
	})

	full := NewSVD()
	require.NoError(t, full.Fit(X))

	ratios := full.ExplainedVarianceRatio()
	require.Len(t, ratios, 3)
	sum := 0.0
	for i, r := range ratios {
		assert.GreaterOrEqual(t, r, 0.0, "ratio %d", i)
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 1e-12, "full decomposition covers all variance")

	// Truncation keeps the denominator: the leading ratios are the same
	// whether or not the tail is kept.
	truncated := NewSVD(WithSVDComponents(2))
	require.NoError(t, truncated.Fit(X))
	truncRatios := truncated.ExplainedVarianceRatio()
	require.Len(t, truncRatios, 2)
	for i := range truncRatios {
		assert.InDelta(t, ratios[i], truncRatios[i], 1e-12)
	}
}

func TestSVDTransformConsistency(t *testing.T) {
	X := mat.NewDense(5, 3, []float64{
		1, 2, 0,
		0, 1, 1,
		2, 0, 1,
		1, 1, 1,
		3, 0, 0,
	})

	s := NewSVD(WithSVDComponents(2))
	usv, err := s.FitTransform(X)
	require.NoError(t, err)

	// Transform on the training data matches U S up to numerics.
	projected, err := s.Transform(X)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(usv, projected, 1e-9))
}

func TestSVDValidation(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	s := NewSVD(WithSVDComponents(5))
	assert.Error(t, s.Fit(X), "components beyond rank bound")

	_, err := NewSVD().Transform(X)
	assert.Error(t, err, "transform before fit")
}
