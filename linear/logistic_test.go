package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func separableData() (*mat.Dense, *mat.VecDense) {
	// Class 0 around (1,1), class 1 around (4,4).
	X := mat.NewDense(8, 2, []float64{
		0.5, 1.0,
		1.0, 0.5,
		1.5, 1.2,
		0.8, 1.5,
		3.5, 4.0,
		4.0, 3.5,
		4.5, 4.2,
		3.8, 4.5,
	})
	y := mat.NewVecDense(8, []float64{0, 0, 0, 0, 1, 1, 1, 1})
	return X, y
}

func TestLogisticRegressionSeparable(t *testing.T) {
	X, y := separableData()

	lr := NewLogisticRegression(WithLogisticMaxIter(5000))
	require.NoError(t, lr.Fit(X, y))

	pred, err := lr.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		assert.Equal(t, y.AtVec(i), pred.At(i, 0), "sample %d", i)
	}

	proba, err := lr.PredictProba(X)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		p := proba.AtVec(i)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if y.AtVec(i) == 1 {
			assert.Greater(t, p, 0.5, "sample %d", i)
		} else {
			assert.Less(t, p, 0.5, "sample %d", i)
		}
	}
}

func TestLogisticRegressionRegularization(t *testing.T) {
	X, y := separableData()

	strong := NewLogisticRegression(WithLogisticC(0.01), WithLogisticMaxIter(2000))
	weak := NewLogisticRegression(WithLogisticC(100), WithLogisticMaxIter(2000))
	require.NoError(t, strong.Fit(X, y))
	require.NoError(t, weak.Fit(X, y))

	// Stronger regularization (smaller C) shrinks the weights.
	normOf := func(coef []float64) float64 {
		var s float64
		for _, v := range coef {
			s += v * v
		}
		return s
	}
	assert.Less(t, normOf(strong.Coef()), normOf(weak.Coef()))
}

func TestLogisticRegressionValidation(t *testing.T) {
	lr := NewLogisticRegression()

	_, err := lr.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	assert.Error(t, err, "predict before fit")

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	err = lr.Fit(X, mat.NewVecDense(3, []float64{0, 1, 2}))
	assert.Error(t, err, "non-binary labels")

	err = lr.Fit(X, mat.NewVecDense(2, []float64{0, 1}))
	assert.Error(t, err, "row mismatch")
}

func TestSigmoidStability(t *testing.T) {
	// Extreme inputs must not overflow.
	assert.InDelta(t, 1.0, sigmoid(1000), 1e-12)
	assert.InDelta(t, 0.0, sigmoid(-1000), 1e-12)
	assert.InDelta(t, 0.5, sigmoid(0), 1e-12)

	// Monotonic around the origin.
	assert.Greater(t, sigmoid(1), sigmoid(-1))
}
