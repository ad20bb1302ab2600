package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/distance"
)

func TestKNNRegressorSelfPrediction(t *testing.T) {
	// k=1 on training points reproduces the training targets.
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewVecDense(5, []float64{10, 20, 30, 40, 50})

	knn := NewKNNRegressor(1)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, y.AtVec(i), pred.At(i, 0), 1e-12, "sample %d", i)
	}
}

func TestKNNRegressorMeanAggregation(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 10, 11})
	y := mat.NewVecDense(4, []float64{2, 4, 100, 200})

	knn := NewKNNRegressor(2)
	require.NoError(t, knn.Fit(X, y))

	// 0.4 is nearest to {0, 1}: mean(2, 4) = 3.
	pred, err := knn.Predict(mat.NewDense(1, 1, []float64{0.4}))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, pred.At(0, 0), 1e-12)
}

func TestKNNClassifierMajorityVote(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		10, 10,
		10, 11,
		11, 10,
	})
	y := mat.NewVecDense(6, []float64{0, 0, 0, 1, 1, 1})

	knn := NewKNNClassifier(3)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(mat.NewDense(2, 2, []float64{
		0.5, 0.5,
		10.5, 10.5,
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.At(0, 0))
	assert.Equal(t, 1.0, pred.At(1, 0))
}

func TestKNNClassifierTieBreaksToLowestLabel(t *testing.T) {
	// Two neighbors of each class at equal distance; k=2 ties 1-1.
	X := mat.NewDense(2, 1, []float64{-1, 1})
	y := mat.NewVecDense(2, []float64{5, 3})

	knn := NewKNNClassifier(2)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(mat.NewDense(1, 1, []float64{0}))
	require.NoError(t, err)
	assert.Equal(t, 3.0, pred.At(0, 0), "tie must resolve to the lowest label")
}

func TestKNNKLargerThanSamples(t *testing.T) {
	// k is capped at the training size instead of failing.
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	knn := NewKNNRegressor(10)
	require.NoError(t, knn.Fit(X, y))

	pred, err := knn.Predict(mat.NewDense(1, 1, []float64{2}))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, pred.At(0, 0), 1e-12, "mean of all targets")
}

func TestKNNAlternativeMetrics(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 5,
		5, 0,
		5, 5,
	})
	y := mat.NewVecDense(4, []float64{0, 1, 1, 0})

	for _, m := range []distance.Metric{distance.Manhattan, distance.Chebyshev, distance.Minkowski} {
		knn := NewKNNClassifier(1, WithKNNMetric(m))
		require.NoError(t, knn.Fit(X, y))

		pred, err := knn.Predict(X)
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			assert.Equal(t, y.AtVec(i), pred.At(i, 0), "metric %s sample %d", m, i)
		}
	}
}

func TestKNNValidation(t *testing.T) {
	knn := NewKNNRegressor(0)
	err := knn.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewVecDense(2, []float64{1, 2}))
	assert.Error(t, err, "k must be positive")

	knn2 := NewKNNClassifier(1)
	_, err = knn2.Predict(mat.NewDense(1, 1, []float64{1}))
	assert.Error(t, err, "predict before fit")
}
