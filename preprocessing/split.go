package preprocessing

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// TrainTestSplit partitions X and y into random train and test subsets.
// A private generator is seeded per call, so concurrent splits with the
// same seed produce identical, mutually independent partitions. The test
// partition holds max(1, round(n*testSize)) rows; there is no
// stratification.
func TrainTestSplit(X mat.Matrix, y *mat.VecDense, testSize float64, seed int64) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	n, c := X.Dims()
	if n == 0 || c == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	nTest := int(math.Round(float64(n) * testSize))
	if nTest < 1 {
		nTest = 1
	}
	nTrain := n - nTest
	if nTrain < 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "not enough samples for training")
	}

	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(n)
	testIdx := indices[:nTest]
	trainIdx := indices[nTest:]

	XTrain = mat.NewDense(nTrain, c, nil)
	XTest = mat.NewDense(nTest, c, nil)
	yTrain = mat.NewVecDense(nTrain, nil)
	yTest = mat.NewVecDense(nTest, nil)

	for i, idx := range trainIdx {
		for j := 0; j < c; j++ {
			XTrain.Set(i, j, X.At(idx, j))
		}
		yTrain.SetVec(i, y.AtVec(idx))
	}
	for i, idx := range testIdx {
		for j := 0; j < c; j++ {
			XTest.Set(i, j, X.At(idx, j))
		}
		yTest.SetVec(i, y.AtVec(idx))
	}

	return XTrain, XTest, yTrain, yTest, nil
}
