// Package metrics provides regression and classification scoring for
// fitted models.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// nearZero is the tolerance below which a sum of squares is treated as
// zero when deciding degenerate R² cases.
const nearZero = 1e-10

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(math.Max(0, mse)), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination, clamped to [-1, 1].
// When both residual and total sums of squares vanish the score is 1.0
// (a perfect fit of a constant target); when only the total vanishes it
// is 0.0.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		res := yTrueVal - yPred.AtVec(i)
		tot := yTrueVal - yMean
		ssRes += res * res
		ssTot += tot * tot
	}

	if math.Abs(ssTot) < nearZero {
		if math.Abs(ssRes) < nearZero {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return errors.ClipValue(1-ssRes/ssTot, -1.0, 1.0), nil
}

// MAPE computes the mean absolute percentage error. Near-zero targets
// have their denominator floored at 1e-10 rather than being skipped.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAPE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAPE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		denom := yTrue.AtVec(i)
		if math.Abs(denom) < nearZero {
			denom = nearZero
		}
		sum += math.Abs((yTrue.AtVec(i) - yPred.AtVec(i)) / denom)
	}
	return sum / float64(n) * 100, nil
}

// RegressionReport bundles the regression metrics for one prediction set.
type RegressionReport struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2_score"`
	MAPE float64 `json:"mape"`
}

// Regression computes all regression metrics at once.
func Regression(yTrue, yPred *mat.VecDense) (RegressionReport, error) {
	var report RegressionReport
	var err error

	if report.MSE, err = MSE(yTrue, yPred); err != nil {
		return report, err
	}
	report.RMSE = math.Sqrt(math.Max(0, report.MSE))
	if report.MAE, err = MAE(yTrue, yPred); err != nil {
		return report, err
	}
	if report.R2, err = R2Score(yTrue, yPred); err != nil {
		return report, err
	}
	if report.MAPE, err = MAPE(yTrue, yPred); err != nil {
		return report, err
	}
	return report, nil
}
