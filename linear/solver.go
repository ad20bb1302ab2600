package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// Solver selects the optimization strategy for LinearRegression.
type Solver int

const (
	// SolverAuto picks gradient descent for large or underdetermined
	// problems (nSamples > 1000 or nSamples < nFeatures) and the normal
	// equation otherwise.
	SolverAuto Solver = iota
	// SolverNormal solves the normal equation with an ordered fallback
	// chain for singular systems.
	SolverNormal
	// SolverGradient runs batch gradient descent with gradient clipping,
	// learning-rate decay and best-snapshot patience.
	SolverGradient
	// SolverSVD solves the least-squares problem through a singular
	// value decomposition of the design matrix.
	SolverSVD
)

// ParseSolver resolves a solver name. Unknown names return a ValueError.
func ParseSolver(name string) (Solver, error) {
	switch name {
	case "auto":
		return SolverAuto, nil
	case "normal":
		return SolverNormal, nil
	case "gradient":
		return SolverGradient, nil
	case "svd":
		return SolverSVD, nil
	}
	return SolverAuto, errors.NewValueError("linear.ParseSolver", "unknown solver: "+name)
}

// String returns the external name of the solver.
func (s Solver) String() string {
	switch s {
	case SolverNormal:
		return "normal"
	case SolverGradient:
		return "gradient"
	case SolverSVD:
		return "svd"
	default:
		return "auto"
	}
}

// singularValueFloor is the threshold below which singular values are
// treated as zero when forming pseudo-inverse solutions.
const singularValueFloor = 1e-10

// pseudoInverse computes the Moore-Penrose pseudo-inverse of a via SVD,
// zeroing singular values at or below the floor.
func pseudoInverse(a mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.NewModelError("linear.pseudoInverse", "SVD factorization failed", errors.ErrNotConverged)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	k := len(s)
	sInv := mat.NewDense(k, k, nil)
	for i, sv := range s {
		if sv > singularValueFloor {
			sInv.Set(i, i, 1/sv)
		}
	}

	// pinv(A) = V * S⁺ * Uᵀ
	var tmp, pinv mat.Dense
	tmp.Mul(&v, sInv)
	pinv.Mul(&tmp, u.T())
	return &pinv, nil
}

// solveNormalEquation runs the ordered fallback chain for
// w = (XᵀX)⁻¹ Xᵀ y:
//
//  1. direct inverse of XᵀX
//  2. Moore-Penrose pseudo-inverse of XᵀX
//  3. pseudo-inverse of X applied to y directly
//  4. ridge-regularized inverse with lambda = 1e-6
//
// The first attempt that succeeds wins. Ill-conditioned XᵀX is common
// with correlated or insufficient features, which is why the chain is
// part of the contract rather than incidental error handling.
func solveNormalEquation(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	attempts := []func(*mat.Dense, *mat.VecDense) (*mat.VecDense, error){
		solveDirectInverse,
		solveGramPseudoInverse,
		solveDesignPseudoInverse,
		solveRidge,
	}

	var lastErr error
	for _, attempt := range attempts {
		w, err := attempt(X, y)
		if err == nil {
			return w, nil
		}
		lastErr = err
	}
	return nil, errors.NewModelError("LinearRegression.Fit", "normal equation fallback chain exhausted", lastErr)
}

func solveDirectInverse(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	_, d := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	w := mat.NewVecDense(d, nil)
	w.MulVec(&inv, &xty)
	return w, nil
}

func solveGramPseudoInverse(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	_, d := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	pinv, err := pseudoInverse(&xtx)
	if err != nil {
		return nil, err
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	w := mat.NewVecDense(d, nil)
	w.MulVec(pinv, &xty)
	return w, nil
}

func solveDesignPseudoInverse(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	_, d := X.Dims()

	pinv, err := pseudoInverse(X)
	if err != nil {
		return nil, err
	}

	w := mat.NewVecDense(d, nil)
	w.MulVec(pinv, y)
	return w, nil
}

func solveRidge(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	const ridgeLambda = 1e-6
	_, d := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	for j := 0; j < d; j++ {
		xtx.Set(j, j, xtx.At(j, j)+ridgeLambda)
	}

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, errors.NewModelError("LinearRegression.Fit", "ridge-regularized matrix still singular", errors.ErrSingularMatrix)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	w := mat.NewVecDense(d, nil)
	w.MulVec(&inv, &xty)
	return w, nil
}

// solveSVDLeastSquares solves min ‖Xw−y‖ through a thin SVD of X,
// inverting only singular values above the floor. When the
// factorization itself fails, the design pseudo-inverse is attempted as
// a fallback before giving up.
func solveSVDLeastSquares(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	var svd mat.SVD
	if !svd.Factorize(X, mat.SVDThin) {
		return solveDesignPseudoInverse(X, y)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// w = V * diag(1/s) * Uᵀ * y
	var uty mat.VecDense
	uty.MulVec(u.T(), y)
	for i, sv := range s {
		if sv > singularValueFloor {
			uty.SetVec(i, uty.AtVec(i)/sv)
		} else {
			uty.SetVec(i, 0)
		}
	}

	_, d := X.Dims()
	w := mat.NewVecDense(d, nil)
	w.MulVec(&v, &uty)
	return w, nil
}
