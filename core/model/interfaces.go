package model

import "gonum.org/v1/gonum/mat"

// Fitter is a supervised model that learns from a matrix and a target.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor produces predictions for new rows.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer projects rows into another coordinate space.
type Transformer interface {
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Clusterer learns a partition of its training matrix. Labels are
// integer cluster ids; density-based implementations reserve -1 for
// noise.
type Clusterer interface {
	Fit(X mat.Matrix) error
	Labels() []int
}

// LinearModel exposes fitted linear parameters in original units.
type LinearModel interface {
	Coef() []float64
	Intercept() float64
}
