// Package model provides the shared estimator plumbing: the two-state
// fitted/unfitted tag every model embeds, and the interfaces the
// algorithm packages implement.
package model

// EstimatorState is the lifecycle state of a model.
type EstimatorState int

const (
	// NotFitted means the model carries no trained parameters.
	NotFitted EstimatorState = iota
	// Fitted means trained parameters are present and Predict/Transform
	// are valid.
	Fitted
)

// BaseEstimator is embedded by every model to track its fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
