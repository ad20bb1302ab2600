package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// maxPolynomialDegree bounds the expansion so a misconfigured request
// cannot blow up the feature count combinatorially.
const maxPolynomialDegree = 5

// PolynomialRegression expands features into polynomial space and fits
// an internal LinearRegression on the result.
type PolynomialRegression struct {
	model.BaseEstimator

	degree          int
	includeBias     bool
	interactionOnly bool

	inner        *LinearRegression
	featureNames []string
	nFeaturesIn  int
}

// PolyOption configures a PolynomialRegression.
type PolyOption func(*PolynomialRegression)

// WithPolyIncludeBias controls the leading bias column of the expansion.
func WithPolyIncludeBias(include bool) PolyOption {
	return func(pr *PolynomialRegression) { pr.includeBias = include }
}

// WithPolyInteractionOnly drops pure-power terms from the expansion.
func WithPolyInteractionOnly(only bool) PolyOption {
	return func(pr *PolynomialRegression) { pr.interactionOnly = only }
}

// WithPolyLinearOptions forwards options to the internal LinearRegression.
func WithPolyLinearOptions(opts ...Option) PolyOption {
	return func(pr *PolynomialRegression) { pr.inner = NewLinearRegression(opts...) }
}

// NewPolynomialRegression creates a PolynomialRegression of the given
// degree (1 to 5).
func NewPolynomialRegression(degree int, opts ...PolyOption) *PolynomialRegression {
	pr := &PolynomialRegression{
		degree:      degree,
		includeBias: true,
		inner:       NewLinearRegression(),
	}
	for _, opt := range opts {
		opt(pr)
	}
	return pr
}

// Fit expands X and delegates to the internal LinearRegression.
func (pr *PolynomialRegression) Fit(X, y mat.Matrix) error {
	if pr.degree < 1 || pr.degree > maxPolynomialDegree {
		return errors.NewValidationError("degree", "must be between 1 and 5", pr.degree)
	}

	_, c := X.Dims()
	pr.nFeaturesIn = c

	poly := preprocessing.PolynomialFeatures{
		Degree:          pr.degree,
		IncludeBias:     pr.includeBias,
		InteractionOnly: pr.interactionOnly,
	}
	expanded, names, err := poly.Transform(X)
	if err != nil {
		return err
	}
	pr.featureNames = names

	if err := pr.inner.Fit(expanded, y); err != nil {
		return err
	}
	pr.SetFitted()
	return nil
}

// Predict expands X with the training-time configuration and predicts
// through the internal model.
func (pr *PolynomialRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !pr.IsFitted() {
		return nil, errors.NewNotFittedError("PolynomialRegression", "Predict")
	}

	_, c := X.Dims()
	if c != pr.nFeaturesIn {
		return nil, errors.NewDimensionError("PolynomialRegression.Predict", pr.nFeaturesIn, c, 1)
	}

	poly := preprocessing.PolynomialFeatures{
		Degree:          pr.degree,
		IncludeBias:     pr.includeBias,
		InteractionOnly: pr.interactionOnly,
	}
	expanded, _, err := poly.Transform(X)
	if err != nil {
		return nil, err
	}
	return pr.inner.Predict(expanded)
}

// Coef returns the coefficients over the expanded feature space.
func (pr *PolynomialRegression) Coef() []float64 {
	if !pr.IsFitted() {
		return nil
	}
	return pr.inner.Coef()
}

// Intercept returns the intercept in original target units.
func (pr *PolynomialRegression) Intercept() float64 {
	if !pr.IsFitted() {
		return 0
	}
	return pr.inner.Intercept()
}

// FeatureNames returns the names of the expanded features, aligned with
// Coef.
func (pr *PolynomialRegression) FeatureNames() []string {
	return pr.featureNames
}
