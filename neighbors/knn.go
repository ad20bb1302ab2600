// Package neighbors implements k-nearest-neighbors regression and
// classification over a shared lazy-learner core.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/core/parallel"
	"github.com/PraneethV-cmd/neuroflow-ide/distance"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// knnBase holds everything the two KNN variants share: the standardized
// training matrix, the aligned targets and the neighbor search. Fit does
// no computation beyond scaling; all work happens at prediction time.
type knnBase struct {
	model.BaseEstimator

	k          int
	metric     distance.Metric
	minkowskiP float64

	xTrain    *mat.Dense // standardized
	yTrain    []float64
	xScaler   *preprocessing.StandardScaler
	nFeatures int
}

func newKNNBase(k int) knnBase {
	return knnBase{
		k:          k,
		metric:     distance.Euclidean,
		minkowskiP: distance.DefaultMinkowskiP,
	}
}

func (b *knnBase) fit(op string, X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}
	if b.k < 1 {
		return errors.NewValidationError("k", "must be >= 1", b.k)
	}
	// The caller is expected to cap k; defend anyway.
	if b.k > r {
		b.k = r
	}

	b.nFeatures = c
	b.xScaler = preprocessing.NewStandardScaler()
	scaled, err := b.xScaler.FitTransform(X)
	if err != nil {
		return err
	}
	b.xTrain = scaled

	b.yTrain = make([]float64, r)
	for i := 0; i < r; i++ {
		b.yTrain[i] = y.At(i, 0)
	}

	b.SetFitted()
	return nil
}

// neighbors returns the indices of the k nearest training points to the
// query, nearest first. Equal distances keep original index order.
func (b *knnBase) neighbors(query []float64) []int {
	n, _ := b.xTrain.Dims()
	dist := b.metric.Func(b.minkowskiP)

	type candidate struct {
		idx  int
		dist float64
	}
	candidates := make([]candidate, n)
	row := make([]float64, b.nFeatures)
	for i := 0; i < n; i++ {
		mat.Row(row, i, b.xTrain)
		candidates[i] = candidate{idx: i, dist: dist(query, row)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	out := make([]int, b.k)
	for i := 0; i < b.k; i++ {
		out[i] = candidates[i].idx
	}
	return out
}

func (b *knnBase) predict(op string, X mat.Matrix, aggregate func(neighborTargets []float64) float64) (mat.Matrix, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError(op, "Predict")
	}

	r, c := X.Dims()
	if c != b.nFeatures {
		return nil, errors.NewDimensionError(op+".Predict", b.nFeatures, c, 1)
	}

	scaled, err := b.xScaler.Transform(X)
	if err != nil {
		return nil, err
	}

	// Queries are independent; chunked workers write disjoint rows.
	out := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, 64, func(start, end int) {
		query := make([]float64, c)
		targets := make([]float64, b.k)
		for i := start; i < end; i++ {
			mat.Row(query, i, scaled)
			for j, idx := range b.neighbors(query) {
				targets[j] = b.yTrain[idx]
			}
			out.Set(i, 0, aggregate(targets))
		}
	})
	return out, nil
}

// KNNOption configures either KNN variant.
type KNNOption func(*knnBase)

// WithKNNMetric selects the distance metric.
func WithKNNMetric(m distance.Metric) KNNOption {
	return func(b *knnBase) { b.metric = m }
}

// WithKNNMinkowskiP sets the Minkowski order.
func WithKNNMinkowskiP(p float64) KNNOption {
	return func(b *knnBase) { b.minkowskiP = p }
}

// KNNRegressor predicts the mean target of the k nearest neighbors.
type KNNRegressor struct {
	knnBase
}

// NewKNNRegressor creates a KNNRegressor with the given k.
func NewKNNRegressor(k int, opts ...KNNOption) *KNNRegressor {
	reg := &KNNRegressor{knnBase: newKNNBase(k)}
	for _, opt := range opts {
		opt(&reg.knnBase)
	}
	return reg
}

// Fit stores the standardized training data.
func (r *KNNRegressor) Fit(X, y mat.Matrix) error {
	return r.fit("KNNRegressor.Fit", X, y)
}

// Predict returns the mean neighbor target per query row.
func (r *KNNRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	return r.predict("KNNRegressor", X, func(targets []float64) float64 {
		var sum float64
		for _, t := range targets {
			sum += t
		}
		return sum / float64(len(targets))
	})
}

// KNNClassifier predicts the majority label of the k nearest neighbors,
// breaking count ties toward the lowest-valued label.
type KNNClassifier struct {
	knnBase
}

// NewKNNClassifier creates a KNNClassifier with the given k.
func NewKNNClassifier(k int, opts ...KNNOption) *KNNClassifier {
	clf := &KNNClassifier{knnBase: newKNNBase(k)}
	for _, opt := range opts {
		opt(&clf.knnBase)
	}
	return clf
}

// Fit stores the standardized training data.
func (c *KNNClassifier) Fit(X, y mat.Matrix) error {
	return c.fit("KNNClassifier.Fit", X, y)
}

// Predict returns the majority neighbor label per query row.
func (c *KNNClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	return c.predict("KNNClassifier", X, majorityLabel)
}

func majorityLabel(targets []float64) float64 {
	counts := make(map[float64]int)
	for _, t := range targets {
		counts[t]++
	}

	labels := make([]float64, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	best := labels[0]
	bestCount := counts[best]
	for _, label := range labels[1:] {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}
