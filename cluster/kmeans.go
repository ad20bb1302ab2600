// Package cluster implements the clustering engine: KMeans,
// agglomerative hierarchical clustering and DBSCAN. All three
// standardize their input and support the full distance metric set;
// each instance owns a private random generator where randomness is
// involved, so concurrent fits with equal seeds are deterministic.
package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/distance"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// KMeans partitions standardized points into nClusters groups by
// iterative centroid refinement. Assignment uses the configured metric;
// inertia is always squared Euclidean regardless of the metric.
type KMeans struct {
	model.BaseEstimator

	// Hyperparameters
	nClusters   int
	maxIter     int
	tol         float64
	metric      distance.Metric
	minkowskiP  float64
	randomState int64

	// Fitted parameters
	centroids [][]float64
	labels    []int
	inertia   float64
	nIter     int
	xScaler   *preprocessing.StandardScaler
	nFeatures int
}

// KMeansOption configures a KMeans.
type KMeansOption func(*KMeans)

// WithKMeansMaxIter sets the iteration budget.
func WithKMeansMaxIter(n int) KMeansOption {
	return func(km *KMeans) { km.maxIter = n }
}

// WithKMeansTol sets the centroid-shift convergence tolerance.
func WithKMeansTol(tol float64) KMeansOption {
	return func(km *KMeans) { km.tol = tol }
}

// WithKMeansMetric selects the assignment metric.
func WithKMeansMetric(m distance.Metric) KMeansOption {
	return func(km *KMeans) { km.metric = m }
}

// WithKMeansMinkowskiP sets the Minkowski order.
func WithKMeansMinkowskiP(p float64) KMeansOption {
	return func(km *KMeans) { km.minkowskiP = p }
}

// WithKMeansRandomState seeds centroid initialization.
func WithKMeansRandomState(seed int64) KMeansOption {
	return func(km *KMeans) { km.randomState = seed }
}

// NewKMeans creates a KMeans with max 300 iterations, tolerance 1e-4,
// Euclidean assignment and seed 42.
func NewKMeans(nClusters int, opts ...KMeansOption) *KMeans {
	km := &KMeans{
		nClusters:   nClusters,
		maxIter:     300,
		tol:         1e-4,
		metric:      distance.Euclidean,
		minkowskiP:  distance.DefaultMinkowskiP,
		randomState: 42,
	}
	for _, opt := range opts {
		opt(km)
	}
	return km
}

// Fit clusters X.
func (km *KMeans) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("KMeans.Fit", "empty data", errors.ErrEmptyData)
	}
	if km.nClusters < 1 || km.nClusters >= r {
		return errors.NewValidationError("n_clusters", "must satisfy 0 < k < n_samples", km.nClusters)
	}

	km.nFeatures = c
	km.xScaler = preprocessing.NewStandardScaler()
	scaled, err := km.xScaler.FitTransform(X)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(km.randomState))
	dist := km.metric.Func(km.minkowskiP)

	points := make([][]float64, r)
	for i := 0; i < r; i++ {
		points[i] = mat.Row(nil, i, scaled)
	}

	// Distinct initial centroids drawn uniformly from the data points.
	centroids := make([][]float64, km.nClusters)
	for i, idx := range rng.Perm(r)[:km.nClusters] {
		centroids[i] = append([]float64(nil), points[idx]...)
	}

	labels := make([]int, r)
	for iter := 0; iter < km.maxIter; iter++ {
		km.nIter = iter + 1

		// Assignment step.
		for i, p := range points {
			best := 0
			bestDist := dist(p, centroids[0])
			for k := 1; k < km.nClusters; k++ {
				if d := dist(p, centroids[k]); d < bestDist {
					bestDist = d
					best = k
				}
			}
			labels[i] = best
		}

		// Update step; empty clusters reseed to a fresh random point.
		newCentroids := make([][]float64, km.nClusters)
		for k := 0; k < km.nClusters; k++ {
			sum := make([]float64, c)
			count := 0
			for i, p := range points {
				if labels[i] == k {
					for j := range sum {
						sum[j] += p[j]
					}
					count++
				}
			}
			if count == 0 {
				newCentroids[k] = append([]float64(nil), points[rng.Intn(r)]...)
				continue
			}
			for j := range sum {
				sum[j] /= float64(count)
			}
			newCentroids[k] = sum
		}

		var shift float64
		for k := range centroids {
			for j := range centroids[k] {
				d := centroids[k][j] - newCentroids[k][j]
				shift += d * d
			}
		}
		shift = math.Sqrt(shift)
		centroids = newCentroids

		if shift < km.tol {
			break
		}
	}

	km.centroids = centroids
	km.labels = labels
	km.inertia = 0
	for i, p := range points {
		d := distance.EuclideanDistance(p, centroids[labels[i]])
		km.inertia += d * d
	}

	km.SetFitted()

	log.Model("KMeans").Debug().
		Int(log.SamplesKey, r).
		Int("n_clusters", km.nClusters).
		Int(log.IterationsKey, km.nIter).
		Float64("inertia", km.inertia).
		Msg("fit complete")
	return nil
}

// Predict assigns each row of X to its nearest centroid.
func (km *KMeans) Predict(X mat.Matrix) ([]int, error) {
	if !km.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Predict")
	}

	r, c := X.Dims()
	if c != km.nFeatures {
		return nil, errors.NewDimensionError("KMeans.Predict", km.nFeatures, c, 1)
	}

	scaled, err := km.xScaler.Transform(X)
	if err != nil {
		return nil, err
	}

	dist := km.metric.Func(km.minkowskiP)
	labels := make([]int, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, scaled)
		best := 0
		bestDist := dist(row, km.centroids[0])
		for k := 1; k < km.nClusters; k++ {
			if d := dist(row, km.centroids[k]); d < bestDist {
				bestDist = d
				best = k
			}
		}
		labels[i] = best
	}
	return labels, nil
}

// Labels returns the training assignments.
func (km *KMeans) Labels() []int {
	return km.labels
}

// Centroids returns the fitted centroids in standardized coordinates.
func (km *KMeans) Centroids() [][]float64 {
	return km.centroids
}

// Inertia returns the sum of squared Euclidean distances to assigned
// centroids.
func (km *KMeans) Inertia() float64 {
	return km.inertia
}

// NIter returns the number of refinement iterations performed.
func (km *KMeans) NIter() int {
	return km.nIter
}
