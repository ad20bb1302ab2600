package cluster

import (
	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/distance"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// NoiseLabel marks points DBSCAN could not attach to any cluster.
const NoiseLabel = -1

// DBSCAN groups standardized points by density reachability. Points
// with at least minSamples neighbors within eps (themselves included)
// are core points; clusters grow outward from cores, border points
// keep the label of the first cluster that reaches them, and everything
// else is noise.
type DBSCAN struct {
	model.BaseEstimator

	eps        float64
	minSamples int
	metric     distance.Metric
	minkowskiP float64

	labels      []int
	coreIndices []int
	nClusters   int
}

// DBSCANOption configures a DBSCAN.
type DBSCANOption func(*DBSCAN)

// WithDBSCANMetric selects the neighborhood metric.
func WithDBSCANMetric(m distance.Metric) DBSCANOption {
	return func(db *DBSCAN) { db.metric = m }
}

// WithDBSCANMinkowskiP sets the Minkowski order.
func WithDBSCANMinkowskiP(p float64) DBSCANOption {
	return func(db *DBSCAN) { db.minkowskiP = p }
}

// NewDBSCAN creates a DBSCAN with the given neighborhood radius and
// density threshold, using Euclidean distance.
func NewDBSCAN(eps float64, minSamples int, opts ...DBSCANOption) *DBSCAN {
	db := &DBSCAN{
		eps:        eps,
		minSamples: minSamples,
		metric:     distance.Euclidean,
		minkowskiP: distance.DefaultMinkowskiP,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Fit clusters X.
func (db *DBSCAN) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("DBSCAN.Fit", "empty data", errors.ErrEmptyData)
	}
	if db.eps <= 0 {
		return errors.NewValidationError("eps", "must be positive", db.eps)
	}
	if db.minSamples < 1 {
		return errors.NewValidationError("min_samples", "must be at least 1", db.minSamples)
	}

	scaler := preprocessing.NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return err
	}

	dist := db.metric.Func(db.minkowskiP)

	points := make([][]float64, r)
	for i := 0; i < r; i++ {
		points[i] = mat.Row(nil, i, scaled)
	}

	// A point's eps-neighborhood includes the point itself.
	neighborhood := func(i int) []int {
		var nbrs []int
		for j := 0; j < r; j++ {
			if dist(points[i], points[j]) <= db.eps {
				nbrs = append(nbrs, j)
			}
		}
		return nbrs
	}

	labels := make([]int, r)
	for i := range labels {
		labels[i] = NoiseLabel
	}
	visited := make([]bool, r)
	cluster := 0

	for i := 0; i < r; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		nbrs := neighborhood(i)
		if len(nbrs) < db.minSamples {
			continue
		}

		// Expand a new cluster from this core point with a frontier
		// worklist. Border points already claimed by an earlier cluster
		// keep their first label.
		labels[i] = cluster
		frontier := append([]int(nil), nbrs...)
		for len(frontier) > 0 {
			j := frontier[0]
			frontier = frontier[1:]

			if !visited[j] {
				visited[j] = true
				jNbrs := neighborhood(j)
				if len(jNbrs) >= db.minSamples {
					frontier = append(frontier, jNbrs...)
				}
			}
			if labels[j] == NoiseLabel {
				labels[j] = cluster
			}
		}
		cluster++
	}

	db.labels = labels
	db.nClusters = cluster

	db.coreIndices = db.coreIndices[:0]
	for i := 0; i < r; i++ {
		if len(neighborhood(i)) >= db.minSamples {
			db.coreIndices = append(db.coreIndices, i)
		}
	}

	db.SetFitted()

	log.Model("DBSCAN").Debug().
		Int(log.SamplesKey, r).
		Int("n_clusters", db.nClusters).
		Int("n_noise", db.NNoise()).
		Int("n_core", len(db.coreIndices)).
		Msg("fit complete")
	return nil
}

// Labels returns the training assignments; noise points carry
// NoiseLabel.
func (db *DBSCAN) Labels() []int {
	return db.labels
}

// CoreSampleIndices returns the indices of all core points.
func (db *DBSCAN) CoreSampleIndices() []int {
	return db.coreIndices
}

// NClusters returns the number of clusters discovered.
func (db *DBSCAN) NClusters() int {
	return db.nClusters
}

// NNoise returns the number of points labeled as noise.
func (db *DBSCAN) NNoise() int {
	n := 0
	for _, l := range db.labels {
		if l == NoiseLabel {
			n++
		}
	}
	return n
}
