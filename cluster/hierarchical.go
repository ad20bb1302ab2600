package cluster

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/core/model"
	"github.com/PraneethV-cmd/neuroflow-ide/core/parallel"
	"github.com/PraneethV-cmd/neuroflow-ide/distance"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
	"github.com/PraneethV-cmd/neuroflow-ide/pkg/log"
	"github.com/PraneethV-cmd/neuroflow-ide/preprocessing"
)

// Linkage selects how inter-cluster distance is computed during
// agglomerative merging.
type Linkage int

const (
	// SingleLinkage uses the minimum pairwise point distance.
	SingleLinkage Linkage = iota
	// CompleteLinkage uses the maximum pairwise point distance.
	CompleteLinkage
	// AverageLinkage uses the mean pairwise point distance.
	AverageLinkage
)

// ParseLinkage resolves a linkage name.
func ParseLinkage(name string) (Linkage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single":
		return SingleLinkage, nil
	case "complete":
		return CompleteLinkage, nil
	case "average":
		return AverageLinkage, nil
	default:
		return 0, errors.NewValueError("ParseLinkage", "unknown linkage: "+name)
	}
}

// String returns the linkage name.
func (l Linkage) String() string {
	switch l {
	case SingleLinkage:
		return "single"
	case CompleteLinkage:
		return "complete"
	case AverageLinkage:
		return "average"
	default:
		return "unknown"
	}
}

// MergeRecord describes one agglomerative merge step. ClusterA and
// ClusterB hold the sample indices of the two clusters as they were
// just before the merge, so the dendrogram can be reconstructed
// without replaying the fit.
type MergeRecord struct {
	ClusterA []int   `json:"cluster_a"`
	ClusterB []int   `json:"cluster_b"`
	Distance float64 `json:"distance"`
	Size     int     `json:"size"`
}

// HierarchicalClustering performs bottom-up agglomerative clustering.
// Every point starts in its own cluster; the closest pair under the
// configured linkage is merged until nClusters remain.
type HierarchicalClustering struct {
	model.BaseEstimator

	nClusters  int
	linkage    Linkage
	metric     distance.Metric
	minkowskiP float64

	labels []int
	merges []MergeRecord
}

// HierarchicalOption configures a HierarchicalClustering.
type HierarchicalOption func(*HierarchicalClustering)

// WithLinkage selects the linkage criterion.
func WithLinkage(l Linkage) HierarchicalOption {
	return func(hc *HierarchicalClustering) { hc.linkage = l }
}

// WithHierarchicalMetric selects the point distance metric.
func WithHierarchicalMetric(m distance.Metric) HierarchicalOption {
	return func(hc *HierarchicalClustering) { hc.metric = m }
}

// WithHierarchicalMinkowskiP sets the Minkowski order.
func WithHierarchicalMinkowskiP(p float64) HierarchicalOption {
	return func(hc *HierarchicalClustering) { hc.minkowskiP = p }
}

// NewHierarchicalClustering creates an agglomerative clusterer with
// average linkage and Euclidean point distance.
func NewHierarchicalClustering(nClusters int, opts ...HierarchicalOption) *HierarchicalClustering {
	hc := &HierarchicalClustering{
		nClusters:  nClusters,
		linkage:    AverageLinkage,
		metric:     distance.Euclidean,
		minkowskiP: distance.DefaultMinkowskiP,
	}
	for _, opt := range opts {
		opt(hc)
	}
	return hc
}

// Fit clusters X.
func (hc *HierarchicalClustering) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("HierarchicalClustering.Fit", "empty data", errors.ErrEmptyData)
	}
	if hc.nClusters < 1 || hc.nClusters >= r {
		return errors.NewValidationError("n_clusters", "must satisfy 0 < k < n_samples", hc.nClusters)
	}

	scaler := preprocessing.NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return err
	}

	dist := hc.metric.Func(hc.minkowskiP)

	points := make([][]float64, r)
	for i := 0; i < r; i++ {
		points[i] = mat.Row(nil, i, scaled)
	}

	// Cached pairwise point distances; the linkage criteria re-aggregate
	// these as clusters grow. Rows are filled by chunked workers.
	pairDist := make([][]float64, r)
	for i := range pairDist {
		pairDist[i] = make([]float64, r)
	}
	parallel.ParallelizeWithThreshold(r, 128, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < r; j++ {
				if i != j {
					pairDist[i][j] = dist(points[i], points[j])
				}
			}
		}
	})

	clusters := make([][]int, r)
	for i := range clusters {
		clusters[i] = []int{i}
	}
	hc.merges = nil

	for len(clusters) > hc.nClusters {
		bestA, bestB := 0, 1
		bestDist := math.Inf(1)
		for a := 0; a < len(clusters); a++ {
			for b := a + 1; b < len(clusters); b++ {
				d := hc.clusterDistance(pairDist, clusters[a], clusters[b])
				if d < bestDist {
					bestDist = d
					bestA, bestB = a, b
				}
			}
		}

		membersA := append([]int(nil), clusters[bestA]...)
		membersB := append([]int(nil), clusters[bestB]...)
		merged := append(append([]int(nil), membersA...), membersB...)
		hc.merges = append(hc.merges, MergeRecord{
			ClusterA: membersA,
			ClusterB: membersB,
			Distance: bestDist,
			Size:     len(merged),
		})

		clusters[bestA] = merged
		clusters = append(clusters[:bestB], clusters[bestB+1:]...)
	}

	hc.labels = make([]int, r)
	for k, members := range clusters {
		for _, i := range members {
			hc.labels[i] = k
		}
	}

	hc.SetFitted()

	log.Model("HierarchicalClustering").Debug().
		Int(log.SamplesKey, r).
		Int("n_clusters", hc.nClusters).
		Str("linkage", hc.linkage.String()).
		Int("n_merges", len(hc.merges)).
		Msg("fit complete")
	return nil
}

func (hc *HierarchicalClustering) clusterDistance(pairDist [][]float64, a, b []int) float64 {
	switch hc.linkage {
	case SingleLinkage:
		best := math.Inf(1)
		for _, i := range a {
			for _, j := range b {
				if d := pairDist[i][j]; d < best {
					best = d
				}
			}
		}
		return best
	case CompleteLinkage:
		worst := 0.0
		for _, i := range a {
			for _, j := range b {
				if d := pairDist[i][j]; d > worst {
					worst = d
				}
			}
		}
		return worst
	default:
		sum := 0.0
		for _, i := range a {
			for _, j := range b {
				sum += pairDist[i][j]
			}
		}
		return sum / float64(len(a)*len(b))
	}
}

// Labels returns the training assignments.
func (hc *HierarchicalClustering) Labels() []int {
	return hc.labels
}

// Merges returns the agglomeration log in merge order.
func (hc *HierarchicalClustering) Merges() []MergeRecord {
	return hc.merges
}
