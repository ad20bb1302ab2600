package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestHierarchicalTwoBlobs(t *testing.T) {
	X := twoBlobs(10, 11)

	for _, linkage := range []Linkage{SingleLinkage, CompleteLinkage, AverageLinkage} {
		hc := NewHierarchicalClustering(2, WithLinkage(linkage))
		require.NoError(t, hc.Fit(X), "linkage %s", linkage)

		labels := hc.Labels()
		require.Len(t, labels, 20)

		first := labels[0]
		for i := 1; i < 10; i++ {
			assert.Equal(t, first, labels[i], "%s: first blob point %d", linkage, i)
		}
		second := labels[10]
		assert.NotEqual(t, first, second, "linkage %s", linkage)
		for i := 11; i < 20; i++ {
			assert.Equal(t, second, labels[i], "%s: second blob point %d", linkage, i)
		}
	}
}

func TestHierarchicalMergeLog(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 0.1, 10, 10.3})

	hc := NewHierarchicalClustering(1)
	require.NoError(t, hc.Fit(X))

	merges := hc.Merges()
	// n points to one cluster takes n-1 merges.
	require.Len(t, merges, 3)

	// Each record keeps the member lists as they stood at merge time,
	// not positions in the shrinking working list: the second merge
	// joins samples {2} and {3} even though both sit at other slots by
	// then.
	assert.Equal(t, []int{0}, merges[0].ClusterA)
	assert.Equal(t, []int{1}, merges[0].ClusterB)
	assert.Equal(t, []int{2}, merges[1].ClusterA)
	assert.Equal(t, []int{3}, merges[1].ClusterB)
	assert.Equal(t, []int{0, 1}, merges[2].ClusterA)
	assert.Equal(t, []int{2, 3}, merges[2].ClusterB)

	// Merge distances grow as closer pairs are consumed first, and the
	// final merge absorbs every point.
	assert.LessOrEqual(t, merges[0].Distance, merges[1].Distance)
	assert.Equal(t, 4, merges[2].Size)
}

func TestParseLinkage(t *testing.T) {
	tests := []struct {
		input   string
		want    Linkage
		wantErr bool
	}{
		{input: "single", want: SingleLinkage},
		{input: "COMPLETE", want: CompleteLinkage},
		{input: " average ", want: AverageLinkage},
		{input: "ward", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLinkage(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestHierarchicalValidation(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})

	for _, k := range []int{0, 3, 4} {
		hc := NewHierarchicalClustering(k)
		assert.Error(t, hc.Fit(X), "k=%d with 3 samples", k)
	}
}
