package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVWithHeader(t *testing.T) {
	path := writeTempCSV(t, "x,y,target\n1,2,3\n4,5,6\n")

	ds, err := loadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "target"}, ds.header)
	require.Len(t, ds.rows, 2)
	assert.Equal(t, []float64{1, 2, 3}, ds.rows[0])
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	path := writeTempCSV(t, "1.5,2.5\n3.5,4.5\n")

	ds, err := loadCSV(path)
	require.NoError(t, err)
	assert.Nil(t, ds.header)
	require.Len(t, ds.rows, 2)
}

func TestLoadCSVNonNumeric(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,oops\n")

	_, err := loadCSV(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestDatasetTargetIndex(t *testing.T) {
	ds := &dataset{
		header: []string{"a", "b", "c"},
		rows:   [][]float64{{1, 2, 3}},
	}

	idx, err := ds.targetIndex("")
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "defaults to last column")

	idx, err = ds.targetIndex("b")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = ds.targetIndex("missing")
	assert.Error(t, err)
}

func TestDatasetSplit(t *testing.T) {
	ds := &dataset{rows: [][]float64{
		{1, 2, 10},
		{3, 4, 20},
	}}

	X, y, err := ds.split(2)
	require.NoError(t, err)

	r, c := X.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 10.0, y.AtVec(0))
	assert.Equal(t, 20.0, y.AtVec(1))
	assert.Equal(t, 1.0, X.At(0, 0))
	assert.Equal(t, 4.0, X.At(1, 1))

	_, _, err = ds.split(5)
	assert.Error(t, err, "target out of range")
}
