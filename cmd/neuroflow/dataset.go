package main

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// dataset is a numeric CSV loaded into matrix form. When a header row
// is present its names are kept for target-column lookup.
type dataset struct {
	header []string
	rows   [][]float64
}

// loadCSV reads a CSV file of numbers. A first row that fails numeric
// parsing is treated as a header.
func loadCSV(path string) (*dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading dataset %s", path)
	}
	if len(records) == 0 {
		return nil, errors.NewModelError("loadCSV", path, errors.ErrEmptyData)
	}

	ds := &dataset{}
	start := 0
	if _, err := strconv.ParseFloat(records[0][0], 64); err != nil {
		ds.header = records[0]
		start = 1
	}

	for i := start; i < len(records); i++ {
		row := make([]float64, len(records[i]))
		for j, cell := range records[i] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Newf("neuroflow: non-numeric value %q at row %d, column %d", cell, i+1, j+1)
			}
			row[j] = v
		}
		ds.rows = append(ds.rows, row)
	}
	if len(ds.rows) == 0 {
		return nil, errors.NewModelError("loadCSV", path, errors.ErrEmptyData)
	}
	return ds, nil
}

// targetIndex resolves a target column by name or returns the last
// column when name is empty.
func (ds *dataset) targetIndex(name string) (int, error) {
	if name == "" {
		return len(ds.rows[0]) - 1, nil
	}
	for i, h := range ds.header {
		if h == name {
			return i, nil
		}
	}
	return 0, errors.NewValueError("dataset", "unknown target column: "+name)
}

// split separates the target column from the features.
func (ds *dataset) split(target int) (*mat.Dense, *mat.VecDense, error) {
	nCols := len(ds.rows[0])
	if target < 0 || target >= nCols {
		return nil, nil, errors.NewValueError("dataset", "target column out of range")
	}
	if nCols < 2 {
		return nil, nil, errors.NewValueError("dataset", "need at least one feature column besides the target")
	}

	n := len(ds.rows)
	X := mat.NewDense(n, nCols-1, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range ds.rows {
		k := 0
		for j, v := range row {
			if j == target {
				y.SetVec(i, v)
				continue
			}
			X.Set(i, k, v)
			k++
		}
	}
	return X, y, nil
}

// features returns every column as a feature matrix.
func (ds *dataset) features() *mat.Dense {
	n := len(ds.rows)
	c := len(ds.rows[0])
	X := mat.NewDense(n, c, nil)
	for i, row := range ds.rows {
		X.SetRow(i, row)
	}
	return X
}
