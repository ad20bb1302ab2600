package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	s := NewStandardScaler()
	scaled, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Each column should have zero mean and unit variance.
	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		sum, sumSq := 0.0, 0.0
		for i := 0; i < r; i++ {
			v := scaled.At(i, j)
			sum += v
			sumSq += v * v
		}
		m := sum / float64(r)
		variance := sumSq/float64(r) - m*m
		if math.Abs(m) > 1e-10 {
			t.Errorf("column %d mean = %v, want 0", j, m)
		}
		if math.Abs(variance-1) > 1e-10 {
			t.Errorf("column %d variance = %v, want 1", j, variance)
		}
	}
}

func TestStandardScalerRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, -2.0,
		0.0, 4.5,
		-3.0, 1.0,
	})

	s := NewStandardScaler()
	scaled, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	restored, err := s.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	if !mat.EqualApprox(X, restored, 1e-10) {
		t.Errorf("round trip changed data:\ngot %v\nwant %v",
			mat.Formatted(restored), mat.Formatted(X))
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	// A zero-variance column must not divide by zero; values map to 0.
	X := mat.NewDense(3, 2, []float64{
		5, 1,
		5, 2,
		5, 3,
	})

	s := NewStandardScaler()
	scaled, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if v := scaled.At(i, 0); v != 0 {
			t.Errorf("constant column row %d = %v, want 0", i, v)
		}
		if math.IsNaN(scaled.At(i, 1)) {
			t.Errorf("second column row %d is NaN", i)
		}
	}
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScaler()

	if _, err := s.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit() should fail")
	}

	if err := s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := s.Transform(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("Transform() with mismatched features should fail")
	}
}

func TestTargetScaler(t *testing.T) {
	y := mat.NewVecDense(4, []float64{10, 20, 30, 40})

	ts := NewTargetScaler()
	scaled, err := ts.FitTransform(y)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	sum := 0.0
	for i := 0; i < scaled.Len(); i++ {
		sum += scaled.AtVec(i)
	}
	if math.Abs(sum) > 1e-10 {
		t.Errorf("scaled target mean = %v, want 0", sum/4)
	}

	for i := 0; i < y.Len(); i++ {
		if got := ts.InverseValue(scaled.AtVec(i)); math.Abs(got-y.AtVec(i)) > 1e-10 {
			t.Errorf("InverseValue(%d) = %v, want %v", i, got, y.AtVec(i))
		}
	}
}

func TestTargetScalerConstant(t *testing.T) {
	y := mat.NewVecDense(3, []float64{7, 7, 7})

	ts := NewTargetScaler()
	scaled, err := ts.FitTransform(y)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < scaled.Len(); i++ {
		if v := scaled.AtVec(i); v != 0 {
			t.Errorf("constant target row %d = %v, want 0", i, v)
		}
	}
}
