package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr bool
	}{
		{
			name:  "all correct",
			yTrue: mat.NewVecDense(4, []float64{0, 1, 1, 0}),
			yPred: mat.NewVecDense(4, []float64{0, 1, 1, 0}),
			want:  1.0,
		},
		{
			name:  "three of four",
			yTrue: mat.NewVecDense(4, []float64{0, 1, 1, 0}),
			yPred: mat.NewVecDense(4, []float64{0, 1, 0, 0}),
			want:  0.75,
		},
		{
			name:  "all wrong",
			yTrue: mat.NewVecDense(2, []float64{0, 1}),
			yPred: mat.NewVecDense(2, []float64{1, 0}),
			want:  0.0,
		},
		{
			name:    "length mismatch",
			yTrue:   mat.NewVecDense(3, []float64{0, 1, 0}),
			yPred:   mat.NewVecDense(2, []float64{0, 1}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassificationBinary(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{1, 1, 1, 0, 0, 0})
	yPred := mat.NewVecDense(6, []float64{1, 1, 0, 0, 0, 1})

	report, err := Classification(yTrue, yPred)
	if err != nil {
		t.Fatalf("Classification() error = %v", err)
	}

	if math.Abs(report.Accuracy-4.0/6.0) > 1e-12 {
		t.Errorf("Accuracy = %v, want %v", report.Accuracy, 4.0/6.0)
	}

	// Confusion is reported for the positive class.
	cm := report.Confusion
	if cm.TruePositives != 2 || cm.TrueNegatives != 2 || cm.FalsePositives != 1 || cm.FalseNegatives != 1 {
		t.Errorf("confusion = %+v, want tp=2 tn=2 fp=1 fn=1", cm)
	}

	// Macro average over classes 0 and 1: both have P = R = 2/3.
	if math.Abs(report.Precision-2.0/3.0) > 1e-12 {
		t.Errorf("Precision = %v, want %v", report.Precision, 2.0/3.0)
	}
	if math.Abs(report.Recall-2.0/3.0) > 1e-12 {
		t.Errorf("Recall = %v, want %v", report.Recall, 2.0/3.0)
	}
	if math.Abs(report.F1-2.0/3.0) > 1e-12 {
		t.Errorf("F1 = %v, want %v", report.F1, 2.0/3.0)
	}
}

func TestClassificationMulticlass(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{0, 0, 1, 1, 2, 2})
	yPred := mat.NewVecDense(6, []float64{0, 0, 1, 1, 2, 2})

	report, err := Classification(yTrue, yPred)
	if err != nil {
		t.Fatalf("Classification() error = %v", err)
	}
	if report.Accuracy != 1.0 || report.Precision != 1.0 || report.Recall != 1.0 || report.F1 != 1.0 {
		t.Errorf("perfect multiclass report = %+v, want all 1.0", report)
	}

	// Multiclass label sets leave the binary confusion matrix empty.
	if report.Confusion != (ConfusionMatrix{}) {
		t.Errorf("confusion = %+v, want zero value for multiclass", report.Confusion)
	}
}

func TestClassificationMissingPredictedClass(t *testing.T) {
	// Class 1 is never predicted: its precision term is undefined and
	// contributes zero instead of NaN.
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	yPred := mat.NewVecDense(4, []float64{0, 0, 0, 0})

	report, err := Classification(yTrue, yPred)
	if err != nil {
		t.Fatalf("Classification() error = %v", err)
	}
	if math.IsNaN(report.Precision) || math.IsNaN(report.Recall) || math.IsNaN(report.F1) {
		t.Errorf("report contains NaN: %+v", report)
	}
	if report.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", report.Accuracy)
	}
}
