package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// ConfusionMatrix is the binary tp/tn/fp/fn breakdown. It is only
// populated when the observed label set is a subset of {0, 1}.
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
}

// ClassificationReport holds accuracy plus macro-averaged one-vs-rest
// precision, recall and F1 over all observed classes.
type ClassificationReport struct {
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1_score"`
	Confusion ConfusionMatrix `json:"confusion_matrix"`
}

// Accuracy computes the fraction of exactly matching labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// Classification computes accuracy and macro-averaged precision, recall
// and F1. Per-class counts are one-vs-rest; the averages are unweighted.
// Undefined per-class ratios (no predicted or no actual positives)
// contribute 0.
func Classification(yTrue, yPred *mat.VecDense) (ClassificationReport, error) {
	var report ClassificationReport

	n := yTrue.Len()
	if n == 0 {
		return report, errors.NewValueError("Classification", "empty vector")
	}
	if yPred.Len() != n {
		return report, errors.NewDimensionError("Classification", n, yPred.Len(), 0)
	}

	classSet := make(map[float64]bool)
	correct := 0
	for i := 0; i < n; i++ {
		classSet[yTrue.AtVec(i)] = true
		classSet[yPred.AtVec(i)] = true
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	report.Accuracy = float64(correct) / float64(n)

	classes := make([]float64, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Float64s(classes)

	isBinary := len(classes) <= 2
	for _, c := range classes {
		if c != 0 && c != 1 {
			isBinary = false
		}
	}

	var precisionSum, recallSum float64
	for _, class := range classes {
		var tp, fp, fn, tn int
		for i := 0; i < n; i++ {
			trueIs := yTrue.AtVec(i) == class
			predIs := yPred.AtVec(i) == class
			switch {
			case trueIs && predIs:
				tp++
			case !trueIs && predIs:
				fp++
			case trueIs && !predIs:
				fn++
			default:
				tn++
			}
		}

		if tp+fp > 0 {
			precisionSum += float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recallSum += float64(tp) / float64(tp+fn)
		}

		if isBinary && class == 1 {
			report.Confusion = ConfusionMatrix{
				TruePositives:  tp,
				TrueNegatives:  tn,
				FalsePositives: fp,
				FalseNegatives: fn,
			}
		}
	}

	nClasses := float64(len(classes))
	report.Precision = precisionSum / nClasses
	report.Recall = recallSum / nClasses
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}

	return report, nil
}
