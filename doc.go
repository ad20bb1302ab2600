// Package neuroflow is a from-scratch statistical learning engine for
// Go backend services: regression, classification, clustering and
// dimensionality reduction built on gonum matrices.
//
// # Quick Start
//
// Fit a line and predict:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/PraneethV-cmd/neuroflow-ide/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewVecDense(4, []float64{5, 7, 9, 11})
//
//	    model := linear.NewLinearRegression()
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := model.Predict(mat.NewDense(1, 1, []float64{5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(pred.At(0, 0)) // ≈ 13
//	}
//
// # Packages
//
//   - distance: pluggable distance metrics (euclidean, manhattan,
//     minkowski, chebyshev, cosine)
//   - preprocessing: standard scaling, train/test splitting, polynomial
//     feature expansion
//   - metrics: regression and classification evaluation
//   - linear: LinearRegression with a solver fallback chain,
//     PolynomialRegression, LogisticRegression
//   - naivebayes: GaussianNB
//   - neighbors: KNNRegressor, KNNClassifier
//   - cluster: KMeans, HierarchicalClustering, DBSCAN
//   - decomposition: PCA, truncated SVD
//   - pkg/errors: structured error types, numerical guards and the
//     process-wide warning handler
//   - pkg/log: zerolog-based structured logging
//   - core/model: shared estimator state and interfaces
//   - core/parallel: chunked workers for batch prediction
//
// Models are safe for concurrent reads after fitting; fitting itself is
// single-writer. Every model standardizes its input internally, so raw
// feature matrices can be passed as-is.
package neuroflow
