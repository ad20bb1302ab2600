package preprocessing

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// AddIntercept prepends a column of ones to X.
func AddIntercept(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			out.Set(i, j+1, X.At(i, j))
		}
	}
	return out
}

// PolynomialFeatures expands a feature matrix with all multiset products
// of the input columns up to Degree. A multiset with a single distinct
// index is a pure-power term; InteractionOnly drops those. The expansion
// is stateless: Transform applies the same enumeration every call.
type PolynomialFeatures struct {
	Degree          int
	IncludeBias     bool
	InteractionOnly bool
}

// Transform returns the expanded matrix together with the generated
// feature names ("1", "x0", "x1^2", "x0*x1", ...).
func (p *PolynomialFeatures) Transform(X mat.Matrix) (*mat.Dense, []string, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, errors.NewModelError("PolynomialFeatures.Transform", "empty data", errors.ErrEmptyData)
	}
	if p.Degree < 1 {
		return nil, nil, errors.NewValidationError("degree", "must be >= 1", p.Degree)
	}

	var cols [][]float64
	var names []string

	if p.IncludeBias {
		ones := make([]float64, r)
		for i := range ones {
			ones[i] = 1.0
		}
		cols = append(cols, ones)
		names = append(names, "1")
	}

	// Degree-1 terms are the raw features.
	for j := 0; j < c; j++ {
		col := make([]float64, r)
		for i := 0; i < r; i++ {
			col[i] = X.At(i, j)
		}
		cols = append(cols, col)
		names = append(names, fmt.Sprintf("x%d", j))
	}

	for d := 2; d <= p.Degree; d++ {
		for _, combo := range combinationsWithReplacement(c, d) {
			isPower := true
			for _, idx := range combo[1:] {
				if idx != combo[0] {
					isPower = false
					break
				}
			}
			if p.InteractionOnly && isPower {
				continue
			}

			col := make([]float64, r)
			for i := range col {
				col[i] = 1.0
			}
			parts := make([]string, 0, len(combo))
			for _, idx := range combo {
				for i := 0; i < r; i++ {
					col[i] *= X.At(i, idx)
				}
				parts = append(parts, fmt.Sprintf("x%d", idx))
			}
			cols = append(cols, col)

			if isPower {
				names = append(names, fmt.Sprintf("x%d^%d", combo[0], d))
			} else {
				names = append(names, strings.Join(parts, "*"))
			}
		}
	}

	out := mat.NewDense(r, len(cols), nil)
	for j, col := range cols {
		for i := 0; i < r; i++ {
			out.Set(i, j, col[i])
		}
	}
	return out, names, nil
}

// combinationsWithReplacement enumerates all non-decreasing index tuples
// of length k over [0, n), in lexicographic order.
func combinationsWithReplacement(n, k int) [][]int {
	var result [][]int
	combo := make([]int, k)

	var recurse func(pos, start int)
	recurse = func(pos, start int) {
		if pos == k {
			c := make([]int, k)
			copy(c, combo)
			result = append(result, c)
			return
		}
		for i := start; i < n; i++ {
			combo[pos] = i
			recurse(pos+1, i)
		}
	}
	recurse(0, 0)
	return result
}
