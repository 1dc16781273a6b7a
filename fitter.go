package depclass

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is a type that can train a binary classifier from the samples
// specified by inds. All of the available data is passed to Fit, but only the
// rows listed in inds may be used for training.
type Fitter interface {
	Fit(x mat.Matrix, labels []int, inds []int) (Predictor, error)
}

// A Predictor scores samples of the matrix it was trained against.
type Predictor interface {
	// Prob returns the predicted positive-class probability for each of the
	// rows of x listed in inds.
	Prob(x mat.Matrix, inds []int) []float64
}

// PredictLabels thresholds positive-class probabilities at 0.5 into hard
// class labels.
func PredictLabels(probs []float64) []int {
	labels := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			labels[i] = 1
		}
	}
	return labels
}

// rowNonZeroDoer is implemented by sparse matrices that can iterate the
// non-zero entries of a single row. sparse.CSR satisfies it.
type rowNonZeroDoer interface {
	DoRowNonZero(i int, fn func(i, j int, v float64))
}

// rowDot computes the dot product of row i of x with w, visiting only the
// non-zero entries when x supports it.
func rowDot(x mat.Matrix, i int, w []float64) float64 {
	var s float64
	if r, ok := x.(rowNonZeroDoer); ok {
		r.DoRowNonZero(i, func(_, j int, v float64) {
			s += v * w[j]
		})
		return s
	}
	_, c := x.Dims()
	for j := 0; j < c; j++ {
		s += x.At(i, j) * w[j]
	}
	return s
}
