package depclass

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingleClass is returned by Logistic.Fit when the training subset
// contains samples of only one class, which leaves nothing to discriminate.
var ErrSingleClass = errors.New("depclass: training subset contains a single class")

// Penalty selects the regularization applied to the logistic regression
// coefficients.
type Penalty string

const (
	// L1 penalizes the absolute value of the coefficients, driving many of
	// them to exactly zero. Applied through a soft-threshold step after
	// each gradient update.
	L1 Penalty = "l1"
	// L2 penalizes the squared coefficients, shrinking them smoothly.
	L2 Penalty = "l2"
)

// ClassWeight selects how training samples are weighted per class.
type ClassWeight int

const (
	// BalancedWeights weights each sample by n / (2 * nClass) so both
	// classes contribute equally to the loss regardless of imbalance.
	BalancedWeights ClassWeight = iota
	// UniformWeights gives every sample weight 1.
	UniformWeights
)

// Logistic fits a binary logistic regression classifier by deterministic
// full-batch gradient descent over the weighted mean log-loss. The zero value
// uses the L1 penalty, balanced class weights and sane optimizer defaults.
type Logistic struct {
	Penalty     Penalty     // empty means L1
	Lambda      float64     // regularization strength; 0 means 1e-4
	ClassWeight ClassWeight // defaults to BalancedWeights

	LearnRate float64 // step size; 0 means 0.5
	MaxIter   int     // maximum epochs; 0 means 300
	Tol       float64 // stop when the largest coefficient step is below; 0 means 1e-6
}

// Fit trains on the rows of x listed in inds. Labels must be 0 or 1; label 1
// is the positive class. Both classes must be present in the training subset.
func (l *Logistic) Fit(x mat.Matrix, labels []int, inds []int) (Predictor, error) {
	if len(inds) == 0 {
		return nil, errors.New("depclass: no training samples")
	}
	penalty := l.Penalty
	if penalty == "" {
		penalty = L1
	}
	if penalty != L1 && penalty != L2 {
		return nil, fmt.Errorf("depclass: unknown penalty %q", penalty)
	}
	lambda := l.Lambda
	if lambda == 0 {
		lambda = 1e-4
	}
	rate := l.LearnRate
	if rate == 0 {
		rate = 0.5
	}
	maxIter := l.MaxIter
	if maxIter == 0 {
		maxIter = 300
	}
	tol := l.Tol
	if tol == 0 {
		tol = 1e-6
	}

	var nPos, nNeg int
	for _, idx := range inds {
		switch labels[idx] {
		case 0:
			nNeg++
		case 1:
			nPos++
		default:
			return nil, fmt.Errorf("depclass: label %d out of range, want 0 or 1", labels[idx])
		}
	}
	if nPos == 0 || nNeg == 0 {
		return nil, ErrSingleClass
	}

	// Per-class sample weights and their total.
	wPos, wNeg := 1.0, 1.0
	if l.ClassWeight == BalancedWeights {
		n := float64(len(inds))
		wPos = n / (2 * float64(nPos))
		wNeg = n / (2 * float64(nNeg))
	}
	totalWeight := wPos*float64(nPos) + wNeg*float64(nNeg)

	_, nFeat := x.Dims()
	w := make([]float64, nFeat)
	grad := make([]float64, nFeat)
	var bias float64

	for iter := 0; iter < maxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias float64
		for _, idx := range inds {
			p := sigmoid(rowDot(x, idx, w) + bias)
			sw := wNeg
			y := 0.0
			if labels[idx] == 1 {
				sw = wPos
				y = 1
			}
			g := sw * (p - y)
			addRowScaled(x, idx, g, grad)
			gradBias += g
		}

		var maxStep float64
		for j := range w {
			step := rate * grad[j] / totalWeight
			next := w[j] - step
			switch penalty {
			case L1:
				next = softThreshold(next, rate*lambda)
			case L2:
				next -= rate * lambda * w[j]
			}
			if d := math.Abs(next - w[j]); d > maxStep {
				maxStep = d
			}
			w[j] = next
		}
		biasStep := rate * gradBias / totalWeight
		bias -= biasStep
		if d := math.Abs(biasStep); d > maxStep {
			maxStep = d
		}

		if maxStep < tol {
			break
		}
	}

	return &logisticPred{w: w, bias: bias}, nil
}

// logisticPred is the trained model: a coefficient per feature plus an
// unregularized intercept.
type logisticPred struct {
	w    []float64
	bias float64
}

// Prob returns the positive-class probability for each requested row.
func (p *logisticPred) Prob(x mat.Matrix, inds []int) []float64 {
	probs := make([]float64, len(inds))
	for i, idx := range inds {
		probs[i] = sigmoid(rowDot(x, idx, p.w) + p.bias)
	}
	return probs
}

// Coeffs returns a copy of the fitted coefficient vector and the intercept.
func (p *logisticPred) Coeffs() ([]float64, float64) {
	w := make([]float64, len(p.w))
	copy(w, p.w)
	return w, p.bias
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// addRowScaled adds s times row i of x into dst, visiting only non-zero
// entries when x supports it.
func addRowScaled(x mat.Matrix, i int, s float64, dst []float64) {
	if r, ok := x.(rowNonZeroDoer); ok {
		r.DoRowNonZero(i, func(_, j int, v float64) {
			dst[j] += s * v
		})
		return
	}
	_, c := x.Dims()
	for j := 0; j < c; j++ {
		dst[j] += s * x.At(i, j)
	}
}

// softThreshold is the proximal operator of the L1 penalty.
func softThreshold(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}
