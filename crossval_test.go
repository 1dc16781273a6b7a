package depclass

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// classMatrix builds a deterministic matrix of nNeg+nPos rows where the two
// features carry opposite class signals plus a small index-dependent wiggle.
func classMatrix(nNeg, nPos int) (mat.Matrix, []int) {
	n := nNeg + nPos
	x := mat.NewDense(n, 2, nil)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		wiggle := 0.01 * float64(i%5)
		if i < nNeg {
			x.Set(i, 0, 1+wiggle)
			x.Set(i, 1, wiggle)
		} else {
			labels[i] = 1
			x.Set(i, 0, wiggle)
			x.Set(i, 1, 1+wiggle)
		}
	}
	return x, labels
}

func TestCrossValidateSeparable(t *testing.T) {
	x, labels := classMatrix(20, 20)
	ev, err := CrossValidate(x, labels, &Settings{
		Folds: 10,
		Rand:  rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	assert.Len(t, ev.Accuracy, 10)
	assert.Len(t, ev.ROCAUC, 10)
	assert.Len(t, ev.Precision, 10)
	assert.Len(t, ev.Recall, 10)
	assert.Len(t, ev.FScore, 10)
	assert.Len(t, ev.Support, 10)

	assert.Greater(t, ev.MeanAccuracy, 0.5)
	assert.Greater(t, ev.MeanROCAUC, 0.5)
	for i, support := range ev.Support {
		assert.Equal(t, 2, support, "fold %d holds out 2 positives", i)
	}
}

func TestCrossValidateSeededDeterminism(t *testing.T) {
	x, labels := classMatrix(15, 15)

	run := func() *Evaluation {
		ev, err := CrossValidate(x, labels, &Settings{
			Folds: 5,
			Rand:  rand.New(rand.NewSource(7)),
		})
		require.NoError(t, err)
		return ev
	}
	first, second := run(), run()

	assert.Equal(t, first.Accuracy, second.Accuracy)
	assert.Equal(t, first.ROCAUC, second.ROCAUC)
	assert.Equal(t, first.MeanAccuracy, second.MeanAccuracy)
	assert.Equal(t, first.MeanROCAUC, second.MeanROCAUC)
}

func TestCrossValidateDefaults(t *testing.T) {
	x, labels := classMatrix(20, 20)
	ev, err := CrossValidate(x, labels, nil)
	require.NoError(t, err)
	assert.Len(t, ev.Accuracy, 10) // default fold count
}

func TestCrossValidateProgress(t *testing.T) {
	x, labels := classMatrix(10, 10)
	var calls []int
	_, err := CrossValidate(x, labels, &Settings{
		Folds: 5,
		Rand:  rand.New(rand.NewSource(3)),
		Progress: func(fold, total int) {
			assert.Equal(t, 5, total)
			calls = append(calls, fold)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
}

func TestCrossValidateInfeasibleFolds(t *testing.T) {
	x, labels := classMatrix(10, 3)
	_, err := CrossValidate(x, labels, &Settings{Folds: 5})
	assert.Error(t, err)
}

func TestCrossValidateSingleClass(t *testing.T) {
	x, _ := classMatrix(10, 0)
	labels := make([]int, 10)
	_, err := CrossValidate(x, labels, &Settings{Folds: 2})
	assert.Error(t, err)
}

func TestCrossValidateLengthMismatch(t *testing.T) {
	x, labels := classMatrix(5, 5)
	_, err := CrossValidate(x, labels[:8], &Settings{Folds: 2})
	assert.Error(t, err)
}
