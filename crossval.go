// Package depclass evaluates binary text classifiers by stratified k-fold
// cross-validation. A feature matrix (one row per post) and its aligned label
// vector are partitioned into label-stratified folds; a classifier is trained
// on each fold's training rows and scored on the held-out rows, and the
// per-fold metrics are aggregated into a single evaluation.
//
// The package is matrix-agnostic: anything satisfying gonum's mat.Matrix
// works, and sparse matrices that can iterate row non-zeros are exploited
// during training.
package depclass

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Settings controls a cross-validated evaluation. The zero value evaluates
// an L1-penalized, class-balanced logistic regression over 10 folds with
// binary-averaged precision/recall/F-score.
type Settings struct {
	// Folds is the number of stratified folds. If 0, defaults to 10.
	Folds int
	// Average is the precision/recall/F-score reduction mode. If empty,
	// defaults to AverageBinary.
	Average Average
	// Fitter trains the per-fold classifier. If nil, a zero-value Logistic
	// is used.
	Fitter Fitter
	// Rand drives the fold assignment. If nil the shared global source is
	// used and repeated runs will not reproduce the same folds.
	Rand *rand.Rand
	// Progress, if non-nil, is called before each fold is trained with the
	// 1-based fold number and the fold count.
	Progress func(fold, total int)
}

// Evaluation holds per-fold metrics of one cross-validated run. Accuracy and
// ROC-AUC are additionally averaged across folds; precision, recall and
// F-score are kept as per-fold sequences for the caller to summarize.
type Evaluation struct {
	Accuracy  []float64
	ROCAUC    []float64
	Precision []float64
	Recall    []float64
	FScore    []float64
	Support   []int

	MeanAccuracy float64
	MeanROCAUC   float64
}

// CrossValidate partitions the rows of x into stratified folds, trains a
// classifier per fold and scores it on the held-out rows. Infeasible
// stratification is reported before any training is attempted; a training
// failure on any fold aborts the whole evaluation.
func CrossValidate(x mat.Matrix, labels []int, s *Settings) (*Evaluation, error) {
	if s == nil {
		s = &Settings{}
	}
	rows, _ := x.Dims()
	if rows != len(labels) {
		return nil, fmt.Errorf("depclass: %d matrix rows but %d labels", rows, len(labels))
	}
	nFolds := s.Folds
	if nFolds == 0 {
		nFolds = 10
	}
	avg := s.Average
	if avg == "" {
		avg = AverageBinary
	}
	fitter := s.Fitter
	if fitter == nil {
		fitter = &Logistic{}
	}

	folds, err := StratifiedKFold(labels, nFolds, s.Rand)
	if err != nil {
		return nil, err
	}

	ev := &Evaluation{
		Accuracy:  make([]float64, 0, nFolds),
		ROCAUC:    make([]float64, 0, nFolds),
		Precision: make([]float64, 0, nFolds),
		Recall:    make([]float64, 0, nFolds),
		FScore:    make([]float64, 0, nFolds),
		Support:   make([]int, 0, nFolds),
	}
	for i, fold := range folds {
		if s.Progress != nil {
			s.Progress(i+1, nFolds)
		}
		pred, err := fitter.Fit(x, labels, fold.Train)
		if err != nil {
			return nil, fmt.Errorf("depclass: fitting fold %d/%d: %w", i+1, nFolds, err)
		}

		probs := pred.Prob(x, fold.Test)
		predicted := PredictLabels(probs)
		truth := make([]int, len(fold.Test))
		for j, idx := range fold.Test {
			truth[j] = labels[idx]
		}

		precision, recall, fscore, support, err := PrecisionRecallF(truth, predicted, avg)
		if err != nil {
			return nil, err
		}
		ev.Accuracy = append(ev.Accuracy, Accuracy(truth, predicted))
		ev.ROCAUC = append(ev.ROCAUC, ROCAUC(truth, probs))
		ev.Precision = append(ev.Precision, precision)
		ev.Recall = append(ev.Recall, recall)
		ev.FScore = append(ev.FScore, fscore)
		ev.Support = append(ev.Support, support)
	}

	ev.MeanAccuracy = stat.Mean(ev.Accuracy, nil)
	ev.MeanROCAUC = stat.Mean(ev.ROCAUC, nil)
	return ev, nil
}
