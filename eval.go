package depclass

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Average selects how precision, recall and F-score are reduced over the two
// classes.
type Average string

const (
	// AverageBinary scores only the positive class (label 1).
	AverageBinary Average = "binary"
	// AverageMacro scores each class and returns the unweighted mean.
	AverageMacro Average = "macro"
)

// Accuracy is the fraction of predictions matching the true labels.
func Accuracy(truth, pred []int) float64 {
	if len(truth) != len(pred) {
		panic("depclass: length mismatch")
	}
	var correct int
	for i, label := range truth {
		if pred[i] == label {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}

// ROCAUC is the area under the receiver-operating-characteristic curve of
// positive-class probabilities against true labels, computed by trapezoidal
// integration. The result is NaN when truth holds a single class.
func ROCAUC(truth []int, probs []float64) float64 {
	if len(truth) != len(probs) {
		panic("depclass: length mismatch")
	}
	y := make([]float64, len(probs))
	copy(y, probs)
	classes := make([]bool, len(truth))
	for i, label := range truth {
		classes[i] = label == 1
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// PrecisionRecallF computes precision, recall and the F1 score under the
// given averaging mode. With AverageBinary, support is the number of true
// positive-class samples; with AverageMacro it is the total sample count.
// A score whose denominator is zero is reported as 0.
func PrecisionRecallF(truth, pred []int, avg Average) (precision, recall, fscore float64, support int, err error) {
	if len(truth) != len(pred) {
		panic("depclass: length mismatch")
	}
	switch avg {
	case AverageBinary:
		p, r, f, s := prfForClass(truth, pred, 1)
		return p, r, f, s, nil
	case AverageMacro:
		p0, r0, f0, _ := prfForClass(truth, pred, 0)
		p1, r1, f1, _ := prfForClass(truth, pred, 1)
		return (p0 + p1) / 2, (r0 + r1) / 2, (f0 + f1) / 2, len(truth), nil
	default:
		return 0, 0, 0, 0, fmt.Errorf("depclass: unknown averaging mode %q", avg)
	}
}

// prfForClass scores predictions treating class as the positive label.
func prfForClass(truth, pred []int, class int) (precision, recall, fscore float64, support int) {
	var tp, fp, fn int
	for i, label := range truth {
		switch {
		case pred[i] == class && label == class:
			tp++
		case pred[i] == class && label != class:
			fp++
		case pred[i] != class && label == class:
			fn++
		}
		if label == class {
			support++
		}
	}
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		fscore = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, fscore, support
}
