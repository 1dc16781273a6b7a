package depclass

import (
	"fmt"
	"math/rand"
	"sort"
)

// Fold holds the sample indices used in one round of cross-validation.
// Each index refers to a row of the feature matrix and an entry of the
// label vector passed into CrossValidate.
type Fold struct {
	// Train are the rows used to fit the classifier for this fold.
	Train []int
	// Test are the held-out rows the fitted classifier is scored on.
	Test []int
}

// StratifiedKFold partitions the sample indices into k folds whose class
// proportions approximate those of the full label vector. Within each class
// the indices are randomly permuted and dealt into k contiguous chunks whose
// sizes differ by at most one; fold i's test set is the union of chunk i of
// every class and its training set is everything else.
//
// Infeasible stratification is reported before any training happens: k must
// be at least 2, there must be at least two classes, and no class may have
// fewer than k samples.
//
// If rnd is nil the shared global source is used, so repeated calls will not
// reproduce the same assignment.
func StratifiedKFold(labels []int, k int, rnd *rand.Rand) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("depclass: fold count %d, need at least 2", k)
	}

	byClass := map[int][]int{}
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, fmt.Errorf("depclass: cannot stratify %d class(es), need at least 2", len(byClass))
	}
	// Iterate classes in a fixed order so a seeded rnd gives a reproducible
	// assignment.
	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	for _, class := range classes {
		if n := len(byClass[class]); n < k {
			return nil, fmt.Errorf("depclass: class %d has %d sample(s), cannot stratify into %d folds", class, n, k)
		}
	}

	perm := rand.Perm
	if rnd != nil {
		perm = rnd.Perm
	}

	folds := make([]Fold, k)
	for _, class := range classes {
		inds := byClass[class]
		p := perm(len(inds))

		nPerFold := len(inds) / k
		remainder := len(inds) % k
		idx := 0
		for i := 0; i < k; i++ {
			nTest := nPerFold
			if i < remainder {
				nTest++
			}
			for _, j := range p[idx : idx+nTest] {
				folds[i].Test = append(folds[i].Test, inds[j])
			}
			for _, j := range p[:idx] {
				folds[i].Train = append(folds[i].Train, inds[j])
			}
			for _, j := range p[idx+nTest:] {
				folds[i].Train = append(folds[i].Train, inds[j])
			}
			idx += nTest
		}
		if idx != len(inds) {
			panic("depclass: bad fold logic")
		}
	}
	for i := range folds {
		sort.Ints(folds[i].Train)
		sort.Ints(folds[i].Test)
	}
	return folds, nil
}
