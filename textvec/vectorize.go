package textvec

import (
	"errors"
	"math"
	"sort"

	"github.com/james-bowman/sparse"
)

// ErrEmptyVocabulary is returned when no feature occurs in any input text.
var ErrEmptyVocabulary = errors.New("textvec: empty vocabulary")

// Vocabulary maps discovered n-gram features to column indices of a feature
// matrix. Columns are assigned in lexicographic feature order so that a
// vocabulary is fully determined by its corpus and tokenizer configuration.
type Vocabulary struct {
	index map[string]int
	terms []string
}

// Len returns the number of features, the column count of derived matrices.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Index returns the column of a feature and whether it is present.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the feature at column i.
func (v *Vocabulary) Term(i int) string { return v.terms[i] }

// fitVocabulary discovers the vocabulary and per-document feature counts of
// the corpus in a single tokenization pass. docs[i] maps column index to the
// occurrence count of that feature in text i.
func fitVocabulary(cfg Config, texts []string) (*Vocabulary, []map[int]int, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	raw := make([]map[string]int, len(texts))
	seen := map[string]struct{}{}
	for i, text := range texts {
		counts := map[string]int{}
		for _, feat := range cfg.Features(text) {
			counts[feat]++
			seen[feat] = struct{}{}
		}
		raw[i] = counts
	}
	if len(seen) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	docs := make([]map[int]int, len(texts))
	for i, counts := range raw {
		doc := make(map[int]int, len(counts))
		for term, n := range counts {
			doc[index[term]] = n
		}
		docs[i] = doc
	}
	return &Vocabulary{index: index, terms: terms}, docs, nil
}

// CountVectorizer builds a matrix of raw n-gram occurrence counts, one row
// per text and one column per vocabulary feature.
type CountVectorizer struct {
	Config Config

	// Vocab is the vocabulary discovered by the last FitTransform call.
	Vocab *Vocabulary
}

// NewCountVectorizer returns a count vectorizer with the given tokenization
// configuration.
func NewCountVectorizer(cfg Config) *CountVectorizer {
	return &CountVectorizer{Config: cfg}
}

// FitTransform discovers the vocabulary over all texts and returns the count
// matrix. The vocabulary is fit over the entire corpus at once.
func (cv *CountVectorizer) FitTransform(texts []string) (*sparse.CSR, error) {
	vocab, docs, err := fitVocabulary(cv.Config, texts)
	if err != nil {
		return nil, err
	}
	cv.Vocab = vocab

	dok := sparse.NewDOK(len(texts), vocab.Len())
	for i, doc := range docs {
		for j, n := range doc {
			dok.Set(i, j, float64(n))
		}
	}
	return dok.ToCSR(), nil
}

// TfidfVectorizer builds a matrix of TF-IDF weighted n-gram scores with
// smoothed document frequencies and L2-normalized rows:
//
//	idf(t) = ln((1 + nDocs) / (1 + df(t))) + 1
//
// The smoothing acts as if one extra document contained every feature once,
// so no feature gets a zero weight.
type TfidfVectorizer struct {
	Config Config

	// Vocab is the vocabulary discovered by the last FitTransform call.
	Vocab *Vocabulary
}

// NewTfidfVectorizer returns a TF-IDF vectorizer with the given tokenization
// configuration.
func NewTfidfVectorizer(cfg Config) *TfidfVectorizer {
	return &TfidfVectorizer{Config: cfg}
}

// FitTransform discovers the vocabulary over all texts and returns the TF-IDF
// matrix. A vocabulary fit with the same Config over the same texts yields a
// matrix of the same shape as the count matrix.
func (tv *TfidfVectorizer) FitTransform(texts []string) (*sparse.CSR, error) {
	vocab, docs, err := fitVocabulary(tv.Config, texts)
	if err != nil {
		return nil, err
	}
	tv.Vocab = vocab

	df := make([]int, vocab.Len())
	for _, doc := range docs {
		for j := range doc {
			df[j]++
		}
	}
	n := float64(len(texts))
	idf := make([]float64, vocab.Len())
	for j, d := range df {
		idf[j] = math.Log((1+n)/(1+float64(d))) + 1
	}

	dok := sparse.NewDOK(len(texts), vocab.Len())
	for i, doc := range docs {
		var norm float64
		for j, tf := range doc {
			w := float64(tf) * idf[j]
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for j, tf := range doc {
			dok.Set(i, j, float64(tf)*idf[j]/norm)
		}
	}
	return dok.ToCSR(), nil
}
