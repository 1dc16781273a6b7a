// Package textvec converts raw post texts into sparse numeric feature
// matrices using word or character n-gram features, either as raw occurrence
// counts or as TF-IDF weighted scores.
package textvec

import (
	"fmt"
	"regexp"
	"strings"
)

// Analyzer selects the tokenization granularity.
type Analyzer string

const (
	// Word extracts lowercased alphanumeric tokens of at least two
	// characters and forms n-grams of consecutive tokens joined by a
	// single space.
	Word Analyzer = "word"
	// Char extracts character n-grams from space-padded words, so n-grams
	// never straddle a word boundary.
	Char Analyzer = "char"
)

// Config is the tokenization configuration shared by both vectorization
// strategies run against a corpus. Matrices built from the same Config have
// identical shape.
type Config struct {
	Analyzer Analyzer
	NGramMin int // smallest n-gram order, inclusive
	NGramMax int // largest n-gram order, inclusive
}

// DefaultConfig returns word unigrams through trigrams.
func DefaultConfig() Config {
	return Config{Analyzer: Word, NGramMin: 1, NGramMax: 3}
}

func (c Config) validate() error {
	switch c.Analyzer {
	case Word, Char:
	default:
		return fmt.Errorf("textvec: unknown analyzer %q", c.Analyzer)
	}
	if c.NGramMin < 1 || c.NGramMax < c.NGramMin {
		return fmt.Errorf("textvec: bad n-gram range [%d, %d]", c.NGramMin, c.NGramMax)
	}
	return nil
}

// wordPattern matches tokens of two or more letters, digits or underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Features extracts the n-gram features of text under the configuration.
// Feature order follows text order; repeated features appear repeatedly.
func (c Config) Features(text string) []string {
	text = strings.ToLower(text)
	switch c.Analyzer {
	case Char:
		return c.charFeatures(text)
	default:
		return c.wordFeatures(text)
	}
}

func (c Config) wordFeatures(text string) []string {
	tokens := wordPattern.FindAllString(text, -1)
	if len(tokens) == 0 {
		return nil
	}
	var feats []string
	for n := c.NGramMin; n <= c.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			feats = append(feats, strings.Join(tokens[i:i+n], " "))
		}
	}
	return feats
}

// charFeatures generates character n-grams per whitespace-separated word,
// with each word padded by one space on either side. A word shorter than the
// n-gram order contributes its whole padded form once.
func (c Config) charFeatures(text string) []string {
	var feats []string
	for _, word := range strings.Fields(text) {
		padded := " " + word + " "
		runes := []rune(padded)
		for n := c.NGramMin; n <= c.NGramMax; n++ {
			if len(runes) < n {
				feats = append(feats, padded)
				continue
			}
			for i := 0; i+n <= len(runes); i++ {
				feats = append(feats, string(runes[i:i+n]))
			}
		}
	}
	return feats
}
