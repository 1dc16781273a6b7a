package textvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordFeatures(t *testing.T) {
	for _, test := range []struct {
		name string
		cfg  Config
		text string
		want []string
	}{
		{
			name: "unigrams",
			cfg:  Config{Analyzer: Word, NGramMin: 1, NGramMax: 1},
			text: "I feel so alone",
			want: []string{"feel", "so", "alone"},
		},
		{
			name: "bigrams included",
			cfg:  Config{Analyzer: Word, NGramMin: 1, NGramMax: 2},
			text: "feel so alone",
			want: []string{"feel", "so", "alone", "feel so", "so alone"},
		},
		{
			name: "lowercased and punctuation stripped",
			cfg:  Config{Analyzer: Word, NGramMin: 1, NGramMax: 1},
			text: "Sad, sad... DAYS!",
			want: []string{"sad", "sad", "days"},
		},
		{
			name: "single letter tokens dropped",
			cfg:  Config{Analyzer: Word, NGramMin: 1, NGramMax: 1},
			text: "I a m ok",
			want: []string{"ok"},
		},
		{
			name: "digits kept",
			cfg:  Config{Analyzer: Word, NGramMin: 1, NGramMax: 1},
			text: "slept 12 hours",
			want: []string{"slept", "12", "hours"},
		},
		{
			name: "empty text",
			cfg:  Config{Analyzer: Word, NGramMin: 1, NGramMax: 3},
			text: "",
			want: nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.cfg.Features(test.text))
		})
	}
}

func TestCharFeatures(t *testing.T) {
	cfg := Config{Analyzer: Char, NGramMin: 2, NGramMax: 2}
	got := cfg.Features("ab cd")
	// Each word is padded with spaces before windowing.
	assert.Equal(t, []string{" a", "ab", "b ", " c", "cd", "d "}, got)
}

func TestCharFeaturesShortWord(t *testing.T) {
	cfg := Config{Analyzer: Char, NGramMin: 5, NGramMax: 5}
	got := cfg.Features("ab")
	// " ab " has length 4 < 5, so the padded word stands in whole.
	assert.Equal(t, []string{" ab "}, got)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Analyzer: "sentence", NGramMin: 1, NGramMax: 1}.validate())
	assert.Error(t, Config{Analyzer: Word, NGramMin: 0, NGramMax: 3}.validate())
	assert.Error(t, Config{Analyzer: Word, NGramMin: 2, NGramMax: 1}.validate())
	assert.NoError(t, DefaultConfig().validate())
}
