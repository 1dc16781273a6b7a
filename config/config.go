// Package config holds the immutable run configuration of the evaluation
// pipeline. Every tunable of the experiment is a named field with a default
// mirroring the original study setup; values can come from an env file, the
// process environment, or flags layered on top by the caller.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config bundles all pipeline tunables. It is treated as immutable once
// handed to the pipeline.
type Config struct {
	// DepDir and NonDepDir are the two class directories; DepDir holds the
	// positive-signal (depression) posts.
	DepDir    string
	NonDepDir string

	// Analyzer is the tokenization granularity, "word" or "char".
	Analyzer string
	// NGramMax is the largest n-gram order; features cover 1..NGramMax.
	NGramMax int
	// Penalty is the logistic regression regularization, "l1" or "l2".
	Penalty string
	// Folds is the stratified cross-validation fold count.
	Folds int
	// Average is the precision/recall/F-score mode, "binary" or "macro".
	Average string

	// Seed makes the shuffle and fold assignment reproducible when non-zero.
	// Zero keeps the production behavior of fresh randomness per run.
	Seed int64
	// Parallel runs the count and TF-IDF evaluations concurrently.
	Parallel bool
}

// Default returns the configuration of the reference experiment: word
// unigrams through trigrams, L1 penalty, 10 folds, binary averaging.
func Default() Config {
	return Config{
		DepDir:    "./mixed_depression",
		NonDepDir: "./mixed_non_depression",
		Analyzer:  "word",
		NGramMax:  3,
		Penalty:   "l1",
		Folds:     10,
		Average:   "binary",
	}
}

// Load builds a Config from Default overlaid with the environment. If
// envFile names an existing dotenv file it is loaded first; a missing file is
// not an error so the pipeline can run on the bare environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: loading %s: %w", envFile, err)
			}
		}
	}

	cfg := Default()
	cfg.DepDir = getEnv("DEPCLASS_DEP_DIR", cfg.DepDir)
	cfg.NonDepDir = getEnv("DEPCLASS_NON_DEP_DIR", cfg.NonDepDir)
	cfg.Analyzer = getEnv("DEPCLASS_ANALYZER", cfg.Analyzer)
	cfg.NGramMax = getEnvAsInt("DEPCLASS_NGRAM_MAX", cfg.NGramMax)
	cfg.Penalty = getEnv("DEPCLASS_PENALTY", cfg.Penalty)
	cfg.Folds = getEnvAsInt("DEPCLASS_FOLDS", cfg.Folds)
	cfg.Average = getEnv("DEPCLASS_AVERAGE", cfg.Average)
	cfg.Seed = getEnvAsInt64("DEPCLASS_SEED", cfg.Seed)
	cfg.Parallel = getEnvAsBool("DEPCLASS_PARALLEL", cfg.Parallel)
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run.
func (c Config) Validate() error {
	if c.DepDir == "" {
		return fmt.Errorf("config: depression directory not set")
	}
	if c.NonDepDir == "" {
		return fmt.Errorf("config: non-depression directory not set")
	}
	switch c.Analyzer {
	case "word", "char":
	default:
		return fmt.Errorf("config: analyzer %q, want word or char", c.Analyzer)
	}
	if c.NGramMax < 1 {
		return fmt.Errorf("config: n-gram max %d, want at least 1", c.NGramMax)
	}
	switch c.Penalty {
	case "l1", "l2":
	default:
		return fmt.Errorf("config: penalty %q, want l1 or l2", c.Penalty)
	}
	if c.Folds < 2 {
		return fmt.Errorf("config: fold count %d, want at least 2", c.Folds)
	}
	switch c.Average {
	case "binary", "macro":
	default:
		return fmt.Errorf("config: averaging mode %q, want binary or macro", c.Average)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
