package depclass

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/PranavEranki/IdentifyingDepression-Data/config"
	"github.com/PranavEranki/IdentifyingDepression-Data/corpus"
	"github.com/PranavEranki/IdentifyingDepression-Data/textvec"
)

// Pipeline wires the corpus loader, the two vectorization strategies and the
// cross-validated evaluator into one batch run that prints a human-readable
// report and exits.
type Pipeline struct {
	cfg config.Config
	log *slog.Logger
}

// NewPipeline builds a pipeline for the given configuration. A nil logger
// falls back to slog.Default.
func NewPipeline(cfg config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: logger}
}

// previewTexts is how many raw post texts the report shows.
const previewTexts = 2

// previewMetrics is how many per-fold precision/recall/F-score values the
// report shows.
const previewMetrics = 10

// Run executes the full evaluation: load and shuffle the corpus, vectorize
// it with both strategies, cross-validate a logistic regression against each
// matrix and write the report to w. Any failure aborts the run; no partial
// results are kept.
func (p *Pipeline) Run(ctx context.Context, w io.Writer) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	runID := uuid.NewString()
	log := p.log.With("run_id", runID)
	log.Info("starting evaluation run",
		"dep_dir", p.cfg.DepDir,
		"non_dep_dir", p.cfg.NonDepDir,
		"analyzer", p.cfg.Analyzer,
		"ngram_max", p.cfg.NGramMax,
		"penalty", p.cfg.Penalty,
		"folds", p.cfg.Folds,
		"seeded", p.cfg.Seed != 0,
	)

	fmt.Fprintf(w, "\nProcessing data\n")
	ds, err := corpus.Load(p.cfg.DepDir, p.cfg.NonDepDir, p.rng(0))
	if err != nil {
		return err
	}
	dep, nonDep := ds.Counts()
	fmt.Fprintf(w, "number of depression files: %d\n", dep)
	fmt.Fprintf(w, "number of non-depression files: %d\n", nonDep)
	fmt.Fprintf(w, "number of texts in data: %d\n", ds.Len())
	fmt.Fprintf(w, "targets for the first %d files: %v\n", min(10, ds.Len()), ds.Labels[:min(10, ds.Len())])
	for i := 0; i < min(previewTexts, ds.Len()); i++ {
		fmt.Fprintf(w, "file %d: %s\n", i+1, truncate(ds.Records[i].Text, 120))
	}

	// Surface infeasible stratification before any vectorization or
	// training work.
	if smaller := min(dep, nonDep); smaller < p.cfg.Folds {
		return fmt.Errorf("depclass: smaller class has %d file(s), cannot stratify into %d folds", smaller, p.cfg.Folds)
	}

	tokCfg := textvec.Config{
		Analyzer: textvec.Analyzer(p.cfg.Analyzer),
		NGramMin: 1,
		NGramMax: p.cfg.NGramMax,
	}
	texts := ds.Texts()

	fmt.Fprintf(w, "\ncreating data vectors\n")
	counts, err := textvec.NewCountVectorizer(tokCfg).FitTransform(texts)
	if err != nil {
		return err
	}
	r, c := counts.Dims()
	fmt.Fprintf(w, "Count vectors shape: %d x %d\n", r, c)

	tfidf, err := textvec.NewTfidfVectorizer(tokCfg).FitTransform(texts)
	if err != nil {
		return err
	}
	r, c = tfidf.Dims()
	fmt.Fprintf(w, "Tf-idf vectors shape: %d x %d\n", r, c)

	runs := []struct {
		name   string
		matrix mat.Matrix
		seed   int64
		ev     *Evaluation
	}{
		{name: "count vectors", matrix: counts, seed: 1},
		{name: "tf-idf vectors", matrix: tfidf, seed: 2},
	}

	if p.cfg.Parallel {
		// The two strategy runs share nothing, so they can proceed on
		// independent goroutines. Progress goes to the log rather than
		// the report to keep the report deterministic.
		g, ctx := errgroup.WithContext(ctx)
		for i := range runs {
			g.Go(func() error {
				var err error
				runs[i].ev, err = p.evaluate(ctx, runs[i].matrix, ds.Labels, runs[i].seed, func(fold, total int) {
					log.Info("training fold", "strategy", runs[i].name, "fold", fold, "total", total)
				})
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i := range runs {
			if err := ctx.Err(); err != nil {
				return err
			}
			fmt.Fprintf(w, "\n%s:\n", runs[i].name)
			runs[i].ev, err = p.evaluate(ctx, runs[i].matrix, ds.Labels, runs[i].seed, func(fold, total int) {
				fmt.Fprintf(w, "Training on fold %d/%d...\n", fold, total)
			})
			if err != nil {
				return err
			}
		}
	}

	for _, run := range runs {
		writeReport(w, run.name, run.ev)
	}
	log.Info("evaluation run complete",
		"count_mean_accuracy", runs[0].ev.MeanAccuracy,
		"count_mean_roc_auc", runs[0].ev.MeanROCAUC,
		"tfidf_mean_accuracy", runs[1].ev.MeanAccuracy,
		"tfidf_mean_roc_auc", runs[1].ev.MeanROCAUC,
	)
	return nil
}

// evaluate cross-validates one feature matrix. Each strategy gets its own
// independently derived fold randomness.
func (p *Pipeline) evaluate(ctx context.Context, x mat.Matrix, labels []int, seedOffset int64, progress func(fold, total int)) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return CrossValidate(x, labels, &Settings{
		Folds:   p.cfg.Folds,
		Average: Average(p.cfg.Average),
		Fitter: &Logistic{
			Penalty: Penalty(p.cfg.Penalty),
		},
		Rand:     p.rng(seedOffset),
		Progress: progress,
	})
}

// rng derives a rand source from the configured seed, or returns nil for the
// global source when the run is unseeded.
func (p *Pipeline) rng(offset int64) *rand.Rand {
	if p.cfg.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(p.cfg.Seed + offset))
}

// writeReport prints the aggregated metrics of one strategy.
func writeReport(w io.Writer, name string, ev *Evaluation) {
	fmt.Fprintf(w, "\n%s results:\n", name)
	fmt.Fprintf(w, "cross validation: %.4f\n", ev.MeanAccuracy)
	fmt.Fprintf(w, "roc: %.4f\n", ev.MeanROCAUC)
	n := min(previewMetrics, len(ev.Precision))
	fmt.Fprintf(w, "precision for the first %d: %s\n", n, formatFloats(ev.Precision[:n]))
	fmt.Fprintf(w, "recall for the first %d: %s\n", n, formatFloats(ev.Recall[:n]))
	fmt.Fprintf(w, "f-score for the first %d: %s\n", n, formatFloats(ev.FScore[:n]))
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
