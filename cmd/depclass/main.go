// Command depclass runs the depression-signal classifier evaluation: it
// loads the two labeled post directories, vectorizes the corpus as n-gram
// counts and as TF-IDF scores, cross-validates a logistic regression against
// each matrix and prints the aggregated metrics.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	depclass "github.com/PranavEranki/IdentifyingDepression-Data"
	"github.com/PranavEranki/IdentifyingDepression-Data/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cmd := &cli.Command{
		Name:  "depclass",
		Usage: "evaluate a depression-signal text classifier over a labeled corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to an env file with DEPCLASS_* settings",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "dep-dir",
				Usage: "directory of depression-labeled posts",
			},
			&cli.StringFlag{
				Name:  "non-dep-dir",
				Usage: "directory of non-depression posts",
			},
			&cli.StringFlag{
				Name:  "analyzer",
				Usage: "tokenization granularity (word/char)",
			},
			&cli.IntFlag{
				Name:  "ngram-max",
				Usage: "largest n-gram order",
			},
			&cli.StringFlag{
				Name:  "penalty",
				Usage: "logistic regression penalty (l1/l2)",
			},
			&cli.IntFlag{
				Name:  "folds",
				Usage: "stratified cross-validation fold count",
			},
			&cli.StringFlag{
				Name:  "average",
				Usage: "precision/recall/f-score averaging mode (binary/macro)",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed for reproducible runs (0 = unseeded)",
			},
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "evaluate the count and tf-idf matrices concurrently",
			},
		},
		Action: run,
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}

	// Flags override whatever the environment provided.
	if cmd.IsSet("dep-dir") {
		cfg.DepDir = cmd.String("dep-dir")
	}
	if cmd.IsSet("non-dep-dir") {
		cfg.NonDepDir = cmd.String("non-dep-dir")
	}
	if cmd.IsSet("analyzer") {
		cfg.Analyzer = cmd.String("analyzer")
	}
	if cmd.IsSet("ngram-max") {
		cfg.NGramMax = cmd.Int("ngram-max")
	}
	if cmd.IsSet("penalty") {
		cfg.Penalty = cmd.String("penalty")
	}
	if cmd.IsSet("folds") {
		cfg.Folds = cmd.Int("folds")
	}
	if cmd.IsSet("average") {
		cfg.Average = cmd.String("average")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("parallel") {
		cfg.Parallel = cmd.Bool("parallel")
	}

	return depclass.NewPipeline(cfg, slog.Default()).Run(ctx, os.Stdout)
}
