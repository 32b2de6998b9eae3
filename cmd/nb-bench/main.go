package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	bayes "github.com/jamesainslie/go-bayes"
	"github.com/jamesainslie/go-bayes/dataset"
	"github.com/jamesainslie/go-bayes/internal/bench"
	"github.com/jamesainslie/go-bayes/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		corpusPath = flag.String("corpus", "", "Tab-separated corpus file (label<TAB>text)")
		spamPath   = flag.String("spam", "", "File with one spam message per line")
		hamPath    = flag.String("ham", "", "File with one ham message per line")
		alpha      = flag.Float64("alpha", 1, "Laplace smoothing constant")
		positive   = flag.String("positive", "spam", "Label treated as spam")
		valFrac    = flag.Float64("val", 0.1, "Validation fraction")
		testFrac   = flag.Float64("test", 0.1, "Test fraction")
		seed       = flag.Int64("seed", 0, "Shuffle seed (random when unset)")
		workers    = flag.Int("workers", 4, "Concurrent inferences during evaluation")
		logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
		sweep      = flag.Bool("sweep", false, "Run alpha sweep on the validation split")
		sweepMin   = flag.Float64("sweep-min", 0.1, "Sweep minimum alpha")
		sweepMax   = flag.Float64("sweep-max", 2.0, "Sweep maximum alpha (exclusive)")
		sweepStep  = flag.Float64("sweep-step", 0.1, "Sweep step size")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.Corpus = config.CorpusConfig{TSV: *corpusPath}
		case "spam":
			cfg.Corpus.TSV = ""
			cfg.Corpus.Spam = *spamPath
		case "ham":
			cfg.Corpus.TSV = ""
			cfg.Corpus.Ham = *hamPath
		case "alpha":
			cfg.Model.Alpha = *alpha
		case "positive":
			cfg.Model.PositiveLabel = *positive
		case "val":
			cfg.Split.Validation = *valFrac
		case "test":
			cfg.Split.Test = *testFrac
		case "seed":
			cfg.Split.Seed = seed
		case "workers":
			cfg.Model.Workers = *workers
		case "log-level":
			cfg.Log.Level = *logLevel
		case "sweep-min":
			cfg.Sweep.Min = *sweepMin
		case "sweep-max":
			cfg.Sweep.Max = *sweepMax
		case "sweep-step":
			cfg.Sweep.Step = *sweepStep
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration:\n%v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	level, _ := cfg.LogLevel() // checked by Validate
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Load corpus
	corpus, err := bench.LoadConfigured(cfg.Corpus, cfg.Model.PositiveLabel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}

	ds, err := corpus.Dataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error ingesting corpus: %v\n", err)
		os.Exit(1)
	}

	var splitOpts []dataset.SplitOption
	if cfg.Split.Seed != nil {
		splitOpts = append(splitOpts, dataset.WithSeed(*cfg.Split.Seed))
	}
	if err := ds.Split(cfg.Split.Validation, cfg.Split.Test, splitOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "error splitting corpus: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d messages, labels %q\n", ds.Len(), ds.Labels().Labels())
	fmt.Printf("Split (seed %d): train %d, validation %d, test %d\n\n",
		ds.Seed(), ds.Train().Len(), ds.Validation().Len(), ds.Test().Len())

	ctx := context.Background()
	opts := []bayes.Option{
		bayes.WithPositiveLabel(cfg.Model.PositiveLabel),
		bayes.WithPoolSize(cfg.Model.Workers),
		bayes.WithLogger(logger),
	}

	if *sweep {
		runSweep(ctx, ds, cfg, opts)
	} else {
		runSingle(ctx, ds, cfg, opts)
	}
}

func runSingle(ctx context.Context, ds *dataset.Dataset, cfg config.Config, opts []bayes.Option) {
	model := bayes.New(append(opts, bayes.WithAlpha(cfg.Model.Alpha))...)
	if err := model.Fit(ds.Train(), ds.Labels()); err != nil {
		fmt.Fprintf(os.Stderr, "error fitting model: %v\n", err)
		os.Exit(1)
	}

	trainAcc, err := model.Evaluate(ds.Train())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating train split: %v\n", err)
		os.Exit(1)
	}

	report, err := bench.EvaluateDataset(ctx, model, ds, cfg.Model.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Alpha: %g  Vocabulary: %d\n", cfg.Model.Alpha, model.Vocabulary())
	fmt.Printf("Train accuracy: %.4f\n", trainAcc)
	printMetrics("Validation", report.Validation)
	printMetrics("Test", report.Test)
	if report.Test.Total() > 0 {
		fmt.Printf("Majority baseline (test): %.4f\n", report.Baseline)
	}
}

func runSweep(ctx context.Context, ds *dataset.Dataset, cfg config.Config, opts []bayes.Option) {
	if ds.Validation().Len() == 0 {
		fmt.Fprintln(os.Stderr, "error: sweep needs a non-empty validation split")
		os.Exit(1)
	}

	alphas := bench.SweepAlphas(cfg.Sweep.Min, cfg.Sweep.Max, cfg.Sweep.Step)

	fmt.Println("Alpha Sweep Results (validation split)")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Alpha", "Acc", "Prec", "Rec", "F1")

	results, err := bench.Sweep(ctx, ds, alphas, cfg.Model.Workers, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by alpha for readability
	for _, a := range alphas {
		for _, r := range results {
			if r.Alpha == a {
				fmt.Printf("%-8.3f %-8.4f %-8.4f %-8.4f %-8.4f\n",
					r.Alpha, r.Metrics.Accuracy, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Accuracy: %.4f)\n", best.Alpha, best.Metrics.Accuracy)
	}
}

func printMetrics(name string, m bench.Metrics) {
	if m.Total() == 0 {
		fmt.Printf("%s: empty split\n", name)
		return
	}
	fmt.Printf("%s accuracy: %.4f  Precision: %.4f  Recall: %.4f  F1: %.4f\n",
		name, m.Accuracy, m.Precision, m.Recall, m.F1)
	fmt.Printf("(TP: %d, FP: %d, FN: %d, TN: %d)\n",
		m.TruePositives, m.FalsePositives, m.FalseNegatives, m.TrueNegatives)
}
