package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	bayes "github.com/jamesainslie/go-bayes"
	"github.com/jamesainslie/go-bayes/internal/bench"
	"github.com/jamesainslie/go-bayes/internal/config"
)

// Set through -ldflags by the build target.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	corpusPath := flag.String("corpus", "", "Tab-separated training corpus (label<TAB>text)")
	alpha := flag.Float64("alpha", 1, "Laplace smoothing constant")
	positive := flag.String("positive", "spam", "Label treated as spam")
	mode := flag.String("mode", "classify", "Mode: classify or scores")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("nb-cli %s (%s, %s)\n", version, commit, date)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.Corpus = config.CorpusConfig{TSV: *corpusPath}
		case "alpha":
			cfg.Model.Alpha = *alpha
		case "positive":
			cfg.Model.PositiveLabel = *positive
		}
	})

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: nb-cli [-corpus CORPUS] [OPTIONS] TEXT")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration:\n%v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.LogLevel() // checked by Validate
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	corpus, err := bench.LoadConfigured(cfg.Corpus, cfg.Model.PositiveLabel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading corpus: %v\n", err)
		os.Exit(1)
	}
	ds, err := corpus.Dataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting corpus: %v\n", err)
		os.Exit(1)
	}

	model := bayes.New(
		bayes.WithAlpha(cfg.Model.Alpha),
		bayes.WithPositiveLabel(cfg.Model.PositiveLabel),
		bayes.WithLogger(logger),
	)
	if err := model.Fit(ds.All(), ds.Labels()); err != nil {
		fmt.Fprintf(os.Stderr, "Error training model: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "classify":
		label, confidence, err := model.Classify(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Text: %q\n", text)
		fmt.Printf("Label: %s\n", label)
		fmt.Printf("Confidence: %.4f\n", confidence)

	case "scores":
		spam, ham, err := model.Scores(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		spamLabel, hamLabel, _ := model.Labels()
		fmt.Printf("Text: %q\n", text)
		fmt.Printf("log P(%s|text) + c: %.4f\n", spamLabel, spam)
		fmt.Printf("log P(%s|text) + c: %.4f\n", hamLabel, ham)

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}
