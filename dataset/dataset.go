// Package dataset holds labeled messages and partitions them into
// train, validation and test splits.
package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/jamesainslie/go-bayes/tokenizer"
)

// Split names.
const (
	TrainSplit      = "train"
	ValidationSplit = "validation"
	TestSplit       = "test"
)

// Example is a raw labeled message as it was ingested.
type Example struct {
	Text  string
	Label string
}

// Split is one partition of a Dataset. Texts are normalized and Codes are
// label codes from the owning Dataset's LabelCode.
type Split struct {
	Name    string
	Indices []int // positions in the owning Dataset
	Texts   []string
	Codes   []int
}

// Len returns the number of examples in the split.
func (s Split) Len() int { return len(s.Texts) }

// Dataset holds ingested examples and the splits produced by Split.
// It is not safe for concurrent mutation; Splits handed out are copies of
// the index slices and may be read freely.
type Dataset struct {
	examples   []Example
	normalized []string
	codes      []int
	labels     LabelCode

	seed       int64
	train      Split
	validation Split
	test       Split
}

// Ingest validates texts and labels, assigns label codes and normalizes
// every text. texts[i] is labeled labels[i].
func Ingest(texts, labels []string) (*Dataset, error) {
	if len(texts) != len(labels) {
		return nil, fmt.Errorf("%w: %d texts but %d labels", ErrInvalidInput, len(texts), len(labels))
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no examples", ErrInvalidInput)
	}

	code := NewLabelCode(labels)

	d := &Dataset{
		examples:   make([]Example, len(texts)),
		normalized: make([]string, len(texts)),
		codes:      make([]int, len(texts)),
		labels:     code,
	}

	for i, text := range texts {
		d.examples[i] = Example{Text: text, Label: labels[i]}
		d.normalized[i] = tokenizer.Normalize(text)
		d.codes[i], _ = code.Code(labels[i]) // every label is in code by construction
	}

	return d, nil
}

// SplitOption configures a call to Split.
type SplitOption func(*splitConfig)

type splitConfig struct {
	seed   int64
	seeded bool
}

// WithSeed makes the permutation deterministic: the same seed, fractions and
// data always produce the same splits.
func WithSeed(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// Split shuffles all example indices and slices them into train,
// validation and test partitions. Validation and test sizes are
// floor(Len()*fraction); train gets the rest.
//
// Fractions must be non-negative and sum to less than one. On error the
// previous splits are kept.
func (d *Dataset) Split(valFraction, testFraction float64, opts ...SplitOption) error {
	// Negated comparisons also reject NaN.
	if !(valFraction >= 0) || !(testFraction >= 0) || !(valFraction+testFraction < 1) {
		return fmt.Errorf("%w: validation %v, test %v", ErrInvalidSplit, valFraction, testFraction)
	}

	var cfg splitConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.seeded {
		cfg.seed = rand.Int64()
	}

	n := len(d.examples)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.seed), uint64(cfg.seed)))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	valSize := int(float64(n) * valFraction)
	testSize := int(float64(n) * testFraction)
	trainSize := n - valSize - testSize

	d.seed = cfg.seed
	d.train = d.subset(TrainSplit, indices[:trainSize])
	d.validation = d.subset(ValidationSplit, indices[trainSize:trainSize+valSize])
	d.test = d.subset(TestSplit, indices[trainSize+valSize:])

	return nil
}

func (d *Dataset) subset(name string, indices []int) Split {
	s := Split{
		Name:    name,
		Indices: make([]int, len(indices)),
		Texts:   make([]string, len(indices)),
		Codes:   make([]int, len(indices)),
	}
	for i, idx := range indices {
		s.Indices[i] = idx
		s.Texts[i] = d.normalized[idx]
		s.Codes[i] = d.codes[idx]
	}
	return s
}

// Len returns the number of ingested examples.
func (d *Dataset) Len() int { return len(d.examples) }

// Labels returns the label code built at ingestion.
func (d *Dataset) Labels() LabelCode { return d.labels }

// Example returns the raw example at position i.
func (d *Dataset) Example(i int) Example { return d.examples[i] }

// Seed returns the seed used by the last successful Split.
func (d *Dataset) Seed() int64 { return d.seed }

// Train returns the training split. It is empty until Split succeeds.
func (d *Dataset) Train() Split { return d.train }

// Validation returns the validation split.
func (d *Dataset) Validation() Split { return d.validation }

// Test returns the test split.
func (d *Dataset) Test() Split { return d.test }

// All returns every example, in ingestion order, as a single split.
func (d *Dataset) All() Split {
	indices := make([]int, len(d.examples))
	for i := range indices {
		indices[i] = i
	}
	return d.subset("all", indices)
}
