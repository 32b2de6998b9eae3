package bayes

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/jamesainslie/go-bayes/dataset"
	"github.com/jamesainslie/go-bayes/inference"
	"github.com/jamesainslie/go-bayes/tokenizer"
)

// Model is a binary multinomial Naive Bayes classifier over bag-of-words
// features. It starts untrained; Fit moves it to the fitted state.
//
// After Fit returns, Inference, Evaluate and the other read methods are
// safe for concurrent use. Concurrent Fit calls on one Model are serialized.
type Model struct {
	alpha    float64
	positive string
	poolSize int
	logger   *slog.Logger

	fitMu sync.Mutex
	state atomic.Pointer[state]
}

// classTable holds the word frequencies of one class.
type classTable struct {
	docs   int
	tokens int
	words  map[string]int
}

// state is everything Fit learns. It is never mutated once published.
type state struct {
	labels   dataset.LabelCode
	spamName string
	hamName  string

	alpha      float64
	vocabulary int

	spam, ham           classTable
	priorSpam, priorHam float64

	// alpha * vocabulary + tokens per class, the smoothed denominators
	spamDenom, hamDenom float64
}

// New creates an untrained Model.
func New(opts ...Option) *Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Model{
		alpha:    cfg.alpha,
		positive: cfg.positive,
		poolSize: cfg.poolSize,
		logger:   cfg.logger,
	}
}

// Fit learns class priors and per-class word frequencies from train.
// labels must contain exactly two labels, one of which is the positive
// label configured with WithPositiveLabel.
//
// Fit either completes and replaces the model state, or returns an error
// wrapping ErrInvalidInput and leaves the model as it was.
func (m *Model) Fit(train dataset.Split, labels dataset.LabelCode) error {
	m.fitMu.Lock()
	defer m.fitMu.Unlock()

	st, err := m.build(train, labels)
	if err != nil {
		m.logger.Warn("fit rejected", "error", err)
		return err
	}

	m.state.Store(st)

	m.logger.Debug("model fitted",
		"documents", train.Len(),
		"spam_documents", st.spam.docs,
		"ham_documents", st.ham.docs,
		"vocabulary", st.vocabulary,
		"alpha", st.alpha,
	)
	return nil
}

// build computes a complete state without touching the model.
func (m *Model) build(train dataset.Split, labels dataset.LabelCode) (*state, error) {
	if labels.Len() != 2 {
		return nil, fmt.Errorf("%w: need exactly two labels, got %d", ErrInvalidInput, labels.Len())
	}

	spamCode, ok := labels.Code(m.positive)
	if !ok {
		return nil, fmt.Errorf("%w: positive label %q not in %q", ErrInvalidInput, m.positive, labels.Labels())
	}
	hamCode := 1 - spamCode
	hamName, _ := labels.Label(hamCode)

	if train.Len() == 0 {
		return nil, fmt.Errorf("%w: empty training split", ErrInvalidInput)
	}
	if len(train.Codes) != len(train.Texts) {
		return nil, fmt.Errorf("%w: %d texts but %d label codes", ErrInvalidInput, len(train.Texts), len(train.Codes))
	}

	st := &state{
		labels:   labels,
		spamName: m.positive,
		hamName:  hamName,
		alpha:    m.alpha,
		spam:     classTable{words: make(map[string]int)},
		ham:      classTable{words: make(map[string]int)},
	}

	for i, text := range train.Texts {
		var table *classTable
		switch train.Codes[i] {
		case spamCode:
			table = &st.spam
		case hamCode:
			table = &st.ham
		default:
			return nil, fmt.Errorf("%w: example %d has unknown label code %d", ErrInvalidInput, i, train.Codes[i])
		}

		table.docs++
		// Tokenize again even though dataset texts are normalized, so that
		// training and inference share one code path.
		for _, word := range tokenizer.Tokenize(text) {
			table.words[word]++
			table.tokens++
		}
	}

	if st.spam.docs == 0 || st.ham.docs == 0 {
		return nil, fmt.Errorf("%w: training split needs both classes (%s: %d, %s: %d)",
			ErrInvalidInput, st.spamName, st.spam.docs, st.hamName, st.ham.docs)
	}

	total := float64(train.Len())
	st.priorSpam = math.Log(float64(st.spam.docs) / total)
	st.priorHam = math.Log(float64(st.ham.docs) / total)

	st.vocabulary = len(st.spam.words)
	for word := range st.ham.words {
		if _, seen := st.spam.words[word]; !seen {
			st.vocabulary++
		}
	}

	smoothing := st.alpha * float64(st.vocabulary)
	st.spamDenom = float64(st.spam.tokens) + smoothing
	st.hamDenom = float64(st.ham.tokens) + smoothing

	return st, nil
}

// Inference returns the predicted label for message. The spam label wins
// only with a strictly greater score; ties resolve to the ham label.
func (m *Model) Inference(message string) (string, error) {
	st, err := m.fitted()
	if err != nil {
		return "", err
	}
	return st.predict(message), nil
}

// Scores returns the log scores (log prior plus summed log likelihoods)
// of message for the spam and ham classes.
func (m *Model) Scores(message string) (spam, ham float64, err error) {
	st, err := m.fitted()
	if err != nil {
		return 0, 0, err
	}
	spam, ham = st.scores(tokenizer.Tokenize(message))
	return spam, ham, nil
}

// Classify returns the predicted label and its posterior probability,
// obtained by normalizing the two class scores.
func (m *Model) Classify(message string) (label string, confidence float64, err error) {
	st, err := m.fitted()
	if err != nil {
		return "", 0, err
	}

	spam, ham := st.scores(tokenizer.Tokenize(message))
	pSpam := sigmoid(spam - ham)

	if spam > ham {
		return st.spamName, pSpam, nil
	}
	return st.hamName, 1 - pSpam, nil
}

// Probability returns the smoothed P(word|label). word is matched as a
// token, so pass it in normalized form.
func (m *Model) Probability(word, label string) (float64, error) {
	st, err := m.fitted()
	if err != nil {
		return 0, err
	}

	switch label {
	case st.spamName:
		return math.Exp(st.logLikelihood(&st.spam, st.spamDenom, word)), nil
	case st.hamName:
		return math.Exp(st.logLikelihood(&st.ham, st.hamDenom, word)), nil
	default:
		return 0, fmt.Errorf("%w: unknown label %q", ErrInvalidInput, label)
	}
}

// Evaluate returns the fraction of examples in split whose predicted
// label matches the true label.
func (m *Model) Evaluate(split dataset.Split) (float64, error) {
	st, err := m.fitted()
	if err != nil {
		return 0, err
	}

	truth, err := st.decode(split)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i, text := range split.Texts {
		if st.predict(text) == truth[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(truth)), nil
}

// EvaluateContext is Evaluate with inferences spread over a pool of
// goroutines (see WithPoolSize). It stops early when ctx is done.
func (m *Model) EvaluateContext(ctx context.Context, split dataset.Split) (float64, error) {
	st, err := m.fitted()
	if err != nil {
		return 0, err
	}

	truth, err := st.decode(split)
	if err != nil {
		return 0, err
	}

	predicted, err := inference.NewPool(st, m.poolSize).ClassifyAll(ctx, split.Texts)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := range predicted {
		if predicted[i] == truth[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(truth)), nil
}

// Fitted reports whether Fit has completed successfully.
func (m *Model) Fitted() bool {
	return m.state.Load() != nil
}

// Vocabulary returns the number of distinct training words, or 0 before Fit.
func (m *Model) Vocabulary() int {
	if st := m.state.Load(); st != nil {
		return st.vocabulary
	}
	return 0
}

// Labels returns the spam and ham label names learned by Fit.
func (m *Model) Labels() (spam, ham string, err error) {
	st, err := m.fitted()
	if err != nil {
		return "", "", err
	}
	return st.spamName, st.hamName, nil
}

func (m *Model) fitted() (*state, error) {
	st := m.state.Load()
	if st == nil {
		return nil, ErrModelNotFitted
	}
	return st, nil
}

// Inference implements inference.Classifier over a fixed state, so a batch
// never mixes two fits.
func (st *state) Inference(message string) (string, error) {
	return st.predict(message), nil
}

func (st *state) predict(message string) string {
	spam, ham := st.scores(tokenizer.Tokenize(message))
	if spam > ham {
		return st.spamName
	}
	return st.hamName
}

func (st *state) scores(tokens []string) (spam, ham float64) {
	spam, ham = st.priorSpam, st.priorHam
	for _, word := range tokens {
		spam += st.logLikelihood(&st.spam, st.spamDenom, word)
		ham += st.logLikelihood(&st.ham, st.hamDenom, word)
	}
	return spam, ham
}

// logLikelihood is log((count + alpha) / (tokens + alpha*vocabulary)).
// Words missing from the table count as zero and still get alpha.
func (st *state) logLikelihood(table *classTable, denom float64, word string) float64 {
	return math.Log((float64(table.words[word]) + st.alpha) / denom)
}

// decode maps the label codes of split to label names.
func (st *state) decode(split dataset.Split) ([]string, error) {
	if split.Len() == 0 {
		return nil, ErrEmptySplit
	}
	if len(split.Codes) != len(split.Texts) {
		return nil, fmt.Errorf("%w: %d texts but %d label codes", ErrInvalidInput, len(split.Texts), len(split.Codes))
	}

	truth := make([]string, len(split.Codes))
	for i, code := range split.Codes {
		label, ok := st.labels.Label(code)
		if !ok {
			return nil, fmt.Errorf("%w: example %d has unknown label code %d", ErrInvalidInput, i, code)
		}
		truth[i] = label
	}
	return truth, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
