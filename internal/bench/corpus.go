// Package bench provides evaluation utilities for the spam classifier.
package bench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamesainslie/go-bayes/dataset"
	"github.com/jamesainslie/go-bayes/internal/config"
)

// maxLineSize bounds a single corpus line.
const maxLineSize = 1 << 20

// Corpus is a list of raw labeled messages, ready for dataset.Ingest.
type Corpus struct {
	Texts  []string
	Labels []string
}

// Append adds one labeled message.
func (c *Corpus) Append(text, label string) {
	c.Texts = append(c.Texts, text)
	c.Labels = append(c.Labels, label)
}

// Merge appends every message of other.
func (c *Corpus) Merge(other *Corpus) {
	c.Texts = append(c.Texts, other.Texts...)
	c.Labels = append(c.Labels, other.Labels...)
}

// Len returns the number of messages.
func (c *Corpus) Len() int { return len(c.Texts) }

// Dataset ingests the corpus.
func (c *Corpus) Dataset() (*dataset.Dataset, error) {
	return dataset.Ingest(c.Texts, c.Labels)
}

// ParseTSV reads "label<TAB>text" lines, the layout of the SMS Spam
// Collection. Blank lines and lines starting with '#' are skipped.
func ParseTSV(r io.Reader) (*Corpus, error) {
	c := &Corpus{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		label, text, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: missing tab separator", lineNo)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("line %d: empty label", lineNo)
		}

		c.Append(text, label)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}

	return c, nil
}

// LoadTSV loads a tab-separated corpus file.
func LoadTSV(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := ParseTSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// LoadLines loads a file holding one message per line, all with the same
// label. Blank lines are skipped.
func LoadLines(label, path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s messages: %w", label, err)
	}
	defer func() { _ = f.Close() }()

	c := &Corpus{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.Append(line, label)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return c, nil
}

// LoadConfigured loads the corpus described by cfg: the TSV file when set,
// otherwise the spam and ham line files.
func LoadConfigured(cfg config.CorpusConfig, positive string) (*Corpus, error) {
	if cfg.TSV != "" {
		return LoadTSV(cfg.TSV)
	}

	spam, err := LoadLines(positive, cfg.Spam)
	if err != nil {
		return nil, err
	}
	ham, err := LoadLines("ham", cfg.Ham)
	if err != nil {
		return nil, err
	}

	spam.Merge(ham)
	return spam, nil
}
