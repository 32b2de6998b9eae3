package inference

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached memoizes the labels of a Classifier by message text. Repeated
// messages in a batch are classified once. Errors are never cached.
//
// The wrapped classifier must be deterministic for the lifetime of the
// cache; wrap a single fitted model and drop the cache when it is refit.
type Cached struct {
	classifier Classifier
	labels     *lru.Cache[string, string]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps c with an LRU cache holding up to size labels.
func NewCached(c Classifier, size int) (*Cached, error) {
	labels, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("inference: cache size %d: %w", size, err)
	}
	return &Cached{classifier: c, labels: labels}, nil
}

// Inference implements Classifier.
func (c *Cached) Inference(message string) (string, error) {
	if label, ok := c.labels.Get(message); ok {
		c.hits.Add(1)
		return label, nil
	}
	c.misses.Add(1)

	label, err := c.classifier.Inference(message)
	if err != nil {
		return "", err
	}
	c.labels.Add(message, label)
	return label, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
