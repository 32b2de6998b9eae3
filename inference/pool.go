// Package inference runs a fitted classifier over batches of messages.
package inference

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Classifier labels a single message. Implementations must be safe for
// concurrent use.
type Classifier interface {
	Inference(message string) (string, error)
}

// Pool classifies messages with a bounded number of goroutines.
type Pool struct {
	classifier Classifier
	size       int
}

// NewPool creates a pool running at most size inferences at once.
func NewPool(c Classifier, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	return &Pool{
		classifier: c,
		size:       size,
	}
}

// ClassifyAll labels every message. Results keep the order of messages.
// The first inference error or a context cancellation stops the batch.
func (p *Pool) ClassifyAll(ctx context.Context, messages []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels := make([]string, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i, msg := range messages {
		g.Go(func() error {
			// Check context before each inference
			if err := gctx.Err(); err != nil {
				return err
			}

			label, err := p.classifier.Inference(msg)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			labels[i] = label
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}

// Size returns the maximum number of concurrent inferences.
func (p *Pool) Size() int {
	return p.size
}
