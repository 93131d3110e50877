package batch

import "github.com/bft-labs/graphitepush/internal/domain"

// Batcher accumulates samples until a batch is ready to be sent.
type Batcher interface {
	// Add appends a sample and reports whether the retention threshold
	// has been reached.
	Add(sample domain.Sample) bool

	// Detach moves every buffered sample into a new batch and leaves the
	// buffer empty.
	Detach() domain.Batch

	// Len returns the number of buffered samples.
	Len() int

	// Retention returns the flush threshold.
	Retention() int
}

var _ Batcher = (*Buffer)(nil)
