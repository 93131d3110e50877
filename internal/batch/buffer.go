package batch

import "github.com/bft-labs/graphitepush/internal/domain"

// DefaultRetention is the flush threshold used when none is configured.
const DefaultRetention = 100

// Buffer is an insertion-ordered sample buffer with a count threshold.
// It is not safe for concurrent use.
type Buffer struct {
	samples   []domain.Sample
	retention int
}

// NewBuffer creates a buffer that reports full at retention samples.
// A non-positive retention falls back to DefaultRetention.
func NewBuffer(retention int) *Buffer {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Buffer{
		samples:   make([]domain.Sample, 0, retention),
		retention: retention,
	}
}

// Add appends sample and returns true once the buffer holds retention samples.
func (b *Buffer) Add(sample domain.Sample) bool {
	b.samples = append(b.samples, sample)
	return len(b.samples) >= b.retention
}

// Detach hands the buffered samples to the caller and starts a fresh
// backing array, so the returned batch never aliases later additions.
func (b *Buffer) Detach() domain.Batch {
	out := domain.Batch{Samples: b.samples}
	b.samples = make([]domain.Sample, 0, b.retention)
	return out
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Retention returns the flush threshold.
func (b *Buffer) Retention() int {
	return b.retention
}
