package domain

// Batch is an ordered run of samples sent together as one wire message.
// Once detached from a buffer it is never merged back.
type Batch struct {
	Samples []Sample
}

// Size returns the number of samples in the batch.
func (b Batch) Size() int {
	return len(b.Samples)
}

// Empty returns true if the batch has no samples.
func (b Batch) Empty() bool {
	return len(b.Samples) == 0
}
