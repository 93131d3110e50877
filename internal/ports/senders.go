package ports

import (
	"context"

	"github.com/bft-labs/graphitepush/internal/domain"
)

// BatchSender transmits one batch to the metrics relay.
// It returns the number of bytes written on success.
type BatchSender interface {
	Send(ctx context.Context, batch domain.Batch) (int, error)
}

// EventSender posts a single event.
type EventSender interface {
	Send(ctx context.Context, event domain.Event) error
}
