// Package tcp writes framed sample batches to a metrics relay, one
// connection per batch.
package tcp

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/bft-labs/graphitepush/internal/domain"
	"github.com/bft-labs/graphitepush/internal/ports"
	"github.com/bft-labs/graphitepush/internal/wire"
)

// BatchSender implements ports.BatchSender over plain TCP.
type BatchSender struct {
	dialer       ports.Dialer
	addr         string
	writeTimeout time.Duration
}

// NewBatchSender creates a sender for host:port. The dialer carries the
// connect timeout; writeTimeout bounds writing a single packet.
func NewBatchSender(dialer ports.Dialer, host string, port int, writeTimeout time.Duration) *BatchSender {
	return &BatchSender{
		dialer:       dialer,
		addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		writeTimeout: writeTimeout,
	}
}

// Addr returns the relay address.
func (s *BatchSender) Addr() string {
	return s.addr
}

// Send encodes and frames batch, then writes it on a fresh connection.
// An empty batch is still sent.
func (s *BatchSender) Send(ctx context.Context, batch domain.Batch) (int, error) {
	packet, err := wire.EncodeFrame(batch.Samples)
	if err != nil {
		return 0, err
	}

	conn, err := s.dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return 0, errors.Wrapf(err, "connect to %s", s.addr)
	}
	defer conn.Close()

	if s.writeTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return 0, errors.Wrap(err, "set write deadline")
		}
	}

	n, err := conn.Write(packet)
	if err != nil {
		return n, errors.Wrapf(err, "write %d bytes to %s", len(packet), s.addr)
	}

	if err := conn.Close(); err != nil {
		return n, errors.Wrapf(err, "close connection to %s", s.addr)
	}
	return n, nil
}
