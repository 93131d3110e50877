package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/bft-labs/graphitepush/pkg/log"
)

// MaxLineSize is the longest input line Forward parses. Longer lines are
// skipped.
const MaxLineSize = 1 << 20

// Sink receives samples. *pusher.Pusher satisfies it.
type Sink interface {
	Add(ctx context.Context, timestamp int64, value float64, segments ...string)
	Push(ctx context.Context)
}

// Forward reads r line by line and adds every parsed sample to sink.
// Unparseable and oversized lines are logged and skipped. It returns the
// number of samples added and any read error.
func Forward(ctx context.Context, r io.Reader, parser Parser, sink Sink, logger log.Logger) (int, error) {
	reader := bufio.NewReaderSize(r, MaxLineSize)
	added := 0
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return added, err
		}

		line, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			lineNo++
			logger.Warn("skipping oversized line", log.Int("line", lineNo), log.Int("max_bytes", MaxLineSize))
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = reader.ReadSlice('\n')
			}
			if errors.Is(err, io.EOF) {
				return added, nil
			}
			if err != nil {
				return added, err
			}
			continue
		}

		if len(line) > 0 {
			lineNo++
			added += forwardLine(ctx, bytes.TrimRight(line, "\r\n"), lineNo, parser, sink, logger)
		}
		if errors.Is(err, io.EOF) {
			return added, nil
		}
		if err != nil {
			return added, err
		}
	}
}

func forwardLine(ctx context.Context, line []byte, lineNo int, parser Parser, sink Sink, logger log.Logger) int {
	samples, err := parser.Parse(line)
	if err != nil {
		logger.Warn("skipping line", log.Int("line", lineNo), log.Err(err))
		return 0
	}
	for _, s := range samples {
		sink.Add(ctx, s.Timestamp, s.Value, s.Segments...)
	}
	return len(samples)
}
