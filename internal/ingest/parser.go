// Package ingest turns text sample streams into pusher samples.
package ingest

import (
	"fmt"
	"time"
)

// Supported input formats.
const (
	FormatPlaintext = "plaintext"
	FormatInflux    = "influx"
)

// Sample is a parsed input line before the pusher applies its prefix.
type Sample struct {
	Segments  []string
	Timestamp int64
	Value     float64
}

// Parser converts one input line into zero or more samples.
type Parser interface {
	Parse(line []byte) ([]Sample, error)
}

// NewParser returns the parser for format. now supplies timestamps for
// lines that carry none; nil means time.Now.
func NewParser(format string, now func() time.Time) (Parser, error) {
	if now == nil {
		now = time.Now
	}
	switch format {
	case "", FormatPlaintext:
		return &PlaintextParser{now: now}, nil
	case FormatInflux:
		return NewInfluxParser(now), nil
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}
