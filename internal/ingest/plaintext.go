package ingest

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// PlaintextParser reads the Graphite plaintext form "path value [timestamp]".
// Blank lines and lines starting with '#' yield nothing.
type PlaintextParser struct {
	now func() time.Time
}

func (p *PlaintextParser) Parse(line []byte) ([]Sample, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return nil, nil
	}

	fields := strings.Fields(string(line))
	if len(fields) < 2 || len(fields) > 3 {
		return nil, fmt.Errorf("expected \"path value [timestamp]\", got %d fields", len(fields))
	}

	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parse value %q: %w", fields[1], err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("value %q is not finite", fields[1])
	}

	ts := p.now().Unix()
	if len(fields) == 3 {
		f, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", fields[2], err)
		}
		// float64(math.MaxInt64) rounds up to 2^63, hence >=.
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("timestamp %q out of range", fields[2])
		}
		ts = int64(f)
	}

	return []Sample{{
		Segments:  strings.Split(fields[0], "."),
		Timestamp: ts,
		Value:     value,
	}}, nil
}
