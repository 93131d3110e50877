package ingest

import (
	"fmt"
	"time"

	protocol "github.com/influxdata/line-protocol"
)

// InfluxParser reads Influx line protocol. Each numeric or boolean field
// becomes one sample at path "<measurement>.<field>"; tags and string
// fields are dropped.
type InfluxParser struct {
	parser *protocol.Parser
}

// NewInfluxParser creates a parser that stamps lines without a timestamp
// using now.
func NewInfluxParser(now func() time.Time) *InfluxParser {
	parser := protocol.NewParser(protocol.NewMetricHandler())
	parser.SetTimeFunc(protocol.TimeFunc(now))
	return &InfluxParser{parser: parser}
}

func (p *InfluxParser) Parse(line []byte) ([]Sample, error) {
	metrics, err := p.parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse line protocol: %w", err)
	}

	var out []Sample
	for _, m := range metrics {
		ts := m.Time().Unix()
		for _, f := range m.FieldList() {
			value, ok := numeric(f.Value)
			if !ok {
				continue
			}
			out = append(out, Sample{
				Segments:  []string{m.Name(), f.Key},
				Timestamp: ts,
				Value:     value,
			})
		}
	}
	return out, nil
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
