package domain

import "strings"

// PathSeparator joins path segments and the optional prefix.
const PathSeparator = "."

// Point is the (timestamp, value) pair of a sample.
type Point struct {
	_msgpack struct{} `msgpack:",as_array"`

	// Timestamp is in unix seconds.
	Timestamp int64
	Value     float64
}

// Sample is one metric data point. It encodes as [path, [timestamp, value]].
type Sample struct {
	_msgpack struct{} `msgpack:",as_array"`

	Path  string
	Point Point
}

// NewSample builds a sample from an already joined path.
func NewSample(path string, timestamp int64, value float64) Sample {
	return Sample{Path: path, Point: Point{Timestamp: timestamp, Value: value}}
}

// JoinPath joins segments with PathSeparator and prepends prefix when it is
// not empty.
func JoinPath(prefix string, segments ...string) string {
	path := strings.Join(segments, PathSeparator)
	if prefix == "" {
		return path
	}
	return prefix + PathSeparator + path
}
