// Package domain contains the core value types of graphitepush.
//
// It has no dependencies on transport, encoding, or logging.
//
// # Types
//
//   - [Sample]: one metric data point (path, timestamp, value)
//   - [Batch]: samples detached from a buffer and sent as one wire message
//   - [Event]: a discrete annotation posted to the events endpoint
package domain
