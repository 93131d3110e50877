// Package ports defines the interfaces between the pusher and its
// transport adapters.
//
// # Port Interfaces
//
//   - [BatchSender]: writes one encoded batch to the metrics relay
//   - [EventSender]: posts one event document to the events endpoint
//   - [Dialer]: opens TCP connections, satisfied by *net.Dialer
//   - [HTTPClient]: executes HTTP requests, satisfied by *http.Client
//
// Adapters in internal/adapters implement the senders; tests substitute
// their own.
package ports
