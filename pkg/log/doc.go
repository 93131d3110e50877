// Package log provides the logging abstraction used by graphitepush components.
//
// Every component receives a Logger at construction and keeps it for its own
// lifetime; there is no package-level logger in library code. A zerolog
// adapter and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(zerolog.InfoLevel)
//
// Or, in tests:
//
//	logger := log.NewNoopLogger()
//
// Errors created or wrapped with github.com/pkg/errors carry a stack trace;
// pass them with [Stack] instead of [Err] to have the adapter render it.
package log
