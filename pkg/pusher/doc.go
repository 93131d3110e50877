// Package pusher batches numeric samples and forwards them to a Graphite
// relay over TCP, and posts discrete events to the Graphite HTTP events
// endpoint.
//
// # Basic Usage
//
//	p, err := pusher.New(pusher.Config{
//	    Host:    "graphite.internal",
//	    Port:    2004,
//	    HTTPURL: "http://graphite.internal",
//	    Prefix:  "celery",
//	}, pusher.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	p.Add(ctx, time.Now().Unix(), 1, "tasks", "succeeded")
//	p.AddEvent(ctx, "deploy", []string{"release"}, time.Now().Unix(), "v1.2.3")
//	p.Push(ctx) // flush whatever is buffered
//
// # Delivery
//
// Delivery is best effort. Samples are flushed when Retention samples are
// buffered or when Push is called; each flush opens its own connection and
// the batch is dropped if anything fails. Network failures are logged through
// the injected logger and never returned.
//
// # Concurrency
//
// A Pusher is not safe for concurrent use. Confine it to one goroutine or
// guard it with a mutex.
package pusher
