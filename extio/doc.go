// Package extio bridges external, truly-asynchronous I/O (sockets,
// timers, channels fed by other goroutines) into a single dataflow
// Instance. The dataflow core itself is deliberately single-threaded
// (dataflow.Instance is not safe for concurrent use); extio is where the
// concurrency that feeds or drains it actually lives, coordinated through
// golang.org/x/sync/errgroup the same way the teacher's async call paths
// group concurrent work and propagate the first error.
//
// A Poller runs a blocking Source function on its own goroutine and
// buffers what it reads on a channel; an external-input subgraph's body
// calls Drain to move everything currently buffered into a SendPort
// without blocking, then the Poller calls Waker.Wake so a RunAsync loop
// wakes up and processes it. A Sink is the mirror image for output.
package extio
