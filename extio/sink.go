package extio

import (
	"context"

	"github.com/smallnest/hydroflow/dataflow"
)

// Sink delivers one item produced by the dataflow graph to an external
// destination.
type Sink[T any] func(ctx context.Context, item T) error

// DrainToSink returns a subgraph body that hands every item read from recv
// off to sink on its own pool goroutine, so a slow external write never
// blocks the single-threaded scheduler.
func DrainToSink[T any](pool *Pool, recv *dataflow.RecvPort[T], sink Sink[T]) func(ctx *dataflow.Context) {
	return func(ctx *dataflow.Context) {
		for _, item := range recv.Take() {
			item := item
			pool.Go(func() error {
				return sink(pool.Context(), item)
			})
		}
	}
}
