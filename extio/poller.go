package extio

import (
	"context"

	"github.com/smallnest/hydroflow/dataflow"
)

// Source produces the next external item, blocking until one is
// available or ctx is cancelled.
type Source[T any] func(ctx context.Context) (T, error)

// Poller runs a Source on its own goroutine (registered via Run) and
// buffers what it reads so a lax subgraph can drain it without blocking.
type Poller[T any] struct {
	ch    chan T
	waker *dataflow.Waker
}

// NewPoller allocates a Poller with the given channel buffer size.
func NewPoller[T any](waker *dataflow.Waker, buffer int) *Poller[T] {
	return &Poller[T]{ch: make(chan T, buffer), waker: waker}
}

// Run registers the poll loop with pool: read source repeatedly, buffer
// each item, and wake the instance so a blocked RunAsync call resumes.
func (p *Poller[T]) Run(pool *Pool, source Source[T]) {
	pool.Go(func() error {
		ctx := pool.Context()
		for {
			v, err := source(ctx)
			if err != nil {
				return err
			}
			select {
			case p.ch <- v:
				p.waker.Wake()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
}

// Drain returns a subgraph body that moves everything currently buffered
// into send without blocking, for use as a lax external-input subgraph.
func (p *Poller[T]) Drain(send *dataflow.SendPort[T]) func(ctx *dataflow.Context) {
	return func(ctx *dataflow.Context) {
		for {
			select {
			case v := <-p.ch:
				send.Push(v)
			default:
				return
			}
		}
	}
}
