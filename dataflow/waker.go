package dataflow

import "context"

// Waker is the scheduler's single external wakeup signal (§4.2, §5, §6).
// External adapters (see package extio) call Wake when data arrives on a
// channel the scheduler doesn't otherwise poll; RunAsync blocks on it
// whenever a full sweep of strata finds no ready work.
type Waker struct {
	ch chan struct{}
}

func newWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake signals the scheduler that external data may be available. It never
// blocks: a pending-but-unconsumed wake is coalesced into a single signal.
func (w *Waker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func (w *Waker) wait(ctx context.Context) error {
	select {
	case <-w.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
