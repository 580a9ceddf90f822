package extio

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool groups every poller/sink goroutine feeding or draining one Instance
// under a single errgroup, so a failure in any of them cancels the rest
// and Wait reports the first error.
type Pool struct {
	g   *errgroup.Group
	ctx context.Context
}

// NewPool derives a cancellable context from parent and returns a Pool
// ready for Go/Wait.
func NewPool(parent context.Context) *Pool {
	g, ctx := errgroup.WithContext(parent)
	return &Pool{g: g, ctx: ctx}
}

// Context is the group's derived context: cancelled when parent is
// cancelled or when any goroutine in the pool returns a non-nil error.
func (p *Pool) Context() context.Context { return p.ctx }

// Go runs fn on its own goroutine as part of the pool.
func (p *Pool) Go(fn func() error) { p.g.Go(fn) }

// Wait blocks until every goroutine in the pool has returned, yielding the
// first non-nil error (if any).
func (p *Pool) Wait() error { return p.g.Wait() }
