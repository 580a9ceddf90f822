package extio

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/hydroflow/dataflow"
)

func TestPollerFeedsInstanceAcrossGoroutines(t *testing.T) {
	in := dataflow.New(nil)
	h, send, recv := dataflow.AddVecHandoff[int](in, false)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	poller := NewPoller[int](in.Waker(), 8)
	pool := NewPool(ctx)

	var produced int32
	poller.Run(pool, func(ctx context.Context) (int, error) {
		n := atomic.AddInt32(&produced, 1)
		if n > 3 {
			<-ctx.Done()
			return 0, ctx.Err()
		}
		return int(n), nil
	})

	var got []int
	in.AddSubgraph("poll", nil, []dataflow.HandoffId{h}, 0, true, poller.Drain(send))
	in.AddSubgraph("collect", []dataflow.HandoffId{h}, nil, 0, false, func(ctx *dataflow.Context) {
		got = append(got, recv.Take()...)
	})

	err := in.RunAsync(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Subset(t, []int{1, 2, 3, 4, 5, 6}, got)
	assert.NotEmpty(t, got)
}

func TestDrainToSinkDeliversEveryItem(t *testing.T) {
	in := dataflow.New(nil)
	h, send, recv := dataflow.AddVecHandoff[int](in, false)
	pool := NewPool(context.Background())

	var mu sync.Mutex
	var delivered []int
	sink := func(ctx context.Context, item int) error {
		mu.Lock()
		delivered = append(delivered, item)
		mu.Unlock()
		return nil
	}

	in.AddSubgraph("source", nil, []dataflow.HandoffId{h}, 0, true, func(ctx *dataflow.Context) {
		send.PushAll([]int{1, 2, 3})
		ctx.MarkExhausted()
	})
	in.AddSubgraph("sink", []dataflow.HandoffId{h}, nil, 0, false, DrainToSink(pool, recv, sink))

	require.NoError(t, in.RunTick())
	require.NoError(t, pool.Wait())
	assert.ElementsMatch(t, []int{1, 2, 3}, delivered)
}
