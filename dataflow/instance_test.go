package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMapOnlyPipeline is scenario 1 of spec §8: source_iter [1,2,3] -> map(*2)
// -> for_each(collect), one run_tick, output exactly [2,4,6].
func TestMapOnlyPipeline(t *testing.T) {
	in := New(nil)
	h1, send1, recv1 := AddVecHandoff[int](in, false)
	_, send2, recv2 := AddVecHandoff[int](in, false)
	_ = h1

	var out []int
	source := in.AddSubgraph("source", nil, []HandoffId{send1.ID()}, 0, true, func(ctx *Context) {
		send1.PushAll([]int{1, 2, 3})
		ctx.MarkExhausted()
	})
	_ = source

	mapSg := in.AddSubgraph("map", []HandoffId{send1.ID()}, []HandoffId{send2.ID()}, 0, false, func(ctx *Context) {
		for _, v := range recv1.Take() {
			send2.Push(v * 2)
		}
	})
	_ = mapSg

	in.AddSubgraph("sink", []HandoffId{send2.ID()}, nil, 0, false, func(ctx *Context) {
		out = append(out, recv2.Take()...)
	})

	require.NoError(t, in.RunTick())
	assert.Equal(t, []int{2, 4, 6}, out)
}

// TestStratumOrdering checks invariant 1 of §8: a stratum-0 subgraph always
// runs (and fully propagates) before a stratum-1 consumer sees its output.
func TestStratumOrdering(t *testing.T) {
	in := New(nil)
	_, send, recv := AddVecHandoff[int](in, false)

	var order []string
	in.AddSubgraph("lo", nil, []HandoffId{send.ID()}, 0, true, func(ctx *Context) {
		order = append(order, "lo")
		send.Push(1)
		ctx.MarkExhausted()
	})
	in.AddSubgraph("hi", []HandoffId{send.ID()}, nil, 1, false, func(ctx *Context) {
		order = append(order, "hi")
		assert.Equal(t, []int{1}, recv.Take())
	})

	require.NoError(t, in.RunTick())
	assert.Equal(t, []string{"lo", "hi"}, order)
}

// TestScheduleSubgraphIdempotent: calling ScheduleSubgraph(false) twice before
// a run must not run the subgraph twice (idempotent enqueue, §8).
func TestScheduleSubgraphIdempotent(t *testing.T) {
	in := New(nil)
	runs := 0
	var self SubgraphId
	self = in.AddSubgraph("self", nil, nil, 0, true, func(ctx *Context) {
		runs++
		ctx.MarkExhausted()
	})

	in.scheduleSubgraph(self, false)
	in.scheduleSubgraph(self, false)
	require.NoError(t, in.RunTick()) // tick 0: lax auto-enqueue runs it once
	require.NoError(t, in.RunTick()) // tick 1: the two coalesced schedules run it once
	assert.Equal(t, 2, runs)
}

// TestRunAvailableIdleIsNoOp: re-running RunAvailable on an idle instance
// does nothing further (§8 round-trip law).
func TestRunAvailableIdleIsNoOp(t *testing.T) {
	in := New(nil)
	runs := 0
	in.AddSubgraph("once", nil, nil, 0, true, func(ctx *Context) {
		runs++
		ctx.MarkExhausted()
	})

	require.NoError(t, in.RunAvailable())
	assert.Equal(t, 1, runs)
	require.NoError(t, in.RunAvailable())
	assert.Equal(t, 1, runs)
}

// TestTickDelayedFeedback is scenario 6 of spec §8: source [0] unioned with
// (self -> map(+1) -> defer_tick) -> collect. After N run_tick calls the
// union has emitted 0,1,...,N-1 in order.
func TestTickDelayedFeedback(t *testing.T) {
	in := New(nil)
	hDirect, sendDirect, recvDirect := AddVecHandoff[int](in, false)
	hFeedback, sendFeedback, recvFeedback := AddVecHandoff[int](in, true)
	hUnionOut, sendUnion := AddTeeingHandoff[int](in)
	rCollect := sendUnion.Tee()
	rFeed := sendUnion.Tee()

	in.AddSubgraph("source", nil, []HandoffId{hDirect}, 0, true, func(ctx *Context) {
		sendDirect.Push(0)
		ctx.MarkExhausted()
	})
	in.AddSubgraph("union", []HandoffId{hDirect, hFeedback}, []HandoffId{hUnionOut}, 0, false, func(ctx *Context) {
		for _, v := range recvDirect.Take() {
			sendUnion.Push(v)
		}
		for _, v := range recvFeedback.Take() {
			sendUnion.Push(v)
		}
	})
	var out []int
	in.AddSubgraph("collect", []HandoffId{hUnionOut}, nil, 0, false, func(ctx *Context) {
		out = append(out, rCollect.TakeInner()...)
	})
	in.AddSubgraph("feedback_map", []HandoffId{hUnionOut}, []HandoffId{hFeedback}, 0, false, func(ctx *Context) {
		for _, v := range rFeed.TakeInner() {
			sendFeedback.Push(v + 1)
		}
	})

	for i := 0; i < 4; i++ {
		require.NoError(t, in.RunTick())
	}
	assert.Equal(t, []int{0, 1, 2, 3}, out)
}

func TestRunTickWithNoSubgraphsErrors(t *testing.T) {
	in := New(nil)
	assert.ErrorIs(t, in.RunTick(), ErrNoSubgraphs)
}

func TestCurrentTickIsNonDecreasing(t *testing.T) {
	in := New(nil)
	var ticks []uint64
	in.AddSubgraph("recorder", nil, nil, 0, true, func(ctx *Context) {
		ticks = append(ticks, ctx.CurrentTick())
		if len(ticks) >= 3 {
			ctx.MarkExhausted()
		}
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, in.RunTick())
	}
	assert.Equal(t, []uint64{0, 1, 2}, ticks)
}
