package ops

import (
	"time"

	"github.com/smallnest/hydroflow/codegen"
	"github.com/smallnest/hydroflow/dataflow"
)

// SourceIter pushes every item of items exactly once, then marks its
// subgraph exhausted (§4.4 edge case: a lax external-input subgraph that
// stops scheduling itself once its data is drained).
func SourceIter[T any](send *dataflow.SendPort[T], items []T) codegen.Stage {
	done := false
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			if done {
				ctx.MarkExhausted()
				return
			}
			send.PushAll(items)
			done = true
			ctx.MarkExhausted()
		},
	}
}

// SourceInterval emits gen() at most once per interval, completing the
// first tick immediately (_examples/original_source/dfir_lang/src/graph/ops/source_interval.rs:
// "The first tick completes immediately. Missed ticks will be scheduled as
// soon as possible."). It never marks itself exhausted: pairing it with
// extio's poller is what actually paces real-time re-invocation; on its
// own, within a tight RunAvailable loop, it fires once per call once due.
func SourceInterval[T any](send *dataflow.SendPort[T], interval time.Duration, gen func() T) codegen.Stage {
	var last time.Time
	first := true
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			now := time.Now()
			if first || now.Sub(last) >= interval {
				send.Push(gen())
				last = now
				first = false
			}
		},
	}
}

// ForEach runs f over every item for its side effects; it has no output
// port, matching for_each's sink role.
func ForEach[T any](recv *dataflow.RecvPort[T], f func(T)) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			for _, v := range recv.Take() {
				f(v)
			}
		},
	}
}

// DeferTick is a pure passthrough: its delay semantics come entirely from
// send being bound to a tick-delayed handoff, not from any logic here
// (§2 Delay Types).
func DeferTick[T any](recv *dataflow.RecvPort[T], send *dataflow.SendPort[T]) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			send.PushAll(recv.Take())
		},
	}
}
