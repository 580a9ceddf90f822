package ops

import (
	"github.com/smallnest/hydroflow/codegen"
	"github.com/smallnest/hydroflow/dataflow"
)

// Tee forwards every item read from recv into a TeeingHandoff, whose
// fan-out/cursor bookkeeping (dataflow.TeeingHandoff) already implements
// tee's "every downstream sees the full sequence independently" semantics
// (§4.1); the operator itself is just the read-then-broadcast step.
func Tee[T any](recv *dataflow.RecvPort[T], send *dataflow.TeeSendPort[T]) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			send.PushAll(recv.Take())
		},
	}
}

// Union merges every recv in order into a single output stream.
func Union[T any](send *dataflow.SendPort[T], recvs ...*dataflow.RecvPort[T]) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			for _, recv := range recvs {
				send.PushAll(recv.Take())
			}
		},
	}
}
