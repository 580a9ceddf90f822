package ops

import (
	"github.com/smallnest/hydroflow/codegen"
	"github.com/smallnest/hydroflow/dataflow"
)

// Map applies f to every item of recv and pushes the result to send
// (_examples/original_source/dfir_lang/src/graph/ops/enumerate.rs is the
// nearest grounded sibling: a single-input, single-output, per-item
// transform with no persistence).
func Map[T, U any](recv *dataflow.RecvPort[T], send *dataflow.SendPort[U], f func(T) U) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			for _, v := range recv.Take() {
				send.Push(f(v))
			}
		},
	}
}

// Filter forwards only items for which pred returns true.
func Filter[T any](recv *dataflow.RecvPort[T], send *dataflow.SendPort[T], pred func(T) bool) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			for _, v := range recv.Take() {
				if pred(v) {
					send.Push(v)
				}
			}
		},
	}
}

// FlatMap applies f to every item and pushes every element of the
// resulting slice.
func FlatMap[T, U any](recv *dataflow.RecvPort[T], send *dataflow.SendPort[U], f func(T) []U) codegen.Stage {
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			for _, v := range recv.Take() {
				send.PushAll(f(v))
			}
		},
	}
}

// IndexedItem is the (index, value) pair Enumerate produces.
type IndexedItem[T any] struct {
	Index int
	Value T
}

// Enumerate pairs each item with its index. With PersistenceTick (the
// default) the index restarts at zero every tick; PersistenceStatic counts
// monotonically upward across ticks, matching enumerate.rs.
func Enumerate[T any](reg *dataflow.StateRegistry, recv *dataflow.RecvPort[T], send *dataflow.SendPort[IndexedItem[T]], persistence Persistence) codegen.Stage {
	id := dataflow.AddState(reg, 0)
	bindTickReset(reg, id, persistence, 0)
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			dataflow.Access(reg, id, func(next *int) {
				for _, v := range recv.Take() {
					send.Push(IndexedItem[T]{Index: *next, Value: v})
					*next++
				}
			})
		},
	}
}
