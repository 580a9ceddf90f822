package ops

import (
	"github.com/smallnest/hydroflow/codegen"
	"github.com/smallnest/hydroflow/dataflow"
)

// Fold accumulates every item into a running value via f and pushes the
// accumulator's current value downstream on each invocation. With
// PersistenceTick the accumulator resets to init at the start of every
// tick; PersistenceStatic keeps accumulating for the Instance's lifetime.
func Fold[T, Acc any](reg *dataflow.StateRegistry, persistence Persistence, init Acc, recv *dataflow.RecvPort[T], send *dataflow.SendPort[Acc], f func(Acc, T) Acc) codegen.Stage {
	id := dataflow.AddState(reg, init)
	bindTickReset(reg, id, persistence, init)
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			dataflow.Access(reg, id, func(acc *Acc) {
				for _, v := range recv.Take() {
					*acc = f(*acc, v)
				}
				send.Push(*acc)
			})
		},
	}
}

// Persist buffers every item it has ever seen and re-emits the whole
// accumulated sequence on every invocation, the "replay history" semantics
// persist_mut.rs's docstring contrasts itself against. PersistenceTick
// clears the buffer at tick start; PersistenceStatic never clears it.
func Persist[T any](reg *dataflow.StateRegistry, persistence Persistence, recv *dataflow.RecvPort[T], send *dataflow.SendPort[T]) codegen.Stage {
	id := dataflow.AddState(reg, []T(nil))
	bindTickReset(reg, id, persistence, []T(nil))
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			dataflow.Access(reg, id, func(buf *[]T) {
				*buf = append(*buf, recv.Take()...)
				send.PushAll(*buf)
			})
		},
	}
}

// PersistMut tracks a multiset of values, applying Add/Delete ops in
// arrival order, and re-emits the surviving members (count > 0) on every
// invocation (_examples/original_source/dfir_lang/src/graph/ops/persist_mut.rs:
// "[Persist(1), Delete(1), Persist(1)] results in a single 1 being stored").
// persist_mut is always effectively 'static: its whole point is tracking
// deletions across the graph's lifetime, so there is no PersistenceTick
// variant.
func PersistMut[T comparable](reg *dataflow.StateRegistry, recv *dataflow.RecvPort[PersistenceItem[T]], send *dataflow.SendPort[T]) codegen.Stage {
	id := dataflow.AddState(reg, map[T]int{})
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			dataflow.Access(reg, id, func(counts *map[T]int) {
				for _, item := range recv.Take() {
					switch item.Op {
					case PersistAdd:
						(*counts)[item.Value]++
					case PersistDelete:
						if (*counts)[item.Value] > 0 {
							(*counts)[item.Value]--
						}
					}
				}
				for v, n := range *counts {
					if n > 0 {
						send.Push(v)
					}
				}
			})
		},
	}
}
