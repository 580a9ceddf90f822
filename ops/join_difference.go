package ops

import (
	"github.com/smallnest/hydroflow/codegen"
	"github.com/smallnest/hydroflow/dataflow"
)

// Pair is one (key, value) item of a join input stream.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Joined is one emitted equi-join match.
type Joined[K comparable, V1, V2 any] struct {
	Key   K
	Left  V1
	Right V2
}

// Join is a streaming equi-join over two keyed inputs. With
// PersistenceTick (the default) only items that arrive in the same
// invocation can match, mirroring a tick-scoped join; PersistenceStatic
// keeps every item ever seen on both sides and matches against the full
// accumulated history, trading memory for the ability to join a late
// arrival against an older one.
func Join[K comparable, V1, V2 any](reg *dataflow.StateRegistry, persistence Persistence, left *dataflow.RecvPort[Pair[K, V1]], right *dataflow.RecvPort[Pair[K, V2]], send *dataflow.SendPort[Joined[K, V1, V2]]) codegen.Stage {
	if persistence == PersistenceStatic {
		leftID := dataflow.AddState(reg, map[K][]V1{})
		rightID := dataflow.AddState(reg, map[K][]V2{})
		return codegen.Stage{
			Iterator: func(ctx *dataflow.Context) {
				dataflow.Access(reg, leftID, func(lm *map[K][]V1) {
					for _, p := range left.Take() {
						(*lm)[p.Key] = append((*lm)[p.Key], p.Value)
					}
					dataflow.Access(reg, rightID, func(rm *map[K][]V2) {
						for _, p := range right.Take() {
							(*rm)[p.Key] = append((*rm)[p.Key], p.Value)
						}
						emitJoin(send, *lm, *rm)
					})
				})
			},
		}
	}
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			lm := map[K][]V1{}
			for _, p := range left.Take() {
				lm[p.Key] = append(lm[p.Key], p.Value)
			}
			rm := map[K][]V2{}
			for _, p := range right.Take() {
				rm[p.Key] = append(rm[p.Key], p.Value)
			}
			emitJoin(send, lm, rm)
		},
	}
}

func emitJoin[K comparable, V1, V2 any](send *dataflow.SendPort[Joined[K, V1, V2]], lm map[K][]V1, rm map[K][]V2) {
	for k, lvs := range lm {
		rvs, ok := rm[k]
		if !ok {
			continue
		}
		for _, lv := range lvs {
			for _, rv := range rvs {
				send.Push(Joined[K, V1, V2]{Key: k, Left: lv, Right: rv})
			}
		}
	}
}

// Difference emits every item from pos that has not appeared on neg,
// accumulating neg under the given persistence (PersistenceTick clears
// the negative set every tick; PersistenceStatic makes a deletion
// permanent for the Instance's lifetime).
func Difference[T comparable](reg *dataflow.StateRegistry, persistence Persistence, pos, neg *dataflow.RecvPort[T], send *dataflow.SendPort[T]) codegen.Stage {
	id := dataflow.AddState(reg, map[T]struct{}{})
	bindTickReset(reg, id, persistence, map[T]struct{}{})
	return codegen.Stage{
		Iterator: func(ctx *dataflow.Context) {
			dataflow.Access(reg, id, func(negSet *map[T]struct{}) {
				for _, v := range neg.Take() {
					(*negSet)[v] = struct{}{}
				}
				for _, v := range pos.Take() {
					if _, excluded := (*negSet)[v]; !excluded {
						send.Push(v)
					}
				}
			})
		},
	}
}
