package ops

import "github.com/smallnest/hydroflow/dataflow"

// Persistence selects how long an operator's internal state survives,
// mirroring the original's 'tick/'static persistence lifetime arguments
// (§2 Delay Types; _examples/original_source/dfir_lang/src/graph/ops/persist_mut.rs).
type Persistence int

const (
	// PersistenceTick clears the operator's state at the start of every
	// tick (the default persistence in the original language).
	PersistenceTick Persistence = iota
	// PersistenceStatic keeps state for the lifetime of the Instance.
	PersistenceStatic
)

// bindTickReset registers a tick-start hook that clears the cell back to
// zero whenever persistence is PersistenceTick; PersistenceStatic installs
// no hook and the value survives indefinitely.
func bindTickReset[T any](reg *dataflow.StateRegistry, id dataflow.StateId, persistence Persistence, zero T) {
	if persistence != PersistenceTick {
		return
	}
	dataflow.SetStateTickHook(reg, id, func() {
		dataflow.Access(reg, id, func(v *T) { *v = zero })
	})
}

// PersistOp is the deletion-capable persistence op code of persist_mut
// (_examples/original_source/dfir_lang/src/graph/ops/persist_mut.rs):
// "[Persist(1), Delete(1), Persist(1)] results in a single 1 being stored."
type PersistOp int

const (
	PersistAdd PersistOp = iota
	PersistDelete
)

// PersistenceItem is one element of a persist_mut input stream.
type PersistenceItem[T comparable] struct {
	Op    PersistOp
	Value T
}
