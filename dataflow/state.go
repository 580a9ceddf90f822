package dataflow

// StateId is an opaque handle to a process-local typed cell (§3, §4.2).
// StateIds are dense and never alias; they are minted by StateRegistry.Add.
type StateId int

type stateCell struct {
	value    any
	hook     func()
	borrowed bool
}

// StateRegistry owns every state cell for one Instance. Cells are created
// lazily by the operator bodies that need them (via AddState) and live for
// the process lifetime; there is no delete.
type StateRegistry struct {
	cells []*stateCell
}

func newStateRegistry() *StateRegistry {
	return &StateRegistry{}
}

// AddState allocates a new cell holding initial and returns its handle.
func AddState[T any](reg *StateRegistry, initial T) StateId {
	v := initial
	reg.cells = append(reg.cells, &stateCell{value: &v})
	return StateId(len(reg.cells) - 1)
}

// SetStateTickHook registers a hook invoked once at the start of every tick,
// before any stratum runs (§3, §4.2). Hooks run in the order their cells
// were added, which user code must not rely on (§4.2 invariant).
func SetStateTickHook(reg *StateRegistry, id StateId, hook func()) {
	reg.cell(id).hook = hook
}

func (reg *StateRegistry) cell(id StateId) *stateCell {
	if int(id) < 0 || int(id) >= len(reg.cells) {
		faultf("state_ref", "state id %d does not exist", id)
	}
	return reg.cells[id]
}

func (reg *StateRegistry) runTickHooks() {
	for _, c := range reg.cells {
		if c.hook != nil {
			c.hook()
		}
	}
}

// Access borrows the cell addressed by id as *T for the duration of fn,
// matching the "interior-mutable accessor" of §4.2 and §6. Borrow discipline
// is runtime-checked: a reentrant Access of the same cell (e.g. an operator
// accidentally re-entering its own state while already inside fn) is a
// programmer error and panics with RuntimeFault, exactly as overlapping
// mutable borrows do in the source runtime (§5).
func Access[T any](reg *StateRegistry, id StateId, fn func(*T)) {
	c := reg.cell(id)
	if c.borrowed {
		faultf("state_ref", "reentrant borrow of state id %d", id)
	}
	ptr, ok := c.value.(*T)
	if !ok {
		faultf("state_ref", "state id %d is not of the requested type", id)
	}
	c.borrowed = true
	defer func() { c.borrowed = false }()
	fn(ptr)
}
