package dataflow

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the graph-construction API (§6). These cover
// the common, expected misuse cases; anything deeper (a dynamic borrow
// violation, scheduling a dangling SubgraphId) is a RuntimeFault panic
// instead, matching §7's "runtime panics are unrecoverable" contract.
var (
	// ErrNoSubgraphs is returned by Run* when the instance has nothing to run.
	ErrNoSubgraphs = errors.New("dataflow: instance has no subgraphs")

	// ErrUnknownHandoff names a HandoffId that does not belong to the
	// instance. Instance methods do not return it: they panic with a
	// RuntimeFault on an unknown HandoffId.
	ErrUnknownHandoff = errors.New("dataflow: unknown handoff id")

	// ErrUnknownSubgraph names a SubgraphId that does not belong to the
	// instance. Instance methods do not return it: they panic with a
	// RuntimeFault on an unknown SubgraphId.
	ErrUnknownSubgraph = errors.New("dataflow: unknown subgraph id")
)

// RuntimeFault is the panic value for programmer errors detected at
// runtime: dynamic state-borrow violations, handoff type mismatches, and
// scheduling calls against ids the instance never issued. The surrounding
// application is expected to restart or tear down the Instance; the core
// never tries to recover from these itself (§7).
type RuntimeFault struct {
	Op      string
	Message string
}

func (f *RuntimeFault) Error() string {
	return fmt.Sprintf("dataflow: runtime fault in %s: %s", f.Op, f.Message)
}

func faultf(op, format string, args ...any) {
	panic(&RuntimeFault{Op: op, Message: fmt.Sprintf(format, args...)})
}
