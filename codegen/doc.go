// Package codegen implements the partitioner/codegen boundary of §4.5.
//
// The original contract is macro-driven: each operator's "write" function
// takes a write-context (op span, root path, context ident, handoff ident,
// input/output idents, is-pull, generic arguments, operator arguments,
// state make-ident helper) and returns three source fragments — prologue,
// iterator, and iterator-after — that a proc-macro splices into generated
// Rust source at compile time.
//
// Go has no proc-macros, and flatgraph.PartitionedGraph erases each port's
// item type to keep the partitioner itself non-generic (§4.4's "variadic
// port lists" note says implementers may replace the type-list trick with
// per-operator wrapper structs — this is that replacement). So the three
// source fragments become three closures over a dataflow.Context instead
// of three strings: a Stage's Prologue runs once at Build time exactly
// where the original's prologue fragment would run once at construction,
// Iterator is spliced into the fused subgraph body exactly where the
// iterator fragment would sit, and IteratorAfter runs after it in the same
// invocation, e.g. for self-scheduling. codegen.Build fuses each
// PartitionedSubgraph's per-node stages into one dataflow.SubgraphBody, in
// pull-prefix-then-push-suffix order, and registers it with the Instance.
package codegen
