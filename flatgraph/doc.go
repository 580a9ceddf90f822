// Package flatgraph implements the partitioner of §4.4: it ingests a flat
// operator-level graph (nodes with declared port arities and per-input
// delay types) and emits a partitioned graph of subgraphs and handoffs,
// annotated with a stratum number per subgraph.
//
// The frontend that lowers user-facing dataflow syntax into the flat graph
// this package consumes is out of scope (spec §1); so is the concrete
// operator catalogue beyond the abstract OperatorConstraints/DelayType
// contract operators must satisfy to be partitionable.
package flatgraph
