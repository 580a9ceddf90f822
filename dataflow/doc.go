// Package dataflow implements the Hydroflow-Go scheduling core: typed
// handoffs, process-local state cells, subgraphs, and the stratified,
// tick-driven scheduler that decides which subgraph runs next.
//
// The package is deliberately single-threaded and cooperative: there is one
// Instance per goroutine, and handoffs and state cells use plain interior
// mutability with no locking, matching the one-instance-per-thread model of
// the original runtime. Concurrency only ever exists between separate
// Instances, bridged through the extio package.
package dataflow
