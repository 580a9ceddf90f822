// Package ops is the minimal operator catalogue needed to exercise the
// end-to-end scenarios of §8: map, filter, flat_map, fold, join,
// difference, tee, persist (with 'tick/'static/'mutable persistence), union,
// defer_tick, source_iter, source_interval, and for_each.
//
// §1 puts "concrete operator implementations beyond the abstract operator
// interface" out of scope, but §8's testable scenarios name these
// operators directly, so a small, faithful implementation of exactly them
// is required to make those scenarios runnable. Each operator here is a
// plain generic function returning a codegen.Stage directly (see
// codegen/doc.go for why Stage is three closures rather than the
// write-context/registry shape of §4.5), grounded in its original_source/
// dfir_lang counterpart under _examples/original_source/dfir_lang/src/
// graph/ops/.
package ops
