// Package dag builds the dependency graph for a network of operators and
// executes it on a fixed-size worker pool.
//
// The builder walks the operator declarations in order and infers the
// minimal set of ordering edges from blob access patterns: read-after-write,
// write-after-read and write-after-write hazards, plus explicit control
// edges. Two operators that only read the same blob get no edge and may run
// concurrently.
//
// The executor guarantees that an operator starts only after every one of
// its parents has completed; nodes with no ancestor/descendant relation may
// interleave freely. A built graph is reusable: each Run resets the
// per-node counters before dispatching.
package dag
