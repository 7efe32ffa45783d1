package dag

import (
	"sync/atomic"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/registry"
)

// Graph is a frozen dependency graph over a network's operators. Nodes and
// edges are immutable once Build returns; only the per-node counters and
// states mutate during a run, and Reset restores those.
type Graph struct {
	// Nodes holds every execution node in declaration order.
	Nodes []*Node

	// byName indexes nodes by operator name for edge resolution.
	byName map[string]*Node
}

// Node is the scheduling unit wrapping one operator instance.
type Node struct {
	// Index is the node's position in declaration order.
	Index int
	// Def is the operator's immutable declaration.
	Def *config.OperatorDef
	// Op is the resolved runnable instance for Def.Type.
	Op registry.Operator

	// Deps holds the set of nodes this node depends on, keyed by operator name.
	Deps map[string]*Node
	// Dependents holds the set of nodes that depend on this node.
	Dependents map[string]*Node

	// Err records why the node failed or was skipped. It is written by at
	// most one worker during a run and read only after the run settles.
	Err error

	// pending counts unsatisfied parents; the executor dispatches the node
	// when an atomic decrement observes zero.
	pending atomic.Int32
	// state is the node's current execution state.
	state atomic.Int32
}

// Name returns the operator name this node wraps.
func (n *Node) Name() string {
	return n.Def.Name
}

// PendingCount atomically returns the current number of unsatisfied parents.
func (n *Node) PendingCount() int32 {
	return n.pending.Load()
}

// State atomically retrieves the node's execution state.
func (n *Node) State() State {
	return State(n.state.Load())
}

func (n *Node) setState(s State) {
	n.state.Store(int32(s))
}

// fail marks a node that ran and reported an error.
func (n *Node) fail(err error) {
	n.Err = err
	n.setState(Failed)
}

// skip transitions a pending node to Skipped exactly once, returning true
// on the transition that won. Nodes that already ran, failed, or were
// skipped by another path are left untouched.
func (n *Node) skip(err error) bool {
	if n.state.CompareAndSwap(int32(Pending), int32(Skipped)) {
		n.Err = err
		return true
	}
	return false
}

// reset restores the node's transient run state to its post-build values.
func (n *Node) reset() {
	n.pending.Store(int32(len(n.Deps)))
	n.state.Store(int32(Pending))
	n.Err = nil
}

// State represents the execution state of a node during one run.
type State int32

const (
	// Pending indicates the node is waiting for its parents to complete.
	Pending State = iota
	// Running indicates the node is currently held by a worker.
	Running
	// Done indicates the node completed successfully.
	Done
	// Failed indicates the node ran and reported an error.
	Failed
	// Skipped indicates the node was never dispatched because an ancestor
	// failed or the run was halted.
	Skipped
)

// String returns a human-readable state name for logs and reports.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Node looks up a node by operator name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// Reset restores every node's pending counter and state so the graph can be
// executed again without rebuilding edges.
func (g *Graph) Reset() {
	for _, n := range g.Nodes {
		n.reset()
	}
}
