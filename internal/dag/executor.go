package dag

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ms/opnet/internal/ctxlog"
)

// Executor drives one graph with a fixed-size worker pool. An Executor may
// be reused for repeated runs of the same graph; Run resets the graph's
// transient state before dispatching.
type Executor struct {
	graph      *Graph
	numWorkers int
	wg         sync.WaitGroup
}

// NewExecutor creates an executor for the graph with the given pool size.
// A pool of one degenerates to sequential, dependency-respecting execution.
func NewExecutor(graph *Graph, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		graph:      graph,
		numWorkers: workers,
	}
}

// Run executes every node exactly once, starting a node only after all of
// its parents have completed. On an operator failure no new nodes are
// dispatched; already-running nodes are awaited, never killed. The returned
// error wraps the first root-cause failure and names every failed node;
// per-node outcomes remain readable on the graph until the next Run.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	e.graph.Reset()

	readyChan := make(chan *Node, len(e.graph.Nodes))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Seed the ready queue with all root nodes, in declaration order.
	rootCount := 0
	for _, node := range e.graph.Nodes {
		if node.PendingCount() == 0 {
			readyChan <- node
			rootCount++
		}
	}
	logger.Debug("Seeded ready queue with root nodes.", "count", rootCount)

	e.wg.Add(len(e.graph.Nodes))

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(runCtx, readyChan, cancel, i)
	}

	e.wg.Wait()
	close(readyChan)

	var failed []string
	var rootCause error
	for _, node := range e.graph.Nodes {
		if node.State() == Failed {
			failed = append(failed, node.Name())
			if rootCause == nil {
				rootCause = node.Err
			}
		}
	}
	if rootCause != nil {
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *Node, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "worker_id", workerID)

	for node := range readyChan {
		workerLogger := logger.With("worker_id", workerID, "op", node.Name())

		// Dispatch was halted after this node became ready.
		if ctx.Err() != nil {
			if node.skip(ctx.Err()) {
				workerLogger.Warn("Run halted, skipping operator.")
				e.wg.Done()
				e.skipDependents(ctx, node)
			}
			continue
		}

		workerLogger.Debug("Worker picked up operator.")
		node.setState(Running)
		err := node.Op.Run(ctx)

		if err != nil {
			workerLogger.Error("Operator failed.", "error", err)
			node.fail(err)
			cancel()
			e.skipDependents(ctx, node)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Operator succeeded.")
		node.setState(Done)

		// The atomic decrement orders this node's completion before the
		// dispatch of any child that observes zero.
		for _, dependent := range node.Dependents {
			if dependent.pending.Add(-1) == 0 {
				workerLogger.Debug("Unlocking dependent operator.", "dependent", dependent.Name())
				readyChan <- dependent
			}
		}

		e.wg.Done()
	}
	logger.Debug("Worker finished.", "worker_id", workerID)
}

// skipDependents recursively marks all downstream nodes as skipped. The
// skip transition is a compare-and-swap from Pending, so a node reached
// through several failed ancestors is accounted for exactly once.
func (e *Executor) skipDependents(ctx context.Context, node *Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		if dependent.skip(fmt.Errorf("skipped due to upstream failure of %q", node.Name())) {
			logger.Warn("Skipping operator due to upstream failure.", "op", dependent.Name(), "upstream", node.Name())
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		}
	}
}
