package net

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ms/opnet/internal/dag"
)

// dagNet executes its graph with the concurrent DAG executor.
type dagNet struct {
	name    string
	graph   *dag.Graph
	workers int
}

func (n *dagNet) Name() string {
	return n.name
}

func (n *dagNet) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	exec := dag.NewExecutor(n.graph, n.workers)
	runErr := exec.Run(ctx)

	res := &Result{RunID: uuid.New(), Duration: time.Since(start)}
	for _, node := range n.graph.Nodes {
		switch node.State() {
		case dag.Done:
			res.Completed = append(res.Completed, node.Name())
		case dag.Failed:
			res.Failed = append(res.Failed, node.Name())
		default:
			res.Skipped = append(res.Skipped, node.Name())
		}
	}
	return res, runErr
}
