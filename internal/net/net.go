// Package net turns a network definition into a runnable net: either the
// parallel DAG strategy backed by the dependency graph executor, or the
// strictly sequential baseline used as a correctness oracle.
package net

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
	"github.com/ms/opnet/internal/dag"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
)

// Execution strategy identifiers accepted in a network definition.
const (
	// TypeDAG executes independent operators concurrently on a worker pool.
	TypeDAG = "dag"
	// TypeSequential executes operators strictly in declaration order.
	TypeSequential = "sequential"
)

// Net is a constructed, runnable network. A Net may be run repeatedly; each
// run resets transient scheduling state first.
type Net interface {
	// Name returns the network's name from its definition.
	Name() string
	// Run executes the network and reports per-operator outcomes. The
	// error, if any, wraps the first root-cause operator failure.
	Run(ctx context.Context) (*Result, error)
}

// Result summarizes one run of a net.
type Result struct {
	// RunID uniquely identifies this run.
	RunID uuid.UUID
	// Completed names the operators that ran and succeeded.
	Completed []string
	// Failed names the operators that ran and reported an error.
	Failed []string
	// Skipped names the operators that were never dispatched because an
	// ancestor failed or the run was halted.
	Skipped []string
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Create constructs a net for the given definition, resolving every
// operator through the registry. Construction fails fast: an unknown
// operator type, a duplicate name, or an invalid dependency structure
// returns an error before any side effect on the workspace.
func Create(ctx context.Context, def *config.NetDef, ws *workspace.Workspace, reg *registry.Registry) (Net, error) {
	logger := ctxlog.FromContext(ctx)

	netType := def.Type
	if netType == "" {
		netType = TypeDAG
	}

	switch netType {
	case TypeDAG:
		graph, err := dag.Build(ctx, def, reg, ws)
		if err != nil {
			return nil, fmt.Errorf("building net %q: %w", def.Name, err)
		}
		workers := def.Workers
		if workers < 1 {
			workers = runtime.NumCPU()
		}
		logger.Debug("Created dag net.", "net", def.Name, "nodes", len(graph.Nodes), "workers", workers)
		return &dagNet{name: def.Name, graph: graph, workers: workers}, nil

	case TypeSequential:
		ops := make([]registry.Operator, 0, len(def.Ops))
		for _, opDef := range def.Ops {
			op, err := reg.NewOperator(ctx, opDef, ws)
			if err != nil {
				return nil, fmt.Errorf("building net %q: %w", def.Name, err)
			}
			ops = append(ops, op)
		}
		logger.Debug("Created sequential net.", "net", def.Name, "operators", len(ops))
		return &sequentialNet{name: def.Name, defs: def.Ops, ops: ops}, nil

	default:
		return nil, fmt.Errorf("net %q: unknown execution strategy %q", def.Name, netType)
	}
}
