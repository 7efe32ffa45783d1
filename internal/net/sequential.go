package net

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
	"github.com/ms/opnet/internal/registry"
)

// sequentialNet runs operators strictly in declaration order with no
// parallelism. It is the semantics oracle for the dag strategy: any valid
// parallel schedule must leave the workspace in the same final state.
type sequentialNet struct {
	name string
	defs []*config.OperatorDef
	ops  []registry.Operator
}

func (n *sequentialNet) Name() string {
	return n.name
}

// Run executes each operator in order. The first failure aborts the
// remaining declared order immediately.
func (n *sequentialNet) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	res := &Result{RunID: uuid.New()}

	for i, op := range n.ops {
		def := n.defs[i]
		if err := ctx.Err(); err != nil {
			for _, rest := range n.defs[i:] {
				res.Skipped = append(res.Skipped, rest.Name)
			}
			res.Duration = time.Since(start)
			return res, err
		}

		logger.Debug("Running operator.", "op", def.Name)
		if err := op.Run(ctx); err != nil {
			logger.Error("Operator failed.", "op", def.Name, "error", err)
			res.Failed = append(res.Failed, def.Name)
			for _, rest := range n.defs[i+1:] {
				res.Skipped = append(res.Skipped, rest.Name)
			}
			res.Duration = time.Since(start)
			return res, fmt.Errorf("execution failed for %s: %w", def.Name, err)
		}
		res.Completed = append(res.Completed, def.Name)
	}

	res.Duration = time.Since(start)
	return res, nil
}
