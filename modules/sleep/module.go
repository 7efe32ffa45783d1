// Package sleep provides the Sleep operator: it blocks for a configured
// number of milliseconds and writes its start and end timestamps to each of
// its output blobs. It exists mostly to exercise the scheduler; the
// recorded timestamps let tests assert happens-before relations between
// operators.
package sleep

import (
	"context"
	"fmt"
	"time"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
)

// Span records when one Sleep operator started and finished.
type Span struct {
	Start time.Time
	End   time.Time
}

// Module implements the registry.Module interface for this package.
type Module struct{}

type op struct {
	def *config.OperatorDef
	ws  *workspace.Workspace
	ms  int
}

func newOperator(_ context.Context, def *config.OperatorDef, ws *workspace.Workspace) (registry.Operator, error) {
	ms := 1000
	if _, ok := def.Arg("ms"); ok {
		if err := def.DecodeArg("ms", &ms); err != nil {
			return nil, err
		}
	}
	if ms <= 0 {
		return nil, fmt.Errorf("operator %q: ms must be positive, got %d", def.Name, ms)
	}
	return &op{def: def, ws: ws, ms: ms}, nil
}

// Run sleeps for the configured duration. The sleep is not interrupted by
// context cancellation: once dispatched, the operator is committed and the
// scheduler awaits it.
func (o *op) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Sleeping.", "op", o.def.Name, "ms", o.ms)

	start := time.Now()
	time.Sleep(time.Duration(o.ms) * time.Millisecond)
	end := time.Now()

	for _, out := range o.def.Outputs {
		o.ws.Set(out, Span{Start: start, End: end})
	}
	return nil
}

// Register registers the operator factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperator("Sleep", newOperator)
}
