// Package copyblob provides the Copy operator: it copies the value of its
// input blob to each of its output blobs. Float64 vectors are deep-copied
// so a later in-place write to the destination cannot alias the source.
package copyblob

import (
	"context"
	"fmt"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

type op struct {
	def *config.OperatorDef
	ws  *workspace.Workspace
}

func newOperator(_ context.Context, def *config.OperatorDef, ws *workspace.Workspace) (registry.Operator, error) {
	if len(def.Inputs) != 1 {
		return nil, fmt.Errorf("operator %q: Copy requires exactly one input blob", def.Name)
	}
	if len(def.Outputs) == 0 {
		return nil, fmt.Errorf("operator %q: Copy requires at least one output blob", def.Name)
	}
	return &op{def: def, ws: ws}, nil
}

func (o *op) Run(ctx context.Context) error {
	raw, ok := o.ws.Get(o.def.Inputs[0])
	if !ok {
		return fmt.Errorf("operator %q: input blob %q does not exist", o.def.Name, o.def.Inputs[0])
	}
	for _, out := range o.def.Outputs {
		o.ws.Set(out, clone(raw))
	}
	return nil
}

func clone(v any) any {
	if vec, ok := v.([]float64); ok {
		out := make([]float64, len(vec))
		copy(out, vec)
		return out
	}
	return v
}

// Register registers the operator factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperator("Copy", newOperator)
}
