// Package sum provides the Sum operator: it reads float64 vectors from its
// input blobs and writes their element-wise sum to its output blob.
package sum

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
	if len(def.Inputs) == 0 {
		return nil, fmt.Errorf("operator %q: Sum requires at least one input blob", def.Name)
	}
	if len(def.Outputs) != 1 {
		return nil, fmt.Errorf("operator %q: Sum requires exactly one output blob", def.Name)
	}
	return &op{def: def, ws: ws}, nil
}

func (o *op) Run(ctx context.Context) error {
	var acc []float64
	for _, in := range o.def.Inputs {
		raw, ok := o.ws.Get(in)
		if !ok {
			return fmt.Errorf("operator %q: input blob %q does not exist", o.def.Name, in)
		}
		vec, ok := raw.([]float64)
		if !ok {
			return fmt.Errorf("operator %q: input blob %q holds %T, want []float64", o.def.Name, in, raw)
		}
		if acc == nil {
			acc = make([]float64, len(vec))
		}
		if len(vec) != len(acc) {
			return fmt.Errorf("operator %q: input blob %q has length %d, want %d", o.def.Name, in, len(vec), len(acc))
		}
		for i, v := range vec {
			acc[i] += v
		}
	}
	o.ws.Set(o.def.Outputs[0], acc)
	return nil
}

// Register registers the operator factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperator("Sum", newOperator)
}
