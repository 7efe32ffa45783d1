// Package fill provides the Fill operator: it writes a constant float64
// vector to each of its output blobs.
package fill

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
	def   *config.OperatorDef
	ws    *workspace.Workspace
	value float64
	size  int
}

func newOperator(_ context.Context, def *config.OperatorDef, ws *workspace.Workspace) (registry.Operator, error) {
	if len(def.Outputs) == 0 {
		return nil, fmt.Errorf("operator %q: Fill requires at least one output blob", def.Name)
	}

	var value float64
	if _, ok := def.Arg("value"); ok {
		if err := def.DecodeArg("value", &value); err != nil {
			return nil, err
		}
	}

	size := 1
	if _, ok := def.Arg("size"); ok {
		if err := def.DecodeArg("size", &size); err != nil {
			return nil, err
		}
	}
	if size < 1 {
		return nil, fmt.Errorf("operator %q: size must be at least 1, got %d", def.Name, size)
	}

	return &op{def: def, ws: ws, value: value, size: size}, nil
}

func (o *op) Run(ctx context.Context) error {
	for _, out := range o.def.Outputs {
		vec := make([]float64, o.size)
		for i := range vec {
			vec[i] = o.value
		}
		o.ws.Set(out, vec)
	}
	return nil
}

// Register registers the operator factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperator("Fill", newOperator)
}
