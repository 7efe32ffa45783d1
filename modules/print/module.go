// Package print provides the Print operator: it logs the current value of
// each of its input blobs. It has no outputs and therefore never forces an
// ordering on anything downstream.
package print

import (
	"context"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
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
	return &op{def: def, ws: ws}, nil
}

func (o *op) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, in := range o.def.Inputs {
		value, ok := o.ws.Get(in)
		if !ok {
			logger.Warn("Blob does not exist.", "op", o.def.Name, "blob", in)
			continue
		}
		logger.Info("Blob contents.", "op", o.def.Name, "blob", in, "value", value)
	}
	return nil
}

// Register registers the operator factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperator("Print", newOperator)
}
