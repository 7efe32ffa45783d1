package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/workspace"
)

// Operator is the run contract for a single operator instance. The scheduler
// treats Run as a black-box blocking call and only observes its error.
type Operator interface {
	Run(ctx context.Context) error
}

// Factory produces a runnable operator instance from its declaration and
// the workspace it will read and write.
type Factory func(ctx context.Context, def *config.OperatorDef, ws *workspace.Workspace) (Operator, error)

// Module is the interface that operator packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the operator factories for a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// RegisterOperator registers a factory for an operator type. Registering the
// same type twice is a programmer error and panics.
func (r *Registry) RegisterOperator(opType string, factory Factory) {
	if _, exists := r.factories[opType]; exists {
		panic(fmt.Sprintf("operator type '%s' already registered", opType))
	}
	slog.Debug("Registering operator factory.", "type", opType)
	r.factories[opType] = factory
}

// NewOperator resolves the declaration's type to a factory and instantiates
// the operator. Unknown types are an error.
func (r *Registry) NewOperator(ctx context.Context, def *config.OperatorDef, ws *workspace.Workspace) (Operator, error) {
	factory, ok := r.factories[def.Type]
	if !ok {
		return nil, fmt.Errorf("unknown operator type '%s' for operator %q", def.Type, def.Name)
	}
	op, err := factory(ctx, def, ws)
	if err != nil {
		return nil, fmt.Errorf("creating operator %q: %w", def.Name, err)
	}
	return op, nil
}

// Types returns all registered operator type identifiers, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
