package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
)

type nopOperator struct{}

func (nopOperator) Run(context.Context) error { return nil }

func nopFactory(context.Context, *config.OperatorDef, *workspace.Workspace) (registry.Operator, error) {
	return nopOperator{}, nil
}

func TestRegistry_ResolvesRegisteredType(t *testing.T) {
	t.Parallel()
	r := registry.New()
	r.RegisterOperator("Nop", nopFactory)

	op, err := r.NewOperator(context.Background(), &config.OperatorDef{Name: "n", Type: "Nop"}, workspace.New())
	require.NoError(t, err)
	assert.NoError(t, op.Run(context.Background()))
}

func TestRegistry_UnknownType(t *testing.T) {
	t.Parallel()
	r := registry.New()

	_, err := r.NewOperator(context.Background(), &config.OperatorDef{Name: "n", Type: "Conv"}, workspace.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Conv")
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()
	r := registry.New()
	r.RegisterOperator("Nop", nopFactory)

	assert.PanicsWithValue(t, "operator type 'Nop' already registered", func() {
		r.RegisterOperator("Nop", nopFactory)
	})
}

func TestRegistry_FactoryErrorIsWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("bad argument")
	r := registry.New()
	r.RegisterOperator("Broken", func(context.Context, *config.OperatorDef, *workspace.Workspace) (registry.Operator, error) {
		return nil, boom
	})

	_, err := r.NewOperator(context.Background(), &config.OperatorDef{Name: "b", Type: "Broken"}, workspace.New())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestRegistry_TypesSorted(t *testing.T) {
	t.Parallel()
	r := registry.New()
	r.RegisterOperator("Sum", nopFactory)
	r.RegisterOperator("Copy", nopFactory)
	r.RegisterOperator("Fill", nopFactory)

	assert.Equal(t, []string{"Copy", "Fill", "Sum"}, r.Types())
}
