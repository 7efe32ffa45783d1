package copyblob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
	"github.com/ms/opnet/modules/copyblob"
)

func newOp(t *testing.T, ws *workspace.Workspace, inputs, outputs []string) registry.Operator {
	t.Helper()
	r := registry.New()
	(&copyblob.Module{}).Register(r)
	op, err := r.NewOperator(context.Background(), &config.OperatorDef{
		Name: "c", Type: "Copy", Inputs: inputs, Outputs: outputs,
	}, ws)
	require.NoError(t, err)
	return op
}

func TestCopy_VectorIsDeepCopied(t *testing.T) {
	t.Parallel()
	ws := workspace.New()
	ws.Set("src", []float64{1, 2, 3})

	op := newOp(t, ws, []string{"src"}, []string{"dst"})
	require.NoError(t, op.Run(context.Background()))

	dst, ok := ws.Get("dst")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, dst)

	// Mutating the copy leaves the source untouched.
	dst.([]float64)[0] = 99
	src, _ := ws.Get("src")
	assert.Equal(t, []float64{1, 2, 3}, src)
}

func TestCopy_FanOut(t *testing.T) {
	t.Parallel()
	ws := workspace.New()
	ws.Set("src", []float64{7})

	op := newOp(t, ws, []string{"src"}, []string{"a", "b"})
	require.NoError(t, op.Run(context.Background()))

	a, _ := ws.Get("a")
	b, _ := ws.Get("b")
	assert.Equal(t, []float64{7}, a)
	assert.Equal(t, []float64{7}, b)
}

func TestCopy_MissingInput(t *testing.T) {
	t.Parallel()
	op := newOp(t, workspace.New(), []string{"absent"}, []string{"dst"})

	err := op.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
}

func TestCopy_DeclarationValidation(t *testing.T) {
	t.Parallel()
	r := registry.New()
	(&copyblob.Module{}).Register(r)

	_, err := r.NewOperator(context.Background(), &config.OperatorDef{
		Name: "c", Type: "Copy", Outputs: []string{"dst"},
	}, workspace.New())
	require.Error(t, err)

	_, err = r.NewOperator(context.Background(), &config.OperatorDef{
		Name: "c", Type: "Copy", Inputs: []string{"src"},
	}, workspace.New())
	require.Error(t, err)
}
