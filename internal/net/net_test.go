package net_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/net"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
	"github.com/ms/opnet/modules/copyblob"
	"github.com/ms/opnet/modules/fill"
	"github.com/ms/opnet/modules/sleep"
	"github.com/ms/opnet/modules/sum"
)

func newRegistry() *registry.Registry {
	r := registry.New()
	(&sleep.Module{}).Register(r)
	(&fill.Module{}).Register(r)
	(&sum.Module{}).Register(r)
	(&copyblob.Module{}).Register(r)
	return r
}

func sleepOp(name string, ms int, inputs, outputs, controlInputs []string) *config.OperatorDef {
	return &config.OperatorDef{
		Name:          name,
		Type:          "Sleep",
		Inputs:        inputs,
		Outputs:       outputs,
		ControlInputs: controlInputs,
		Args:          map[string]cty.Value{"ms": cty.NumberIntVal(int64(ms))},
	}
}

func run(t *testing.T, netType string, ops ...*config.OperatorDef) (*net.Result, *workspace.Workspace) {
	t.Helper()
	ws := workspace.New()
	def := &config.NetDef{Name: "test", Type: netType, Workers: 4, Ops: ops}
	n, err := net.Create(context.Background(), def, ws, newRegistry())
	require.NoError(t, err)
	res, err := n.Run(context.Background())
	require.NoError(t, err)
	return res, ws
}

// The timing matrix: three sleeps of 100ms, 100ms and 150ms in hazard
// configurations that exercise each inferred edge kind. The wall time of the
// dag run reveals which operators were serialized. Bounds are deliberately
// loose around the ideal critical path to tolerate scheduler jitter; the gap
// between 250ms and 350ms configurations is what the assertions pin down.
func TestDagNet_TimingMatrix(t *testing.T) {
	cases := []struct {
		name    string
		ops     []*config.OperatorDef
		minWall time.Duration
		maxWall time.Duration
	}{
		{
			// sleep3 shares no blob with the chain and overlaps it fully.
			name: "independent operator runs in parallel",
			ops: []*config.OperatorDef{
				sleepOp("sleep1", 100, nil, []string{"blob1"}, nil),
				sleepOp("sleep2", 100, []string{"blob1"}, []string{"blob2"}, nil),
				sleepOp("sleep3", 150, nil, []string{"blob3"}, nil),
			},
			minWall: 200 * time.Millisecond,
			maxWall: 330 * time.Millisecond,
		},
		{
			// Two readers of the same blob do not serialize each other.
			name: "shared read adds no edge",
			ops: []*config.OperatorDef{
				sleepOp("sleep1", 100, nil, []string{"blob1"}, nil),
				sleepOp("sleep2", 100, []string{"blob1"}, []string{"blob2"}, nil),
				sleepOp("sleep3", 150, []string{"blob1"}, []string{"blob3"}, nil),
			},
			minWall: 250 * time.Millisecond,
			maxWall: 330 * time.Millisecond,
		},
		{
			// sleep3 rewrites blob1, so it must wait for the earlier writer
			// and for blob1's reader.
			name: "rewriting a blob serializes behind writer and readers",
			ops: []*config.OperatorDef{
				sleepOp("sleep1", 100, nil, []string{"blob1"}, nil),
				sleepOp("sleep2", 100, []string{"blob1"}, []string{"blob2"}, nil),
				sleepOp("sleep3", 150, nil, []string{"blob1"}, nil),
			},
			minWall: 350 * time.Millisecond,
		},
		{
			// Same shape with sleep3 also reading: the read adds a direct
			// edge from the writer on top of the anti-dependency.
			name: "read and rewrite serializes the whole chain",
			ops: []*config.OperatorDef{
				sleepOp("sleep1", 100, nil, []string{"blob1"}, nil),
				sleepOp("sleep2", 100, []string{"blob1"}, []string{"blob2"}, nil),
				sleepOp("sleep3", 150, []string{"blob2"}, []string{"blob1"}, nil),
			},
			minWall: 350 * time.Millisecond,
		},
		{
			// sleep2 follows sleep1 by control edge only; rewriting sleep1's
			// output must still wait for sleep2, which observed it.
			name: "control dependent holds back a rewrite",
			ops: []*config.OperatorDef{
				sleepOp("sleep1", 100, nil, []string{"blob1"}, nil),
				sleepOp("sleep2", 100, nil, []string{"blob2"}, []string{"sleep1"}),
				sleepOp("sleep3", 150, nil, []string{"blob1"}, nil),
			},
			minWall: 350 * time.Millisecond,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, _ := run(t, net.TypeDAG, tc.ops...)

			assert.ElementsMatch(t, []string{"sleep1", "sleep2", "sleep3"}, res.Completed)
			assert.GreaterOrEqual(t, res.Duration, tc.minWall)
			if tc.maxWall > 0 {
				assert.Less(t, res.Duration, tc.maxWall)
			}
		})
	}
}

func TestSequentialNet_RunsEverythingInOrder(t *testing.T) {
	t.Parallel()
	res, ws := run(t, net.TypeSequential,
		sleepOp("sleep1", 100, nil, []string{"blob1"}, nil),
		sleepOp("sleep2", 100, []string{"blob1"}, []string{"blob2"}, nil),
		sleepOp("sleep3", 150, nil, []string{"blob3"}, nil),
	)

	assert.Equal(t, []string{"sleep1", "sleep2", "sleep3"}, res.Completed)
	assert.GreaterOrEqual(t, res.Duration, 350*time.Millisecond)

	// Declaration order is execution order even without shared blobs.
	blob2, ok := ws.Get("blob2")
	require.True(t, ok)
	blob3, ok := ws.Get("blob3")
	require.True(t, ok)
	assert.False(t, blob3.(sleep.Span).Start.Before(blob2.(sleep.Span).End))
}

// Both strategies must leave the workspace in the same final state for a
// data-flow pipeline with a rewritten intermediate blob.
func TestDagNet_MatchesSequentialSemantics(t *testing.T) {
	t.Parallel()
	pipeline := func() []*config.OperatorDef {
		fillOp := func(name string, value float64, out string) *config.OperatorDef {
			return &config.OperatorDef{
				Name: name, Type: "Fill", Outputs: []string{out},
				Args: map[string]cty.Value{
					"value": cty.NumberFloatVal(value),
					"size":  cty.NumberIntVal(4),
				},
			}
		}
		return []*config.OperatorDef{
			fillOp("fill_a", 1.5, "a"),
			fillOp("fill_b", 2.0, "b"),
			{Name: "add_ab", Type: "Sum", Inputs: []string{"a", "b"}, Outputs: []string{"c"}},
			{Name: "keep_c", Type: "Copy", Inputs: []string{"c"}, Outputs: []string{"c_before"}},
			// Rewrite c in place; the copy above must see the old value.
			{Name: "double_c", Type: "Sum", Inputs: []string{"c", "c"}, Outputs: []string{"c"}},
		}
	}

	_, seqWS := run(t, net.TypeSequential, pipeline()...)
	_, dagWS := run(t, net.TypeDAG, pipeline()...)

	require.Equal(t, seqWS.Names(), dagWS.Names())
	for _, name := range seqWS.Names() {
		seqVal, _ := seqWS.Get(name)
		dagVal, _ := dagWS.Get(name)
		assert.Equal(t, seqVal, dagVal, "blob %q diverged between strategies", name)
	}

	cBefore, _ := dagWS.Get("c_before")
	assert.Equal(t, []float64{3.5, 3.5, 3.5, 3.5}, cBefore)
	c, _ := dagWS.Get("c")
	assert.Equal(t, []float64{7, 7, 7, 7}, c)
}

func TestDagNet_ReportsFailureOutcome(t *testing.T) {
	t.Parallel()
	ws := workspace.New()
	def := &config.NetDef{
		Name: "failing",
		Type: net.TypeDAG,
		Ops: []*config.OperatorDef{
			// Sum with a missing input blob fails at run time.
			{Name: "bad_sum", Type: "Sum", Inputs: []string{"missing"}, Outputs: []string{"out"}},
			{Name: "downstream", Type: "Copy", Inputs: []string{"out"}, Outputs: []string{"copy"}},
		},
	}
	n, err := net.Create(context.Background(), def, ws, newRegistry())
	require.NoError(t, err)

	res, err := n.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_sum")
	assert.Equal(t, []string{"bad_sum"}, res.Failed)
	assert.Equal(t, []string{"downstream"}, res.Skipped)
	assert.Empty(t, res.Completed)
}

func TestCreate_DefaultsToDagStrategy(t *testing.T) {
	t.Parallel()
	def := &config.NetDef{
		Name: "defaulted",
		Ops:  []*config.OperatorDef{sleepOp("only", 1, nil, []string{"x"}, nil)},
	}
	n, err := net.Create(context.Background(), def, workspace.New(), newRegistry())
	require.NoError(t, err)
	assert.Equal(t, "defaulted", n.Name())

	res, err := n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, res.Completed)
	assert.NotEqual(t, res.RunID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestCreate_UnknownStrategy(t *testing.T) {
	t.Parallel()
	def := &config.NetDef{Name: "bad", Type: "async"}
	_, err := net.Create(context.Background(), def, workspace.New(), newRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "async")
}

func TestCreate_UnknownOperatorType(t *testing.T) {
	t.Parallel()
	for _, netType := range []string{net.TypeDAG, net.TypeSequential} {
		def := &config.NetDef{
			Name: "bad",
			Type: netType,
			Ops:  []*config.OperatorDef{{Name: "mystery", Type: "Conv"}},
		}
		_, err := net.Create(context.Background(), def, workspace.New(), newRegistry())
		require.Error(t, err, "strategy %s", netType)
		assert.Contains(t, err.Error(), "Conv")
	}
}
