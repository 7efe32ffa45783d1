package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/ms/opnet/internal/config"
)

func TestOperatorDef_Arg(t *testing.T) {
	t.Parallel()
	def := &config.OperatorDef{
		Name: "op",
		Args: map[string]cty.Value{"ms": cty.NumberIntVal(250)},
	}

	v, ok := def.Arg("ms")
	assert.True(t, ok)
	assert.Equal(t, cty.NumberIntVal(250), v)

	_, ok = def.Arg("missing")
	assert.False(t, ok)
}

func TestOperatorDef_DecodeArg(t *testing.T) {
	t.Parallel()
	def := &config.OperatorDef{
		Name: "op",
		Args: map[string]cty.Value{
			"ms":    cty.NumberIntVal(250),
			"label": cty.StringVal("probe"),
			"ratio": cty.NumberFloatVal(0.25),
		},
	}

	var ms int
	require.NoError(t, def.DecodeArg("ms", &ms))
	assert.Equal(t, 250, ms)

	var label string
	require.NoError(t, def.DecodeArg("label", &label))
	assert.Equal(t, "probe", label)

	var ratio float64
	require.NoError(t, def.DecodeArg("ratio", &ratio))
	assert.Equal(t, 0.25, ratio)

	// Standard cty conversions apply: a whole number decodes into a float.
	var msFloat float64
	require.NoError(t, def.DecodeArg("ms", &msFloat))
	assert.Equal(t, 250.0, msFloat)
}

func TestOperatorDef_DecodeArgErrors(t *testing.T) {
	t.Parallel()
	def := &config.OperatorDef{
		Name: "op",
		Args: map[string]cty.Value{"label": cty.StringVal("probe")},
	}

	var out int
	err := def.DecodeArg("missing", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing argument")

	err = def.DecodeArg("label", &out)
	require.Error(t, err)
}
