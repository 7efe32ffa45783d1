// Package yamlcfg provides the YAML frontend for network definitions. It
// accepts the same model as the HCL frontend:
//
//	name: sleepnet
//	type: dag
//	workers: 2
//	ops:
//	  - name: sleep1
//	    type: Sleep
//	    outputs: [sleep1]
//	    arguments:
//	      ms: 100
package yamlcfg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
)

// netDoc is the YAML document structure for one network definition.
type netDoc struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Workers int      `yaml:"workers"`
	Ops     []*opDoc `yaml:"ops"`
}

// opDoc is the YAML structure for a single operator declaration.
type opDoc struct {
	Name          string         `yaml:"name"`
	Type          string         `yaml:"type"`
	Inputs        []string       `yaml:"inputs"`
	Outputs       []string       `yaml:"outputs"`
	ControlInputs []string       `yaml:"control_inputs"`
	Arguments     map[string]any `yaml:"arguments"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the network definition file at path and translates it into
// the format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.NetDef, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding net definition file.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var doc netDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("file %s: net definition is missing a name", path)
	}

	def := &config.NetDef{
		Name:    doc.Name,
		Type:    doc.Type,
		Workers: doc.Workers,
		Ops:     make([]*config.OperatorDef, 0, len(doc.Ops)),
	}
	for _, op := range doc.Ops {
		args, err := translateArguments(op)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", path, err)
		}
		def.Ops = append(def.Ops, &config.OperatorDef{
			Name:          op.Name,
			Type:          op.Type,
			Inputs:        op.Inputs,
			Outputs:       op.Outputs,
			ControlInputs: op.ControlInputs,
			Args:          args,
		})
	}

	logger.Debug("Successfully decoded net definition.", "net", def.Name, "operators", len(def.Ops))
	return def, nil
}

// translateArguments converts an op's YAML argument values into cty values,
// so both frontends hand the registry identical argument bags.
func translateArguments(op *opDoc) (map[string]cty.Value, error) {
	args := make(map[string]cty.Value, len(op.Arguments))
	for name, raw := range op.Arguments {
		val, err := goToCty(raw)
		if err != nil {
			return nil, fmt.Errorf("operator %q: argument %q: %w", op.Name, name, err)
		}
		args[name] = val
	}
	return args, nil
}

// goToCty converts a decoded YAML value into a cty.Value by round-tripping
// through JSON, which gives us cty's implied-type rules for free.
func goToCty(v any) (cty.Value, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return cty.NilVal, err
	}
	ty, err := ctyjson.ImpliedType(buf)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(buf, ty)
}
