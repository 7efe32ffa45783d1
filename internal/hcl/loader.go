// Package hcl provides the HCL frontend for network definitions. It parses
// a `net` block with its ordered `op` blocks and translates them into the
// format-agnostic config model. Operator arguments are evaluated statically
// at load time; there is no runtime expression context.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the network definition file at path and translates it into
// the format-agnostic model. The file must contain exactly one net block.
func (l *Loader) Load(ctx context.Context, path string) (*config.NetDef, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding net definition file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	var parsed netFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", path, diags.Error())
	}

	if len(parsed.Nets) != 1 {
		return nil, fmt.Errorf("file %s must define exactly one net block, found %d", path, len(parsed.Nets))
	}

	def, err := l.translateNet(parsed.Nets[0])
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	logger.Debug("Successfully decoded net definition.", "net", def.Name, "operators", len(def.Ops))
	return def, nil
}

// translateNet converts the HCL schema structs into the agnostic model.
func (l *Loader) translateNet(n *netBlock) (*config.NetDef, error) {
	def := &config.NetDef{
		Name:    n.Name,
		Type:    n.Type,
		Workers: n.Workers,
		Ops:     make([]*config.OperatorDef, 0, len(n.Ops)),
	}
	for _, op := range n.Ops {
		args, err := l.evalArguments(op)
		if err != nil {
			return nil, err
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
	return def, nil
}

// evalArguments statically evaluates every attribute of an op's arguments
// block into a cty.Value bag.
func (l *Loader) evalArguments(op *opBlock) (map[string]cty.Value, error) {
	args := make(map[string]cty.Value)
	if op.Arguments == nil {
		return args, nil
	}

	attrs, diags := op.Arguments.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("operator %q: invalid arguments block: %s", op.Name, diags.Error())
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("operator %q: argument %q: %s", op.Name, name, diags.Error())
		}
		args[name] = val
	}
	return args, nil
}
