package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// NetDef is the unified representation of one network definition: a named,
// ordered list of operator declarations plus execution parameters.
//
// Declaration order is significant. The dependency graph builder derives
// hazard edges from the order in which operators touch blobs, so Ops must be
// kept exactly as declared in the source file.
type NetDef struct {
	// Name identifies the network.
	Name string
	// Type selects the execution strategy, e.g. "dag" or "sequential".
	// Empty means the engine default.
	Type string
	// Workers bounds the executor's worker pool. Zero or negative means the
	// engine default.
	Workers int
	// Ops is the ordered list of operator declarations.
	Ops []*OperatorDef
}

// OperatorDef is the immutable declaration of a single operator: which
// blobs it reads and writes, which operators it explicitly follows, and an
// opaque argument bag. It carries no behavior; the registry resolves Type
// to a runnable instance.
type OperatorDef struct {
	// Name is the operator's unique name within the network.
	Name string
	// Type identifies the operator implementation in the registry.
	Type string
	// Inputs is the ordered list of blob names this operator reads.
	Inputs []string
	// Outputs is the ordered list of blob names this operator writes.
	Outputs []string
	// ControlInputs names previously declared operators that must complete
	// before this one runs, independent of any shared blob.
	ControlInputs []string
	// Args holds the operator's arguments as evaluated values.
	Args map[string]cty.Value
}

// Arg returns the named argument value and whether it was declared.
func (d *OperatorDef) Arg(name string) (cty.Value, bool) {
	v, ok := d.Args[name]
	return v, ok
}

// DecodeArg converts the named argument into the Go value pointed to by out,
// applying standard cty conversions (e.g. number to int). It returns an
// error if the argument is missing or not convertible.
func (d *OperatorDef) DecodeArg(name string, out any) error {
	v, ok := d.Args[name]
	if !ok {
		return fmt.Errorf("operator %q: missing argument %q", d.Name, name)
	}
	ty, err := gocty.ImpliedType(out)
	if err != nil {
		return fmt.Errorf("operator %q: argument %q: unsupported target type: %w", d.Name, name, err)
	}
	converted, err := convert.Convert(v, ty)
	if err != nil {
		return fmt.Errorf("operator %q: argument %q: %w", d.Name, name, err)
	}
	if err := gocty.FromCtyValue(converted, out); err != nil {
		return fmt.Errorf("operator %q: argument %q: %w", d.Name, name, err)
	}
	return nil
}
