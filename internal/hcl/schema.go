package hcl

import "github.com/hashicorp/hcl/v2"

// netFile represents the top-level structure of a network definition file.
type netFile struct {
	Nets []*netBlock `hcl:"net,block"`
	Body hcl.Body    `hcl:",remain"`
}

// netBlock represents a `net` block: one named network with its execution
// parameters and ordered operator declarations.
type netBlock struct {
	Name    string     `hcl:"name,label"`
	Type    string     `hcl:"type,optional"`
	Workers int        `hcl:"workers,optional"`
	Ops     []*opBlock `hcl:"op,block"`
}

// opBlock represents an `op` block: a single operator declaration.
type opBlock struct {
	Type          string     `hcl:"op_type,label"`
	Name          string     `hcl:"op_name,label"`
	Inputs        []string   `hcl:"inputs,optional"`
	Outputs       []string   `hcl:"outputs,optional"`
	ControlInputs []string   `hcl:"control_inputs,optional"`
	Arguments     *argsBlock `hcl:"arguments,block"`
}

// argsBlock represents the content of the `arguments` block within an op.
type argsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
