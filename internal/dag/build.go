package dag

import (
	"context"
	"fmt"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
)

// Build constructs a complete, validated dependency graph from a network
// definition, resolving each operator type through the registry. On any
// construction error no partial graph is returned.
func Build(ctx context.Context, def *config.NetDef, r *registry.Registry, ws *workspace.Workspace) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "net", def.Name)

	graph := &Graph{byName: make(map[string]*Node, len(def.Ops))}

	// First pass: create all nodes in declaration order.
	if err := createNodes(ctx, def, graph, r, ws); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.Nodes))

	// Second pass: link hazard and control dependencies.
	if err := linkNodes(ctx, graph); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	// Third pass: initialize counters.
	for _, node := range graph.Nodes {
		node.reset()
	}

	if err := graph.detectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}

// createNodes performs the first pass of graph creation, instantiating one
// runnable operator per declaration.
func createNodes(ctx context.Context, def *config.NetDef, graph *Graph, r *registry.Registry, ws *workspace.Workspace) error {
	for i, opDef := range def.Ops {
		if _, exists := graph.byName[opDef.Name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateOperator, opDef.Name)
		}
		op, err := r.NewOperator(ctx, opDef, ws)
		if err != nil {
			return err
		}
		node := &Node{
			Index:      i,
			Def:        opDef,
			Op:         op,
			Deps:       make(map[string]*Node),
			Dependents: make(map[string]*Node),
		}
		graph.Nodes = append(graph.Nodes, node)
		graph.byName[opDef.Name] = node
	}
	return nil
}

// detectCycles checks for circular dependencies in the graph using DFS.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(node *Node) error
	visit = func(node *Node) error {
		visiting[node.Name()] = true
		for _, dep := range node.Deps {
			if visiting[dep.Name()] {
				return fmt.Errorf("%w involving %q", ErrCycle, dep.Name())
			}
			if !visited[dep.Name()] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, node.Name())
		visited[node.Name()] = true
		return nil
	}

	for _, node := range g.Nodes {
		if !visited[node.Name()] {
			if err := visit(node); err != nil {
				return err
			}
		}
	}
	return nil
}
