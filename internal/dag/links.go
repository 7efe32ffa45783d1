package dag

import (
	"context"
	"fmt"

	"github.com/ms/opnet/internal/ctxlog"
)

// blobState tracks one blob's access history during the linking pass. It is
// discarded once edges are fixed.
type blobState struct {
	// lastWriter is the most recent node to write the blob, if any.
	lastWriter *Node
	// readers holds every node that read the blob since lastWriter wrote it.
	readers []*Node
}

// linkNodes performs the second pass, inferring hazard edges from blob
// access patterns and adding explicit control edges.
//
// The pass must visit declarations in their original order: "last writer"
// and "readers since last write" are defined relative to that order, so the
// edge set depends on it.
func linkNodes(ctx context.Context, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node linking pass.")

	blobs := make(map[string]*blobState)
	state := func(name string) *blobState {
		s, ok := blobs[name]
		if !ok {
			s = &blobState{}
			blobs[name] = s
		}
		return s
	}

	for _, node := range graph.Nodes {
		// Reads first: a read-after-write edge from the blob's last writer.
		// An operator that reads its own output blob in place gets no
		// self-edge; the write-after-write rule below already links it to
		// the previous writer.
		for _, in := range node.Def.Inputs {
			s := state(in)
			if s.lastWriter != nil && s.lastWriter != node {
				addEdge(ctx, s.lastWriter, node, "read-after-write", in)
			}
			s.readers = append(s.readers, node)
		}

		// Writes: the new writer must follow the previous writer
		// (write-after-write) and every reader accumulated since that write
		// (write-after-read), including readers attached to unrelated
		// operators. Writing resets the blob's reader set.
		for _, out := range node.Def.Outputs {
			s := state(out)
			if s.lastWriter != nil && s.lastWriter != node {
				addEdge(ctx, s.lastWriter, node, "write-after-write", out)
			}
			for _, reader := range s.readers {
				if reader != node {
					addEdge(ctx, reader, node, "write-after-read", out)
				}
			}
			s.lastWriter = node
			s.readers = nil
		}

		// Explicit control edges. A control input must reference an operator
		// declared earlier in the net. A control-dependent node may rely on
		// any side effect of its predecessor without declaring it as data,
		// so it also counts as a reader of the predecessor's output blobs:
		// a later writer of those blobs must wait for it, exactly as for a
		// declared read.
		for _, ctrl := range node.Def.ControlInputs {
			dep, ok := graph.byName[ctrl]
			if !ok {
				return fmt.Errorf("operator %q: %w: %q", node.Name(), ErrUnknownControlInput, ctrl)
			}
			if dep == node {
				return fmt.Errorf("%w: operator %q lists itself as a control input", ErrSelfDependency, node.Name())
			}
			if dep.Index > node.Index {
				return fmt.Errorf("operator %q: %w: %q is declared later", node.Name(), ErrUnknownControlInput, ctrl)
			}
			addEdge(ctx, dep, node, "control", "")
			for _, out := range dep.Def.Outputs {
				s := state(out)
				s.readers = append(s.readers, node)
			}
		}
	}

	logger.Debug("Finished node linking pass.")
	return nil
}

// addEdge records that `to` depends on `from`. Edges form a set: several
// hazard rules may propose the same pair and only the first insertion
// counts, so a node's in-degree equals its number of distinct parents.
func addEdge(ctx context.Context, from, to *Node, kind, blob string) {
	if _, exists := to.Deps[from.Name()]; exists {
		return
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Linking dependency.", "from", from.Name(), "to", to.Name(), "kind", kind, "blob", blob)
	to.Deps[from.Name()] = from
	from.Dependents[to.Name()] = to
}
