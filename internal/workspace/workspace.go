// Package workspace provides the shared blob store that operators read and
// write during a network run.
//
// The store itself takes no lock around blob contents beyond the per-key
// synchronization of sync.Map: the dependency graph's hazard edges are the
// mechanism that keeps two operators from touching the same blob
// concurrently. The workspace only has to survive concurrent access to
// *different* blobs, which is exactly the access pattern sync.Map is
// optimized for.
package workspace

import (
	"sort"
	"sync"
)

// Workspace is a named blob store. The zero value is not usable; create
// instances with New.
type Workspace struct {
	blobs sync.Map // Key: blob name string, Value: any
}

// New creates a new, empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// Set stores a value under the given blob name, creating the blob if it
// does not exist yet.
func (w *Workspace) Set(name string, value any) {
	w.blobs.Store(name, value)
}

// Get retrieves the current value of the named blob. The second return
// value reports whether the blob exists.
func (w *Workspace) Get(name string) (any, bool) {
	return w.blobs.Load(name)
}

// Has reports whether the named blob exists.
func (w *Workspace) Has(name string) bool {
	_, ok := w.blobs.Load(name)
	return ok
}

// Names returns the names of all blobs in the workspace, sorted.
func (w *Workspace) Names() []string {
	var names []string
	w.blobs.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}
