// Package engine provides a minimal, non-incremental stand-in for the
// "external collaborator" incremental-computation engine spec.md §1 places
// out of scope. It implements just enough of the consumed interfaces
// (moduletree.Database) to let the CLI and tests in this
// repository run end-to-end against real files without pulling in a full
// memoizing/cancellable query engine — building one is explicitly not part
// of this spec.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dusk-indust/modnav/internal/moduletree"
	"github.com/dusk-indust/modnav/internal/syntax"
)

// Engine holds a flat table of known files plus any registered source
// roots. It satisfies moduletree.Database directly; no memoization or
// revision tracking is performed (see the package doc comment).
type Engine struct {
	mu        sync.RWMutex
	parser    *syntax.Parser
	sources   map[syntax.FileHandle][]byte
	paths     map[syntax.FileHandle]string
	nextFile  uint32
	roots     map[moduletree.SourceRootID]moduletree.SourceRoot
	nextRoot  int
	cancelled atomic.Bool
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{
		parser:  syntax.NewParser(),
		sources: make(map[syntax.FileHandle][]byte),
		paths:   make(map[syntax.FileHandle]string),
		roots:   make(map[moduletree.SourceRootID]moduletree.SourceRoot),
	}
}

// AddFile registers a file's repo-relative path and source bytes, returning
// a stable handle for it.
func (e *Engine) AddFile(path string, source []byte) syntax.FileHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := syntax.FileHandle(e.nextFile)
	e.nextFile++
	e.sources[h] = source
	e.paths[h] = path
	return h
}

// Path returns the repo-relative path a handle was registered with.
func (e *Engine) Path(h syntax.FileHandle) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.paths[h]
	return p, ok
}

// Source returns the raw bytes a handle was registered with.
func (e *Engine) Source(h syntax.FileHandle) ([]byte, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	src, ok := e.sources[h]
	return src, ok
}

// NewSourceRoot registers a source root over the given files (in the order
// given — that order is the "native order" BuildTree iterates in) using a
// FileResolver built from this engine's path table.
func (e *Engine) NewSourceRoot(files []syntax.FileHandle) moduletree.SourceRootID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := moduletree.SourceRootID(e.nextRoot)
	e.nextRoot++
	e.roots[id] = moduletree.SourceRoot{
		Files:    files,
		Resolver: newPathResolver(e),
	}
	return id
}

// Cancel marks the engine as cancelled. Cancellation is polite (spec.md
// §5): in-flight queries observe it on their own schedule, at their next
// CheckCanceled call.
func (e *Engine) Cancel() {
	e.cancelled.Store(true)
}

// CheckCanceled implements moduletree.Database.
func (e *Engine) CheckCanceled() error {
	if e.cancelled.Load() {
		return moduletree.ErrCancelled
	}
	return nil
}

// FileSyntax implements moduletree.Database by parsing (and not caching —
// this stand-in has no memoization layer) the registered source.
func (e *Engine) FileSyntax(h syntax.FileHandle) (*syntax.Tree, error) {
	e.mu.RLock()
	src, ok := e.sources[h]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("engine: unknown file handle %s", h)
	}
	return e.parser.Parse(src)
}

// SourceRootContents implements moduletree.Database.
func (e *Engine) SourceRootContents(id moduletree.SourceRootID) (moduletree.SourceRoot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	root, ok := e.roots[id]
	if !ok {
		return moduletree.SourceRoot{}, fmt.Errorf("engine: unknown source root %d", id)
	}
	return root, nil
}
