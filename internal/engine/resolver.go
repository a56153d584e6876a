package engine

import (
	"path"
	"strings"
	"sync"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// pathResolver implements syntax.FileResolver over an Engine's flat path
// table. Resolution is purely path arithmetic over already-registered
// paths — no filesystem access — matching spec.md §6.2's contract that
// Resolve only ever refers to files already known to the owning source
// root.
type pathResolver struct {
	eng *Engine

	indexMu   sync.Mutex
	byPath    map[string]syntax.FileHandle
	byPathSet bool
}

func newPathResolver(e *Engine) *pathResolver {
	return &pathResolver{eng: e}
}

// index lazily builds the path→handle reverse map, guarded by its own
// mutex rather than Engine's: Resolve is documented safe for concurrent
// read (spec.md §5, file.go's FileResolver contract), and memoizing under
// only a read lock would let two concurrent callers race on byPath/byPathSet.
func (r *pathResolver) index() map[string]syntax.FileHandle {
	r.indexMu.Lock()
	defer r.indexMu.Unlock()
	if r.byPathSet {
		return r.byPath
	}
	r.eng.mu.RLock()
	m := make(map[string]syntax.FileHandle, len(r.eng.paths))
	for h, p := range r.eng.paths {
		m[p] = h
	}
	r.eng.mu.RUnlock()
	r.byPath = m
	r.byPathSet = true
	return r.byPath
}

// FileStem implements syntax.FileResolver.
func (r *pathResolver) FileStem(h syntax.FileHandle) string {
	p, ok := r.eng.Path(h)
	if !ok {
		return ""
	}
	base := path.Base(p)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Resolve implements syntax.FileResolver: relative is joined onto anchor's
// own path (so "../foo.rs" from "src/lib.rs" names "src/foo.rs"), then
// looked up by exact path match.
func (r *pathResolver) Resolve(anchor syntax.FileHandle, relative string) (syntax.FileHandle, bool) {
	anchorPath, ok := r.eng.Path(anchor)
	if !ok {
		return 0, false
	}
	target := path.Clean(path.Join(anchorPath, relative))

	h, ok := r.index()[target]
	return h, ok
}
