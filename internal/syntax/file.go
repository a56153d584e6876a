// Package syntax provides the file-identity and syntax-tree primitives that
// the module-tree builder and crate-graph projector consume. Everything here
// is a thin wrapper over tree-sitter; no semantic analysis happens in this
// package.
package syntax

import "fmt"

// FileHandle is an opaque identifier for a file known to the engine.
// It is comparable, hashable, and totally ordered (by its numeric value),
// matching spec.md's FileHandle data model. Its lifetime is governed by
// whatever owns the SourceRoot it came from.
type FileHandle uint32

// String renders the handle for diagnostics and test failure messages.
func (h FileHandle) String() string {
	return fmt.Sprintf("FileHandle(%d)", uint32(h))
}

// FileResolver maps (anchor file, relative path) pairs to file handles and
// exposes a file's stem. Concrete implementations must be safe for
// concurrent read (spec.md §5) since query evaluation can run in parallel
// across source roots.
type FileResolver interface {
	// FileStem returns the base name of the file without extension or
	// directory, e.g. "mod", "lib", "foo".
	FileStem(h FileHandle) string

	// Resolve interprets relative against the anchor file's own path, so
	// "../foo.rs" from "src/lib.rs" names "src/foo.rs", and returns the
	// handle of the resulting file if it belongs to the owning source root,
	// or false otherwise.
	Resolve(anchor FileHandle, relative string) (FileHandle, bool)
}
