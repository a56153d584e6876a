// Package moduletree builds a queryable tree of modules for one source root:
// given a set of files, it discovers which files form a tree of modules
// (parent/child relations determined by in-source `mod name;` declarations
// plus filesystem conventions), flags unresolved or mis-placed modules, and
// exposes the result as two parallel, dense-indexed arenas.
//
// This package performs no filesystem I/O; everything it needs is injected
// through Database and syntax.FileResolver (spec.md §5, "no blocking I/O is
// performed by the core").
package moduletree

import (
	"errors"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// ErrCancelled is returned by BuildTree when the Database reports
// cancellation. It is never logged; it propagates to whatever owns the
// in-flight query, which is expected to discard any partial result (spec.md
// §7).
var ErrCancelled = errors.New("moduletree: query cancelled")

// SourceRootID is an opaque key into the incremental engine identifying one
// source root.
type SourceRootID int

// SourceRoot is a bounded set of files plus the resolver that interprets
// relative module paths within it. Two source roots never share files.
type SourceRoot struct {
	Files    []syntax.FileHandle
	Resolver syntax.FileResolver
}

// Database is the subset of the incremental engine (spec.md §6.1) that
// BuildTree consumes. It is implemented by internal/engine's minimal
// stand-in and by any real incremental-computation engine an embedder
// supplies; this package depends only on the interface.
type Database interface {
	// CheckCanceled reports ErrCancelled (or a wrapped form of it) once the
	// engine has requested cancellation, nil otherwise.
	CheckCanceled() error

	// FileSyntax returns the (engine-cached) syntax tree for a file.
	FileSyntax(h syntax.FileHandle) (*syntax.Tree, error)

	// SourceRootContents returns the file set and resolver for a source root.
	SourceRootContents(id SourceRootID) (SourceRoot, error)
}

// ModuleID is a dense index into a ModuleTree's module arena. IDs are stable
// within one tree instance and meaningless across instances.
type ModuleID int

// LinkID is a dense index into a ModuleTree's link arena.
type LinkID int

// NodePath locates a syntax node within a freshly re-parsed tree by the
// sequence of child indices from the root. It is how an Inline ModuleSource
// re-anchors itself after a file's syntax tree is rebuilt (syntax trees are
// not persistent across engine revisions).
type NodePath []int

// ModuleSourceKind discriminates the two ModuleSource variants.
type ModuleSourceKind int

const (
	// ModuleSourceFile marks a module backed by an entire file
	// (out-of-line `mod foo;` resolved to a file, or a source root itself).
	ModuleSourceFile ModuleSourceKind = iota
	// ModuleSourceInline marks a module backed by an inline
	// `mod foo { ... }` block within another file.
	ModuleSourceInline
)

// ModuleSource is a tagged variant over {File(FileHandle) |
// Inline(FileHandle, NodePath)} — expressed as a struct rather than an
// interface because there is no shared behavior to dispatch, only data
// (spec.md §9, "Polymorphism of ModuleSource").
type ModuleSource struct {
	Kind ModuleSourceKind
	File syntax.FileHandle
	Node NodePath // only meaningful when Kind == ModuleSourceInline
}

// ModuleData is one entry in a ModuleTree's module arena.
type ModuleData struct {
	Source   ModuleSource
	Parent   *LinkID // nil for roots
	Children []LinkID
}

// ProblemKind discriminates the two diagnosable link problems.
type ProblemKind int

const (
	// ProblemUnresolvedModule means no file was found for a declaration.
	ProblemUnresolvedModule ProblemKind = iota
	// ProblemNotDirOwner means a non-directory-owner module declared a
	// submodule; it cannot be resolved until the owner file is moved.
	ProblemNotDirOwner
)

// Problem is a diagnostic attached to a Link.
type Problem struct {
	Kind ProblemKind

	// Candidate is the path that was sought and not found (both variants).
	Candidate string

	// MoveTo is the path the owning file should be moved to. Only set for
	// ProblemNotDirOwner.
	MoveTo string
}

// LinkData is one entry in a ModuleTree's link arena: a named child-pointer
// from Owner to zero, one, or two resolved child modules, plus an optional
// diagnostic.
type LinkData struct {
	Name     string
	Owner    ModuleID
	PointsTo []ModuleID // len 0, 1, or 2 (2 means: diagnose ambiguity downstream)
	Problem  *Problem
}

// ModuleTree is the immutable result of one BuildTree call: two parallel
// arenas plus the invariants spec.md §3/§8 require of them (each FileHandle
// appears in exactly one module's File source; parent→owner chains are
// acyclic; every link's Owner is valid).
type ModuleTree struct {
	modules []ModuleData
	links   []LinkData
}

// Module returns the module entry for id.
func (t *ModuleTree) Module(id ModuleID) ModuleData {
	return t.modules[id]
}

// ModuleCount returns the number of modules in the tree.
func (t *ModuleTree) ModuleCount() int {
	return len(t.modules)
}

// Link returns the link entry for id.
func (t *ModuleTree) Link(id LinkID) LinkData {
	return t.links[id]
}

// LinkCount returns the number of links in the tree.
func (t *ModuleTree) LinkCount() int {
	return len(t.links)
}

// ParentLink returns the link that owns id as a child, if any.
func (t *ModuleTree) ParentLink(id ModuleID) (LinkID, bool) {
	p := t.modules[id].Parent
	if p == nil {
		return 0, false
	}
	return *p, true
}

// ChildrenLinks returns the links id declared, in source order.
func (t *ModuleTree) ChildrenLinks(id ModuleID) []LinkID {
	return t.modules[id].Children
}

// Source returns the ModuleSource for id.
func (t *ModuleTree) Source(id ModuleID) ModuleSource {
	return t.modules[id].Source
}

// PathToRoot returns the sequence of link names from id up to (but not
// including) the root module, nearest first.
func (t *ModuleTree) PathToRoot(id ModuleID) []string {
	var names []string
	cur := id
	for {
		linkID, ok := t.ParentLink(cur)
		if !ok {
			return names
		}
		link := t.Link(linkID)
		names = append(names, link.Name)
		cur = link.Owner
	}
}

// pushModule appends a module entry and returns its ID.
func (t *ModuleTree) pushModule(m ModuleData) ModuleID {
	id := ModuleID(len(t.modules))
	t.modules = append(t.modules, m)
	return id
}

// pushLink appends a link entry and returns its ID.
func (t *ModuleTree) pushLink(l LinkData) LinkID {
	id := LinkID(len(t.links))
	t.links = append(t.links, l)
	return id
}
