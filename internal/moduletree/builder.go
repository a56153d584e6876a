package moduletree

import (
	"fmt"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// builder holds the mutable state used only during one BuildTree call.
// These structures are exclusively owned by the in-progress construction
// (spec.md §5, "Shared resources"); the finished ModuleTree they produce is
// immutable and shared freely by the caller.
type builder struct {
	db         Database
	tree       ModuleTree
	visited    map[syntax.FileHandle]bool
	orphanRoots map[syntax.FileHandle]ModuleID
	resolver   syntax.FileResolver
}

// BuildTree visits every file of the given source root and assembles the
// module/link arenas described in spec.md §4.3. It polls db.CheckCanceled
// at the start and before every recursive step; a cancellation observation
// aborts construction and returns ErrCancelled with no partial tree.
func BuildTree(db Database, rootID SourceRootID) (*ModuleTree, error) {
	if err := db.CheckCanceled(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	root, err := db.SourceRootContents(rootID)
	if err != nil {
		return nil, fmt.Errorf("moduletree: source root contents: %w", err)
	}

	b := &builder{
		db:          db,
		visited:     make(map[syntax.FileHandle]bool, len(root.Files)),
		orphanRoots: make(map[syntax.FileHandle]ModuleID),
		resolver:    root.Resolver,
	}

	// Iterate files in the source root's native order; each unvisited file
	// starts a (possibly later re-parented) subtree.
	for _, file := range root.Files {
		if b.visited[file] {
			continue
		}
		id, err := b.build(nil, file)
		if err != nil {
			return nil, err
		}
		if b.tree.modules[id].Parent == nil {
			b.orphanRoots[file] = id
		}
	}

	return &b.tree, nil
}

// build is the recursive descent of spec.md §4.3: it allocates a module for
// file, walks its out-of-line submodule declarations, resolves each one,
// and either re-parents an already-built orphan subtree or recurses to
// build a fresh one.
func (b *builder) build(parent *LinkID, file syntax.FileHandle) (ModuleID, error) {
	if err := b.db.CheckCanceled(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	b.visited[file] = true

	id := b.tree.pushModule(ModuleData{
		Source: ModuleSource{Kind: ModuleSourceFile, File: file},
		Parent: parent,
	})

	tree, err := b.db.FileSyntax(file)
	if err != nil {
		return 0, fmt.Errorf("moduletree: file syntax for %s: %w", file, err)
	}
	defer tree.Close()

	for _, decl := range ExtractSubmodules(tree) {
		candidates, problem := ResolveSubmodule(file, decl.Name, b.resolver)

		linkID := b.tree.pushLink(LinkData{
			Name:  decl.Name,
			Owner: id,
		})

		pointsTo := make([]ModuleID, 0, len(candidates))
		for _, candidateFile := range candidates {
			if existing, ok := b.orphanRoots[candidateFile]; ok {
				// Re-parent: the outer loop visited this file before the
				// declaration that owns it was processed. Remove it from
				// orphanRoots so the outer loop does not later treat its
				// subtree as an independent root (spec.md §4.3 rationale).
				delete(b.orphanRoots, candidateFile)
				link := linkID
				b.tree.modules[existing].Parent = &link
				pointsTo = append(pointsTo, existing)
				continue
			}

			childID, err := b.build(&linkID, candidateFile)
			if err != nil {
				return 0, err
			}
			pointsTo = append(pointsTo, childID)
		}

		b.tree.links[linkID].PointsTo = pointsTo
		b.tree.links[linkID].Problem = problem
		b.tree.modules[id].Children = append(b.tree.modules[id].Children, linkID)
	}

	return id, nil
}
