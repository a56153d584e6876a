package mcptools

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/modnav/internal/engine"
	"github.com/dusk-indust/modnav/internal/moduletree"
	"github.com/dusk-indust/modnav/internal/syntax"
)

// ignoredWalkDirs holds the first three entries of projectroot.go's ignore
// list (node_modules, target, .git) for the plain filesystem walk an
// MCP-tool call does against a single crate directory (as opposed to
// crategraph's multi-root workspace crawl); the rest of that list is not
// skipped here.
var ignoredWalkDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	".git":         true,
}

// loadCrate walks repoPath for .rs files, registers them on a fresh
// engine.Engine, and builds the module tree of a source root holding every
// file found, locating rootFile among them (defaulting to src/lib.rs,
// falling back to src/main.rs). It returns the
// engine (so callers can resolve handles back to paths), the built tree,
// and the root file's handle.
func loadCrate(repoPath, rootFile string) (*engine.Engine, *moduletree.ModuleTree, syntax.FileHandle, error) {
	if repoPath == "" {
		return nil, nil, 0, fmt.Errorf("repoPath is required")
	}
	info, err := os.Stat(repoPath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, 0, fmt.Errorf("repoPath is not a directory: %s", repoPath)
	}

	if rootFile == "" {
		rootFile = "src/lib.rs"
		if _, err := os.Stat(filepath.Join(repoPath, rootFile)); err != nil {
			rootFile = "src/main.rs"
		}
	}

	eng := engine.New()
	var handles []syntax.FileHandle
	var rootHandle syntax.FileHandle
	haveRoot := false

	walkErr := filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ignoredWalkDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".rs") {
			return nil
		}
		rel, err := filepath.Rel(repoPath, path)
		if err != nil {
			rel = path
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		h := eng.AddFile(rel, source)
		handles = append(handles, h)
		if rel == rootFile {
			rootHandle = h
			haveRoot = true
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, 0, fmt.Errorf("walk %s: %w", repoPath, walkErr)
	}
	if !haveRoot {
		return nil, nil, 0, fmt.Errorf("root file %s not found under %s", rootFile, repoPath)
	}

	rootID := eng.NewSourceRoot(handles)
	tree, err := moduletree.BuildTree(eng, rootID)
	if err != nil {
		return nil, nil, 0, err
	}
	return eng, tree, rootHandle, nil
}

// findModule locates the module reached from the crate root by following
// dotted path segments through the tree's links.
func findModule(tree *moduletree.ModuleTree, root moduletree.ModuleID, dotted string) (moduletree.ModuleID, bool) {
	if dotted == "" {
		return root, true
	}
	cur := root
	for _, seg := range strings.Split(dotted, ".") {
		found := false
		for _, linkID := range tree.ChildrenLinks(cur) {
			link := tree.Link(linkID)
			if link.Name != seg || len(link.PointsTo) == 0 {
				continue
			}
			cur = link.PointsTo[0]
			found = true
			break
		}
		if !found {
			return 0, false
		}
	}
	return cur, true
}

// moduleForFile returns the ModuleID whose Source is the file-backed module
// for handle. loadCrate registers every .rs file under the repo, not just
// the ones reachable from rootFile, so BuildTree can produce several
// parentless modules (an unreachable file becomes its own orphan root);
// callers that need "the crate root module" must look it up by the
// rootHandle loadCrate returned rather than by parentlessness.
func moduleForFile(tree *moduletree.ModuleTree, handle syntax.FileHandle) (moduletree.ModuleID, bool) {
	for i := 0; i < tree.ModuleCount(); i++ {
		id := moduletree.ModuleID(i)
		src := tree.Source(id)
		if src.Kind == moduletree.ModuleSourceFile && src.File == handle {
			return id, true
		}
	}
	return 0, false
}
