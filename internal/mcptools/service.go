package mcptools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/modnav/internal/crategraph"
	"github.com/dusk-indust/modnav/internal/discover"
	"github.com/dusk-indust/modnav/internal/moduletree"
	"github.com/dusk-indust/modnav/internal/syntax"
)

// ModuleNavService handles MCP tool calls for module-tree resolution and
// crate-graph projection. Each module_tree and module_scope call builds a
// fresh engine.Engine, and each crate_graph call a fresh fileLoader (see
// internal/engine's package doc: no memoization layer is carried across
// calls, matching spec.md's explicit "building a real incremental engine is
// out of scope").
type ModuleNavService struct{}

// NewModuleNavService creates a ModuleNavService.
func NewModuleNavService() *ModuleNavService {
	return &ModuleNavService{}
}

// ModuleTree walks a crate's source directory, builds its module tree, and
// returns every module with its file, children, and any unresolved-module
// or not-dir-owner link problems.
func (s *ModuleNavService) ModuleTree(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ModuleTreeInput,
) (*mcp.CallToolResult, ModuleTreeOutput, error) {
	eng, tree, _, err := loadCrate(input.RepoPath, input.RootFile)
	if err != nil {
		return nil, ModuleTreeOutput{}, err
	}

	out := make([]ModuleNode, 0, tree.ModuleCount())
	for i := 0; i < tree.ModuleCount(); i++ {
		id := moduletree.ModuleID(i)
		mod := tree.Module(id)

		file := "<inline>"
		if mod.Source.Kind == moduletree.ModuleSourceFile {
			if p, ok := eng.Path(mod.Source.File); ok {
				file = p
			}
		}

		node := ModuleNode{
			Path: dottedPath(tree, id),
			File: file,
		}
		for _, linkID := range mod.Children {
			link := tree.Link(linkID)
			node.Children = append(node.Children, link.Name)
			if link.Problem != nil {
				node.Problems = append(node.Problems, ProblemView{
					Kind:      problemKindName(link.Problem.Kind),
					Name:      link.Name,
					Candidate: link.Problem.Candidate,
					MoveTo:    link.Problem.MoveTo,
				})
			}
		}
		out = append(out, node)
	}

	return nil, ModuleTreeOutput{Modules: out}, nil
}

// ModuleScope reports the identifiers declared directly inside one module
// of a crate, given its dotted path from the crate root.
func (s *ModuleNavService) ModuleScope(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ModuleScopeInput,
) (*mcp.CallToolResult, ModuleScopeOutput, error) {
	eng, tree, rootHandle, err := loadCrate(input.RepoPath, input.RootFile)
	if err != nil {
		return nil, ModuleScopeOutput{}, err
	}

	root, ok := moduleForFile(tree, rootHandle)
	if !ok {
		return nil, ModuleScopeOutput{}, fmt.Errorf("mcptools: crate has no root module")
	}
	id, ok := findModule(tree, root, input.ModulePath)
	if !ok {
		return nil, ModuleScopeOutput{}, fmt.Errorf("mcptools: module %q not found", input.ModulePath)
	}

	modSource := tree.Source(id)
	syntaxTree, err := eng.FileSyntax(modSource.File)
	if err != nil {
		return nil, ModuleScopeOutput{}, err
	}
	defer syntaxTree.Close()

	source, _ := eng.Source(modSource.File)
	items := moduletree.ItemsOf(syntaxTree, modSource)
	scope := moduletree.NewModuleScope(items, source)

	entries := make([]ScopeEntry, 0, scope.Len())
	for _, name := range scope.Names() {
		kind, _ := scope.Lookup(name)
		entries = append(entries, ScopeEntry{Name: name, Kind: string(kind)})
	}
	return nil, ModuleScopeOutput{Entries: entries}, nil
}

// CrateGraph discovers the workspace reachable from startPath and projects
// its crate graph.
func (s *ModuleNavService) CrateGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CrateGraphInput,
) (*mcp.CallToolResult, CrateGraphOutput, error) {
	if input.StartPath == "" {
		return nil, CrateGraphOutput{}, fmt.Errorf("startPath is required")
	}

	model, err := discover.Discover(ctx, input.StartPath)
	if err != nil {
		return nil, CrateGraphOutput{}, err
	}

	eng := newFileLoader()
	g := crategraph.Project(model, eng.load, os.Stderr)

	out := CrateGraphOutput{}
	for i := 0; i < g.CrateCount(); i++ {
		id := crategraph.CrateID(i)
		path, _ := eng.paths[g.CrateRoot(id)]
		out.Crates = append(out.Crates, CrateNodeView{
			ID:      i,
			Root:    path,
			Edition: string(g.CrateEdition(id)),
		})
		for _, dep := range g.Dependencies(id) {
			out.Edges = append(out.Edges, CrateEdgeView{From: i, Name: dep.Name, To: int(dep.To)})
		}
	}
	return nil, out, nil
}

// dottedPath renders PathToRoot (nearest-first) as a root-first dotted
// string, e.g. "foo.bar".
func dottedPath(tree *moduletree.ModuleTree, id moduletree.ModuleID) string {
	names := tree.PathToRoot(id)
	out := ""
	for i := len(names) - 1; i >= 0; i-- {
		if out != "" {
			out += "."
		}
		out += names[i]
	}
	return out
}

func problemKindName(k moduletree.ProblemKind) string {
	switch k {
	case moduletree.ProblemUnresolvedModule:
		return "unresolved-module"
	case moduletree.ProblemNotDirOwner:
		return "not-dir-owner"
	default:
		return "unknown"
	}
}

// fileLoader is a crategraph.Loader backed by plain filesystem existence
// checks, tracking handle->path for CrateGraphOutput rendering. It does not
// reuse engine.Engine because crategraph.Project needs only a Loader func,
// not the full moduletree.Database surface, and crate roots here are never
// parsed — only their paths are reported.
type fileLoader struct {
	next  uint32
	paths map[syntax.FileHandle]string
}

func newFileLoader() *fileLoader {
	return &fileLoader{paths: make(map[syntax.FileHandle]string)}
}

func (l *fileLoader) load(path string) (syntax.FileHandle, bool) {
	if _, err := os.Stat(path); err != nil {
		return 0, false
	}
	h := syntax.FileHandle(l.next)
	l.next++
	l.paths[h] = filepath.Clean(path)
	return h, true
}
