package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dusk-indust/modnav/internal/config"
	"github.com/dusk-indust/modnav/internal/crategraph"
	"github.com/dusk-indust/modnav/internal/discover"
	"github.com/dusk-indust/modnav/internal/mcptools"
	"github.com/dusk-indust/modnav/internal/syntax"
)

// version is set by goreleaser at build time.
var version = "dev"

// cliFlags mirrors the teacher's flat flag.FlagSet layout.
type cliFlags struct {
	ProjectRoot string
	RootFile    string
	KuzuPath    string
	Verbose     bool
	ServeMCP    bool
	Version     bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("modnav", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the crate or workspace to inspect")
	fs.StringVar(&flags.RootFile, "root-file", "", "repo-relative crate root file (default: src/lib.rs, falling back to src/main.rs)")
	fs.StringVar(&flags.KuzuPath, "kuzu-path", "", "persist the projected crate graph to a file-backed KuzuDB at this path")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	projectRoot := flags.ProjectRoot
	if !filepath.IsAbs(projectRoot) {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return fmt.Errorf("resolving project root: %w", err)
		}
		projectRoot = abs
	}

	projCfg, err := config.Load(projectRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load modnav.yml: %v\n", err)
		projCfg = &config.ProjectConfig{}
	}
	if projCfg.Verbose && !flags.Verbose {
		flags.Verbose = true
	}
	if flags.KuzuPath == "" {
		flags.KuzuPath = projCfg.KuzuPath
	}

	ctx := context.Background()

	if flags.ServeMCP {
		fmt.Fprintf(os.Stderr, "modnav MCP server v%s starting on stdio (project: %s)\n", version, projectRoot)
		server := mcptools.NewModuleNavMCPServer()
		err := mcptools.RunModuleNavMCPServerStdio(ctx, server)
		fmt.Fprintf(os.Stderr, "modnav MCP server stopped\n")
		return err
	}

	positional := fs.Args()
	if len(positional) < 1 {
		printUsage(fs)
		return fmt.Errorf("missing command: tree or graph")
	}

	switch positional[0] {
	case "tree":
		return runTree(projectRoot, flags.RootFile)
	case "graph":
		return runGraph(ctx, projectRoot, flags.KuzuPath)
	default:
		printUsage(fs)
		return fmt.Errorf("unknown command %q", positional[0])
	}
}

func runTree(projectRoot, rootFile string) error {
	svc := mcptools.NewModuleNavService()
	_, out, err := svc.ModuleTree(context.Background(), nil, mcptools.ModuleTreeInput{
		RepoPath: projectRoot,
		RootFile: rootFile,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runGraph(ctx context.Context, projectRoot, kuzuPath string) error {
	model, err := discover.Discover(ctx, projectRoot)
	if err != nil {
		return err
	}

	svc := mcptools.NewModuleNavService()
	_, out, err := svc.CrateGraph(ctx, nil, mcptools.CrateGraphInput{StartPath: projectRoot})
	if err != nil {
		return err
	}

	if kuzuPath != "" {
		if err := persistToKuzu(ctx, model, kuzuPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to persist crate graph: %v\n", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// pathLoader is a crategraph.Loader that records each loaded crate root's
// path by the FileHandle it hands out, so persistToKuzu can report real
// paths to the Store without re-parsing any source.
type pathLoader struct {
	next  uint32
	paths map[syntax.FileHandle]string
}

func (l *pathLoader) load(path string) (syntax.FileHandle, bool) {
	if _, err := os.Stat(path); err != nil {
		return 0, false
	}
	h := syntax.FileHandle(l.next)
	l.next++
	l.paths[h] = path
	return h, true
}

// persistToKuzu projects model's crate graph (cheap; no parsing occurs,
// only filesystem existence checks per crate root) and writes it into a
// file-backed KuzuDB, matching the teacher's persistGraph helper in
// internal/mcptools/handlers.go.
func persistToKuzu(ctx context.Context, model crategraph.WorkspaceModel, kuzuPath string) error {
	store, err := crategraph.NewKuzuCrateGraphFileStore(kuzuPath)
	if err != nil {
		return err
	}
	defer store.Close()

	loader := &pathLoader{paths: make(map[syntax.FileHandle]string)}
	g := crategraph.Project(model, loader.load, os.Stderr)

	rootPaths := func(id crategraph.CrateID) string {
		return loader.paths[g.CrateRoot(id)]
	}
	return crategraph.Persist(ctx, g, rootPaths, store)
}

func printUsage(fs *flag.FlagSet) {
	w := os.Stderr
	fmt.Fprintf(w, "modnav v%s — module-tree resolver and crate-graph projector\n\n", version)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  modnav [flags] tree     Print a crate's resolved module tree as JSON")
	fmt.Fprintln(w, "  modnav [flags] graph    Print the discovered workspace's crate graph as JSON")
	fmt.Fprintln(w, "  modnav --serve-mcp      Run as MCP server on stdio")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}
