package crategraph

import (
	"fmt"
	"io"
	"os"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// Loader materialises a crate root: given a path, it returns the file
// handle backing it, or false if the root could not be loaded (spec.md
// §4.6's `load(path) → optional FileHandle`). An unloadable root causes
// that crate to be omitted entirely; dependency edges referencing it are
// silently skipped (spec.md §7).
type Loader func(path string) (syntax.FileHandle, bool)

// Project turns a WorkspaceModel into a CrateGraph, dispatching on the
// model's variant per spec.md §4.6. Cyclic dependency edges are logged to
// diag (os.Stderr if nil, matching the ambient-logging convention described
// in SPEC_FULL.md) and dropped; the graph returned is always acyclic.
func Project(model WorkspaceModel, load Loader, diag io.Writer) *CrateGraph {
	if diag == nil {
		diag = os.Stderr
	}
	g := NewCrateGraph()
	switch model.Kind {
	case WorkspaceJSON:
		projectJSON(model.JSON, load, g, diag)
	case WorkspaceCargo:
		projectCargo(model.Cargo, model.Sysroot, load, g, diag)
	}
	return g
}

// projectJSON implements spec.md §4.6's Json variant: a first pass adds
// every loadable crate root, a second pass adds dependency edges between
// crates that both loaded.
func projectJSON(proj *JsonProject, load Loader, g *CrateGraph, diag io.Writer) {
	ids := make(map[int]CrateID, len(proj.Crates))
	for i, c := range proj.Crates {
		if h, ok := load(c.RootModule); ok {
			ids[i] = g.AddCrateRoot(h, c.edition())
		}
	}

	for i, c := range proj.Crates {
		from, ok := ids[i]
		if !ok {
			continue
		}
		for _, dep := range c.Deps {
			to, ok := ids[dep.Krate]
			if !ok {
				continue
			}
			if err := g.AddDep(from, dep.Name, to); err != nil {
				fmt.Fprintf(diag, "crategraph: cyclic dependency %d -> %d: %v\n", i, dep.Krate, err)
			}
		}
	}
}

// projectCargo implements spec.md §4.6's Cargo variant in its five steps:
// sysroot pass, std handle, package pass, intra-package edges, inter-package
// edges. Every edge is validated against the graph built so far, which the
// two-pass structure guarantees already contains every crate that will ever
// participate in an edge (spec.md §4.6 rationale).
func projectCargo(cargo *CargoWorkspace, sysroot *Sysroot, load Loader, g *CrateGraph, diag io.Writer) {
	// 1. Sysroot pass.
	sysrootIDs := make(map[string]CrateID, len(sysroot.Crates))
	for _, c := range sysroot.Crates {
		if h, ok := load(c.Root); ok {
			sysrootIDs[c.Name] = g.AddCrateRoot(h, Edition2015)
		}
	}
	for _, c := range sysroot.Crates {
		from, ok := sysrootIDs[c.Name]
		if !ok {
			continue
		}
		for _, depName := range c.Deps {
			to, ok := sysrootIDs[depName]
			if !ok {
				continue
			}
			if err := g.AddDep(from, depName, to); err != nil {
				fmt.Fprintf(diag, "crategraph: cyclic dependency between sysroot crates %s -> %s: %v\n", c.Name, depName, err)
			}
		}
	}

	// 2. Library-standard handle.
	var libstd *CrateID
	if name, ok := sysroot.Std(); ok {
		if id, ok := sysrootIDs[name]; ok {
			libstd = &id
		}
	}

	// 3. Package pass.
	pkgToLib := make(map[*Package]CrateID)
	pkgCrates := make(map[*Package][]CrateID)
	for _, pkg := range cargo.Packages {
		for _, tgt := range pkg.Targets {
			h, ok := load(tgt.Root)
			if !ok {
				continue
			}
			id := g.AddCrateRoot(h, pkg.Edition)
			if tgt.Kind == TargetLib {
				pkgToLib[pkg] = id
			}
			pkgCrates[pkg] = append(pkgCrates[pkg], id)
		}
	}

	// 4. Intra-package edges: non-library targets -> library target, and
	// every target -> std.
	for _, pkg := range cargo.Packages {
		libID, hasLib := pkgToLib[pkg]
		for _, from := range pkgCrates[pkg] {
			if hasLib && libID != from {
				if err := g.AddDep(from, pkg.Name, libID); err != nil {
					fmt.Fprintf(diag, "crategraph: cyclic dependency between targets of %s: %v\n", pkg.Name, err)
				}
			}
			if libstd != nil {
				if err := g.AddDep(from, "std", *libstd); err != nil {
					fmt.Fprintf(diag, "crategraph: cyclic dependency on std for %s: %v\n", pkg.Name, err)
				}
			}
		}
	}

	// 5. Inter-package edges: every target of the dependent package -> the
	// library target of the dependency package.
	for _, pkg := range cargo.Packages {
		for _, dep := range pkg.Dependencies {
			to, ok := pkgToLib[dep.Pkg]
			if !ok {
				continue
			}
			for _, from := range pkgCrates[pkg] {
				if err := g.AddDep(from, dep.Name, to); err != nil {
					fmt.Fprintf(diag, "crategraph: cyclic dependency %s -> %s: %v\n", pkg.Name, dep.Pkg.Name, err)
				}
			}
		}
	}
}
