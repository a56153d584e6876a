package crategraph

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TargetKind classifies a Cargo target.
type TargetKind string

const (
	TargetLib   TargetKind = "lib"
	TargetBin   TargetKind = "bin"
	TargetOther TargetKind = "other"
)

// Target is one build target of a Package (its library, or a binary,
// example, test, or bench — spec.md only distinguishes "library target" vs
// everything else).
type Target struct {
	Name string
	Kind TargetKind
	Root string // absolute path to the target's root source file
}

// PackageDep is one dependency edge declared by a Package's Cargo.toml,
// resolved to the concrete dependency Package.
type PackageDep struct {
	Name string // crate-local alias (accounts for a `package = "..."` rename)
	Pkg  *Package
}

// Package is one node of a cargo-metadata dependency graph.
type Package struct {
	ID           string
	Name         string
	Edition      Edition
	IsMember     bool
	Targets      []Target
	Dependencies []PackageDep
}

// LibTarget returns the package's library target, if it has one.
func (p *Package) LibTarget() (Target, bool) {
	for _, t := range p.Targets {
		if t.Kind == TargetLib {
			return t, true
		}
	}
	return Target{}, false
}

// CargoWorkspace is the package-manager-discovered half of a Cargo
// ProjectWorkspace: every package `cargo metadata` reported, already
// resolved into a dependency graph of *Package values.
type CargoWorkspace struct {
	Root     string
	Packages []*Package
}

// --- cargo metadata wire format (schema "taken as given", spec.md §6.3) ---

type metadataDoc struct {
	Packages         []metaPackage `json:"packages"`
	WorkspaceMembers []string      `json:"workspace_members"`
	WorkspaceRoot    string        `json:"workspace_root"`
	Resolve          *metaResolve  `json:"resolve"`
}

type metaPackage struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Edition  string       `json:"edition"`
	Targets  []metaTarget `json:"targets"`
}

type metaTarget struct {
	Name    string   `json:"name"`
	Kind    []string `json:"kind"`
	SrcPath string   `json:"src_path"`
}

type metaResolve struct {
	Nodes []metaResolveNode `json:"nodes"`
}

type metaResolveNode struct {
	ID   string             `json:"id"`
	Deps []metaResolveDep   `json:"deps"`
}

type metaResolveDep struct {
	Pkg  string `json:"pkg"`
	Name string `json:"name"`
}

// DiscoverCargoWorkspace runs `cargo metadata` against manifestPath and
// builds the Package/Target/PackageDep graph spec.md §4.6's Cargo variant
// projects from.
func DiscoverCargoWorkspace(manifestPath string) (*CargoWorkspace, error) {
	cmd := exec.Command("cargo", "metadata", "--format-version", "1", "--manifest-path", manifestPath)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("crategraph: cargo metadata: %w", err)
	}

	var doc metadataDoc
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("crategraph: parse cargo metadata: %w", err)
	}

	members := make(map[string]bool, len(doc.WorkspaceMembers))
	for _, m := range doc.WorkspaceMembers {
		members[m] = true
	}

	byID := make(map[string]*Package, len(doc.Packages))
	for _, mp := range doc.Packages {
		pkg := &Package{
			ID:       mp.ID,
			Name:     mp.Name,
			Edition:  parseEdition(mp.Edition),
			IsMember: members[mp.ID],
		}
		for _, mt := range mp.Targets {
			pkg.Targets = append(pkg.Targets, Target{
				Name: mt.Name,
				Kind: classifyTargetKind(mt.Kind),
				Root: mt.SrcPath,
			})
		}
		byID[mp.ID] = pkg
	}

	if doc.Resolve != nil {
		for _, node := range doc.Resolve.Nodes {
			pkg, ok := byID[node.ID]
			if !ok {
				continue
			}
			for _, dep := range node.Deps {
				depPkg, ok := byID[dep.Pkg]
				if !ok {
					continue
				}
				pkg.Dependencies = append(pkg.Dependencies, PackageDep{Name: dep.Name, Pkg: depPkg})
			}
		}
	}

	ws := &CargoWorkspace{Root: doc.WorkspaceRoot}
	for _, mp := range doc.Packages {
		ws.Packages = append(ws.Packages, byID[mp.ID])
	}
	return ws, nil
}

func parseEdition(s string) Edition {
	if s == string(Edition2015) {
		return Edition2015
	}
	return Edition2018
}

func classifyTargetKind(kinds []string) TargetKind {
	for _, k := range kinds {
		if k == "lib" || k == "rlib" || k == "dylib" || k == "proc-macro" {
			return TargetLib
		}
	}
	for _, k := range kinds {
		if k == "bin" {
			return TargetBin
		}
	}
	return TargetOther
}

// --- Sysroot ---

// SysrootCrate is one crate of the standard-library sysroot (std, core,
// alloc, proc_macro, ...).
type SysrootCrate struct {
	Name string
	Root string // absolute path to the crate's lib.rs
	Deps []string
}

// Sysroot is the discovered set of standard-library crates a Cargo
// workspace implicitly depends on. Every sysroot crate is Edition2015 —
// carried over from the original rust-analyzer implementation this spec
// distills (see SPEC_FULL.md Supplemented Features #6).
type Sysroot struct {
	Crates []SysrootCrate
	StdName string
}

// Std returns the name of the "std" crate if the sysroot has one.
func (s *Sysroot) Std() (string, bool) {
	if s.StdName == "" {
		return "", false
	}
	return s.StdName, true
}

// DiscoverSysroot locates the active toolchain's sysroot via
// `rustc --print sysroot` and enumerates the standard-library crates found
// under lib/rustlib/src/rust/library.
func DiscoverSysroot() (*Sysroot, error) {
	cmd := exec.Command("rustc", "--print", "sysroot")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("crategraph: rustc --print sysroot: %w", err)
	}
	root := strings.TrimSpace(string(out))

	libraryDir := filepath.Join(root, "lib", "rustlib", "src", "rust", "library")
	entries, err := os.ReadDir(libraryDir)
	if err != nil {
		return nil, fmt.Errorf("crategraph: read sysroot library dir: %w", err)
	}

	sysroot := &Sysroot{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		lib := filepath.Join(libraryDir, name, "src", "lib.rs")
		if _, err := os.Stat(lib); err != nil {
			continue
		}
		deps := scanCargoTomlDepNames(filepath.Join(libraryDir, name, "Cargo.toml"))
		sysroot.Crates = append(sysroot.Crates, SysrootCrate{Name: name, Root: lib, Deps: deps})
		if name == "std" {
			sysroot.StdName = name
		}
	}
	return sysroot, nil
}

// scanCargoTomlDepNames does a minimal line-oriented scan of a Cargo.toml's
// [dependencies] table for dependency names, mirroring
// onedusk-pd/internal/graph/resolve.go's scanGoMod — a hand-rolled scan
// rather than a full TOML parser, since only bare dependency names are
// needed and the sysroot's own Cargo.tomls are simple path-dependency
// tables.
func scanCargoTomlDepNames(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var names []string
	inDeps := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inDeps = line == "[dependencies]"
			continue
		}
		if !inDeps || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.Index(line, "="); idx > 0 {
			names = append(names, strings.TrimSpace(line[:idx]))
		}
	}
	return names
}
