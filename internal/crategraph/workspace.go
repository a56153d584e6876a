package crategraph

import (
	"path/filepath"
	"strings"
)

// WorkspaceModelKind discriminates the two WorkspaceModel variants.
type WorkspaceModelKind int

const (
	WorkspaceCargo WorkspaceModelKind = iota
	WorkspaceJSON
)

// WorkspaceModel is a tagged variant over {Cargo(..), Json(..)} — operations
// dispatch by case analysis rather than a shared base type (spec.md §9).
type WorkspaceModel struct {
	Kind WorkspaceModelKind

	Cargo   *CargoWorkspace // set iff Kind == WorkspaceCargo
	Sysroot *Sysroot        // set iff Kind == WorkspaceCargo

	JSON      *JsonProject // set iff Kind == WorkspaceJSON
	JSONRoots []JSONRoot   // denormalized copy of JSON.Roots for convenience
}

// Count returns the number of declared crates/packages in the workspace
// (ra/lib.rs's ProjectWorkspace::count, carried over per SPEC_FULL.md
// Supplemented Features #1).
func (m WorkspaceModel) Count() int {
	switch m.Kind {
	case WorkspaceJSON:
		return len(m.JSON.Crates)
	case WorkspaceCargo:
		return len(m.Cargo.Packages)
	default:
		return 0
	}
}

// Roots flattens the model into the []ProjectRoot list the file-crawler
// external collaborator consumes (ra/lib.rs's ProjectWorkspace::to_roots,
// SPEC_FULL.md Supplemented Features #3). Cargo sysroot crates are included
// as non-member roots whose test/example/bench subtrees should be skipped.
func (m WorkspaceModel) Roots() []ProjectRoot {
	switch m.Kind {
	case WorkspaceJSON:
		roots := make([]ProjectRoot, 0, len(m.JSON.Roots))
		for _, r := range m.JSON.Roots {
			roots = append(roots, ProjectRoot{Path: r.Path, IsMember: true})
		}
		return roots
	case WorkspaceCargo:
		roots := make([]ProjectRoot, 0, len(m.Cargo.Packages)+len(m.Sysroot.Crates))
		for _, pkg := range m.Cargo.Packages {
			roots = append(roots, ProjectRoot{Path: packageRootDir(pkg), IsMember: pkg.IsMember})
		}
		for _, c := range m.Sysroot.Crates {
			roots = append(roots, ProjectRoot{Path: filepath.Dir(filepath.Dir(c.Root)), IsMember: false})
		}
		return roots
	default:
		return nil
	}
}

// packageRootDir derives a package's root directory from its library
// target's root file, falling back to its first target if it has no
// library.
func packageRootDir(pkg *Package) string {
	if lib, ok := pkg.LibTarget(); ok {
		return filepath.Dir(filepath.Dir(lib.Root))
	}
	if len(pkg.Targets) > 0 {
		return filepath.Dir(filepath.Dir(pkg.Targets[0].Root))
	}
	return ""
}

// WorkspaceRootFor finds which workspace root contains path, if any
// (ra/lib.rs's ProjectWorkspace::workspace_root_for, SPEC_FULL.md
// Supplemented Features #2). For a Cargo model only the Cargo workspace
// root is matched; sysroot crate directories are not searched. For a JSON
// model the first declared root that prefixes path is returned.
func (m WorkspaceModel) WorkspaceRootFor(path string) (string, bool) {
	switch m.Kind {
	case WorkspaceCargo:
		if m.Cargo != nil && strings.HasPrefix(path, m.Cargo.Root) {
			return m.Cargo.Root, true
		}
		return "", false
	case WorkspaceJSON:
		for _, r := range m.JSON.Roots {
			if strings.HasPrefix(path, r.Path) {
				return r.Path, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
