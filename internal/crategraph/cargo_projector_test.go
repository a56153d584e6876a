package crategraph

import (
	"bytes"
	"testing"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// fakeLoad returns a Loader over a fixed set of known paths, each mapped to
// a distinct FileHandle in the order first seen.
func fakeLoad() func(path string) (syntax.FileHandle, bool) {
	next := uint32(0)
	known := map[string]syntax.FileHandle{}
	return func(path string) (syntax.FileHandle, bool) {
		if h, ok := known[path]; ok {
			return h, true
		}
		h := syntax.FileHandle(next)
		next++
		known[path] = h
		return h, true
	}
}

func TestProjectCargo_IntraAndInterPackageEdges(t *testing.T) {
	libPkg := &Package{Name: "mylib", Edition: Edition2018, IsMember: true}
	libPkg.Targets = []Target{
		{Name: "mylib", Kind: TargetLib, Root: "/repo/mylib/src/lib.rs"},
	}

	binPkg := &Package{Name: "mybin", Edition: Edition2018, IsMember: true}
	binPkg.Targets = []Target{
		{Name: "mybin", Kind: TargetBin, Root: "/repo/mybin/src/main.rs"},
	}
	binPkg.Dependencies = []PackageDep{{Name: "mylib", Pkg: libPkg}}

	ws := &CargoWorkspace{Root: "/repo", Packages: []*Package{libPkg, binPkg}}
	sysroot := &Sysroot{
		Crates:  []SysrootCrate{{Name: "std", Root: "/sysroot/std/src/lib.rs"}},
		StdName: "std",
	}

	var diag bytes.Buffer
	model := WorkspaceModel{Kind: WorkspaceCargo, Cargo: ws, Sysroot: sysroot}
	g := Project(model, fakeLoad(), &diag)

	// std + mylib (lib) + mybin (bin) = 3 crates.
	if g.CrateCount() != 3 {
		t.Fatalf("CrateCount = %d, want 3", g.CrateCount())
	}

	var binID, libID, stdID CrateID
	for i := 0; i < 3; i++ {
		switch g.CrateRoot(CrateID(i)) {
		case 0:
			stdID = CrateID(i)
		case 1:
			libID = CrateID(i)
		case 2:
			binID = CrateID(i)
		}
	}

	binDeps := g.Dependencies(binID)
	names := map[string]CrateID{}
	for _, d := range binDeps {
		names[d.Name] = d.To
	}
	if names["mylib"] != libID {
		t.Errorf("mybin should depend on mylib's library target")
	}
	if names["std"] != stdID {
		t.Errorf("mybin should depend on std")
	}

	libDeps := g.Dependencies(libID)
	foundStd := false
	for _, d := range libDeps {
		if d.Name == "std" {
			foundStd = true
		}
	}
	if !foundStd {
		t.Errorf("mylib should also depend on std")
	}
}

func TestProjectCargo_SelfLoopSkipped(t *testing.T) {
	// A package whose sole target IS its library target must not get a
	// self-referential "package name" edge (spec.md §4.6 step 4).
	libPkg := &Package{Name: "onlylib", Edition: Edition2018, IsMember: true}
	libPkg.Targets = []Target{
		{Name: "onlylib", Kind: TargetLib, Root: "/repo/onlylib/src/lib.rs"},
	}
	ws := &CargoWorkspace{Root: "/repo", Packages: []*Package{libPkg}}
	sysroot := &Sysroot{}

	model := WorkspaceModel{Kind: WorkspaceCargo, Cargo: ws, Sysroot: sysroot}
	g := Project(model, fakeLoad(), &bytes.Buffer{})

	if g.CrateCount() != 1 {
		t.Fatalf("CrateCount = %d, want 1", g.CrateCount())
	}
	if deps := g.Dependencies(CrateID(0)); len(deps) != 0 {
		t.Fatalf("self-loop must be skipped, got %+v", deps)
	}
}
