package crategraph

import "testing"

func TestWorkspaceModel_Count(t *testing.T) {
	jsonModel := WorkspaceModel{
		Kind: WorkspaceJSON,
		JSON: &JsonProject{Crates: []JSONCrate{{}, {}}},
	}
	if got := jsonModel.Count(); got != 2 {
		t.Errorf("json Count = %d, want 2", got)
	}

	cargoModel := WorkspaceModel{
		Kind:  WorkspaceCargo,
		Cargo: &CargoWorkspace{Packages: []*Package{{}, {}, {}}},
	}
	if got := cargoModel.Count(); got != 3 {
		t.Errorf("cargo Count = %d, want 3", got)
	}
}

func TestWorkspaceModel_Roots_Cargo(t *testing.T) {
	pkg := &Package{
		Name:     "mylib",
		IsMember: true,
		Targets:  []Target{{Kind: TargetLib, Root: "/repo/mylib/src/lib.rs"}},
	}
	model := WorkspaceModel{
		Kind:  WorkspaceCargo,
		Cargo: &CargoWorkspace{Root: "/repo", Packages: []*Package{pkg}},
		Sysroot: &Sysroot{
			Crates: []SysrootCrate{{Name: "std", Root: "/sysroot/library/std/src/lib.rs"}},
		},
	}

	roots := model.Roots()
	if len(roots) != 2 {
		t.Fatalf("Roots() = %d entries, want 2", len(roots))
	}
	if roots[0].Path != "/repo/mylib" || !roots[0].IsMember {
		t.Errorf("roots[0] = %+v, want member /repo/mylib", roots[0])
	}
	if roots[1].Path != "/sysroot/library/std" || roots[1].IsMember {
		t.Errorf("roots[1] = %+v, want non-member /sysroot/library/std", roots[1])
	}
}

func TestWorkspaceModel_Roots_JSON(t *testing.T) {
	model := WorkspaceModel{
		Kind: WorkspaceJSON,
		JSON: &JsonProject{Roots: []JSONRoot{{Path: "/repo/a"}, {Path: "/repo/b"}}},
	}
	roots := model.Roots()
	if len(roots) != 2 || !roots[0].IsMember || !roots[1].IsMember {
		t.Fatalf("Roots() = %+v, want two member roots", roots)
	}
}

func TestWorkspaceModel_WorkspaceRootFor(t *testing.T) {
	model := WorkspaceModel{
		Kind:  WorkspaceCargo,
		Cargo: &CargoWorkspace{Root: "/repo"},
	}
	root, ok := model.WorkspaceRootFor("/repo/src/lib.rs")
	if !ok || root != "/repo" {
		t.Fatalf("WorkspaceRootFor = %q, %v, want /repo, true", root, ok)
	}
	if _, ok := model.WorkspaceRootFor("/elsewhere/lib.rs"); ok {
		t.Error("path outside the workspace root should not match")
	}
}
