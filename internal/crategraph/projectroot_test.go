package crategraph

import "testing"

func TestProjectRoot_IncludeDir(t *testing.T) {
	member := ProjectRoot{Path: "/repo", IsMember: true}
	external := ProjectRoot{Path: "/repo/.cargo/registry/foo", IsMember: false}

	tests := []struct {
		root       ProjectRoot
		components []string
		want       bool
	}{
		{member, []string{"src"}, true},
		{member, []string{"target"}, false},
		{member, []string{"src", "node_modules"}, false},
		{member, []string{".git"}, false},
		{member, []string{"src", ".hidden"}, false},
		{member, []string{"tests"}, true}, // member roots keep their tests dir
		{external, []string{"tests"}, false},
		{external, []string{"examples"}, false},
		{external, []string{"src"}, true},
		{member, []string{"llvm-project"}, false},
	}
	for _, tt := range tests {
		if got := tt.root.IncludeDir(tt.components); got != tt.want {
			t.Errorf("IncludeDir(%v) on %+v = %v, want %v", tt.components, tt.root, got, tt.want)
		}
	}
}

func TestProjectRoot_IncludeFile(t *testing.T) {
	r := ProjectRoot{Path: "/repo", IsMember: true}
	if !r.IncludeFile("/repo/src/lib.rs") {
		t.Error("want .rs file included")
	}
	if r.IncludeFile("/repo/Cargo.toml") {
		t.Error("want non-.rs file excluded")
	}
}
