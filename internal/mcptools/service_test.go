package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixtureCrate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "foo"), 0o755))

	files := map[string]string{
		"src/lib.rs":     "mod foo;\n\nfn top() {}\n",
		"src/foo/mod.rs": "pub struct Widget;\n\nmod bar;\n",
		"src/foo/bar.rs": "pub fn helper() {}\n",
	}
	for rel, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644))
	}
	return dir
}

func TestModuleNavService_ModuleTree(t *testing.T) {
	dir := writeFixtureCrate(t)
	svc := NewModuleNavService()

	_, out, err := svc.ModuleTree(context.Background(), nil, ModuleTreeInput{RepoPath: dir})
	require.NoError(t, err)
	require.Len(t, out.Modules, 3)

	byPath := make(map[string]ModuleNode, len(out.Modules))
	for _, m := range out.Modules {
		byPath[m.Path] = m
	}
	require.Contains(t, byPath, "")
	require.Contains(t, byPath, "foo")
	require.Contains(t, byPath, "foo.bar")
	require.Equal(t, filepath.FromSlash("src/foo/bar.rs"), byPath["foo.bar"].File)
	require.Empty(t, byPath["foo.bar"].Problems)
}

func TestModuleNavService_ModuleScope_CrateRoot(t *testing.T) {
	dir := writeFixtureCrate(t)
	svc := NewModuleNavService()

	_, out, err := svc.ModuleScope(context.Background(), nil, ModuleScopeInput{RepoPath: dir})
	require.NoError(t, err)

	names := make([]string, 0, len(out.Entries))
	for _, e := range out.Entries {
		names = append(names, e.Name)
	}
	require.Contains(t, names, "top")
}

func TestModuleNavService_ModuleScope_NestedModule(t *testing.T) {
	dir := writeFixtureCrate(t)
	svc := NewModuleNavService()

	_, out, err := svc.ModuleScope(context.Background(), nil, ModuleScopeInput{RepoPath: dir, ModulePath: "foo"})
	require.NoError(t, err)

	names := make([]string, 0, len(out.Entries))
	for _, e := range out.Entries {
		names = append(names, e.Name)
	}
	require.Contains(t, names, "Widget")
}

func TestModuleNavService_ModuleScope_UnknownModulePath(t *testing.T) {
	dir := writeFixtureCrate(t)
	svc := NewModuleNavService()

	_, _, err := svc.ModuleScope(context.Background(), nil, ModuleScopeInput{RepoPath: dir, ModulePath: "nope"})
	require.Error(t, err)
}

func TestModuleNavService_CrateGraph(t *testing.T) {
	dir := t.TempDir()
	doc := `{"roots": [{"path": "` + dir + `"}], "crates": [
		{"root_module": "` + filepath.ToSlash(filepath.Join(dir, "lib.rs")) + `", "edition": "2018", "deps": []}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rust-project.json"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte("fn f() {}"), 0o644))

	svc := NewModuleNavService()
	_, out, err := svc.CrateGraph(context.Background(), nil, CrateGraphInput{StartPath: dir})
	require.NoError(t, err)
	require.Len(t, out.Crates, 1)
	require.Equal(t, "2018", out.Crates[0].Edition)
}

func TestModuleNavService_CrateGraph_RequiresStartPath(t *testing.T) {
	svc := NewModuleNavService()
	_, _, err := svc.CrateGraph(context.Background(), nil, CrateGraphInput{})
	require.Error(t, err)
}
