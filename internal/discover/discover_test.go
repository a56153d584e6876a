package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/modnav/internal/crategraph"
)

func TestDiscover_PrefersRustProjectJSONOverCargoToml(t *testing.T) {
	dir := t.TempDir()

	jsonDoc := `{"roots": [{"path": "` + dir + `"}], "crates": []}`
	if err := os.WriteFile(filepath.Join(dir, "rust-project.json"), []byte(jsonDoc), 0o644); err != nil {
		t.Fatalf("write rust-project.json: %v", err)
	}
	// A Cargo.toml also present must not be reached, since loadCargo shells
	// out to `cargo metadata` and would fail this test if invoked.
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname=\"x\"\n"), 0o644); err != nil {
		t.Fatalf("write Cargo.toml: %v", err)
	}

	model, err := Discover(context.Background(), dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if model.Kind != crategraph.WorkspaceJSON {
		t.Fatalf("Kind = %v, want WorkspaceJSON", model.Kind)
	}
}

func TestDiscover_WalksUpwardForManifest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	jsonDoc := `{"roots": [], "crates": []}`
	if err := os.WriteFile(filepath.Join(root, "rust-project.json"), []byte(jsonDoc), 0o644); err != nil {
		t.Fatalf("write rust-project.json: %v", err)
	}

	model, err := Discover(context.Background(), nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if model.Kind != crategraph.WorkspaceJSON {
		t.Fatalf("Kind = %v, want WorkspaceJSON", model.Kind)
	}
}

func TestDiscover_FailureWhenNoManifestFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover(context.Background(), dir)
	if err == nil {
		t.Fatal("expected a DiscoveryFailure")
	}
	df, ok := err.(*DiscoveryFailure)
	if !ok {
		t.Fatalf("err = %T, want *DiscoveryFailure", err)
	}
	want := "can't find Cargo.toml at " + dir
	if df.Error() != want {
		t.Errorf("Error() = %q, want %q", df.Error(), want)
	}
}
