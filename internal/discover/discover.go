// Package discover implements workspace discovery: starting from a
// user-supplied path, walk upward looking for a manifest and load the
// resulting WorkspaceModel (spec.md §6.3).
package discover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/modnav/internal/crategraph"
)

// DiscoveryFailure reports that no manifest could be found starting from a
// path (spec.md §7 "Discovery failure"). It is surfaced to the caller of
// Discover and never retried.
type DiscoveryFailure struct {
	StartPath string
}

func (e *DiscoveryFailure) Error() string {
	return fmt.Sprintf("can't find Cargo.toml at %s", e.StartPath)
}

const (
	rustProjectJSONName = "rust-project.json"
	cargoTomlName       = "Cargo.toml"
)

// findUpward walks from startPath toward the filesystem root looking for a
// file named name, returning the first match's directory-joined path.
func findUpward(startPath, name string) (string, bool) {
	dir := startPath
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Discover locates a workspace manifest reachable from startPath and loads
// it into a crategraph.WorkspaceModel, trying rust-project.json before
// Cargo.toml (original_source's find_rust_project_json precedence; see
// SPEC_FULL.md Supplemented Features #5 — spec.md's prose states the
// opposite order but the original implementation and its own worked
// scenarios agree rust-project.json wins).
func Discover(ctx context.Context, startPath string) (crategraph.WorkspaceModel, error) {
	if jsonPath, ok := findUpward(startPath, rustProjectJSONName); ok {
		return loadJSON(jsonPath)
	}
	if manifestPath, ok := findUpward(startPath, cargoTomlName); ok {
		return loadCargo(ctx, manifestPath)
	}
	return crategraph.WorkspaceModel{}, &DiscoveryFailure{StartPath: startPath}
}

func loadJSON(path string) (crategraph.WorkspaceModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return crategraph.WorkspaceModel{}, fmt.Errorf("discover: open %s: %w", path, err)
	}
	defer f.Close()

	proj, err := crategraph.DecodeJSONProject(f)
	if err != nil {
		return crategraph.WorkspaceModel{}, err
	}
	return crategraph.WorkspaceModel{
		Kind:      crategraph.WorkspaceJSON,
		JSON:      proj,
		JSONRoots: proj.Roots,
	}, nil
}

// loadCargo runs `cargo metadata` and `rustc --print sysroot` concurrently
// via errgroup, mirroring how a fan-out of independent external-process
// calls would be expressed with the teacher's stack (see SPEC_FULL.md's
// DOMAIN STACK entry for golang.org/x/sync).
func loadCargo(ctx context.Context, manifestPath string) (crategraph.WorkspaceModel, error) {
	var (
		cargoWS *crategraph.CargoWorkspace
		sysroot *crategraph.Sysroot
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ws, err := crategraph.DiscoverCargoWorkspace(manifestPath)
		if err != nil {
			return err
		}
		cargoWS = ws
		return nil
	})
	g.Go(func() error {
		sr, err := crategraph.DiscoverSysroot()
		if err != nil {
			return err
		}
		sysroot = sr
		return nil
	})
	if err := g.Wait(); err != nil {
		return crategraph.WorkspaceModel{}, err
	}

	return crategraph.WorkspaceModel{
		Kind:    crategraph.WorkspaceCargo,
		Cargo:   cargoWS,
		Sysroot: sysroot,
	}, nil
}
