package crategraph

import (
	"context"
	"io"
)

// Store persists a projected CrateGraph for downstream semantic-analysis
// queries (spec.md §1). Implementations: KuzuCrateGraphStore (production,
// requires cgo), MemCrateGraphStore (testing and non-cgo builds) — the same
// two-tier shape as onedusk-pd/internal/graph.Store.
type Store interface {
	io.Closer

	InitSchema(ctx context.Context) error

	AddCrate(ctx context.Context, id CrateID, rootPath string, edition Edition) error
	AddDependency(ctx context.Context, from CrateID, name string, to CrateID) error

	// Dependencies returns the (name, targetCrateID) pairs recorded for
	// from, in insertion order.
	Dependencies(ctx context.Context, from CrateID) ([]StoredDependency, error)

	CrateCount(ctx context.Context) (int, error)
}

// StoredDependency is one persisted dependency edge, as read back from a
// Store.
type StoredDependency struct {
	Name string
	To   CrateID
}

// Persist writes every crate and dependency edge of g into store. It is a
// thin adapter between the in-memory CrateGraph a Project call returns and
// whichever Store an embedder wants durability in.
func Persist(ctx context.Context, g *CrateGraph, rootPaths func(CrateID) string, store Store) error {
	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	for id := 0; id < g.CrateCount(); id++ {
		cid := CrateID(id)
		if err := store.AddCrate(ctx, cid, rootPaths(cid), g.CrateEdition(cid)); err != nil {
			return err
		}
	}
	for id := 0; id < g.CrateCount(); id++ {
		cid := CrateID(id)
		for _, dep := range g.Dependencies(cid) {
			if err := store.AddDependency(ctx, cid, dep.Name, dep.To); err != nil {
				return err
			}
		}
	}
	return nil
}
