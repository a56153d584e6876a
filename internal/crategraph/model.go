// Package crategraph turns a description of a workspace — either
// discovered from a package manager's metadata plus its standard-library
// sysroot, or loaded from an explicit manifest — into a directed graph of
// compilation units with named dependency edges, suitable for downstream
// semantic analysis (spec.md §1).
package crategraph

import (
	"fmt"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// Edition is a versioned dialect tag attached per crate.
type Edition string

const (
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
)

// CrateID is a dense index into a CrateGraph.
type CrateID int

// crateNode is one node in the graph: a compilation unit's root file and
// edition.
type crateNode struct {
	Root    syntax.FileHandle
	Edition Edition
}

// dependency is one directed, named edge.
type dependency struct {
	Name string
	To   CrateID
}

// CrateGraph is a directed multigraph of compilation units: nodes are
// (root_file, edition) pairs, edges are (from, name, to) triples with name
// a crate-local alias. CrateGraph never contains a cycle: AddDep rejects
// any edge that would create one.
type CrateGraph struct {
	nodes []crateNode
	deps  map[CrateID][]dependency
}

// NewCrateGraph returns an empty graph.
func NewCrateGraph() *CrateGraph {
	return &CrateGraph{deps: make(map[CrateID][]dependency)}
}

// AddCrateRoot adds a new crate node and returns its ID.
func (g *CrateGraph) AddCrateRoot(root syntax.FileHandle, edition Edition) CrateID {
	id := CrateID(len(g.nodes))
	g.nodes = append(g.nodes, crateNode{Root: root, Edition: edition})
	return id
}

// CrateCount returns the number of crate nodes in the graph.
func (g *CrateGraph) CrateCount() int {
	return len(g.nodes)
}

// CrateRoot returns the root file of a crate.
func (g *CrateGraph) CrateRoot(id CrateID) syntax.FileHandle {
	return g.nodes[id].Root
}

// CrateEdition returns the edition of a crate.
func (g *CrateGraph) CrateEdition(id CrateID) Edition {
	return g.nodes[id].Edition
}

// Dependencies returns the (name, target) pairs from's outgoing edges point
// to, in the order they were added.
func (g *CrateGraph) Dependencies(from CrateID) []struct {
	Name string
	To   CrateID
} {
	deps := g.deps[from]
	out := make([]struct {
		Name string
		To   CrateID
	}, len(deps))
	for i, d := range deps {
		out[i] = struct {
			Name string
			To   CrateID
		}{Name: d.Name, To: d.To}
	}
	return out
}

// AddDep adds a named dependency edge from → to. It returns an error
// (without mutating the graph) if the edge would create a cycle; callers
// are expected to log and drop the edge on error rather than abort the
// whole projection (spec.md §4.6, §7).
func (g *CrateGraph) AddDep(from CrateID, name string, to CrateID) error {
	if from == to {
		// Self-loops are skipped by callers before reaching here in the
		// intra-package edge step (spec.md §4.6 step 4), but guard anyway:
		// a self-loop is trivially a cycle.
		return fmt.Errorf("crategraph: self-loop on crate %d", from)
	}
	if g.reaches(to, from) {
		return fmt.Errorf("crategraph: adding %d -> %d would create a cycle", from, to)
	}
	g.deps[from] = append(g.deps[from], dependency{Name: name, To: to})
	return nil
}

// reaches reports whether a DFS from start can reach target along existing
// edges — used to reject edges that would close a cycle.
func (g *CrateGraph) reaches(start, target CrateID) bool {
	if start == target {
		return true
	}
	visited := make(map[CrateID]bool)
	stack := []CrateID{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		if n == target {
			return true
		}
		for _, d := range g.deps[n] {
			if !visited[d.To] {
				stack = append(stack, d.To)
			}
		}
	}
	return false
}
