package crategraph

import "testing"

func TestCrateGraph_AddDepRejectsCycle(t *testing.T) {
	g := NewCrateGraph()
	a := g.AddCrateRoot(1, Edition2018)
	b := g.AddCrateRoot(2, Edition2018)
	c := g.AddCrateRoot(3, Edition2018)

	if err := g.AddDep(a, "b", b); err != nil {
		t.Fatalf("a->b: %v", err)
	}
	if err := g.AddDep(b, "c", c); err != nil {
		t.Fatalf("b->c: %v", err)
	}
	if err := g.AddDep(c, "a", a); err == nil {
		t.Fatal("c->a should have been rejected as a cycle")
	}

	if got := len(g.Dependencies(c)); got != 0 {
		t.Fatalf("Dependencies(c) = %d, want 0 (rejected edge must not be added)", got)
	}
}

func TestCrateGraph_AddDepRejectsSelfLoop(t *testing.T) {
	g := NewCrateGraph()
	a := g.AddCrateRoot(1, Edition2018)
	if err := g.AddDep(a, "self", a); err == nil {
		t.Fatal("self-loop should have been rejected")
	}
}

func TestCrateGraph_DependenciesOrder(t *testing.T) {
	g := NewCrateGraph()
	a := g.AddCrateRoot(1, Edition2018)
	b := g.AddCrateRoot(2, Edition2018)
	c := g.AddCrateRoot(3, Edition2018)

	_ = g.AddDep(a, "b", b)
	_ = g.AddDep(a, "c", c)

	deps := g.Dependencies(a)
	if len(deps) != 2 || deps[0].Name != "b" || deps[1].Name != "c" {
		t.Fatalf("Dependencies(a) = %+v, want insertion order [b, c]", deps)
	}
}
