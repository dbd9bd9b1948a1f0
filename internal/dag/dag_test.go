package dag

import "testing"

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := NewGraph()

	g.AddNode("base_users", nil)
	g.AddNode("enriched", nil)

	// enriched depends on (references) base_users
	if err := g.AddEdge("base_users", "enriched"); err != nil {
		t.Errorf("failed to add edge: %v", err)
	}

	if len(g.GetLeaves()) != 1 || g.GetLeaves()[0] != "enriched" {
		t.Errorf("expected enriched to be the only leaf, got %v", g.GetLeaves())
	}
}

func TestGraph_AddEdge_InvalidNodes(t *testing.T) {
	g := NewGraph()
	g.AddNode("base_users", nil)

	if err := g.AddEdge("base_users", "nonexistent"); err == nil {
		t.Error("expected error for nonexistent child node")
	}
	if err := g.AddEdge("nonexistent", "base_users"); err == nil {
		t.Error("expected error for nonexistent parent node")
	}
}

func TestGraph_AddEdge_SelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddNode("recursive_cte", nil)

	if err := g.AddEdge("recursive_cte", "recursive_cte"); err == nil {
		t.Error("expected error for self-loop")
	}
}

func TestGraph_HasCycle_NoCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("base_users", nil)
	g.AddNode("enriched", nil)
	g.AddNode("final", nil)

	g.AddEdge("base_users", "enriched")
	g.AddEdge("enriched", "final")

	if hasCycle, path := g.HasCycle(); hasCycle {
		t.Errorf("expected no cycle, but found: %v", path)
	}
}

func TestGraph_HasCycle_MutualCTEReference(t *testing.T) {
	// a references b's columns and b references a's -- an invalid WITH
	// clause the tracer must still recognize as non-DAG rather than pick
	// an arbitrary leaf.
	g := NewGraph()
	g.AddNode("a", nil)
	g.AddNode("b", nil)

	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	hasCycle, path := g.HasCycle()
	if !hasCycle {
		t.Error("expected cycle to be detected")
	}
	if len(path) == 0 {
		t.Error("expected cycle path to be non-empty")
	}
}

func TestGraph_TopologicalSort_Chain(t *testing.T) {
	g := NewGraph()
	g.AddNode("base_users", nil)
	g.AddNode("enriched", nil)
	g.AddNode("final", nil)

	g.AddEdge("base_users", "enriched")
	g.AddEdge("enriched", "final")

	sorted, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("failed to sort: %v", err)
	}
	if len(sorted) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(sorted))
	}

	positions := make(map[string]int)
	for i, node := range sorted {
		positions[node.ID] = i
	}
	if positions["base_users"] >= positions["enriched"] {
		t.Error("base_users should come before enriched")
	}
	if positions["enriched"] >= positions["final"] {
		t.Error("enriched should come before final")
	}
}

func TestGraph_TopologicalSort_WithCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", nil)
	g.AddNode("b", nil)

	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	if _, err := g.TopologicalSort(); err == nil {
		t.Error("expected error for cyclic graph")
	}
}

func TestGraph_GetLeaves_DiamondDependency(t *testing.T) {
	// enriched and audited both build on base_users; nothing references
	// either of them, so both are leaves and base_users is not.
	g := NewGraph()
	g.AddNode("base_users", nil)
	g.AddNode("enriched", nil)
	g.AddNode("audited", nil)

	g.AddEdge("base_users", "enriched")
	g.AddEdge("base_users", "audited")

	leaves := g.GetLeaves()
	if len(leaves) != 2 {
		t.Errorf("expected 2 leaves, got %d: %v", len(leaves), leaves)
	}
}

func TestGraph_GetLeaves_DuplicateEdgesCollapse(t *testing.T) {
	g := NewGraph()
	g.AddNode("base_users", nil)
	g.AddNode("enriched", nil)

	g.AddEdge("base_users", "enriched")
	g.AddEdge("base_users", "enriched") // duplicate reference, e.g. joined twice

	if len(g.edges["base_users"]) != 1 {
		t.Errorf("expected duplicate edge to collapse, got %v", g.edges["base_users"])
	}
}
