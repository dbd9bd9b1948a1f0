package format

import (
	"testing"

	"github.com/relsql/relsql/pkg/core"
)

func tableSource(name string) *core.TableSource {
	return &core.TableSource{Name: name}
}

func fromSelect(source core.TableRef) *core.SimpleSelect {
	return &core.SimpleSelect{From: &core.FromClause{Source: source}}
}

func TestCTELeaves_MarksOnlyUnreferencedTables(t *testing.T) {
	// base_users has no reference to any sibling; enriched selects from
	// base_users, so base_users is depended on and enriched is the leaf.
	w := &core.WithClause{Tables: []*core.CommonTable{
		{Name: "base_users", Query: &core.SelectStmt{Query: fromSelect(tableSource("raw_users"))}},
		{Name: "enriched", Query: &core.SelectStmt{Query: fromSelect(tableSource("base_users"))}},
	}}

	leaves, ok := cteLeaves(w)
	if !ok {
		t.Fatal("expected acyclic graph")
	}
	if leaves["base_users"] {
		t.Error("base_users is referenced by enriched, should not be a leaf")
	}
	if !leaves["enriched"] {
		t.Error("enriched is referenced by nobody, should be a leaf")
	}
}

func TestCTELeaves_InnerWithShadowsOuterName(t *testing.T) {
	// enriched's body has its own nested WITH defining "base_users", then
	// selects from that inner name -- not a reference to the outer sibling
	// CTE of the same name, so base_users must still come out a leaf.
	innerWith := &core.SelectStmt{
		With: &core.WithClause{Tables: []*core.CommonTable{
			{Name: "base_users", Query: &core.SelectStmt{Query: fromSelect(tableSource("raw_users"))}},
		}},
		Query: fromSelect(tableSource("base_users")),
	}
	w := &core.WithClause{Tables: []*core.CommonTable{
		{Name: "base_users", Query: &core.SelectStmt{Query: fromSelect(tableSource("raw_users"))}},
		{Name: "enriched", Query: innerWith},
	}}

	leaves, ok := cteLeaves(w)
	if !ok {
		t.Fatal("expected acyclic graph")
	}
	if !leaves["base_users"] {
		t.Error("outer base_users is shadowed by enriched's inner WITH, should still be a leaf")
	}
	if !leaves["enriched"] {
		t.Error("enriched is referenced by nobody, should be a leaf")
	}
}

func TestCTELeaves_MutualReferenceIsRejected(t *testing.T) {
	// a selects from b and b selects from a: an invalid WITH clause the
	// tracer must reject rather than pick an arbitrary leaf.
	w := &core.WithClause{Tables: []*core.CommonTable{
		{Name: "a", Query: &core.SelectStmt{Query: fromSelect(tableSource("b"))}},
		{Name: "b", Query: &core.SelectStmt{Query: fromSelect(tableSource("a"))}},
	}}

	leaves, ok := cteLeaves(w)
	if ok {
		t.Errorf("expected cyclic graph to be rejected, got leaves %v", leaves)
	}
	if leaves != nil {
		t.Errorf("expected nil leaves on cycle, got %v", leaves)
	}
}

func TestCTELeaves_SelfReferenceIsNotACycle(t *testing.T) {
	// a recursive CTE's own self-reference is filtered out before it ever
	// reaches the graph, so it must not trip cycle detection.
	w := &core.WithClause{
		Recursive: true,
		Tables: []*core.CommonTable{
			{Name: "counter", Query: &core.SelectStmt{Query: fromSelect(tableSource("counter"))}},
		},
	}

	leaves, ok := cteLeaves(w)
	if !ok {
		t.Fatal("expected self-reference to be filtered rather than treated as a cycle")
	}
	if !leaves["counter"] {
		t.Error("counter has no external dependents, should be a leaf")
	}
}
