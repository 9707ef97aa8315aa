package classgraph

import (
	"testing"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

// buildTestGraph constructs a Graph directly from node data, bypassing
// Build (which needs a real *dex.Image), so the linking and query logic
// can be exercised in isolation. typeCount is left at 0 (unknown), so
// Validate's out-of-pool check never fires; use buildTestGraphWithPool
// for tests that need it.
func buildTestGraph(nodes map[model.TypeID]*node) *Graph {
	return buildTestGraphWithPool(nodes, 0)
}

func buildTestGraphWithPool(nodes map[model.TypeID]*node, typeCount uint32) *Graph {
	g := &Graph{nodes: nodes, typeCount: typeCount}
	g.linkSubtypes()
	g.computeRoots()
	return g
}

func TestGraphRootsAndSupertypes(t *testing.T) {
	// 0 (no super, root) <- 1 (super 0) <- 2 (super 1)
	// 3 has a super (99) that isn't defined in this image, so it's also a root.
	nodes := map[model.TypeID]*node{
		0: {},
		1: {hasSuper: true, super: 0},
		2: {hasSuper: true, super: 1},
		3: {hasSuper: true, super: 99},
	}
	g := buildTestGraph(nodes)

	roots := g.Roots()
	rootSet := map[model.TypeID]bool{}
	for _, r := range roots {
		rootSet[r] = true
	}
	if !rootSet[0] || !rootSet[3] {
		t.Errorf("expected 0 and 3 in roots, got %v", roots)
	}
	if rootSet[1] || rootSet[2] {
		t.Errorf("1 and 2 have defined superclasses, should not be roots: %v", roots)
	}

	chain := g.Supertypes(2)
	if len(chain) != 2 || chain[0] != 1 || chain[1] != 0 {
		t.Errorf("got Supertypes(2) = %v, want [1 0]", chain)
	}

	if got := g.Supertypes(3); len(got) != 0 {
		t.Errorf("got Supertypes(3) = %v, want empty (super not in image)", got)
	}
}

func TestGraphSubtypes(t *testing.T) {
	nodes := map[model.TypeID]*node{
		0: {},
		1: {hasSuper: true, super: 0},
		2: {hasSuper: true, super: 0},
	}
	g := buildTestGraph(nodes)

	subs := g.Subtypes(0)
	if len(subs) != 2 {
		t.Fatalf("got %d subtypes of 0, want 2", len(subs))
	}
}

func TestGraphInterfacesLinkSubtypes(t *testing.T) {
	nodes := map[model.TypeID]*node{
		10: {}, // interface
		11: {interfaces: []model.TypeID{10}},
	}
	g := buildTestGraph(nodes)

	ifaces := g.Interfaces(11)
	if len(ifaces) != 1 || ifaces[0] != 10 {
		t.Errorf("got Interfaces(11) = %v, want [10]", ifaces)
	}
	subs := g.Subtypes(10)
	if len(subs) != 1 || subs[0] != 11 {
		t.Errorf("got Subtypes(10) = %v, want [11]", subs)
	}
}

func TestGraphContains(t *testing.T) {
	g := buildTestGraph(map[model.TypeID]*node{5: {}})
	if !g.Contains(5) {
		t.Error("expected Contains(5) to be true")
	}
	if g.Contains(6) {
		t.Error("expected Contains(6) to be false")
	}
}

func TestValidateDetectsCycle(t *testing.T) {
	// 0 -> super 1 -> super 0: a cycle.
	nodes := map[model.TypeID]*node{
		0: {hasSuper: true, super: 1},
		1: {hasSuper: true, super: 0},
	}
	g := buildTestGraph(nodes)

	result := g.Validate()
	if result.OK() {
		t.Fatal("expected Validate to report the superclass cycle")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.TypeID == 0 || issue.TypeID == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an issue for type 0 or 1, got %+v", result.Issues)
	}
}

func TestValidateCleanHierarchy(t *testing.T) {
	nodes := map[model.TypeID]*node{
		0: {},
		1: {hasSuper: true, super: 0},
	}
	g := buildTestGraph(nodes)

	result := g.Validate()
	if !result.OK() {
		t.Errorf("expected no issues, got %+v", result.Issues)
	}
}

func TestValidateIgnoresInPoolTypeWithNoClassDef(t *testing.T) {
	// 1's superclass (99) is inside the 100-entry type pool but has no
	// class_def_item of its own (e.g. a framework superclass) — not an
	// error, since plenty of well-formed DEX files look exactly like this.
	nodes := map[model.TypeID]*node{
		1: {hasSuper: true, super: 99},
	}
	g := buildTestGraphWithPool(nodes, 100)

	result := g.Validate()
	if !result.OK() {
		t.Errorf("expected no issues for an in-pool, undefined superclass, got %+v", result.Issues)
	}
}

func TestValidateDetectsOutOfPoolSuperclass(t *testing.T) {
	// Type pool only has 10 entries (0-9); superclass id 50 is beyond it.
	nodes := map[model.TypeID]*node{
		1: {hasSuper: true, super: 50},
	}
	g := buildTestGraphWithPool(nodes, 10)

	result := g.Validate()
	if result.OK() {
		t.Fatal("expected Validate to report the out-of-pool superclass")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.TypeID == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an issue for type 1, got %+v", result.Issues)
	}
}

func TestValidateDetectsOutOfPoolInterface(t *testing.T) {
	nodes := map[model.TypeID]*node{
		1: {interfaces: []model.TypeID{50}},
	}
	g := buildTestGraphWithPool(nodes, 10)

	result := g.Validate()
	if result.OK() {
		t.Fatal("expected Validate to report the out-of-pool interface")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.TypeID == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an issue for type 1, got %+v", result.Issues)
	}
}

func TestValidateSkipsOutOfPoolCheckWhenTypeCountUnknown(t *testing.T) {
	// buildTestGraph leaves typeCount at 0 (unknown); a super id that
	// would otherwise look out-of-pool must not be flagged.
	nodes := map[model.TypeID]*node{
		1: {hasSuper: true, super: 9999},
	}
	g := buildTestGraph(nodes)

	result := g.Validate()
	if !result.OK() {
		t.Errorf("expected no issues with typeCount unknown, got %+v", result.Issues)
	}
}
