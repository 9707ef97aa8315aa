package classgraph

import (
	"fmt"

	"github.com/mabhi256/dexlens/internal/dex/model"
)

// Issue is one problem Validate found with the hierarchy.
type Issue struct {
	TypeID model.TypeID
	Reason string
}

// ValidationResult summarizes the structural checks Validate ran.
type ValidationResult struct {
	Issues []Issue
}

// OK reports whether validation found nothing wrong.
func (v *ValidationResult) OK() bool { return len(v.Issues) == 0 }

// Validate checks the graph for superclass cycles and for superclass
// or interface type ids that fall outside the type pool entirely. A
// type id inside the pool with no class_def_item of its own (a
// framework superclass this image doesn't define, e.g.
// java.lang.Object) is expected and not reported — only an id beyond
// the pool's own size is flagged. class_def_item's superclass_idx and
// interfaces_off are read as raw uint32s with no such bounds check at
// parse time (parser.ClassDefAt), so this pass is where an
// out-of-pool reference actually gets caught.
func (g *Graph) Validate() *ValidationResult {
	result := &ValidationResult{}

	for typeIdx := range g.nodes {
		if g.superCycle(typeIdx) {
			result.Issues = append(result.Issues, Issue{
				TypeID: typeIdx,
				Reason: "superclass chain cycles back to itself",
			})
		}
	}

	for typeIdx, n := range g.nodes {
		if n.hasSuper && g.outOfPool(n.super) {
			result.Issues = append(result.Issues, Issue{
				TypeID: typeIdx,
				Reason: fmt.Sprintf("superclass type id %d is outside the type pool (size %d)", n.super, g.typeCount),
			})
		}
		for _, iface := range n.interfaces {
			if g.outOfPool(iface) {
				result.Issues = append(result.Issues, Issue{
					TypeID: typeIdx,
					Reason: fmt.Sprintf("interface type id %d is outside the type pool (size %d)", iface, g.typeCount),
				})
			}
		}
	}

	return result
}

// outOfPool reports whether id is beyond the image's type pool size.
// A zero typeCount means the graph was built without that information
// (e.g. a hand-built test graph) and the check is skipped rather than
// flagging everything.
func (g *Graph) outOfPool(id model.TypeID) bool {
	return g.typeCount > 0 && uint32(id) >= g.typeCount
}

func (g *Graph) superCycle(start model.TypeID) bool {
	seen := map[model.TypeID]bool{start: true}
	cur := start
	for {
		n, ok := g.nodes[cur]
		if !ok || !n.hasSuper {
			return false
		}
		if seen[n.super] {
			return true
		}
		seen[n.super] = true
		cur = n.super
	}
}
