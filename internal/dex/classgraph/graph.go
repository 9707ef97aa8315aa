// Package classgraph builds the class hierarchy implied by a DEX
// image's class_def_items: who extends whom, who implements what, and
// which classes are roots (no superclass recorded in this image).
package classgraph

import (
	"fmt"

	"github.com/mabhi256/dexlens/dex"
	"github.com/mabhi256/dexlens/internal/dex/model"
)

// node is one class_def_item's hierarchy-relevant fields, keyed by its
// own type id.
type node struct {
	classDefID model.ClassDefID
	hasSuper   bool
	super      model.TypeID
	interfaces []model.TypeID
	subtypes   []model.TypeID // direct children, filled in a second pass
}

// Graph is the class hierarchy of one Image's class_def_items. It
// indexes by type id, not class_def id, since supertype and interface
// references in the format are always type ids.
type Graph struct {
	nodes     map[model.TypeID]*node
	roots     []model.TypeID
	typeCount uint32 // image's type pool size; 0 means unknown (Validate skips the out-of-pool check)
}

// Build walks every class_def_item in img and links it to its
// superclass and interfaces. Classes referenced as a supertype or
// interface but not themselves defined in img (framework classes,
// typically) are leaves with no node of their own; Supertypes and
// Subtypes simply don't find them.
func Build(img *dex.Image) (*Graph, error) {
	g := &Graph{
		nodes:     make(map[model.TypeID]*node, img.ClassCount()),
		typeCount: img.TypeCount(),
	}

	err := img.IterClasses(func(c *dex.Class) error {
		n := &node{classDefID: c.ID()}

		if super, ok := c.SuperclassTypeID(); ok {
			n.hasSuper = true
			n.super = super
		}

		ifaces, err := c.InterfaceTypeIDs()
		if err != nil {
			return err
		}
		n.interfaces = ifaces

		typeIdx := c.TypeID()
		if _, dup := g.nodes[typeIdx]; dup {
			return fmt.Errorf("classgraph: duplicate class_def for type id %d", typeIdx)
		}
		g.nodes[typeIdx] = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.linkSubtypes()
	g.computeRoots()
	return g, nil
}

func (g *Graph) linkSubtypes() {
	for typeIdx, n := range g.nodes {
		if n.hasSuper {
			if parent, ok := g.nodes[n.super]; ok {
				parent.subtypes = append(parent.subtypes, typeIdx)
			}
		}
		for _, iface := range n.interfaces {
			if parent, ok := g.nodes[iface]; ok {
				parent.subtypes = append(parent.subtypes, typeIdx)
			}
		}
	}
}

func (g *Graph) computeRoots() {
	for typeIdx, n := range g.nodes {
		if !n.hasSuper {
			g.roots = append(g.roots, typeIdx)
			continue
		}
		if _, ok := g.nodes[n.super]; !ok {
			// Superclass isn't defined in this image (e.g. it's a
			// framework class like java.lang.Object); this class is
			// effectively a root of the graph we can see.
			g.roots = append(g.roots, typeIdx)
		}
	}
}

// Roots returns the type ids of classes whose superclass is either
// absent (NoIndex) or not itself defined in this image.
func (g *Graph) Roots() []model.TypeID {
	out := make([]model.TypeID, len(g.roots))
	copy(out, g.roots)
	return out
}

// Supertypes returns the chain of superclass type ids from typeIdx's
// immediate parent up to (but not including) the first ancestor not
// defined in this image. It does not include interfaces.
func (g *Graph) Supertypes(typeIdx model.TypeID) []model.TypeID {
	var chain []model.TypeID
	seen := map[model.TypeID]bool{typeIdx: true}
	cur := typeIdx
	for {
		n, ok := g.nodes[cur]
		if !ok || !n.hasSuper {
			return chain
		}
		if _, defined := g.nodes[n.super]; !defined {
			return chain
		}
		if seen[n.super] {
			return chain // cycle; Validate reports this separately
		}
		chain = append(chain, n.super)
		seen[n.super] = true
		cur = n.super
	}
}

// Interfaces returns the type ids a class directly implements.
func (g *Graph) Interfaces(typeIdx model.TypeID) []model.TypeID {
	n, ok := g.nodes[typeIdx]
	if !ok {
		return nil
	}
	out := make([]model.TypeID, len(n.interfaces))
	copy(out, n.interfaces)
	return out
}

// Subtypes returns the type ids of classes that directly extend or
// implement typeIdx (one level, not transitive).
func (g *Graph) Subtypes(typeIdx model.TypeID) []model.TypeID {
	n, ok := g.nodes[typeIdx]
	if !ok {
		return nil
	}
	out := make([]model.TypeID, len(n.subtypes))
	copy(out, n.subtypes)
	return out
}

// Contains reports whether typeIdx has a class_def_item in this image.
func (g *Graph) Contains(typeIdx model.TypeID) bool {
	_, ok := g.nodes[typeIdx]
	return ok
}
