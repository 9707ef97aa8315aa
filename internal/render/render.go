// Package render turns decoded DEX entities into display text.
// Renderers self-register at init time with a package-level Registry
// rather than being discovered by reflection, so the set of available
// renderers is always a static, explicit list.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/mabhi256/dexlens/dex"
)

// DisplayOptions tunes what a Renderer includes in its output.
type DisplayOptions struct {
	ShowRaw bool   // also show access flags and each instruction's raw bytes
	Indent  string // prefix written before every top-level line
}

// Renderer turns decoded entities into text for one specific
// presentation (e.g. pool references resolved to names, or left as
// raw ids), writing directly to w rather than building a string.
type Renderer interface {
	Name() string
	Extension() string
	RenderClass(img *dex.Image, class dex.Class, opts DisplayOptions, w io.Writer) error
	RenderMethod(img *dex.Image, class dex.Class, method dex.Method, w io.Writer, indent int, emitRawBytes bool) error
}

// Registry is the set of renderers available by name.
type Registry struct {
	byName map[string]Renderer
}

// NewRegistry returns an empty Registry for isolated use (tests build
// their own instead of polluting the package-level default).
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

var defaultRegistry = NewRegistry()

// Register adds r to reg. A second registration under the same name
// is a programming error and panics.
func (reg *Registry) Register(r Renderer) {
	if _, exists := reg.byName[r.Name()]; exists {
		panic(fmt.Sprintf("render: renderer %q already registered", r.Name()))
	}
	reg.byName[r.Name()] = r
}

// Get looks up a registered renderer by name.
func (reg *Registry) Get(name string) (Renderer, bool) {
	r, ok := reg.byName[name]
	return r, ok
}

// Names returns every registered renderer name, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.byName))
	for name := range reg.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds r to the default registry. Renderers call this from
// an init() function.
func Register(r Renderer) { defaultRegistry.Register(r) }

// Get looks up a registered renderer by name in the default registry.
func Get(name string) (Renderer, bool) { return defaultRegistry.Get(name) }

// Names returns every renderer name registered against the default
// registry, sorted.
func Names() []string { return defaultRegistry.Names() }
