package render

import (
	"io"
	"reflect"
	"testing"

	"github.com/mabhi256/dexlens/dex"
)

// fakeRenderer is a minimal stand-in for a real Renderer, just enough to
// exercise registration and lookup without needing a decoded DEX image.
type fakeRenderer struct{ name string }

func (f fakeRenderer) Name() string      { return f.name }
func (f fakeRenderer) Extension() string { return ".fake" }
func (f fakeRenderer) RenderClass(*dex.Image, dex.Class, DisplayOptions, io.Writer) error {
	return nil
}
func (f fakeRenderer) RenderMethod(*dex.Image, dex.Class, dex.Method, io.Writer, int, bool) error {
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeRenderer{name: "one"})

	r, ok := reg.Get("one")
	if !ok {
		t.Fatal("expected renderer \"one\" to be registered")
	}
	if r.Name() != "one" {
		t.Errorf("got Name() = %q, want %q", r.Name(), "one")
	}

	if _, ok := reg.Get("missing"); ok {
		t.Error("expected Get on an unregistered name to report false")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeRenderer{name: "zebra"})
	reg.Register(fakeRenderer{name: "alpha"})
	reg.Register(fakeRenderer{name: "mid"})

	got := reg.Names()
	want := []string{"alpha", "mid", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got Names() = %v, want %v", got, want)
	}
}

func TestRegistryRegisterDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeRenderer{name: "dup"})

	defer func() {
		if recover() == nil {
			t.Error("expected registering \"dup\" twice to panic")
		}
	}()
	reg.Register(fakeRenderer{name: "dup"})
}

func TestNewRegistryIsIsolatedFromDefault(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeRenderer{name: "isolated-only"})

	if _, ok := Get("isolated-only"); ok {
		t.Error("expected the default registry to be unaffected by a standalone Registry")
	}
	if _, ok := reg.Get("isolated-only"); !ok {
		t.Error("expected the standalone Registry to contain its own registration")
	}
}

func TestPackageLevelRegisterAndGet(t *testing.T) {
	// The plain and raw renderers register themselves against the
	// default registry from their own init() funcs when imported
	// elsewhere in the module; this package alone only guarantees the
	// machinery works, not that any particular name is present.
	name := "render-test-fake"
	Register(fakeRenderer{name: name})

	r, ok := Get(name)
	if !ok || r.Name() != name {
		t.Errorf("expected %q to be registered against the default registry", name)
	}

	found := false
	for _, n := range Names() {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Names() to include %q, got %v", name, Names())
	}
}
