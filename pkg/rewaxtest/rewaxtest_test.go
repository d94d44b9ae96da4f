package rewaxtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/rewax/pkg/rewax"
	"github.com/vango-dev/rewax/pkg/vdom"
)

func counter(s *rewax.Instance) string {
	n := rewax.UseState(s, 0)
	return s.Bind(
		`<button id="inc" onclick="`, func() { n.Set(n.Get() + 1) }, `">+</button>`,
		`<span id="out">`, n.Get(), `</span>`,
	)
}

func TestHarnessCounter(t *testing.T) {
	h := New(t).Mount(counter)

	h.ExpectText("out", "0")
	h.Click("inc")
	h.Click("inc")
	h.ExpectText("out", "2")

	if h.Redraws() != 3 {
		t.Errorf("Redraws = %d, want 3", h.Redraws())
	}
	if h.LastPatches() != 1 {
		t.Errorf("LastPatches = %d, want 1", h.LastPatches())
	}
	h.ExpectContains(`<span id="out">2</span>`)
	h.ExpectNotContains("<p>")
}

func TestHarnessInput(t *testing.T) {
	h := New(t)
	var name *rewax.Cell[string]
	h.Mount(func(s *rewax.Instance) string {
		name = rewax.UseState(s, "")
		return `<input id="name" oninput="` + rewax.HandleInput(s, name, "") + `">`
	})

	h.Input("name", "Grace")
	h.ExpectAttribute("name", "value", "Grace")
	if name.Get() != "Grace" {
		t.Errorf("cell = %q", name.Get())
	}
	if h.Redraws() != 1 {
		t.Errorf("input caused a redraw")
	}
}

func TestHarnessTree(t *testing.T) {
	h := New(t).Mount(func(*rewax.Instance) string {
		return `<ul><li data-key="a">A</li></ul>`
	})

	want := []*vdom.VNode{
		vdom.El("ul", vdom.El("li", vdom.A("data-key", "a"), "A")),
	}
	opts := cmp.Options{
		cmpopts.IgnoreFields(vdom.VNode{}, "HID"),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(want, h.Tree(), opts); diff != "" {
		t.Errorf("tree (-want +got):\n%s", diff)
	}
}

func TestLastPatchesBeforeMount(t *testing.T) {
	h := New(t)
	if h.LastPatches() != -1 {
		t.Errorf("LastPatches = %d, want -1", h.LastPatches())
	}
}
