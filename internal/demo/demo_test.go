package demo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	rerrors "github.com/vango-dev/rewax/internal/errors"
	"github.com/vango-dev/rewax/pkg/rewax"
	"github.com/vango-dev/rewax/pkg/rewaxtest"
)

func mountDemo(t *testing.T, c Component) *rewaxtest.Harness {
	t.Helper()
	return rewaxtest.New(t).Mount(c)
}

func TestLookup(t *testing.T) {
	if diff := cmp.Diff([]string{"counter", "todo", "toggle"}, Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	if _, err := Lookup("counter"); err != nil {
		t.Errorf("Lookup(counter): %v", err)
	}
	if _, err := Lookup("nope"); rerrors.CodeOf(err) != "R040" {
		t.Errorf("Lookup(nope) err = %v, want R040", err)
	}
}

func TestCounter(t *testing.T) {
	h := mountDemo(t, Counter)

	h.ExpectText("count", "0")
	h.Click("inc")
	h.Click("inc")
	h.Click("dec")
	h.ExpectText("count", "1")

	if h.LastPatches() != 1 {
		t.Errorf("LastPatches = %d, want a single text patch", h.LastPatches())
	}
}

func TestTodo(t *testing.T) {
	h := mountDemo(t, Todo)
	h.ExpectText("left", "2 left")

	h.Click("item-1")
	h.ExpectAttribute("item-1", "onclick", rewax.Reference(h.Instance.ID(), 1))
	h.ExpectText("left", "1 left")
	h.ExpectContains(`<li data-key="1" class="done">`)

	h.Input("draft", "  Test <it>  ")
	h.Click("add")
	h.ExpectText("item-3", "Test <it>")
	h.ExpectAttribute("draft", "value", "")
	h.ExpectText("left", "2 left")

	// Item 1 was the only done item; its hooks go with it.
	h.Click("remove-1")
	h.ExpectNotContains(`data-key="1"`)
	h.ExpectNotContains(`class="done"`)
	h.ExpectText("left", "2 left")

	if got := h.Instance.Store().Len(rewax.CategoryState); got != 5 {
		t.Errorf("state records = %d, want 5 (3 list-level + 2 items)", got)
	}
}

func TestTodoIgnoresBlankDraft(t *testing.T) {
	h := mountDemo(t, Todo)
	h.Input("draft", "   ")
	h.Click("add")
	h.ExpectText("left", "2 left")
}

func TestToggleDisposesPanel(t *testing.T) {
	h := mountDemo(t, Toggle)
	if h.Runtime.Len() != 1 {
		t.Fatalf("instances = %d, want 1", h.Runtime.Len())
	}

	h.Click("toggle")
	h.ExpectText("toggle", "Hide")
	h.Click("inc")
	h.Click("inc")
	h.ExpectText("count", "2")
	if h.Runtime.Len() != 2 {
		t.Errorf("instances = %d, want 2", h.Runtime.Len())
	}

	h.Click("toggle")
	h.ExpectNotContains(`id="count"`)
	if h.Runtime.Len() != 1 {
		t.Errorf("instances = %d after hiding, want 1", h.Runtime.Len())
	}

	h.Click("toggle")
	h.ExpectText("count", "0")
}
