package rewaxtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/rewax/pkg/dom"
	"github.com/vango-dev/rewax/pkg/rewax"
	"github.com/vango-dev/rewax/pkg/vdom"
)

// Harness drives one mounted instance inside its own document.
type Harness struct {
	t         testing.TB
	Runtime   *rewax.Runtime
	Doc       *dom.Document
	Container *html.Node
	Instance  *rewax.Instance

	patcher *countingPatcher
}

// countingPatcher records the size of every patch set it applies.
type countingPatcher struct {
	inner   *dom.Patcher
	applied []int
}

func (p *countingPatcher) Diff(container *html.Node, markup string) (*dom.PatchSet, error) {
	return p.inner.Diff(container, markup)
}

func (p *countingPatcher) Apply(container *html.Node, ps *dom.PatchSet) error {
	p.applied = append(p.applied, ps.Len())
	return p.inner.Apply(container, ps)
}

// New creates a harness with an empty <div id="app"> container. Options are
// passed to the runtime after the harness's own host, patcher and logger,
// so they can override any of them.
func New(t testing.TB, opts ...rewax.Option) *Harness {
	t.Helper()
	doc, err := dom.NewDocument(`<div id="app"></div>`)
	if err != nil {
		t.Fatalf("rewaxtest: %v", err)
	}

	h := &Harness{
		t:         t,
		Doc:       doc,
		Container: doc.GetElementByID("app"),
		patcher:   &countingPatcher{},
	}
	base := []rewax.Option{
		rewax.WithHost(doc),
		rewax.WithPatcher(h.patcher),
		rewax.WithLogger(discard()),
	}
	h.Runtime = rewax.NewRuntime(append(base, opts...)...)
	h.patcher.inner = dom.NewPatcher(h.Runtime.Config().Diff)
	h.Instance = h.Runtime.NewInstance()
	return h
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Mount renders fn into the container.
func (h *Harness) Mount(fn func(s *rewax.Instance) string) *Harness {
	h.t.Helper()
	s := h.Instance
	if _, err := s.Render(func() string { return fn(s) }, h.Container); err != nil {
		h.t.Fatalf("rewaxtest: Render: %v", err)
	}
	return h
}

// ByID returns the element with the given id or fails the test.
func (h *Harness) ByID(id string) *html.Node {
	h.t.Helper()
	n, err := h.Doc.MustGetElementByID(id)
	if err != nil {
		h.t.Fatalf("rewaxtest: #%s: %v", id, err)
	}
	return n
}

// Click fires a click at the element with the given id.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.fire(id, "click", "")
}

// Input fires an input event carrying value at the element with the given id.
func (h *Harness) Input(id, value string) {
	h.t.Helper()
	h.fire(id, "input", value)
}

// Fire fires an arbitrary event type.
func (h *Harness) Fire(id, eventType, value string) {
	h.t.Helper()
	h.fire(id, eventType, value)
}

func (h *Harness) fire(id, eventType, value string) {
	h.t.Helper()
	found, err := dom.Fire(h.ByID(id), eventType, value, h.Runtime)
	if err != nil {
		h.t.Fatalf("rewaxtest: %s on #%s: %v", eventType, id, err)
	}
	if !found {
		h.t.Fatalf("rewaxtest: no on%s handler on #%s or its ancestors", eventType, id)
	}
}

// Redraw redraws the mounted instance.
func (h *Harness) Redraw() {
	h.t.Helper()
	if err := h.Instance.Redraw(); err != nil {
		h.t.Fatalf("rewaxtest: Redraw: %v", err)
	}
}

// HTML returns the current markup inside the container.
func (h *Harness) HTML() string {
	return dom.InnerHTML(h.Container)
}

// Redraws returns the number of patch sets applied so far.
func (h *Harness) Redraws() int {
	return len(h.patcher.applied)
}

// LastPatches returns the size of the last applied patch set, or -1.
func (h *Harness) LastPatches() int {
	if len(h.patcher.applied) == 0 {
		return -1
	}
	return h.patcher.applied[len(h.patcher.applied)-1]
}

// Tree returns the container's children as virtual nodes, for structural
// comparison with go-cmp.
func (h *Harness) Tree() []*vdom.VNode {
	v, _ := dom.Snapshot(h.Container)
	return v.Children
}

// ExpectContains asserts that the container markup contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if out := h.HTML(); !strings.Contains(out, expected) {
		h.t.Errorf("expected markup to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that the container markup does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if out := h.HTML(); strings.Contains(out, unexpected) {
		h.t.Errorf("expected markup to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectText asserts the text content of the element with the given id.
func (h *Harness) ExpectText(id, want string) {
	h.t.Helper()
	if got := dom.TextContent(h.ByID(id)); got != want {
		h.t.Errorf("#%s text = %q, want %q", id, got, want)
	}
}

// ExpectAttribute asserts an attribute value of the element with the given id.
func (h *Harness) ExpectAttribute(id, attr, want string) {
	h.t.Helper()
	got, ok := dom.GetAttribute(h.ByID(id), attr)
	if !ok {
		h.t.Errorf("#%s has no %s attribute", id, attr)
		return
	}
	if got != want {
		h.t.Errorf("#%s %s = %q, want %q", id, attr, got, want)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
