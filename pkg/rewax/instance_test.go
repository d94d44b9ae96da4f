package rewax

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/rewax/pkg/dom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mount returns a runtime bound to a fresh document and its #app container.
func mount(t *testing.T, opts ...Option) (*Runtime, *dom.Document, *html.Node) {
	t.Helper()
	doc, err := dom.NewDocument(`<div id="app"></div>`)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	opts = append([]Option{WithHost(doc), WithLogger(quietLogger())}, opts...)
	return NewRuntime(opts...), doc, doc.GetElementByID("app")
}

func mustRender(t *testing.T, s *Instance, fn func() string, container *html.Node) {
	t.Helper()
	if _, err := s.Render(fn, container); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func mustRedraw(t *testing.T, s *Instance) {
	t.Helper()
	if err := s.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
}

func TestCounterPatchesTextOnly(t *testing.T) {
	rt, _, container := mount(t)
	app := rt.NewInstance()

	var inc string
	mustRender(t, app, func() string {
		count := UseState(app, 0)
		inc = app.Handle(func(Event) { count.Update(func(n int) int { return n + 1 }) })
		return fmt.Sprintf("<span>%d</span>", count.Get())
	}, container)

	if got := dom.InnerHTML(container); got != "<span>0</span>" {
		t.Fatalf("initial markup = %q", got)
	}
	span := container.FirstChild

	if err := rt.Invoke(inc, Event{Type: "click"}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if got := dom.InnerHTML(container); got != "<span>1</span>" {
		t.Errorf("markup after click = %q, want <span>1</span>", got)
	}
	if container.FirstChild != span {
		t.Error("span element was replaced instead of patched")
	}
}

func TestPreventRedraw(t *testing.T) {
	rt, _, container := mount(t)
	app := rt.NewInstance()

	var set string
	renders := 0
	mustRender(t, app, func() string {
		renders++
		v := UseState(app, "a")
		set = app.Handle(func(Event) { v.Set("b") }, PreventRedraw())
		return "<p>" + v.Get() + "</p>"
	}, container)

	if err := rt.Invoke(set, Event{}); err != nil {
		t.Fatal(err)
	}
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
	if got := dom.InnerHTML(container); got != "<p>a</p>" {
		t.Errorf("host patched without redraw: %q", got)
	}

	mustRedraw(t, app)
	if got := dom.InnerHTML(container); got != "<p>b</p>" {
		t.Errorf("after explicit redraw = %q", got)
	}
}

func TestStaticRenderWrapsMarkup(t *testing.T) {
	rt := NewRuntime(WithLogger(quietLogger()))
	s := rt.NewInstance()

	out, err := s.Render(func() string { return "<b>hi</b>" }, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf(`<div id="%s"><b>hi</b></div>`, s.ID())
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRedrawWithoutWrapper(t *testing.T) {
	rt := NewRuntime(WithLogger(quietLogger()))
	s := rt.NewInstance()
	mustRender(t, s, func() string { return "x" }, nil)

	err := s.Redraw()
	if !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("err = %v, want ErrContainerNotFound", err)
	}
	if !errors.Is(err, dom.ErrNotFound) {
		t.Error("error should wrap dom.ErrNotFound")
	}
}

func TestReentrantRedrawIsQueued(t *testing.T) {
	rt, _, container := mount(t)
	app := rt.NewInstance()

	passes := 0
	mustRender(t, app, func() string {
		passes++
		if passes == 1 {
			if err := app.Redraw(); err != nil {
				t.Errorf("nested Redraw returned %v", err)
			}
		}
		return fmt.Sprintf("<i>%d</i>", passes)
	}, container)

	if passes != 2 {
		t.Errorf("passes = %d, want 2 (initial + drained)", passes)
	}
	if got := dom.InnerHTML(container); got != "<i>2</i>" {
		t.Errorf("markup = %q", got)
	}
}

func TestRedrawLoopIsBounded(t *testing.T) {
	rt, _, container := mount(t, WithConfig(Config{MaxRedrawDrain: 3}))
	app := rt.NewInstance()

	passes := 0
	_, err := app.Render(func() string {
		passes++
		_ = app.Redraw()
		return "<i></i>"
	}, container)

	if !errors.Is(err, ErrRedrawLoop) {
		t.Fatalf("err = %v, want ErrRedrawLoop", err)
	}
	if passes != 4 {
		t.Errorf("passes = %d, want 4", passes)
	}

	// The instance recovers once the render function settles.
	mustRender(t, app, func() string { return "<i>ok</i>" }, container)
	if got := dom.InnerHTML(container); got != "<i>ok</i>" {
		t.Errorf("markup = %q", got)
	}
}

func TestDisposedInstanceDropsCallbacks(t *testing.T) {
	rt, doc, container := mount(t)
	app := rt.NewInstance()

	mustRender(t, app, func() string {
		return app.Bind(`<button id="b" onclick="`, func() {}, `">go</button>`)
	}, container)

	button := doc.GetElementByID("b")
	app.Dispose()

	if _, err := dom.Click(button, rt); !errors.Is(err, ErrCallbackNotFound) {
		t.Errorf("click after dispose: err = %v, want ErrCallbackNotFound", err)
	}
	if err := app.Redraw(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Redraw after dispose: err = %v, want ErrDisposed", err)
	}
}

func TestBindRegistersFunctions(t *testing.T) {
	rt, doc, container := mount(t)
	app := rt.NewInstance()

	mustRender(t, app, func() string {
		n := UseState(app, 0)
		return app.Bind(
			`<button id="inc" onclick="`, func() { n.Set(n.Get() + 1) }, `">+</button>`,
			`<button id="dec" onclick="`, func(Event) { n.Set(n.Get() - 1) }, `">-</button>`,
			`<output>`, n.Get(), `</output>`,
		)
	}, container)

	if got := rt.Registry().Len(app.ID()); got != 2 {
		t.Errorf("registered callbacks = %d, want 2", got)
	}
	ref, _ := dom.GetAttribute(doc.GetElementByID("dec"), "onclick")
	if want := Reference(app.ID(), 1); ref != want {
		t.Errorf("onclick = %q, want %q", ref, want)
	}

	for i := 0; i < 3; i++ {
		if _, err := dom.Click(doc.GetElementByID("inc"), rt); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := dom.Click(doc.GetElementByID("dec"), rt); err != nil {
		t.Fatal(err)
	}

	out := dom.QueryAll(container, "output")[0]
	if got := dom.TextContent(out); got != "2" {
		t.Errorf("output = %q, want 2", got)
	}
}

func TestHandleInput(t *testing.T) {
	type form struct {
		Name string
	}

	rt, doc, container := mount(t)
	app := rt.NewInstance()

	renders := 0
	var cell *Cell[form]
	var tags *Cell[map[string]any]
	var raw *Cell[string]
	mustRender(t, app, func() string {
		renders++
		cell = UseState(app, form{})
		tags = UseState(app, map[string]any{})
		raw = UseState(app, "")
		return `<input id="name" oninput="` + HandleInput(app, cell, "name") + `">` +
			`<input id="tag" oninput="` + HandleInput(app, tags, "tag") + `">` +
			`<input id="raw" oninput="` + HandleInput(app, raw, "") + `">`
	}, container)

	name := doc.GetElementByID("name")
	if _, err := dom.Input(name, "Ada", rt); err != nil {
		t.Fatal(err)
	}
	if _, err := dom.Input(doc.GetElementByID("tag"), "x", rt); err != nil {
		t.Fatal(err)
	}
	if _, err := dom.Input(doc.GetElementByID("raw"), "r", rt); err != nil {
		t.Fatal(err)
	}

	if got := cell.Get().Name; got != "Ada" {
		t.Errorf("Name = %q, want Ada", got)
	}
	if got := tags.Get()["tag"]; got != "x" {
		t.Errorf("tags[tag] = %v, want x", got)
	}
	if got := raw.Get(); got != "r" {
		t.Errorf("raw = %q, want r", got)
	}
	if v, _ := dom.GetAttribute(name, "value"); v != "Ada" {
		t.Errorf("value attribute = %q, want Ada", v)
	}
	if renders != 1 {
		t.Errorf("renders = %d, input must not redraw", renders)
	}
}

func TestAssignInputErrors(t *testing.T) {
	var n int
	var m map[string]string
	var p *struct{ A string }

	tests := []struct {
		name   string
		target any
		field  string
	}{
		{"non-string cell", &n, ""},
		{"nil map", &m, "k"},
		{"nil pointer", &p, "A"},
		{"missing field", &struct{ A string }{}, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := reflect.ValueOf(tt.target).Elem()
			if err := assignInput(v, tt.field, "x"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNestedScopeRedrawsInPlace(t *testing.T) {
	rt, doc, container := mount(t)
	app := rt.NewInstance()

	var child *Instance
	var label *Cell[string]
	var parentStart int
	mustRender(t, app, func() string {
		before := app.Handle(func(Event) {})
		child = UseScope(app)
		parentStart = app.callbackPointer
		inner, err := child.Render(func() string {
			label = UseState(child, "one")
			return `<em>` + label.Get() + `</em>`
		}, nil)
		if err != nil {
			t.Errorf("child Render: %v", err)
		}
		after := app.Handle(func(Event) {})
		return `<a onclick="` + before + `"></a>` + inner + `<a onclick="` + after + `"></a>`
	}, container)

	wrapper := doc.GetElementByID(child.ID())
	if wrapper == nil {
		t.Fatal("child wrapper not in host document")
	}
	if app.callbackPointer != 2 {
		t.Fatalf("parent callbackPointer = %d, want 2", app.callbackPointer)
	}

	label.Set("two")
	mustRedraw(t, child)

	if got := dom.InnerHTML(wrapper); got != "<em>two</em>" {
		t.Errorf("wrapper = %q", got)
	}
	if doc.GetElementByID(child.ID()) != wrapper {
		t.Error("wrapper element was replaced")
	}
	if app.callbackPointer != parentStart {
		t.Errorf("parent callbackPointer = %d, want restored %d", app.callbackPointer, parentStart)
	}
	if !strings.Contains(dom.InnerHTML(container), "<em>two</em>") {
		t.Errorf("container = %q", dom.InnerHTML(container))
	}
}

func TestRenderDisposed(t *testing.T) {
	rt := NewRuntime(WithLogger(quietLogger()))
	s := rt.NewInstance()
	s.Dispose()
	s.Dispose()

	if _, err := s.Render(func() string { return "" }, nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("err = %v, want ErrDisposed", err)
	}
	if rt.Len() != 0 {
		t.Errorf("runtime still holds %d instances", rt.Len())
	}
}

func TestScopeClosingItselfFromHandler(t *testing.T) {
	rt, _, container := mount(t)
	app := rt.NewInstance()

	show := true
	var panel *Instance
	var closeRef string
	mustRender(t, app, func() string {
		if !show {
			return "<p>closed</p>"
		}
		panel = UseScope(app)
		out, err := panel.Render(func() string {
			closeRef = panel.Handle(func(Event) {
				show = false
				if err := app.Redraw(); err != nil {
					t.Errorf("parent Redraw: %v", err)
				}
			})
			return `<button onclick="` + closeRef + `">x</button>`
		}, nil)
		if err != nil {
			t.Errorf("panel Render: %v", err)
		}
		return out
	}, container)

	if err := rt.Invoke(closeRef, Event{Type: "click"}); err != nil {
		t.Fatalf("Invoke(close) = %v, want nil", err)
	}
	if !panel.Disposed() {
		t.Error("panel not disposed")
	}
	if got := dom.InnerHTML(container); got != "<p>closed</p>" {
		t.Errorf("markup = %q", got)
	}
}

func TestRedrawFromStaticSweepIsIgnored(t *testing.T) {
	rt, _, container := mount(t)
	app := rt.NewInstance()

	keep := true
	var child *Instance
	childPasses := 0
	cleanups := map[string]int{}
	var redrawErr error
	mustRender(t, app, func() string {
		child = UseScope(app)
		out, _ := child.Render(func() string {
			childPasses++
			if keep {
				OnUnmount(child, func() {
					cleanups["a"]++
					keep = true
					redrawErr = child.Redraw()
				})
				OnUnmount(child, func() { cleanups["b"]++ })
			}
			return "<i>child</i>"
		}, nil)
		return out
	}, container)

	keep = false
	mustRedraw(t, app)

	if redrawErr != nil {
		t.Errorf("Redraw from cleanup = %v, want nil", redrawErr)
	}
	if childPasses != 2 {
		t.Errorf("child passes = %d, want 2 (no nested pass during the sweep)", childPasses)
	}
	if cleanups["a"] != 1 || cleanups["b"] != 1 {
		t.Errorf("cleanups = %v, want one each", cleanups)
	}
	if got := child.Store().Len(CategoryUnmount); got != 0 {
		t.Errorf("unmount records = %d, want 0", got)
	}

	mustRedraw(t, app)
	if got := child.Store().Len(CategoryUnmount); got != 2 {
		t.Errorf("unmount records after re-render = %d, want 2", got)
	}
	if cleanups["b"] != 1 {
		t.Errorf("live cleanup ran: %v", cleanups)
	}
}

func TestRedrawFromCleanupDuringRedrawIsQueued(t *testing.T) {
	rt, _, container := mount(t)
	app := rt.NewInstance()

	show := true
	passes := 0
	mustRender(t, app, func() string {
		passes++
		if show {
			OnUnmount(app, func() {
				if err := app.Redraw(); err != nil {
					t.Errorf("Redraw from cleanup: %v", err)
				}
			})
		}
		return fmt.Sprintf("<b>%d</b>", passes)
	}, container)

	show = false
	mustRedraw(t, app)

	if passes != 3 {
		t.Errorf("passes = %d, want 3 (initial, redraw, drained)", passes)
	}
	if got := dom.InnerHTML(container); got != "<b>3</b>" {
		t.Errorf("markup = %q", got)
	}
}
