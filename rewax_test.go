package rewax

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/rewax/pkg/dom"
)

func TestPublicAPI(t *testing.T) {
	doc, err := NewDocument(`<main><div id="app"></div></main>`)
	if err != nil {
		t.Fatal(err)
	}
	rt := NewRuntime(WithHost(doc), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	app := rt.NewInstance()

	type row struct{ ID, Label string }
	rows := []row{{"a", "A"}, {"b", "B"}}
	mounted := 0

	_, err = app.Render(func() string {
		OnMount(app, func() { mounted++ })
		clicks := UseState(app, 0)
		list := Each(app, rows, func(r row) string {
			n := UseStateFunc(app, func() int { return len(r.Label) })
			return fmt.Sprintf("<li>%s%d</li>", r.Label, n.Get())
		})
		return app.Bind(`<button id="b" onclick="`, func() { clicks.Set(clicks.Get() + 1) }, `">`, clicks.Get(), `</button><ul>`, list, `</ul>`)
	}, doc.GetElementByID("app"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := dom.Click(doc.GetElementByID("b"), rt); err != nil {
		t.Fatal(err)
	}
	button := doc.GetElementByID("b")
	if ref, _ := dom.GetAttribute(button, "onclick"); ref != Reference(app.ID(), 0) {
		t.Errorf("onclick = %q", ref)
	}
	if got := dom.TextContent(doc.GetElementByID("app")); got != "1A1B1" {
		t.Errorf("text = %q", got)
	}
	if mounted != 1 {
		t.Errorf("mounted = %d", mounted)
	}

	if err := rt.Invoke("nonsense", Event{}); !errors.Is(err, ErrBadReference) {
		t.Errorf("err = %v, want ErrBadReference", err)
	}
}
