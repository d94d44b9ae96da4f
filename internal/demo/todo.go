package demo

import (
	"fmt"
	"html"
	"strings"

	"github.com/vango-dev/rewax/pkg/rewax"
)

// Item is one entry of the todo list.
type Item struct {
	ID    int
	Title string
}

// Todo renders an editable list. Completion state lives in per-item hooks,
// so it follows each item through removals.
func Todo(s *rewax.Instance) string {
	items := rewax.UseStateFunc(s, func() []Item {
		return []Item{{ID: 1, Title: "Read the docs"}, {ID: 2, Title: "Write a component"}}
	})
	draft := rewax.UseState(s, "")
	nextID := rewax.UseState(s, 3)

	add := s.Handle(func(rewax.Event) {
		title := strings.TrimSpace(draft.Get())
		if title == "" {
			return
		}
		id := nextID.Update(func(n int) int { return n + 1 }) - 1
		items.Update(func(list []Item) []Item {
			return append(append([]Item(nil), list...), Item{ID: id, Title: title})
		})
		draft.Set("")
	})

	left := 0
	list := rewax.Each(s, items.Get(), func(it Item) string {
		done := rewax.UseState(s, false)
		if !done.Get() {
			left++
		}

		toggle := s.Handle(func(rewax.Event) { done.Set(!done.Get()) })
		remove := s.Handle(func(rewax.Event) {
			items.Update(func(list []Item) []Item {
				out := make([]Item, 0, len(list))
				for _, other := range list {
					if other.ID != it.ID {
						out = append(out, other)
					}
				}
				return out
			})
		})

		class := ""
		if done.Get() {
			class = ` class="done"`
		}
		return fmt.Sprintf(`<li data-key="%d"%s><span id="item-%d" onclick="%s">%s</span><button id="remove-%d" onclick="%s">x</button></li>`,
			it.ID, class, it.ID, toggle, html.EscapeString(it.Title), it.ID, remove)
	}, rewax.EachKey("ID"))

	return fmt.Sprintf(`<input id="draft" value="%s" oninput="%s"><button id="add" onclick="%s">Add</button><ul>%s</ul><p id="left">%d left</p>`,
		html.EscapeString(draft.Get()), rewax.HandleInput(s, draft, ""), add, list, left)
}
