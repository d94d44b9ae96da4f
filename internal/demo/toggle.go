package demo

import (
	"log/slog"

	"github.com/vango-dev/rewax/pkg/rewax"
)

// Toggle shows or hides a counter that lives in its own scope. Hiding the
// panel disposes the scope; showing it again starts from zero.
func Toggle(s *rewax.Instance) string {
	open := rewax.UseState(s, false)
	flip := s.Handle(func(rewax.Event) { open.Set(!open.Get()) })

	label, body := "Show", ""
	if open.Get() {
		label = "Hide"
		panel := rewax.UseScope(s, "panel")
		out, err := panel.Render(func() string { return Counter(panel) }, nil)
		if err != nil {
			s.Runtime().Logger().Error("panel render failed", slog.Any("error", err))
		}
		body = out
	}

	return `<button id="toggle" onclick="` + flip + `">` + label + `</button>` + body
}
