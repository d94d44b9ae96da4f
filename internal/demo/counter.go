package demo

import (
	"log/slog"

	"github.com/vango-dev/rewax/pkg/rewax"
)

// Counter renders a number with increment and decrement buttons.
func Counter(s *rewax.Instance) string {
	count := rewax.UseState(s, 0)

	rewax.OnMount(s, func() {
		s.Runtime().Logger().Debug("counter mounted", slog.String("instance", s.ID()))
	})
	rewax.OnUnmount(s, func() {
		s.Runtime().Logger().Debug("counter unmounted",
			slog.String("instance", s.ID()),
			slog.Int("count", count.Get()))
	})

	return s.Bind(
		`<div class="counter">`,
		`<button id="dec" onclick="`, func() { count.Update(func(n int) int { return n - 1 }) }, `">-</button>`,
		`<span id="count">`, count.Get(), `</span>`,
		`<button id="inc" onclick="`, func() { count.Update(func(n int) int { return n + 1 }) }, `">+</button>`,
		`</div>`,
	)
}
