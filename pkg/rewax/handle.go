package rewax

import (
	"fmt"
	"strings"
)

// HandleOption configures a registered callback.
type HandleOption func(*handleConfig)

type handleConfig struct {
	preventRedraw bool
}

// PreventRedraw keeps the instance from redrawing after the callback runs.
func PreventRedraw() HandleOption {
	return func(c *handleConfig) {
		c.preventRedraw = true
	}
}

// Handle registers cb at the next callback index of the instance and returns
// the reference to embed in an on* attribute. Invoking the reference runs cb
// and then, unless PreventRedraw was given, redraws the instance.
//
// References are only valid for the markup produced by the current pass:
// the namespace is rebuilt on every render.
func (s *Instance) Handle(cb func(Event), opts ...HandleOption) string {
	s.requirePass("Handle")

	var cfg handleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	index := s.callbackPointer
	s.callbackPointer++

	return s.rt.registry.Register(s.id, index, func(ev Event) error {
		cb(ev)
		// A handler that closes its own scope has nothing left to redraw.
		if cfg.preventRedraw || s.disposed {
			return nil
		}
		return s.Redraw()
	})
}

// Bind concatenates parts into markup. Functions are registered with Handle
// and replaced by their references; everything else is formatted with %v.
//
//	s.Bind(`<button onclick="`, func() { count.Update(inc) }, `">+</button>`)
func (s *Instance) Bind(parts ...any) string {
	var b strings.Builder
	for _, part := range parts {
		switch p := part.(type) {
		case string:
			b.WriteString(p)
		case func(Event):
			b.WriteString(s.Handle(p))
		case func():
			b.WriteString(s.Handle(func(Event) { p() }))
		default:
			fmt.Fprint(&b, p)
		}
	}
	return b.String()
}
