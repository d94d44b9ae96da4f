// Package demo holds the example components served by the rewax CLI.
package demo

import (
	"sort"

	"github.com/vango-dev/rewax/internal/errors"
	"github.com/vango-dev/rewax/pkg/rewax"
)

// Component is a render function bound to the instance it renders into.
type Component func(s *rewax.Instance) string

var components = map[string]Component{
	"counter": Counter,
	"todo":    Todo,
	"toggle":  Toggle,
}

// Lookup returns the named component.
func Lookup(name string) (Component, error) {
	c, ok := components[name]
	if !ok {
		return nil, errors.New("R040").
			WithDetailf("No demo named %q", name).
			WithSuggestion("Available demos: " + joinNames())
	}
	return c, nil
}

// Names returns the demo names in sorted order.
func Names() []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinNames() string {
	out := ""
	for i, n := range Names() {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
