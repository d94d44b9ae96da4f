package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Event is the object handed to callbacks when a host event fires.
type Event struct {
	// Type is the event name without the "on" prefix (e.g. "click").
	Type string

	// Target is the element the event was fired on.
	Target *html.Node

	// Value is the target's new value for input and change events.
	Value string
}

// Invoker resolves a callback reference taken from an on* attribute and runs it.
type Invoker interface {
	Invoke(ref string, ev Event) error
}

// Fire dispatches an event of the given type at target. Like a browser, the
// event bubbles: every element from target up to the root that carries an
// on<type> attribute has its reference invoked, innermost first. References
// are collected before any of them runs, since handlers may patch the tree.
// Fire reports whether any handler was found.
func Fire(target *html.Node, eventType string, value string, inv Invoker) (bool, error) {
	attr := "on" + strings.ToLower(eventType)

	var refs []string
	for n := target; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if ref, ok := GetAttribute(n, attr); ok && ref != "" {
			refs = append(refs, ref)
		}
	}

	ev := Event{Type: strings.ToLower(eventType), Target: target, Value: value}
	for _, ref := range refs {
		if err := inv.Invoke(ref, ev); err != nil {
			return true, err
		}
	}
	return len(refs) > 0, nil
}

// Click fires a click event at target.
func Click(target *html.Node, inv Invoker) (bool, error) {
	return Fire(target, "click", "", inv)
}

// Input fires an input event at target carrying value.
func Input(target *html.Node, value string, inv Invoker) (bool, error) {
	return Fire(target, "input", value, inv)
}
