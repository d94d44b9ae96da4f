package rewax

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	rerrors "github.com/vango-dev/rewax/internal/errors"
)

// Handler is a registered callback. The error is what the post-invocation
// redraw returned, if any.
type Handler func(Event) error

// Registry resolves textual callback references to live handlers.
//
// Each instance owns one namespace (its identifier) holding an ordered list
// of handlers that is rebuilt from scratch on every render pass. References
// embedded in markup are resolved by Invoke when the host fires an event.
type Registry interface {
	// Reset empties the namespace.
	Reset(ns string)

	// Register stores h at index, replacing any previous entry, and returns
	// the reference that resolves to it.
	Register(ns string, index int, h Handler) string

	// Invoke resolves ref and calls the handler with ev.
	Invoke(ref string, ev Event) error

	// Drop forgets the namespace entirely.
	Drop(ns string)

	// Len returns the number of slots in the namespace.
	Len(ns string) int
}

// Reference returns the textual reference to a registry entry, in the form
// embedded in on* attributes: _callbacks['<ns>'][<index>](event).
func Reference(ns string, index int) string {
	return fmt.Sprintf("_callbacks['%s'][%d](event)", ns, index)
}

var referencePattern = regexp.MustCompile(`^\s*_callbacks\['([^']+)'\]\[(\d+)\]\(event\);?\s*$`)

// ParseReference splits a reference into namespace and index.
func ParseReference(ref string) (string, int, error) {
	m := referencePattern.FindStringSubmatch(ref)
	if m == nil {
		return "", 0, rerrors.New("R011").WithDetailf("cannot parse callback reference %q", ref)
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, rerrors.New("R011").Wrap(err)
	}
	return m[1], index, nil
}

// MemoryRegistry is the in-process Registry.
type MemoryRegistry struct {
	mu    sync.Mutex
	table map[string][]Handler
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{table: make(map[string][]Handler)}
}

// Reset implements Registry.
func (r *MemoryRegistry) Reset(ns string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[ns] = r.table[ns][:0]
}

// Register implements Registry.
func (r *MemoryRegistry) Register(ns string, index int, h Handler) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := r.table[ns]
	for len(handlers) <= index {
		handlers = append(handlers, nil)
	}
	handlers[index] = h
	r.table[ns] = handlers
	return Reference(ns, index)
}

// Invoke implements Registry. The handler runs without the registry lock
// held, so it may re-register entries.
func (r *MemoryRegistry) Invoke(ref string, ev Event) error {
	ns, index, err := ParseReference(ref)
	if err != nil {
		return err
	}

	r.mu.Lock()
	var h Handler
	if handlers, ok := r.table[ns]; ok && index < len(handlers) {
		h = handlers[index]
	}
	r.mu.Unlock()

	if h == nil {
		return rerrors.New("R010").WithDetailf("no callback at index %d of %q", index, ns)
	}
	return h(ev)
}

// Drop implements Registry.
func (r *MemoryRegistry) Drop(ns string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.table, ns)
}

// Len implements Registry.
func (r *MemoryRegistry) Len(ns string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.table[ns])
}
