package rewax

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	rerrors "github.com/vango-dev/rewax/internal/errors"
	"github.com/vango-dev/rewax/pkg/dom"
)

// Instance is a render instance: one render function, the memo store that
// keeps its hook state across re-renders and the callback namespace its
// markup refers to.
//
// Instances are not safe for concurrent use. Render, Redraw and the hooks
// must be called from one goroutine.
type Instance struct {
	id     string
	parent *Instance
	rt     *Runtime

	renderFn  func() string
	container *html.Node
	store     *Store

	callbackPointer int

	// parentCallbackStart is the parent's callback pointer at the time this
	// instance was last rendered; restored before independent redraws.
	parentCallbackStart int
	hasParentStart      bool

	pass         *renderPass
	sweeping     bool
	redrawing    bool
	redrawQueued bool
	disposed     bool
}

// ID returns the process-unique identifier of the instance.
func (s *Instance) ID() string {
	return s.id
}

// Parent returns the instance that owns this one through a scope slot, or nil.
func (s *Instance) Parent() *Instance {
	return s.parent
}

// Runtime returns the runtime that owns the instance.
func (s *Instance) Runtime() *Runtime {
	return s.rt
}

// Store exposes the memo store, for inspection.
func (s *Instance) Store() *Store {
	return s.store
}

// Disposed reports whether the instance has been swept.
func (s *Instance) Disposed() bool {
	return s.disposed
}

// Rendering reports whether the render function is currently running.
func (s *Instance) Rendering() bool {
	return s.pass != nil
}

// Render sets the render function of the instance.
//
// With a nil container it performs a static pass and returns the markup
// wrapped in <div id="ID">, the form used to embed a scope in its parent's
// markup. Later redraws of the instance find that wrapper by id.
//
// With a container it stores the container and redraws into it; the
// returned markup is empty.
func (s *Instance) Render(fn func() string, container *html.Node) (string, error) {
	if s.disposed {
		return "", rerrors.New("R003").WithDetailf("instance %s", s.id)
	}

	s.renderFn = fn
	if s.parent != nil {
		s.parentCallbackStart = s.parent.callbackPointer
		s.hasParentStart = true
	}

	if container == nil {
		s.reset()
		markup, _ := s.runPass("static")
		return fmt.Sprintf(`<div id="%s">%s</div>`, s.id, markup), nil
	}

	s.container = container
	return "", s.Redraw()
}

// Redraw re-runs the render function and patches the host subtree.
//
// A Redraw requested while one is already in progress on the same instance
// (from a render function, a cleanup or a handler run during the pass) is
// queued and drained once the current pass completes. During a static
// render, including its sweep, the request is ignored with a warning.
func (s *Instance) Redraw() error {
	if s.disposed {
		return rerrors.New("R003").WithDetailf("instance %s", s.id)
	}
	if s.redrawing {
		s.redrawQueued = true
		s.rt.metrics.recordQueued()
		s.rt.logger.Warn("rewax: redraw requested during redraw, queued",
			slog.String("instance", s.id))
		return nil
	}
	if s.pass != nil || s.sweeping {
		// Static pass: there is no host subtree to drain into.
		s.rt.logger.Warn("rewax: redraw requested during static render, ignored",
			slog.String("instance", s.id))
		return nil
	}

	s.redrawing = true
	defer func() { s.redrawing = false }()

	for drained := 0; ; drained++ {
		if drained > s.rt.config.MaxRedrawDrain {
			s.redrawQueued = false
			return rerrors.New("R022").WithDetailf("instance %s still dirty after %d redraws", s.id, drained)
		}
		s.redrawQueued = false
		if err := s.redraw(); err != nil {
			return err
		}
		if !s.redrawQueued || s.disposed {
			return nil
		}
	}
}

// redraw performs one render → sweep → diff → patch cycle.
func (s *Instance) redraw() (err error) {
	start := time.Now()
	_, span := s.rt.tracer.Start(context.Background(), "rewax.redraw",
		trace.WithAttributes(attribute.String("rewax.instance", s.id)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	s.reset()
	if s.hasParentStart {
		s.parent.callbackPointer = s.parentCallbackStart
	}

	markup, evicted := s.runPass("redraw")
	span.SetAttributes(attribute.Int("rewax.evicted", sum(evicted)))

	container := s.container
	if container == nil {
		if s.rt.host != nil {
			container = s.rt.host.GetElementByID(s.id)
		}
		if container == nil {
			return rerrors.New("R020").
				WithDetailf("no element with id %q in the host document", s.id).
				Wrap(dom.ErrNotFound)
		}
	}

	ps, err := s.rt.patcher.Diff(container, markup)
	if err != nil {
		return rerrors.New("R021").Wrap(err)
	}
	if err := s.rt.patcher.Apply(container, ps); err != nil {
		return rerrors.New("R023").Wrap(err)
	}

	span.SetAttributes(attribute.Int("rewax.patches", ps.Len()))
	s.rt.metrics.recordRedraw(time.Since(start), ps.Patches)
	s.rt.logger.Debug("rewax: redraw",
		slog.String("instance", s.id),
		slog.Int("patches", ps.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// reset rebuilds the callback namespace from scratch and marks every memo
// record as not yet visited.
func (s *Instance) reset() {
	s.rt.registry.Reset(s.id)
	s.callbackPointer = 0
	s.store.markAll(false)
}

// runPass runs the render function with an active pass, then sweeps.
func (s *Instance) runPass(mode string) (string, [numCategories]int) {
	s.pass = newRenderPass()
	markup := func() string {
		defer func() { s.pass = nil }()
		return s.renderFn()
	}()

	s.sweeping = true
	evicted := func() [numCategories]int {
		defer func() { s.sweeping = false }()
		return s.sweep()
	}()
	s.rt.metrics.recordPass(mode)
	return markup, evicted
}

// sweep evicts stale records, running unmount cleanups and disposing owned
// scopes as it goes.
func (s *Instance) sweep() [numCategories]int {
	evicted := s.store.sweep(s.evict)
	if n := sum(evicted); n > 0 {
		s.rt.metrics.recordEvictions(evicted)
		s.rt.logger.Debug("rewax: swept stale slots",
			slog.String("instance", s.id),
			slog.Int("state", evicted[CategoryState]),
			slog.Int("mount", evicted[CategoryMount]),
			slog.Int("unmount", evicted[CategoryUnmount]),
			slog.Int("scope", evicted[CategoryScope]))
	}
	return evicted
}

func (s *Instance) evict(cat Category, _ Slot, value any) {
	switch cat {
	case CategoryUnmount:
		if ref, ok := value.(unmountRef); ok && ref.cleanup != nil {
			ref.cleanup()
			s.rt.metrics.recordCleanup()
		}
	case CategoryScope:
		if ref, ok := value.(scopeRef); ok {
			s.rt.release(ref.id)
		}
	}
}

// Dispose evicts every memo record of the instance, cascading into owned
// scopes, and removes it from the runtime. It is what happens to a scope
// when its owning slot is swept.
func (s *Instance) Dispose() {
	s.dispose()
}

func (s *Instance) dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.store.markAll(false)
	s.sweep()
	s.rt.forget(s.id)
}

// requirePass returns the active pass or panics with a coded error.
func (s *Instance) requirePass(hook string) *renderPass {
	if s.disposed {
		panic(rerrors.New("R003").WithDetailf("%s called on disposed instance %s", hook, s.id))
	}
	if s.pass == nil {
		panic(rerrors.New("R001").WithDetailf("%s called on instance %s outside its render function", hook, s.id))
	}
	return s.pass
}

// useMemo returns the value stored at the next slot of cat, creating it
// with create on first encounter.
func (s *Instance) useMemo(hook string, cat Category, create func() any, keys []string) any {
	pass := s.requirePass(hook)
	slot := pass.slot(cat, keys)

	if rec, ok := s.store.lookup(cat, slot); ok {
		return rec.value
	}
	rec := s.store.insert(cat, slot)
	rec.value = create()
	return rec.value
}

// pushKey makes key the ambient hook key until the matching popKey.
func (s *Instance) pushKey(key string) {
	if s.pass != nil {
		s.pass.pushKey(key)
	}
}

func (s *Instance) popKey() {
	if s.pass != nil {
		s.pass.popKey()
	}
}

func sum(counts [numCategories]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
