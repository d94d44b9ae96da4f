package rewax

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/vango-dev/rewax/pkg/dom"
)

// Event is the object handed to callbacks.
type Event = dom.Event

// Host gives instances access to the host document.
type Host interface {
	// GetElementByID returns the element carrying id, or nil.
	GetElementByID(id string) *html.Node
}

// Patcher is the external diff/patch engine.
type Patcher interface {
	// Diff compares the children of container with freshly rendered markup.
	Diff(container *html.Node, markup string) (*dom.PatchSet, error)

	// Apply applies a patch set to the container it was computed for.
	Apply(container *html.Node, ps *dom.PatchSet) error
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithConfig sets the runtime configuration.
func WithConfig(config Config) Option {
	return func(r *Runtime) {
		r.config = config
	}
}

// WithRegistry sets the callback registry shared by all instances.
func WithRegistry(registry Registry) Option {
	return func(r *Runtime) {
		r.registry = registry
	}
}

// WithHost sets the host document used to find self-managed wrappers.
func WithHost(host Host) Option {
	return func(r *Runtime) {
		r.host = host
	}
}

// WithPatcher replaces the default diff/patch engine.
func WithPatcher(patcher Patcher) Option {
	return func(r *Runtime) {
		r.patcher = patcher
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(r *Runtime) {
		r.metrics = metrics
	}
}

// WithTracer sets the tracer used for redraw spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runtime) {
		r.tracer = tracer
	}
}

// Runtime owns every instance of one application: the arena of instances
// indexed by identifier, and the collaborators they share.
//
// Like the instances it owns, a Runtime is driven from a single goroutine;
// the lock only protects the arena against concurrent inspection.
type Runtime struct {
	config   Config
	registry Registry
	host     Host
	patcher  Patcher
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer

	mu        sync.Mutex
	instances map[string]*Instance
}

// NewRuntime creates a runtime. Without options it uses an in-memory
// registry, the default patcher and slog.Default().
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		config:    DefaultConfig(),
		instances: make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.config.MaxRedrawDrain <= 0 {
		r.config.MaxRedrawDrain = DefaultMaxRedrawDrain
	}
	if r.registry == nil {
		r.registry = NewMemoryRegistry()
	}
	if r.patcher == nil {
		r.patcher = dom.NewPatcher(r.config.Diff)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("rewax")
	}
	return r
}

// NewInstance creates a top-level instance.
func (r *Runtime) NewInstance() *Instance {
	return r.newInstance(nil)
}

// newInstance allocates an instance and records it in the arena.
func (r *Runtime) newInstance(parent *Instance) *Instance {
	s := &Instance{
		id:     uuid.NewString(),
		parent: parent,
		rt:     r,
		store:  newStore(),
	}
	r.registry.Reset(s.id)

	r.mu.Lock()
	r.instances[s.id] = s
	n := len(r.instances)
	r.mu.Unlock()

	r.metrics.setInstances(n)
	return s
}

// Instance returns the live instance with the given identifier.
func (r *Runtime) Instance(id string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.instances[id]
	return s, ok
}

// Len returns the number of live instances.
func (r *Runtime) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Registry returns the callback registry.
func (r *Runtime) Registry() Registry {
	return r.registry
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

// Config returns the runtime configuration.
func (r *Runtime) Config() Config {
	return r.config
}

// Invoke resolves a callback reference and runs it. It makes the runtime a
// dom.Invoker, so host events can be fired straight at it.
func (r *Runtime) Invoke(ref string, ev Event) error {
	return r.registry.Invoke(ref, ev)
}

// release disposes the instance with the given id and removes it from the arena.
func (r *Runtime) release(id string) {
	s, ok := r.Instance(id)
	if !ok {
		return
	}
	s.dispose()
}

func (r *Runtime) forget(id string) {
	r.mu.Lock()
	delete(r.instances, id)
	n := len(r.instances)
	r.mu.Unlock()

	r.registry.Drop(id)
	r.metrics.setInstances(n)
}
