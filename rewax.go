// Package rewax provides the public API of the rewax component engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/rewax"
//
// Usage:
//
//	rt := rewax.NewRuntime(rewax.WithHost(doc))
//	app := rt.NewInstance()
//	app.Render(func() string {
//	    count := rewax.UseState(app, 0)
//	    return app.Bind(`<button onclick="`, func() { count.Set(count.Get() + 1) }, `">`, count.Get(), `</button>`)
//	}, doc.GetElementByID("app"))
package rewax

import (
	"github.com/vango-dev/rewax/pkg/dom"
	corerewax "github.com/vango-dev/rewax/pkg/rewax"
)

// =============================================================================
// Runtime and instances
// =============================================================================

type (
	Runtime   = corerewax.Runtime
	Instance  = corerewax.Instance
	Option    = corerewax.Option
	Config    = corerewax.Config
	Host      = corerewax.Host
	Patcher   = corerewax.Patcher
	Registry  = corerewax.Registry
	Handler   = corerewax.Handler
	Event     = corerewax.Event
	Category  = corerewax.Category
	Slot      = corerewax.Slot
	Keyer     = corerewax.Keyer
	Metrics   = corerewax.Metrics
	Document  = dom.Document
	PatchSet  = dom.PatchSet
	HandleOpt = corerewax.HandleOption
	EachOpt   = corerewax.EachOption
)

// Cell is the handle returned by UseState.
type Cell[T any] = corerewax.Cell[T]

var (
	NewRuntime        = corerewax.NewRuntime
	NewMemoryRegistry = corerewax.NewMemoryRegistry
	NewMetrics        = corerewax.NewMetrics
	DefaultConfig     = corerewax.DefaultConfig
	NewDocument       = dom.NewDocument

	WithConfig   = corerewax.WithConfig
	WithRegistry = corerewax.WithRegistry
	WithHost     = corerewax.WithHost
	WithPatcher  = corerewax.WithPatcher
	WithLogger   = corerewax.WithLogger
	WithMetrics  = corerewax.WithMetrics
	WithTracer   = corerewax.WithTracer

	PreventRedraw = corerewax.PreventRedraw
	EachKey       = corerewax.EachKey
	Reference     = corerewax.Reference
)

// =============================================================================
// Hooks
// =============================================================================

// UseState returns the state cell at the next slot of s.
func UseState[T any](s *Instance, initial T, key ...string) *Cell[T] {
	return corerewax.UseState(s, initial, key...)
}

// UseStateFunc is UseState with a lazily computed initial value.
func UseStateFunc[T any](s *Instance, init func() T, key ...string) *Cell[T] {
	return corerewax.UseStateFunc(s, init, key...)
}

// OnMount runs fn the first time its slot is reached.
func OnMount(s *Instance, fn func(), key ...string) {
	corerewax.OnMount(s, fn, key...)
}

// OnUnmount runs fn once, when its slot is swept.
func OnUnmount(s *Instance, fn func(), key ...string) {
	corerewax.OnUnmount(s, fn, key...)
}

// UseScope returns the child instance owned by the next scope slot.
func UseScope(s *Instance, key ...string) *Instance {
	return corerewax.UseScope(s, key...)
}

// Each renders list with per-item hook keys.
func Each[T any](s *Instance, list []T, fn func(T) string, opts ...EachOpt) string {
	return corerewax.Each(s, list, fn, opts...)
}

// HandleInput registers a callback storing input values into cell.
func HandleInput[T any](s *Instance, cell *Cell[T], field string) string {
	return corerewax.HandleInput(s, cell, field)
}

// =============================================================================
// Errors
// =============================================================================

var (
	ErrNoActivePass      = corerewax.ErrNoActivePass
	ErrSlotType          = corerewax.ErrSlotType
	ErrDisposed          = corerewax.ErrDisposed
	ErrCallbackNotFound  = corerewax.ErrCallbackNotFound
	ErrBadReference      = corerewax.ErrBadReference
	ErrContainerNotFound = corerewax.ErrContainerNotFound
	ErrMarkup            = corerewax.ErrMarkup
	ErrRedrawLoop        = corerewax.ErrRedrawLoop
	ErrPatch             = corerewax.ErrPatch
)
