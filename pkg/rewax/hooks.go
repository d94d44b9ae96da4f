package rewax

import (
	"fmt"

	rerrors "github.com/vango-dev/rewax/internal/errors"
)

// scopeRef is what the scope category stores: the child's identifier, which
// the runtime arena resolves to the live instance.
type scopeRef struct {
	id string
}

// unmountRef is what the unmount category stores. Only the cleanup given on
// first encounter of the slot is kept.
type unmountRef struct {
	cleanup func()
}

// UseState returns the cell stored at the next state slot, creating it with
// initial on first encounter. Later calls at the same slot ignore initial.
//
// An optional key pins the slot independently of call order.
func UseState[T any](s *Instance, initial T, key ...string) *Cell[T] {
	return UseStateFunc(s, func() T { return initial }, key...)
}

// UseStateFunc is UseState with a lazily computed initial value. init runs
// once per slot lifetime.
func UseStateFunc[T any](s *Instance, init func() T, key ...string) *Cell[T] {
	v := s.useMemo("UseState", CategoryState, func() any {
		return NewCell(init())
	}, key)

	cell, ok := v.(*Cell[T])
	if !ok {
		panic(slotTypeError("UseState", v, (*Cell[T])(nil)))
	}
	return cell
}

// OnMount runs fn the first time its slot is encountered. Later passes that
// reach the same slot do nothing.
func OnMount(s *Instance, fn func(), key ...string) {
	s.useMemo("OnMount", CategoryMount, func() any {
		fn()
		return struct{}{}
	}, key)
}

// OnUnmount registers fn to run once, when its slot is swept as stale.
// A slot that stays live keeps the cleanup registered on first encounter.
func OnUnmount(s *Instance, fn func(), key ...string) {
	v := s.useMemo("OnUnmount", CategoryUnmount, func() any {
		return unmountRef{cleanup: fn}
	}, key)

	if _, ok := v.(unmountRef); !ok {
		panic(slotTypeError("OnUnmount", v, unmountRef{}))
	}
}

// UseScope returns the child instance owned by the next scope slot, creating
// it on first encounter. When the slot goes stale the child is disposed,
// which sweeps its whole store and cascades into its own scopes.
func UseScope(s *Instance, key ...string) *Instance {
	v := s.useMemo("UseScope", CategoryScope, func() any {
		return scopeRef{id: s.rt.newInstance(s).id}
	}, key)

	ref, ok := v.(scopeRef)
	if !ok {
		panic(slotTypeError("UseScope", v, scopeRef{}))
	}
	child, ok := s.rt.Instance(ref.id)
	if !ok {
		panic(rerrors.New("R003").WithDetailf("scope %s is no longer in the arena", ref.id))
	}
	return child
}

func slotTypeError(hook string, got, want any) *rerrors.Error {
	return rerrors.New("R002").WithDetail(fmt.Sprintf("%s: slot holds %T, want %T", hook, got, want))
}
