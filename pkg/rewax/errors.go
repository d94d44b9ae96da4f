package rewax

import (
	rerrors "github.com/vango-dev/rewax/internal/errors"
)

// Sentinel errors for errors.Is. Errors returned or panicked by the engine
// carry the same codes with call-specific details.
var (
	// ErrNoActivePass is panicked when a hook is called while the instance's
	// render function is not running.
	ErrNoActivePass = rerrors.New("R001")

	// ErrSlotType is panicked when a slot is reused with a different value type.
	ErrSlotType = rerrors.New("R002")

	// ErrDisposed is returned (or panicked, for hooks) once an instance has
	// been swept together with its owning scope slot.
	ErrDisposed = rerrors.New("R003")

	// ErrCallbackNotFound is returned when a reference points to no handler.
	ErrCallbackNotFound = rerrors.New("R010")

	// ErrBadReference is returned for references that cannot be parsed.
	ErrBadReference = rerrors.New("R011")

	// ErrContainerNotFound is returned by Redraw when the instance has no
	// container and its wrapper element is missing from the host.
	ErrContainerNotFound = rerrors.New("R020")

	// ErrMarkup is returned when rendered markup cannot be parsed.
	ErrMarkup = rerrors.New("R021")

	// ErrRedrawLoop is returned when queued re-entrant redraws never settle.
	ErrRedrawLoop = rerrors.New("R022")

	// ErrPatch is returned when the diff cannot be applied to the host.
	ErrPatch = rerrors.New("R023")
)
