package rewax

import "github.com/vango-dev/rewax/pkg/vdom"

// DefaultMaxRedrawDrain bounds how many queued re-entrant redraws a single
// Redraw call drains before giving up.
const DefaultMaxRedrawDrain = 16

// Config holds runtime settings.
type Config struct {
	// Diff configures the default diff engine. Value diffing and the child
	// count limit are both off by default.
	Diff vdom.DiffOptions

	// MaxRedrawDrain is the number of queued redraws drained after the
	// initial pass before ErrRedrawLoop is returned.
	MaxRedrawDrain int
}

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return Config{
		MaxRedrawDrain: DefaultMaxRedrawDrain,
	}
}
