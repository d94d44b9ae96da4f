package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (R001-R009)
	// ============================================

	"R001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside a render pass",
		Detail:   "UseState, OnMount, OnUnmount and UseScope may only be called while the instance's render function is running.",
	},
	"R002": {
		Category: CategoryRuntime,
		Message:  "Hook slot type mismatch",
		Detail:   "A slot address that already holds a value of one type was requested with another type. Hooks must be called in the same order on every render, or use distinct keys.",
	},
	"R003": {
		Category: CategoryRuntime,
		Message:  "Instance disposed",
		Detail:   "The instance was swept together with the scope slot that owned it and can no longer render.",
	},

	// ============================================
	// Dispatch Errors (R010-R019)
	// ============================================

	"R010": {
		Category: CategoryDispatch,
		Message:  "Callback not found",
		Detail:   "The callback reference points to an index that was not registered during the latest render pass.",
	},
	"R011": {
		Category: CategoryDispatch,
		Message:  "Malformed callback reference",
		Detail:   "Callback references have the form _callbacks['<namespace>'][<index>](event).",
	},

	// ============================================
	// Host Errors (R020-R029)
	// ============================================

	"R020": {
		Category: CategoryHost,
		Message:  "Container element not found",
		Detail:   "The instance has no explicit container and no element carries its identifier in the host document.",
	},
	"R021": {
		Category: CategoryHost,
		Message:  "Markup could not be parsed",
	},
	"R022": {
		Category: CategoryHost,
		Message:  "Redraw queue did not settle",
		Detail:   "Handlers kept requesting redraws while a redraw was in progress. Check for callbacks that redraw unconditionally during patch application.",
	},
	"R023": {
		Category: CategoryHost,
		Message:  "Patch could not be applied",
	},

	// ============================================
	// Config Errors (R030-R039)
	// ============================================

	"R030": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"R031": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be read",
	},

	// ============================================
	// CLI Errors (R040-R049)
	// ============================================

	"R040": {
		Category: CategoryCLI,
		Message:  "Unknown demo component",
	},
	"R041": {
		Category: CategoryCLI,
		Message:  "Invalid replay script",
	},
	"R042": {
		Category: CategoryCLI,
		Message:  "Replay expectation failed",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
