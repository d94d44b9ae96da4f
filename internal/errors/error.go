package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryDispatch Category = "dispatch"
	CategoryHost     Category = "host"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Error carries a stable code from the registry plus optional context.
// Message and Detail come from the registered template unless overridden.
type Error struct {
	Code       string
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	Wrapped    error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped == nil {
		return msg
	}
	return msg + ": " + e.Wrapped.Error()
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is matches coded sentinels: two errors are equal when their codes are.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// The With* setters and Wrap mutate e and return it for chaining. Call them
// on a fresh error from New, never on a shared sentinel.

func (e *Error) WithSuggestion(s string) *Error { e.Suggestion = s; return e }
func (e *Error) WithDetail(d string) *Error { e.Detail = d; return e }
func (e *Error) Wrap(err error) *Error { e.Wrapped = err; return e }

func (e *Error) WithDetailf(format string, args ...any) *Error {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// New copies the template registered under code. Unregistered codes still
// yield an error so a typo never turns into a nil.
func New(code string) *Error {
	t, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{Code: code, Category: t.Category, Message: t.Message, Detail: t.Detail}
}

// Newf builds an uncoded error.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// FromError attaches code to err unless err already carries one.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
