package errors

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "R001",
			wantMsg: "Hook called outside a render pass",
			wantCat: CategoryRuntime,
		},
		{
			name:    "host error",
			code:    "R020",
			wantMsg: "Container element not found",
			wantCat: CategoryHost,
		},
		{
			name:    "dispatch error",
			code:    "R010",
			wantMsg: "Callback not found",
			wantCat: CategoryDispatch,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "key %q not allowed", "foo")
	if err.Message != `key "foo" not allowed` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != `key "foo" not allowed` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	err := New("R020").Wrap(io.EOF)

	if !stderrors.Is(err, io.EOF) {
		t.Error("errors.Is should see the wrapped error")
	}
	if got := err.Error(); got != "R020: Container element not found: EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	sentinel := New("R001")
	err := New("R001").WithDetail("called from a goroutine")

	if !stderrors.Is(err, sentinel) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(err, New("R002")) {
		t.Error("errors with different codes should not match")
	}
	if stderrors.Is(Newf(CategoryRuntime, "x"), Newf(CategoryRuntime, "x")) {
		t.Error("uncoded errors should not match by code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R021") != nil {
		t.Error("FromError(nil) should be nil")
	}

	coded := New("R010")
	if FromError(coded, "R021") != coded {
		t.Error("FromError should return coded errors unchanged")
	}

	wrapped := FromError(io.ErrUnexpectedEOF, "R021")
	if wrapped.Code != "R021" {
		t.Errorf("Code = %q, want R021", wrapped.Code)
	}
	if !stderrors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Error("wrapped cause lost")
	}
}

func TestCodeOf(t *testing.T) {
	err := New("R022")
	outer := stderrors.Join(io.EOF, err)
	if CodeOf(outer) != "R022" {
		t.Errorf("CodeOf = %q, want R022", CodeOf(outer))
	}
	if CodeOf(io.EOF) != "" {
		t.Error("plain errors have no code")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("R020").
		WithDetailf("no element with id %q", "abc").
		WithSuggestion("pass a container to Render").
		Wrap(io.EOF)

	out := err.Format()
	for _, want := range []string{
		"ERROR R020: Container element not found",
		`no element with id "abc"`,
		"Cause: EOF",
		"Hint: pass a container to Render",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has an incomplete template", code)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}
