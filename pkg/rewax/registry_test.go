package rewax

import (
	"errors"
	"testing"
)

func TestReferenceRoundTrip(t *testing.T) {
	ref := Reference("abc123", 4)
	if ref != "_callbacks['abc123'][4](event)" {
		t.Fatalf("Reference = %q", ref)
	}

	ns, index, err := ParseReference(ref + ";")
	if err != nil {
		t.Fatal(err)
	}
	if ns != "abc123" || index != 4 {
		t.Errorf("ParseReference = %q, %d", ns, index)
	}
}

func TestParseReferenceRejectsGarbage(t *testing.T) {
	for _, ref := range []string{"", "alert(1)", "_callbacks['x'][a](event)", "_callbacks[''][0](event)"} {
		if _, _, err := ParseReference(ref); !errors.Is(err, ErrBadReference) {
			t.Errorf("ParseReference(%q) err = %v, want ErrBadReference", ref, err)
		}
	}
}

func TestMemoryRegistry(t *testing.T) {
	r := NewMemoryRegistry()

	var got []string
	ref0 := r.Register("ns", 0, func(ev Event) error { got = append(got, "0:"+ev.Type); return nil })
	ref2 := r.Register("ns", 2, func(ev Event) error { got = append(got, "2:"+ev.Type); return nil })

	if r.Len("ns") != 3 {
		t.Errorf("Len = %d, want 3", r.Len("ns"))
	}
	if err := r.Invoke(ref2, Event{Type: "click"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Invoke(ref0, Event{Type: "input"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Invoke(Reference("ns", 1), Event{}); !errors.Is(err, ErrCallbackNotFound) {
		t.Errorf("hole: err = %v, want ErrCallbackNotFound", err)
	}

	r.Reset("ns")
	if err := r.Invoke(ref0, Event{}); !errors.Is(err, ErrCallbackNotFound) {
		t.Errorf("after Reset: err = %v, want ErrCallbackNotFound", err)
	}

	r.Register("ns", 0, func(Event) error { return nil })
	r.Drop("ns")
	if r.Len("ns") != 0 {
		t.Error("Drop kept entries")
	}

	if len(got) != 2 || got[0] != "2:click" || got[1] != "0:input" {
		t.Errorf("calls = %v", got)
	}
}

func TestHandlerMayReenterRegistry(t *testing.T) {
	r := NewMemoryRegistry()
	ref := r.Register("ns", 0, func(Event) error {
		r.Reset("ns")
		r.Register("ns", 0, func(Event) error { return nil })
		return nil
	})
	if err := r.Invoke(ref, Event{}); err != nil {
		t.Fatal(err)
	}
}
