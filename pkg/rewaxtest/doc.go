// Package rewaxtest provides testing helpers for rewax components.
//
// A Harness mounts a render function into a fresh host document and lets a
// test fire events at elements by id, then assert on the resulting markup.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := rewaxtest.New(t)
//	    h.Mount(func(s *rewax.Instance) string {
//	        n := rewax.UseState(s, 0)
//	        return s.Bind(`<button id="inc" onclick="`, func() { n.Set(n.Get() + 1) }, `">`, n.Get(), `</button>`)
//	    })
//	    h.Click("inc")
//	    h.ExpectText("inc", "1")
//	}
//
// # Patch Counting
//
// The harness wraps the runtime's patcher, so tests can check how much of
// the host tree a step touched:
//
//	h.Click("inc")
//	if h.LastPatches() != 1 {
//	    t.Error("expected a single text patch")
//	}
package rewaxtest
