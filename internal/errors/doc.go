// Package errors provides structured, coded errors for rewax.
//
// Every error raised by the engine carries a short code (e.g. "R001") that maps
// to a registered template with a category, a one-line message and a longer
// explanation. Codes are stable and safe to match on in tests and logs.
//
// # Error Categories
//
// Errors are organized into categories:
//   - runtime: hook and instance misuse (hook outside a render pass, disposed instance)
//   - dispatch: callback references that cannot be resolved
//   - host: host document problems (missing container, unparsable markup)
//   - config: configuration loading and validation
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("R020").
//	    WithDetailf("no element with id %q", id).
//	    Wrap(dom.ErrNotFound)
//
//	fmt.Println(err.Format())
//	// ERROR R020: Container element not found
//	//
//	//   no element with id "4f0c..."
package errors
