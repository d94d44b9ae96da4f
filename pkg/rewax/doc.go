// Package rewax is a small component engine that re-runs plain render
// functions and reconciles their markup against a live host tree, keeping
// per-component hook state between runs.
//
// A render function is stateless and runs top to bottom on every pass. Hook
// calls made while it runs are addressed by call position within their
// category (state, mount, unmount, scope), or by an explicit or ambient key.
// Records that a pass does not reach are swept when it ends: unmount
// cleanups run and owned scopes are disposed.
//
// # Rendering
//
//	rt := rewax.NewRuntime()
//	app := rt.NewInstance()
//	_, err := app.Render(func() string {
//	    count := rewax.UseState(app, 0)
//	    return app.Bind(
//	        `<button onclick="`, func() { count.Update(inc) }, `">`,
//	        count.Get(), `</button>`,
//	    )
//	}, container)
//
// Handle and Bind turn functions into callback references that the host
// dispatches through the runtime's Registry. Invoking a reference runs the
// function and redraws the instance.
//
// # Lists
//
// Each renders a slice while making each item's key the ambient hook key,
// so an item's hooks follow it when the list is reordered:
//
//	rewax.Each(app, todos, func(t Todo) string {
//	    done := rewax.UseState(app, false)
//	    ...
//	}, rewax.EachKey("ID"))
//
// # Scopes
//
// UseScope returns a child instance owned by a slot of its parent. Rendering
// it without a container yields a wrapper <div id="…"> that later redraws of
// the child patch in place through the runtime's Host.
//
// # Concurrency
//
// An instance is driven from one goroutine. A Redraw requested while the
// same instance is redrawing is queued and run after the current pass.
package rewax
