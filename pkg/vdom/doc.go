// Package vdom provides the snapshot tree and diff engine used to reconcile
// rendered markup against a live host tree.
//
// A render function produces a markup string. The string is parsed into a
// tree of VNodes, the live host subtree is snapshotted into another, and Diff
// compares the two to produce a minimal list of Patch operations. Applying the
// patches is the host's job (see package dom).
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text and
// comments. Attr holds a single attribute. Patch describes one host mutation.
//
// # Diffing
//
// The Diff function compares two VNode trees and returns a slice of Patch
// operations. Keyed reconciliation is used when children carry a "key" or
// "data-key" attribute; otherwise children are matched by position.
//
// # Hydration IDs
//
// Patches address host nodes by hydration ID (HID). Snapshots assign an HID to
// every node so that each patch can be resolved back to the node it targets.
package vdom
