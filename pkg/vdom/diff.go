package vdom

import "strings"

// DiffOptions configures the diff engine.
type DiffOptions struct {
	// ValueDiffing reports changes to the value and checked attributes of form
	// controls as SetValue/SetChecked patches instead of plain attribute patches.
	ValueDiffing bool

	// MaxChildCount replaces an element wholesale instead of reconciling its
	// children when either side has more children than this. Zero disables
	// the limit.
	MaxChildCount int
}

// Diff compares two VNode trees and returns the patches needed to transform prev into next.
func Diff(prev, next *VNode, opts DiffOptions) []Patch {
	d := differ{opts: opts}
	d.diff(prev, next, "")
	return d.patches
}

type differ struct {
	opts    DiffOptions
	patches []Patch
}

func (d *differ) emit(p Patch) {
	d.patches = append(d.patches, p)
}

// diff recursively compares nodes and appends patches.
// parentHID is the HID of the parent element, used when a node has no HID of its own.
func (d *differ) diff(prev, next *VNode, parentHID string) {
	// Both nil - nothing to do
	if prev == nil && next == nil {
		return
	}

	// Node added (handled by parent via InsertNode)
	if prev == nil {
		return
	}

	// Node removed
	if next == nil {
		d.emit(Patch{Op: PatchRemoveNode, HID: prev.HID})
		return
	}

	// Different types - replace
	if prev.Kind != next.Kind {
		d.emit(Patch{Op: PatchReplaceNode, HID: prev.HID, Node: next})
		return
	}

	switch prev.Kind {
	case KindText, KindComment:
		d.diffText(prev, next, parentHID)
	case KindElement:
		d.diffElement(prev, next)
	case KindFragment:
		next.HID = prev.HID
		d.diffChildren(prev, next, parentHID)
	}
}

// diffText compares text and comment nodes.
func (d *differ) diffText(prev, next *VNode, parentHID string) {
	next.HID = prev.HID
	if prev.Text == next.Text {
		return
	}
	targetHID := prev.HID
	if targetHID == "" {
		targetHID = parentHID
	}
	if targetHID != "" {
		d.emit(Patch{Op: PatchSetText, HID: targetHID, Value: next.Text})
	}
}

// diffElement compares element nodes.
func (d *differ) diffElement(prev, next *VNode) {
	if prev.Tag != next.Tag || prev.Key != next.Key {
		d.emit(Patch{Op: PatchReplaceNode, HID: prev.HID, Node: next})
		return
	}

	next.HID = prev.HID
	d.diffAttrs(prev, next)

	if limit := d.opts.MaxChildCount; limit > 0 && (len(prev.Children) > limit || len(next.Children) > limit) {
		d.emit(Patch{Op: PatchReplaceNode, HID: prev.HID, Node: next})
		return
	}
	d.diffChildren(prev, next, prev.HID)
}

// diffAttrs compares and patches attributes.
func (d *differ) diffAttrs(prev, next *VNode) {
	for _, a := range prev.Attrs {
		if _, ok := next.Attr(a.Key); !ok {
			d.emit(Patch{Op: PatchRemoveAttr, HID: prev.HID, Key: a.Key})
		}
	}
	for _, a := range next.Attrs {
		old, ok := prev.Attr(a.Key)
		if ok && old == a.Value {
			continue
		}
		d.emit(d.attrPatch(prev, a))
	}
}

// attrPatch builds the patch that sets a single attribute.
func (d *differ) attrPatch(node *VNode, a Attr) Patch {
	if d.opts.ValueDiffing && isFormControl(node.Tag) {
		switch a.Key {
		case "value":
			return Patch{Op: PatchSetValue, HID: node.HID, Key: a.Key, Value: a.Value}
		case "checked":
			return Patch{Op: PatchSetChecked, HID: node.HID, Key: a.Key, Value: a.Value}
		}
	}
	return Patch{Op: PatchSetAttr, HID: node.HID, Key: a.Key, Value: a.Value}
}

// diffChildren compares and patches child nodes.
func (d *differ) diffChildren(prev, next *VNode, parentHID string) {
	if hasKeys(prev.Children) || hasKeys(next.Children) {
		d.diffKeyedChildren(prev, next, parentHID)
	} else {
		d.diffUnkeyedChildren(prev, next, parentHID)
	}
}

// diffUnkeyedChildren handles children without keys using positional matching.
func (d *differ) diffUnkeyedChildren(parent, next *VNode, parentHID string) {
	prev := parent.Children
	maxLen := len(prev)
	if len(next.Children) > maxLen {
		maxLen = len(next.Children)
	}

	for i := 0; i < maxLen; i++ {
		var prevChild, nextChild *VNode
		if i < len(prev) {
			prevChild = prev[i]
		}
		if i < len(next.Children) {
			nextChild = next.Children[i]
		}

		if prevChild == nil {
			d.emit(Patch{Op: PatchInsertNode, ParentID: parent.HID, Index: i, Node: nextChild})
			continue
		}
		d.diff(prevChild, nextChild, parentHID)
	}
}

// diffKeyedChildren handles children with keys for efficient reordering.
//
// Removals are emitted first. Moves and inserts follow in target order, each
// index being relative to the children list as it stands after the patches
// before it, so the host can apply them one by one.
func (d *differ) diffKeyedChildren(parent, next *VNode, parentHID string) {
	prev := parent.Children

	// Match next children to prev children: keyed by key, unkeyed in order.
	prevByKey := make(map[string]int)
	var prevUnkeyed []int
	for i, child := range prev {
		if child.Key == "" {
			prevUnkeyed = append(prevUnkeyed, i)
			continue
		}
		if _, dup := prevByKey[child.Key]; !dup {
			prevByKey[child.Key] = i
		}
	}

	source := make([]int, len(next.Children))
	matched := make([]bool, len(prev))
	for i, child := range next.Children {
		source[i] = -1
		if child.Key == "" {
			if len(prevUnkeyed) > 0 {
				source[i] = prevUnkeyed[0]
				prevUnkeyed = prevUnkeyed[1:]
			}
		} else if p, ok := prevByKey[child.Key]; ok && !matched[p] {
			source[i] = p
		}
		if source[i] >= 0 {
			matched[source[i]] = true
		}
	}

	// current simulates the host's children list, as prev indexes (-1 = inserted).
	var current []int
	for i, child := range prev {
		if !matched[i] {
			d.emit(Patch{Op: PatchRemoveNode, HID: child.HID})
			continue
		}
		current = append(current, i)
	}

	for i, child := range next.Children {
		p := source[i]
		if p < 0 {
			d.emit(Patch{Op: PatchInsertNode, ParentID: parent.HID, Index: i, Node: child})
			current = insertAt(current, i, -1)
			continue
		}

		pos := indexOf(current, p)
		if pos != i {
			d.emit(Patch{Op: PatchMoveNode, HID: prev[p].HID, ParentID: parent.HID, Index: i})
			current = insertAt(append(current[:pos], current[pos+1:]...), i, p)
		}
		d.diff(prev[p], child, parentHID)
	}
}

// hasKeys returns true if any child has a key.
func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if child != nil && child.Key != "" {
			return true
		}
	}
	return false
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func insertAt(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// isFormControl reports whether the tag carries a live value.
func isFormControl(tag string) bool {
	switch strings.ToLower(tag) {
	case "input", "textarea", "select", "option":
		return true
	}
	return false
}
