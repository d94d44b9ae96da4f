package vdom

import "fmt"

// PatchOp names one host mutation produced by Diff.
type PatchOp uint8

const (
	PatchSetText PatchOp = iota + 1
	PatchSetAttr
	PatchRemoveAttr
	PatchInsertNode
	PatchRemoveNode
	PatchMoveNode
	PatchReplaceNode
	PatchSetValue
	PatchSetChecked
)

var opNames = [...]string{
	PatchSetText:     "SetText",
	PatchSetAttr:     "SetAttr",
	PatchRemoveAttr:  "RemoveAttr",
	PatchInsertNode:  "InsertNode",
	PatchRemoveNode:  "RemoveNode",
	PatchMoveNode:    "MoveNode",
	PatchReplaceNode: "ReplaceNode",
	PatchSetValue:    "SetValue",
	PatchSetChecked:  "SetChecked",
}

func (op PatchOp) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return fmt.Sprintf("PatchOp(%d)", uint8(op))
}

// Patch addresses its target by the snapshot identifier assigned in
// AssignHIDs. Inserts and moves name the parent and a child index instead.
type Patch struct {
	Op       PatchOp
	HID      string
	Key      string // attribute name
	Value    string
	Node     *VNode // inserted or replacement subtree
	Index    int
	ParentID string
}

// String is the one-line form used in debug logs and replay reports.
func (p Patch) String() string {
	switch p.Op {
	case PatchSetAttr, PatchRemoveAttr:
		return fmt.Sprintf("%s %s %s=%q", p.Op, p.HID, p.Key, p.Value)
	case PatchInsertNode:
		return fmt.Sprintf("%s %s[%d]", p.Op, p.ParentID, p.Index)
	case PatchMoveNode:
		return fmt.Sprintf("%s %s -> %s[%d]", p.Op, p.HID, p.ParentID, p.Index)
	case PatchSetText, PatchSetValue, PatchSetChecked:
		return fmt.Sprintf("%s %s %q", p.Op, p.HID, p.Value)
	}
	return fmt.Sprintf("%s %s", p.Op, p.HID)
}
