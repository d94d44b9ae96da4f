package vdom

import "strconv"

// HIDGenerator hands out the snapshot identifiers "h1", "h2", ... that
// patches use to address host nodes. A generator belongs to one snapshot
// and is not safe for concurrent use.
type HIDGenerator struct {
	next int
}

// NewHIDGenerator creates a generator starting at h1.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next identifier.
func (g *HIDGenerator) Next() string {
	g.next++
	return "h" + strconv.Itoa(g.next)
}

// Count returns how many identifiers have been issued.
func (g *HIDGenerator) Count() int {
	return g.next
}

// AssignHIDs numbers every element, text and comment node of the tree in
// document order. Fragments are transparent and get none.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}
	if node.Kind != KindFragment {
		node.HID = gen.Next()
	}
	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}
