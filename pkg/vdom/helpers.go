package vdom

// Constructors for building trees by hand, mostly in tests.

func Text(s string) *VNode    { return &VNode{Kind: KindText, Text: s} }
func Comment(s string) *VNode { return &VNode{Kind: KindComment, Text: s} }

// A builds an attribute argument for El.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// El builds an element. Arguments may be Attr, *VNode or string; strings
// become text children and anything else is ignored.
func El(tag string, args ...any) *VNode {
	n := &VNode{Kind: KindElement, Tag: tag}
	for _, arg := range args {
		switch a := arg.(type) {
		case Attr:
			n.Attrs = append(n.Attrs, a)
		case *VNode:
			if a != nil {
				n.Children = append(n.Children, a)
			}
		case string:
			n.Children = append(n.Children, Text(a))
		}
	}
	n.Key = keyFromAttrs(n.Attrs)
	return n
}

// Fragment wraps children without an element; nil children are dropped.
func Fragment(children ...*VNode) *VNode {
	n := &VNode{Kind: KindFragment}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}
