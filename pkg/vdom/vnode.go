package vdom

import "strings"

// VKind discriminates VNode variants.
type VKind uint8

const (
	KindElement VKind = iota
	KindText
	KindComment
	// KindFragment holds children with no element of its own. Parse uses it
	// for the top level of a markup string.
	KindFragment
)

func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	}
	return "VKind(?)"
}

// VNode is one node of a parsed markup snapshot. Text holds the data of
// text and comment nodes; HID is filled in by AssignHIDs.
type VNode struct {
	Kind     VKind
	Tag      string
	Attrs    []Attr
	Children []*VNode
	Key      string
	Text     string
	HID      string
}

// Attr is a name/value pair kept in source order.
type Attr struct {
	Key   string
	Value string
}

// Attr looks up an attribute by exact name. A nil node has none.
func (v *VNode) Attr(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	for i := range v.Attrs {
		if v.Attrs[i].Key == key {
			return v.Attrs[i].Value, true
		}
	}
	return "", false
}

// TextContent concatenates descendant text, skipping comments.
func (v *VNode) TextContent() string {
	var b strings.Builder
	v.writeText(&b)
	return b.String()
}

func (v *VNode) writeText(b *strings.Builder) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindText:
		b.WriteString(v.Text)
	case KindComment:
	default:
		for _, c := range v.Children {
			c.writeText(b)
		}
	}
}

// keyFromAttrs picks the reconciliation key. "key" wins over "data-key"
// only by position.
func keyFromAttrs(attrs []Attr) string {
	for _, a := range attrs {
		switch a.Key {
		case "key", "data-key":
			return a.Value
		}
	}
	return ""
}
