package vdom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a markup fragment into VNodes, as if assigned to the
// innerHTML of a <div>.
func Parse(markup string) ([]*VNode, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("vdom: parse markup: %w", err)
	}

	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if v := FromHTML(n, nil); v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// FromHTML converts a host node and its subtree into a VNode tree.
// visit, if non-nil, is called for every pair produced; snapshots use it to
// index host nodes by the HID they assign.
func FromHTML(n *html.Node, visit func(*VNode, *html.Node)) *VNode {
	var v *VNode
	switch n.Type {
	case html.ElementNode:
		v = &VNode{Kind: KindElement, Tag: n.Data}
		for _, a := range n.Attr {
			v.Attrs = append(v.Attrs, Attr{Key: a.Key, Value: a.Val})
		}
		v.Key = keyFromAttrs(v.Attrs)
	case html.TextNode:
		v = &VNode{Kind: KindText, Text: n.Data}
	case html.CommentNode:
		v = &VNode{Kind: KindComment, Text: n.Data}
	case html.DocumentNode:
		v = &VNode{Kind: KindFragment}
	default:
		return nil
	}

	if visit != nil {
		visit(v, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTML(c, visit); child != nil {
			v.Children = append(v.Children, child)
		}
	}
	return v
}

// ToHTML materializes a VNode subtree as detached host nodes.
// Fragments expand to their children.
func ToHTML(v *VNode) []*html.Node {
	if v == nil {
		return nil
	}

	var n *html.Node
	switch v.Kind {
	case KindElement:
		n = &html.Node{Type: html.ElementNode, Data: v.Tag, DataAtom: atom.Lookup([]byte(v.Tag))}
		for _, a := range v.Attrs {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
		}
	case KindText:
		return []*html.Node{{Type: html.TextNode, Data: v.Text}}
	case KindComment:
		return []*html.Node{{Type: html.CommentNode, Data: v.Text}}
	case KindFragment:
		var out []*html.Node
		for _, c := range v.Children {
			out = append(out, ToHTML(c)...)
		}
		return out
	default:
		return nil
	}

	for _, c := range v.Children {
		for _, cn := range ToHTML(c) {
			n.AppendChild(cn)
		}
	}
	return []*html.Node{n}
}

// Render serializes a VNode subtree back to markup.
func Render(v *VNode) string {
	var b strings.Builder
	for _, n := range ToHTML(v) {
		_ = html.Render(&b, n)
	}
	return b.String()
}
