// Package dom provides an in-memory host document for rewax instances.
//
// A Document wraps a tree of golang.org/x/net/html nodes and offers the small
// surface the rendering engine needs from a host: element lookup by id,
// attribute mutation, markup assignment, snapshots for diffing, patch
// application and event dispatch through callback references embedded in
// on* attributes.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/rewax/pkg/vdom"
)

// ErrNotFound is returned when an element lookup finds nothing.
var ErrNotFound = errors.New("dom: element not found")

// Document is a live host tree.
type Document struct {
	root *html.Node
}

// NewDocument parses markup as the body of a new document.
func NewDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
}

// GetElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) GetElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return findFirst(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := GetAttribute(n, "id")
		return ok && v == id
	})
}

// MustGetElementByID is like GetElementByID but returns ErrNotFound.
func (d *Document) MustGetElementByID(id string) (*html.Node, error) {
	n := d.GetElementByID(id)
	if n == nil {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	return n, nil
}

// String serializes the whole document.
func (d *Document) String() string {
	var b strings.Builder
	_ = html.Render(&b, d.root)
	return b.String()
}

// GetAttribute returns the named attribute of n.
func GetAttribute(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets or replaces the named attribute of n.
func SetAttribute(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttribute removes the named attribute of n, if present.
func RemoveAttribute(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// SetInnerHTML replaces the children of n with the parsed markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}
	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// OuterHTML serializes n itself.
func OuterHTML(n *html.Node) string {
	var b strings.Builder
	_ = html.Render(&b, n)
	return b.String()
}

// TextContent returns the concatenated text of n's subtree.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// QueryAll returns every element in n's subtree (n included) with the given tag.
func QueryAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
		return false
	})
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if match(c) {
			found = c
			return true
		}
		return false
	})
	return found
}

// walk visits n's subtree depth first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// childAt returns the i-th child of n, or nil when i is past the end.
func childAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// Snapshot converts n's subtree into a VNode tree with an HID on every node
// and returns the index resolving those HIDs back to host nodes.
func Snapshot(n *html.Node) (*vdom.VNode, map[string]*html.Node) {
	gen := vdom.NewHIDGenerator()
	index := make(map[string]*html.Node)
	root := vdom.FromHTML(n, func(v *vdom.VNode, h *html.Node) {
		v.HID = gen.Next()
		index[v.HID] = h
	})
	return root, index
}
