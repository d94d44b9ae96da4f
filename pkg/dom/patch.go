package dom

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/vango-dev/rewax/pkg/vdom"
)

// Patcher diffs a host subtree against freshly rendered markup and applies
// the result. It is the default diff/patch engine used by rewax runtimes.
type Patcher struct {
	Options vdom.DiffOptions
}

// NewPatcher creates a Patcher with the given diff options.
func NewPatcher(opts vdom.DiffOptions) *Patcher {
	return &Patcher{Options: opts}
}

// PatchSet is a diff result bound to the snapshot it was computed against.
type PatchSet struct {
	Patches []vdom.Patch
	index   map[string]*html.Node
}

// Len returns the number of patches in the set.
func (ps *PatchSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.Patches)
}

// Diff snapshots the children of container and diffs them against markup.
// The container's own tag and attributes are kept as they are.
func (p *Patcher) Diff(container *html.Node, markup string) (*PatchSet, error) {
	children, err := vdom.Parse(markup)
	if err != nil {
		return nil, err
	}

	prev, index := Snapshot(container)
	next := &vdom.VNode{
		Kind:     prev.Kind,
		Tag:      prev.Tag,
		Attrs:    prev.Attrs,
		Key:      prev.Key,
		Children: children,
	}
	return &PatchSet{Patches: vdom.Diff(prev, next, p.Options), index: index}, nil
}

// Apply applies a patch set produced by Diff for the same container.
func (p *Patcher) Apply(container *html.Node, ps *PatchSet) error {
	if ps == nil {
		return nil
	}
	return Apply(container, ps.index, ps.Patches)
}

// Reconcile makes the children of container match markup and returns the
// patches it applied.
func (p *Patcher) Reconcile(container *html.Node, markup string) ([]vdom.Patch, error) {
	ps, err := p.Diff(container, markup)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(container, ps); err != nil {
		return nil, err
	}
	return ps.Patches, nil
}

// Apply applies patches, resolving HIDs through index. Patches are applied in
// order; structural indexes are relative to the children list as left by the
// patches before them.
func Apply(root *html.Node, index map[string]*html.Node, patches []vdom.Patch) error {
	for _, p := range patches {
		if err := applyOne(root, index, p); err != nil {
			return fmt.Errorf("dom: apply %s: %w", p, err)
		}
	}
	return nil
}

func applyOne(root *html.Node, index map[string]*html.Node, p vdom.Patch) error {
	resolve := func(hid string) (*html.Node, error) {
		n, ok := index[hid]
		if !ok {
			return nil, fmt.Errorf("%w: hid %q", ErrNotFound, hid)
		}
		return n, nil
	}

	switch p.Op {
	case vdom.PatchSetText:
		n, err := resolve(p.HID)
		if err != nil {
			return err
		}
		if n.Type == html.TextNode || n.Type == html.CommentNode {
			n.Data = p.Value
			return nil
		}
		removeChildren(n)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: p.Value})

	case vdom.PatchSetAttr, vdom.PatchSetValue, vdom.PatchSetChecked:
		n, err := resolve(p.HID)
		if err != nil {
			return err
		}
		SetAttribute(n, p.Key, p.Value)

	case vdom.PatchRemoveAttr:
		n, err := resolve(p.HID)
		if err != nil {
			return err
		}
		RemoveAttribute(n, p.Key)

	case vdom.PatchInsertNode:
		parent, err := resolve(p.ParentID)
		if err != nil {
			return err
		}
		ref := childAt(parent, p.Index)
		for _, c := range vdom.ToHTML(p.Node) {
			parent.InsertBefore(c, ref)
		}

	case vdom.PatchRemoveNode:
		n, err := resolve(p.HID)
		if err != nil {
			return err
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}

	case vdom.PatchMoveNode:
		n, err := resolve(p.HID)
		if err != nil {
			return err
		}
		parent, err := resolve(p.ParentID)
		if err != nil {
			return err
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.InsertBefore(n, childAt(parent, p.Index))

	case vdom.PatchReplaceNode:
		n, err := resolve(p.HID)
		if err != nil {
			return err
		}
		replacement := vdom.ToHTML(p.Node)
		if n == root {
			// The container itself is never swapped, only its contents.
			removeChildren(n)
			for _, r := range replacement {
				for c := r.FirstChild; c != nil; {
					next := c.NextSibling
					r.RemoveChild(c)
					n.AppendChild(c)
					c = next
				}
			}
			return nil
		}
		if n.Parent == nil {
			return fmt.Errorf("replace detached node %q", p.HID)
		}
		for _, r := range replacement {
			n.Parent.InsertBefore(r, n)
		}
		n.Parent.RemoveChild(n)

	default:
		return fmt.Errorf("unknown patch op %d", p.Op)
	}
	return nil
}
