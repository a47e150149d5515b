// Package dom provides the node primitives the restructuring pipeline is
// built on. Every node has at most one parent: relocation is always an
// explicit Detach followed by Append (or one of the insert helpers), and
// attaching a node that still has a parent panics.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a parentless element. attrs are key/value pairs.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		SetAttr(n, attrs[i], attrs[i+1])
	}
	return n
}

// NewText creates a parentless text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Detach removes n from its parent and returns it. Detaching a parentless
// node is a no-op.
func Detach(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}

// Append makes n the last child of parent.
func Append(parent, n *html.Node) {
	parent.AppendChild(n)
}

// Move detaches n and appends it to parent.
func Move(parent, n *html.Node) {
	parent.AppendChild(Detach(n))
}

// InsertFirst makes n the first child of parent.
func InsertFirst(parent, n *html.Node) {
	parent.InsertBefore(n, parent.FirstChild)
}

// Remove detaches n and drops it.
func Remove(n *html.Node) {
	Detach(n)
}

// Wrap puts n inside wrapper, with wrapper taking n's place in the tree.
func Wrap(n, wrapper *html.Node) {
	if n.Parent != nil {
		n.Parent.InsertBefore(wrapper, n)
		Detach(n)
	}
	wrapper.AppendChild(n)
}

// Unwrap replaces n with its children.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// Rename changes the element kind of n, keeping attributes and children.
func Rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

// Clear detaches every child of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// Clone returns a parentless structural copy of n and its subtree.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(Clone(ch))
	}
	return c
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// IsElement reports whether n is an element of kind a.
func IsElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// ElementChildren returns the element children of n in order.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenOf returns the element children of n that are of kind a.
func ChildrenOf(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, a) {
			out = append(out, c)
		}
	}
	return out
}

// NextElement returns the next sibling element of n, skipping text and
// comment nodes.
func NextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Find returns the first descendant of n (n excluded) of kind a in
// document order, or nil.
func Find(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, a) {
			return c
		}
		if f := Find(c, a); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every descendant of n (n excluded) of kind a in
// document order.
func FindAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if IsElement(c, a) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Contains reports whether n is, or has a descendant, of kind a.
func Contains(n *html.Node, a atom.Atom) bool {
	return IsElement(n, a) || Find(n, a) != nil
}
