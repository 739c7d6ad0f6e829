// Package tree models attributed element trees with unique ids.
package tree

import (
	"sort"
	"strings"
	"unicode"
)

// Attr is one attribute of a node.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list. Order is the order attributes were added.
type Attrs []Attr

// Get returns the value of name.
func (a Attrs) Get(name string) (string, bool) {
	if i := a.Index(name); i >= 0 {
		return a[i].Value, true
	}
	return "", false
}

// Index returns the position of name, or -1.
func (a Attrs) Index(name string) int {
	for i, attr := range a {
		if attr.Name == name {
			return i
		}
	}
	return -1
}

// Set updates name in place or appends it.
func (a *Attrs) Set(name, value string) {
	if i := a.Index(name); i >= 0 {
		(*a)[i].Value = value
		return
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// InsertAt puts attr at position i (clamped to the list).
func (a *Attrs) InsertAt(i int, attr Attr) {
	if i < 0 || i > len(*a) {
		i = len(*a)
	}
	*a = append(*a, Attr{})
	copy((*a)[i+1:], (*a)[i:])
	(*a)[i] = attr
}

// Remove deletes name and reports where it was.
func (a *Attrs) Remove(name string) (Attr, int, bool) {
	i := a.Index(name)
	if i < 0 {
		return Attr{}, -1, false
	}
	attr := (*a)[i]
	*a = append((*a)[:i], (*a)[i+1:]...)
	return attr, i, true
}

// Node is one element. Children are owned; Parent is a back reference used
// for navigation only and is nil for the root and for detached nodes.
type Node struct {
	Tag      string
	ID       string
	Attrs    Attrs // always holds "id"
	Text     string
	Children []*Node
	Parent   *Node
}

// NewNode creates a detached node. Text is trimmed; an "id" key in attrs is
// ignored and the remaining attributes are added in key order.
func NewNode(tag, id, text string, attrs map[string]string) *Node {
	n := &Node{
		Tag:   tag,
		ID:    id,
		Attrs: Attrs{{Name: "id", Value: id}},
		Text:  NormalizeText(text),
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attrs = append(n.Attrs, Attr{Name: k, Value: attrs[k]})
	}
	return n
}

// NormalizeText is the form element text is stored in. Parse applies it to
// file contents, so stored text survives a save and reload.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// ValidName reports whether s can be written as an element or attribute name
// and parsed back unchanged: a letter or '_' followed by letters, digits,
// '_', '-' or '.'. Namespace prefixes are not supported.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// ChildIndex returns the position of child among n's children, or -1.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertChild places child at position i (clamped) and sets its parent.
func (n *Node) InsertChild(i int, child *Node) {
	if i < 0 || i > len(n.Children) {
		i = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
	child.Parent = n
}

// AppendChild adds child as the last child.
func (n *Node) AppendChild(child *Node) {
	n.InsertChild(len(n.Children), child)
}

// RemoveChild detaches the child at i and returns it.
func (n *Node) RemoveChild(i int) *Node {
	child := n.Children[i]
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.Parent = nil
	return child
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// IDs lists the ids of n's subtree in pre-order.
func (n *Node) IDs() []string {
	var ids []string
	n.Walk(func(x *Node) bool {
		ids = append(ids, x.ID)
		return true
	})
	return ids
}
