package tree

import (
	"github.com/bethropolis/weave/internal/types"
)

// DefaultRootID is the tag and id of the root of a fresh tree.
const DefaultRootID = "root"

// Tree is a rooted element tree plus an id index over every reachable node.
type Tree struct {
	Root  *Node
	index map[string]*Node
}

// New returns a tree holding only the default root.
func New() *Tree {
	root := NewNode(DefaultRootID, DefaultRootID, "", nil)
	return &Tree{Root: root, index: map[string]*Node{root.ID: root}}
}

// FromRoot indexes root's subtree. Duplicate or empty ids are structural errors.
func FromRoot(root *Node) (*Tree, error) {
	t := &Tree{Root: root, index: make(map[string]*Node)}
	var err error
	root.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		if n.ID == "" {
			err = types.StructuralErrorf("element <%s> has no id", n.Tag)
			return false
		}
		if _, dup := t.index[n.ID]; dup {
			err = types.StructuralErrorf("duplicate id %q", n.ID)
			return false
		}
		t.index[n.ID] = n
		return true
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup finds a node by id.
func (t *Tree) Lookup(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Has reports whether id is in use.
func (t *Tree) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Len is the number of indexed nodes.
func (t *Tree) Len() int {
	return len(t.index)
}

// IsDefaultRoot reports whether the root is still the placeholder root.
func (t *Tree) IsDefaultRoot() bool {
	return t.Root.Tag == DefaultRootID && t.Root.ID == DefaultRootID
}

// Attach inserts node (and its subtree) under parent at position i and indexes it.
func (t *Tree) Attach(parent *Node, i int, node *Node) {
	parent.InsertChild(i, node)
	node.Walk(func(n *Node) bool {
		t.index[n.ID] = n
		return true
	})
}

// Detach removes node from its parent and drops every id of its subtree from
// the index. It returns the parent and the position node had.
func (t *Tree) Detach(node *Node) (parent *Node, i int) {
	parent = node.Parent
	i = parent.ChildIndex(node)
	parent.RemoveChild(i)
	for _, id := range node.IDs() {
		delete(t.index, id)
	}
	return parent, i
}

// Reindex sets node's id to newID, keeping the id attribute and index in step.
func (t *Tree) Reindex(node *Node, newID string) {
	delete(t.index, node.ID)
	node.ID = newID
	node.Attrs.Set("id", newID)
	t.index[newID] = node
}

// Index returns a copy of the id index.
func (t *Tree) Index() map[string]*Node {
	out := make(map[string]*Node, len(t.index))
	for id, n := range t.index {
		out[id] = n
	}
	return out
}

// SwapRoot installs root with an index holding only the root itself, and
// returns the previous root and index.
func (t *Tree) SwapRoot(root *Node) (*Node, map[string]*Node) {
	oldRoot, oldIndex := t.Root, t.index
	t.Root = root
	t.index = map[string]*Node{root.ID: root}
	return oldRoot, oldIndex
}

// RestoreRoot reinstates a root and index returned by SwapRoot.
func (t *Tree) RestoreRoot(root *Node, index map[string]*Node) {
	t.Root = root
	t.index = index
}
