package document

import (
	"errors"
	"os"

	"github.com/bethropolis/weave/internal/core/history"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/tree"
	"github.com/bethropolis/weave/internal/types"
)

// TreeDocument is an element tree document.
type TreeDocument struct {
	base
	tree   *tree.Tree
	header string
}

// NewTree creates a tree document. A nil t starts from the default root.
func NewTree(path string, t *tree.Tree, header string, opts ...Option) *TreeDocument {
	if t == nil {
		t = tree.New()
	}
	o := buildOptions(opts)
	d := &TreeDocument{
		base:   base{path: path},
		tree:   t,
		header: header,
	}
	d.history = history.NewManager(d, o.historyLimit)
	return d
}

// LoadTree reads and parses path. A missing file yields a default-root
// document marked modified.
func LoadTree(path string, opts ...Option) (*TreeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("TreeDocument: %s does not exist, starting empty", path)
			d := NewTree(path, nil, "", opts...)
			d.modified = true
			return d, nil
		}
		return nil, types.IOError(err, "cannot read %s", path)
	}
	t, header, err := tree.Parse(data)
	if err != nil {
		return nil, err
	}
	return NewTree(path, t, header, opts...), nil
}

func (d *TreeDocument) Kind() Kind { return KindTree }

func (d *TreeDocument) Root() *tree.Node { return d.tree.Root }

func (d *TreeDocument) Lookup(id string) (*tree.Node, bool) { return d.tree.Lookup(id) }

// Tree exposes the underlying tree for read-only use.
func (d *TreeDocument) Tree() *tree.Tree { return d.tree }

func (d *TreeDocument) Header() string { return d.header }

// SetHeader replaces the first-line directive. It is not an undoable edit.
func (d *TreeDocument) SetHeader(h string) { d.header = h }

func (d *TreeDocument) Content() []byte { return tree.Marshal(d.tree, d.header) }

// RenderTree draws the element tree.
func (d *TreeDocument) RenderTree() string { return tree.Render(d.tree) }

// TextNode is an element id with its text.
type TextNode struct {
	ID   string
	Text string
}

// TextNodes lists the elements that carry text, in document order.
func (d *TreeDocument) TextNodes() []TextNode {
	var out []TextNode
	d.tree.Root.Walk(func(n *tree.Node) bool {
		if n.Text != "" {
			out = append(out, TextNode{ID: n.ID, Text: n.Text})
		}
		return true
	})
	return out
}

// Save writes the document to its path and clears the modified flag.
func (d *TreeDocument) Save() error {
	if err := os.WriteFile(d.path, d.Content(), 0644); err != nil {
		return types.IOError(err, "cannot write %s", d.path)
	}
	d.modified = false
	return nil
}

// --- Operations ---

func (d *TreeDocument) InsertBefore(tag, newID, targetID, text string, attrs map[string]string) error {
	return d.Execute(&InsertBeforeCommand{Tag: tag, NewID: newID, TargetID: targetID, Text: text, Attrs: attrs})
}

func (d *TreeDocument) AppendChild(tag, newID, parentID, text string, attrs map[string]string) error {
	return d.Execute(&AppendChildCommand{Tag: tag, NewID: newID, ParentID: parentID, Text: text, Attrs: attrs})
}

func (d *TreeDocument) EditID(oldID, newID string) error {
	return d.Execute(&EditIDCommand{OldID: oldID, NewID: newID})
}

func (d *TreeDocument) EditText(id, text string) error {
	return d.Execute(&EditTextCommand{ID: id, Text: text})
}

func (d *TreeDocument) DeleteSubtree(id string) error {
	return d.Execute(&DeleteSubtreeCommand{ID: id})
}

func (d *TreeDocument) SetAttribute(id, name, value string) error {
	return d.Execute(&SetAttributeCommand{ID: id, Name: name, Value: value})
}

func (d *TreeDocument) RemoveAttribute(id, name string) error {
	return d.Execute(&RemoveAttributeCommand{ID: id, Name: name})
}

func (d *TreeDocument) ReplaceRoot(tag, newID, text string, attrs map[string]string) error {
	return d.Execute(&ReplaceRootCommand{Tag: tag, NewID: newID, Text: text, Attrs: attrs})
}

// --- history.Applier ---

// Apply validates cmd against the current tree and then performs it.
func (d *TreeDocument) Apply(cmd history.Command) error {
	t := d.tree
	switch c := cmd.(type) {
	case *InsertBeforeCommand:
		target, err := d.find(c.TargetID)
		if err != nil {
			return err
		}
		if target.Parent == nil {
			return types.StructuralErrorf("cannot insert before the root element %q", c.TargetID)
		}
		if err := checkNames(c.Tag, c.Attrs); err != nil {
			return err
		}
		if err := d.unused(c.NewID); err != nil {
			return err
		}
		if c.node == nil {
			c.node = tree.NewNode(c.Tag, c.NewID, c.Text, c.Attrs)
		}
		c.parent = target.Parent
		t.Attach(c.parent, c.parent.ChildIndex(target), c.node)
	case *AppendChildCommand:
		parent, err := d.find(c.ParentID)
		if err != nil {
			return err
		}
		if err := checkNames(c.Tag, c.Attrs); err != nil {
			return err
		}
		if err := d.unused(c.NewID); err != nil {
			return err
		}
		if c.node == nil {
			c.node = tree.NewNode(c.Tag, c.NewID, c.Text, c.Attrs)
		}
		t.Attach(parent, len(parent.Children), c.node)
	case *EditIDCommand:
		node, err := d.find(c.OldID)
		if err != nil {
			return err
		}
		if err := d.unused(c.NewID); err != nil {
			return err
		}
		c.node = node
		t.Reindex(node, c.NewID)
	case *EditTextCommand:
		node, err := d.find(c.ID)
		if err != nil {
			return err
		}
		c.node, c.previous = node, node.Text
		node.Text = tree.NormalizeText(c.Text)
	case *DeleteSubtreeCommand:
		node, err := d.find(c.ID)
		if err != nil {
			return err
		}
		if node == t.Root {
			return types.StructuralErrorf("cannot delete the root element %q", c.ID)
		}
		if node.Parent == nil {
			return types.StructuralErrorf("element %q has no parent", c.ID)
		}
		c.node = node
		c.ids = node.IDs()
		c.parent, c.index = t.Detach(node)
	case *SetAttributeCommand:
		if c.Name == "id" {
			return types.StructuralErrorf("the id attribute can only be changed with edit-id")
		}
		if !tree.ValidName(c.Name) {
			return types.StructuralErrorf("invalid attribute name %q", c.Name)
		}
		node, err := d.find(c.ID)
		if err != nil {
			return err
		}
		c.node = node
		c.previous, c.existed = node.Attrs.Get(c.Name)
		node.Attrs.Set(c.Name, c.Value)
	case *RemoveAttributeCommand:
		if c.Name == "id" {
			return types.StructuralErrorf("the id attribute cannot be removed")
		}
		node, err := d.find(c.ID)
		if err != nil {
			return err
		}
		if _, ok := node.Attrs.Get(c.Name); !ok {
			return types.StructuralErrorf("element %q has no attribute %q", c.ID, c.Name)
		}
		c.node = node
		c.removed, c.index, _ = node.Attrs.Remove(c.Name)
	case *ReplaceRootCommand:
		if len(t.Root.Children) > 0 {
			return types.StructuralErrorf("root element %q already has children", t.Root.ID)
		}
		if !t.IsDefaultRoot() {
			return types.StructuralErrorf("root element has already been replaced by %q", t.Root.ID)
		}
		if err := checkNames(c.Tag, c.Attrs); err != nil {
			return err
		}
		// The placeholder root leaves the index with the swap, so its id may be reused.
		if c.NewID != t.Root.ID {
			if err := d.unused(c.NewID); err != nil {
				return err
			}
		}
		if c.node == nil {
			c.node = tree.NewNode(c.Tag, c.NewID, c.Text, c.Attrs)
		}
		c.prevRoot, c.prevIndex = t.SwapRoot(c.node)
	default:
		return types.StructuralErrorf("%T is not a tree command", cmd)
	}
	return nil
}

// Revert undoes cmd using the state Apply captured.
func (d *TreeDocument) Revert(cmd history.Command) error {
	t := d.tree
	switch c := cmd.(type) {
	case *InsertBeforeCommand:
		t.Detach(c.node)
	case *AppendChildCommand:
		t.Detach(c.node)
	case *EditIDCommand:
		t.Reindex(c.node, c.OldID)
	case *EditTextCommand:
		c.node.Text = c.previous
	case *DeleteSubtreeCommand:
		t.Attach(c.parent, c.index, c.node)
		for _, id := range c.ids {
			if !t.Has(id) {
				return types.StructuralErrorf("restored subtree lost id %q", id)
			}
		}
	case *SetAttributeCommand:
		if c.existed {
			c.node.Attrs.Set(c.Name, c.previous)
		} else {
			c.node.Attrs.Remove(c.Name)
		}
	case *RemoveAttributeCommand:
		c.node.Attrs.InsertAt(c.index, c.removed)
	case *ReplaceRootCommand:
		t.RestoreRoot(c.prevRoot, c.prevIndex)
	default:
		return types.StructuralErrorf("%T is not a tree command", cmd)
	}
	return nil
}

func (d *TreeDocument) find(id string) (*tree.Node, error) {
	n, ok := d.tree.Lookup(id)
	if !ok {
		return nil, types.StructuralErrorf("element %q not found", id)
	}
	return n, nil
}

// checkNames rejects a tag or attribute name that could not be saved and
// loaded again.
func checkNames(tag string, attrs map[string]string) error {
	if !tree.ValidName(tag) {
		return types.StructuralErrorf("invalid element name %q", tag)
	}
	for name := range attrs {
		if !tree.ValidName(name) {
			return types.StructuralErrorf("invalid attribute name %q", name)
		}
	}
	return nil
}

func (d *TreeDocument) unused(id string) error {
	if id == "" {
		return types.StructuralErrorf("element id must not be empty")
	}
	if d.tree.Has(id) {
		return types.StructuralErrorf("id %q already exists", id)
	}
	return nil
}

var (
	_ Document        = (*TreeDocument)(nil)
	_ history.Applier = (*TreeDocument)(nil)
	_ treeCommand     = (*InsertBeforeCommand)(nil)
	_ treeCommand     = (*AppendChildCommand)(nil)
	_ treeCommand     = (*EditIDCommand)(nil)
	_ treeCommand     = (*EditTextCommand)(nil)
	_ treeCommand     = (*DeleteSubtreeCommand)(nil)
	_ treeCommand     = (*SetAttributeCommand)(nil)
	_ treeCommand     = (*RemoveAttributeCommand)(nil)
	_ treeCommand     = (*ReplaceRootCommand)(nil)
)
