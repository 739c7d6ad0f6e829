package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/weave/internal/tree"
)

// treeCommand seals the set of commands a TreeDocument accepts.
type treeCommand interface {
	Description() string
	treeCommand()
}

// InsertBeforeCommand creates an element as the preceding sibling of TargetID.
type InsertBeforeCommand struct {
	Tag, NewID, TargetID, Text string
	Attrs                      map[string]string

	node   *tree.Node // reused on redo so later commands keep their target
	parent *tree.Node
}

// AppendChildCommand creates an element as the last child of ParentID.
type AppendChildCommand struct {
	Tag, NewID, ParentID, Text string
	Attrs                      map[string]string

	node *tree.Node
}

// EditIDCommand renames an element.
type EditIDCommand struct {
	OldID, NewID string

	node *tree.Node
}

// EditTextCommand sets an element's text.
type EditTextCommand struct {
	ID, Text string

	node     *tree.Node
	previous string
}

// DeleteSubtreeCommand removes an element and everything below it.
type DeleteSubtreeCommand struct {
	ID string

	node   *tree.Node
	parent *tree.Node
	index  int
	ids    []string // every id the subtree held, pre-order
}

// SetAttributeCommand sets an attribute other than id.
type SetAttributeCommand struct {
	ID, Name, Value string

	node     *tree.Node
	previous string
	existed  bool
}

// RemoveAttributeCommand removes an attribute other than id.
type RemoveAttributeCommand struct {
	ID, Name string

	node    *tree.Node
	removed tree.Attr
	index   int
}

// ReplaceRootCommand swaps the default root for a new element.
type ReplaceRootCommand struct {
	Tag, NewID, Text string
	Attrs            map[string]string

	node      *tree.Node
	prevRoot  *tree.Node
	prevIndex map[string]*tree.Node
}

func (*InsertBeforeCommand) treeCommand()    {}
func (*AppendChildCommand) treeCommand()     {}
func (*EditIDCommand) treeCommand()          {}
func (*EditTextCommand) treeCommand()        {}
func (*DeleteSubtreeCommand) treeCommand()   {}
func (*SetAttributeCommand) treeCommand()    {}
func (*RemoveAttributeCommand) treeCommand() {}
func (*ReplaceRootCommand) treeCommand()     {}

func (c *InsertBeforeCommand) Description() string {
	return withText(fmt.Sprintf("insert-before %s %s %s", c.Tag, c.NewID, c.TargetID), c.Text, c.Attrs)
}

func (c *AppendChildCommand) Description() string {
	return withText(fmt.Sprintf("append-child %s %s %s", c.Tag, c.NewID, c.ParentID), c.Text, c.Attrs)
}

func (c *EditIDCommand) Description() string {
	return fmt.Sprintf("edit-id %s %s", c.OldID, c.NewID)
}

func (c *EditTextCommand) Description() string {
	return fmt.Sprintf("edit-text %s %s", c.ID, quote(c.Text))
}

func (c *DeleteSubtreeCommand) Description() string {
	return "delete " + c.ID
}

func (c *SetAttributeCommand) Description() string {
	return fmt.Sprintf("set-attr %s %s %s", c.ID, c.Name, quote(c.Value))
}

func (c *RemoveAttributeCommand) Description() string {
	return fmt.Sprintf("remove-attr %s %s", c.ID, c.Name)
}

func (c *ReplaceRootCommand) Description() string {
	return withText(fmt.Sprintf("append-root %s %s", c.Tag, c.NewID), c.Text, c.Attrs)
}

func withText(head, text string, attrs map[string]string) string {
	parts := []string{head}
	if text != "" {
		parts = append(parts, quote(text))
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+quote(attrs[k]))
	}
	return strings.Join(parts, " ")
}
