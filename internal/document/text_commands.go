package document

import (
	"fmt"
)

// textCommand seals the set of commands a TextDocument accepts.
type textCommand interface {
	Description() string
	textCommand()
}

// AppendCommand adds Text as a new last line (one line per line break in Text).
type AppendCommand struct {
	Text string

	first int // first appended line
	count int
}

// InsertCommand inserts Text at Line:Col, splitting lines at each "\n".
type InsertCommand struct {
	Line, Col int
	Text      string

	original     string // target line before the insert
	inserted     int    // lines added after the target
	materialised bool   // an empty document got its first line
}

// DeleteCommand removes Length runes starting at Line:Col.
type DeleteCommand struct {
	Line, Col, Length int

	removed string
}

// ReplaceCommand swaps Length runes starting at Line:Col for Text.
type ReplaceCommand struct {
	Line, Col, Length int
	Text              string

	removed  string
	original string
	inserted int
}

func (*AppendCommand) textCommand()  {}
func (*InsertCommand) textCommand()  {}
func (*DeleteCommand) textCommand()  {}
func (*ReplaceCommand) textCommand() {}

func (c *AppendCommand) Description() string {
	return "append " + quote(c.Text)
}

func (c *InsertCommand) Description() string {
	return fmt.Sprintf("insert %d:%d %s", c.Line, c.Col, quote(c.Text))
}

func (c *DeleteCommand) Description() string {
	return fmt.Sprintf("delete %d:%d %d", c.Line, c.Col, c.Length)
}

func (c *ReplaceCommand) Description() string {
	return fmt.Sprintf("replace %d:%d %d %s", c.Line, c.Col, c.Length, quote(c.Text))
}
