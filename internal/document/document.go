// Package document implements the text and tree documents and the reversible
// commands that mutate them.
package document

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/weave/internal/core/history"
	"github.com/bethropolis/weave/internal/logger"
)

// Kind selects the document model.
type Kind int

const (
	KindText Kind = iota
	KindTree
)

func (k Kind) String() string {
	if k == KindTree {
		return "xml"
	}
	return "text"
}

// ParseKind maps "text"/"txt" and "xml"/"tree" to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "text", "txt", "":
		return KindText, true
	case "xml", "tree":
		return KindTree, true
	}
	return KindText, false
}

// KindForPath classifies by extension: ".xml" is a tree document, anything else text.
func KindForPath(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return KindTree
	}
	return KindText
}

// Document is the common surface of every document kind.
type Document interface {
	Path() string
	Kind() Kind
	Modified() bool
	SetModified(bool)

	// Execute runs a command of this document's kind through its history.
	Execute(cmd history.Command) error
	// Undo/Redo return the affected command's description; ok is false when
	// the stack was empty.
	Undo() (desc string, ok bool, err error)
	Redo() (desc string, ok bool, err error)
	History() *history.Manager

	// Header is the first-line log directive, or "".
	Header() string
	// Content is the document rendered in its file format.
	Content() []byte
	Save() error
}

// Option configures a new document.
type Option func(*options)

type options struct {
	historyLimit int
}

// WithHistoryLimit caps the undo stack; 0 keeps everything.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.historyLimit = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// base holds what every document kind shares.
type base struct {
	path     string
	modified bool
	history  *history.Manager
}

func (b *base) Path() string               { return b.path }
func (b *base) Modified() bool             { return b.modified }
func (b *base) SetModified(m bool)         { b.modified = m }
func (b *base) History() *history.Manager { return b.history }

func (b *base) Execute(cmd history.Command) error {
	if err := b.history.Execute(cmd); err != nil {
		return err
	}
	b.modified = true
	return nil
}

func (b *base) Undo() (string, bool, error) {
	cmd, ok, err := b.history.Undo()
	if err != nil || !ok {
		return "", ok, err
	}
	b.modified = true
	logger.DebugTagf("document", "Document %s: undo %q", b.path, cmd.Description())
	return cmd.Description(), true, nil
}

func (b *base) Redo() (string, bool, error) {
	cmd, ok, err := b.history.Redo()
	if err != nil || !ok {
		return "", ok, err
	}
	b.modified = true
	logger.DebugTagf("document", "Document %s: redo %q", b.path, cmd.Description())
	return cmd.Description(), true, nil
}

// quote renders a text argument the way the command line accepts it back.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}
