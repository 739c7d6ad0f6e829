package workspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/weave/internal/core/history"
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/tree"
	"github.com/bethropolis/weave/internal/types"
)

// operation is one entry of the dispatch table.
type operation struct {
	sig     string // argument signature for error messages
	maxArgs int
	text    bool // supported on text documents
	tree    bool // supported on tree documents
	run     func(w *Workspace, d document.Document, a *args) (string, error)
}

func operationTable() map[string]operation {
	return map[string]operation{
		"append": {sig: "(text)", maxArgs: 1, text: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.AppendCommand{Text: a.str(0)}
			return "", w.runCommand(d, a, cmd)
		}},
		"insert": {sig: "(line, col, text)", maxArgs: 3, text: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.InsertCommand{Line: a.int(0), Col: a.int(1), Text: a.str(2)}
			return "", w.runCommand(d, a, cmd)
		}},
		"delete": {sig: "(line, col, length)", maxArgs: 3, text: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.DeleteCommand{Line: a.int(0), Col: a.int(1), Length: a.int(2)}
			return "", w.runCommand(d, a, cmd)
		}},
		"replace": {sig: "(line, col, length, text)", maxArgs: 4, text: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.ReplaceCommand{Line: a.int(0), Col: a.int(1), Length: a.int(2), Text: a.str(3)}
			return "", w.runCommand(d, a, cmd)
		}},
		"show": {sig: "(start?, end?)", maxArgs: 2, text: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			start, end := a.lineRange()
			if a.err != nil {
				return "", a.err
			}
			return d.(*document.TextDocument).Show(start, end)
		}},
		"insertBefore": {sig: "(tag, newId, targetId, text?, attrs?)", maxArgs: 5, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.InsertBeforeCommand{Tag: a.str(0), NewID: a.str(1), TargetID: a.str(2), Text: a.optStr(3), Attrs: a.attrs(4)}
			return "", w.runCommand(d, a, cmd)
		}},
		"appendChild": {sig: "(tag, newId, parentId, text?, attrs?)", maxArgs: 5, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.AppendChildCommand{Tag: a.str(0), NewID: a.str(1), ParentID: a.str(2), Text: a.optStr(3), Attrs: a.attrs(4)}
			return "", w.runCommand(d, a, cmd)
		}},
		"editId": {sig: "(oldId, newId)", maxArgs: 2, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.EditIDCommand{OldID: a.str(0), NewID: a.str(1)}
			return "", w.runCommand(d, a, cmd)
		}},
		"editText": {sig: "(id, text?)", maxArgs: 2, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.EditTextCommand{ID: a.str(0), Text: a.optStr(1)}
			return "", w.runCommand(d, a, cmd)
		}},
		"deleteSubtree": {sig: "(id)", maxArgs: 1, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.DeleteSubtreeCommand{ID: a.str(0)}
			return "", w.runCommand(d, a, cmd)
		}},
		"setAttribute": {sig: "(id, name, value)", maxArgs: 3, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.SetAttributeCommand{ID: a.str(0), Name: a.str(1), Value: a.str(2)}
			return "", w.runCommand(d, a, cmd)
		}},
		"removeAttribute": {sig: "(id, name)", maxArgs: 2, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.RemoveAttributeCommand{ID: a.str(0), Name: a.str(1)}
			return "", w.runCommand(d, a, cmd)
		}},
		"replaceRoot": {sig: "(tag, newId, text?, attrs?)", maxArgs: 4, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			cmd := &document.ReplaceRootCommand{Tag: a.str(0), NewID: a.str(1), Text: a.optStr(2), Attrs: a.attrs(3)}
			return "", w.runCommand(d, a, cmd)
		}},
		"showTree": {sig: "()", maxArgs: 0, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			return d.(*document.TreeDocument).RenderTree(), nil
		}},
		"undo": {sig: "()", maxArgs: 0, text: true, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			return w.Undo()
		}},
		"redo": {sig: "()", maxArgs: 0, text: true, tree: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			return w.Redo()
		}},
		"yank": {sig: "(start?, end? | id)", maxArgs: 2, text: true, tree: true, run: runYank},
		"paste": {sig: "(line, col)", maxArgs: 2, text: true, run: func(w *Workspace, d document.Document, a *args) (string, error) {
			line, col := a.int(0), a.int(1)
			if a.err != nil {
				return "", a.err
			}
			text, err := w.clip.Read()
			if err != nil {
				return "", types.StateErrorf("paste: %v", err)
			}
			return "", w.runCommand(d, a, &document.InsertCommand{Line: line, Col: col, Text: text})
		}},
	}
}

// runCommand executes cmd unless argument parsing already failed.
func (w *Workspace) runCommand(d document.Document, a *args, cmd history.Command) error {
	if a.err != nil {
		return a.err
	}
	return w.execute(d, cmd)
}

func runYank(w *Workspace, d document.Document, a *args) (string, error) {
	var text string
	switch doc := d.(type) {
	case *document.TextDocument:
		start, end := a.lineRange()
		if a.err != nil {
			return "", a.err
		}
		first, last, err := doc.Range(start, end)
		if err != nil {
			return "", err
		}
		if last < first {
			return "", types.EmptyDocumentErrorf("nothing to yank: %s is empty", doc.Path())
		}
		text = strings.Join(doc.Lines()[first-1:last], "\n")
	case *document.TreeDocument:
		id := a.str(0)
		if a.err != nil {
			return "", a.err
		}
		n, ok := doc.Lookup(id)
		if !ok {
			return "", types.StructuralErrorf("element %q not found", id)
		}
		text = tree.MarshalNode(n)
	}
	if err := w.clip.Write(text); err != nil {
		return "", types.StateErrorf("yank: %v", err)
	}
	return "Yanked " + countLines(text), nil
}

func countLines(text string) string {
	if n := strings.Count(text, "\n") + 1; n != 1 {
		return fmt.Sprintf("%d lines", n)
	}
	return "1 line"
}

// Dispatch runs the named operation on the active document.
func (w *Workspace) Dispatch(op string, vals ...interface{}) (string, error) {
	d, err := w.requireActive()
	if err != nil {
		return "", err
	}
	o, ok := w.ops[op]
	if !ok {
		return "", types.StructuralErrorf("unknown operation %q", op)
	}
	switch d.Kind() {
	case document.KindText:
		if !o.text {
			return "", types.StructuralErrorf("operation %q is not supported on text document %s", op, d.Path())
		}
	case document.KindTree:
		if !o.tree {
			return "", types.StructuralErrorf("operation %q is not supported on xml document %s", op, d.Path())
		}
	}
	if len(vals) > o.maxArgs {
		return "", types.StructuralErrorf("%s%s: got %d arguments", op, o.sig, len(vals))
	}
	return o.run(w, d, &args{op: op, sig: o.sig, vals: vals})
}

// Operations lists the names Dispatch accepts.
func (w *Workspace) Operations() []string {
	names := make([]string, 0, len(w.ops))
	for name := range w.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
