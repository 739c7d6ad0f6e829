package workspace

import (
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/spellcheck"
	"github.com/bethropolis/weave/internal/types"
)

// SpellCheck checks the text of path ("" means the active document).
func (w *Workspace) SpellCheck(path string, c spellcheck.Checker) ([]spellcheck.Finding, error) {
	path = normalize(path)
	if path == "" {
		path = w.active
	}
	if path == "" {
		return nil, types.StateErrorf("no active document")
	}
	d, ok := w.docs[path]
	if !ok {
		return nil, types.StateErrorf("%s is not open", path)
	}
	switch doc := d.(type) {
	case *document.TextDocument:
		return spellcheck.CheckLines(c, doc.Lines()), nil
	case *document.TreeDocument:
		var out []spellcheck.Finding
		for _, n := range doc.TextNodes() {
			out = append(out, spellcheck.CheckElement(c, n.ID, n.Text)...)
		}
		return out, nil
	}
	return nil, nil
}
