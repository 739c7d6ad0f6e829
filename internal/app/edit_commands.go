package app

import (
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/types"
)

// edit dispatches a mutating operation and acknowledges it.
func (a *App) edit(op string, vals ...interface{}) (string, error) {
	if _, err := a.workspace.Dispatch(op, vals...); err != nil {
		return "", err
	}
	return "OK", nil
}

func (a *App) activeIsTree() bool {
	d := a.workspace.Active()
	return d != nil && d.Kind() == document.KindTree
}

// --- Text commands ---

func (a *App) cmdAppend(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	return a.edit("append", unescape(args[0].val))
}

func (a *App) cmdInsert(args []token) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	pos, err := parsePosition(args[0].val)
	if err != nil {
		return "", err
	}
	return a.edit("insert", pos.Line, pos.Col, unescape(args[1].val))
}

// cmdDelete deletes characters from a text document or an element subtree
// from a tree document.
func (a *App) cmdDelete(args []token) (string, error) {
	if a.activeIsTree() {
		if err := need(args, 1); err != nil {
			return "", err
		}
		return a.edit("deleteSubtree", args[0].val)
	}
	if err := need(args, 2); err != nil {
		return "", err
	}
	pos, err := parsePosition(args[0].val)
	if err != nil {
		return "", err
	}
	n, err := parseLength(args[1].val)
	if err != nil {
		return "", err
	}
	return a.edit("delete", pos.Line, pos.Col, n)
}

func (a *App) cmdReplace(args []token) (string, error) {
	if err := need(args, 3); err != nil {
		return "", err
	}
	pos, err := parsePosition(args[0].val)
	if err != nil {
		return "", err
	}
	n, err := parseLength(args[1].val)
	if err != nil {
		return "", err
	}
	return a.edit("replace", pos.Line, pos.Col, n, unescape(args[2].val))
}

func (a *App) cmdShow(args []token) (string, error) {
	if a.activeIsTree() {
		return a.workspace.Dispatch("showTree")
	}
	var (
		out string
		err error
	)
	if len(args) == 0 {
		out, err = a.workspace.Dispatch("show")
	} else {
		start, end, perr := parseRange(args[0].val)
		if perr != nil {
			return "", perr
		}
		out, err = a.workspace.Dispatch("show", start, end)
	}
	if err != nil {
		return "", err
	}
	if out == "" {
		return "(empty file)", nil
	}
	return out, nil
}

func (a *App) cmdYank(args []token) (string, error) {
	if a.activeIsTree() {
		if err := need(args, 1); err != nil {
			return "", err
		}
		return a.workspace.Dispatch("yank", args[0].val)
	}
	if len(args) == 0 {
		return a.workspace.Dispatch("yank")
	}
	start, end, err := parseRange(args[0].val)
	if err != nil {
		return "", err
	}
	return a.workspace.Dispatch("yank", start, end)
}

func (a *App) cmdPaste(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	pos, err := parsePosition(args[0].val)
	if err != nil {
		return "", err
	}
	return a.edit("paste", pos.Line, pos.Col)
}

// --- Tree commands ---

func (a *App) cmdInsertBefore(args []token) (string, error) {
	if err := need(args, 3); err != nil {
		return "", err
	}
	text, attrs, err := splitTextAttrs(args[3:])
	if err != nil {
		return "", err
	}
	return a.edit("insertBefore", args[0].val, args[1].val, args[2].val, text, attrs)
}

func (a *App) cmdAppendChild(args []token) (string, error) {
	if err := need(args, 3); err != nil {
		return "", err
	}
	text, attrs, err := splitTextAttrs(args[3:])
	if err != nil {
		return "", err
	}
	return a.edit("appendChild", args[0].val, args[1].val, args[2].val, text, attrs)
}

func (a *App) cmdEditID(args []token) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	return a.edit("editId", args[0].val, args[1].val)
}

func (a *App) cmdEditText(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	return a.edit("editText", args[0].val, unescape(optArg(args, 1)))
}

func (a *App) cmdSetAttr(args []token) (string, error) {
	if err := need(args, 3); err != nil {
		return "", err
	}
	return a.edit("setAttribute", args[0].val, args[1].val, unescape(args[2].val))
}

func (a *App) cmdRemoveAttr(args []token) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	return a.edit("removeAttribute", args[0].val, args[1].val)
}

func (a *App) cmdAppendRoot(args []token) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	text, attrs, err := splitTextAttrs(args[2:])
	if err != nil {
		return "", err
	}
	return a.edit("replaceRoot", args[0].val, args[1].val, text, attrs)
}

func (a *App) cmdXMLTree(args []token) (string, error) {
	return a.workspace.Dispatch("showTree")
}

// --- Command log ---

// targetPath resolves an optional file argument to an open document path.
func (a *App) targetPath(args []token) (string, error) {
	if len(args) > 0 {
		d, ok := a.workspace.Document(args[0].val)
		if !ok {
			return "", types.StateErrorf("%s is not open", args[0].val)
		}
		return d.Path(), nil
	}
	if p := a.workspace.ActivePath(); p != "" {
		return p, nil
	}
	return "", types.StateErrorf("no active document")
}

func (a *App) cmdLogOn(args []token) (string, error) {
	path, err := a.targetPath(args)
	if err != nil {
		return "", err
	}
	if a.cmdLog.IsEnabled(path) {
		return "Logging already enabled: " + path, nil
	}
	d, _ := a.workspace.Document(path)
	directive, _ := document.ParseDirective(d.Header())
	if err := a.cmdLog.Enable(path, directive.Excludes); err != nil {
		return "", err
	}
	return "Logging enabled: " + path, nil
}

func (a *App) cmdLogOff(args []token) (string, error) {
	path, err := a.targetPath(args)
	if err != nil {
		return "", err
	}
	a.cmdLog.Disable(path)
	return "Logging disabled: " + path, nil
}

func (a *App) cmdLogShow(args []token) (string, error) {
	path, err := a.targetPath(args)
	if err != nil {
		return "", err
	}
	return a.cmdLog.Show(path)
}
