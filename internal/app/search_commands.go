package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/weave/internal/core/find"
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/types"
)

func (a *App) cmdFind(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	re, err := find.Compile(args[0].val)
	if err != nil {
		return "", err
	}
	var matches []find.Match
	switch d := a.workspace.Active().(type) {
	case *document.TextDocument:
		matches = find.InLines(re, d.Lines())
	case *document.TreeDocument:
		matches = find.InElements(re, d.TextNodes())
	default:
		return "", types.StateErrorf("no active document")
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No matches for '%s'", args[0].val), nil
	}
	lines := []string{fmt.Sprintf("%d match(es):", len(matches))}
	for _, m := range matches {
		lines = append(lines, "  "+m.String())
	}
	return strings.Join(lines, "\n"), nil
}

// cmdSubstitute applies /pattern/replacement/[g] to every line of the active
// text document. Each replacement is its own undoable command.
func (a *App) cmdSubstitute(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	s, err := find.ParseSubstitute(args[0].val)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	d, ok := a.workspace.Active().(*document.TextDocument)
	if !ok {
		if a.workspace.Active() == nil {
			return "", types.StateErrorf("no active document")
		}
		return "", types.StructuralErrorf("substitute works on text documents only")
	}
	edits := s.Plan(d.Lines())
	for i, e := range edits {
		if _, err := a.workspace.Dispatch("replace", e.Line, e.Col, e.Length, e.Text); err != nil {
			return "", fmt.Errorf("after %d replacement(s): %w", i, err)
		}
	}
	if len(edits) == 0 {
		return "No matches", nil
	}
	return fmt.Sprintf("Replaced %d occurrence(s)", len(edits)), nil
}
