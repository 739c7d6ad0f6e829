package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/weave/internal/dirtree"
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/utils"
)

// command is one entry of the command table.
type command struct {
	name  string
	group string
	usage string
	desc  string
	run   func(args []token) (string, error)
}

const (
	groupWorkspace = "Workspace"
	groupText      = "Text"
	groupXML       = "XML"
	groupLog       = "Log"
	groupTools     = "Tools"
	groupPlugins   = "Plugins"
)

var groupOrder = []string{groupWorkspace, groupText, groupXML, groupLog, groupTools, groupPlugins}

func (a *App) addCommand(c *command) error {
	if _, exists := a.commands[c.name]; exists {
		return fmt.Errorf("command '%s' already registered", c.name)
	}
	a.commands[c.name] = c
	a.order = append(a.order, c.name)
	return nil
}

// registerBuiltins registers the workspace, editing and tool commands.
func (a *App) registerBuiltins() {
	builtins := []*command{
		{name: "load", group: groupWorkspace, usage: "load <file>", desc: "open a file", run: a.cmdLoad},
		{name: "save", group: groupWorkspace, usage: "save [file|all]", desc: "save the active, a named or every file", run: a.cmdSave},
		{name: "init", group: groupWorkspace, usage: "init <file> [text|xml] [with-log]", desc: "create a new empty document", run: a.cmdInit},
		{name: "close", group: groupWorkspace, usage: "close [file]", desc: "close a file", run: a.cmdClose},
		{name: "edit", group: groupWorkspace, usage: "edit <file>", desc: "switch the active file", run: a.cmdEdit},
		{name: "editor-list", group: groupWorkspace, usage: "editor-list", desc: "list open files", run: a.cmdEditorList},
		{name: "undo", group: groupWorkspace, usage: "undo", desc: "undo the last command", run: a.cmdUndo},
		{name: "redo", group: groupWorkspace, usage: "redo", desc: "redo the last undone command", run: a.cmdRedo},
		{name: "exit", group: groupWorkspace, usage: "exit", desc: "save the session and quit", run: a.cmdExit},

		{name: "append", group: groupText, usage: `append "text"`, desc: "append a line", run: a.cmdAppend},
		{name: "insert", group: groupText, usage: `insert <line:col> "text"`, desc: "insert text", run: a.cmdInsert},
		{name: "delete", group: groupText, usage: "delete <line:col> <len> | delete <id>", desc: "delete characters, or an element", run: a.cmdDelete},
		{name: "replace", group: groupText, usage: `replace <line:col> <len> "text"`, desc: "replace characters", run: a.cmdReplace},
		{name: "show", group: groupText, usage: "show [start:end]", desc: "print lines", run: a.cmdShow},
		{name: "yank", group: groupText, usage: "yank [start:end] | yank <id>", desc: "copy lines or an element", run: a.cmdYank},
		{name: "paste", group: groupText, usage: "paste <line:col>", desc: "insert the clipboard", run: a.cmdPaste},
		{name: "find", group: groupText, usage: "find <pattern>", desc: "list regular expression matches", run: a.cmdFind},
		{name: "substitute", group: groupText, usage: "substitute /pattern/replacement/[g]", desc: "replace matches on every line", run: a.cmdSubstitute},

		{name: "insert-before", group: groupXML, usage: `insert-before <tag> <newId> <targetId> ["text"] [key=value...]`, desc: "insert an element before another", run: a.cmdInsertBefore},
		{name: "append-child", group: groupXML, usage: `append-child <tag> <newId> <parentId> ["text"] [key=value...]`, desc: "append a child element", run: a.cmdAppendChild},
		{name: "edit-id", group: groupXML, usage: "edit-id <oldId> <newId>", desc: "rename an element", run: a.cmdEditID},
		{name: "edit-text", group: groupXML, usage: `edit-text <id> ["text"]`, desc: "set or clear element text", run: a.cmdEditText},
		{name: "set-attr", group: groupXML, usage: "set-attr <id> <name> <value>", desc: "set an attribute", run: a.cmdSetAttr},
		{name: "remove-attr", group: groupXML, usage: "remove-attr <id> <name>", desc: "remove an attribute", run: a.cmdRemoveAttr},
		{name: "append-root", group: groupXML, usage: `append-root <tag> <newId> ["text"] [key=value...]`, desc: "replace the root of an empty document", run: a.cmdAppendRoot},
		{name: "xml-tree", group: groupXML, usage: "xml-tree", desc: "print the element tree", run: a.cmdXMLTree},

		{name: "log-on", group: groupLog, usage: "log-on [file]", desc: "start logging commands", run: a.cmdLogOn},
		{name: "log-off", group: groupLog, usage: "log-off [file]", desc: "stop logging commands", run: a.cmdLogOff},
		{name: "log-show", group: groupLog, usage: "log-show [file]", desc: "print the command log", run: a.cmdLogShow},

		{name: "dir-tree", group: groupTools, usage: "dir-tree [path]", desc: "print a directory tree", run: a.cmdDirTree},
		{name: "spell-check", group: groupTools, usage: "spell-check [file]", desc: "report misspelled words", run: a.cmdSpellCheck},
		{name: "view", group: groupTools, usage: "view [file]", desc: "open a full screen viewer", run: a.cmdView},
		{name: "help", group: groupTools, usage: "help", desc: "show this list", run: a.cmdHelp},
	}
	for _, c := range builtins {
		if err := a.addCommand(c); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
}

func need(args []token, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: expected %d argument(s), got %d", errUsage, n, len(args))
	}
	return nil
}

func optArg(args []token, i int) string {
	if i < len(args) {
		return args[i].val
	}
	return ""
}

// --- Workspace commands ---

func (a *App) cmdLoad(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	_, alreadyOpen := a.workspace.Document(args[0].val)
	d, err := a.workspace.Load(args[0].val)
	if err != nil {
		return "", err
	}
	if alreadyOpen {
		return "Already open, switched to: " + d.Path(), nil
	}
	out := fmt.Sprintf("Loaded %s (%s)", d.Path(), d.Kind())
	if a.cmdLog.IsEnabled(d.Path()) {
		out += "\nLogging enabled: " + d.Path()
	}
	return out, nil
}

func (a *App) cmdSave(args []token) (string, error) {
	saved, err := a.workspace.Save(optArg(args, 0))
	lines := make([]string, 0, len(saved))
	for _, p := range saved {
		lines = append(lines, "Saved: "+p)
	}
	if len(lines) == 0 && err == nil {
		return "Nothing to save", nil
	}
	return strings.Join(lines, "\n"), err
}

func (a *App) cmdInit(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	kind := document.KindForPath(args[0].val)
	withLog := false
	for _, t := range args[1:] {
		if strings.EqualFold(t.val, "with-log") {
			withLog = true
			continue
		}
		k, ok := document.ParseKind(t.val)
		if !ok {
			return "", fmt.Errorf("%w: unknown document kind %q", errUsage, t.val)
		}
		kind = k
	}
	d, err := a.workspace.Init(args[0].val, kind, withLog)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("Created %s (%s)", d.Path(), d.Kind())
	if withLog {
		out += " with logging"
	}
	return out, nil
}

func (a *App) cmdClose(args []token) (string, error) {
	res, err := a.workspace.Close(optArg(args, 0), false)
	if err != nil {
		return "", err
	}
	if res.NeedsConfirmation {
		if a.confirm(fmt.Sprintf("%s has unsaved changes. Save?", res.Path)) {
			if _, err := a.workspace.Save(res.Path); err != nil {
				return "", err
			}
			a.printf("Saved: %s\n", res.Path)
		}
		if res, err = a.workspace.Close(res.Path, true); err != nil {
			return "", err
		}
	}
	out := "Closed " + res.Path
	if p := a.workspace.ActivePath(); p != "" {
		out += "\nActive: " + p
	}
	return out, nil
}

func (a *App) cmdEdit(args []token) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	if err := a.workspace.Edit(args[0].val); err != nil {
		return "", err
	}
	return "Switched to: " + a.workspace.ActivePath(), nil
}

func (a *App) cmdEditorList(args []token) (string, error) {
	entries := a.workspace.List()
	if len(entries) == 0 {
		return "No open files", nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		prefix, suffix := "  ", ""
		if e.Active {
			prefix = "> "
		}
		if e.Modified {
			suffix = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%s%s (%s)", prefix, e.Path, suffix, a.stats.Format(e.Path)))
	}
	return strings.Join(lines, "\n"), nil
}

func (a *App) cmdUndo(args []token) (string, error) { return a.workspace.Undo() }
func (a *App) cmdRedo(args []token) (string, error) { return a.workspace.Redo() }

func (a *App) cmdExit(args []token) (string, error) {
	if modified := a.workspace.ModifiedPaths(); len(modified) > 0 {
		a.println("These files have unsaved changes:")
		for _, p := range modified {
			a.printf("  %s\n", p)
		}
		for _, p := range modified {
			if !a.confirm("Save " + p + "?") {
				continue
			}
			if _, err := a.workspace.Save(p); err != nil {
				a.printf("Error: %v\n", err)
				continue
			}
			a.printf("Saved: %s\n", p)
		}
	}
	a.shutdown()
	return "Workspace state saved. Goodbye!", nil
}

// --- Tools ---

func (a *App) cmdDirTree(args []token) (string, error) {
	path := optArg(args, 0)
	if path == "" {
		path = "."
	}
	return dirtree.Render(path)
}

func (a *App) cmdSpellCheck(args []token) (string, error) {
	findings, err := a.workspace.SpellCheck(optArg(args, 0), a.spell)
	if err != nil {
		return "", err
	}
	if len(findings) == 0 {
		return "Spell check: no errors found", nil
	}
	lines := []string{"Spell check results:"}
	for _, f := range findings {
		lines = append(lines, "  "+f.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (a *App) cmdHelp(args []token) (string, error) {
	width := 0
	for _, c := range a.commands {
		if w := utils.DisplayWidth(c.usage); w > width && c.desc != "" {
			width = w
		}
	}
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, group := range groupOrder {
		header := false
		for _, name := range a.order {
			c := a.commands[name]
			if c.group != group {
				continue
			}
			if !header {
				fmt.Fprintf(&b, "\n\n%s:", group)
				header = true
			}
			if c.desc == "" {
				fmt.Fprintf(&b, "\n  %s", c.usage)
			} else {
				fmt.Fprintf(&b, "\n  %s - %s", utils.PadRight(c.usage, width), c.desc)
			}
		}
	}
	return b.String(), nil
}
