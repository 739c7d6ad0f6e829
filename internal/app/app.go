// Package app runs the interactive command line. It wires the workspace to
// its collaborators and dispatches typed commands.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bethropolis/weave/internal/clipboard"
	"github.com/bethropolis/weave/internal/cmdlog"
	"github.com/bethropolis/weave/internal/commands"
	"github.com/bethropolis/weave/internal/config"
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/highlighter"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/plugin"
	"github.com/bethropolis/weave/internal/session"
	"github.com/bethropolis/weave/internal/spellcheck"
	"github.com/bethropolis/weave/internal/stats"
	"github.com/bethropolis/weave/internal/theme"
	"github.com/bethropolis/weave/internal/workspace"
	"github.com/gdamore/tcell/v2"
)

// App holds the workspace, its collaborators and the command table.
type App struct {
	cfg           *config.Config
	workspace     *workspace.Workspace
	eventManager  *event.Manager
	cmdLog        *cmdlog.Logger
	stats         *stats.Tracker
	spell         spellcheck.Checker
	themeManager  *theme.Manager
	highlights    *HighlightingManager
	pluginManager *plugin.Manager
	editorAPI     *appEditorAPI

	commands map[string]*command
	order    []string // registration order, for help

	in        *bufio.Reader
	out       io.Writer
	newScreen func() (tcell.Screen, error)
	now       func() time.Time
	running   bool
}

// Option configures an App.
type Option func(*App)

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
	}
}

// WithScreen replaces the terminal used by the view command.
func WithScreen(fn func() (tcell.Screen, error)) Option {
	return func(a *App) { a.newScreen = fn }
}

// WithClock sets the clock of the command log and the statistics.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp wires a new application from cfg.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	a := &App{
		cfg:       cfg,
		commands:  make(map[string]*command),
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		newScreen: tcell.NewScreen,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	// --- Spell checking ---
	if path := cfg.Spell.DictionaryFile; path != "" {
		dict, err := spellcheck.LoadDictionary(path)
		if err != nil {
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
		a.spell = dict
	} else {
		a.spell = spellcheck.NewDictionary()
	}

	// --- Workspace and collaborators ---
	a.eventManager = event.NewManager()
	a.workspace = workspace.New(
		workspace.WithEvents(a.eventManager),
		workspace.WithHistoryLimit(cfg.Workspace.HistoryLimit),
		workspace.WithClipboard(clipboard.New(cfg.Workspace.SystemClipboard)),
	)
	a.cmdLog = cmdlog.New(cmdlog.WithClock(a.now))
	a.stats = stats.New(stats.WithClock(a.now))
	a.attachCollaborators()

	// --- Themes and highlighting ---
	a.themeManager = theme.NewManager()
	if dir := config.ThemesDir(); dir != "" {
		if n, err := a.themeManager.LoadDir(dir); err != nil {
			logger.Warnf("App: loading themes from %s: %v", dir, err)
		} else if n > 0 {
			logger.Debugf("App: loaded %d theme(s) from %s", n, dir)
		}
	}
	if path := cfg.Viewer.ThemeFile; path != "" {
		if err := a.themeManager.LoadFile(path); err != nil {
			logger.Warnf("App: theme file %s: %v", path, err)
		}
	}
	a.highlights = NewHighlightingManager(highlighter.New(), a.eventManager)

	// --- Commands and plugins ---
	a.editorAPI = newEditorAPI(a)
	a.registerBuiltins()
	commands.RegisterAppCommands(a.editorAPI, a.themeManager)

	a.pluginManager = plugin.NewManager()
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	return a, nil
}

// Workspace exposes the coordinator, mainly for tests and plugins.
func (a *App) Workspace() *workspace.Workspace { return a.workspace }

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

// readLine returns the next input line without its newline. io.EOF is
// returned only when no input is left.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a y/n question; anything but y (or end of input) is no.
func (a *App) confirm(question string) bool {
	a.printf("%s (y/n): ", question)
	answer, err := a.readLine()
	if err != nil {
		a.println("")
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// Run restores the previous session, opens files and reads commands until
// exit or end of input.
func (a *App) Run(files []string) error {
	defer a.pluginManager.ShutdownPlugins()

	a.println("weave - type 'help' for the list of commands")
	if a.cfg.Workspace.RestoreSession {
		a.restoreSession()
	}
	for _, f := range files {
		_, _ = a.dispatch("load", []token{{val: f, quoted: true}})
	}

	a.running = true
	for a.running {
		a.printf("> ")
		line, err := a.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("reading input: %w", err)
			}
			a.println("")
			a.shutdown()
			return nil
		}
		_, _ = a.Execute(line)
	}
	return nil
}

// Execute runs one command line and prints its result or error. Both are
// returned as well.
func (a *App) Execute(line string) (string, error) {
	toks := tokenize(line)
	if len(toks) == 0 {
		return "", nil
	}
	return a.dispatch(strings.ToLower(toks[0].val), toks[1:])
}

func (a *App) dispatch(name string, args []token) (string, error) {
	cmd, ok := a.commands[name]
	if !ok {
		err := fmt.Errorf("unknown command: %s", name)
		a.printf("Error: %v\nType 'help' for the list of commands\n", err)
		return "", err
	}

	logger.DebugTagf("cmd", "App: executing %s %v", name, values(args))
	out, err := cmd.run(args)
	if err != nil {
		if errors.Is(err, errUsage) {
			a.printf("Error: %v\nUsage: %s\n", err, cmd.usage)
		} else {
			a.printf("Error: %v\n", err)
		}
		return out, err
	}
	if out != "" {
		a.println(out)
	}
	return out, nil
}

func (a *App) restoreSession() {
	m, err := session.Load(a.cfg.Workspace.SessionFile)
	if err != nil {
		logger.Warnf("App: %v", err)
		a.printf("Could not restore the previous session: %v\n", err)
		return
	}
	if m == nil || len(m.OpenFiles) == 0 {
		return
	}
	if err := a.workspace.Restore(m); err != nil {
		a.printf("Some files could not be restored: %v\n", err)
	}
	for _, p := range m.LogEnabledFiles {
		if d, ok := a.workspace.Document(p); ok && !a.cmdLog.IsEnabled(d.Path()) {
			if err := a.cmdLog.Enable(d.Path(), nil); err != nil {
				logger.Warnf("App: re-enabling log of %s: %v", p, err)
			}
		}
	}
	a.printf("Restored %d file(s) from the previous session\n", len(a.workspace.Paths()))
	if len(m.ModifiedFiles) > 0 {
		a.printf("Unsaved changes from the previous session were not kept: %s\n", strings.Join(m.ModifiedFiles, ", "))
	}
}

// shutdown saves the session and announces exit.
func (a *App) shutdown() {
	snapshot := a.workspace.Snapshot(a.cmdLog.EnabledPaths())
	if err := session.Save(a.cfg.Workspace.SessionFile, snapshot); err != nil {
		logger.Errorf("App: saving session: %v", err)
		a.printf("Error: saving workspace state: %v\n", err)
	}
	a.workspace.Exit()
	a.running = false
}
