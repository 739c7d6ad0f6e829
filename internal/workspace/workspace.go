// Package workspace coordinates the open documents, the active one, and the
// events collaborators observe.
package workspace

import (
	"errors"
	"path/filepath"

	"github.com/bethropolis/weave/internal/clipboard"
	"github.com/bethropolis/weave/internal/core/history"
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/session"
	"github.com/bethropolis/weave/internal/types"
)

// Workspace holds every open document. Create one with New and pass it to
// whatever needs it.
type Workspace struct {
	docs     map[string]document.Document
	order    []string // open order
	active   string
	events   *event.Manager
	clip     clipboard.Clipboard
	classify func(path string) document.Kind
	docOpts  []document.Option
	ops      map[string]operation
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithEvents shares an existing event manager.
func WithEvents(m *event.Manager) Option {
	return func(w *Workspace) { w.events = m }
}

// WithClassifier replaces the extension based document classification.
func WithClassifier(fn func(path string) document.Kind) Option {
	return func(w *Workspace) { w.classify = fn }
}

// WithHistoryLimit caps the undo stack of every document.
func WithHistoryLimit(n int) Option {
	return func(w *Workspace) { w.docOpts = append(w.docOpts, document.WithHistoryLimit(n)) }
}

// WithClipboard sets the clipboard used by yank and paste.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(w *Workspace) { w.clip = c }
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		docs:     make(map[string]document.Document),
		classify: document.KindForPath,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.events == nil {
		w.events = event.NewManager()
	}
	if w.clip == nil {
		w.clip = &clipboard.Memory{}
	}
	w.ops = operationTable()
	return w
}

// Events returns the event manager collaborators attach to.
func (w *Workspace) Events() *event.Manager { return w.events }

func normalize(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func (w *Workspace) emit(t event.Type, path string, extra event.Fields) {
	fields := event.Fields{event.KeyFilepath: path}
	for k, v := range extra {
		fields[k] = v
	}
	w.events.Dispatch(t, fields)
}

func (w *Workspace) register(path string, d document.Document) {
	w.docs[path] = d
	w.order = append(w.order, path)
}

func (w *Workspace) activate(path string) {
	w.active = path
	w.emit(event.TypeFileActivated, path, nil)
}

// Load opens path, or activates it when it is already open.
func (w *Workspace) Load(path string) (document.Document, error) {
	path = normalize(path)
	if path == "" {
		return nil, types.StateErrorf("load needs a file path")
	}
	if d, ok := w.docs[path]; ok {
		logger.Debugf("Workspace: %s already open, activating", path)
		w.activate(path)
		return d, nil
	}

	var (
		d   document.Document
		err error
	)
	switch w.classify(path) {
	case document.KindTree:
		d, err = document.LoadTree(path, w.docOpts...)
	default:
		d, err = document.LoadText(path, w.docOpts...)
	}
	if err != nil {
		return nil, err
	}

	w.register(path, d)
	directive, auto := document.ParseDirective(d.Header())
	logger.Infof("Workspace: loaded %s (%s, log directive=%v)", path, d.Kind(), auto)
	w.active = path
	w.emit(event.TypeFileLoaded, path, event.Fields{
		event.KeyAutoEnable: auto,
		event.KeyExcludes:   directive.Excludes,
	})
	w.emit(event.TypeFileActivated, path, nil)
	return d, nil
}

// Init creates a new empty document for path without reading the disk.
// withLog seeds the log directive.
func (w *Workspace) Init(path string, kind document.Kind, withLog bool) (document.Document, error) {
	path = normalize(path)
	if path == "" {
		return nil, types.StateErrorf("init needs a file path")
	}
	if _, ok := w.docs[path]; ok {
		return nil, types.StateErrorf("%s is already open", path)
	}

	var d document.Document
	switch kind {
	case document.KindTree:
		header := ""
		if withLog {
			header = document.LogDirectivePrefix
		}
		d = document.NewTree(path, nil, header, w.docOpts...)
	default:
		var lines []string
		if withLog {
			lines = []string{document.LogDirectivePrefix}
		}
		d = document.NewText(path, lines, w.docOpts...)
	}
	d.SetModified(true)

	w.register(path, d)
	logger.Infof("Workspace: created %s (%s, log=%v)", path, kind, withLog)
	w.active = path
	w.emit(event.TypeFileLoaded, path, event.Fields{
		event.KeyAutoEnable: withLog,
		event.KeyExcludes:   []string(nil),
	})
	w.emit(event.TypeFileActivated, path, nil)
	return d, nil
}

// Save writes documents: "" saves the active one, "all" every open one,
// anything else names an open document. It returns the saved paths.
func (w *Workspace) Save(target string) ([]string, error) {
	var paths []string
	switch target {
	case "":
		if w.active == "" {
			return nil, types.StateErrorf("no active document")
		}
		paths = []string{w.active}
	case "all":
		paths = append(paths, w.order...)
	default:
		p := normalize(target)
		if _, ok := w.docs[p]; !ok {
			return nil, types.StateErrorf("%s is not open", p)
		}
		paths = []string{p}
	}

	saved := make([]string, 0, len(paths))
	for _, p := range paths {
		if err := w.docs[p].Save(); err != nil {
			return saved, err
		}
		saved = append(saved, p)
		logger.Infof("Workspace: saved %s", p)
		w.emit(event.TypeCommandExecuted, p, event.Fields{event.KeyCommand: "save"})
	}
	return saved, nil
}

// CloseResult reports what Close did.
type CloseResult struct {
	Path string
	// NeedsConfirmation is set when the document has unsaved changes and
	// was left open; close again with force to discard them.
	NeedsConfirmation bool
	Closed            bool
}

// Close closes path ("" means the active document).
func (w *Workspace) Close(path string, force bool) (CloseResult, error) {
	path = normalize(path)
	if path == "" {
		path = w.active
	}
	if path == "" {
		return CloseResult{}, types.StateErrorf("no active document")
	}
	d, ok := w.docs[path]
	if !ok {
		return CloseResult{}, types.StateErrorf("%s is not open", path)
	}
	if d.Modified() && !force {
		return CloseResult{Path: path, NeedsConfirmation: true}, nil
	}

	delete(w.docs, path)
	for i, p := range w.order {
		if p == path {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	logger.Infof("Workspace: closed %s", path)
	w.emit(event.TypeFileClosed, path, nil)

	if w.active == path {
		w.active = ""
		if n := len(w.order); n > 0 {
			w.activate(w.order[n-1])
		}
	}
	return CloseResult{Path: path, Closed: true}, nil
}

// Edit makes an open document the active one.
func (w *Workspace) Edit(path string) error {
	path = normalize(path)
	if _, ok := w.docs[path]; !ok {
		return types.StateErrorf("%s is not open", path)
	}
	w.activate(path)
	return nil
}

// Active returns the active document, or nil.
func (w *Workspace) Active() document.Document {
	return w.docs[w.active]
}

// ActivePath returns the active document's path, or "".
func (w *Workspace) ActivePath() string { return w.active }

// Document returns the open document at path.
func (w *Workspace) Document(path string) (document.Document, bool) {
	d, ok := w.docs[normalize(path)]
	return d, ok
}

// Paths lists open documents in the order they were opened.
func (w *Workspace) Paths() []string {
	return append([]string(nil), w.order...)
}

// ModifiedPaths lists open documents with unsaved changes.
func (w *Workspace) ModifiedPaths() []string {
	var out []string
	for _, p := range w.order {
		if w.docs[p].Modified() {
			out = append(out, p)
		}
	}
	return out
}

// Entry describes one open document.
type Entry struct {
	Path     string
	Active   bool
	Modified bool
}

// List describes every open document in open order.
func (w *Workspace) List() []Entry {
	out := make([]Entry, 0, len(w.order))
	for _, p := range w.order {
		out = append(out, Entry{Path: p, Active: p == w.active, Modified: w.docs[p].Modified()})
	}
	return out
}

func (w *Workspace) requireActive() (document.Document, error) {
	d := w.Active()
	if d == nil {
		return nil, types.StateErrorf("no active document")
	}
	return d, nil
}

// Undo reverts the last command of the active document.
func (w *Workspace) Undo() (string, error) {
	d, err := w.requireActive()
	if err != nil {
		return "", err
	}
	desc, ok, err := d.Undo()
	if err != nil {
		return "", err
	}
	if !ok {
		return "nothing to undo", nil
	}
	w.emit(event.TypeCommandExecuted, w.active, event.Fields{event.KeyCommand: "undo"})
	return "Undo: " + desc, nil
}

// Redo re-applies the last undone command of the active document.
func (w *Workspace) Redo() (string, error) {
	d, err := w.requireActive()
	if err != nil {
		return "", err
	}
	desc, ok, err := d.Redo()
	if err != nil {
		return "", err
	}
	if !ok {
		return "nothing to redo", nil
	}
	w.emit(event.TypeCommandExecuted, w.active, event.Fields{event.KeyCommand: "redo"})
	return "Redo: " + desc, nil
}

// execute runs cmd on d and reports it to collaborators.
func (w *Workspace) execute(d document.Document, cmd history.Command) error {
	if err := d.Execute(cmd); err != nil {
		return err
	}
	w.emit(event.TypeCommandExecuted, d.Path(), event.Fields{event.KeyCommand: cmd.Description()})
	return nil
}

// Snapshot captures the workspace for session persistence. logEnabled comes
// from the command logger.
func (w *Workspace) Snapshot(logEnabled []string) session.Memento {
	m := session.Memento{
		OpenFiles:       w.Paths(),
		ModifiedFiles:   w.ModifiedPaths(),
		LogEnabledFiles: append([]string(nil), logEnabled...),
	}
	if w.active != "" {
		active := w.active
		m.ActiveFile = &active
	}
	return m
}

// Restore reopens the documents of m and re-activates its active file.
// Documents that fail to load are skipped; their errors are joined.
func (w *Workspace) Restore(m *session.Memento) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, p := range m.OpenFiles {
		if _, err := w.Load(p); err != nil {
			logger.Warnf("Workspace: cannot restore %s: %v", p, err)
			errs = append(errs, err)
		}
	}
	if a := m.Active(); a != "" {
		if _, ok := w.docs[normalize(a)]; ok {
			_ = w.Edit(a)
		}
	}
	return errors.Join(errs...)
}

// Exit announces shutdown to collaborators.
func (w *Workspace) Exit() {
	logger.Infof("Workspace: exit with %d open document(s)", len(w.docs))
	w.emit(event.TypeWorkspaceExit, "", nil)
}
