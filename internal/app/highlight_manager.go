package app

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/highlighter"
	"github.com/bethropolis/weave/internal/highlighter/lang"
	"github.com/bethropolis/weave/internal/logger"
)

const highlightTimeout = 2 * time.Second

// HighlightingManager caches syntax highlights per document. An entry is
// dropped when its document changes or closes.
type HighlightingManager struct {
	highlighter *highlighter.Highlighter

	mu    sync.Mutex
	cache map[string]highlighter.Result
}

// NewHighlightingManager creates a manager and subscribes it to m.
func NewHighlightingManager(h *highlighter.Highlighter, m *event.Manager) *HighlightingManager {
	hm := &HighlightingManager{
		highlighter: h,
		cache:       make(map[string]highlighter.Result),
	}
	m.Subscribe(event.TypeCommandExecuted, hm.handleDocumentChanged)
	m.Subscribe(event.TypeFileClosed, hm.handleDocumentChanged)
	return hm
}

func (hm *HighlightingManager) handleDocumentChanged(e event.Event) bool {
	hm.Invalidate(e.Fields.Filepath())
	return false
}

// Invalidate forgets the highlights of path.
func (hm *HighlightingManager) Invalidate(path string) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	delete(hm.cache, path)
}

// languageFor picks the grammar for d. Tree documents always get the
// markup grammar whatever their file name.
func (hm *HighlightingManager) languageFor(d document.Document) *lang.Language {
	if l := hm.highlighter.LanguageFor(d.Path()); l != nil {
		return l
	}
	if d.Kind() == document.KindTree {
		return hm.highlighter.LanguageFor(".xml")
	}
	return nil
}

// Highlights returns the highlights of d, or nil when it has no grammar or
// highlighting failed.
func (hm *HighlightingManager) Highlights(d document.Document) highlighter.Result {
	hm.mu.Lock()
	if r, ok := hm.cache[d.Path()]; ok {
		hm.mu.Unlock()
		return r
	}
	hm.mu.Unlock()

	l := hm.languageFor(d)
	if l == nil {
		logger.DebugTagf("highlight", "HighlightingManager: no language for %s", d.Path())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), highlightTimeout)
	defer cancel()
	start := time.Now()
	r, err := hm.highlighter.Highlight(ctx, d.Content(), l)
	if err != nil {
		logger.Warnf("HighlightingManager: highlighting %s failed: %v", d.Path(), err)
		return nil
	}
	logger.DebugTagf("highlight", "HighlightingManager: %s highlighted in %v (%d lines)", d.Path(), time.Since(start), len(r))

	hm.mu.Lock()
	hm.cache[d.Path()] = r
	hm.mu.Unlock()
	return r
}
