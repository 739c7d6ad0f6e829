// Package highlighter computes syntax colouring with tree-sitter.
package highlighter

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/weave/internal/highlighter/lang"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
)

// Span is a styled run of one line. Columns are 0-based rune indexes, EndCol
// exclusive.
type Span struct {
	StartCol int
	EndCol   int
	Style    string
}

// Result maps a 0-based line number to its spans, ordered by StartCol.
type Result map[int][]Span

// StyleAt returns the style covering col on line, or "".
func (r Result) StyleAt(line, col int) string {
	for _, s := range r[line] {
		if col >= s.StartCol && col < s.EndCol {
			return s.Style
		}
	}
	return ""
}

// Highlighter parses sources and runs highlight queries. Compiled queries are
// cached per language.
type Highlighter struct {
	mu      sync.Mutex
	parser  *sitter.Parser
	queries map[*lang.Language]*sitter.Query
}

// New creates a highlighter and registers the builtin languages.
func New() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

// LanguageFor returns the language for path, or nil when it has none.
func (h *Highlighter) LanguageFor(path string) *lang.Language {
	return lang.GetForFile(path)
}

func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	src, err := l.GetQuery()
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("query parse failed for %s: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// Highlight parses source and returns its styled spans. Captures spanning
// several lines are split per line.
func (h *Highlighter) Highlight(ctx context.Context, source []byte, l *lang.Language) (Result, error) {
	if l == nil {
		return nil, fmt.Errorf("no language provided for highlighting")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	q, err := h.query(l)
	if err != nil {
		return nil, err
	}
	h.parser.SetLanguage(l.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	lines := bytes.Split(source, []byte("\n"))
	result := make(Result)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			style := q.CaptureNameForId(capture.Index)
			addCapture(result, lines, capture.Node.StartPoint(), capture.Node.EndPoint(), style)
		}
	}

	for line := range result {
		spans := result[line]
		sort.SliceStable(spans, func(i, j int) bool { return spans[i].StartCol < spans[j].StartCol })
	}
	logger.DebugTagf("highlight", "Highlight: %s, spans on %d lines", l.Name, len(result))
	return result, nil
}

func addCapture(result Result, lines [][]byte, start, end sitter.Point, style string) {
	for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
		line := lines[row]
		startCol := 0
		if row == int(start.Row) {
			startCol = utils.ByteOffsetToRuneIndex(line, int(start.Column))
		}
		endCol := utils.ByteOffsetToRuneIndex(line, len(line))
		if row == int(end.Row) {
			endCol = utils.ByteOffsetToRuneIndex(line, int(end.Column))
		}
		if endCol > startCol {
			result[row] = append(result[row], Span{StartCol: startCol, EndCol: endCol, Style: style})
		}
	}
}
