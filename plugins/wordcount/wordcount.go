// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/plugin"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount adds the "wc" command: lines, words and bytes of the active
// document. For tree documents words are counted in element text only.
type WordCount struct {
	api plugin.API
}

func New() *WordCount {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

func (p *WordCount) Initialize(api plugin.API) error {
	p.api = api
	if err := api.RegisterCommand("wc", "wc - count lines, words and bytes of the active file", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(args []string) (string, error) {
	if p.api == nil {
		return "", fmt.Errorf("wordcount plugin not initialized with API")
	}
	d := p.api.ActiveDocument()
	if d == nil {
		return "", fmt.Errorf("no active document")
	}

	content := d.Content()
	lineCount, wordCount := 0, 0
	switch doc := d.(type) {
	case *document.TextDocument:
		lineCount = doc.LineCount()
		wordCount = countWords(string(content))
	case *document.TreeDocument:
		lineCount = strings.Count(strings.TrimSuffix(string(content), "\n"), "\n") + 1
		for _, n := range doc.TextNodes() {
			wordCount += countWords(n.Text)
		}
	}
	return fmt.Sprintf("Lines: %d, Words: %d, Bytes: %d", lineCount, wordCount, len(content)), nil
}

// countWords counts runs of non-space characters.
func countWords(s string) int {
	return len(strings.Fields(s))
}
