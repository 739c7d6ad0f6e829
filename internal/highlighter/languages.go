// internal/highlighter/languages.go
package highlighter

import (
	"embed"
	"sync"

	"github.com/bethropolis/weave/internal/highlighter/lang"
	"github.com/bethropolis/weave/internal/logger"

	"github.com/smacker/go-tree-sitter/html"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages registers the builtin grammars. Safe to call repeatedly.
func RegisterLanguages() {
	registerOnce.Do(func() {
		if lang.QueryFS == nil {
			lang.QueryFS = embeddedQueries
		}

		// Saved tree documents are XML; the HTML grammar tokenises their
		// tags, attributes and comments.
		lang.Register(&lang.Language{
			Name:           "XML",
			TreeSitterLang: html.GetLanguage(),
			Extensions:     []string{".xml", ".html", ".htm"},
			QueryPath:      "html",
		})

		logger.DebugTagf("highlight", "Registration complete. Registered %d languages.", len(lang.GetAll()))
	})
}
