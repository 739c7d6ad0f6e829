package lang

import (
	"fmt"
	"io/fs"

	sitter "github.com/smacker/go-tree-sitter"
)

// QueryFS holds the highlight queries, one directory per language.
var QueryFS fs.FS

// Language is a grammar with its highlight query.
type Language struct {
	Name           string
	TreeSitterLang *sitter.Language
	Extensions     []string
	// QueryPath is the directory under queries/ holding highlights.scm.
	QueryPath string
}

// GetQuery reads the highlight query source of l.
func (l *Language) GetQuery() ([]byte, error) {
	if QueryFS == nil {
		return nil, fmt.Errorf("no query filesystem registered")
	}
	if l.QueryPath == "" {
		return nil, fmt.Errorf("no query path defined for language %s", l.Name)
	}
	path := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, path)
	if err != nil {
		return nil, fmt.Errorf("loading query for %s: %w", l.Name, err)
	}
	return query, nil
}
