package types

import "fmt"

// Position is a 1-based line/column location in a text document.
// Col counts runes, not bytes.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
