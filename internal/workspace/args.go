package workspace

import (
	"fmt"
	"strconv"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/types"
)

// args reads positional operation arguments; the first failure sticks.
type args struct {
	op   string
	sig  string
	vals []interface{}
	err  error
}

func (a *args) fail(format string, v ...interface{}) {
	if a.err == nil {
		a.err = types.StructuralErrorf("%s%s: %s", a.op, a.sig, fmt.Sprintf(format, v...))
	}
}

func (a *args) present(i int) bool { return i < len(a.vals) && a.vals[i] != nil }

func (a *args) str(i int) string {
	if !a.present(i) {
		a.fail("missing argument %d", i+1)
		return ""
	}
	switch v := a.vals[i].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		a.fail("argument %d must be text, got %T", i+1, v)
		return ""
	}
}

func (a *args) optStr(i int) string {
	if !a.present(i) {
		return ""
	}
	return a.str(i)
}

func (a *args) int(i int) int {
	if !a.present(i) {
		a.fail("missing argument %d", i+1)
		return 0
	}
	switch v := a.vals[i].(type) {
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			a.fail("argument %d must be a number, got %q", i+1, v)
		}
		return n
	default:
		a.fail("argument %d must be a number, got %T", i+1, v)
		return 0
	}
}

// lineRange reads optional start and end line arguments. Absent bounds are
// document.AllLines; a lone start also ends the range.
func (a *args) lineRange() (start, end int) {
	start, end = document.AllLines, document.AllLines
	if a.present(0) {
		start = a.int(0)
		end = start
	}
	if a.present(1) {
		end = a.int(1)
	}
	return start, end
}

func (a *args) attrs(i int) map[string]string {
	if !a.present(i) {
		return nil
	}
	m, ok := a.vals[i].(map[string]string)
	if !ok {
		a.fail("argument %d must be attributes, got %T", i+1, a.vals[i])
	}
	return m
}
