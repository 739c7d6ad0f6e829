package document

import (
	"fmt"
	"strings"

	"github.com/bethropolis/weave/internal/buffer"
	"github.com/bethropolis/weave/internal/core/history"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/types"
)

// LogDirectivePrefix starts the optional first-line log directive.
const LogDirectivePrefix = "# log"

// TextDocument is a line document.
type TextDocument struct {
	base
	buf *buffer.SliceBuffer
}

// NewText creates a text document over lines.
func NewText(path string, lines []string, opts ...Option) *TextDocument {
	o := buildOptions(opts)
	d := &TextDocument{
		base: base{path: path},
		buf:  buffer.NewSliceBuffer(lines),
	}
	d.history = history.NewManager(d, o.historyLimit)
	return d
}

// LoadText reads path. A missing file yields an empty document marked modified.
func LoadText(path string, opts ...Option) (*TextDocument, error) {
	lines, found, err := buffer.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := NewText(path, lines, opts...)
	if !found {
		logger.Debugf("TextDocument: %s does not exist, starting empty", path)
		d.modified = true
	}
	return d, nil
}

func (d *TextDocument) Kind() Kind { return KindText }

// Lines returns a copy of the document's lines.
func (d *TextDocument) Lines() []string { return d.buf.Lines() }

func (d *TextDocument) LineCount() int { return d.buf.LineCount() }

func (d *TextDocument) Content() []byte { return d.buf.Bytes() }

func (d *TextDocument) Header() string {
	if line, err := d.buf.Line(1); err == nil && strings.HasPrefix(strings.TrimSpace(line), LogDirectivePrefix) {
		return strings.TrimSpace(line)
	}
	return ""
}

// Save writes the document to its path and clears the modified flag.
func (d *TextDocument) Save() error {
	if err := buffer.WriteFile(d.path, d.buf.Lines()); err != nil {
		return err
	}
	d.modified = false
	return nil
}

// --- Operations ---

func (d *TextDocument) Append(text string) error {
	return d.Execute(&AppendCommand{Text: text})
}

func (d *TextDocument) Insert(line, col int, text string) error {
	return d.Execute(&InsertCommand{Line: line, Col: col, Text: text})
}

func (d *TextDocument) Delete(line, col, length int) error {
	return d.Execute(&DeleteCommand{Line: line, Col: col, Length: length})
}

func (d *TextDocument) Replace(line, col, length int, text string) error {
	return d.Execute(&ReplaceCommand{Line: line, Col: col, Length: length, Text: text})
}

// AllLines stands for an absent Show or Range bound: the first line for
// start, the last for end.
const AllLines = -1

// Range resolves start..end to line numbers. Explicit bounds must name
// existing lines; on an empty document only AllLines bounds are valid and
// the range is empty (last < first).
func (d *TextDocument) Range(start, end int) (first, last int, err error) {
	n := d.buf.LineCount()
	if start == AllLines {
		start = 1
	} else if start < 1 || start > n {
		return 0, 0, types.PositionErrorf("start line %d out of range 1..%d", start, n)
	}
	if end == AllLines {
		end = n
	} else if end < start || end > n {
		return 0, 0, types.PositionErrorf("end line %d out of range %d..%d", end, start, n)
	}
	return start, end, nil
}

// Show renders lines start..end as "N: content". An empty document renders
// as "".
func (d *TextDocument) Show(start, end int) (string, error) {
	first, last, err := d.Range(start, end)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := first; i <= last; i++ {
		line, _ := d.buf.Line(i)
		fmt.Fprintf(&b, "%d: %s", i, line)
		if i < last {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// --- history.Applier ---

// Apply validates cmd against the current lines and then performs it.
func (d *TextDocument) Apply(cmd history.Command) error {
	switch c := cmd.(type) {
	case *AppendCommand:
		frags := splitText(c.Text)
		c.first = d.buf.LineCount() + 1
		c.count = len(frags)
		for _, f := range frags {
			d.buf.AppendLine(f)
		}
	case *InsertCommand:
		c.materialised = false
		if d.buf.LineCount() == 0 {
			if c.Line != 1 || c.Col != 1 {
				return types.EmptyDocumentErrorf("document is empty: only 1:1 is valid, got %d:%d", c.Line, c.Col)
			}
			d.buf.AppendLine("")
			c.materialised = true
		} else if err := d.checkInsert(c.Line, c.Col); err != nil {
			return err
		}
		c.original, c.inserted = d.spliceLines(c.Line, c.Col, 0, c.Text)
	case *DeleteCommand:
		if err := d.checkRange(c.Line, c.Col, c.Length); err != nil {
			return err
		}
		c.removed = d.buf.Splice(c.Line, c.Col, c.Length, "")
	case *ReplaceCommand:
		if err := d.checkRange(c.Line, c.Col, c.Length); err != nil {
			return err
		}
		line, _ := d.buf.Line(c.Line)
		c.removed = string([]rune(line)[c.Col-1 : c.Col-1+c.Length])
		c.original, c.inserted = d.spliceLines(c.Line, c.Col, c.Length, c.Text)
	default:
		return types.StructuralErrorf("%T is not a text command", cmd)
	}
	return nil
}

// Revert undoes cmd using the state Apply captured.
func (d *TextDocument) Revert(cmd history.Command) error {
	switch c := cmd.(type) {
	case *AppendCommand:
		d.buf.RemoveLines(c.first, c.count)
	case *InsertCommand:
		// A materialised first line stays.
		d.buf.RemoveLines(c.Line+1, c.inserted)
		d.buf.SetLine(c.Line, c.original)
	case *DeleteCommand:
		d.buf.Splice(c.Line, c.Col, 0, c.removed)
	case *ReplaceCommand:
		if c.inserted == 0 {
			d.buf.Splice(c.Line, c.Col, len([]rune(splitText(c.Text)[0])), c.removed)
		} else {
			d.buf.RemoveLines(c.Line+1, c.inserted)
			d.buf.SetLine(c.Line, c.original)
		}
	default:
		return types.StructuralErrorf("%T is not a text command", cmd)
	}
	return nil
}

func (d *TextDocument) checkLine(line int) error {
	if n := d.buf.LineCount(); line < 1 || line > n {
		return types.PositionErrorf("line %d out of range 1..%d", line, n)
	}
	return nil
}

func (d *TextDocument) checkInsert(line, col int) error {
	if err := d.checkLine(line); err != nil {
		return err
	}
	if limit := d.buf.RuneCount(line) + 1; col < 1 || col > limit {
		return types.PositionErrorf("column %d out of range 1..%d on line %d", col, limit, line)
	}
	return nil
}

func (d *TextDocument) checkRange(line, col, length int) error {
	if err := d.checkLine(line); err != nil {
		return err
	}
	n := d.buf.RuneCount(line)
	// One past the end is a position; nothing remains there, so any length fails.
	if col < 1 || col > n+1 {
		return types.PositionErrorf("column %d out of range 1..%d on line %d", col, n+1, line)
	}
	remaining := n - col + 1
	if length < 0 {
		return types.LengthErrorf("length %d is negative", length)
	}
	if length > remaining {
		return types.LengthErrorf("length %d exceeds the %d characters remaining on line %d", length, remaining, line)
	}
	return nil
}

// spliceLines replaces length runes at line:col with text, which may span
// lines. It returns the original line and how many lines were added after it.
func (d *TextDocument) spliceLines(line, col, length int, text string) (string, int) {
	original, _ := d.buf.Line(line)
	runes := []rune(original)
	prefix := string(runes[:col-1])
	suffix := string(runes[col-1+length:])

	frags := splitText(text)
	if len(frags) == 1 {
		d.buf.SetLine(line, prefix+frags[0]+suffix)
		return original, 0
	}
	d.buf.SetLine(line, prefix+frags[0])
	rest := append([]string(nil), frags[1:]...)
	rest[len(rest)-1] += suffix
	d.buf.InsertLines(line, rest)
	return original, len(rest)
}

func splitText(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

var (
	_ Document        = (*TextDocument)(nil)
	_ history.Applier = (*TextDocument)(nil)
	_ textCommand     = (*AppendCommand)(nil)
	_ textCommand     = (*InsertCommand)(nil)
	_ textCommand     = (*DeleteCommand)(nil)
	_ textCommand     = (*ReplaceCommand)(nil)
)
