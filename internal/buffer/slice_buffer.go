package buffer

import (
	"github.com/bethropolis/weave/internal/types"
)

// SliceBuffer stores lines as a slice of strings. Lines are addressed 1-based and
// columns count runes. The mutators assume their arguments were validated.
type SliceBuffer struct {
	lines []string
}

// NewSliceBuffer creates a buffer over a copy of lines. nil gives an empty buffer.
func NewSliceBuffer(lines []string) *SliceBuffer {
	sb := &SliceBuffer{}
	if len(lines) > 0 {
		sb.lines = append([]string(nil), lines...)
	}
	return sb
}

// Lines returns a copy of the current lines.
func (sb *SliceBuffer) Lines() []string {
	out := make([]string, len(sb.lines))
	copy(out, sb.lines)
	return out
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns line n (1-based).
func (sb *SliceBuffer) Line(n int) (string, error) {
	if n < 1 || n > len(sb.lines) {
		return "", types.PositionErrorf("line %d out of range 1..%d", n, len(sb.lines))
	}
	return sb.lines[n-1], nil
}

// RuneCount is the length of line n in runes, 0 for a line that does not exist.
func (sb *SliceBuffer) RuneCount(n int) int {
	if n < 1 || n > len(sb.lines) {
		return 0
	}
	return len([]rune(sb.lines[n-1]))
}

func (sb *SliceBuffer) Bytes() []byte {
	return Join(sb.lines)
}

// --- Mutators ---

// AppendLine adds a line at the end and returns its number.
func (sb *SliceBuffer) AppendLine(s string) int {
	sb.lines = append(sb.lines, s)
	return len(sb.lines)
}

// SetLine overwrites line n.
func (sb *SliceBuffer) SetLine(n int, s string) {
	sb.lines[n-1] = s
}

// InsertLines places lines directly after line n (n == 0 inserts at the top).
func (sb *SliceBuffer) InsertLines(n int, lines []string) {
	if len(lines) == 0 {
		return
	}
	grown := make([]string, 0, len(sb.lines)+len(lines))
	grown = append(grown, sb.lines[:n]...)
	grown = append(grown, lines...)
	grown = append(grown, sb.lines[n:]...)
	sb.lines = grown
}

// RemoveLines drops count lines starting at line n and returns them.
func (sb *SliceBuffer) RemoveLines(n, count int) []string {
	if count <= 0 {
		return nil
	}
	removed := append([]string(nil), sb.lines[n-1:n-1+count]...)
	sb.lines = append(sb.lines[:n-1], sb.lines[n-1+count:]...)
	if len(sb.lines) == 0 {
		sb.lines = nil
	}
	return removed
}

// Splice replaces length runes of line n starting at column col with text and
// returns the runes it removed. text must not contain a line break.
func (sb *SliceBuffer) Splice(n, col, length int, text string) string {
	runes := []rune(sb.lines[n-1])
	start := col - 1
	end := start + length
	removed := string(runes[start:end])
	out := make([]rune, 0, len(runes)-length+len(text))
	out = append(out, runes[:start]...)
	out = append(out, []rune(text)...)
	out = append(out, runes[end:]...)
	sb.lines[n-1] = string(out)
	return removed
}

var _ Buffer = (*SliceBuffer)(nil)
