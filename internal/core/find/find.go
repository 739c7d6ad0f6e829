// Package find searches documents with regular expressions and parses
// substitute expressions.
package find

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/utils"
)

// Match is one occurrence. Line and the columns are 1-based runes, EndCol
// exclusive. ID is set for matches in tree element text.
type Match struct {
	Line   int
	Col    int
	EndCol int
	ID     string
	Text   string
}

// Length is the match length in runes.
func (m Match) Length() int { return m.EndCol - m.Col }

func (m Match) String() string {
	if m.ID != "" {
		return fmt.Sprintf("%s:%d: %s", m.ID, m.Col, m.Text)
	}
	return fmt.Sprintf("%d:%d: %s", m.Line, m.Col, m.Text)
}

// Compile compiles a search pattern. Empty patterns are rejected.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("search pattern cannot be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		logger.Warnf("find: invalid regex '%s': %v", pattern, err)
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return re, nil
}

func matchLine(re *regexp.Regexp, line string, limit int) []Match {
	b := []byte(line)
	var out []Match
	for _, loc := range re.FindAllIndex(b, limit) {
		if loc[0] == loc[1] {
			continue // empty matches select nothing
		}
		out = append(out, Match{
			Col:    utils.ByteOffsetToRuneIndex(b, loc[0]) + 1,
			EndCol: utils.ByteOffsetToRuneIndex(b, loc[1]) + 1,
			Text:   line[loc[0]:loc[1]],
		})
	}
	return out
}

// InLines finds every match in lines.
func InLines(re *regexp.Regexp, lines []string) []Match {
	var out []Match
	for i, line := range lines {
		for _, m := range matchLine(re, line, -1) {
			m.Line = i + 1
			out = append(out, m)
		}
	}
	logger.DebugTagf("find", "find: %d match(es) for '%s' in %d lines", len(out), re, len(lines))
	return out
}

// InElements finds every match in element text. Line is the line within
// the element text.
func InElements(re *regexp.Regexp, elements []document.TextNode) []Match {
	var out []Match
	for _, e := range elements {
		for i, line := range strings.Split(e.Text, "\n") {
			for _, m := range matchLine(re, line, -1) {
				m.Line = i + 1
				m.ID = e.ID
				out = append(out, m)
			}
		}
	}
	return out
}

// Substitution is a parsed /pattern/replacement/[g] expression.
type Substitution struct {
	Pattern     *regexp.Regexp
	Replacement string
	Global      bool // every match on a line, not only the first
}

// ParseSubstitute parses "/pattern/replacement/[g]". Delimiters cannot be
// escaped.
func ParseSubstitute(expr string) (Substitution, error) {
	parts := strings.SplitN(expr, "/", 4)
	if len(parts) < 3 || parts[0] != "" {
		return Substitution{}, fmt.Errorf("invalid format: use /pattern/replacement/[g]")
	}
	re, err := Compile(parts[1])
	if err != nil {
		return Substitution{}, err
	}
	s := Substitution{Pattern: re, Replacement: parts[2]}
	if len(parts) > 3 {
		for _, flag := range parts[3] {
			if flag != 'g' {
				return Substitution{}, fmt.Errorf("unknown substitute flag %q", flag)
			}
			s.Global = true
		}
	}
	return s, nil
}

// Edit replaces Length runes at Line:Col with Text.
type Edit struct {
	Line, Col, Length int
	Text              string
}

// Plan computes the edits that apply s to lines, ordered bottom to top and
// right to left so that applying them in order keeps every position valid.
func (s Substitution) Plan(lines []string) []Edit {
	limit := 1
	if s.Global {
		limit = -1
	}
	var edits []Edit
	for i := len(lines) - 1; i >= 0; i-- {
		b := []byte(lines[i])
		locs := s.Pattern.FindAllSubmatchIndex(b, limit)
		for j := len(locs) - 1; j >= 0; j-- {
			loc := locs[j]
			if loc[0] == loc[1] {
				continue
			}
			text := string(s.Pattern.Expand(nil, []byte(s.Replacement), b, loc))
			col := utils.ByteOffsetToRuneIndex(b, loc[0]) + 1
			edits = append(edits, Edit{
				Line:   i + 1,
				Col:    col,
				Length: utils.ByteOffsetToRuneIndex(b, loc[1]) + 1 - col,
				Text:   text,
			})
		}
	}
	return edits
}
