package app

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bethropolis/weave/internal/types"
)

// errUsage marks a command invoked with the wrong arguments.
var errUsage = errors.New("wrong arguments")

// token is one command line word. Quoted tokens are never read as
// key=value attributes.
type token struct {
	val    string
	quoted bool
}

var tokenPattern = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)'|(\S+)`)

// tokenize splits line on whitespace, keeping quoted strings together.
func tokenize(line string) []token {
	var out []token
	for _, m := range tokenPattern.FindAllStringSubmatch(line, -1) {
		switch m[0][0] {
		case '"':
			out = append(out, token{val: m[1], quoted: true})
		case '\'':
			out = append(out, token{val: m[2], quoted: true})
		default:
			out = append(out, token{val: m[3]})
		}
	}
	return out
}

func values(toks []token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.val
	}
	return out
}

var unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\t`, "\t", `\r`, "\r", `\"`, `"`, `\'`, "'")

// unescape resolves \n \t \r \" \' and \\.
func unescape(s string) string {
	return unescaper.Replace(s)
}

// parsePair parses "a:b" into two integers.
func parsePair(s string) (int, int, bool) {
	left, right, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(left)
	b, errB := strconv.Atoi(right)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return a, b, true
}

func parsePosition(s string) (types.Position, error) {
	line, col, ok := parsePair(s)
	if !ok {
		return types.Position{}, fmt.Errorf("invalid position %q, expected line:col", s)
	}
	return types.Position{Line: line, Col: col}, nil
}

// parseRange accepts "start:end" or a single line number.
func parseRange(s string) (start, end int, err error) {
	if n, convErr := strconv.Atoi(s); convErr == nil {
		return n, n, nil
	}
	start, end, ok := parsePair(s)
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q, expected start:end", s)
	}
	return start, end, nil
}

func parseLength(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return n, nil
}

func isAttr(t token) bool {
	return !t.quoted && strings.Contains(t.val, "=")
}

// splitTextAttrs reads the optional element text followed by key=value
// attributes. Empty keys are skipped; a later key wins.
func splitTextAttrs(toks []token) (text string, attrs map[string]string, err error) {
	if len(toks) > 0 && !isAttr(toks[0]) {
		text = unescape(toks[0].val)
		toks = toks[1:]
	}
	for _, t := range toks {
		if !isAttr(t) {
			return "", nil, fmt.Errorf("%w: expected key=value, got %q", errUsage, t.val)
		}
		key, value, _ := strings.Cut(t.val, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[key] = unescape(strings.TrimSpace(value))
	}
	return text, attrs, nil
}
