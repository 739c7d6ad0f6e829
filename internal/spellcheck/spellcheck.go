// Package spellcheck finds misspelled words in document text.
package spellcheck

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bethropolis/weave/internal/utils"
)

// Checker looks up one word. ok is false when the word is misspelled.
type Checker interface {
	Check(word string) (suggestions []string, ok bool)
}

// Finding is one misspelled word. Line/Col are set for text documents, ID for
// tree documents.
type Finding struct {
	Word        string
	Suggestions []string
	Line, Col   int
	ID          string
}

func (f Finding) String() string {
	where := fmt.Sprintf("line %d, col %d", f.Line, f.Col)
	if f.ID != "" {
		where = "element " + f.ID
	}
	return fmt.Sprintf("%s: %q -> suggestions: %s", where, f.Word, strings.Join(f.Suggestions, ", "))
}

// commonMisspellings seeds every Dictionary.
var commonMisspellings = map[string][]string{
	"recieve":    {"receive"},
	"occured":    {"occurred"},
	"seperate":   {"separate"},
	"definately": {"definitely"},
	"itallian":   {"Italian"},
	"rowlling":   {"Rowling"},
	"teh":        {"the"},
	"wich":       {"which"},
	"untill":     {"until"},
	"accomodate": {"accommodate"},
}

// Dictionary is a Checker backed by a table of known misspellings.
type Dictionary struct {
	words map[string][]string
}

// NewDictionary returns a Dictionary holding the built-in misspellings.
func NewDictionary() *Dictionary {
	d := &Dictionary{words: make(map[string][]string, len(commonMisspellings))}
	for w, s := range commonMisspellings {
		d.words[w] = s
	}
	return d
}

// LoadDictionary extends the built-in table with a file of
// "misspelling: suggestion, suggestion" lines. Blank lines and "#" comments are skipped.
func LoadDictionary(path string) (*Dictionary, error) {
	d := NewDictionary()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, rest, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(word) == "" {
			return nil, fmt.Errorf("dictionary %s:%d: expected \"word: suggestions\"", path, n)
		}
		var sugg []string
		for _, s := range strings.Split(rest, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sugg = append(sugg, s)
			}
		}
		d.Add(strings.TrimSpace(word), sugg...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return d, nil
}

// Add records word as a misspelling.
func (d *Dictionary) Add(word string, suggestions ...string) {
	d.words[strings.ToLower(word)] = suggestions
}

func (d *Dictionary) Check(word string) ([]string, bool) {
	if s, bad := d.words[strings.ToLower(word)]; bad {
		return s, false
	}
	return nil, true
}

var wordPattern = regexp.MustCompile(`\b[A-Za-z]+\b`)

// CheckText reports each misspelled word of text once, at its first
// occurrence. Col is the 1-based rune column.
func CheckText(c Checker, text string) []Finding {
	var out []Finding
	seen := make(map[string]bool)
	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		key := strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		if sugg, ok := c.Check(word); !ok {
			out = append(out, Finding{Word: word, Suggestions: sugg, Col: utils.ByteOffsetToRuneIndex([]byte(text), loc[0]) + 1})
		}
	}
	return out
}

// CheckLines runs CheckText on each line, filling in line numbers.
func CheckLines(c Checker, lines []string) []Finding {
	var out []Finding
	for i, line := range lines {
		for _, f := range CheckText(c, line) {
			f.Line = i + 1
			out = append(out, f)
		}
	}
	return out
}

// CheckElement runs CheckText on the text of element id.
func CheckElement(c Checker, id, text string) []Finding {
	found := CheckText(c, text)
	for i := range found {
		found[i].ID = id
		found[i].Col = 0
	}
	return found
}
