package document

import "strings"

// Directive is the parsed form of a "# log [-e op]..." header line.
type Directive struct {
	Excludes []string // operation names that are not logged
}

// ParseDirective parses a log directive header. ok is false when header is
// not a directive.
func ParseDirective(header string) (Directive, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 || fields[0] != "#" || fields[1] != "log" {
		return Directive{}, false
	}
	var d Directive
	for i := 2; i < len(fields); i++ {
		if fields[i] == "-e" && i+1 < len(fields) {
			d.Excludes = append(d.Excludes, fields[i+1])
			i++
		}
	}
	return d, true
}

// String renders the directive back into header form.
func (d Directive) String() string {
	var b strings.Builder
	b.WriteString(LogDirectivePrefix)
	for _, op := range d.Excludes {
		b.WriteString(" -e ")
		b.WriteString(op)
	}
	return b.String()
}
