package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bethropolis/weave/internal/types"
)

func TestTokenize(t *testing.T) {
	toks := tokenize(`insert 1:6 "hello, \"world\"" 'it''s' key=v`)
	want := []token{
		{val: "insert"},
		{val: "1:6"},
		{val: `hello, \"world\"`, quoted: true},
		{val: "it", quoted: true},
		{val: "s", quoted: true},
		{val: "key=v"},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("tokenize = %#v", toks)
	}
	if got := tokenize(`append ""`); len(got) != 2 || got[1].val != "" || !got[1].quoted {
		t.Errorf("empty quoted string = %#v", got)
	}
	if got := tokenize("   "); len(got) != 0 {
		t.Errorf("blank line = %#v", got)
	}
}

func TestUnescape(t *testing.T) {
	tests := map[string]string{
		`a\nb`:         "a\nb",
		`tab\there`:    "tab\there",
		`\"q\" \'s\'`:  `"q" 's'`,
		`back\\n`:      `back\n`,
		`cr\r`:         "cr\r",
		`plain`:        "plain",
		`trailing\`:    `trailing\`,
		`\\\\`:         `\\`,
		`mixed\\\n`:    "mixed\\\n",
		`unknown \x`:   `unknown \x`,
		`two\n\nlines`: "two\n\nlines",
	}
	for in, want := range tests {
		if got := unescape(in); got != want {
			t.Errorf("unescape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePositionAndRange(t *testing.T) {
	if pos, err := parsePosition("3:14"); err != nil || pos != (types.Position{Line: 3, Col: 14}) {
		t.Errorf("parsePosition(3:14) = %v, %v", pos, err)
	}
	for _, bad := range []string{"3", "3:", ":4", "a:b", "1:2:3"} {
		if _, err := parsePosition(bad); err == nil {
			t.Errorf("parsePosition(%q) succeeded", bad)
		}
	}
	if s, e, err := parseRange("2:5"); err != nil || s != 2 || e != 5 {
		t.Errorf("parseRange(2:5) = %d, %d, %v", s, e, err)
	}
	if s, e, err := parseRange("7"); err != nil || s != 7 || e != 7 {
		t.Errorf("parseRange(7) = %d, %d, %v", s, e, err)
	}
	if _, err := parseLength("x"); err == nil {
		t.Error("parseLength(x) succeeded")
	}
}

func TestSplitTextAttrs(t *testing.T) {
	text, attrs, err := splitTextAttrs(tokenize(`"a=b text" class=intro =skipped lang= class=outro`))
	if err != nil {
		t.Fatal(err)
	}
	if text != "a=b text" {
		t.Errorf("text = %q", text)
	}
	want := map[string]string{"class": "outro", "lang": ""}
	if !reflect.DeepEqual(attrs, want) {
		t.Errorf("attrs = %v", attrs)
	}

	text, attrs, err = splitTextAttrs(tokenize("k=v"))
	if err != nil || text != "" || attrs["k"] != "v" {
		t.Errorf("attrs only = %q, %v, %v", text, attrs, err)
	}

	if _, _, err := splitTextAttrs(tokenize("one two")); !errors.Is(err, errUsage) {
		t.Errorf("second bare word error = %v", err)
	}
}
